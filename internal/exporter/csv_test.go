package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yhstat/internal/providers"
	"yhstat/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "providers.csv")
	w := NewCSVWriter(testLogger())

	err := w.Write(path, WriteOptions{
		Headers:   []string{"Anordnare", "Beviljade platser"},
		Records:   [][]string{{"A", "30"}, {"B", "10"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(raw), "\uFEFF"))

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\uFEFF")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Anordnare", "Beviljade platser"}, rows[0])
	assert.Equal(t, []string{"B", "10"}, rows[2])
}

func TestProviderTable(t *testing.T) {
	opts := ProviderTable([]providers.Summary{
		{
			Provider:          "A",
			GrantedSeats:      30,
			RequestedSeats:    50,
			SeatsApprovalRate: 60,
			ApprovedCourses:   1,
			TotalCourses:      2,
			RankBySeats:       1,
			RankByCourses:     1,
		},
	})

	require.Len(t, opts.Records, 1)
	assert.Equal(t, "A", opts.Records[0][0])
	assert.Equal(t, "30", opts.Records[0][1])
	assert.Equal(t, "60", opts.Records[0][3])
	assert.Len(t, opts.Headers, len(opts.Records[0]))
}

func TestCohortTable(t *testing.T) {
	opts := CohortTable([]domain.CohortObservation{
		{Gender: domain.GenderWomen, EducationArea: "Data/IT", AgeGroup: "25-29", Year: 2020, Count: 120},
	})

	require.Len(t, opts.Records, 1)
	assert.Equal(t, []string{"kvinnor", "Data/IT", "25-29", "2020", "120"}, opts.Records[0])
}

func TestWriteEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	w := NewCSVWriter(testLogger())

	require.NoError(t, w.Write(path, ProviderTable(nil)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Header row still present so consumers see well-defined columns.
	assert.Contains(t, string(raw), "Anordnare")
}
