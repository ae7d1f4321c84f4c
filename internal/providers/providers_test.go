package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yhstat/internal/dataset"
	"yhstat/pkg/contracts/domain"
)

func snapWith(records []domain.ApplicationRecord) *dataset.Snapshot {
	snap := dataset.NewSnapshot()
	snap.Records = records
	return snap
}

func course(provider string, decision domain.Decision, requested, granted float64) domain.ApplicationRecord {
	return domain.ApplicationRecord{
		Provider:       provider,
		Decision:       decision,
		RequestedSeats: requested,
		GrantedSeats:   granted,
	}
}

func TestSummarizeAggregates(t *testing.T) {
	snap := snapWith([]domain.ApplicationRecord{
		course("A", domain.DecisionApproved, 30, 30),
		course(" A ", domain.DecisionRejected, 20, 0),
		course("B", domain.DecisionApproved, 10, 10),
		course("", domain.DecisionApproved, 5, 5),
	})

	got := Summarize(snap)
	require.Len(t, got, 2)

	a, ok := Lookup(got, "A")
	require.True(t, ok)
	assert.InDelta(t, 30, a.GrantedSeats, 1e-9)
	assert.InDelta(t, 50, a.RequestedSeats, 1e-9)
	assert.InDelta(t, 60.0, a.SeatsApprovalRate, 1e-9)
	assert.Equal(t, 2, a.TotalCourses)
	assert.Equal(t, 1, a.ApprovedCourses)
	assert.InDelta(t, 50.0, a.CoursesApprovalRate, 1e-9)
}

func TestDenseRankSharesAndContinues(t *testing.T) {
	// Two providers tied on both granted seats and rate share rank 1; the
	// next distinct tuple takes rank 2, not 3.
	snap := snapWith([]domain.ApplicationRecord{
		course("A", domain.DecisionApproved, 100, 50),
		course("B", domain.DecisionApproved, 100, 50),
		course("C", domain.DecisionApproved, 100, 40),
	})

	got := Summarize(snap)
	require.Len(t, got, 3)

	byName := map[string]Summary{}
	for _, s := range got {
		byName[s.Provider] = s
	}
	assert.Equal(t, 1, byName["A"].RankBySeats)
	assert.Equal(t, 1, byName["B"].RankBySeats)
	assert.Equal(t, 2, byName["C"].RankBySeats)
}

func TestDenseRankTieBrokenByRate(t *testing.T) {
	// Equal granted seats, distinct approval rates: the higher rate ranks
	// first and the tuples are no longer tied.
	snap := snapWith([]domain.ApplicationRecord{
		course("Sparsam", domain.DecisionApproved, 50, 50),
		course("Slösaktig", domain.DecisionApproved, 100, 50),
	})

	got := Summarize(snap)
	byName := map[string]Summary{}
	for _, s := range got {
		byName[s.Provider] = s
	}

	assert.Equal(t, 1, byName["Sparsam"].RankBySeats)
	assert.Equal(t, 2, byName["Slösaktig"].RankBySeats)
}

func TestRanksAreIndependent(t *testing.T) {
	snap := snapWith([]domain.ApplicationRecord{
		// A: most seats, single approved course.
		course("A", domain.DecisionApproved, 200, 200),
		// B: fewer seats but two approved courses.
		course("B", domain.DecisionApproved, 50, 50),
		course("B", domain.DecisionApproved, 50, 50),
	})

	got := Summarize(snap)
	byName := map[string]Summary{}
	for _, s := range got {
		byName[s.Provider] = s
	}

	assert.Equal(t, 1, byName["A"].RankBySeats)
	assert.Equal(t, 2, byName["B"].RankBySeats)
	assert.Equal(t, 1, byName["B"].RankByCourses)
	assert.Equal(t, 2, byName["A"].RankByCourses)
}

func TestSummarizeDeterministicOrder(t *testing.T) {
	snap := snapWith([]domain.ApplicationRecord{
		course("B", domain.DecisionApproved, 10, 10),
		course("A", domain.DecisionApproved, 10, 10),
		course("C", domain.DecisionApproved, 20, 20),
	})

	first := Summarize(snap)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Summarize(snap))
	}

	// Ordered by seats rank, then name within equal ranks.
	require.Len(t, first, 3)
	assert.Equal(t, "C", first[0].Provider)
	assert.Equal(t, "A", first[1].Provider)
	assert.Equal(t, "B", first[2].Provider)
}

func TestSummarizeAllZeroProvider(t *testing.T) {
	// A provider with no seats and no approvals still gets defined rates
	// and a computed rank.
	snap := snapWith([]domain.ApplicationRecord{
		course("A", domain.DecisionApproved, 100, 80),
		course("Tomhänt", domain.DecisionRejected, 0, 0),
	})

	got := Summarize(snap)
	s, ok := Lookup(got, "Tomhänt")
	require.True(t, ok)

	assert.Zero(t, s.SeatsApprovalRate)
	assert.Zero(t, s.CoursesApprovalRate)
	assert.Equal(t, 2, s.RankBySeats)
	assert.Equal(t, 2, s.RankByCourses)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(snapWith(nil))
	assert.Empty(t, got)
}

func TestLookupTrimsName(t *testing.T) {
	got := Summarize(snapWith([]domain.ApplicationRecord{
		course("A", domain.DecisionApproved, 10, 10),
	}))

	_, ok := Lookup(got, "  A  ")
	assert.True(t, ok)
	_, ok = Lookup(got, "Okänd")
	assert.False(t, ok)
}

func TestNewView(t *testing.T) {
	s := Summary{
		Provider:            "A",
		GrantedSeats:        30,
		RequestedSeats:      50,
		SeatsApprovalRate:   60,
		ApprovedCourses:     1,
		TotalCourses:        2,
		CoursesApprovalRate: 50,
		RankBySeats:         3,
	}

	v := NewView(s, 17)

	assert.Equal(t, "3 av 17", v.RankLabel)
	assert.Equal(t, "30 av 50", v.SeatsLabel)
	assert.Equal(t, "60.0%", v.SeatsRateLabel)
	assert.Equal(t, "1 av 2", v.CoursesLabel)
	assert.Equal(t, "50.0%", v.CoursesRateLabel)
}
