package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameTrimsAndDeduplicatesColumns(t *testing.T) {
	f := NewFrame([]string{" Län ", "Beslut", "Län"}, [][]string{
		{"Skåne", "Beviljad", "duplicate"},
	})

	assert.Equal(t, []string{"Län", "Beslut", "Län"}, f.Columns())

	// First occurrence wins the name lookup.
	idx, ok := f.ColumnIndex("Län")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "Skåne", f.Cell(0, "Län"))
}

func TestFrameCell(t *testing.T) {
	f := NewFrame([]string{"Län", "Beslut"}, [][]string{
		{"  Skåne  ", "Beviljad"},
		{"Blekinge"},
	})

	tests := []struct {
		name string
		row  int
		col  string
		want string
	}{
		{name: "trims whitespace", row: 0, col: "Län", want: "Skåne"},
		{name: "short row yields empty", row: 1, col: "Beslut", want: ""},
		{name: "unknown column yields empty", row: 0, col: "Anordnare namn", want: ""},
		{name: "row out of range yields empty", row: 5, col: "Län", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Cell(tt.row, tt.col))
		})
	}
}

func TestFrameSelect(t *testing.T) {
	f := NewFrame([]string{"Län", "Beslut", "YH-poäng"}, [][]string{
		{"Skåne", "Beviljad", "30"},
		{"Blekinge", "Avslag", "20"},
	})

	sel := f.Select([]string{"Beslut", "saknas"})
	assert.Equal(t, []string{"Beslut", "saknas"}, sel.Columns())
	require.Equal(t, 2, sel.Len())
	assert.Equal(t, "Avslag", sel.Cell(1, "Beslut"))
	// Unknown names become empty columns so callers can rely on shape.
	assert.Equal(t, "", sel.Cell(0, "saknas"))
}

func TestFrameWithColumns(t *testing.T) {
	f := NewFrame([]string{"Län"}, [][]string{{"Skåne"}, {"Blekinge"}})

	t.Run("appends aligned values", func(t *testing.T) {
		out, err := f.WithColumns([]string{"Beslut"}, [][]string{{"Beviljad", "Avslag"}})
		require.NoError(t, err)
		assert.Equal(t, "Avslag", out.Cell(1, "Beslut"))
		// Original frame is untouched.
		assert.False(t, f.HasColumn("Beslut"))
	})

	t.Run("rejects mismatched lengths", func(t *testing.T) {
		_, err := f.WithColumns([]string{"Beslut"}, [][]string{{"Beviljad"}})
		assert.Error(t, err)
	})
}
