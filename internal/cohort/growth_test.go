package cohort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowth(t *testing.T) {
	years := []int{2020, 2021, 2022}
	totals := map[int]float64{2020: 1000, 2021: 1200, 2022: 900}

	t.Run("normal growth", func(t *testing.T) {
		got := Growth(years, 2021, totals)

		assert.Equal(t, GrowthNormal, got.State)
		assert.Equal(t, "normal", got.StateName)
		assert.Equal(t, 2020, got.PreviousYear)
		assert.InDelta(t, 200, got.Growth, 1e-9)
		assert.InDelta(t, 20.0, got.GrowthRate, 1e-9)
	})

	t.Run("negative growth", func(t *testing.T) {
		got := Growth(years, 2022, totals)

		assert.Equal(t, GrowthNormal, got.State)
		assert.InDelta(t, -300, got.Growth, 1e-9)
		assert.InDelta(t, -25.0, got.GrowthRate, 1e-9)
	})

	t.Run("first year is base year", func(t *testing.T) {
		got := Growth(years, 2020, totals)

		assert.Equal(t, GrowthBaseYear, got.State)
		assert.Equal(t, "base_year", got.StateName)
		assert.InDelta(t, 1000, got.Total, 1e-9)
		assert.Zero(t, got.Growth)
	})

	t.Run("single year is base year", func(t *testing.T) {
		got := Growth([]int{2020}, 2020, map[int]float64{2020: 500})

		assert.Equal(t, GrowthBaseYear, got.State)
	})

	t.Run("unknown year", func(t *testing.T) {
		got := Growth(years, 1999, totals)

		assert.Equal(t, GrowthNoData, got.State)
		assert.Equal(t, "no_data", got.StateName)
	})

	t.Run("no years at all", func(t *testing.T) {
		got := Growth(nil, 2020, nil)

		assert.Equal(t, GrowthNoData, got.State)
	})

	t.Run("zero previous total guards the rate", func(t *testing.T) {
		got := Growth([]int{2020, 2021}, 2021, map[int]float64{2020: 0, 2021: 800})

		assert.Equal(t, GrowthInsufficientPrevious, got.State)
		assert.Equal(t, "insufficient_previous", got.StateName)
		assert.InDelta(t, 800, got.Growth, 1e-9)
		assert.Zero(t, got.GrowthRate)
	})
}
