package cohort

import (
	"sort"

	"yhstat/internal/dataset"
)

// GrowthState classifies a year-over-year growth computation. The state is
// purely a function of the available years, the selected year and the
// previous year's total; nothing persists between calls.
type GrowthState int

const (
	// GrowthNoData means no usable years were available.
	GrowthNoData GrowthState = iota
	// GrowthBaseYear means the selected year is the first year on record
	// (or fewer than two years exist), so no growth is meaningful.
	GrowthBaseYear
	// GrowthInsufficientPrevious means the previous year's total was zero;
	// the absolute growth is reported but the rate is guarded to 0.
	GrowthInsufficientPrevious
	// GrowthNormal is the ordinary case.
	GrowthNormal
)

// String names the state for logs and JSON.
func (s GrowthState) String() string {
	switch s {
	case GrowthBaseYear:
		return "base_year"
	case GrowthInsufficientPrevious:
		return "insufficient_previous"
	case GrowthNormal:
		return "normal"
	default:
		return "no_data"
	}
}

// GrowthStats is the year-over-year change of total admitted students.
// Sign-aware display formatting is a presentation concern; the numeric
// values here are the contract.
type GrowthStats struct {
	State         GrowthState `json:"-"`
	StateName     string      `json:"state"`
	Year          int         `json:"year"`
	PreviousYear  int         `json:"previous_year,omitempty"`
	Total         float64     `json:"total"`
	PreviousTotal float64     `json:"previous_total"`
	Growth        float64     `json:"growth"`
	GrowthRate    float64     `json:"growth_rate"`
}

// Growth computes the change from the year preceding target to target.
// Fewer than two available years, or a target that is the first year,
// reports the base-year state with no growth numbers.
func Growth(years []int, target int, totals map[int]float64) GrowthStats {
	if len(years) == 0 || len(totals) == 0 {
		return finish(GrowthStats{State: GrowthNoData})
	}

	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)

	idx := -1
	for i, y := range sorted {
		if y == target {
			idx = i
			break
		}
	}
	if idx == -1 {
		return finish(GrowthStats{State: GrowthNoData, Year: target})
	}
	if len(sorted) < 2 || idx == 0 {
		return finish(GrowthStats{
			State: GrowthBaseYear,
			Year:  target,
			Total: totals[target],
		})
	}

	prev := sorted[idx-1]
	g := GrowthStats{
		State:         GrowthNormal,
		Year:          target,
		PreviousYear:  prev,
		Total:         totals[target],
		PreviousTotal: totals[prev],
	}
	g.Growth = g.Total - g.PreviousTotal
	g.GrowthRate = dataset.Round1(percentChange(g.Growth, g.PreviousTotal))
	if g.PreviousTotal == 0 {
		g.State = GrowthInsufficientPrevious
	}
	return finish(g)
}

func percentChange(growth, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return growth / previous * 100
}

func finish(g GrowthStats) GrowthStats {
	g.StateName = g.State.String()
	return g
}
