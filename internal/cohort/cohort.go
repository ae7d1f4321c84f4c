// Package cohort is the second, independent aggregation pipeline: yearly
// admitted-student counts by gender, education area and age group. All
// computations run over the long-format reshape of the wide source table.
package cohort

import (
	"sort"

	"yhstat/pkg/contracts/domain"
)

// Reshape turns wide-format cohort rows (one column per year) into long
// observations. Years are emitted in ascending order per record; missing or
// non-numeric counts already arrive as 0 from the loader's coercion.
func Reshape(records []domain.CohortRecord) []domain.CohortObservation {
	out := make([]domain.CohortObservation, 0, len(records)*4)
	for _, rec := range records {
		years := make([]int, 0, len(rec.YearCounts))
		for y := range rec.YearCounts {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			out = append(out, domain.CohortObservation{
				Gender:        rec.Gender,
				EducationArea: rec.EducationArea,
				AgeGroup:      rec.AgeGroup,
				Year:          y,
				Count:         rec.YearCounts[y],
			})
		}
	}
	return out
}

// Years returns the distinct years present in the records, ascending.
func Years(records []domain.CohortRecord) []int {
	seen := make(map[int]struct{})
	for _, rec := range records {
		for y := range rec.YearCounts {
			seen[y] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// EducationAreas returns the distinct education areas in the records with
// the all-areas sentinel prepended. The source's own "Totalt" roll-up rows
// are not listed as an area; the sentinel covers the unfiltered view.
func EducationAreas(records []domain.CohortRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.EducationArea == "" || rec.EducationArea == domain.TotalsSentinel {
			continue
		}
		seen[rec.EducationArea] = struct{}{}
	}
	areas := make([]string, 0, len(seen)+1)
	for a := range seen {
		areas = append(areas, a)
	}
	sort.Strings(areas)
	return append([]string{domain.AllAreasLabel}, areas...)
}

// FilterByYear returns the observations for one year, preserving order.
func FilterByYear(obs []domain.CohortObservation, year int) []domain.CohortObservation {
	out := make([]domain.CohortObservation, 0, len(obs))
	for _, o := range obs {
		if o.Year == year {
			out = append(out, o)
		}
	}
	return out
}

// GenderTotal is the combined-ages, combined-areas student count for one
// (gender, year).
type GenderTotal struct {
	Women float64 `json:"women"`
	Men   float64 `json:"men"`
}

// YearlyGenderTotals filters the long rows to the all-ages, all-areas
// sentinel and returns one total per (gender, year).
func YearlyGenderTotals(obs []domain.CohortObservation) map[int]GenderTotal {
	out := make(map[int]GenderTotal)
	for _, o := range obs {
		if o.AgeGroup != domain.TotalsSentinel || o.EducationArea != domain.TotalsSentinel {
			continue
		}
		t := out[o.Year]
		switch o.Gender {
		case domain.GenderWomen:
			t.Women += o.Count
		case domain.GenderMen:
			t.Men += o.Count
		}
		out[o.Year] = t
	}
	return out
}

// YearTotals sums the sentinel rows across genders, giving the total
// admitted-student count per year used by the growth computation.
func YearTotals(obs []domain.CohortObservation) map[int]float64 {
	out := make(map[int]float64)
	for year, t := range YearlyGenderTotals(obs) {
		out[year] = t.Women + t.Men
	}
	return out
}
