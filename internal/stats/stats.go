// Package stats computes approval statistics for a scope: one county or the
// whole dataset. Every aggregate has a defined value for the empty case and
// every rate is zero-guarded; the only propagated failure is a schema
// violation on the input table.
package stats

import (
	"sort"
	"strings"

	"yhstat/internal/dataset"
	"yhstat/pkg/contracts/domain"
)

// Scope selects the records a statistic is computed over. An empty County
// means the whole dataset. Label overrides the scope name shown to the
// presentation layer.
type Scope struct {
	County string
	Label  string
}

// NationalLabel names the whole-dataset scope.
const NationalLabel = "Sverige"

// ScopeStatistics summarizes one scope. Approved plus Rejected need not
// equal TotalCourses: decision values outside the known vocabulary count
// toward the total only, by policy.
type ScopeStatistics struct {
	Scope             string  `json:"scope"`
	TotalCourses      int     `json:"total_courses"`
	ApprovedCourses   int     `json:"approved_courses"`
	RejectedCourses   int     `json:"rejected_courses"`
	ApprovalRate      float64 `json:"approval_rate"`
	RequestedSeats    float64 `json:"requested_seats"`
	GrantedSeats      float64 `json:"granted_seats"`
	SeatsApprovalRate float64 `json:"seats_approval_rate"`
}

// AreaStat is one education-area row of the scope breakdown.
type AreaStat struct {
	EducationArea string  `json:"education_area"`
	Requested     int     `json:"requested"`
	Approved      int     `json:"approved"`
	ApprovalRate  float64 `json:"approval_rate"`
}

// CountyApproved is one row of the per-county approved-courses aggregate
// feeding the choropleth map.
type CountyApproved struct {
	County   string `json:"county"`
	Approved int    `json:"approved"`
}

// Compute returns the education-area breakdown and summary statistics for
// the scope. It fails fast with a SchemaError when required columns are
// missing from the snapshot's base table.
func Compute(snap *dataset.Snapshot, scope Scope) ([]AreaStat, ScopeStatistics, error) {
	if err := dataset.ValidateColumns(snap.Base, domain.RequiredColumns, "scope statistics input"); err != nil {
		return nil, ScopeStatistics{}, err
	}

	county := strings.TrimSpace(scope.County)
	records := snap.Records
	if county != "" {
		records = filterByRegion(records, county)
	}

	stats := ScopeStatistics{Scope: scopeLabel(scope, county, records)}
	for _, r := range records {
		stats.TotalCourses++
		switch r.Decision {
		case domain.DecisionApproved:
			stats.ApprovedCourses++
		case domain.DecisionRejected:
			stats.RejectedCourses++
		}
		stats.RequestedSeats += r.RequestedSeats
		stats.GrantedSeats += r.GrantedSeats
	}
	stats.ApprovalRate = dataset.Percent(float64(stats.ApprovedCourses), float64(stats.TotalCourses))
	stats.SeatsApprovalRate = dataset.Percent(stats.GrantedSeats, stats.RequestedSeats)

	return breakdown(records), stats, nil
}

// National computes whole-dataset statistics.
func National(snap *dataset.Snapshot) ([]AreaStat, ScopeStatistics, error) {
	return Compute(snap, Scope{Label: NationalLabel})
}

// ApprovedByCounty counts approved courses per county, excluding rows that
// span several municipalities. Sorted by approved count descending, then
// county ascending.
func ApprovedByCounty(snap *dataset.Snapshot) []CountyApproved {
	counts := make(map[string]int)
	for _, r := range snap.Records {
		if r.Region == "" || r.Region == domain.MultiMunicipality {
			continue
		}
		if _, ok := counts[r.Region]; !ok {
			counts[r.Region] = 0
		}
		if r.IsApproved() {
			counts[r.Region]++
		}
	}
	out := make([]CountyApproved, 0, len(counts))
	for county, approved := range counts {
		out = append(out, CountyApproved{County: county, Approved: approved})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Approved != out[j].Approved {
			return out[i].Approved > out[j].Approved
		}
		return out[i].County < out[j].County
	})
	return out
}

// breakdown groups the scope's records by education area. Rows with a blank
// area form their own bucket so every record lands in exactly one bucket and
// the per-area requested counts sum to the scope total. Areas with zero
// approvals still appear with Approved 0. Sorted ascending by requested
// count so chart renderers draw the largest bar last.
func breakdown(records []domain.ApplicationRecord) []AreaStat {
	byArea := make(map[string]*AreaStat)
	for _, r := range records {
		a, ok := byArea[r.EducationArea]
		if !ok {
			a = &AreaStat{EducationArea: r.EducationArea}
			byArea[r.EducationArea] = a
		}
		a.Requested++
		if r.IsApproved() {
			a.Approved++
		}
	}
	out := make([]AreaStat, 0, len(byArea))
	for _, a := range byArea {
		a.ApprovalRate = dataset.Percent(float64(a.Approved), float64(a.Requested))
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requested != out[j].Requested {
			return out[i].Requested < out[j].Requested
		}
		return out[i].EducationArea < out[j].EducationArea
	})
	return out
}

func filterByRegion(records []domain.ApplicationRecord, county string) []domain.ApplicationRecord {
	out := make([]domain.ApplicationRecord, 0, len(records))
	for _, r := range records {
		if r.Region == county {
			out = append(out, r)
		}
	}
	return out
}

// scopeLabel names the scope: an explicit label wins, then the county
// filter, then the single region shared by all records, else the national
// label.
func scopeLabel(scope Scope, county string, records []domain.ApplicationRecord) string {
	if scope.Label != "" {
		return scope.Label
	}
	if county != "" {
		return county
	}
	var only string
	for _, r := range records {
		if r.Region == "" {
			continue
		}
		if only == "" {
			only = r.Region
			continue
		}
		if r.Region != only {
			return NationalLabel
		}
	}
	if only != "" {
		return only
	}
	return NationalLabel
}
