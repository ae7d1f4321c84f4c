// Package providers aggregates application records per education provider
// and produces the ranked summary table. Two independent dense rankings are
// computed: by granted seats and by approved course rounds, each with the
// corresponding approval rate as a pure tie-break.
package providers

import (
	"fmt"
	"sort"
	"strings"

	"yhstat/internal/dataset"
)

// Summary is one provider's aggregate row. Ranks are 1-based and dense:
// tied key tuples share a rank and the next distinct tuple continues at
// rank+1.
type Summary struct {
	Provider            string  `json:"provider"`
	GrantedSeats        float64 `json:"granted_seats"`
	RequestedSeats      float64 `json:"requested_seats"`
	SeatsApprovalRate   float64 `json:"seats_approval_rate"`
	ApprovedCourses     int     `json:"approved_courses"`
	TotalCourses        int     `json:"total_courses"`
	CoursesApprovalRate float64 `json:"courses_approval_rate"`
	RankBySeats         int     `json:"rank_by_seats"`
	RankByCourses       int     `json:"rank_by_courses"`
}

// Summarize groups the snapshot's records by trimmed provider name and
// returns the full ranked table, ordered by seats rank ascending and then
// provider name ascending. The alphabetical secondary sort is for stable
// output, not a business rule.
func Summarize(snap *dataset.Snapshot) []Summary {
	grouped := make(map[string]*Summary)
	for _, r := range snap.Records {
		name := strings.TrimSpace(r.Provider)
		if name == "" {
			continue
		}
		s, ok := grouped[name]
		if !ok {
			s = &Summary{Provider: name}
			grouped[name] = s
		}
		s.GrantedSeats += r.GrantedSeats
		s.RequestedSeats += r.RequestedSeats
		s.TotalCourses++
		if r.IsApproved() {
			s.ApprovedCourses++
		}
	}

	out := make([]*Summary, 0, len(grouped))
	for _, s := range grouped {
		s.SeatsApprovalRate = dataset.Percent(s.GrantedSeats, s.RequestedSeats)
		s.CoursesApprovalRate = dataset.Percent(float64(s.ApprovedCourses), float64(s.TotalCourses))
		out = append(out, s)
	}

	denseRank(out,
		func(s *Summary) (float64, float64) { return s.GrantedSeats, s.SeatsApprovalRate },
		func(s *Summary, rank int) { s.RankBySeats = rank },
	)
	denseRank(out,
		func(s *Summary) (float64, float64) { return float64(s.ApprovedCourses), s.CoursesApprovalRate },
		func(s *Summary, rank int) { s.RankByCourses = rank },
	)

	sort.Slice(out, func(i, j int) bool {
		if out[i].RankBySeats != out[j].RankBySeats {
			return out[i].RankBySeats < out[j].RankBySeats
		}
		return out[i].Provider < out[j].Provider
	})

	result := make([]Summary, len(out))
	for i, s := range out {
		result[i] = *s
	}
	return result
}

// denseRank orders the groups by (primary DESC, tiebreak DESC) and assigns
// 1-based dense ranks: the first group gets rank 1, each subsequent group
// keeps the previous rank when its key tuple equals the previous group's,
// otherwise previous rank + 1.
func denseRank(groups []*Summary, key func(*Summary) (float64, float64), assign func(*Summary, int)) {
	ordered := make([]*Summary, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, ti := key(ordered[i])
		pj, tj := key(ordered[j])
		if pi != pj {
			return pi > pj
		}
		if ti != tj {
			return ti > tj
		}
		// Name order keeps the sort itself deterministic; it does not
		// affect ranks since equal key tuples share a rank.
		return ordered[i].Provider < ordered[j].Provider
	})

	rank := 0
	var prevPrimary, prevTie float64
	for i, s := range ordered {
		p, t := key(s)
		if i == 0 || p != prevPrimary || t != prevTie {
			rank++
		}
		assign(s, rank)
		prevPrimary, prevTie = p, t
	}
}

// Lookup finds a provider's summary by trimmed name. A miss is a normal
// outcome: upstream names vary slightly and callers render a placeholder.
func Lookup(summaries []Summary, name string) (Summary, bool) {
	want := strings.TrimSpace(name)
	for _, s := range summaries {
		if s.Provider == want {
			return s, true
		}
	}
	return Summary{}, false
}

// View is the single-provider presentation of a summary: the rank within
// the full table plus display strings for the stat cards.
type View struct {
	Summary
	TotalProviders   int    `json:"total_providers"`
	RankLabel        string `json:"rank_label"`
	SeatsLabel       string `json:"seats_label"`
	SeatsRateLabel   string `json:"seats_rate_label"`
	CoursesLabel     string `json:"courses_label"`
	CoursesRateLabel string `json:"courses_rate_label"`
}

// NewView builds the display view for one summary given the size of the
// ranked table it came from.
func NewView(s Summary, totalProviders int) View {
	return View{
		Summary:          s,
		TotalProviders:   totalProviders,
		RankLabel:        fmt.Sprintf("%d av %d", s.RankBySeats, totalProviders),
		SeatsLabel:       fmt.Sprintf("%.0f av %.0f", s.GrantedSeats, s.RequestedSeats),
		SeatsRateLabel:   fmt.Sprintf("%.1f%%", s.SeatsApprovalRate),
		CoursesLabel:     fmt.Sprintf("%d av %d", s.ApprovedCourses, s.TotalCourses),
		CoursesRateLabel: fmt.Sprintf("%.1f%%", s.CoursesApprovalRate),
	}
}
