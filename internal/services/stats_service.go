package services

import (
	"context"
	"log/slog"
	"strings"

	"yhstat/internal/dataset"
	"yhstat/internal/geo"
	"yhstat/internal/providers"
	"yhstat/internal/stats"
)

// StatsService serves scope statistics, provider rankings, and region code
// lookups over one loaded snapshot. Provider summaries are computed once at
// construction since the snapshot never changes after load.
type StatsService struct {
	snap      *dataset.Snapshot
	logger    *slog.Logger
	summaries []providers.Summary
	counties  map[string]struct{}
}

// NewStatsService builds the service and precomputes the provider ranking.
func NewStatsService(snap *dataset.Snapshot, logger *slog.Logger) *StatsService {
	s := &StatsService{
		snap:     snap,
		logger:   logger,
		counties: make(map[string]struct{}),
	}
	if snap != nil {
		s.summaries = providers.Summarize(snap)
		for _, county := range snap.Counties() {
			s.counties[county] = struct{}{}
		}
	}
	return s
}

// NationalStatistics computes the Sweden-wide scope statistics and the
// per-education-area breakdown.
func (s *StatsService) NationalStatistics(ctx context.Context) ([]stats.AreaStat, stats.ScopeStatistics, error) {
	if s.snap == nil {
		return nil, stats.ScopeStatistics{}, ErrNoData
	}
	return stats.National(s.snap)
}

// CountyStatistics computes scope statistics restricted to one county.
func (s *StatsService) CountyStatistics(ctx context.Context, county string) ([]stats.AreaStat, stats.ScopeStatistics, error) {
	if s.snap == nil {
		return nil, stats.ScopeStatistics{}, ErrNoData
	}
	county = strings.TrimSpace(county)
	if _, ok := s.counties[county]; !ok {
		s.logger.WarnContext(ctx, "unknown county requested", slog.String("county", county))
		return nil, stats.ScopeStatistics{}, ErrCountyNotFound
	}
	return stats.Compute(s.snap, stats.Scope{County: county})
}

// Counties lists the distinct counties in the snapshot, sorted.
func (s *StatsService) Counties(ctx context.Context) []string {
	if s.snap == nil {
		return nil
	}
	return s.snap.Counties()
}

// ApprovedByCounty returns approved-course counts per county for the
// choropleth view.
func (s *StatsService) ApprovedByCounty(ctx context.Context) []stats.CountyApproved {
	if s.snap == nil {
		return nil
	}
	return stats.ApprovedByCounty(s.snap)
}

// ProviderSummaries returns the full dense-ranked provider table.
func (s *StatsService) ProviderSummaries(ctx context.Context) []providers.Summary {
	return s.summaries
}

// ProviderView returns the presentation view for a single provider.
func (s *StatsService) ProviderView(ctx context.Context, name string) (providers.View, error) {
	summary, ok := providers.Lookup(s.summaries, name)
	if !ok {
		s.logger.WarnContext(ctx, "unknown provider requested", slog.String("provider", name))
		return providers.View{}, ErrProviderNotFound
	}
	return providers.NewView(summary, len(s.summaries)), nil
}

// RegionCodes returns the county name to code map from the boundary file.
func (s *StatsService) RegionCodes(ctx context.Context) map[string]string {
	if s.snap == nil {
		return nil
	}
	return s.snap.RegionCodes
}

// MatchedRegionCodes fuzzy-matches the snapshot's county names against the
// boundary file names and reports the resolved code per county.
func (s *StatsService) MatchedRegionCodes(ctx context.Context) []geo.Match {
	if s.snap == nil {
		return nil
	}
	matches := geo.MatchRegionCodes(s.snap.Counties(), s.snap.RegionCodes)
	misses := 0
	for _, m := range matches {
		if !m.OK {
			misses++
		}
	}
	if misses > 0 {
		s.logger.DebugContext(ctx, "region code matching incomplete",
			slog.Int("matched", len(matches)-misses),
			slog.Int("unmatched", misses),
		)
	}
	return matches
}

// Snapshot exposes the underlying snapshot for export tooling.
func (s *StatsService) Snapshot() *dataset.Snapshot {
	return s.snap
}
