package services

import (
	"context"
	"log/slog"

	"yhstat/internal/cohort"
	"yhstat/internal/dataset"
	"yhstat/pkg/contracts/domain"
)

// CohortService serves the yearly admitted-student analytics. The wide
// cohort table is reshaped to long form once at construction.
type CohortService struct {
	logger       *slog.Logger
	observations []domain.CohortObservation
	years        []int
	yearSet      map[int]struct{}
	areas        []string
	genderTotals map[int]cohort.GenderTotal
}

// NewCohortService reshapes the snapshot's cohort records and precomputes
// the yearly gender totals.
func NewCohortService(snap *dataset.Snapshot, logger *slog.Logger) *CohortService {
	s := &CohortService{logger: logger, yearSet: make(map[int]struct{})}
	if snap == nil || len(snap.Cohort) == 0 {
		return s
	}
	s.observations = cohort.Reshape(snap.Cohort)
	s.years = cohort.Years(snap.Cohort)
	for _, y := range s.years {
		s.yearSet[y] = struct{}{}
	}
	s.areas = cohort.EducationAreas(snap.Cohort)
	s.genderTotals = cohort.YearlyGenderTotals(s.observations)
	return s
}

// Years lists the years present in the cohort table, ascending.
func (s *CohortService) Years(ctx context.Context) []int {
	return s.years
}

// EducationAreas lists the education areas with the all-areas label first.
func (s *CohortService) EducationAreas(ctx context.Context) []string {
	return s.areas
}

// ObservationsForYear returns the long-form rows for one year.
func (s *CohortService) ObservationsForYear(ctx context.Context, year int) ([]domain.CohortObservation, error) {
	if len(s.observations) == 0 {
		return nil, ErrNoData
	}
	if _, ok := s.yearSet[year]; !ok {
		s.logger.WarnContext(ctx, "unknown cohort year requested", slog.Int("year", year))
		return nil, ErrYearNotFound
	}
	return cohort.FilterByYear(s.observations, year), nil
}

// GenderRatio computes the gender distribution for one year.
func (s *CohortService) GenderRatio(ctx context.Context, year int) (cohort.RatioStats, error) {
	if len(s.observations) == 0 {
		return cohort.RatioStats{}, ErrNoData
	}
	totals, ok := s.genderTotals[year]
	if !ok {
		s.logger.WarnContext(ctx, "unknown cohort year requested", slog.Int("year", year))
		return cohort.RatioStats{}, ErrYearNotFound
	}
	return cohort.GenderRatio(totals.Women, totals.Men), nil
}

// Growth computes year-over-year growth of the total admitted count.
func (s *CohortService) Growth(ctx context.Context, year int) (cohort.GrowthStats, error) {
	if len(s.observations) == 0 {
		return cohort.GrowthStats{}, ErrNoData
	}
	if _, ok := s.yearSet[year]; !ok {
		s.logger.WarnContext(ctx, "unknown cohort year requested", slog.Int("year", year))
		return cohort.GrowthStats{}, ErrYearNotFound
	}
	return cohort.Growth(s.years, year, cohort.YearTotals(s.observations)), nil
}

// Observations exposes the full long-form table for export tooling.
func (s *CohortService) Observations() []domain.CohortObservation {
	return s.observations
}
