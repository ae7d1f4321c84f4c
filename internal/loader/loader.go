// Package loader reads the source datasets from disk and assembles the
// in-memory snapshot the services operate on. The application results
// workbook is mandatory; the enrichment workbook, the cohort table, and the
// county boundary file are optional and their absence degrades the snapshot
// rather than failing startup.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"yhstat/internal/config"
	"yhstat/internal/dataset"
	"yhstat/internal/enrich"
	"yhstat/internal/geo"
	"yhstat/pkg/contracts/domain"
)

// BuildSnapshot loads every configured dataset concurrently, enriches the
// base table with per-year requested-seat sums, and parses the typed
// application records.
func BuildSnapshot(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dataset.Snapshot, error) {
	snap := dataset.NewSnapshot()

	var (
		base      *dataset.Frame
		secondary *dataset.Frame
		cohort    []domain.CohortRecord
		codes     map[string]string
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		frame, err := ReadExcel(cfg.ResultsPath(), cfg.Data.ResultsSheet)
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}
		base = frame
		return nil
	})

	g.Go(func() error {
		if cfg.Data.ApplicationsFile == "" {
			return nil
		}
		path := cfg.ApplicationsPath()
		if _, err := os.Stat(path); err != nil {
			logger.WarnContext(ctx, "applications workbook unavailable, skipping enrichment",
				slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		frame, err := ReadExcel(path, cfg.Data.ApplicationsSheet)
		if err != nil {
			return fmt.Errorf("load applications: %w", err)
		}
		secondary = frame
		return nil
	})

	g.Go(func() error {
		path := cfg.CohortPath()
		records, err := ReadCohortCSV(path, cfg.Data.CohortEncoding)
		if err != nil {
			logger.WarnContext(ctx, "cohort table unavailable",
				slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		cohort = records
		return nil
	})

	g.Go(func() error {
		path := cfg.BoundaryPath()
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.WarnContext(ctx, "county boundary file unavailable",
				slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		m, err := geo.BuildCodeMap(raw)
		if err != nil {
			return fmt.Errorf("parse county boundaries: %w", err)
		}
		codes = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := dataset.ValidateColumns(base, domain.RequiredColumns, "results"); err != nil {
		return nil, err
	}

	// Stray whitespace in the key must never split a join key.
	base.NormalizeColumn(domain.ColKey)
	if secondary != nil {
		secondary.NormalizeColumn(domain.ColKey)
	}

	enriched, result := enrich.Enrich(base, secondary, enrich.Options{
		KeyColumn:       domain.ColKey,
		Prefix:          domain.RequestedSeatsPrefix,
		SumColumn:       domain.ColTotalRequested,
		CollisionSuffix: cfg.Data.EnrichmentSuffix,
	}, logger)

	snap.Base = enriched
	snap.EnrichmentApplied = result.Applied
	if result.SkipReason != "" {
		snap.Notes = append(snap.Notes, "enrichment skipped: "+result.SkipReason)
	}

	snap.Records = parseRecords(enriched)
	snap.Cohort = cohort
	if codes != nil {
		snap.RegionCodes = codes
	}

	logger.InfoContext(ctx, "snapshot loaded",
		slog.String("snapshot_id", snap.ID),
		slog.Int("applications", len(snap.Records)),
		slog.Int("cohort_rows", len(snap.Cohort)),
		slog.Int("region_codes", len(snap.RegionCodes)),
		slog.Bool("enriched", snap.EnrichmentApplied),
	)

	return snap, nil
}

// parseRecords converts the enriched table into typed application records.
// Decisions are parsed once here so downstream aggregation never compares
// raw strings. Seat columns are resolved against known header variants; a
// row with no usable seat data carries zeroes.
func parseRecords(f *dataset.Frame) []domain.ApplicationRecord {
	requestedCol := resolveColumn(f, domain.RequestedSeatsCandidates)
	grantedCol := resolveColumn(f, domain.GrantedSeatsCandidates)
	yearCols := requestedYearColumns(f)

	records := make([]domain.ApplicationRecord, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		rec := domain.ApplicationRecord{
			Key:           f.Cell(i, domain.ColKey),
			Region:        f.Cell(i, domain.ColRegion),
			Decision:      domain.ParseDecision(f.Cell(i, domain.ColDecision)),
			EducationArea: f.Cell(i, domain.ColEducationArea),
			Provider:      f.Cell(i, domain.ColProvider),
		}

		if v, ok := dataset.ParseNumber(f.Cell(i, domain.ColCredits)); ok {
			rec.Credits = v
			rec.HasCredits = true
		}

		switch {
		case requestedCol != "":
			if v, ok := dataset.ParseNumber(f.Cell(i, requestedCol)); ok {
				rec.RequestedSeats = v
			}
		case len(yearCols) > 0:
			for _, col := range yearCols {
				if v, ok := dataset.ParseNumber(f.Cell(i, col)); ok {
					rec.RequestedSeats += v
				}
			}
		}

		if grantedCol != "" {
			if v, ok := dataset.ParseNumber(f.Cell(i, grantedCol)); ok {
				rec.GrantedSeats = v
			}
		}

		records = append(records, rec)
	}
	return records
}

func resolveColumn(f *dataset.Frame, candidates []string) string {
	for _, name := range candidates {
		if f.HasColumn(name) {
			return name
		}
	}
	return ""
}

func hasFoldedPrefix(name, prefix string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.HasPrefix(name, strings.ToLower(prefix))
}

func requestedYearColumns(f *dataset.Frame) []string {
	var cols []string
	for _, name := range f.Columns() {
		if name == domain.ColTotalRequested {
			continue
		}
		if hasFoldedPrefix(name, domain.RequestedSeatsPrefix) {
			cols = append(cols, name)
		}
	}
	return cols
}
