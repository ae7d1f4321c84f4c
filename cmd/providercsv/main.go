// Command providercsv loads the datasets and writes the ranked provider
// summary and the long-form cohort table to CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"yhstat/internal/cohort"
	"yhstat/internal/config"
	"yhstat/internal/exporter"
	"yhstat/internal/loader"
	"yhstat/internal/logging"
	"yhstat/internal/providers"
)

func main() {
	outDir := flag.String("out", "exports", "directory for the generated CSV files")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(outDir string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer closeLog()

	snap, err := loader.BuildSnapshot(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	writer := exporter.NewCSVWriter(logger)

	summaries := providers.Summarize(snap)
	providerPath := filepath.Join(outDir, "providers.csv")
	if err := writer.Write(providerPath, exporter.ProviderTable(summaries)); err != nil {
		return err
	}

	obs := cohort.Reshape(snap.Cohort)
	cohortPath := filepath.Join(outDir, "cohort.csv")
	if err := writer.Write(cohortPath, exporter.CohortTable(obs)); err != nil {
		return err
	}

	fmt.Printf("wrote %s and %s\n", providerPath, cohortPath)
	return nil
}
