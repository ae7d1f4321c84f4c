// Package exporter writes derived tables to CSV for offline use.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// CSVWriter writes CSV files with an optional UTF-8 BOM so the output opens
// cleanly in Excel.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	return &CSVWriter{logger: logger}
}

// WriteOptions configures one CSV write.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// Write creates the target file, writing header then records.
func (w *CSVWriter) Write(path string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open export file %s: %w", path, err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := cw.Write(options.Headers); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, record := range options.Records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.logger.Info("csv written",
		slog.String("path", path),
		slog.Int("records", len(options.Records)),
	)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
