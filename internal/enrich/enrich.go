// Package enrich joins the applications workbook onto the base results
// dataset and derives the total-requested-seats column. Every failure mode
// short of a programming error degrades to "no enrichment": the base frame
// is returned unchanged and the reason is surfaced as a diagnostic.
package enrich

import (
	"log/slog"
	"strconv"
	"strings"

	"yhstat/internal/dataset"
)

// Options controls one enrichment pass.
type Options struct {
	// KeyColumn is the shared join key; it is trimmed on both sides before
	// matching.
	KeyColumn string
	// Prefix selects secondary columns whose stripped, case-folded name
	// starts with the stripped, case-folded prefix.
	Prefix string
	// SumColumn is the name of the derived row-wise sum column.
	SumColumn string
	// CollisionSuffix, when non-empty, renames incoming columns that collide
	// with base column names. When empty, colliding incoming columns are
	// dropped in favor of the base column and a diagnostic is recorded.
	CollisionSuffix string
}

// Result reports what an enrichment pass did.
type Result struct {
	Applied        bool     `json:"applied"`
	SkipReason     string   `json:"skip_reason,omitempty"`
	MatchedColumns []string `json:"matched_columns,omitempty"`
	Collisions     []string `json:"collisions,omitempty"`
	// DuplicateKeys counts secondary rows discarded by keep-last dedup.
	DuplicateKeys int `json:"duplicate_keys,omitempty"`
}

// Enrich left-joins prefix-matched secondary columns plus a derived sum
// column onto base. The base row count and order are always preserved; when
// enrichment cannot proceed the base frame is returned as-is.
func Enrich(base, secondary *dataset.Frame, opts Options, logger *slog.Logger) (*dataset.Frame, Result) {
	if logger == nil {
		logger = slog.Default()
	}
	if base == nil || base.Len() == 0 {
		return base, Result{SkipReason: "base dataset is empty"}
	}
	if secondary == nil {
		return base, Result{SkipReason: "secondary dataset unavailable"}
	}
	if !base.HasColumn(opts.KeyColumn) {
		logger.Warn("enrichment skipped: base missing key column", slog.String("key", opts.KeyColumn))
		return base, Result{SkipReason: "base missing key column " + opts.KeyColumn}
	}
	if !secondary.HasColumn(opts.KeyColumn) {
		logger.Warn("enrichment skipped: secondary missing key column", slog.String("key", opts.KeyColumn))
		return base, Result{SkipReason: "secondary missing key column " + opts.KeyColumn}
	}

	matched := prefixColumns(secondary, opts.KeyColumn, opts.Prefix)
	if len(matched) == 0 {
		logger.Warn("enrichment skipped: no prefix-matched columns",
			slog.String("prefix", opts.Prefix))
		return base, Result{SkipReason: "no columns matching prefix " + opts.Prefix}
	}

	res := Result{Applied: true, MatchedColumns: matched}

	// Deduplicate the secondary selection by key, keeping the last
	// occurrence: later records in file order win.
	type secRow struct {
		values []string
		sum    string
	}
	bySec := make(map[string]secRow, secondary.Len())
	for r := 0; r < secondary.Len(); r++ {
		key := secondary.Cell(r, opts.KeyColumn)
		values := make([]string, len(matched))
		var sum float64
		for c, name := range matched {
			cell := secondary.Cell(r, name)
			values[c] = cell
			if v, ok := dataset.ParseNumber(cell); ok {
				sum += v
			}
		}
		if _, dup := bySec[key]; dup {
			res.DuplicateKeys++
		}
		// All-missing rows sum to 0, not null.
		bySec[key] = secRow{values: values, sum: strconv.FormatInt(int64(sum), 10)}
	}

	// Resolve name collisions between incoming and base columns.
	incoming := append(append([]string{}, matched...), opts.SumColumn)
	outNames := make([]string, len(incoming))
	keep := make([]bool, len(incoming))
	for i, name := range incoming {
		outNames[i] = name
		keep[i] = true
		if base.HasColumn(name) {
			res.Collisions = append(res.Collisions, name)
			if opts.CollisionSuffix != "" {
				outNames[i] = name + opts.CollisionSuffix
			} else {
				keep[i] = false
			}
		}
	}
	if len(res.Collisions) > 0 && opts.CollisionSuffix == "" {
		logger.Warn("incoming columns collide with base and were dropped",
			slog.Any("columns", res.Collisions))
	}

	// Left join: every base row appears exactly once regardless of how many
	// secondary rows shared its key before dedup.
	names := make([]string, 0, len(incoming))
	values := make([][]string, 0, len(incoming))
	for i := range incoming {
		if !keep[i] {
			continue
		}
		col := make([]string, base.Len())
		for r := 0; r < base.Len(); r++ {
			key := base.Cell(r, opts.KeyColumn)
			row, ok := bySec[key]
			if !ok {
				continue
			}
			if i < len(matched) {
				col[r] = row.values[i]
			} else {
				col[r] = row.sum
			}
		}
		names = append(names, outNames[i])
		values = append(values, col)
	}
	if len(names) == 0 {
		res.Applied = false
		res.SkipReason = "all incoming columns collided with base"
		return base, res
	}

	out, err := base.WithColumns(names, values)
	if err != nil {
		// Join invariants were violated; fall back to the unenriched base
		// rather than aborting the load.
		logger.Warn("enrichment join failed, returning base unchanged", slog.String("error", err.Error()))
		res.Applied = false
		res.SkipReason = err.Error()
		return base, res
	}
	logger.Info("base dataset enriched",
		slog.Int("matched_columns", len(matched)),
		slog.Int("duplicate_keys", res.DuplicateKeys))
	return out, res
}

// prefixColumns returns the secondary columns (key excluded) whose stripped,
// case-folded name starts with the stripped, case-folded prefix.
func prefixColumns(f *dataset.Frame, keyColumn, prefix string) []string {
	want := strings.ToLower(strings.TrimSpace(prefix))
	key := strings.TrimSpace(keyColumn)
	var out []string
	for _, name := range f.Columns() {
		if name == key {
			continue
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), want) {
			out = append(out, name)
		}
	}
	return out
}
