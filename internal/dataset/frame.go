// Package dataset provides the tabular building blocks shared by the
// aggregation engine: a light column-oriented Frame for spreadsheet-shaped
// data, numeric coercion helpers, and the immutable Snapshot that is loaded
// once at startup and threaded into every computation.
package dataset

import (
	"fmt"
	"strings"
)

// Frame is an in-memory table with named columns and string cells, the shape
// both source workbooks arrive in. Cells keep their raw text; numeric
// interpretation happens at the point of use so mixed-type columns stay
// tolerable. A Frame is treated as read-only once handed to a Snapshot.
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// NewFrame builds a frame from a header and data rows. Column names are
// trimmed; on duplicate names the first occurrence wins the name lookup.
// Short rows are allowed and read as empty cells.
func NewFrame(columns []string, rows [][]string) *Frame {
	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c)
		cols[i] = name
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return &Frame{cols: cols, index: index, rows: rows}
}

// Columns returns the column names in table order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	copy(out, f.cols)
	return out
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.rows) }

// HasColumn reports whether a column with the trimmed name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[strings.TrimSpace(name)]
	return ok
}

// ColumnIndex returns the position of the named column.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	i, ok := f.index[strings.TrimSpace(name)]
	return i, ok
}

// Cell returns the trimmed cell value at (row, column name). Out-of-range
// rows and unknown columns read as the empty string.
func (f *Frame) Cell(row int, name string) string {
	i, ok := f.index[strings.TrimSpace(name)]
	if !ok {
		return ""
	}
	return f.CellAt(row, i)
}

// CellAt returns the trimmed cell value at (row, column position).
func (f *Frame) CellAt(row, col int) string {
	if row < 0 || row >= len(f.rows) {
		return ""
	}
	r := f.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Row returns a copy of the raw row.
func (f *Frame) Row(i int) []string {
	if i < 0 || i >= len(f.rows) {
		return nil
	}
	out := make([]string, len(f.rows[i]))
	copy(out, f.rows[i])
	return out
}

// Select returns a new frame holding only the named columns, in the given
// order. Unknown names yield empty columns so callers can rely on shape.
func (f *Frame) Select(names []string) *Frame {
	rows := make([][]string, len(f.rows))
	for r := range f.rows {
		row := make([]string, len(names))
		for c, name := range names {
			row[c] = f.Cell(r, name)
		}
		rows[r] = row
	}
	return NewFrame(names, rows)
}

// WithColumns returns a new frame extended by the given columns. Every value
// slice must have one entry per row.
func (f *Frame) WithColumns(names []string, values [][]string) (*Frame, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("dataset: %d column names for %d value slices", len(names), len(values))
	}
	for i, vals := range values {
		if len(vals) != len(f.rows) {
			return nil, fmt.Errorf("dataset: column %q has %d values for %d rows", names[i], len(vals), len(f.rows))
		}
	}
	cols := append(f.Columns(), names...)
	rows := make([][]string, len(f.rows))
	for r, row := range f.rows {
		extended := make([]string, 0, len(f.cols)+len(names))
		extended = append(extended, row...)
		for len(extended) < len(f.cols) {
			extended = append(extended, "")
		}
		for _, vals := range values {
			extended = append(extended, vals[r])
		}
		rows[r] = extended
	}
	return NewFrame(cols, rows), nil
}

// NormalizeColumn trims every cell of the named column in place. Key columns
// are normalized this way on both sides before a join so that stray
// whitespace never splits a key.
func (f *Frame) NormalizeColumn(name string) {
	i, ok := f.index[strings.TrimSpace(name)]
	if !ok {
		return
	}
	for _, row := range f.rows {
		if i < len(row) {
			row[i] = strings.TrimSpace(row[i])
		}
	}
}
