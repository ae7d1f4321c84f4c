package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SchemaError reports required columns missing from an input table. It is
// the one failure in the aggregation core that must propagate rather than
// degrade: a missing required column means the input data model itself is
// wrong.
type SchemaError struct {
	Where   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns in %s: %s", e.Where, strings.Join(e.Missing, ", "))
}

// IsSchemaError reports whether err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// ValidateColumns checks that every required column is present, returning a
// SchemaError naming the missing ones in sorted order.
func ValidateColumns(f *Frame, required []string, where string) error {
	var missing []string
	for _, col := range required {
		if !f.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaError{Where: where, Missing: missing}
	}
	return nil
}
