package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidArgument indicates a non-positive sample count or an unusable
	// reference value.
	ErrInvalidArgument = errors.New("sim: invalid argument")

	// ErrMissingColumn indicates a table or reference lacks an expected column.
	ErrMissingColumn = errors.New("sim: missing column")

	// ErrNoReferenceData indicates a comparison was requested without
	// reference data.
	ErrNoReferenceData = errors.New("sim: no reference data")
)

// ColumnError wraps an error with the column and row it occurred at.
// Row is -1 when the error is not tied to a single row.
type ColumnError struct {
	Column  string
	Row     int
	Wrapped error
}

func (e *ColumnError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %q: %v", e.Column, e.Wrapped)
	}
	return fmt.Sprintf("column %q, row %d: %v", e.Column, e.Row, e.Wrapped)
}

func (e *ColumnError) Unwrap() error {
	return e.Wrapped
}
