package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnexpectedNull is returned when a non-nullable column holds a null token.
	ErrUnexpectedNull = errors.New("unexpected null")
	// ErrInvalidValue is returned when a value cannot be parsed into its column type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrEmpty is returned when the input has no header row.
	ErrEmpty = errors.New("empty input")
)

// RowError locates a decode failure inside a dataset.
type RowError struct {
	Dataset string
	Line    int
	Column  string
	Err     error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s line %d: %v", e.Dataset, e.Line, e.Err)
	}
	return fmt.Sprintf("%s line %d column %s: %v", e.Dataset, e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IsDataError reports whether err came from malformed input rather than I/O.
func IsDataError(err error) bool {
	var rowErr *RowError
	return errors.As(err, &rowErr) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrUnexpectedNull) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrEmpty)
}
