// Package csv provides error types for typed row parsing.
package csv

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of all argument errors: unreadable
// streams, bad offsets and rows with the wrong number of fields.
var ErrInvalidArgument = errors.New("invalid argument")

// Argument errors. Each one matches ErrInvalidArgument with errors.Is.
var (
	// ErrNotReadable indicates the stream is nil or cannot report its position.
	ErrNotReadable = fmt.Errorf("%w: stream is not readable", ErrInvalidArgument)

	// ErrNegativeOffset indicates a start offset below zero.
	ErrNegativeOffset = fmt.Errorf("%w: bad offset, offset < 0", ErrInvalidArgument)

	// ErrOffsetOutOfRange indicates a start offset at or past the last row.
	ErrOffsetOutOfRange = fmt.Errorf("%w: bad offset, offset >= row count", ErrInvalidArgument)

	// ErrFieldCount indicates a record has the wrong number of fields.
	ErrFieldCount = fmt.Errorf("%w: wrong number of fields", ErrInvalidArgument)
)

// ErrConversion indicates a field's text does not parse as its declared type.
var ErrConversion = errors.New("cannot convert field")

// ParseError represents a row error with position information.
type ParseError struct {
	// Line is the 1-indexed row number.
	Line int
	// Column is the 1-indexed field number, or 0 when the whole row is at fault.
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func fieldCountError(got, want int) *ParseError {
	return &ParseError{Err: fmt.Errorf("%w (got %d, expected %d)", ErrFieldCount, got, want)}
}

func conversionError(column int, value, typeName string, err error) error {
	return &ParseError{
		Column: column,
		Err:    fmt.Errorf("%w %q to %s: %v", ErrConversion, value, typeName, err),
	}
}
