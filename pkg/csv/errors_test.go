package csv_test

import (
	"errors"
	"testing"

	"github.com/shapestone/shape-tcsv/pkg/csv"
)

func TestParseError(t *testing.T) {
	t.Run("whole row", func(t *testing.T) {
		err := &csv.ParseError{
			Line: 5,
			Err:  csv.ErrFieldCount,
		}

		got := err.Error()
		want := "parse error on line 5: invalid argument: wrong number of fields"
		if got != want {
			t.Errorf("ParseError.Error() = %q, want %q", got, want)
		}
	})

	t.Run("single field", func(t *testing.T) {
		err := &csv.ParseError{
			Line:   3,
			Column: 2,
			Err:    errors.New("bad digit"),
		}

		got := err.Error()
		want := "parse error on line 3, column 2: bad digit"
		if got != want {
			t.Errorf("ParseError.Error() = %q, want %q", got, want)
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		underlying := errors.New("test error")
		err := &csv.ParseError{
			Line: 1,
			Err:  underlying,
		}

		if !errors.Is(err, underlying) {
			t.Error("ParseError.Unwrap() should return the underlying error")
		}
	})
}

func TestArgumentErrors(t *testing.T) {
	for _, err := range []error{
		csv.ErrNotReadable,
		csv.ErrNegativeOffset,
		csv.ErrOffsetOutOfRange,
		csv.ErrFieldCount,
	} {
		if !errors.Is(err, csv.ErrInvalidArgument) {
			t.Errorf("%v should match ErrInvalidArgument", err)
		}
	}
	if errors.Is(csv.ErrConversion, csv.ErrInvalidArgument) {
		t.Error("ErrConversion should not match ErrInvalidArgument")
	}
}
