// Package csv provides a streaming, typed row parser for delimited text.
//
// A Parser reads a seekable stream lazily. Each record is split into fields
// with an escape character that toggles literal spans, then decoded into a
// statically declared row type.
//
// # Counting
//
// New skips Offset logical rows, counts the remaining rows once and seeks back
// to the first row to iterate. Both the skip and the count honor the escape
// character, so a record delimiter inside an escaped span never starts a new
// row.
//
// # Thread Safety
//
// A Parser exclusively owns its stream's cursor. Only one iteration may be
// active per Parser; nothing else may read from or seek the stream while the
// Parser is in use.
//
// # Example usage:
//
//	file, err := os.Open("people.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	p, err := csv.New(file, csv.Of3(csv.Int, csv.String, csv.String), csv.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	for row, err := range p.All() {
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Println(row.V0, row.V1, row.V2)
//	}
package csv

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"unicode/utf8"

	"github.com/shapestone/shape-tcsv/internal/tokenizer"
)

// Options configures a Parser.
type Options struct {
	// Offset is the 0-indexed row to start iterating at. Default: 0
	Offset int

	// RecordDelimiter terminates a row. Default: '\n'
	RecordDelimiter rune

	// Comma is the column delimiter. Default: ','
	Comma rune

	// Escape toggles spans in which both delimiters are literal. The escape
	// character itself never appears in a field. 0 disables escaping.
	// Default: '"'
	Escape rune

	// Logger receives debug output about counting. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns the default parser configuration.
func DefaultOptions() Options {
	return Options{
		Offset:          0,
		RecordDelimiter: '\n',
		Comma:           ',',
		Escape:          '"',
		Logger:          slog.Default(),
	}
}

// Validate checks the delimiter configuration. Delimiters must be distinct
// single-byte characters.
func (o Options) Validate() error {
	if o.RecordDelimiter == 0 {
		return fmt.Errorf("%w: record delimiter is not set", ErrInvalidArgument)
	}
	if o.Comma == 0 {
		return fmt.Errorf("%w: column delimiter is not set", ErrInvalidArgument)
	}
	for _, r := range []rune{o.RecordDelimiter, o.Comma, o.Escape} {
		if r < 0 || r >= utf8.RuneSelf {
			return fmt.Errorf("%w: delimiter %q is not a single-byte character", ErrInvalidArgument, r)
		}
	}
	if o.RecordDelimiter == o.Comma {
		return fmt.Errorf("%w: record and column delimiters are both %q", ErrInvalidArgument, o.Comma)
	}
	if o.Escape != 0 && (o.Escape == o.RecordDelimiter || o.Escape == o.Comma) {
		return fmt.Errorf("%w: escape character %q is also a delimiter", ErrInvalidArgument, o.Escape)
	}
	return nil
}

// Parser yields typed rows from a seekable stream.
type Parser[T any] struct {
	lines  *tokenizer.LineReader
	dec    Decoder[T]
	fields tokenizer.Options
	offset int
	total  int
	start  int64
}

// New creates a Parser over src, starting at opts.Offset.
//
// New scans the rest of the stream once to count its rows and leaves the
// stream positioned at the first row to iterate. Iteration is based at the
// stream's current position, not necessarily byte 0.
//
// Errors match ErrInvalidArgument: ErrNotReadable when src is nil or cannot
// be read, ErrNegativeOffset, and ErrOffsetOutOfRange when the stream has no
// row at opts.Offset.
func New[T any](src io.ReadSeeker, dec Decoder[T], opts Options) (*Parser[T], error) {
	if src == nil {
		return nil, ErrNotReadable
	}
	if opts.Offset < 0 {
		return nil, ErrNegativeOffset
	}
	if dec == nil || dec.Arity() < 1 {
		return nil, fmt.Errorf("%w: row shape must declare at least one field", ErrInvalidArgument)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}

	lines := tokenizer.NewLineReader(src, base, tokenizer.LineOptions{
		Delimiter: opts.RecordDelimiter,
		Escape:    opts.Escape,
	})

	skipped, err := lines.Skip(opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}
	if skipped < opts.Offset {
		return nil, fmt.Errorf("%w (offset %d, rows %d)", ErrOffsetOutOfRange, opts.Offset, skipped)
	}
	start := lines.Offset()

	count, err := lines.Count()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}
	total := opts.Offset + count
	if opts.Offset >= total {
		return nil, fmt.Errorf("%w (offset %d, rows %d)", ErrOffsetOutOfRange, opts.Offset, total)
	}

	if err := lines.Seek(start); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}

	logger.Debug("counted rows",
		"offset", opts.Offset,
		"rows", total,
		"start_byte", start,
	)

	return &Parser[T]{
		lines: lines,
		dec:   dec,
		fields: tokenizer.Options{
			Comma:  opts.Comma,
			Escape: opts.Escape,
		},
		offset: opts.Offset,
		total:  total,
		start:  start,
	}, nil
}

// Offset returns the index of the first row iterated.
func (p *Parser[T]) Offset() int {
	return p.offset
}

// Total returns the number of rows in the stream, skipped rows included.
func (p *Parser[T]) Total() int {
	return p.total
}

// Len returns the number of rows an iteration yields.
func (p *Parser[T]) Len() int {
	return p.total - p.offset
}

// Begin rewinds to the first row and returns an iterator positioned on it.
// Calling Begin again restarts iteration; iterators from earlier calls must
// not be used afterwards since they share the stream cursor.
func (p *Parser[T]) Begin() (*Iterator[T], error) {
	if err := p.lines.Seek(p.start); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}

	it := &Iterator[T]{p: p, index: p.offset}
	if !it.Done() {
		if err := it.read(); err != nil {
			return nil, err
		}
	}
	return it, nil
}

// End returns the sentinel iterator one past the last row. It only serves
// as a bound for Equal and holds no fields.
func (p *Parser[T]) End() *Iterator[T] {
	return &Iterator[T]{p: p, index: p.total}
}

// All returns a sequence over every row from Offset on. Each range loop
// restarts from Begin. The first error is yielded once and ends the sequence.
func (p *Parser[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		it, err := p.Begin()
		if err != nil {
			yield(zero, err)
			return
		}

		for !it.Done() {
			row, err := it.Row()
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(row, nil) {
				return
			}
			if err := it.Next(); err != nil {
				yield(zero, err)
				return
			}
		}
	}
}

// Iterator is a position in a Parser's row sequence. It holds the row index
// and the raw fields of that row.
type Iterator[T any] struct {
	p      *Parser[T]
	index  int
	fields []string
}

// read loads and tokenizes the next logical line.
func (it *Iterator[T]) read() error {
	line, err := it.p.lines.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &ParseError{Line: it.Line(), Err: fmt.Errorf("%w: stream ended before the counted rows", ErrNotReadable)}
		}
		return fmt.Errorf("%w: %w", ErrNotReadable, err)
	}
	it.fields = tokenizer.SplitFields(line, it.p.fields)
	return nil
}

// Next advances to the following row, reading it when one remains.
// At the end it does nothing.
func (it *Iterator[T]) Next() error {
	if it.Done() {
		return nil
	}
	it.index++
	if it.Done() {
		return nil
	}
	return it.read()
}

// Done reports whether the iterator is past the last row.
func (it *Iterator[T]) Done() bool {
	return it.index >= it.p.total
}

// Equal reports whether both iterators are at the same row index.
// Fields are not compared. A nil other is never equal.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return other != nil && it.index == other.index
}

// Index returns the 0-indexed row number.
func (it *Iterator[T]) Index() int {
	return it.index
}

// Line returns the 1-indexed row number used in errors.
func (it *Iterator[T]) Line() int {
	return it.index + 1
}

// Fields returns the raw fields of the current row.
func (it *Iterator[T]) Fields() []string {
	return it.fields
}

// Row decodes the current row.
//
// A row whose field count differs from the decoder's arity fails with
// ErrFieldCount; a field that does not parse as its column type fails with
// ErrConversion. Both come wrapped in a *ParseError carrying the line number.
func (it *Iterator[T]) Row() (T, error) {
	var zero T
	if it.Done() {
		return zero, fmt.Errorf("%w: no row at index %d", ErrInvalidArgument, it.index)
	}

	if want := it.p.dec.Arity(); len(it.fields) != want {
		err := fieldCountError(len(it.fields), want)
		err.Line = it.Line()
		return zero, err
	}

	row, err := it.p.dec.Decode(it.fields)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Line == 0 {
			pe.Line = it.Line()
		}
		return zero, err
	}
	return row, nil
}
