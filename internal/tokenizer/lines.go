package tokenizer

import (
	"bufio"
	"errors"
	"io"
)

// LineOptions configures logical line reading.
type LineOptions struct {
	// Delimiter terminates a record. Must be a single-byte character.
	Delimiter rune
	// Escape toggles spans in which Delimiter does not terminate the record.
	// 0 disables escaping.
	Escape rune
}

// LineReader reads escape-aware logical lines from a seekable stream and
// tracks the byte offset of the next unread byte.
//
// A LineReader owns the stream's cursor: nothing else may read from or seek
// the stream while it is in use.
type LineReader struct {
	src      io.ReadSeeker
	r        *bufio.Reader
	offset   int64
	delim    byte
	escape   byte
	escaping bool
	buf      []byte
}

// NewLineReader creates a LineReader positioned at the stream's current
// offset, which the caller supplies as base.
func NewLineReader(src io.ReadSeeker, base int64, opts LineOptions) *LineReader {
	return &LineReader{
		src:      src,
		r:        bufio.NewReader(src),
		offset:   base,
		delim:    byte(opts.Delimiter),
		escape:   byte(opts.Escape),
		escaping: opts.Escape != 0,
	}
}

// ReadLine reads one logical line. The terminating delimiter is consumed
// and excluded; escape characters are kept for SplitFields.
//
// io.EOF is returned only when the stream had no bytes left. A final record
// without a trailing delimiter is returned with a nil error.
func (l *LineReader) ReadLine() (string, error) {
	l.buf = l.buf[:0]
	escaped := false
	read := false

	for {
		b, err := l.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				return string(l.buf), nil
			}
			return "", err
		}
		l.offset++
		read = true

		if l.escaping && b == l.escape {
			escaped = !escaped
		} else if b == l.delim && !escaped {
			return string(l.buf), nil
		}
		l.buf = append(l.buf, b)
	}
}

// Skip discards up to n logical lines and reports how many were skipped.
// Running out of input is not an error; the count tells the caller.
func (l *LineReader) Skip(n int) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := l.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				return i, nil
			}
			return i, err
		}
	}
	return n, nil
}

// Count reads to the end of the stream and returns the number of logical
// lines read.
func (l *LineReader) Count() (int, error) {
	n := 0
	for {
		if _, err := l.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		n++
	}
}

// Offset returns the byte offset of the next unread byte.
func (l *LineReader) Offset() int64 {
	return l.offset
}

// Seek moves the stream to offset and drops any buffered read-ahead.
func (l *LineReader) Seek(offset int64) error {
	if _, err := l.src.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	l.r.Reset(l.src)
	l.offset = offset
	return nil
}
