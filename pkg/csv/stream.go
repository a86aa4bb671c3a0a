package csv

// Scanner provides a bufio.Scanner style loop over a Parser's rows.
//
// Example usage:
//
//	file, _ := os.Open("people.csv")
//	defer file.Close()
//
//	p, err := csv.New(file, csv.Of3(csv.Int, csv.String, csv.String), csv.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	scanner := csv.NewScanner(p)
//	for scanner.Scan() {
//	    row := scanner.Row()
//	    fmt.Println(row.V1)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner[T any] struct {
	parser  *Parser[T]
	it      *Iterator[T]
	row     T
	err     error
	started bool
}

// NewScanner creates a Scanner that starts at the parser's first row.
// The scanner drives the parser's cursor; do not iterate the parser
// elsewhere while scanning.
func NewScanner[T any](p *Parser[T]) *Scanner[T] {
	return &Scanner[T]{parser: p}
}

// Scan advances the scanner to the next row and decodes it.
// It returns false at the end of the rows or on the first error.
// After Scan returns false, the Err method will return any error that occurred.
func (s *Scanner[T]) Scan() bool {
	if s.err != nil {
		return false
	}

	if !s.started {
		s.started = true
		if s.it, s.err = s.parser.Begin(); s.err != nil {
			return false
		}
	} else {
		if s.it.Done() {
			return false
		}
		if s.err = s.it.Next(); s.err != nil {
			return false
		}
	}

	if s.it.Done() {
		return false
	}

	s.row, s.err = s.it.Row()
	return s.err == nil
}

// Row returns the most recently decoded row.
// This should only be called after Scan() returns true.
func (s *Scanner[T]) Row() T {
	return s.row
}

// Line returns the 1-indexed row number of the current row, or 0 before
// the first call to Scan.
func (s *Scanner[T]) Line() int {
	if s.it == nil {
		return 0
	}
	return s.it.Line()
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at the end of the rows.
func (s *Scanner[T]) Err() error {
	return s.err
}
