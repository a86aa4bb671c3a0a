// Package csv provides row shapes: typed columns, fixed-arity tuples and
// run-time schemas.
package csv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Decoder turns the raw fields of one row into a typed row value.
// The row shape is fixed for the decoder's lifetime.
type Decoder[T any] interface {
	// Arity returns the number of fields every row must have.
	Arity() int
	// Decode converts fields positionally, left to right.
	Decode(fields []string) (T, error)
}

// Column is a typed field accessor: it names a target type and parses one
// field into it.
type Column[T any] struct {
	// Name identifies the target type in error messages.
	Name string
	// Parse converts the raw field text.
	Parse func(value string) (T, error)
}

// convert parses value as the column at 0-indexed position index.
func (c Column[T]) convert(index int, value string) (T, error) {
	v, err := c.Parse(value)
	if err != nil {
		var zero T
		return zero, conversionError(index+1, value, c.Name, err)
	}
	return v, nil
}

var errNoConverter = errors.New("no converter registered")

// Built-in columns.
var (
	Int = Column[int]{Name: "int", Parse: func(value string) (int, error) {
		v, err := parseInt(value, 10, strconv.IntSize)
		return int(v), err
	}}

	Int64 = Column[int64]{Name: "int64", Parse: func(value string) (int64, error) {
		return parseInt(value, 10, 64)
	}}

	Float = Column[float64]{Name: "float", Parse: parseFloat}

	Bool = Column[bool]{Name: "bool", Parse: parseBool}

	// String keeps the field bytes unchanged, including bytes that are not
	// valid UTF-8.
	String = Column[string]{Name: "string", Parse: func(value string) (string, error) {
		return value, nil
	}}
)

// Date returns a column parsing times in the given layout, in UTC.
// An empty layout means "2006-01-02".
func Date(layout string) Column[time.Time] {
	return Column[time.Time]{Name: "date", Parse: func(value string) (time.Time, error) {
		return parseTime(value, layout, "2006-01-02", time.UTC)
	}}
}

func checkArity(fields []string, arity int) error {
	if len(fields) != arity {
		return fieldCountError(len(fields), arity)
	}
	return nil
}

// Tuple1 is a row of one typed field.
type Tuple1[A any] struct {
	V0 A
}

// Values returns the row's fields in order.
func (t Tuple1[A]) Values() []interface{} {
	return []interface{}{t.V0}
}

// Tuple2 is a row of two typed fields.
type Tuple2[A, B any] struct {
	V0 A
	V1 B
}

// Values returns the row's fields in order.
func (t Tuple2[A, B]) Values() []interface{} {
	return []interface{}{t.V0, t.V1}
}

// Tuple3 is a row of three typed fields.
type Tuple3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

// Values returns the row's fields in order.
func (t Tuple3[A, B, C]) Values() []interface{} {
	return []interface{}{t.V0, t.V1, t.V2}
}

// Tuple4 is a row of four typed fields.
type Tuple4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

// Values returns the row's fields in order.
func (t Tuple4[A, B, C, D]) Values() []interface{} {
	return []interface{}{t.V0, t.V1, t.V2, t.V3}
}

type tuple1Decoder[A any] struct {
	c0 Column[A]
}

// Of1 returns a decoder for rows of exactly one field.
func Of1[A any](c0 Column[A]) Decoder[Tuple1[A]] {
	return tuple1Decoder[A]{c0}
}

func (d tuple1Decoder[A]) Arity() int { return 1 }

func (d tuple1Decoder[A]) Decode(fields []string) (t Tuple1[A], err error) {
	if err = checkArity(fields, 1); err != nil {
		return t, err
	}
	t.V0, err = d.c0.convert(0, fields[0])
	return t, err
}

type tuple2Decoder[A, B any] struct {
	c0 Column[A]
	c1 Column[B]
}

// Of2 returns a decoder for rows of exactly two fields.
func Of2[A, B any](c0 Column[A], c1 Column[B]) Decoder[Tuple2[A, B]] {
	return tuple2Decoder[A, B]{c0, c1}
}

func (d tuple2Decoder[A, B]) Arity() int { return 2 }

func (d tuple2Decoder[A, B]) Decode(fields []string) (t Tuple2[A, B], err error) {
	if err = checkArity(fields, 2); err != nil {
		return t, err
	}
	if t.V0, err = d.c0.convert(0, fields[0]); err != nil {
		return t, err
	}
	t.V1, err = d.c1.convert(1, fields[1])
	return t, err
}

type tuple3Decoder[A, B, C any] struct {
	c0 Column[A]
	c1 Column[B]
	c2 Column[C]
}

// Of3 returns a decoder for rows of exactly three fields.
//
//	dec := csv.Of3(csv.Int, csv.String, csv.String)
func Of3[A, B, C any](c0 Column[A], c1 Column[B], c2 Column[C]) Decoder[Tuple3[A, B, C]] {
	return tuple3Decoder[A, B, C]{c0, c1, c2}
}

func (d tuple3Decoder[A, B, C]) Arity() int { return 3 }

func (d tuple3Decoder[A, B, C]) Decode(fields []string) (t Tuple3[A, B, C], err error) {
	if err = checkArity(fields, 3); err != nil {
		return t, err
	}
	if t.V0, err = d.c0.convert(0, fields[0]); err != nil {
		return t, err
	}
	if t.V1, err = d.c1.convert(1, fields[1]); err != nil {
		return t, err
	}
	t.V2, err = d.c2.convert(2, fields[2])
	return t, err
}

type tuple4Decoder[A, B, C, D any] struct {
	c0 Column[A]
	c1 Column[B]
	c2 Column[C]
	c3 Column[D]
}

// Of4 returns a decoder for rows of exactly four fields.
func Of4[A, B, C, D any](c0 Column[A], c1 Column[B], c2 Column[C], c3 Column[D]) Decoder[Tuple4[A, B, C, D]] {
	return tuple4Decoder[A, B, C, D]{c0, c1, c2, c3}
}

func (d tuple4Decoder[A, B, C, D]) Arity() int { return 4 }

func (d tuple4Decoder[A, B, C, D]) Decode(fields []string) (t Tuple4[A, B, C, D], err error) {
	if err = checkArity(fields, 4); err != nil {
		return t, err
	}
	if t.V0, err = d.c0.convert(0, fields[0]); err != nil {
		return t, err
	}
	if t.V1, err = d.c1.convert(1, fields[1]); err != nil {
		return t, err
	}
	if t.V2, err = d.c2.convert(2, fields[2]); err != nil {
		return t, err
	}
	t.V3, err = d.c3.convert(3, fields[3])
	return t, err
}

// ColumnType names the target type of a run-time schema column.
type ColumnType string

const (
	ColumnTypeString   ColumnType = "string"
	ColumnTypeInt      ColumnType = "int"
	ColumnTypeFloat    ColumnType = "float"
	ColumnTypeBool     ColumnType = "bool"
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeTime     ColumnType = "time"
	ColumnTypeDateTime ColumnType = "datetime"
)

// Schema is a row shape only known at run time. Each column is converted
// by the registry's converter for its type.
type Schema struct {
	// Columns lists the column types in order.
	Columns []ColumnType
	// Registry resolves column types to converters.
	// Default: NewConverterRegistry()
	Registry *ConverterRegistry
}

// NewSchema creates a schema with the built-in converters.
func NewSchema(types ...ColumnType) *Schema {
	return &Schema{
		Columns:  types,
		Registry: NewConverterRegistry(),
	}
}

// ParseSchema builds a schema from a comma-separated list of column types,
// such as "int,string,string".
func ParseSchema(list string) (*Schema, error) {
	s := NewSchema()
	for _, name := range strings.Split(list, ",") {
		colType := ColumnType(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := s.Registry.Get(colType); !ok {
			return nil, fmt.Errorf("%w: unknown column type %q", ErrInvalidArgument, name)
		}
		s.Columns = append(s.Columns, colType)
	}
	return s, nil
}

// Arity implements Decoder.
func (s *Schema) Arity() int {
	return len(s.Columns)
}

// Decode implements Decoder.
func (s *Schema) Decode(fields []string) (Record, error) {
	if err := checkArity(fields, len(s.Columns)); err != nil {
		return Record{}, err
	}
	registry := s.Registry
	if registry == nil {
		registry = NewConverterRegistry()
	}

	values := make([]interface{}, len(fields))
	for i, colType := range s.Columns {
		conv, ok := registry.Get(colType)
		if !ok {
			return Record{}, conversionError(i+1, fields[i], string(colType), errNoConverter)
		}
		v, err := conv.Convert(fields[i])
		if err != nil {
			return Record{}, conversionError(i+1, fields[i], string(colType), err)
		}
		values[i] = v
	}
	return Record{values: values}, nil
}

// Record is a row decoded by a Schema.
type Record struct {
	values []interface{}
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.values)
}

// Get returns the field at index i.
func (r Record) Get(i int) (interface{}, bool) {
	if i < 0 || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Values returns the row's fields in order.
func (r Record) Values() []interface{} {
	return r.values
}
