// Package csv provides type converters for CSV field values.
package csv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errEmpty = errors.New("empty value")

// Converter is the interface for type converters.
// Converters transform string field values into typed Go values.
type Converter interface {
	// Convert transforms a string value into the target type.
	// Returns the converted value and any error encountered.
	Convert(value string) (interface{}, error)
}

// ConverterFunc is a function adapter for the Converter interface.
type ConverterFunc func(string) (interface{}, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(value string) (interface{}, error) {
	return f(value)
}

// IntConverter converts string values to int64.
type IntConverter struct {
	// Base is the numeric base for parsing (default: 10)
	Base int
}

// Convert implements Converter for IntConverter.
func (c IntConverter) Convert(value string) (interface{}, error) {
	return parseInt(value, c.Base, 64)
}

// FloatConverter converts string values to float64.
type FloatConverter struct{}

// Convert implements Converter for FloatConverter.
func (c FloatConverter) Convert(value string) (interface{}, error) {
	return parseFloat(value)
}

// BoolConverter converts string values to bool.
// Recognizes: true/false, 1/0, yes/no, y/n, on/off, t/f (case-insensitive)
type BoolConverter struct{}

// Convert implements Converter for BoolConverter.
func (c BoolConverter) Convert(value string) (interface{}, error) {
	return parseBool(value)
}

// StringConverter returns the field text unchanged.
type StringConverter struct{}

// Convert implements Converter for StringConverter.
func (c StringConverter) Convert(value string) (interface{}, error) {
	return value, nil
}

// DateConverter converts string values to time.Time.
type DateConverter struct {
	// Format is the date format string (default: "2006-01-02")
	Format string
	// Location is the timezone for parsing (default: UTC)
	Location *time.Location
}

// Convert implements Converter for DateConverter.
func (c DateConverter) Convert(value string) (interface{}, error) {
	return parseTime(value, c.Format, "2006-01-02", c.Location)
}

// TimeConverter converts string values to time.Time with time component.
type TimeConverter struct {
	// Format is the time format string (default: "15:04:05")
	Format string
	// Location is the timezone for parsing (default: UTC)
	Location *time.Location
}

// Convert implements Converter for TimeConverter.
func (c TimeConverter) Convert(value string) (interface{}, error) {
	return parseTime(value, c.Format, "15:04:05", c.Location)
}

// DateTimeConverter converts string values to time.Time with date and time.
type DateTimeConverter struct {
	// Format is the datetime format string (default: "2006-01-02 15:04:05")
	Format string
	// Location is the timezone for parsing (default: UTC)
	Location *time.Location
}

// Convert implements Converter for DateTimeConverter.
func (c DateTimeConverter) Convert(value string) (interface{}, error) {
	return parseTime(value, c.Format, "2006-01-02 15:04:05", c.Location)
}

// ConverterRegistry manages converters by column type.
type ConverterRegistry struct {
	converters map[ColumnType]Converter
}

// NewConverterRegistry creates a new converter registry with built-in converters.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{
		converters: make(map[ColumnType]Converter),
	}
	r.Register(ColumnTypeString, StringConverter{})
	r.Register(ColumnTypeInt, IntConverter{})
	r.Register(ColumnTypeFloat, FloatConverter{})
	r.Register(ColumnTypeBool, BoolConverter{})
	r.Register(ColumnTypeDate, DateConverter{})
	r.Register(ColumnTypeTime, TimeConverter{})
	r.Register(ColumnTypeDateTime, DateTimeConverter{})
	return r
}

// Register adds a converter to the registry, replacing any previous one.
func (r *ConverterRegistry) Register(colType ColumnType, conv Converter) {
	r.converters[colType] = conv
}

// Get retrieves a converter by column type.
func (r *ConverterRegistry) Get(colType ColumnType) (Converter, bool) {
	conv, ok := r.converters[colType]
	return conv, ok
}

func parseInt(value string, base, bitSize int) (int64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, errEmpty
	}
	if base == 0 {
		base = 10
	}
	return strconv.ParseInt(v, base, bitSize)
}

func parseUint(value string, base, bitSize int) (uint64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, errEmpty
	}
	if base == 0 {
		base = 10
	}
	return strconv.ParseUint(v, base, bitSize)
}

func parseFloat(value string) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, errEmpty
	}
	return strconv.ParseFloat(v, 64)
}

func parseBool(value string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	case "":
		return false, errEmpty
	default:
		return false, fmt.Errorf("cannot convert %q to bool", value)
	}
}

func parseTime(value, format, defaultFormat string, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, errEmpty
	}
	if format == "" {
		format = defaultFormat
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(format, v, loc)
}
