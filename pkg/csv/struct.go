// Package csv provides positional struct decoding for typed rows.
package csv

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// fieldSetter parses value into field.
type fieldSetter func(field reflect.Value, value string) error

// structInfo holds cached decoding metadata for a struct type.
type structInfo struct {
	// index maps column i to the struct field index.
	index []int

	// names are the target type names used in conversion errors.
	names []string

	setters []fieldSetter
}

// Global cache for struct metadata, keyed by reflect.Type.
var structCache sync.Map // map[reflect.Type]*structInfo

var timeType = reflect.TypeOf(time.Time{})

// getStructInfo retrieves or computes the metadata for structType.
func getStructInfo(structType reflect.Type) (*structInfo, error) {
	if cached, ok := structCache.Load(structType); ok {
		return cached.(*structInfo), nil
	}

	info, err := computeStructInfo(structType)
	if err != nil {
		return nil, err
	}

	actual, _ := structCache.LoadOrStore(structType, info)
	return actual.(*structInfo), nil
}

// computeStructInfo assigns columns to the exported fields in declaration
// order, skipping fields tagged `csv:"-"`.
func computeStructInfo(structType reflect.Type) (*structInfo, error) {
	info := &structInfo{}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		// Skip unexported fields
		if field.PkgPath != "" {
			continue
		}

		tag := field.Tag.Get("csv")
		if tag == "-" {
			continue
		}

		layout := ""
		for _, opt := range strings.Split(tag, ",")[1:] {
			if v, ok := strings.CutPrefix(opt, "layout="); ok {
				layout = v
			}
		}

		set, err := createSetter(field.Type, layout)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %w", ErrInvalidArgument, field.Name, err)
		}

		info.index = append(info.index, i)
		info.names = append(info.names, field.Type.String())
		info.setters = append(info.setters, set)
	}

	return info, nil
}

// createSetter returns a setter for fieldType. A pointer field is left nil
// for an empty value and otherwise set through its element's setter.
func createSetter(fieldType reflect.Type, layout string) (fieldSetter, error) {
	if fieldType == timeType {
		return func(field reflect.Value, value string) error {
			t, err := parseTime(value, layout, "2006-01-02", time.UTC)
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(t))
			return nil
		}, nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		return func(field reflect.Value, value string) error {
			field.SetString(value)
			return nil
		}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := fieldType.Bits()
		return func(field reflect.Value, value string) error {
			i, err := parseInt(value, 10, bits)
			if err != nil {
				return err
			}
			field.SetInt(i)
			return nil
		}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := fieldType.Bits()
		return func(field reflect.Value, value string) error {
			u, err := parseUint(value, 10, bits)
			if err != nil {
				return err
			}
			field.SetUint(u)
			return nil
		}, nil

	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string) error {
			f, err := parseFloat(value)
			if err != nil {
				return err
			}
			if field.OverflowFloat(f) {
				return fmt.Errorf("value %v overflows %s", f, field.Type())
			}
			field.SetFloat(f)
			return nil
		}, nil

	case reflect.Bool:
		return func(field reflect.Value, value string) error {
			b, err := parseBool(value)
			if err != nil {
				return err
			}
			field.SetBool(b)
			return nil
		}, nil

	case reflect.Ptr:
		elem, err := createSetter(fieldType.Elem(), layout)
		if err != nil {
			return nil, err
		}
		return func(field reflect.Value, value string) error {
			if strings.TrimSpace(value) == "" {
				field.SetZero()
				return nil
			}
			v := reflect.New(fieldType.Elem())
			if err := elem(v.Elem(), value); err != nil {
				return err
			}
			field.Set(v)
			return nil
		}, nil

	default:
		return nil, fmt.Errorf("unsupported field type %s", fieldType)
	}
}

type structDecoder[T any] struct {
	info *structInfo
}

// Struct returns a decoder that fills the exported fields of struct type T
// positionally: the i-th decoded field takes column i. Fields tagged
// `csv:"-"` are skipped, and the row arity is the number of remaining
// fields. Time fields accept a `csv:",layout=..."` option and default to
// "2006-01-02". Pointer fields are nil for empty values.
//
//	type trade struct {
//	    ID    uint32
//	    Price float32
//	    Note  *string
//	}
//	dec, err := csv.Struct[trade]()
//
// Errors match ErrInvalidArgument when T is not a struct or has a field of
// an unsupported type.
func Struct[T any]() (Decoder[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: Struct requires a struct type, got %s", ErrInvalidArgument, t)
	}

	info, err := getStructInfo(t)
	if err != nil {
		return nil, err
	}
	return structDecoder[T]{info: info}, nil
}

func (d structDecoder[T]) Arity() int { return len(d.info.setters) }

func (d structDecoder[T]) Decode(fields []string) (T, error) {
	var row T
	if err := checkArity(fields, len(d.info.setters)); err != nil {
		return row, err
	}

	v := reflect.ValueOf(&row).Elem()
	for i, set := range d.info.setters {
		if err := set(v.Field(d.info.index[i]), fields[i]); err != nil {
			var zero T
			return zero, conversionError(i+1, fields[i], d.info.names[i], err)
		}
	}
	return row, nil
}
