package queryitems

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// ValueMarshaler is the interface implemented by types that can render
// themselves as a single query value.
type ValueMarshaler interface {
	MarshalQueryValue() (string, error)
}

var (
	valueMarshalerType = reflect.TypeOf((*ValueMarshaler)(nil)).Elem()
	textMarshalerType  = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	timeType           = reflect.TypeOf(time.Time{})
)

// formatScalar returns the string form of a leaf value.
func formatScalar(v interface{}, o *options) (string, error) {
	switch s := v.(type) {
	case ValueMarshaler:
		return s.MarshalQueryValue()
	case encoding.TextMarshaler:
		switch t := v.(type) {
		case time.Time:
			return t.Format(o.timeLayout), nil
		case *time.Time:
			return t.Format(o.timeLayout), nil
		}
		b, err := s.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case fmt.Stringer:
		return s.String(), nil
	}
	return formatKind(reflect.ValueOf(v))
}

func formatKind(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Invalid:
		return "", fmt.Errorf("%w: invalid value", ErrUnsupportedType)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
}

// isLeafType reports whether values of t render as a single value even when
// their kind is a struct, slice or map.
func isLeafType(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	if t.Implements(valueMarshalerType) || t.Implements(textMarshalerType) {
		return true
	}
	return reflect.PointerTo(t).Implements(valueMarshalerType) ||
		reflect.PointerTo(t).Implements(textMarshalerType)
}
