/*
Package value holds the scalar value representations used by table columns.
All types store the native value behind a pointer; a nil pointer marks a
missing value.

# Scalar

A value.Scalar can hold any of the scalar types that define column data.
We represent that with an interface:

	type Scalar interface

This interface can hold the following values:

	value.Bool
	value.Long
	value.Real
	value.Decimal
	value.String

Each type provides at minimum:

	.Value()   - The type specific value, nil when missing.
	.Valid()   - True if the value is non-missing.
	.String()  - The string representation of the value, "" when missing.

Parse is used when ingesting delimited text; Convert is for internal use by
row-to-struct decoding. Use .Value() or frame.Row.ToStruct() instead.
*/
package value

import (
	"fmt"
	"reflect"

	"github.com/allisonhorst/observable-translations/types"
)

type pointerValue[T any] struct {
	value *T
}

func newPointerValue[T any](v *T) pointerValue[T] {
	return pointerValue[T]{value: v}
}

func (p *pointerValue[T]) String() string {
	if p.value == nil {
		return ""
	}
	return fmt.Sprintf("%v", *p.value)
}

func (p *pointerValue[T]) GetValue() interface{} {
	if p.value == nil {
		return nil
	}
	return p.value
}

func (p *pointerValue[T]) Value() *T {
	return p.value
}

func (p *pointerValue[T]) Valid() bool {
	return p.value != nil
}

// TryConvert assigns the held value into v when v's type is T, *T, or the
// holder's own type. It reports whether an assignment rule applied; missing
// values leave v at its zero value.
func TryConvert[T any](holder interface{}, p *pointerValue[T], v reflect.Value, kind *reflect.Kind) bool {
	t := v.Type()

	if kind != nil && t.Kind() == *kind {
		if p.value != nil {
			v.Set(reflect.ValueOf(*p.value))
		}
		return true
	}

	if t.ConvertibleTo(reflect.TypeOf(p.value)) {
		if p.value != nil {
			v.Set(reflect.ValueOf(p.value))
		}
		return true
	}

	newT := new(T)
	if t.ConvertibleTo(reflect.TypeOf(newT)) {
		if p.value != nil {
			b := newT
			*b = *p.value
			v.Set(reflect.ValueOf(b))
		}
		return true
	}

	if t.ConvertibleTo(reflect.TypeOf(holder)) {
		v.Set(reflect.ValueOf(holder))
		return true
	}

	if t.ConvertibleTo(reflect.TypeOf(&holder)) {
		v.Set(reflect.ValueOf(&holder))
		return true
	}

	return false
}

// Scalar represents a single table cell value.
type Scalar interface {
	fmt.Stringer
	Convert(v reflect.Value) error
	GetValue() interface{}
	GetType() types.Column
	Valid() bool
	Parse(s string) error
}

// Default returns the missing value of the given column type.
func Default(t types.Column) Scalar {
	switch t {
	case types.Bool:
		return NewNullBool()
	case types.Long:
		return NewNullLong()
	case types.Real:
		return NewNullReal()
	case types.Decimal:
		return NewNullDecimal()
	case types.String:
		return NewNullString()
	default:
		return nil
	}
}

// ParseAs parses one delimited-text field into a scalar of the given column
// type. The empty string parses to the missing value for every type.
func ParseAs(t types.Column, s string) (Scalar, error) {
	v := Default(t)
	if v == nil {
		return nil, fmt.Errorf("unknown column type %q", t)
	}
	if err := v.Parse(s); err != nil {
		return nil, err
	}
	return v, nil
}

// Values is a list of scalar values, usually an ordered row.
type Values []Scalar
