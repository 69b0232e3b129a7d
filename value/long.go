package value

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/allisonhorst/observable-translations/types"
)

// Long represents a signed 64-bit integer column value. Long implements Scalar.
type Long struct {
	pointerValue[int64]
}

func NewLong(v int64) *Long {
	return &Long{newPointerValue[int64](&v)}
}

func NewNullLong() *Long {
	return &Long{newPointerValue[int64](nil)}
}

// Convert Long into reflect value.
func (l *Long) Convert(v reflect.Value) error {
	kind := reflect.Int64
	if TryConvert[int64](l, &l.pointerValue, v, &kind) {
		return nil
	}

	if v.Type().Kind() == reflect.Int {
		if l.value != nil {
			v.SetInt(*l.value)
		}
		return nil
	}

	return fmt.Errorf("column with type 'long' had value that was %T", v)
}

// GetType returns the type of the value.
func (l *Long) GetType() types.Column {
	return types.Long
}

// Parse parses a delimited-text field as a base-10 integer. "" is missing.
func (l *Long) Parse(s string) error {
	if s == "" {
		l.value = nil
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("column with type 'long' had value %q that could not be parsed: %w", s, err)
	}
	l.value = &v
	return nil
}
