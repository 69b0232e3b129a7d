package value

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/allisonhorst/observable-translations/types"
)

// Bool represents a boolean column value. Bool implements Scalar.
type Bool struct {
	pointerValue[bool]
}

func NewBool(v bool) *Bool {
	return &Bool{newPointerValue[bool](&v)}
}

func NewNullBool() *Bool {
	return &Bool{newPointerValue[bool](nil)}
}

// Convert Bool into reflect value.
func (bo *Bool) Convert(v reflect.Value) error {
	kind := reflect.Bool
	if TryConvert[bool](bo, &bo.pointerValue, v, &kind) {
		return nil
	}

	return fmt.Errorf("column with type 'bool' had value that was %T", v)
}

// GetType returns the type of the value.
func (bo *Bool) GetType() types.Column {
	return types.Bool
}

// Parse parses a delimited-text field. Accepts the forms strconv.ParseBool
// accepts; "" is missing.
func (bo *Bool) Parse(s string) error {
	if s == "" {
		bo.value = nil
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("column with type 'bool' had value %q that could not be parsed: %w", s, err)
	}
	bo.value = &v
	return nil
}
