package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/allisonhorst/observable-translations/types"
)

// Real represents a 64-bit floating point column value. Real implements Scalar.
type Real struct {
	pointerValue[float64]
}

func NewReal(v float64) *Real {
	return &Real{newPointerValue[float64](&v)}
}

func NewNullReal() *Real {
	return &Real{newPointerValue[float64](nil)}
}

// Convert Real into reflect value.
func (r *Real) Convert(v reflect.Value) error {
	kind := reflect.Float64
	if TryConvert[float64](r, &r.pointerValue, v, &kind) {
		return nil
	}

	return fmt.Errorf("column with type 'real' had value that was %T", v)
}

// GetType returns the type of the value.
func (r *Real) GetType() types.Column {
	return types.Real
}

// Parse parses a delimited-text field as a float. "NaN", "Inf" and "-Inf"
// parse to their IEEE values; "" is missing.
func (r *Real) Parse(s string) error {
	if s == "" {
		r.value = nil
		return nil
	}
	switch s {
	case "NaN":
		v := math.NaN()
		r.value = &v
		return nil
	case "Inf", "+Inf":
		v := math.Inf(1)
		r.value = &v
		return nil
	case "-Inf":
		v := math.Inf(-1)
		r.value = &v
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("column with type 'real' had value %q that could not be parsed: %w", s, err)
	}
	r.value = &v
	return nil
}
