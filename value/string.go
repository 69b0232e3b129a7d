package value

import (
	"fmt"
	"reflect"

	"github.com/allisonhorst/observable-translations/types"
)

// String represents a string column value. String implements Scalar.
//
// String is the one scalar type where the empty string and the missing value
// are indistinguishable in delimited text; Parse("") yields missing, and a
// genuinely empty string has to be constructed with NewString("").
type String struct {
	pointerValue[string]
}

func NewString(v string) *String {
	return &String{newPointerValue[string](&v)}
}

func NewNullString() *String {
	return &String{newPointerValue[string](nil)}
}

// Convert String into reflect value.
func (s *String) Convert(v reflect.Value) error {
	kind := reflect.String
	if TryConvert[string](s, &s.pointerValue, v, &kind) {
		return nil
	}

	return fmt.Errorf("column with type 'string' had value that was %T", v)
}

// GetType returns the type of the value.
func (s *String) GetType() types.Column {
	return types.String
}

// Parse stores the field verbatim. "" is missing.
func (s *String) Parse(str string) error {
	if str == "" {
		s.value = nil
		return nil
	}
	s.value = &str
	return nil
}
