package frame

// to_struct.go provides the machinery for decoding a row into a caller's
// struct via reflection. The exported surface is Row.ToStruct and ToStructs.

import (
	"reflect"
	"strings"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/value"
)

// decodeToStruct takes a list of columns and a row to decode into "p" which
// must be a pointer to a struct (enforced by the caller).
func decodeToStruct(cols []Column, row value.Values, p interface{}) error {
	t := reflect.TypeOf(p)
	v := reflect.ValueOf(p)
	fields := newFields(cols, t)

	for i, col := range cols {
		if err := fields.convert(col, row[i], t, v); err != nil {
			return err
		}
	}
	return nil
}

// fields represents the fields inside a struct.
type fields struct {
	colNameToFieldName map[string]string
}

// newFields takes in the Columns from our row and the reflect.Type of our *struct.
func newFields(cols []Column, ptr reflect.Type) fields {
	nFields := fields{colNameToFieldName: map[string]string{}}
	for i := 0; i < ptr.Elem().NumField(); i++ {
		field := ptr.Elem().Field(i)
		if tag := field.Tag.Get("frame"); strings.TrimSpace(tag) != "" {
			if tag == "-" {
				nFields.colNameToFieldName[field.Name] = "-"
				continue
			}
			nFields.colNameToFieldName[tag] = field.Name
		} else {
			nFields.colNameToFieldName[field.Name] = field.Name
		}
	}

	return nFields
}

// convert stores the value k for column col into the struct behind v.
// Columns with no matching field are ignored.
func (f fields) convert(col Column, k value.Scalar, t reflect.Type, v reflect.Value) error {
	fieldName, ok := f.colNameToFieldName[col.Name()]
	if !ok {
		return nil
	}

	if fieldName == "-" {
		return nil
	}

	if err := k.Convert(v.Elem().FieldByName(fieldName)); err != nil {
		return errors.ES(errors.OpTable, errors.KConversion,
			"column %q could not be stored in struct field %q: %s", col.Name(), fieldName, err)
	}
	return nil
}
