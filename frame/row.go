package frame

import (
	"encoding/csv"
	"reflect"
	"strings"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
	"github.com/shopspring/decimal"
)

// Row is a derived, on-demand view of one record within a Table. Rows are
// never stored independently; they read through to the table's columnar
// store.
type Row interface {
	// Ordinal returns the row's index within its table.
	Ordinal() int

	// Table returns the table that the row belongs to.
	Table() *Table

	// Values returns all the values in the row, in column order.
	Values() value.Values

	// Value returns the value at the specified column ordinal.
	Value(i int) value.Scalar

	ValueByColumn(c Column) value.Scalar

	// ValueByName returns the value in the named column, or nil when the
	// column is absent.
	ValueByName(name string) value.Scalar

	// ExtractValues extracts the values from the row and assigns them to the provided pointers.
	// It returns an error if the extraction fails.
	ExtractValues(ptrs ...interface{}) error

	// ToStruct converts the row into a struct and assigns it to the provided pointer.
	// It returns an error if the conversion fails.
	ToStruct(p interface{}) error

	// String returns a string representation of the row.
	String() string

	BoolByOrdinal(i int) (*bool, error)
	LongByOrdinal(i int) (*int64, error)
	RealByOrdinal(i int) (*float64, error)
	DecimalByOrdinal(i int) (*decimal.Decimal, error)
	StringByOrdinal(i int) (string, error)

	BoolByName(name string) (*bool, error)
	LongByName(name string) (*int64, error)
	RealByName(name string) (*float64, error)
	DecimalByName(name string) (*decimal.Decimal, error)
	StringByName(name string) (string, error)
}

// row reads through to its table's columnar store. Streamed rows, which
// exist before any table is materialized, instead carry their values
// directly and use the table only for its schema.
type row struct {
	table   *Table
	ordinal int
	values  value.Values
}

// NewRow builds a standalone row over a table's schema from explicit values.
// It is used by ingestion to deliver rows before a table is materialized.
func NewRow(t *Table, ordinal int, values value.Values) (Row, error) {
	if len(values) != len(t.columns) {
		return nil, errors.ES(errors.OpTable, errors.KShapeMismatch,
			"row has %d values, table has %d columns", len(values), len(t.columns))
	}
	return &row{table: t, ordinal: ordinal, values: values}, nil
}

func (r *row) Ordinal() int {
	return r.ordinal
}

func (r *row) Table() *Table {
	return r.table
}

func (r *row) Values() value.Values {
	if r.values != nil {
		return r.values
	}
	vals := make(value.Values, len(r.table.columns))
	for i := range vals {
		vals[i] = r.table.valueAt(r.ordinal, i)
	}
	return vals
}

func (r *row) Value(i int) value.Scalar {
	if r.values != nil {
		return r.values[i]
	}
	return r.table.valueAt(r.ordinal, i)
}

func (r *row) ValueByColumn(c Column) value.Scalar {
	return r.Value(c.Ordinal())
}

func (r *row) ValueByName(name string) value.Scalar {
	col := r.table.ColumnByName(name)
	if col == nil {
		return nil
	}
	return r.Value(col.Ordinal())
}

func conversionError(from string, to string) error {
	return errors.ES(errors.OpTable, errors.KConversion, "cannot convert %s to %s", from, to)
}

func columnNotFoundError(name string) error {
	return errors.ES(errors.OpTable, errors.KUnknownColumn, "column %q not found", name)
}

func (r *row) BoolByOrdinal(i int) (*bool, error) {
	val := r.Value(i)
	if val.GetType() != types.Bool {
		return nil, conversionError(string(val.GetType()), string(types.Bool))
	}

	return val.(*value.Bool).Value(), nil
}

func (r *row) LongByOrdinal(i int) (*int64, error) {
	val := r.Value(i)
	if val.GetType() != types.Long {
		return nil, conversionError(string(val.GetType()), string(types.Long))
	}

	return val.(*value.Long).Value(), nil
}

func (r *row) RealByOrdinal(i int) (*float64, error) {
	val := r.Value(i)
	if val.GetType() != types.Real {
		return nil, conversionError(string(val.GetType()), string(types.Real))
	}

	return val.(*value.Real).Value(), nil
}

func (r *row) DecimalByOrdinal(i int) (*decimal.Decimal, error) {
	val := r.Value(i)
	if val.GetType() != types.Decimal {
		return nil, conversionError(string(val.GetType()), string(types.Decimal))
	}

	return val.(*value.Decimal).Value(), nil
}

func (r *row) StringByOrdinal(i int) (string, error) {
	val := r.Value(i)
	if val.GetType() != types.String {
		return "", conversionError(string(val.GetType()), string(types.String))
	}

	return val.String(), nil
}

func (r *row) BoolByName(name string) (*bool, error) {
	col := r.table.ColumnByName(name)
	if col == nil {
		return nil, columnNotFoundError(name)
	}
	return r.BoolByOrdinal(col.Ordinal())
}

func (r *row) LongByName(name string) (*int64, error) {
	col := r.table.ColumnByName(name)
	if col == nil {
		return nil, columnNotFoundError(name)
	}
	return r.LongByOrdinal(col.Ordinal())
}

func (r *row) RealByName(name string) (*float64, error) {
	col := r.table.ColumnByName(name)
	if col == nil {
		return nil, columnNotFoundError(name)
	}
	return r.RealByOrdinal(col.Ordinal())
}

func (r *row) DecimalByName(name string) (*decimal.Decimal, error) {
	col := r.table.ColumnByName(name)
	if col == nil {
		return nil, columnNotFoundError(name)
	}
	return r.DecimalByOrdinal(col.Ordinal())
}

func (r *row) StringByName(name string) (string, error) {
	col := r.table.ColumnByName(name)
	if col == nil {
		return "", columnNotFoundError(name)
	}
	return r.StringByOrdinal(col.Ordinal())
}

// ExtractValues fetches all values in the row at once.
// The value of the kth column will be decoded into the kth argument to ExtractValues.
// The number of arguments must be equal to the number of columns.
// Pass nil to specify that a column should be ignored.
// ptrs should be compatible with column types. An error in decoding may leave
// some ptrs set and others not.
func (r *row) ExtractValues(ptrs ...interface{}) error {
	if len(ptrs) != len(r.table.Columns()) {
		return errors.ES(errors.OpTable, errors.KClientArgs,
			"ExtractValues requires %d arguments for this row, had %d", len(r.table.Columns()), len(ptrs))
	}

	for i, val := range r.Values() {
		if ptrs[i] == nil {
			continue
		}
		if err := val.Convert(reflect.ValueOf(ptrs[i]).Elem()); err != nil {
			return errors.E(errors.OpTable, errors.KConversion, err)
		}
	}

	return nil
}

// ToStruct fetches the columns in a row into the fields of a struct. p must be a pointer to struct.
// The rules for mapping a row's columns into a struct's exported fields are:
//
//  1. If a field has a `frame: "column_name"` tag, then decode column
//     'column_name' into the field. A special case is the `frame: "-"`
//     tag, which instructs ToStruct to ignore the field during decoding.
//
//  2. Otherwise, if the name of a field matches the name of a column,
//     decode the column into the field.
//
// Pointer fields will be left nil when the source value is missing, and set
// when it is present. To decode missing values of non-pointer types, use one
// of the value types (Long, Real, ...) as the type of the destination field
// and check its .Valid().
func (r *row) ToStruct(p interface{}) error {
	if t := reflect.TypeOf(p); t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return errors.ES(errors.OpTable, errors.KClientArgs, "type %T is not a pointer to a struct", p)
	}

	return decodeToStruct(r.table.Columns(), r.Values(), p)
}

// String implements fmt.Stringer for a Row. This simply outputs a CSV version of the row.
func (r *row) String() string {
	var line []string
	for _, v := range r.Values() {
		line = append(line, v.String())
	}
	b := &strings.Builder{}
	w := csv.NewWriter(b)
	err := w.Write(line)
	if err != nil {
		return ""
	}
	w.Flush()
	return b.String()
}

// ToStructs converts a table or a slice of rows into a slice of structs.
func ToStructs[T any](data interface{}) ([]T, error) {
	var rows []Row

	switch d := data.(type) {
	case *Table:
		rows = d.Rows()
	case []Row:
		rows = d
	case Row:
		rows = []Row{d}
	default:
		return nil, errors.ES(errors.OpTable, errors.KClientArgs, "invalid data type %T - expected *Table, []Row or Row", data)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		if err := r.ToStruct(&out[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}
