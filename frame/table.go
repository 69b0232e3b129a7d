/*
Package frame holds the immutable, column-oriented Table and the stage verbs
that transform one Table into another (Filter, Select, GroupBy/Aggregate,
Derive, OrderBy, Head, Tail, Distinct).

Every stage returns a new Table; input tables are never mutated. Column
storage is shared between input and output wherever a stage does not change
the values themselves, which makes chains of stages cheap.
*/
package frame

import (
	"strings"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
	"github.com/google/uuid"
)

// ColumnData is one named column of scalar values, the unit of table
// construction. A nil entry in Values becomes the missing value of the
// column's type.
type ColumnData struct {
	Name   string
	Type   types.Column
	Values value.Values
}

// Table is an immutable in-memory columnar dataset. All columns hold the
// same number of values and column names are unique.
type Table struct {
	id            string
	name          string
	columns       []Column
	columnsByName map[string]Column
	// data is column-major: data[col.Ordinal()][rowIndex].
	data     []value.Values
	rowCount int
}

// New constructs a Table from ordered column definitions. It fails with
// KShapeMismatch when the columns are of unequal length, KDuplicateColumn
// when a name repeats, KClientArgs on an unknown column type, and
// KConversion when a value's type differs from its column's declared type.
func New(name string, cols ...ColumnData) (*Table, error) {
	t := &Table{
		id:            uuid.NewString(),
		name:          name,
		columnsByName: make(map[string]Column, len(cols)),
	}

	for i, cd := range cols {
		if strings.TrimSpace(cd.Name) == "" {
			return nil, errors.ES(errors.OpTable, errors.KClientArgs, "column %d has an empty name", i)
		}
		if !types.Valid(cd.Type) {
			return nil, errors.ES(errors.OpTable, errors.KClientArgs, "column %q has unknown type %q", cd.Name, cd.Type)
		}
		if _, ok := t.columnsByName[cd.Name]; ok {
			return nil, errors.ES(errors.OpTable, errors.KDuplicateColumn, "column %q appears more than once", cd.Name)
		}
		if i == 0 {
			t.rowCount = len(cd.Values)
		} else if len(cd.Values) != t.rowCount {
			return nil, errors.ES(errors.OpTable, errors.KShapeMismatch,
				"column %q has %d values, want %d", cd.Name, len(cd.Values), t.rowCount)
		}

		vals := make(value.Values, len(cd.Values))
		for j, v := range cd.Values {
			if v == nil {
				vals[j] = value.Default(cd.Type)
				continue
			}
			if v.GetType() != cd.Type {
				return nil, errors.ES(errors.OpTable, errors.KConversion,
					"column %q is declared %q but value %d is %q", cd.Name, cd.Type, j, v.GetType())
			}
			vals[j] = v
		}

		c := NewColumn(i, cd.Name, cd.Type)
		t.columns = append(t.columns, c)
		t.columnsByName[cd.Name] = c
		t.data = append(t.data, vals)
	}

	return t, nil
}

// newDerived builds a table from columns already validated by a stage. The
// only check it repeats is the shape invariant, which stage code must not be
// able to break silently.
func newDerived(name string, cols []ColumnData) (*Table, error) {
	t := &Table{
		id:            uuid.NewString(),
		name:          name,
		columnsByName: make(map[string]Column, len(cols)),
	}
	for i, cd := range cols {
		if i == 0 {
			t.rowCount = len(cd.Values)
		} else if len(cd.Values) != t.rowCount {
			return nil, errors.ES(errors.OpTable, errors.KShapeMismatch,
				"column %q has %d values, want %d", cd.Name, len(cd.Values), t.rowCount)
		}
		c := NewColumn(i, cd.Name, cd.Type)
		t.columns = append(t.columns, c)
		t.columnsByName[cd.Name] = c
		t.data = append(t.data, cd.Values)
	}
	return t, nil
}

// Id returns the generated identity of the table. Every constructed or
// derived table gets a fresh id.
func (t *Table) Id() string {
	return t.id
}

// Name returns the table's name, which may be empty.
func (t *Table) Name() string {
	return t.name
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return t.rowCount
}

// Columns returns the table's column descriptors in order.
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnByName returns the named column, or nil when absent.
func (t *Table) ColumnByName(name string) Column {
	if c, ok := t.columnsByName[name]; ok {
		return c
	}
	return nil
}

// Column returns the named column or a KUnknownColumn error.
func (t *Table) Column(name string) (Column, error) {
	if c := t.ColumnByName(name); c != nil {
		return c, nil
	}
	return nil, errors.ES(errors.OpTable, errors.KUnknownColumn, "column %q not found", name)
}

// ColumnValues returns the named column's values. The returned slice is
// shared with the table and must not be modified.
func (t *Table) ColumnValues(name string) (value.Values, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return t.data[c.Ordinal()], nil
}

// Row materializes the row at index i as a view over the columnar store.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.rowCount {
		return nil, errors.ES(errors.OpTable, errors.KIndexOutOfRange,
			"row index %d out of range, table has %d rows", i, t.rowCount)
	}
	return &row{table: t, ordinal: i}, nil
}

// Rows materializes every row of the table, in order.
func (t *Table) Rows() []Row {
	rows := make([]Row, t.rowCount)
	for i := range rows {
		rows[i] = &row{table: t, ordinal: i}
	}
	return rows
}

// valueAt returns the value at (row, column ordinal) without bounds checks;
// callers have already validated both.
func (t *Table) valueAt(rowIdx, colIdx int) value.Scalar {
	return t.data[colIdx][rowIdx]
}

// withRows builds a new table with the same schema as t containing exactly
// the rows whose indices are listed, in that order.
func (t *Table) withRows(name string, idx []int) *Table {
	cols := make([]ColumnData, len(t.columns))
	for ci, c := range t.columns {
		vals := make(value.Values, len(idx))
		for out, in := range idx {
			vals[out] = t.data[ci][in]
		}
		cols[ci] = ColumnData{Name: c.Name(), Type: c.Type(), Values: vals}
	}
	// Shape cannot differ here, every column gets len(idx) values.
	nt, _ := newDerived(name, cols)
	return nt
}

// String renders the table as delimited text: a header row followed by one
// CSV line per row. Missing values render as empty fields.
func (t *Table) String() string {
	b := &strings.Builder{}
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	b.WriteString(strings.Join(names, ","))
	b.WriteString("\n")
	for _, r := range t.Rows() {
		b.WriteString(r.String())
	}
	return b.String()
}
