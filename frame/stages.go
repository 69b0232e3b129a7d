package frame

import (
	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
	"github.com/samber/lo"
)

// Filter returns a new table containing exactly the rows for which pred is
// true, preserving relative row order.
func (t *Table) Filter(pred Predicate) (*Table, error) {
	if pred == nil {
		return nil, errors.ES(errors.OpFilter, errors.KClientArgs, "nil predicate")
	}

	var keep []int
	for i := 0; i < t.rowCount; i++ {
		if pred(&row{table: t, ordinal: i}) {
			keep = append(keep, i)
		}
	}
	return t.withRows(t.name, keep), nil
}

// Select returns a new table with only the named columns, in the requested
// order. Column storage is shared with the input. Selecting the same set
// twice is idempotent.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]ColumnData, len(names))
	seen := map[string]bool{}
	for i, name := range names {
		c := t.ColumnByName(name)
		if c == nil {
			return nil, errors.ES(errors.OpSelect, errors.KUnknownColumn, "column %q not found", name)
		}
		if seen[name] {
			return nil, errors.ES(errors.OpSelect, errors.KDuplicateColumn, "column %q requested more than once", name)
		}
		seen[name] = true
		cols[i] = ColumnData{Name: c.Name(), Type: c.Type(), Values: t.data[c.Ordinal()]}
	}
	return newDerived(t.name, cols)
}

// SelectIndex is Select by column ordinal.
func (t *Table) SelectIndex(ordinals ...int) (*Table, error) {
	names := make([]string, len(ordinals))
	for i, idx := range ordinals {
		if idx < 0 || idx >= len(t.columns) {
			return nil, errors.ES(errors.OpSelect, errors.KIndexOutOfRange,
				"column index %d out of range, table has %d columns", idx, len(t.columns))
		}
		names[i] = t.columns[idx].Name()
	}
	return t.Select(names...)
}

// Derive returns a new table with a computed column appended. fn is invoked
// once per row; returning nil marks the value missing. The new column's
// values must be of the declared type.
func (t *Table) Derive(name string, typ types.Column, fn func(Row) value.Scalar) (*Table, error) {
	if !types.Valid(typ) {
		return nil, errors.ES(errors.OpDerive, errors.KClientArgs, "unknown column type %q", typ)
	}
	if t.ColumnByName(name) != nil {
		return nil, errors.ES(errors.OpDerive, errors.KDuplicateColumn, "column %q already exists", name)
	}
	if fn == nil {
		return nil, errors.ES(errors.OpDerive, errors.KClientArgs, "nil derive function")
	}

	vals := make(value.Values, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		v := fn(&row{table: t, ordinal: i})
		if v == nil {
			v = value.Default(typ)
		} else if v.GetType() != typ {
			return nil, errors.ES(errors.OpDerive, errors.KConversion,
				"derived column %q is declared %q but row %d produced %q", name, typ, i, v.GetType())
		}
		vals[i] = v
	}

	cols := lo.Map(t.columns, func(c Column, _ int) ColumnData {
		return ColumnData{Name: c.Name(), Type: c.Type(), Values: t.data[c.Ordinal()]}
	})
	cols = append(cols, ColumnData{Name: name, Type: typ, Values: vals})
	return newDerived(t.name, cols)
}

// Head returns the first n rows of the table; n is clamped to the row count.
func (t *Table) Head(n int) (*Table, error) {
	if n < 0 {
		return nil, errors.ES(errors.OpSelect, errors.KClientArgs, "negative row count %d", n)
	}
	if n > t.rowCount {
		n = t.rowCount
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.withRows(t.name, idx), nil
}

// Tail returns the last n rows of the table; n is clamped to the row count.
func (t *Table) Tail(n int) (*Table, error) {
	if n < 0 {
		return nil, errors.ES(errors.OpSelect, errors.KClientArgs, "negative row count %d", n)
	}
	if n > t.rowCount {
		n = t.rowCount
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = t.rowCount - n + i
	}
	return t.withRows(t.name, idx), nil
}

// Distinct returns the unique rows over the named columns (all columns when
// none are given), in first-seen order. The result keeps only the named
// columns.
func (t *Table) Distinct(cols ...string) (*Table, error) {
	if len(cols) == 0 {
		cols = lo.Map(t.columns, func(c Column, _ int) string { return c.Name() })
	}

	sel, err := t.Select(cols...)
	if err != nil {
		return nil, errors.ES(errors.OpSelect, errors.GetKind(err), "distinct: %s", err)
	}

	seen := map[string]bool{}
	var keep []int
	for i := 0; i < sel.rowCount; i++ {
		key := encodeKey((&row{table: sel, ordinal: i}).Values())
		if !seen[key] {
			seen[key] = true
			keep = append(keep, i)
		}
	}
	return sel.withRows(sel.name, keep), nil
}
