package frame

import (
	"strconv"
	"strings"

	"github.com/allisonhorst/observable-translations/agg"
	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/value"
)

// Grouped is a table partitioned by the distinct value tuples of its
// grouping columns. Groups appear in first-seen order, the order their keys
// first occur in the source table. A missing value is a distinct key value,
// not an error.
type Grouped struct {
	source *Table
	keys   []Column
	// order holds the encoded group keys first-seen; groups maps an encoded
	// key to the source row indices belonging to it.
	order  []string
	groups map[string][]int
}

// GroupBy partitions the table's rows by the value tuples of the named
// columns.
func (t *Table) GroupBy(keys ...string) (*Grouped, error) {
	if len(keys) == 0 {
		return nil, errors.ES(errors.OpGroupBy, errors.KClientArgs, "no grouping columns given")
	}

	g := &Grouped{
		source: t,
		groups: map[string][]int{},
	}
	seen := map[string]bool{}
	for _, name := range keys {
		c := t.ColumnByName(name)
		if c == nil {
			return nil, errors.ES(errors.OpGroupBy, errors.KUnknownColumn, "column %q not found", name)
		}
		if seen[name] {
			return nil, errors.ES(errors.OpGroupBy, errors.KDuplicateColumn, "column %q appears more than once", name)
		}
		seen[name] = true
		g.keys = append(g.keys, c)
	}

	for i := 0; i < t.rowCount; i++ {
		tuple := make(value.Values, len(g.keys))
		for ki, c := range g.keys {
			tuple[ki] = t.valueAt(i, c.Ordinal())
		}
		key := encodeKey(tuple)
		if _, ok := g.groups[key]; !ok {
			g.order = append(g.order, key)
		}
		g.groups[key] = append(g.groups[key], i)
	}

	return g, nil
}

// NumGroups returns the number of distinct group keys.
func (g *Grouped) NumGroups() int {
	return len(g.order)
}

// Keys returns the grouping column descriptors of the source table.
func (g *Grouped) Keys() []Column {
	return g.keys
}

// Aggregate produces a new table with one row per distinct group key: the
// grouping columns followed by one column per spec, groups in first-seen
// order.
func (g *Grouped) Aggregate(specs ...agg.Spec) (*Table, error) {
	if len(specs) == 0 {
		return nil, errors.ES(errors.OpAggregate, errors.KClientArgs, "no aggregation specs given")
	}

	names := map[string]bool{}
	for _, c := range g.keys {
		names[c.Name()] = true
	}

	// Resolve every spec before computing anything, so a bad spec aborts
	// with no partial work.
	type resolved struct {
		spec agg.Spec
		in   Column
		out  ColumnData
	}
	res := make([]resolved, len(specs))
	for i, spec := range specs {
		in := g.source.ColumnByName(spec.In)
		if in == nil {
			return nil, errors.ES(errors.OpAggregate, errors.KUnknownColumn, "column %q not found", spec.In)
		}
		if strings.TrimSpace(spec.Out) == "" {
			return nil, errors.ES(errors.OpAggregate, errors.KClientArgs, "aggregation %d has an empty output name", i)
		}
		if names[spec.Out] {
			return nil, errors.ES(errors.OpAggregate, errors.KDuplicateColumn, "output column %q appears more than once", spec.Out)
		}
		names[spec.Out] = true

		outType, err := agg.ResultType(spec, in.Type())
		if err != nil {
			return nil, err
		}
		res[i] = resolved{
			spec: spec,
			in:   in,
			out: ColumnData{
				Name:   spec.Out,
				Type:   outType,
				Values: make(value.Values, 0, len(g.order)),
			},
		}
	}

	keyCols := make([]ColumnData, len(g.keys))
	for ki, c := range g.keys {
		keyCols[ki] = ColumnData{
			Name:   c.Name(),
			Type:   c.Type(),
			Values: make(value.Values, 0, len(g.order)),
		}
	}

	for _, key := range g.order {
		rows := g.groups[key]
		for ki, c := range g.keys {
			keyCols[ki].Values = append(keyCols[ki].Values, g.source.valueAt(rows[0], c.Ordinal()))
		}
		for i := range res {
			vals := make(value.Values, len(rows))
			for vi, ri := range rows {
				vals[vi] = g.source.valueAt(ri, res[i].in.Ordinal())
			}
			out, err := agg.Apply(res[i].spec, res[i].in.Type(), vals)
			if err != nil {
				return nil, err
			}
			res[i].out.Values = append(res[i].out.Values, out)
		}
	}

	cols := keyCols
	for i := range res {
		cols = append(cols, res[i].out)
	}
	return newDerived(g.source.name, cols)
}

// encodeKey renders a value tuple as a collision-free map key. Each element
// carries its type, a missing marker, and its quoted rendering.
func encodeKey(tuple value.Values) string {
	b := &strings.Builder{}
	for _, v := range tuple {
		b.WriteString(string(v.GetType()))
		if !v.Valid() {
			b.WriteString("#\x00;")
			continue
		}
		b.WriteString("#")
		b.WriteString(strconv.Quote(v.String()))
		b.WriteString(";")
	}
	return b.String()
}
