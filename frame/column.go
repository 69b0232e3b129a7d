package frame

import "github.com/allisonhorst/observable-translations/types"

// Column describes one column of a table.
type Column interface {
	Ordinal() int
	Name() string
	Type() types.Column
}

// column is a basic implementation of Column.
type column struct {
	ordinal int
	name    string
	typ     types.Column
}

func (c column) Ordinal() int {
	return c.ordinal
}

func (c column) Name() string {
	return c.name
}

func (c column) Type() types.Column {
	return c.typ
}

// NewColumn constructs a Column descriptor. It is mostly useful to tests and
// to ingestion code that builds schemas before any rows exist.
func NewColumn(ordinal int, name string, typ types.Column) Column {
	return column{
		ordinal: ordinal,
		name:    name,
		typ:     typ,
	}
}
