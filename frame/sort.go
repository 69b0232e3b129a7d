package frame

import (
	"sort"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/value"
)

// SortSpec orders by one column; Desc reverses the direction. Missing values
// sort after present ones regardless of direction.
type SortSpec struct {
	Col  string
	Desc bool
}

// OrderBy returns a new table with rows stably sorted by the given specs, in
// spec order.
func (t *Table) OrderBy(specs ...SortSpec) (*Table, error) {
	if len(specs) == 0 {
		return nil, errors.ES(errors.OpOrderBy, errors.KClientArgs, "no sort columns given")
	}

	cols := make([]Column, len(specs))
	for i, s := range specs {
		c := t.ColumnByName(s.Col)
		if c == nil {
			return nil, errors.ES(errors.OpOrderBy, errors.KUnknownColumn, "column %q not found", s.Col)
		}
		cols[i] = c
	}

	idx := make([]int, t.rowCount)
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		for si, s := range specs {
			av := t.valueAt(idx[a], cols[si].Ordinal())
			bv := t.valueAt(idx[b], cols[si].Ordinal())

			// Missing sorts last in both directions.
			switch {
			case !av.Valid() && !bv.Valid():
				continue
			case !av.Valid():
				return false
			case !bv.Valid():
				return true
			}

			c, ok := value.Compare(av, bv)
			if !ok || c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	return t.withRows(t.name, idx), nil
}
