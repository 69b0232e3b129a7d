package frame

import (
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
	"github.com/shopspring/decimal"
)

// The helpers below build ColumnData from plain Go values. Passing a nil
// pointer produces a missing value, so callers can write columns with holes
// without touching the value package directly.

// Longs builds a long column from int64 values.
func Longs(name string, vals ...int64) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		out[i] = value.NewLong(v)
	}
	return ColumnData{Name: name, Type: types.Long, Values: out}
}

// LongPtrs builds a long column from *int64 values; nil entries are missing.
func LongPtrs(name string, vals ...*int64) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = value.NewNullLong()
		} else {
			out[i] = value.NewLong(*v)
		}
	}
	return ColumnData{Name: name, Type: types.Long, Values: out}
}

// Reals builds a real column from float64 values.
func Reals(name string, vals ...float64) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		out[i] = value.NewReal(v)
	}
	return ColumnData{Name: name, Type: types.Real, Values: out}
}

// RealPtrs builds a real column from *float64 values; nil entries are missing.
func RealPtrs(name string, vals ...*float64) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = value.NewNullReal()
		} else {
			out[i] = value.NewReal(*v)
		}
	}
	return ColumnData{Name: name, Type: types.Real, Values: out}
}

// Bools builds a bool column from bool values.
func Bools(name string, vals ...bool) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		out[i] = value.NewBool(v)
	}
	return ColumnData{Name: name, Type: types.Bool, Values: out}
}

// Strings builds a string column from string values.
func Strings(name string, vals ...string) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		out[i] = value.NewString(v)
	}
	return ColumnData{Name: name, Type: types.String, Values: out}
}

// StringPtrs builds a string column from *string values; nil entries are missing.
func StringPtrs(name string, vals ...*string) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = value.NewNullString()
		} else {
			out[i] = value.NewString(*v)
		}
	}
	return ColumnData{Name: name, Type: types.String, Values: out}
}

// Decimals builds a decimal column from decimal.Decimal values.
func Decimals(name string, vals ...decimal.Decimal) ColumnData {
	out := make(value.Values, len(vals))
	for i, v := range vals {
		out[i] = value.NewDecimal(v)
	}
	return ColumnData{Name: name, Type: types.Decimal, Values: out}
}
