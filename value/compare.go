package value

import (
	"strings"

	"github.com/allisonhorst/observable-translations/types"
	"github.com/shopspring/decimal"
)

// Compare orders a against b, returning -1, 0 or 1. The second return is
// false when either value is missing or the pair is not comparable. Numeric
// types compare across long/real/decimal; everything else compares only
// within its own type.
func Compare(a, b Scalar) (int, bool) {
	if a == nil || b == nil || !a.Valid() || !b.Valid() {
		return 0, false
	}

	at, bt := a.GetType(), b.GetType()
	if types.Numeric(at) && types.Numeric(bt) {
		return compareNumeric(a, b)
	}
	if at != bt {
		return 0, false
	}

	switch at {
	case types.Bool:
		av := *a.(*Bool).Value()
		bv := *b.(*Bool).Value()
		if av == bv {
			return 0, true
		}
		if !av {
			return -1, true
		}
		return 1, true
	case types.String:
		return strings.Compare(*a.(*String).Value(), *b.(*String).Value()), true
	}
	return 0, false
}

// Equal reports whether a and b hold the same value. Two missing values of
// the same type are equal (group keys rely on this); a missing value never
// equals a present one.
func Equal(a, b Scalar) bool {
	if a == nil || b == nil {
		return false
	}
	if !a.Valid() && !b.Valid() {
		return a.GetType() == b.GetType()
	}
	c, ok := Compare(a, b)
	return ok && c == 0
}

func compareNumeric(a, b Scalar) (int, bool) {
	// Comparisons touching a decimal go through decimal arithmetic so no
	// precision is lost converting the decimal side.
	if a.GetType() == types.Decimal || b.GetType() == types.Decimal {
		ad, ok := asDecimal(a)
		if !ok {
			return 0, false
		}
		bd, ok := asDecimal(b)
		if !ok {
			return 0, false
		}
		return ad.Cmp(bd), true
	}

	af, ok := Float(a)
	if !ok {
		return 0, false
	}
	bf, ok := Float(b)
	if !ok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

// Float extracts the numeric value of a long or real scalar as a float64.
// It reports false for missing values and non-numeric types.
func Float(s Scalar) (float64, bool) {
	if s == nil || !s.Valid() {
		return 0, false
	}
	switch v := s.(type) {
	case *Long:
		return float64(*v.Value()), true
	case *Real:
		return *v.Value(), true
	case *Decimal:
		return v.Value().InexactFloat64(), true
	}
	return 0, false
}

func asDecimal(s Scalar) (decimal.Decimal, bool) {
	switch v := s.(type) {
	case *Decimal:
		return *v.Value(), true
	case *Long:
		return decimal.NewFromInt(*v.Value()), true
	case *Real:
		return decimal.NewFromFloat(*v.Value()), true
	}
	return decimal.Decimal{}, false
}
