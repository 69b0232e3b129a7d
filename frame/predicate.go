package frame

import (
	"github.com/allisonhorst/observable-translations/value"
)

// Predicate is a pure row predicate: true keeps the row. Predicates are
// first-class function values, never interpreted strings.
type Predicate func(Row) bool

// The comparison combinators below follow one rule for missing data: a
// comparison that touches a missing value is false, so the row is dropped
// rather than raising. And/Or then compose plain booleans; no three-valued
// logic surfaces to callers.

// Eq keeps rows where the named column equals v.
func Eq(col string, v value.Scalar) Predicate {
	return compare(col, v, func(c int) bool { return c == 0 })
}

// Ne keeps rows where the named column differs from v. Rows where either
// side is missing are dropped, same as every other comparison.
func Ne(col string, v value.Scalar) Predicate {
	return compare(col, v, func(c int) bool { return c != 0 })
}

// Gt keeps rows where the named column is greater than v.
func Gt(col string, v value.Scalar) Predicate {
	return compare(col, v, func(c int) bool { return c > 0 })
}

// Ge keeps rows where the named column is greater than or equal to v.
func Ge(col string, v value.Scalar) Predicate {
	return compare(col, v, func(c int) bool { return c >= 0 })
}

// Lt keeps rows where the named column is less than v.
func Lt(col string, v value.Scalar) Predicate {
	return compare(col, v, func(c int) bool { return c < 0 })
}

// Le keeps rows where the named column is less than or equal to v.
func Le(col string, v value.Scalar) Predicate {
	return compare(col, v, func(c int) bool { return c <= 0 })
}

func compare(col string, v value.Scalar, test func(int) bool) Predicate {
	return func(r Row) bool {
		got := r.ValueByName(col)
		if got == nil || !got.Valid() || v == nil || !v.Valid() {
			return false
		}
		c, ok := value.Compare(got, v)
		if !ok {
			return false
		}
		return test(c)
	}
}

// IsMissing keeps rows where the named column is missing. This is the one
// predicate that can select rows comparisons always drop.
func IsMissing(col string) Predicate {
	return func(r Row) bool {
		got := r.ValueByName(col)
		return got != nil && !got.Valid()
	}
}

// And keeps rows that satisfy every given predicate.
func And(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Or keeps rows that satisfy at least one given predicate.
func Or(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate. Note that Not(Eq(...)) differs from Ne(...) on
// missing data: the comparison is false for a missing value, so Not keeps
// those rows.
func Not(p Predicate) Predicate {
	return func(r Row) bool {
		return !p(r)
	}
}
