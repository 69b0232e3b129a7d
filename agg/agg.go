/*
Package agg defines the aggregation functions applied to grouped tables.

Functions are looked up through a registry keyed by name, so callers can add
their own aggregates next to the built-in ones (Count, Sum, Mean, Min, Max,
Median, Var, Std). A Spec pairs an input column with a function and names the
output column.

Missing values are never handled implicitly: every Spec carries a
MissingPolicy choosing between excluding missing values from the computation
and propagating a missing result. The zero value is ExcludeMissing.
*/
package agg

import (
	"sync"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
)

// MissingPolicy selects how an aggregation treats missing input values.
type MissingPolicy uint8

const (
	// ExcludeMissing drops missing values before computing; Count counts
	// only present values. An all-missing group aggregates to missing.
	ExcludeMissing MissingPolicy = iota
	// PropagateMissing makes any missing input produce a missing result.
	PropagateMissing
)

// Fn names an aggregation function in the registry.
type Fn string

const (
	Count  Fn = "count"
	Sum    Fn = "sum"
	Mean   Fn = "mean"
	Min    Fn = "min"
	Max    Fn = "max"
	Median Fn = "median"
	Var    Fn = "var"
	Std    Fn = "std"
)

// Spec is one aggregation request: apply Fn to column In within each group
// and store the result in output column Out.
type Spec struct {
	Out     string
	In      string
	Fn      Fn
	Missing MissingPolicy
}

// Func computes one aggregate over a column's values within a single group.
// in holds the input column type; the returned scalar's type becomes the
// output column's type and must not vary with the data.
type Func func(in types.Column, vals value.Values) (value.Scalar, error)

// OutputType reports the column type a Func produces for a given input
// column type, so grouped tables can build their schema before any group is
// computed.
type OutputType func(in types.Column) (types.Column, error)

type registration struct {
	fn  Func
	out OutputType
}

var (
	mu    sync.RWMutex
	funcs = map[Fn]registration{}
)

// Register adds or replaces a named aggregation function.
func Register(name Fn, fn Func, out OutputType) {
	mu.Lock()
	defer mu.Unlock()
	funcs[name] = registration{fn: fn, out: out}
}

// Lookup resolves a registered function. An unknown name is a
// KUnsupportedAggregation error.
func Lookup(name Fn) (Func, OutputType, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := funcs[name]
	if !ok {
		return nil, nil, errors.ES(errors.OpAggregate, errors.KUnsupportedAggregation,
			"aggregation %q is not registered", name)
	}
	return r.fn, r.out, nil
}

// Apply resolves spec.Fn and computes it over vals after applying the
// spec's MissingPolicy.
func Apply(spec Spec, in types.Column, vals value.Values) (value.Scalar, error) {
	fn, _, err := Lookup(spec.Fn)
	if err != nil {
		return nil, err
	}

	switch spec.Missing {
	case PropagateMissing:
		for _, v := range vals {
			if v == nil || !v.Valid() {
				outType, err := ResultType(spec, in)
				if err != nil {
					return nil, err
				}
				return value.Default(outType), nil
			}
		}
	default: // ExcludeMissing
		kept := make(value.Values, 0, len(vals))
		for _, v := range vals {
			if v != nil && v.Valid() {
				kept = append(kept, v)
			}
		}
		vals = kept
	}

	return fn(in, vals)
}

// ResultType reports the output column type of a spec for a given input
// column type.
func ResultType(spec Spec, in types.Column) (types.Column, error) {
	_, out, err := Lookup(spec.Fn)
	if err != nil {
		return "", err
	}
	return out(in)
}
