package agg

import (
	"math"
	"sort"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
	"github.com/shopspring/decimal"
)

func init() {
	Register(Count, countFunc, func(types.Column) (types.Column, error) { return types.Long, nil })
	Register(Sum, sumFunc, sameNumericType)
	Register(Mean, meanFunc, realOrDecimal)
	Register(Min, minFunc, comparableType)
	Register(Max, maxFunc, comparableType)
	Register(Median, medianFunc, realOrDecimal)
	Register(Var, varFunc, realOnly)
	Register(Std, stdFunc, realOnly)
}

// Output-type rules for the built-ins.

func sameNumericType(in types.Column) (types.Column, error) {
	if !types.Numeric(in) {
		return "", notNumeric(in)
	}
	return in, nil
}

func realOrDecimal(in types.Column) (types.Column, error) {
	switch in {
	case types.Decimal:
		return types.Decimal, nil
	case types.Long, types.Real:
		return types.Real, nil
	}
	return "", notNumeric(in)
}

func realOnly(in types.Column) (types.Column, error) {
	if !types.Numeric(in) {
		return "", notNumeric(in)
	}
	return types.Real, nil
}

func comparableType(in types.Column) (types.Column, error) {
	if !types.Numeric(in) && in != types.String {
		return "", errors.ES(errors.OpAggregate, errors.KConversion,
			"aggregation requires an orderable column, got type %q", in)
	}
	return in, nil
}

func notNumeric(in types.Column) error {
	return errors.ES(errors.OpAggregate, errors.KConversion,
		"aggregation requires a numeric column, got type %q", in)
}

func countFunc(_ types.Column, vals value.Values) (value.Scalar, error) {
	return value.NewLong(int64(len(vals))), nil
}

func sumFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	switch in {
	case types.Long:
		if len(vals) == 0 {
			return value.NewNullLong(), nil
		}
		var sum int64
		for _, v := range vals {
			sum += *v.(*value.Long).Value()
		}
		return value.NewLong(sum), nil
	case types.Real:
		if len(vals) == 0 {
			return value.NewNullReal(), nil
		}
		var sum float64
		for _, v := range vals {
			sum += *v.(*value.Real).Value()
		}
		return value.NewReal(sum), nil
	case types.Decimal:
		if len(vals) == 0 {
			return value.NewNullDecimal(), nil
		}
		sum := decimal.Zero
		for _, v := range vals {
			sum = sum.Add(*v.(*value.Decimal).Value())
		}
		return value.NewDecimal(sum), nil
	}
	return nil, notNumeric(in)
}

func meanFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	if in == types.Decimal {
		if len(vals) == 0 {
			return value.NewNullDecimal(), nil
		}
		sum := decimal.Zero
		for _, v := range vals {
			sum = sum.Add(*v.(*value.Decimal).Value())
		}
		return value.NewDecimal(sum.Div(decimal.NewFromInt(int64(len(vals))))), nil
	}

	fs, err := floats(in, vals)
	if err != nil {
		return nil, err
	}
	if len(fs) == 0 {
		return value.NewNullReal(), nil
	}
	var sum float64
	for _, f := range fs {
		sum += f
	}
	return value.NewReal(sum / float64(len(fs))), nil
}

func minFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	return extremum(in, vals, -1)
}

func maxFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	return extremum(in, vals, 1)
}

func extremum(in types.Column, vals value.Values, dir int) (value.Scalar, error) {
	if _, err := comparableType(in); err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return value.Default(in), nil
	}
	best := vals[0]
	for _, v := range vals[1:] {
		c, ok := value.Compare(v, best)
		if !ok {
			return nil, errors.ES(errors.OpAggregate, errors.KConversion,
				"column of type %q held an incomparable value", in)
		}
		if c == dir {
			best = v
		}
	}
	return best, nil
}

func medianFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	if in == types.Decimal {
		if len(vals) == 0 {
			return value.NewNullDecimal(), nil
		}
		ds := make([]decimal.Decimal, len(vals))
		for i, v := range vals {
			ds[i] = *v.(*value.Decimal).Value()
		}
		sort.Slice(ds, func(i, j int) bool { return ds[i].LessThan(ds[j]) })
		mid := len(ds) / 2
		if len(ds)%2 == 1 {
			return value.NewDecimal(ds[mid]), nil
		}
		two := decimal.NewFromInt(2)
		return value.NewDecimal(ds[mid-1].Add(ds[mid]).Div(two)), nil
	}

	fs, err := floats(in, vals)
	if err != nil {
		return nil, err
	}
	if len(fs) == 0 {
		return value.NewNullReal(), nil
	}
	sort.Float64s(fs)
	mid := len(fs) / 2
	if len(fs)%2 == 1 {
		return value.NewReal(fs[mid]), nil
	}
	return value.NewReal((fs[mid-1] + fs[mid]) / 2), nil
}

// varFunc computes the sample variance (n-1 denominator). Groups with fewer
// than two values aggregate to missing.
func varFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	fs, err := floats(in, vals)
	if err != nil {
		return nil, err
	}
	if len(fs) < 2 {
		return value.NewNullReal(), nil
	}
	var sum float64
	for _, f := range fs {
		sum += f
	}
	mean := sum / float64(len(fs))
	var sq float64
	for _, f := range fs {
		d := f - mean
		sq += d * d
	}
	return value.NewReal(sq / float64(len(fs)-1)), nil
}

func stdFunc(in types.Column, vals value.Values) (value.Scalar, error) {
	v, err := varFunc(in, vals)
	if err != nil {
		return nil, err
	}
	r := v.(*value.Real)
	if !r.Valid() {
		return r, nil
	}
	return value.NewReal(math.Sqrt(*r.Value())), nil
}

// floats extracts the numeric values of a long/real/decimal column as
// float64. Decimal goes through an inexact conversion; Var and Std document
// that, Sum and Mean keep a separate exact decimal path.
func floats(in types.Column, vals value.Values) ([]float64, error) {
	if !types.Numeric(in) {
		return nil, notNumeric(in)
	}
	fs := make([]float64, 0, len(vals))
	for _, v := range vals {
		f, ok := value.Float(v)
		if !ok {
			return nil, errors.ES(errors.OpAggregate, errors.KConversion,
				"column of type %q held a non-numeric value", in)
		}
		fs = append(fs, f)
	}
	return fs, nil
}
