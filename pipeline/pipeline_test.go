package pipeline

import (
	"context"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisonhorst/observable-translations/agg"
	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/frame"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
)

func penguins(t *testing.T) *frame.Table {
	t.Helper()

	tbl, err := frame.New("penguins",
		frame.Strings("species", "Adelie", "Adelie", "Gentoo", "Chinstrap", "Gentoo"),
		frame.Strings("island", "Dream", "Biscoe", "Biscoe", "Dream", "Biscoe"),
		frame.RealPtrs("body_mass_g", ptr(3800.0), ptr(3650.0), nil, ptr(3725.0), ptr(5000.0)),
		frame.Longs("year", 2007, 2008, 2008, 2009, 2009),
	)
	require.NoError(t, err)
	return tbl
}

func ptr[T any](v T) *T { return &v }

func cells(tbl *frame.Table) [][]string {
	out := make([][]string, 0, tbl.RowCount())
	for i := 0; i < tbl.RowCount(); i++ {
		row, err := tbl.Row(i)
		if err != nil {
			panic(err)
		}
		vals := row.Values()
		rendered := make([]string, len(vals))
		for j, v := range vals {
			rendered[j] = v.String()
		}
		out = append(out, rendered)
	}
	return out
}

func TestRunChainsStagesInOrder(t *testing.T) {
	t.Parallel()

	got, err := From(penguins(t)).
		Filter(frame.Gt("body_mass_g", value.NewReal(3600))).
		Select("species", "body_mass_g").
		OrderBy(frame.SortSpec{Col: "body_mass_g", Desc: true}).
		Head(2).
		Run(context.Background())
	require.NoError(t, err)

	want := [][]string{
		{"Gentoo", "5000"},
		{"Adelie", "3800"},
	}
	if diff := pretty.Compare(want, cells(got)); diff != "" {
		t.Errorf("result rows: -want/+got:\n%s", diff)
	}
}

func TestRunGroupAggregate(t *testing.T) {
	t.Parallel()

	got, err := From(penguins(t)).
		GroupBy("island").
		Aggregate(
			agg.Spec{Out: "n", In: "species", Fn: agg.Count},
			agg.Spec{Out: "mean_mass", In: "body_mass_g", Fn: agg.Mean},
		).
		OrderBy(frame.SortSpec{Col: "island"}).
		Run(context.Background())
	require.NoError(t, err)

	want := [][]string{
		{"Biscoe", "3", "4325"},
		{"Dream", "2", "3762.5"},
	}
	if diff := pretty.Compare(want, cells(got)); diff != "" {
		t.Errorf("result rows: -want/+got:\n%s", diff)
	}
}

func TestRunDeriveAndDistinct(t *testing.T) {
	t.Parallel()

	got, err := From(penguins(t)).
		Derive("heavy", types.Bool, func(r frame.Row) value.Scalar {
			v, err := r.RealByName("body_mass_g")
			if err != nil || v == nil {
				return nil
			}
			return value.NewBool(*v > 4000)
		}).
		Distinct("species", "heavy").
		Run(context.Background())
	require.NoError(t, err)

	want := [][]string{
		{"Adelie", "false"},
		{"Gentoo", ""},
		{"Chinstrap", "false"},
		{"Gentoo", "true"},
	}
	if diff := pretty.Compare(want, cells(got)); diff != "" {
		t.Errorf("result rows: -want/+got:\n%s", diff)
	}
}

func TestBuilderForksShareNoStages(t *testing.T) {
	t.Parallel()

	base := From(penguins(t)).Filter(frame.Eq("island", value.NewString("Biscoe")))

	left := base.Select("species")
	right := base.Head(1)

	gotLeft, err := left.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, len(gotLeft.Columns()))
	assert.Equal(t, 3, gotLeft.RowCount())

	gotRight, err := right.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, len(gotRight.Columns()))
	assert.Equal(t, 1, gotRight.RowCount())

	gotBase, err := base.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, gotBase.RowCount(), "forks must not mutate the shared prefix")
}

func TestRunDoesNotMutateSource(t *testing.T) {
	t.Parallel()

	src := penguins(t)
	before := pretty.Sprint(cells(src))

	_, err := From(src).
		Filter(frame.Eq("species", value.NewString("Gentoo"))).
		OrderBy(frame.SortSpec{Col: "year", Desc: true}).
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, before, pretty.Sprint(cells(src)))
}

func TestRunFailingStageSurfacesErrorUntouched(t *testing.T) {
	t.Parallel()

	_, err := From(penguins(t)).
		Filter(frame.Eq("island", value.NewString("Dream"))).
		Select("species", "no_such_column").
		Head(5).
		Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KUnknownColumn, errors.GetKind(err))
	assert.Equal(t, errors.OpSelect, errors.GetOp(err))
}

func TestRunWithoutSource(t *testing.T) {
	t.Parallel()

	p := &Pipeline{}
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KClientArgs, errors.GetKind(err))
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := From(penguins(t)).Select("species").Run(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.KCancelled, errors.GetKind(err))
	assert.Equal(t, errors.OpPipeline, errors.GetOp(err))
}
