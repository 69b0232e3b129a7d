package frame

import (
	"testing"

	kerrors "github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	tests := []struct {
		desc string
		pred Predicate
		want []string // expected species column of the result, in order
	}{
		{
			desc: "equality keeps matching rows in order",
			pred: Eq("island", value.NewString("Dream")),
			want: []string{"Adelie", "Chinstrap"},
		},
		{
			desc: "comparison against missing is false",
			pred: Gt("mass", value.NewReal(3000)),
			want: []string{"Adelie", "Adelie", "Chinstrap", "Gentoo"},
		},
		{
			desc: "and composes",
			pred: And(Eq("island", value.NewString("Biscoe")), Ge("mass", value.NewReal(5000))),
			want: []string{"Gentoo"},
		},
		{
			desc: "or composes",
			pred: Or(Eq("species", value.NewString("Chinstrap")), Eq("year", value.NewLong(2007))),
			want: []string{"Adelie", "Chinstrap"},
		},
		{
			desc: "is-missing selects the hole",
			pred: IsMissing("mass"),
			want: []string{"Gentoo"},
		},
		{
			desc: "not inverts, keeping rows the comparison dropped",
			pred: Not(Gt("mass", value.NewReal(3000))),
			want: []string{"Gentoo"},
		},
		{
			desc: "nothing matches",
			pred: Eq("island", value.NewString("Torgersen")),
			want: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			got, err := tbl.Filter(test.pred)
			require.NoError(t, err)
			require.LessOrEqual(t, got.RowCount(), tbl.RowCount())

			var species []string
			for _, r := range got.Rows() {
				s, err := r.StringByName("species")
				require.NoError(t, err)
				species = append(species, s)
			}
			if diff := pretty.Compare(test.want, species); diff != "" {
				t.Errorf("Test(%s): -want/+got:\n%s", test.desc, diff)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)
	before := cells(tbl)

	_, err := tbl.Filter(Eq("island", value.NewString("Dream")))
	require.NoError(t, err)

	if diff := pretty.Compare(before, cells(tbl)); diff != "" {
		t.Errorf("input table changed: -want/+got:\n%s", diff)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	got, err := tbl.Select("mass", "species")
	require.NoError(t, err)
	require.Len(t, got.Columns(), 2)
	assert.Equal(t, "mass", got.Columns()[0].Name())
	assert.Equal(t, "species", got.Columns()[1].Name())

	// Values match the source column exactly.
	want, err := tbl.ColumnValues("mass")
	require.NoError(t, err)
	gotVals, err := got.ColumnValues("mass")
	require.NoError(t, err)
	for i := range want {
		assert.True(t, value.Equal(want[i], gotVals[i]) || (!want[i].Valid() && !gotVals[i].Valid()))
	}

	// Idempotence.
	again, err := got.Select("mass", "species")
	require.NoError(t, err)
	if diff := pretty.Compare(cells(got), cells(again)); diff != "" {
		t.Errorf("select not idempotent: -want/+got:\n%s", diff)
	}

	_, err = tbl.Select("beak")
	require.Error(t, err)
	assert.Equal(t, kerrors.KUnknownColumn, kerrors.GetKind(err))

	_, err = tbl.Select("mass", "mass")
	require.Error(t, err)
	assert.Equal(t, kerrors.KDuplicateColumn, kerrors.GetKind(err))
}

func TestSelectIndex(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	got, err := tbl.SelectIndex(3, 0)
	require.NoError(t, err)
	assert.Equal(t, "year", got.Columns()[0].Name())
	assert.Equal(t, "species", got.Columns()[1].Name())

	_, err = tbl.SelectIndex(4)
	require.Error(t, err)
	assert.Equal(t, kerrors.KIndexOutOfRange, kerrors.GetKind(err))
}

func TestDerive(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	got, err := tbl.Derive("mass_kg", types.Real, func(r Row) value.Scalar {
		m, err := r.RealByName("mass")
		if err != nil || m == nil {
			return nil
		}
		return value.NewReal(*m / 1000)
	})
	require.NoError(t, err)
	require.Len(t, got.Columns(), 5)

	vals, err := got.ColumnValues("mass_kg")
	require.NoError(t, err)
	assert.Equal(t, 3.8, *vals[0].(*value.Real).Value())
	assert.False(t, vals[2].Valid())

	_, err = tbl.Derive("mass", types.Real, func(Row) value.Scalar { return nil })
	assert.Equal(t, kerrors.KDuplicateColumn, kerrors.GetKind(err))

	_, err = tbl.Derive("bad", types.Real, func(Row) value.Scalar { return value.NewLong(1) })
	assert.Equal(t, kerrors.KConversion, kerrors.GetKind(err))
}

func TestHeadTail(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	head, err := tbl.Head(2)
	require.NoError(t, err)
	assert.Equal(t, 2, head.RowCount())
	s, err := head.Row(0)
	require.NoError(t, err)
	sp, _ := s.StringByName("species")
	assert.Equal(t, "Adelie", sp)

	tail, err := tbl.Tail(2)
	require.NoError(t, err)
	assert.Equal(t, 2, tail.RowCount())
	r, err := tail.Row(1)
	require.NoError(t, err)
	sp, _ = r.StringByName("species")
	assert.Equal(t, "Gentoo", sp)

	clamped, err := tbl.Head(100)
	require.NoError(t, err)
	assert.Equal(t, tbl.RowCount(), clamped.RowCount())

	_, err = tbl.Head(-1)
	require.Error(t, err)
}

func TestDistinct(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	got, err := tbl.Distinct("island")
	require.NoError(t, err)
	want := [][]string{{"island"}, {"Dream"}, {"Biscoe"}}
	if diff := pretty.Compare(want, cells(got)); diff != "" {
		t.Errorf("TestDistinct: -want/+got:\n%s", diff)
	}

	_, err = tbl.Distinct("beak")
	require.Error(t, err)
	assert.Equal(t, kerrors.KUnknownColumn, kerrors.GetKind(err))
}

func TestOrderBy(t *testing.T) {
	t.Parallel()

	tbl := penguins(t)

	got, err := tbl.OrderBy(SortSpec{Col: "mass"})
	require.NoError(t, err)

	var masses []string
	vals, err := got.ColumnValues("mass")
	require.NoError(t, err)
	for _, v := range vals {
		masses = append(masses, v.String())
	}
	// Ascending with the missing value last.
	want := []string{"3650", "3725", "3800", "5000", ""}
	if diff := pretty.Compare(want, masses); diff != "" {
		t.Errorf("TestOrderBy asc: -want/+got:\n%s", diff)
	}

	got, err = tbl.OrderBy(SortSpec{Col: "mass", Desc: true})
	require.NoError(t, err)
	vals, err = got.ColumnValues("mass")
	require.NoError(t, err)
	masses = nil
	for _, v := range vals {
		masses = append(masses, v.String())
	}
	want = []string{"5000", "3800", "3725", "3650", ""}
	if diff := pretty.Compare(want, masses); diff != "" {
		t.Errorf("TestOrderBy desc: -want/+got:\n%s", diff)
	}

	// Stable multi-column: island asc, then year desc within island.
	got, err = tbl.OrderBy(SortSpec{Col: "island"}, SortSpec{Col: "year", Desc: true})
	require.NoError(t, err)
	want2 := [][]string{
		{"species", "island", "mass", "year"},
		{"Gentoo", "Biscoe", "5000", "2009"},
		{"Adelie", "Biscoe", "3650", "2008"},
		{"Gentoo", "Biscoe", "", "2008"},
		{"Chinstrap", "Dream", "3725", "2009"},
		{"Adelie", "Dream", "3800", "2007"},
	}
	if diff := pretty.Compare(want2, cells(got)); diff != "" {
		t.Errorf("TestOrderBy multi: -want/+got:\n%s", diff)
	}

	_, err = tbl.OrderBy(SortSpec{Col: "beak"})
	require.Error(t, err)
	assert.Equal(t, kerrors.KUnknownColumn, kerrors.GetKind(err))
}
