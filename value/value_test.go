package value

import (
	"testing"

	"github.com/allisonhorst/observable-translations/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		typ     types.Column
		field   string
		want    interface{}
		missing bool
		err     bool
	}{
		{desc: "long", typ: types.Long, field: "42", want: int64(42)},
		{desc: "long negative", typ: types.Long, field: "-7", want: int64(-7)},
		{desc: "long garbage", typ: types.Long, field: "4x", err: true},
		{desc: "long empty is missing", typ: types.Long, field: "", missing: true},
		{desc: "real", typ: types.Real, field: "3.75", want: 3.75},
		{desc: "real from integer text", typ: types.Real, field: "10", want: 10.0},
		{desc: "real empty is missing", typ: types.Real, field: "", missing: true},
		{desc: "bool true", typ: types.Bool, field: "true", want: true},
		{desc: "bool garbage", typ: types.Bool, field: "yes", err: true},
		{desc: "string", typ: types.String, field: "Dream", want: "Dream"},
		{desc: "string empty is missing", typ: types.String, field: "", missing: true},
		{desc: "decimal", typ: types.Decimal, field: "1.10", want: "1.10"},
		{desc: "unknown type", typ: types.Column("guid"), field: "x", err: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAs(test.typ, test.field)
			if test.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.typ, got.GetType())

			if test.missing {
				assert.False(t, got.Valid())
				assert.Nil(t, got.GetValue())
				assert.Equal(t, "", got.String())
				return
			}

			require.True(t, got.Valid())
			switch v := got.(type) {
			case *Long:
				assert.Equal(t, test.want, *v.Value())
			case *Real:
				assert.Equal(t, test.want, *v.Value())
			case *Bool:
				assert.Equal(t, test.want, *v.Value())
			case *String:
				assert.Equal(t, test.want, *v.Value())
			case *Decimal:
				assert.Equal(t, test.want, v.Value().String())
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		a, b Scalar
		want int
		ok   bool
	}{
		{desc: "long vs long", a: NewLong(1), b: NewLong(2), want: -1, ok: true},
		{desc: "long vs real", a: NewLong(10), b: NewReal(9.5), want: 1, ok: true},
		{desc: "real vs decimal", a: NewReal(1.5), b: DecimalFromString("1.5"), want: 0, ok: true},
		{desc: "string ordering", a: NewString("Biscoe"), b: NewString("Dream"), want: -1, ok: true},
		{desc: "bool ordering", a: NewBool(false), b: NewBool(true), want: -1, ok: true},
		{desc: "missing left", a: NewNullLong(), b: NewLong(1), ok: false},
		{desc: "missing right", a: NewLong(1), b: NewNullLong(), ok: false},
		{desc: "string vs long", a: NewString("1"), b: NewLong(1), ok: false},
	}

	for _, test := range tests {
		got, ok := Compare(test.a, test.b)
		assert.Equal(t, test.ok, ok, test.desc)
		if test.ok {
			assert.Equal(t, test.want, got, test.desc)
		}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, Equal(NewLong(3), NewLong(3)))
	assert.True(t, Equal(NewLong(3), NewReal(3)))
	assert.True(t, Equal(NewNullString(), NewNullString()))
	assert.False(t, Equal(NewNullString(), NewNullLong()))
	assert.False(t, Equal(NewNullString(), NewString("")))
	assert.False(t, Equal(NewString("a"), NewString("b")))
}

func TestDecimalArithmeticStaysExact(t *testing.T) {
	t.Parallel()

	// 0.1 + 0.2 is the classic float trap; decimal columns must not fall in.
	a := DecimalFromString("0.1")
	b := DecimalFromString("0.2")
	sum := a.Value().Add(*b.Value())
	assert.True(t, sum.Equal(decimal.RequireFromString("0.3")))
}
