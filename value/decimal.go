package value

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/allisonhorst/observable-translations/types"
	"github.com/shopspring/decimal"
)

// Decimal represents an arbitrary-precision decimal column value. Decimal
// implements Scalar. Decimal columns exist so that sums and means over
// currency-like data stay exact; delimited-text inference never produces
// them, they are only declared explicitly.
type Decimal struct {
	pointerValue[decimal.Decimal]
}

func NewDecimal(v decimal.Decimal) *Decimal {
	return &Decimal{newPointerValue[decimal.Decimal](&v)}
}

func NewNullDecimal() *Decimal {
	return &Decimal{newPointerValue[decimal.Decimal](nil)}
}

func DecimalFromFloat(f float64) *Decimal {
	return NewDecimal(decimal.NewFromFloat(f))
}

func DecimalFromString(s string) *Decimal {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return NewNullDecimal()
	}
	return NewDecimal(dec)
}

// ParseFloat provides builtin support for Go's *big.Float conversion where that type meets your needs.
func (d *Decimal) ParseFloat(base int, prec uint, mode big.RoundingMode) (f *big.Float, b int, err error) {
	if d.value == nil {
		return nil, 0, fmt.Errorf("Decimal was not valid")
	}
	return big.ParseFloat(d.value.String(), base, prec, mode)
}

// Convert Decimal into reflect value.
func (d *Decimal) Convert(v reflect.Value) error {
	if TryConvert[decimal.Decimal](d, &d.pointerValue, v, nil) {
		return nil
	}

	if v.Type().Kind() == reflect.String {
		if d.value != nil {
			v.SetString(d.value.String())
		}
		return nil
	}

	return fmt.Errorf("column with type 'decimal' had value that was %T", v)
}

// GetType returns the type of the value.
func (d *Decimal) GetType() types.Column {
	return types.Decimal
}

// Parse parses a delimited-text field as a decimal number. "" is missing.
func (d *Decimal) Parse(s string) error {
	if s == "" {
		d.value = nil
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("column with type 'decimal' had value %q that could not be parsed: %w", s, err)
	}
	d.value = &v
	return nil
}
