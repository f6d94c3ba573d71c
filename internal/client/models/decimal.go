package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal is a money amount with two decimal places.
//
// The API sends model amounts as decimal strings ("1234.50") and aggregates
// as JSON numbers (1234.5); both decode into the same value. Digits past the
// second decimal place are rounded half away from zero. The zero value is 0.
type Decimal struct {
	d decimal.Decimal
}

var (
	ErrInvalidDecimal    = errors.New("invalid decimal")
	ErrDecimalOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidDecimal)
)

const places = 2

// maxAmount is the largest magnitude an amount column holds on the server
// (12 digits, 2 of them after the point).
var maxAmount = decimal.New(999_999_999_999, -places)

func fromDecimal(v decimal.Decimal) Decimal {
	v = v.Round(places)
	if v.IsZero() {
		return Decimal{}
	}
	return Decimal{d: v}
}

// NewDecimal builds a Decimal from whole units and hundredths. The sign of
// units applies to the whole amount.
func NewDecimal(units, cents int64) Decimal {
	c := decimal.New(cents, -places)
	if units < 0 {
		return fromDecimal(decimal.New(units, 0).Sub(c))
	}
	return fromDecimal(decimal.New(units, 0).Add(c))
}

// ParseDecimal parses user input such as "12", "1234.5" or "-3.75".
// Exponents are not accepted, and amounts beyond what the server stores are
// rejected with ErrDecimalOutOfRange.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	whole, frac, _ := strings.Cut(body, ".")
	if whole == "" && frac == "" || !digitsOnly(whole) || !digitsOnly(frac) {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	if whole == "" {
		whole = "0"
	}
	lit := whole
	if frac != "" {
		lit += "." + frac
	}
	if strings.HasPrefix(s, "-") {
		lit = "-" + lit
	}

	v, err := decimal.NewFromString(lit)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	out := fromDecimal(v)
	if out.d.Abs().GreaterThan(maxAmount) {
		return Decimal{}, fmt.Errorf("%w: %q", ErrDecimalOutOfRange, s)
	}
	return out, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (d Decimal) String() string { return d.d.StringFixed(places) }

func (d Decimal) Float64() float64 {
	f, _ := d.d.Float64()
	return f
}

func (d Decimal) Add(o Decimal) Decimal { return fromDecimal(d.d.Add(o.d)) }

func (d Decimal) Equal(o Decimal) bool { return d.d.Equal(o.d) }

func (d Decimal) IsZero() bool { return d.d.IsZero() }

func (d Decimal) IsPositive() bool { return d.d.IsPositive() }

func (d Decimal) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Decimal) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Decimal{}
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		if raw == "" {
			*d = Decimal{}
			return nil
		}
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDecimal, b)
	}
	*d = fromDecimal(v)
	return nil
}
