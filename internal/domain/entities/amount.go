package entities

import (
	"bytes"

	"github.com/shopspring/decimal"
)

type amountState uint8

const (
	amountMissing amountState = iota
	amountInvalid
	amountOutOfRange
	amountSet
)

// Amounts are bounded to |value| < 1e12 with at most 12 decimal places.
// Larger exponents make exact arithmetic and formatting arbitrarily slow.
const (
	MaxAmountIntDigits = 12
	MaxAmountScale     = 12

	maxAmountLiteral = 64
)

// Amount is an exact monetary value that remembers whether it was absent
// or non-numeric in the decoded payload, so validation can report the
// offending field instead of failing the whole decode.
type Amount struct {
	value decimal.Decimal
	state amountState
	raw   []byte
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, state: amountSet}
}

func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) IsMissing() bool          { return a.state == amountMissing }
func (a Amount) IsNumeric() bool          { return a.state == amountSet }

// OutOfRange reports a numeric amount beyond the supported magnitude or
// precision.
func (a Amount) OutOfRange() bool {
	return a.state == amountOutOfRange || (a.state == amountSet && !amountInRange(a.value))
}

// amountInRange only looks at the exponent and coefficient digits, so it
// stays cheap for values like 1e30000000.
func amountInRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp < -MaxAmountScale || exp > MaxAmountIntDigits {
		return false
	}
	return d.NumDigits()+exp <= MaxAmountIntDigits
}

func (a Amount) MarshalJSON() ([]byte, error) {
	switch a.state {
	case amountSet:
		return []byte(a.value.String()), nil
	case amountInvalid, amountOutOfRange:
		return a.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if b[0] == '"' || b[0] == 't' || b[0] == 'f' || b[0] == '{' || b[0] == '[' {
		*a = Amount{state: amountInvalid, raw: append([]byte(nil), b...)}
		return nil
	}
	if len(b) > maxAmountLiteral {
		*a = Amount{state: amountOutOfRange, raw: append([]byte(nil), b...)}
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		*a = Amount{state: amountInvalid, raw: append([]byte(nil), b...)}
		return nil
	}
	if !amountInRange(d) {
		*a = Amount{state: amountOutOfRange, raw: append([]byte(nil), b...)}
		return nil
	}
	*a = Amount{value: d, state: amountSet}
	return nil
}
