package cartera

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
// All arithmetic is exact decimal arithmetic; conversion to float happens
// only at the edge, when a percentage is derived.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported decimal source type")
	}
}

// M builds a Money from any numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ARS builds an Argentine peso amount, the reporting currency of the snapshots.
func ARS[T float32 | float64 | int | int32 | int64](value T) Money { return M(value, "ARS") }

// USD builds a US dollar amount.
func USD[T float32 | float64 | int | int32 | int64](value T) Money { return M(value, "USD") }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money         { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Decimal() decimal.Decimal     { return m.value }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat returns the value as a float64, for percentage derivation only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// PctOf returns 100*m/base, or false when base is zero. No data is different
// from zero change, so callers must propagate the miss, never substitute 0.
func (m Money) PctOf(base Money) (Percent, bool) {
	if base.IsZero() {
		return 0, false
	}
	return Percent(m.value.InexactFloat64() / base.value.InexactFloat64() * 100), true
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
