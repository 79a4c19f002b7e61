package cartera

import "github.com/shopspring/decimal"

// Quantity is a number of units of an instrument.
type Quantity struct {
	value decimal.Decimal
}

func NewQuantity(value decimal.Decimal) Quantity {
	return Quantity{value: value}
}

// Q builds a Quantity from a float. Convenience for literals.
func Q(val float64) Quantity {
	return NewQuantity(decimal.NewFromFloat(val))
}

func (q Quantity) Equals(x Quantity) bool { return q.value.Equal(x.value) }

func (q Quantity) String() string { return q.value.String() }

func (q Quantity) IsZero() bool { return q.value.IsZero() }

func (q Quantity) Add(x Quantity) Quantity { return Quantity{value: q.value.Add(x.value)} }

func (q Quantity) Sub(x Quantity) Quantity { return Quantity{value: q.value.Sub(x.value)} }
