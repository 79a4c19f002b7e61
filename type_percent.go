package cartera

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Ptr returns a pointer to p. Reports use nil percentages to mean "unknown",
// which is distinct from a genuine 0% change.
func (p Percent) Ptr() *Percent { return &p }

// Compound folds a sequence of period percentages into a single percentage:
// (prod(1+p/100) - 1) * 100. Summation would understate compounding.
func Compound(pcts ...Percent) Percent {
	factor := 1.0
	for _, p := range pcts {
		factor *= 1.0 + float64(p)/100.0
	}
	return Percent((factor - 1.0) * 100.0)
}

// RealReturn deflates a nominal return by an inflation rate over the same
// interval: ((1+nominal/100)/(1+inflation/100) - 1) * 100.
func RealReturn(nominal, inflation Percent) Percent {
	return Percent(((1.0+float64(nominal)/100.0)/(1.0+float64(inflation)/100.0) - 1.0) * 100.0)
}
