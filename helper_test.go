package cartera

import (
	"testing"
	"time"
)

// snap is a test helper building a snapshot with an ARS total.
func snap(date string, total float64) Snapshot {
	return Snapshot{
		Date:       MustParseDate(date),
		TotalValue: ARS(total),
		Source:     SourceCron,
	}
}

// val is a test helper building one asset valuation row.
func val(symbol string, total float64) AssetValuation {
	return AssetValuation{
		Symbol:     symbol,
		Currency:   "ARS",
		TotalValue: ARS(total),
	}
}

// idx is a test helper building one price-index point.
func idx(month string, value float64) PriceIndexPoint {
	return PriceIndexPoint{Month: MustParseMonth(month), Value: value}
}

// buy and sell build classified orders with an operated amount.
func buy(symbol string, amount float64) Order {
	a := ARS(amount)
	return Order{Symbol: symbol, Side: SideBuy, Amount: &a, Currency: "ARS", ExecutedAt: time.Now()}
}

func sell(symbol string, amount float64) Order {
	a := ARS(amount)
	return Order{Symbol: symbol, Side: SideSell, Amount: &a, Currency: "ARS", ExecutedAt: time.Now()}
}

// approxPct fails the test unless got is non-nil and within tol of want.
func approxPct(t *testing.T, name string, got *Percent, want float64, tol float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %.4f", name, want)
	}
	if diff := float64(*got) - want; diff > tol || diff < -tol {
		t.Errorf("%s = %.4f, want %.4f", name, float64(*got), want)
	}
}
