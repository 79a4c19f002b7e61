package cartera

import "time"

// Side is the classified direction of a trade order.
type Side int

const (
	// SideUnknown marks an order whose direction could not be classified.
	SideUnknown Side = iota
	SideBuy
	SideSell
	// SideIgnored marks flows that are neither buys nor sells (dividends,
	// coupon payments); they never enter gain calculations.
	SideIgnored
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	case SideIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Order is one executed trade record, read-only input to gain calculations.
// Absent or incomplete records degrade gracefully: they are counted and
// surfaced as warnings, never fatal.
type Order struct {
	Symbol     string
	Side       Side
	Quantity   Quantity
	Price      *Money
	Amount     *Money // operated amount; nil when the record is incomplete
	Currency   string
	ExecutedAt time.Time
}

// Warning is a named data-quality tag surfaced alongside results.
type Warning string

const (
	// WarningOrdersNone reports that no trade records exist for the window.
	WarningOrdersNone Warning = "ORDERS_NONE"
	// WarningOrdersIncomplete reports that some trade records were missing
	// a side or an amount and were left out of the calculation.
	WarningOrdersIncomplete Warning = "ORDERS_INCOMPLETE"
)

// Cashflow accumulates the classified buy and sell amounts of one symbol.
type Cashflow struct {
	Buys  Money
	Sells Money
	// Incomplete is set when at least one buy/sell record for the symbol
	// lacked its amount, so the totals understate the real flows.
	Incomplete bool
}

// OrderStats counts how the orders of a window were classified. It backs the
// ORDERS_NONE / ORDERS_INCOMPLETE warnings.
type OrderStats struct {
	Total         int
	Classified    int
	Ignored       int
	Unclassified  int
	AmountMissing int
}

// Warnings derives the data-quality tags from the counters.
func (st OrderStats) Warnings() []Warning {
	if st.Total == 0 {
		return []Warning{WarningOrdersNone}
	}
	if st.Classified == 0 || st.Unclassified > 0 || st.AmountMissing > 0 {
		return []Warning{WarningOrdersIncomplete}
	}
	return nil
}

// CashflowsBySymbol folds orders into per-symbol buy/sell totals, in the
// currency given. Ignored flows are skipped, unknown sides and missing
// amounts are counted but excluded from the totals.
func CashflowsBySymbol(orders []Order, currency string) (map[string]Cashflow, OrderStats) {
	flows := make(map[string]Cashflow)
	var stats OrderStats
	for _, o := range orders {
		stats.Total++
		switch o.Side {
		case SideIgnored:
			stats.Ignored++
			continue
		case SideUnknown:
			stats.Unclassified++
			continue
		}
		if o.Amount == nil {
			stats.AmountMissing++
			f := flows[o.Symbol]
			f.Incomplete = true
			flows[o.Symbol] = f
			continue
		}
		stats.Classified++
		f := flows[o.Symbol]
		if f.Buys.Currency() == "" {
			f.Buys = M(0, currency)
			f.Sells = M(0, currency)
		}
		switch o.Side {
		case SideBuy:
			f.Buys = f.Buys.Add(*o.Amount)
		case SideSell:
			f.Sells = f.Sells.Add(*o.Amount)
		}
		flows[o.Symbol] = f
	}
	return flows, stats
}
