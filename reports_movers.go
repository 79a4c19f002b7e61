package cartera

import (
	"fmt"
	"sort"
	"strings"
)

// MoversKind selects between period-over-period and lifetime rankings.
type MoversKind int

const (
	// KindPeriod ranks assets by value change between the two snapshots
	// bounding a calendar window.
	KindPeriod MoversKind = iota
	// KindTotal ranks assets by lifetime gain, combining current value with
	// the trade-record cashflows.
	KindTotal
)

func (k MoversKind) String() string {
	if k == KindTotal {
		return "total"
	}
	return "period"
}

// ParseMoversKind rejects unknown kinds before any computation starts.
func ParseMoversKind(s string) (MoversKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "period":
		return KindPeriod, nil
	case "total":
		return KindTotal, nil
	default:
		return KindPeriod, fmt.Errorf("unknown movers kind %q (want period|total)", s)
	}
}

// MoversMetric selects how a period delta is measured.
type MoversMetric int

const (
	// MetricValuation is the mark-to-market change of the position.
	MetricValuation MoversMetric = iota
	// MetricPnL adjusts the change for the buy/sell cashflows inside the
	// window, so a liquidated position shows its realized result instead of
	// a fake -100%.
	MetricPnL
)

func (m MoversMetric) String() string {
	if m == MetricPnL {
		return "pnl"
	}
	return "valuation"
}

func ParseMoversMetric(s string) (MoversMetric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valuation":
		return MetricValuation, nil
	case "pnl", "":
		return MetricPnL, nil
	default:
		return MetricPnL, fmt.Errorf("unknown movers metric %q (want pnl|valuation)", s)
	}
}

// FlowTag explains how order cashflows entered a PnL mover row.
type FlowTag string

const (
	FlowNone FlowTag = "none"
	// FlowLiquidated marks a closed position whose sell proceeds were found.
	FlowLiquidated FlowTag = "liquidated"
	// FlowMissingCashflow marks a closed position with no matching sell
	// record; its delta overstates the loss.
	FlowMissingCashflow FlowTag = "missing_cashflow"
)

// Mover is one ranked asset row.
type Mover struct {
	Symbol      string
	Description string
	Market      string
	Type        string
	Currency    string
	TotalValue  Money  // value at end of period (zero for closed positions)
	BaseValue   *Money // value at start of period, nil in total mode
	DeltaValue  Money  // the ranking metric in period mode
	DeltaPct    *Percent
	Flow        FlowTag
	GainAmount  *Money // lifetime gain, total mode only
}

// MoversReport is the ranked gainers/losers of one window and one currency.
// From/To are both nil when the requested period has no bounding snapshots:
// "no data" is explicitly distinct from "no movers".
type MoversReport struct {
	Kind     MoversKind
	Period   Period
	From     *Date
	To       *Date
	Currency string
	Metric   MoversMetric
	Limit    int
	Warnings []Warning
	Stats    *OrderStats
	Gainers  []Mover
	Losers   []Mover
}

// filterCurrency keeps the valuation rows of a single currency. Rankings are
// computed per currency; a symbol never mixes currencies in one pass.
func filterCurrency(rows []AssetValuation, currency string) []AssetValuation {
	out := make([]AssetValuation, 0, len(rows))
	for _, r := range rows {
		if r.Currency == currency {
			out = append(out, r)
		}
	}
	return out
}

func pickMeta(base, end *AssetValuation, get func(AssetValuation) string) string {
	if end != nil {
		if v := get(*end); v != "" {
			return v
		}
	}
	if base != nil {
		if v := get(*base); v != "" {
			return v
		}
	}
	return ""
}

// unionSymbols collects the sorted union of symbols present in either side.
func unionSymbols(base, end map[string]*AssetValuation) []string {
	seen := make(map[string]bool, len(base)+len(end))
	var symbols []string
	for sym := range base {
		if !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
	}
	for sym := range end {
		if !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)
	return symbols
}

func bySymbol(rows []AssetValuation) map[string]*AssetValuation {
	m := make(map[string]*AssetValuation, len(rows))
	for i := range rows {
		if rows[i].Symbol != "" {
			m[rows[i].Symbol] = &rows[i]
		}
	}
	return m
}

func newMover(sym string, b, e *AssetValuation, currency string) Mover {
	return Mover{
		Symbol: sym,
		Description: func() string {
			if d := pickMeta(b, e, func(a AssetValuation) string { return a.Description }); d != "" {
				return d
			}
			return sym
		}(),
		Market:   pickMeta(b, e, func(a AssetValuation) string { return a.Market }),
		Type:     pickMeta(b, e, func(a AssetValuation) string { return a.Type }),
		Currency: currency,
		Flow:     FlowNone,
	}
}

// unionMovers computes mark-to-market deltas for every symbol present in
// either bounding valuation set.
func unionMovers(baseRows, endRows []AssetValuation, currency string) []Mover {
	base, end := bySymbol(baseRows), bySymbol(endRows)

	var out []Mover
	for _, sym := range unionSymbols(base, end) {
		b, e := base[sym], end[sym]
		mv := newMover(sym, b, e, currency)

		baseV, endV := M(0, currency), M(0, currency)
		if b != nil {
			baseV = b.TotalValue
		}
		if e != nil {
			endV = e.TotalValue
		}
		mv.TotalValue = endV
		mv.BaseValue = &baseV
		mv.DeltaValue = endV.Sub(baseV)
		if pct, ok := mv.DeltaValue.PctOf(baseV); ok {
			mv.DeltaPct = pct.Ptr()
		}
		out = append(out, mv)
	}
	return out
}

// unionMoversPnL is unionMovers adjusted for the order cashflows inside the
// window: delta = (end + sells) - (base + buys), measured against base + buys.
// A position bought and sold within the window therefore shows its roundtrip
// result rather than a zero.
func unionMoversPnL(baseRows, endRows []AssetValuation, flows map[string]Cashflow, currency string) []Mover {
	base, end := bySymbol(baseRows), bySymbol(endRows)

	// Symbols seen only in orders still get a row.
	for sym := range flows {
		if _, ok := base[sym]; ok {
			continue
		}
		if _, ok := end[sym]; ok {
			continue
		}
		base[sym] = nil
	}

	var out []Mover
	for _, sym := range unionSymbols(base, end) {
		b, e := base[sym], end[sym]
		mv := newMover(sym, b, e, currency)

		baseV, endV := M(0, currency), M(0, currency)
		if b != nil {
			baseV = b.TotalValue
		}
		if e != nil {
			endV = e.TotalValue
		}
		buys, sells := M(0, currency), M(0, currency)
		if f, ok := flows[sym]; ok && !f.Incomplete {
			buys, sells = f.Buys, f.Sells
		}

		invested := baseV.Add(buys)
		mv.TotalValue = endV
		mv.BaseValue = &baseV
		mv.DeltaValue = endV.Add(sells).Sub(invested)
		if pct, ok := mv.DeltaValue.PctOf(invested); ok {
			mv.DeltaPct = pct.Ptr()
		}

		closed := baseV.IsPositive() && endV.IsZero()
		switch {
		case closed && sells.IsPositive():
			mv.Flow = FlowLiquidated
		case closed:
			mv.Flow = FlowMissingCashflow
		}
		out = append(out, mv)
	}
	return out
}

// rank splits movers into gainers (descending) and losers (ascending) by the
// given metric and truncates each side to limit. A zero metric lands on
// neither side, so the split is a permutation of the non-zero rows.
func rank(movers []Mover, metric func(Mover) Money, limit int) (gainers, losers []Mover) {
	for _, mv := range movers {
		v := metric(mv)
		switch {
		case v.IsPositive():
			gainers = append(gainers, mv)
		case v.IsNegative():
			losers = append(losers, mv)
		}
	}
	sort.SliceStable(gainers, func(i, j int) bool {
		return metric(gainers[i]).GreaterThan(metric(gainers[j]))
	})
	sort.SliceStable(losers, func(i, j int) bool {
		return metric(losers[i]).LessThan(metric(losers[j]))
	})
	if len(gainers) > limit {
		gainers = gainers[:limit]
	}
	if len(losers) > limit {
		losers = losers[:limit]
	}
	return gainers, losers
}

// periodBounds resolves the two snapshots bounding a period. For monthly and
// yearly an explicit selector narrows the calendar range; a range with no
// snapshots yields nil bounds (period unavailable).
func periodBounds(series *SnapshotSeries, p Period, month *Month, year *int) (from, to *Snapshot) {
	latest, ok := series.Latest()
	if !ok {
		return nil, nil
	}

	switch p {
	case Daily:
		if base, ok := series.Before(latest.Date); ok {
			return &base, &latest
		}
		return nil, &latest
	case Weekly:
		if base, ok := series.OnOrBefore(latest.Date.Add(-7)); ok {
			return &base, &latest
		}
		return nil, &latest
	case Monthly:
		m := latest.Date.Month()
		if month != nil {
			m = *month
		}
		return boundsInRange(series, MonthRange(m))
	case Yearly:
		y := latest.Date.Year()
		if year != nil {
			y = *year
		}
		return boundsInRange(series, YearRange(y))
	case YTD:
		if base, ok := series.FirstOfYear(latest.Date.Year(), latest.Date); ok {
			return &base, &latest
		}
		return nil, &latest
	default:
		return nil, nil
	}
}

func boundsInRange(series *SnapshotSeries, r Range) (from, to *Snapshot) {
	first, ok := series.FirstInRange(r)
	if !ok {
		return nil, nil
	}
	last, ok := series.LastInRange(r)
	if !ok {
		return nil, nil
	}
	return &first, &last
}

// NewPeriodMoversReport ranks the assets of one currency by value change
// between the bounding snapshots of a period. baseRows and endRows are the
// valuation sets at the bounds; flows are the classified order cashflows of
// the window (used by the pnl metric, may be nil for valuation).
func NewPeriodMoversReport(p Period, from, to *Snapshot, baseRows, endRows []AssetValuation,
	flows map[string]Cashflow, stats *OrderStats, metric MoversMetric, currency string, limit int) *MoversReport {

	report := &MoversReport{
		Kind:     KindPeriod,
		Period:   p,
		Currency: currency,
		Metric:   metric,
		Limit:    limit,
		Gainers:  []Mover{},
		Losers:   []Mover{},
	}
	if from == nil || to == nil {
		// Period unavailable: both bounds stay nil so callers can tell
		// "no data" apart from "data but zero movers".
		return report
	}
	report.From = &from.Date
	report.To = &to.Date

	baseRows = filterCurrency(baseRows, currency)
	endRows = filterCurrency(endRows, currency)

	var movers []Mover
	if metric == MetricPnL {
		if stats != nil {
			report.Stats = stats
			report.Warnings = stats.Warnings()
		}
		movers = unionMoversPnL(baseRows, endRows, flows, currency)
	} else {
		movers = unionMovers(baseRows, endRows, currency)
	}

	report.Gainers, report.Losers = rank(movers, func(m Mover) Money { return m.DeltaValue }, limit)
	return report
}

// NewTotalMoversReport ranks assets by lifetime gain:
// current value + sell proceeds - buy cost basis over the whole order
// history. Symbols whose records are incomplete are excluded and flagged.
func NewTotalMoversReport(current []AssetValuation, flows map[string]Cashflow, stats OrderStats,
	currency string, limit int) *MoversReport {

	report := &MoversReport{
		Kind:     KindTotal,
		Currency: currency,
		Limit:    limit,
		Stats:    &stats,
		Warnings: stats.Warnings(),
		Gainers:  []Mover{},
		Losers:   []Mover{},
	}

	current = filterCurrency(current, currency)
	cur := bySymbol(current)

	// Lifetime gains also cover symbols held in the past and fully sold.
	for sym := range flows {
		if _, ok := cur[sym]; !ok {
			cur[sym] = nil
		}
	}

	var movers []Mover
	for _, sym := range unionSymbols(cur, nil) {
		v := cur[sym]
		if f, ok := flows[sym]; ok && f.Incomplete {
			continue // understated flows would fabricate a gain figure
		}

		mv := newMover(sym, v, v, currency)
		value := M(0, currency)
		if v != nil {
			value = v.TotalValue
		}
		buys, sells := M(0, currency), M(0, currency)
		if f, ok := flows[sym]; ok {
			buys, sells = f.Buys, f.Sells
		}

		gain := value.Add(sells).Sub(buys)
		mv.TotalValue = value
		mv.GainAmount = &gain
		mv.DeltaValue = gain
		if pct, ok := gain.PctOf(buys); ok {
			mv.DeltaPct = pct.Ptr()
		}
		movers = append(movers, mv)
	}

	report.Gainers, report.Losers = rank(movers, func(m Mover) Money { return m.DeltaValue }, limit)
	return report
}
