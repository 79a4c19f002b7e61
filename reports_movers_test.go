package cartera

import "testing"

func TestNewPeriodMoversReport_PermutationSplit(t *testing.T) {
	series := NewSnapshotSeries(snap("2025-06-13", 100000), snap("2025-06-14", 101000))
	from, to := periodBounds(series, Daily, nil, nil)

	baseRows := []AssetValuation{val("UP", 1000), val("DOWN", 2000), val("FLAT", 3000)}
	endRows := []AssetValuation{val("UP", 1500), val("DOWN", 1800), val("FLAT", 3000)}

	r := NewPeriodMoversReport(Daily, from, to, baseRows, endRows, nil, nil, MetricValuation, "ARS", 10)

	if len(r.Gainers) != 1 || r.Gainers[0].Symbol != "UP" {
		t.Fatalf("Gainers = %v, want [UP]", r.Gainers)
	}
	if len(r.Losers) != 1 || r.Losers[0].Symbol != "DOWN" {
		t.Fatalf("Losers = %v, want [DOWN]", r.Losers)
	}
	// FLAT has a zero delta: it appears on neither side, so gainers and
	// losers together are a permutation of the non-zero movers.
	for _, m := range append(r.Gainers, r.Losers...) {
		if m.Symbol == "FLAT" {
			t.Error("zero-delta symbol must not be ranked")
		}
	}

	if !r.Gainers[0].DeltaValue.Equal(ARS(500)) {
		t.Errorf("UP delta = %v, want 500", r.Gainers[0].DeltaValue)
	}
	approxPct(t, "UP pct", r.Gainers[0].DeltaPct, 50.0, 0.0001)
	if !r.Losers[0].DeltaValue.Equal(ARS(-200)) {
		t.Errorf("DOWN delta = %v, want -200", r.Losers[0].DeltaValue)
	}
}

func TestNewPeriodMoversReport_OrderingAndLimit(t *testing.T) {
	series := NewSnapshotSeries(snap("2025-06-13", 1), snap("2025-06-14", 1))
	from, to := periodBounds(series, Daily, nil, nil)

	baseRows := []AssetValuation{val("A", 100), val("B", 100), val("C", 100), val("D", 100)}
	endRows := []AssetValuation{val("A", 130), val("B", 120), val("C", 110), val("D", 90)}

	r := NewPeriodMoversReport(Daily, from, to, baseRows, endRows, nil, nil, MetricValuation, "ARS", 2)

	if len(r.Gainers) != 2 {
		t.Fatalf("len(Gainers) = %d, want 2 (limit)", len(r.Gainers))
	}
	if r.Gainers[0].Symbol != "A" || r.Gainers[1].Symbol != "B" {
		t.Errorf("Gainers = [%s %s], want [A B]", r.Gainers[0].Symbol, r.Gainers[1].Symbol)
	}
	if len(r.Losers) != 1 || r.Losers[0].Symbol != "D" {
		t.Errorf("Losers = %v, want [D]", r.Losers)
	}
}

func TestNewPeriodMoversReport_NewAndRemovedPositions(t *testing.T) {
	series := NewSnapshotSeries(snap("2025-06-13", 1), snap("2025-06-14", 1))
	from, to := periodBounds(series, Daily, nil, nil)

	baseRows := []AssetValuation{val("GONE", 1000)}
	endRows := []AssetValuation{val("NEW", 700)}

	r := NewPeriodMoversReport(Daily, from, to, baseRows, endRows, nil, nil, MetricValuation, "ARS", 10)

	// A position absent on one side counts as zero on that side.
	if len(r.Gainers) != 1 || r.Gainers[0].Symbol != "NEW" || !r.Gainers[0].DeltaValue.Equal(ARS(700)) {
		t.Errorf("Gainers = %v, want NEW +700", r.Gainers)
	}
	if len(r.Losers) != 1 || r.Losers[0].Symbol != "GONE" || !r.Losers[0].DeltaValue.Equal(ARS(-1000)) {
		t.Errorf("Losers = %v, want GONE -1000", r.Losers)
	}
}

func TestNewPeriodMoversReport_PnLAdjustsForCashflows(t *testing.T) {
	series := NewSnapshotSeries(snap("2025-06-01", 1), snap("2025-06-30", 1))
	from, to := periodBounds(series, Monthly, nil, nil)

	// SOLD was held at 1000, fully liquidated for 1200 inside the window.
	baseRows := []AssetValuation{val("SOLD", 1000), val("HELD", 500)}
	endRows := []AssetValuation{val("HELD", 550)}

	flows, stats := CashflowsBySymbol([]Order{sell("SOLD", 1200)}, "ARS")

	r := NewPeriodMoversReport(Monthly, from, to, baseRows, endRows, flows, &stats, MetricPnL, "ARS", 10)

	var sold *Mover
	for i := range r.Gainers {
		if r.Gainers[i].Symbol == "SOLD" {
			sold = &r.Gainers[i]
		}
	}
	if sold == nil {
		t.Fatalf("SOLD not in gainers: %v", r.Gainers)
	}
	// delta = (0 + 1200) - (1000 + 0) = +200 on invested 1000.
	if !sold.DeltaValue.Equal(ARS(200)) {
		t.Errorf("SOLD delta = %v, want +200", sold.DeltaValue)
	}
	approxPct(t, "SOLD pct", sold.DeltaPct, 20.0, 0.0001)
	if sold.Flow != FlowLiquidated {
		t.Errorf("SOLD flow = %s, want %s", sold.Flow, FlowLiquidated)
	}
}

func TestNewPeriodMoversReport_PnLMissingCashflow(t *testing.T) {
	series := NewSnapshotSeries(snap("2025-06-01", 1), snap("2025-06-30", 1))
	from, to := periodBounds(series, Monthly, nil, nil)

	baseRows := []AssetValuation{val("SOLD", 1000)}
	var endRows []AssetValuation

	// No orders at all: the loss is overstated and flagged.
	flows, stats := CashflowsBySymbol(nil, "ARS")
	r := NewPeriodMoversReport(Monthly, from, to, baseRows, endRows, flows, &stats, MetricPnL, "ARS", 10)

	if len(r.Losers) != 1 || r.Losers[0].Flow != FlowMissingCashflow {
		t.Fatalf("Losers = %v, want one row flagged %s", r.Losers, FlowMissingCashflow)
	}
	if len(r.Warnings) != 1 || r.Warnings[0] != WarningOrdersNone {
		t.Errorf("Warnings = %v, want [%s]", r.Warnings, WarningOrdersNone)
	}
}

func TestNewPeriodMoversReport_UnavailablePeriod(t *testing.T) {
	// Only one snapshot: the daily window has no baseline.
	series := NewSnapshotSeries(snap("2025-06-14", 100000))
	from, to := periodBounds(series, Daily, nil, nil)

	r := NewPeriodMoversReport(Daily, from, to, nil, nil, nil, nil, MetricValuation, "ARS", 10)

	if r.From != nil || r.To != nil {
		t.Errorf("From/To = %v/%v, want nil/nil for an unavailable period", r.From, r.To)
	}
	if len(r.Gainers) != 0 || len(r.Losers) != 0 {
		t.Error("unavailable period must rank nothing")
	}
}

func TestPeriodBounds_ExplicitMonthSelector(t *testing.T) {
	series := NewSnapshotSeries(
		snap("2025-05-02", 100),
		snap("2025-05-28", 120),
		snap("2025-06-14", 130),
	)
	m := MustParseMonth("2025-05")
	from, to := periodBounds(series, Monthly, &m, nil)
	if from == nil || to == nil {
		t.Fatal("bounds for 2025-05 should exist")
	}
	if from.Date != MustParseDate("2025-05-02") || to.Date != MustParseDate("2025-05-28") {
		t.Errorf("bounds = %s..%s, want 2025-05-02..2025-05-28", from.Date, to.Date)
	}

	empty := MustParseMonth("2025-01")
	if from, to := periodBounds(series, Monthly, &empty, nil); from != nil || to != nil {
		t.Error("bounds for a month with no snapshots should be nil")
	}
}

func TestNewPeriodMoversReport_CurrencyPartition(t *testing.T) {
	series := NewSnapshotSeries(snap("2025-06-13", 1), snap("2025-06-14", 1))
	from, to := periodBounds(series, Daily, nil, nil)

	usd := AssetValuation{Symbol: "AL30D", Currency: "USD", TotalValue: USD(100)}
	baseRows := []AssetValuation{val("GGAL", 1000), usd}
	usdEnd := usd
	usdEnd.TotalValue = USD(150)
	endRows := []AssetValuation{val("GGAL", 1100), usdEnd}

	r := NewPeriodMoversReport(Daily, from, to, baseRows, endRows, nil, nil, MetricValuation, "ARS", 10)
	for _, m := range append(r.Gainers, r.Losers...) {
		if m.Currency != "ARS" {
			t.Errorf("mover %s currency = %s, ranking must never mix currencies", m.Symbol, m.Currency)
		}
		if m.Symbol == "AL30D" {
			t.Error("USD row leaked into the ARS ranking")
		}
	}
}

func TestNewTotalMoversReport(t *testing.T) {
	current := []AssetValuation{val("HELD", 1500)}
	flows, stats := CashflowsBySymbol([]Order{
		buy("HELD", 1000),
		buy("CLOSED", 800),
		sell("CLOSED", 600),
	}, "ARS")

	r := NewTotalMoversReport(current, flows, stats, "ARS", 10)

	if len(r.Gainers) != 1 || r.Gainers[0].Symbol != "HELD" {
		t.Fatalf("Gainers = %v, want [HELD]", r.Gainers)
	}
	// HELD: 1500 + 0 - 1000 = +500 on cost 1000.
	if !r.Gainers[0].DeltaValue.Equal(ARS(500)) {
		t.Errorf("HELD gain = %v, want +500", r.Gainers[0].DeltaValue)
	}
	approxPct(t, "HELD pct", r.Gainers[0].DeltaPct, 50.0, 0.0001)

	// CLOSED: 0 + 600 - 800 = -200, ranked from orders alone.
	if len(r.Losers) != 1 || r.Losers[0].Symbol != "CLOSED" || !r.Losers[0].DeltaValue.Equal(ARS(-200)) {
		t.Errorf("Losers = %v, want CLOSED -200", r.Losers)
	}
}

func TestNewTotalMoversReport_SkipsIncompleteFlows(t *testing.T) {
	incomplete := Order{Symbol: "BAD", Side: SideBuy, Currency: "ARS"} // no amount
	flows, stats := CashflowsBySymbol([]Order{buy("GOOD", 100), incomplete}, "ARS")

	current := []AssetValuation{val("GOOD", 150), val("BAD", 999)}
	r := NewTotalMoversReport(current, flows, stats, "ARS", 10)

	for _, m := range append(r.Gainers, r.Losers...) {
		if m.Symbol == "BAD" {
			t.Error("symbol with incomplete flows must be excluded, not guessed")
		}
	}
	if len(r.Warnings) != 1 || r.Warnings[0] != WarningOrdersIncomplete {
		t.Errorf("Warnings = %v, want [%s]", r.Warnings, WarningOrdersIncomplete)
	}
}
