package cartera

import (
	"fmt"
	"testing"
)

func typed(symbol, typ string, total float64) AssetValuation {
	v := val(symbol, total)
	v.Type = typ
	return v
}

func TestNewAllocationReport_GroupByType(t *testing.T) {
	s := snap("2025-06-14", 10000)
	rows := []AssetValuation{
		typed("GGAL", "stock", 4000),
		typed("YPFD", "stock", 2000),
		typed("AL30", "bond", 3000),
		typed("FCI1", "", 1000), // no type reported
	}

	r := NewAllocationReport(s, rows, ByType, false)

	want := []AllocationGroup{
		{Key: "stock", Value: ARS(6000)},
		{Key: "bond", Value: ARS(3000)},
		{Key: "unknown", Value: ARS(1000)},
	}
	if len(r.Groups) != len(want) {
		t.Fatalf("Groups = %v, want %v", r.Groups, want)
	}
	for i := range want {
		if r.Groups[i].Key != want[i].Key || !r.Groups[i].Value.Equal(want[i].Value) {
			t.Errorf("Groups[%d] = %v, want %v", i, r.Groups[i], want[i])
		}
	}
	if !r.Total().Equal(ARS(10000)) {
		t.Errorf("Total() = %v, want 10000", r.Total())
	}
}

func TestNewAllocationReport_OtherBucketConservesTotal(t *testing.T) {
	s := snap("2025-06-14", 0)
	var rows []AssetValuation
	var total float64
	for i := 0; i < 12; i++ {
		v := float64(100 * (i + 1))
		rows = append(rows, val(fmt.Sprintf("SYM%02d", i), v))
		total += v
	}

	r := NewAllocationReport(s, rows, BySymbol, false)

	if len(r.Groups) != allocationTopGroups+1 {
		t.Fatalf("len(Groups) = %d, want %d + Other", len(r.Groups), allocationTopGroups)
	}
	last := r.Groups[len(r.Groups)-1]
	if last.Key != OtherGroupLabel {
		t.Errorf("last group = %q, want %q", last.Key, OtherGroupLabel)
	}
	// Folding the tail must never change the total.
	if !r.Total().Equal(ARS(total)) {
		t.Errorf("Total() = %v, want %v", r.Total(), ARS(total))
	}
	// Head stays sorted descending.
	for i := 1; i < allocationTopGroups; i++ {
		if r.Groups[i].Value.GreaterThan(r.Groups[i-1].Value) {
			t.Errorf("Groups not sorted descending at %d: %v > %v", i, r.Groups[i], r.Groups[i-1])
		}
	}
}

func TestNewAllocationReport_MixedCurrencies(t *testing.T) {
	// Broker rows carry both ARS and USD figures. The breakdown sums the raw
	// numbers in the snapshot's currency instead of refusing the mix.
	s := snap("2025-06-14", 10500)

	usdCedear := typed("AAPL", "cedear", 500)
	usdCedear.Currency = "USD"
	usdCedear.TotalValue = USD(500)
	rows := []AssetValuation{
		usdCedear,
		typed("GGAL", "cedear", 4000),
		typed("AL30", "bond", 6000),
	}

	byType := NewAllocationReport(s, rows, ByType, false)
	want := []AllocationGroup{
		{Key: "bond", Value: ARS(6000)},
		{Key: "cedear", Value: ARS(4500)},
	}
	if len(byType.Groups) != len(want) {
		t.Fatalf("Groups = %v, want %v", byType.Groups, want)
	}
	for i := range want {
		if byType.Groups[i].Key != want[i].Key || !byType.Groups[i].Value.Equal(want[i].Value) {
			t.Errorf("Groups[%d] = %v, want %v", i, byType.Groups[i], want[i])
		}
	}

	byCurrency := NewAllocationReport(s, rows, ByCurrency, false)
	if len(byCurrency.Groups) != 2 {
		t.Fatalf("ByCurrency Groups = %v, want ARS and USD", byCurrency.Groups)
	}
	if !byCurrency.Total().Equal(ARS(10500)) {
		t.Errorf("Total() = %v, want 10500 across both currency groups", byCurrency.Total())
	}
}

func TestNewAllocationReport_IncludeCash(t *testing.T) {
	titles := ARS(9000)
	s := snap("2025-06-14", 10000)
	s.TitlesValue = &titles

	rows := []AssetValuation{val("GGAL", 9000)}

	r := NewAllocationReport(s, rows, BySymbol, true)

	var cash *AllocationGroup
	for i := range r.Groups {
		if r.Groups[i].Key == CashGroupLabel {
			cash = &r.Groups[i]
		}
	}
	if cash == nil {
		t.Fatalf("no %s group in %v", CashGroupLabel, r.Groups)
	}
	if !cash.Value.Equal(ARS(1000)) {
		t.Errorf("cash = %v, want 1000", cash.Value)
	}
	if !r.Total().Equal(ARS(10000)) {
		t.Errorf("Total() = %v, want the snapshot total", r.Total())
	}

	// Unknown cash value: the pseudo-asset is omitted, not zeroed.
	noCash := NewAllocationReport(snap("2025-06-14", 10000), rows, BySymbol, true)
	for _, g := range noCash.Groups {
		if g.Key == CashGroupLabel {
			t.Error("cash group present although the cash value is unknown")
		}
	}
}

func TestParseGroupBy(t *testing.T) {
	for _, s := range []string{"symbol", "type", "market", "currency"} {
		g, err := ParseGroupBy(s)
		if err != nil {
			t.Errorf("ParseGroupBy(%q) error = %v", s, err)
		}
		if g.String() != s {
			t.Errorf("ParseGroupBy(%q).String() = %q", s, g.String())
		}
	}
	if _, err := ParseGroupBy("sector"); err == nil {
		t.Error("ParseGroupBy(sector) should fail")
	}
}
