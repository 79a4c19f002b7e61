package cartera

import "testing"

func TestSnapshotSeries_AppendReplacesSameDate(t *testing.T) {
	s := NewSnapshotSeries(
		snap("2025-03-10", 1000),
		snap("2025-03-12", 1200),
		snap("2025-03-10", 1100), // same date, later write wins
	)

	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	on, ok := s.On(MustParseDate("2025-03-10"))
	if !ok {
		t.Fatal("On(2025-03-10) not found")
	}
	if !on.TotalValue.Equal(ARS(1100)) {
		t.Errorf("TotalValue = %v, want %v", on.TotalValue, ARS(1100))
	}
}

func TestSnapshotSeries_OnOrBefore(t *testing.T) {
	s := NewSnapshotSeries(
		snap("2025-01-02", 100),
		snap("2025-01-10", 110),
		snap("2025-01-20", 120),
	)

	tests := []struct {
		probe string
		want  string
		ok    bool
	}{
		{"2025-01-10", "2025-01-10", true}, // exact hit
		{"2025-01-15", "2025-01-10", true}, // gap: closest earlier
		{"2025-01-01", "", false},          // before the series
		{"2025-02-01", "2025-01-20", true}, // after the series
	}
	for _, tt := range tests {
		got, ok := s.OnOrBefore(MustParseDate(tt.probe))
		if ok != tt.ok {
			t.Errorf("OnOrBefore(%s) ok = %v, want %v", tt.probe, ok, tt.ok)
			continue
		}
		if ok && got.Date != MustParseDate(tt.want) {
			t.Errorf("OnOrBefore(%s) = %s, want %s", tt.probe, got.Date, tt.want)
		}
	}
}

func TestSnapshotSeries_BeforeIsStrict(t *testing.T) {
	s := NewSnapshotSeries(snap("2025-01-10", 100), snap("2025-01-20", 120))

	got, ok := s.Before(MustParseDate("2025-01-20"))
	if !ok || got.Date != MustParseDate("2025-01-10") {
		t.Errorf("Before(2025-01-20) = %v,%v, want 2025-01-10", got.Date, ok)
	}
	if _, ok := s.Before(MustParseDate("2025-01-10")); ok {
		t.Error("Before(first date) should not find anything")
	}
}

func TestSnapshotSeries_RangeLookups(t *testing.T) {
	s := NewSnapshotSeries(
		snap("2025-02-28", 90),
		snap("2025-03-05", 100),
		snap("2025-03-25", 130),
		snap("2025-04-02", 140),
	)

	march := MonthRange(MustParseMonth("2025-03"))
	first, ok := s.FirstInRange(march)
	if !ok || first.Date != MustParseDate("2025-03-05") {
		t.Errorf("FirstInRange(march) = %v,%v, want 2025-03-05", first.Date, ok)
	}
	last, ok := s.LastInRange(march)
	if !ok || last.Date != MustParseDate("2025-03-25") {
		t.Errorf("LastInRange(march) = %v,%v, want 2025-03-25", last.Date, ok)
	}

	if _, ok := s.FirstInRange(MonthRange(MustParseMonth("2025-05"))); ok {
		t.Error("FirstInRange(empty month) should not find anything")
	}
}

func TestSnapshotSeries_FirstOfYear(t *testing.T) {
	s := NewSnapshotSeries(
		snap("2024-12-30", 80),
		snap("2025-01-03", 100),
		snap("2025-06-01", 150),
	)
	got, ok := s.FirstOfYear(2025, MustParseDate("2025-06-01"))
	if !ok || got.Date != MustParseDate("2025-01-03") {
		t.Errorf("FirstOfYear(2025) = %v,%v, want 2025-01-03", got.Date, ok)
	}
	if _, ok := s.FirstOfYear(2023, MustParseDate("2023-12-31")); ok {
		t.Error("FirstOfYear(2023) should not find anything")
	}
}

func TestSnapshot_CashValue(t *testing.T) {
	titles := ARS(900)
	withTitles := Snapshot{Date: MustParseDate("2025-01-01"), TotalValue: ARS(1000), TitlesValue: &titles}
	if got, ok := withTitles.CashValue(); !ok || !got.Equal(ARS(100)) {
		t.Errorf("CashValue() = %v,%v, want ARS 100", got, ok)
	}

	withBalance := Snapshot{
		Date:       MustParseDate("2025-01-01"),
		TotalValue: ARS(1000),
		Cash:       []CashBalance{{Currency: "USD", Amount: USD(5)}, {Currency: "ARS", Amount: ARS(42)}},
	}
	if got, ok := withBalance.CashValue(); !ok || !got.Equal(ARS(42)) {
		t.Errorf("CashValue() = %v,%v, want ARS 42", got, ok)
	}

	if _, ok := (Snapshot{TotalValue: ARS(1000)}).CashValue(); ok {
		t.Error("CashValue() with no titles value and no balances should be unknown")
	}
}
