package cartera

import (
	"testing"
	"time"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2025, time.January, 31)

	if got := d.Add(1); got != NewDate(2025, time.February, 1) {
		t.Errorf("Add(1) = %v, want 2025-02-01", got)
	}
	// Month arithmetic normalizes like time.Date does.
	if got := d.AddMonth(1); got != NewDate(2025, time.March, 3) {
		t.Errorf("AddMonth(1) = %v, want 2025-03-03", got)
	}
	if got := NewDate(2024, time.February, 29).AddYear(1); got != NewDate(2025, time.March, 1) {
		t.Errorf("AddYear(1) = %v, want 2025-03-01", got)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-14")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got != NewDate(2025, time.June, 14) {
		t.Errorf("ParseDate() = %v, want 2025-06-14", got)
	}
	if _, err := ParseDate("14/06/2025"); err == nil {
		t.Error("ParseDate(14/06/2025) should fail")
	}
}

func TestMonthBounds(t *testing.T) {
	m := MustParseMonth("2025-02")
	if got := m.First(); got != NewDate(2025, time.February, 1) {
		t.Errorf("First() = %v, want 2025-02-01", got)
	}
	if got := m.Last(); got != NewDate(2025, time.February, 28) {
		t.Errorf("Last() = %v, want 2025-02-28", got)
	}
	if got := MustParseMonth("2024-02").Last(); got != NewDate(2024, time.February, 29) {
		t.Errorf("leap Last() = %v, want 2024-02-29", got)
	}
	if got := m.Add(11); got != MustParseMonth("2026-01") {
		t.Errorf("Add(11) = %v, want 2026-01", got)
	}
}

func TestCompoundAndRealReturn(t *testing.T) {
	if got := Compound(Percent(10), Percent(10)); !got.Equal(Percent(21)) {
		t.Errorf("Compound(10,10) = %v, want 21", got)
	}
	if got := Compound(); !got.Equal(Percent(0)) {
		t.Errorf("Compound() = %v, want 0", got)
	}
	got := RealReturn(Percent(10), Percent(2))
	approxPct(t, "RealReturn(10,2)", got.Ptr(), 7.8431, 0.001)
	// Deflation raises the real figure above the nominal one.
	if got := RealReturn(Percent(0), Percent(-5)); !(got > 5) {
		t.Errorf("RealReturn(0,-5) = %v, want > 5", got)
	}
}
