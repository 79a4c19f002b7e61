package cartera

import (
	"iter"
	"slices"
	"time"
)

// Source tags the provenance of a snapshot row.
type Source string

const (
	SourceManual   Source = "manual"
	SourceCron     Source = "cron"
	SourceBackfill Source = "backfill"
)

// Snapshot is one recorded total valuation of the portfolio on a given
// calendar date. Snapshots are created once by the collection process and
// never mutated here.
type Snapshot struct {
	Date        Date
	TotalValue  Money  // everything, expressed in the reporting currency
	TitlesValue *Money // valued securities only, nil when the collector did not report it
	Cash        []CashBalance
	RetrievedAt time.Time
	Source      Source
}

// CashBalance is the available cash in one currency at snapshot time.
type CashBalance struct {
	Currency string
	Amount   Money
}

// CashValue returns the snapshot's cash expressed in the reporting currency.
// It prefers TotalValue - TitlesValue, falling back to the reported balance
// in the reporting currency. Returns false when neither is known.
func (s Snapshot) CashValue() (Money, bool) {
	if s.TitlesValue != nil {
		return s.TotalValue.Sub(*s.TitlesValue), true
	}
	for _, c := range s.Cash {
		if c.Currency == s.TotalValue.Currency() {
			return c.Amount, true
		}
	}
	return Money{}, false
}

// AssetValuation is the valuation of one instrument inside one snapshot.
// The sum of valuations plus cash approximates the snapshot total; currency
// and rounding drift is tolerated, not corrected (see DESIGN.md).
type AssetValuation struct {
	Symbol      string
	Description string
	Type        string // instrument class (stock, bond, fund, ...)
	Market      string
	Currency    string
	TotalValue  Money
	Quantity    Quantity
	UnitPrice   Money
	DailyVarPct *Percent // broker-provided daily variation, when available
}

// SnapshotSeries is the ordered daily snapshot history. Dates are unique and
// the slice is kept sorted, so every lookup is a binary search; the sequence
// may have gaps (missing trading days, days the collector did not run).
type SnapshotSeries struct {
	snaps []Snapshot
}

// NewSnapshotSeries builds a series from the given snapshots, sorting them
// by date. When two snapshots share a date the later one wins.
func NewSnapshotSeries(snaps ...Snapshot) *SnapshotSeries {
	s := &SnapshotSeries{}
	for _, snap := range snaps {
		s.Append(snap)
	}
	return s
}

// compareToDate orders a snapshot against a probe date for binary searches.
func compareToDate(s Snapshot, d Date) int {
	switch {
	case s.Date.Before(d):
		return -1
	case s.Date.After(d):
		return 1
	default:
		return 0
	}
}

// Append inserts a snapshot keeping the series sorted. An existing snapshot
// on the same date is replaced: at most one snapshot per calendar date.
func (s *SnapshotSeries) Append(snap Snapshot) *SnapshotSeries {
	i, found := slices.BinarySearchFunc(s.snaps, snap.Date, compareToDate)
	if found {
		s.snaps[i] = snap
		return s
	}
	s.snaps = slices.Insert(s.snaps, i, snap)
	return s
}

// Len returns the number of snapshots in the series.
func (s *SnapshotSeries) Len() int { return len(s.snaps) }

// Values returns an iterator over all snapshots in chronological order.
func (s *SnapshotSeries) Values() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for _, snap := range s.snaps {
			if !yield(snap) {
				return
			}
		}
	}
}

// Latest returns the most recent snapshot.
func (s *SnapshotSeries) Latest() (Snapshot, bool) {
	if len(s.snaps) == 0 {
		return Snapshot{}, false
	}
	return s.snaps[len(s.snaps)-1], true
}

// Earliest returns the oldest snapshot.
func (s *SnapshotSeries) Earliest() (Snapshot, bool) {
	if len(s.snaps) == 0 {
		return Snapshot{}, false
	}
	return s.snaps[0], true
}

// On returns the snapshot recorded exactly on the given date.
func (s *SnapshotSeries) On(d Date) (Snapshot, bool) {
	i, found := slices.BinarySearchFunc(s.snaps, d, compareToDate)
	if !found {
		return Snapshot{}, false
	}
	return s.snaps[i], true
}

// Before returns the closest snapshot strictly before the given date.
func (s *SnapshotSeries) Before(d Date) (Snapshot, bool) {
	i, _ := slices.BinarySearchFunc(s.snaps, d, compareToDate)
	if i == 0 {
		return Snapshot{}, false
	}
	return s.snaps[i-1], true
}

// OnOrBefore returns the snapshot with the largest date that is still on or
// before the target date. This is the "closest earlier" lookup used for all
// rolling baselines over the sparse series.
func (s *SnapshotSeries) OnOrBefore(d Date) (Snapshot, bool) {
	i, found := slices.BinarySearchFunc(s.snaps, d, compareToDate)
	if found {
		return s.snaps[i], true
	}
	if i == 0 {
		return Snapshot{}, false
	}
	return s.snaps[i-1], true
}

// FirstInRange returns the earliest snapshot inside the range.
func (s *SnapshotSeries) FirstInRange(r Range) (Snapshot, bool) {
	i, _ := slices.BinarySearchFunc(s.snaps, r.From, compareToDate)
	if i >= len(s.snaps) || s.snaps[i].Date.After(r.To) {
		return Snapshot{}, false
	}
	return s.snaps[i], true
}

// LastInRange returns the latest snapshot inside the range.
func (s *SnapshotSeries) LastInRange(r Range) (Snapshot, bool) {
	i, found := slices.BinarySearchFunc(s.snaps, r.To, compareToDate)
	if found {
		return s.snaps[i], true
	}
	if i == 0 || s.snaps[i-1].Date.Before(r.From) {
		return Snapshot{}, false
	}
	return s.snaps[i-1], true
}

// FirstOfYear returns the first snapshot dated on or after January 1 of the
// given year, not beyond upTo. This is the YTD baseline.
func (s *SnapshotSeries) FirstOfYear(year int, upTo Date) (Snapshot, bool) {
	return s.FirstInRange(Range{From: NewDate(year, 1, 1), To: upTo})
}
