package cartera

import (
	"iter"
	"slices"
)

// PriceIndexPoint is one published value of the monthly price index.
type PriceIndexPoint struct {
	Month Month
	Value float64
}

// PriceIndexSeries is the monthly macro price-index history (e.g. consumer
// price index). The series is sparse at the tail: the most recent month(s)
// may be absent until officially published.
type PriceIndexSeries struct {
	points []PriceIndexPoint

	// Stale reports that the points were served from an expired cache
	// because the upstream source could not be reached.
	Stale bool
	// Source names where the points came from, for data-freshness notices.
	Source string
}

// NewPriceIndexSeries builds a series from the given points, sorted by month.
// A later point on the same month replaces the earlier one.
func NewPriceIndexSeries(points ...PriceIndexPoint) *PriceIndexSeries {
	s := &PriceIndexSeries{}
	for _, p := range points {
		s.Append(p)
	}
	return s
}

func compareToMonth(p PriceIndexPoint, m Month) int {
	switch {
	case p.Month.Before(m):
		return -1
	case p.Month.After(m):
		return 1
	default:
		return 0
	}
}

// Append inserts a point keeping the series sorted by month.
func (s *PriceIndexSeries) Append(p PriceIndexPoint) *PriceIndexSeries {
	i, found := slices.BinarySearchFunc(s.points, p.Month, compareToMonth)
	if found {
		s.points[i] = p
		return s
	}
	s.points = slices.Insert(s.points, i, p)
	return s
}

// Len returns the number of published points.
func (s *PriceIndexSeries) Len() int { return len(s.points) }

// Values returns an iterator over all points in chronological order.
func (s *PriceIndexSeries) Values() iter.Seq[PriceIndexPoint] {
	return func(yield func(PriceIndexPoint) bool) {
		for _, p := range s.points {
			if !yield(p) {
				return
			}
		}
	}
}

// Value returns the published index value for a month.
func (s *PriceIndexSeries) Value(m Month) (float64, bool) {
	i, found := slices.BinarySearchFunc(s.points, m, compareToMonth)
	if !found {
		return 0, false
	}
	return s.points[i].Value, true
}

// AvailableTo returns the last calendar month with a published value.
func (s *PriceIndexSeries) AvailableTo() (Month, bool) {
	if len(s.points) == 0 {
		return Month{}, false
	}
	return s.points[len(s.points)-1].Month, true
}

// PctChange returns the month-over-month percentage change of the index for
// the given month: the change between the prior month and this month.
// False when either value is unpublished or the prior value is zero.
func (s *PriceIndexSeries) PctChange(m Month) (Percent, bool) {
	cur, ok := s.Value(m)
	if !ok {
		return 0, false
	}
	prev, ok := s.Value(m.Add(-1))
	if !ok || prev == 0 {
		return 0, false
	}
	return Percent((cur/prev - 1.0) * 100.0), true
}

// ProjectionStrategy estimates the month-over-month inflation for a month the
// index store has not published yet. Every estimate must stay visibly flagged
// downstream so consumers can label figures "(estimated)"; replacing the
// estimator must not remove those flags.
type ProjectionStrategy interface {
	// Project returns the estimated percentage for month m and the month the
	// estimate derives from, or false when no estimate is possible.
	Project(index *PriceIndexSeries, m Month) (Percent, Month, bool)
}

// CarryForwardProjection assumes an unpublished month's inflation equals the
// last known month-over-month rate. It is a single-rate carry-forward, not a
// forecast.
type CarryForwardProjection struct{}

func (CarryForwardProjection) Project(index *PriceIndexSeries, m Month) (Percent, Month, bool) {
	last, ok := index.AvailableTo()
	if !ok || !m.After(last) {
		// Only months beyond the published tail are estimated.
		return 0, Month{}, false
	}
	pct, ok := index.PctChange(last)
	if !ok {
		return 0, Month{}, false
	}
	return pct, last, true
}

var _ ProjectionStrategy = CarryForwardProjection{}
