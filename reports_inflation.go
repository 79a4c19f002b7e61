package cartera

import "fmt"

// InflationRow compares the portfolio's calendar-month return against the
// price index change of the same month. Either side can be missing; RealPct
// is only computed when both are known.
type InflationRow struct {
	Month Month
	// From/To are the snapshot dates bounding the month's return. From falls
	// back to the closest earlier snapshot when the month holds a single one;
	// both are nil when the month has no snapshots.
	From               *Date
	To                 *Date
	PortfolioPct       *Percent
	InflationPct       *Percent
	InflationProjected bool // InflationPct is an estimate, label it "(estimated)"
	RealPct            *Percent
}

// InflationCompareReport holds the month rows plus the data-freshness and
// projection flags consumers need to label estimated figures.
type InflationCompareReport struct {
	Rows []InflationRow
	// Stale reports the index values came from an expired cache.
	Stale bool
	// InflationAvailableTo is the last month with a real, published index
	// value; nil when the index store is empty.
	InflationAvailableTo  *Month
	ProjectionUsed        bool
	ProjectionSourceMonth *Month
	ProjectionPct         *Percent
}

// newInflationRow builds the comparison row for one calendar month.
func newInflationRow(series *SnapshotSeries, index *PriceIndexSeries, m Month, proj ProjectionStrategy) InflationRow {
	row := InflationRow{Month: m}

	first, okFirst := series.FirstInRange(MonthRange(m))
	last, okLast := series.LastInRange(MonthRange(m))
	if okFirst && okLast {
		row.From = &first.Date
		row.To = &last.Date
		base := first
		// A single in-month snapshot spans no interval; the closest earlier
		// snapshot serves as baseline when one exists. Without one the
		// return stays unknown, which is not the same as zero.
		if first.Date == last.Date {
			if prev, ok := series.Before(m.First()); ok {
				base = prev
				row.From = &base.Date
			}
		}
		if base.Date != last.Date {
			delta := last.TotalValue.Sub(base.TotalValue)
			if pct, ok := delta.PctOf(base.TotalValue); ok {
				row.PortfolioPct = pct.Ptr()
			}
		}
	}

	if pct, ok := index.PctChange(m); ok {
		row.InflationPct = pct.Ptr()
	} else if proj != nil {
		if pct, _, ok := proj.Project(index, m); ok {
			row.InflationPct = pct.Ptr()
			row.InflationProjected = true
		}
	}

	if row.PortfolioPct != nil && row.InflationPct != nil {
		row.RealPct = RealReturn(*row.PortfolioPct, *row.InflationPct).Ptr()
	}
	return row
}

// NewInflationCompareReport produces one row per calendar month for the last
// `months` months ending at the month of the latest snapshot. Months without
// published index values are estimated through the projection strategy and
// flagged, never silently filled.
func NewInflationCompareReport(series *SnapshotSeries, index *PriceIndexSeries, months int, proj ProjectionStrategy) (*InflationCompareReport, error) {
	if months < 1 || months > 120 {
		return nil, fmt.Errorf("months must be 1..120, got %d", months)
	}
	if proj == nil {
		proj = CarryForwardProjection{}
	}

	report := &InflationCompareReport{Rows: []InflationRow{}, Stale: index.Stale}
	if to, ok := index.AvailableTo(); ok {
		report.InflationAvailableTo = &to
	}

	latest, ok := series.Latest()
	if !ok {
		return report, nil
	}

	end := latest.Date.Month()
	start := end.Add(-(months - 1))
	for m := start; !m.After(end); m = m.Add(1) {
		row := newInflationRow(series, index, m, proj)
		if row.InflationProjected && !report.ProjectionUsed {
			report.ProjectionUsed = true
			if pct, src, ok := proj.Project(index, m); ok {
				report.ProjectionPct = pct.Ptr()
				report.ProjectionSourceMonth = &src
			}
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// InflationSeriesPoint is one month of the two indexed series, both rebased
// to 100 at the first month of the window, for charting cumulative
// divergence. A nil value means the series could not be compounded up to
// that month.
type InflationSeriesPoint struct {
	Month          Month
	PortfolioIndex *float64
	InflationIndex *float64
	Projected      bool
}

// InflationSeriesReport carries the two parallel base-100 series.
type InflationSeriesReport struct {
	Points               []InflationSeriesPoint
	Stale                bool
	InflationAvailableTo *Month
	ProjectionUsed       bool
}

// NewInflationSeriesReport compounds the same per-month percentages used by
// the compare rows into two index series rebased to 100 at the first month
// of the window.
func NewInflationSeriesReport(series *SnapshotSeries, index *PriceIndexSeries, months int, proj ProjectionStrategy) (*InflationSeriesReport, error) {
	compare, err := NewInflationCompareReport(series, index, months, proj)
	if err != nil {
		return nil, err
	}

	report := &InflationSeriesReport{
		Points:               []InflationSeriesPoint{},
		Stale:                compare.Stale,
		InflationAvailableTo: compare.InflationAvailableTo,
		ProjectionUsed:       compare.ProjectionUsed,
	}

	var pIdx, iIdx *float64
	for i, row := range compare.Rows {
		point := InflationSeriesPoint{Month: row.Month, Projected: row.InflationProjected}
		if i == 0 {
			base := 100.0
			b2 := base
			pIdx, iIdx = &base, &b2
		} else {
			pIdx = compoundIndex(pIdx, row.PortfolioPct)
			iIdx = compoundIndex(iIdx, row.InflationPct)
		}
		point.PortfolioIndex = pIdx
		point.InflationIndex = iIdx
		report.Points = append(report.Points, point)
	}
	return report, nil
}

// compoundIndex advances an index level by a month's percentage, or breaks
// the series (nil) when either the level or the percentage is unknown.
func compoundIndex(level *float64, pct *Percent) *float64 {
	if level == nil || pct == nil {
		return nil
	}
	next := *level * (1.0 + float64(*pct)/100.0)
	return &next
}

// InflationAnnualRow aggregates the monthly percentages of one calendar year
// by compounding. Partial years are reported but must stay labeled.
type InflationAnnualRow struct {
	Year         int
	PortfolioPct *Percent
	InflationPct *Percent
	RealPct      *Percent
	// Months is the number of months that contributed a portfolio return.
	Months int
	// Partial is set when fewer than 12 months contributed to either side.
	Partial            bool
	InflationProjected bool
}

// InflationAnnualReport holds the calendar-year aggregation.
type InflationAnnualReport struct {
	Rows                 []InflationAnnualRow
	Stale                bool
	InflationAvailableTo *Month
	ProjectionUsed       bool
}

// NewInflationAnnualReport compounds the monthly comparison rows into
// calendar-year totals for the last `years` years. Compounding, not
// summation: annual = (prod(1+monthly/100) - 1) * 100.
func NewInflationAnnualReport(series *SnapshotSeries, index *PriceIndexSeries, years int, proj ProjectionStrategy) (*InflationAnnualReport, error) {
	if years < 1 || years > 50 {
		return nil, fmt.Errorf("years must be 1..50, got %d", years)
	}
	if proj == nil {
		proj = CarryForwardProjection{}
	}

	report := &InflationAnnualReport{Rows: []InflationAnnualRow{}, Stale: index.Stale}
	if to, ok := index.AvailableTo(); ok {
		report.InflationAvailableTo = &to
	}

	latest, ok := series.Latest()
	if !ok {
		return report, nil
	}
	earliest, _ := series.Earliest()

	startYear := latest.Date.Year() - years + 1
	if y := earliest.Date.Year(); y > startYear {
		startYear = y
	}

	for y := startYear; y <= latest.Date.Year(); y++ {
		endMonth := NewMonth(y, 12)
		if y == latest.Date.Year() {
			endMonth = latest.Date.Month()
		}

		var portfolio, inflation []Percent
		projected := false
		for m := NewMonth(y, 1); !m.After(endMonth); m = m.Add(1) {
			row := newInflationRow(series, index, m, proj)
			if row.PortfolioPct != nil {
				portfolio = append(portfolio, *row.PortfolioPct)
			}
			if row.InflationPct != nil {
				inflation = append(inflation, *row.InflationPct)
				projected = projected || row.InflationProjected
			}
		}
		if len(portfolio) == 0 {
			continue
		}

		row := InflationAnnualRow{
			Year:               y,
			Months:             len(portfolio),
			Partial:            len(portfolio) < 12 || len(inflation) < 12,
			InflationProjected: projected,
		}
		row.PortfolioPct = Compound(portfolio...).Ptr()
		if len(inflation) > 0 {
			row.InflationPct = Compound(inflation...).Ptr()
			row.RealPct = RealReturn(*row.PortfolioPct, *row.InflationPct).Ptr()
		}
		report.Rows = append(report.Rows, row)
		report.ProjectionUsed = report.ProjectionUsed || projected
	}
	return report, nil
}
