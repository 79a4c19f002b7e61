package cartera

import "github.com/shopspring/decimal"

// ReturnBlock is the change of total portfolio value over one window.
// Delta and Pct are nil when no baseline snapshot exists for the window, or
// (for Pct) when the baseline value is zero. A nil field means "unknown",
// which is not the same thing as a zero change.
type ReturnBlock struct {
	From  *Date
	To    *Date
	Delta *Money
	Pct   *Percent
}

// ReturnsReport holds the point-in-time returns of the portfolio for each
// calendar window, as of a reference date. One missing window never blocks
// the others.
type ReturnsReport struct {
	AsOf              Date
	ReportingCurrency string
	Daily             ReturnBlock
	Weekly            ReturnBlock
	Monthly           ReturnBlock
	Yearly            ReturnBlock
	YTD               ReturnBlock
}

// newReturnBlock computes the change between two snapshots.
func newReturnBlock(base, latest *Snapshot) ReturnBlock {
	var b ReturnBlock
	if base != nil {
		b.From = &base.Date
	}
	if latest != nil {
		b.To = &latest.Date
	}
	if base == nil || latest == nil {
		return b
	}
	delta := latest.TotalValue.Sub(base.TotalValue)
	b.Delta = &delta
	if pct, ok := delta.PctOf(base.TotalValue); ok {
		b.Pct = pct.Ptr()
	}
	return b
}

// dailyFromValuations builds a daily block out of broker-provided per-asset
// daily variations. It is the fallback when the series holds a single
// snapshot and no previous-day baseline exists.
func dailyFromValuations(latest Snapshot, valuations []AssetValuation) ReturnBlock {
	delta := M(0, latest.TotalValue.Currency())
	denomAssets := decimal.Zero
	for _, v := range valuations {
		if v.DailyVarPct == nil || v.Currency != delta.Currency() {
			continue
		}
		pct := decimal.NewFromFloat(float64(*v.DailyVarPct))
		delta = delta.Add(M(v.TotalValue.Decimal().Mul(pct).Div(decimal.NewFromInt(100)), delta.Currency()))
		denomAssets = denomAssets.Add(v.TotalValue.Decimal())
	}

	denom := M(denomAssets, latest.TotalValue.Currency())
	if latest.TitlesValue != nil {
		denom = *latest.TitlesValue
	}

	b := ReturnBlock{From: &latest.Date, To: &latest.Date, Delta: &delta}
	if pct, ok := delta.PctOf(denom); ok {
		b.Pct = pct.Ptr()
	}
	return b
}

// NewReturnsReport computes the portfolio returns for the daily, weekly,
// monthly, yearly and year-to-date windows ending at asOf. Baselines over the
// sparse series are resolved with closest-earlier lookups:
//
//	daily   - the snapshot immediately preceding asOf
//	weekly  - closest snapshot at least 7 calendar days before asOf
//	monthly - closest snapshot on or before the same day one month earlier
//	yearly  - closest snapshot on or before the same day one year earlier
//	ytd     - first snapshot on or after January 1 of the asOf year
//
// valuations are the as-of asset rows; they only feed the single-snapshot
// daily fallback and may be nil.
func NewReturnsReport(series *SnapshotSeries, valuations []AssetValuation, asOf Date) *ReturnsReport {
	report := &ReturnsReport{AsOf: asOf}

	latest, ok := series.OnOrBefore(asOf)
	if !ok {
		return report
	}
	report.ReportingCurrency = latest.TotalValue.Currency()

	if base, ok := series.Before(latest.Date); ok {
		report.Daily = newReturnBlock(&base, &latest)
	} else {
		// Single snapshot: no previous snapshot to diff against, but the
		// broker-reported per-asset variations still yield a daily delta.
		report.Daily = dailyFromValuations(latest, valuations)
	}

	if base, ok := series.OnOrBefore(latest.Date.Add(-7)); ok {
		report.Weekly = newReturnBlock(&base, &latest)
	} else {
		report.Weekly = newReturnBlock(nil, &latest)
	}

	if base, ok := series.OnOrBefore(latest.Date.AddMonth(-1)); ok {
		report.Monthly = newReturnBlock(&base, &latest)
	} else {
		report.Monthly = newReturnBlock(nil, &latest)
	}

	if base, ok := series.OnOrBefore(latest.Date.AddYear(-1)); ok {
		report.Yearly = newReturnBlock(&base, &latest)
	} else {
		report.Yearly = newReturnBlock(nil, &latest)
	}

	if base, ok := series.FirstOfYear(latest.Date.Year(), latest.Date); ok {
		report.YTD = newReturnBlock(&base, &latest)
	} else {
		report.YTD = newReturnBlock(nil, &latest)
	}

	return report
}
