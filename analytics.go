package cartera

import "fmt"

// SnapshotStore is the engine's read-only view of the collected valuation
// history. Implementations must return the series already materialized; the
// engine performs no I/O of its own.
type SnapshotStore interface {
	// Snapshots returns the full ordered snapshot series.
	Snapshots() (*SnapshotSeries, error)
	// Valuations returns the per-asset valuation rows of one snapshot date.
	Valuations(on Date) ([]AssetValuation, error)
}

// PriceIndexStore serves the monthly price-index series covering at least
// the given month range (endpoints included when published).
type PriceIndexStore interface {
	IndexSeries(from, to Month) (*PriceIndexSeries, error)
}

// OrderStore serves the executed trade records of a date window, classified
// and restricted to one currency.
type OrderStore interface {
	Orders(from, to Date, currency string) ([]Order, error)
}

// AnalyticsSystem is the portfolio analytics engine: synchronous, stateless,
// read-only queries over the materialized stores. Concurrent queries against
// the same system need no coordination.
type AnalyticsSystem struct {
	Snapshots SnapshotStore
	Index     PriceIndexStore
	Orders    OrderStore // may be nil; order-based figures then degrade

	// Projection estimates unpublished index months. Defaults to
	// CarryForwardProjection.
	Projection ProjectionStrategy

	// BaseCurrency is the reporting currency of the snapshot totals and the
	// default ranking currency.
	BaseCurrency string
}

// NewAnalyticsSystem wires the engine to its collaborators.
func NewAnalyticsSystem(snapshots SnapshotStore, index PriceIndexStore, orders OrderStore) (*AnalyticsSystem, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("analytics: snapshot store is required")
	}
	return &AnalyticsSystem{
		Snapshots:    snapshots,
		Index:        index,
		Orders:       orders,
		Projection:   CarryForwardProjection{},
		BaseCurrency: "ARS",
	}, nil
}

// Returns computes the period returns as of the given date; the zero date
// means "latest snapshot".
func (as *AnalyticsSystem) Returns(asOf Date) (*ReturnsReport, error) {
	series, err := as.Snapshots.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot series: %w", err)
	}
	if asOf.IsZero() {
		if latest, ok := series.Latest(); ok {
			asOf = latest.Date
		} else {
			asOf = Today()
		}
	}

	// The valuation rows only matter for the single-snapshot daily fallback.
	var valuations []AssetValuation
	if ref, ok := series.OnOrBefore(asOf); ok {
		if _, hasBase := series.Before(ref.Date); !hasBase {
			valuations, err = as.Snapshots.Valuations(ref.Date)
			if err != nil {
				return nil, fmt.Errorf("reading valuations on %s: %w", ref.Date, err)
			}
		}
	}
	return NewReturnsReport(series, valuations, asOf), nil
}

// MoversQuery carries the validated parameters of a movers request.
type MoversQuery struct {
	Kind     MoversKind
	Period   Period
	Month    *Month // explicit selector for the monthly period
	Year     *int   // explicit selector for the yearly period
	Currency string // empty means the base currency
	Metric   MoversMetric
	Limit    int // 0 means the default of 10
}

// Movers ranks gainers and losers per the query. Caller-contract violations
// (bad limit, unusable selectors) fail before any store read.
func (as *AnalyticsSystem) Movers(q MoversQuery) (*MoversReport, error) {
	if q.Limit == 0 {
		q.Limit = 10
	}
	if q.Limit < 1 || q.Limit > 100 {
		return nil, fmt.Errorf("limit must be 1..100, got %d", q.Limit)
	}
	if q.Currency == "" {
		q.Currency = as.BaseCurrency
	}

	series, err := as.Snapshots.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot series: %w", err)
	}

	if q.Kind == KindTotal {
		return as.totalMovers(series, q)
	}

	from, to := periodBounds(series, q.Period, q.Month, q.Year)
	if from == nil || to == nil {
		return NewPeriodMoversReport(q.Period, nil, nil, nil, nil, nil, nil, q.Metric, q.Currency, q.Limit), nil
	}

	baseRows, err := as.Snapshots.Valuations(from.Date)
	if err != nil {
		return nil, fmt.Errorf("reading valuations on %s: %w", from.Date, err)
	}
	endRows, err := as.Snapshots.Valuations(to.Date)
	if err != nil {
		return nil, fmt.Errorf("reading valuations on %s: %w", to.Date, err)
	}

	var flows map[string]Cashflow
	var stats *OrderStats
	if q.Metric == MetricPnL && as.Orders != nil {
		orders, err := as.Orders.Orders(from.Date, to.Date, q.Currency)
		if err != nil {
			return nil, fmt.Errorf("reading orders: %w", err)
		}
		f, st := CashflowsBySymbol(orders, q.Currency)
		flows, stats = f, &st
	}

	return NewPeriodMoversReport(q.Period, from, to, baseRows, endRows, flows, stats, q.Metric, q.Currency, q.Limit), nil
}

func (as *AnalyticsSystem) totalMovers(series *SnapshotSeries, q MoversQuery) (*MoversReport, error) {
	latest, ok := series.Latest()
	if !ok {
		return NewTotalMoversReport(nil, nil, OrderStats{}, q.Currency, q.Limit), nil
	}
	current, err := as.Snapshots.Valuations(latest.Date)
	if err != nil {
		return nil, fmt.Errorf("reading valuations on %s: %w", latest.Date, err)
	}

	var flows map[string]Cashflow
	var stats OrderStats
	if as.Orders != nil {
		earliest, _ := series.Earliest()
		orders, err := as.Orders.Orders(earliest.Date, latest.Date, q.Currency)
		if err != nil {
			return nil, fmt.Errorf("reading orders: %w", err)
		}
		flows, stats = CashflowsBySymbol(orders, q.Currency)
	}

	report := NewTotalMoversReport(current, flows, stats, q.Currency, q.Limit)
	report.From = &latest.Date
	report.To = &latest.Date
	return report, nil
}

// indexSeriesFor reads the price index covering the compare window plus one
// leading month (month-over-month changes need the prior value).
func (as *AnalyticsSystem) indexSeriesFor(series *SnapshotSeries, months int) (*PriceIndexSeries, error) {
	if as.Index == nil {
		return NewPriceIndexSeries(), nil
	}
	latest, ok := series.Latest()
	if !ok {
		return NewPriceIndexSeries(), nil
	}
	end := latest.Date.Month()
	from := end.Add(-months)
	idx, err := as.Index.IndexSeries(from, end)
	if err != nil {
		return nil, fmt.Errorf("reading price index: %w", err)
	}
	return idx, nil
}

// InflationCompare compares the portfolio's calendar-month returns with the
// price-index changes over the last `months` months (0 means 12).
func (as *AnalyticsSystem) InflationCompare(months int) (*InflationCompareReport, error) {
	if months == 0 {
		months = 12
	}
	series, err := as.Snapshots.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot series: %w", err)
	}
	index, err := as.indexSeriesFor(series, months)
	if err != nil {
		return nil, err
	}
	return NewInflationCompareReport(series, index, months, as.Projection)
}

// InflationSeries returns the base-100 indexed divergence series over the
// last `months` months (0 means 12).
func (as *AnalyticsSystem) InflationSeries(months int) (*InflationSeriesReport, error) {
	if months == 0 {
		months = 12
	}
	series, err := as.Snapshots.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot series: %w", err)
	}
	index, err := as.indexSeriesFor(series, months)
	if err != nil {
		return nil, err
	}
	return NewInflationSeriesReport(series, index, months, as.Projection)
}

// InflationAnnual aggregates the comparison into calendar years over the
// last `years` years (0 means 10).
func (as *AnalyticsSystem) InflationAnnual(years int) (*InflationAnnualReport, error) {
	if years == 0 {
		years = 10
	}
	series, err := as.Snapshots.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot series: %w", err)
	}
	index, err := as.indexSeriesFor(series, years*12)
	if err != nil {
		return nil, err
	}
	return NewInflationAnnualReport(series, index, years, as.Projection)
}

// Allocation groups the latest snapshot's holdings by the chosen dimension.
func (as *AnalyticsSystem) Allocation(groupBy GroupBy, includeCash bool) (*AllocationReport, error) {
	series, err := as.Snapshots.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot series: %w", err)
	}
	latest, ok := series.Latest()
	if !ok {
		return &AllocationReport{GroupBy: groupBy, Groups: []AllocationGroup{}}, nil
	}
	rows, err := as.Snapshots.Valuations(latest.Date)
	if err != nil {
		return nil, fmt.Errorf("reading valuations on %s: %w", latest.Date, err)
	}
	return NewAllocationReport(latest, rows, groupBy, includeCash), nil
}
