// Package store reads the SQLite database written by the snapshot
// collection process and serves it through the cartera store interfaces.
package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fgallo/cartera"
)

// Store is a read-only view over the collector's SQLite file.
type Store struct {
	db *gorm.DB
}

var (
	_ cartera.SnapshotStore = (*Store)(nil)
	_ cartera.OrderStore    = (*Store)(nil)
)

// Open opens the SQLite database at the given DSN. The usual DSN is a file
// path; ":memory:" works for tests.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the tables when they do not exist yet. The collection
// process normally owns the schema; this is for backfill tooling and tests.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&snapshotRow{}, &assetRow{}, &orderRow{})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// timeFormats are the timestamp layouts the collector has written over time.
var timeFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

func parseTime(s string) time.Time {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r snapshotRow) toSnapshot() (cartera.Snapshot, error) {
	date, err := cartera.ParseDate(r.SnapshotDate)
	if err != nil {
		return cartera.Snapshot{}, fmt.Errorf("snapshot row %q: %w", r.SnapshotDate, err)
	}
	currency := NormalizeCurrency(r.Currency)
	if currency == "" {
		currency = "ARS"
	}

	snap := cartera.Snapshot{
		Date:        date,
		TotalValue:  cartera.M(r.TotalValue, currency),
		RetrievedAt: parseTime(r.RetrievedAt),
		Source:      cartera.Source(r.Source),
	}
	if r.TitlesValue != nil {
		titles := cartera.M(*r.TitlesValue, currency)
		snap.TitlesValue = &titles
	}
	if r.CashDisponibleARS != nil {
		snap.Cash = append(snap.Cash, cartera.CashBalance{Currency: "ARS", Amount: cartera.ARS(*r.CashDisponibleARS)})
	}
	if r.CashDisponibleUSD != nil {
		snap.Cash = append(snap.Cash, cartera.CashBalance{Currency: "USD", Amount: cartera.USD(*r.CashDisponibleUSD)})
	}
	return snap, nil
}

// Snapshots reads the full snapshot history in chronological order.
func (s *Store) Snapshots() (*cartera.SnapshotSeries, error) {
	var rows []snapshotRow
	if err := s.db.Order("snapshot_date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading portfolio_snapshots: %w", err)
	}
	series := cartera.NewSnapshotSeries()
	for _, r := range rows {
		snap, err := r.toSnapshot()
		if err != nil {
			return nil, err
		}
		series.Append(snap)
	}
	return series, nil
}

// Valuations reads the per-asset rows of one snapshot date.
func (s *Store) Valuations(on cartera.Date) ([]cartera.AssetValuation, error) {
	var rows []assetRow
	if err := s.db.Where("snapshot_date = ?", on.String()).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading portfolio_assets on %s: %w", on, err)
	}
	out := make([]cartera.AssetValuation, 0, len(rows))
	for _, r := range rows {
		currency := NormalizeCurrency(r.Currency)
		v := cartera.AssetValuation{
			Symbol:      r.Symbol,
			Description: r.Description,
			Type:        r.Type,
			Market:      r.Market,
			Currency:    currency,
			TotalValue:  cartera.M(r.TotalValue, currency),
			Quantity:    cartera.NewQuantity(decimal.NewFromFloat(r.Quantity)),
			UnitPrice:   cartera.M(r.LastPrice, currency),
		}
		if r.DailyVarPct != nil {
			v.DailyVarPct = cartera.Percent(*r.DailyVarPct).Ptr()
		}
		out = append(out, v)
	}
	return out, nil
}

// Orders reads the finished orders created inside the window, classified and
// restricted to one ISO currency. Rows with no currency recorded are assumed
// to be in the requested one, matching how the collector stores them.
func (s *Store) Orders(from, to cartera.Date, currency string) ([]cartera.Order, error) {
	var rows []orderRow
	err := s.db.
		Where("status = ?", "terminada").
		Where("created_at >= ? AND created_at <= ?",
			from.Format("2006-01-02T00:00:00"), to.Format("2006-01-02T23:59:59")).
		Where("currency IS NULL OR currency = '' OR currency = ?", brokerCurrency(currency)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading orders %s..%s: %w", from, to, err)
	}

	out := make([]cartera.Order, 0, len(rows))
	for _, r := range rows {
		o := cartera.Order{
			Symbol:     r.Symbol,
			Side:       ClassifySide(r.SideNorm, r.Side),
			Currency:   currency,
			ExecutedAt: parseTime(r.CreatedAt),
		}
		if r.OperatedAt != nil {
			if t := parseTime(*r.OperatedAt); !t.IsZero() {
				o.ExecutedAt = t
			}
		}
		if r.Quantity != nil {
			o.Quantity = cartera.NewQuantity(decimal.NewFromFloat(*r.Quantity))
		}
		if r.Price != nil {
			p := cartera.M(*r.Price, currency)
			o.Price = &p
		}
		if r.OperatedAmount != nil {
			a := cartera.M(*r.OperatedAmount, currency)
			o.Amount = &a
		}
		out = append(out, o)
	}
	return out, nil
}
