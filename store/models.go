package store

// The schema is owned by the collection process; this package only reads
// it. Column names therefore follow the collector's tables verbatim
// instead of gorm's defaults.

type snapshotRow struct {
	SnapshotDate      string   `gorm:"column:snapshot_date;primaryKey"`
	TotalValue        float64  `gorm:"column:total_value"`
	Currency          string   `gorm:"column:currency"`
	RetrievedAt       string   `gorm:"column:retrieved_at"`
	Source            string   `gorm:"column:source"`
	TitlesValue       *float64 `gorm:"column:titles_value"`
	CashDisponibleARS *float64 `gorm:"column:cash_disponible_ars"`
	CashDisponibleUSD *float64 `gorm:"column:cash_disponible_usd"`
}

func (snapshotRow) TableName() string { return "portfolio_snapshots" }

type assetRow struct {
	SnapshotDate string   `gorm:"column:snapshot_date;primaryKey"`
	Symbol       string   `gorm:"column:symbol;primaryKey"`
	Description  string   `gorm:"column:description"`
	Market       string   `gorm:"column:market"`
	Type         string   `gorm:"column:type"`
	Currency     string   `gorm:"column:currency"`
	Quantity     float64  `gorm:"column:quantity"`
	LastPrice    float64  `gorm:"column:last_price"`
	TotalValue   float64  `gorm:"column:total_value"`
	DailyVarPct  *float64 `gorm:"column:daily_var_pct"`
}

func (assetRow) TableName() string { return "portfolio_assets" }

type orderRow struct {
	OrderNumber    int64    `gorm:"column:order_number;primaryKey"`
	Status         string   `gorm:"column:status"`
	Symbol         string   `gorm:"column:symbol"`
	Side           string   `gorm:"column:side"`
	SideNorm       *string  `gorm:"column:side_norm"`
	Quantity       *float64 `gorm:"column:quantity"`
	Price          *float64 `gorm:"column:price"`
	OperatedAmount *float64 `gorm:"column:operated_amount"`
	Currency       *string  `gorm:"column:currency"`
	CreatedAt      string   `gorm:"column:created_at"`
	OperatedAt     *string  `gorm:"column:operated_at"`
}

func (orderRow) TableName() string { return "orders" }
