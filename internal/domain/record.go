package domain

import "time"

// RecordKind distinguishes the two financial activity tables.
type RecordKind string

const (
	KindRevenue RecordKind = "revenue"
	KindExpense RecordKind = "expense"
)

// FinancialRecord is one revenue or expense row. Revenue and expense share a
// shape and differ only by kind and source catalog.
type FinancialRecord struct {
	ID          int64
	FiscalMonth int
	FiscalYear  int
	SourceID    int
	SourceName  string
	Kind        RecordKind
	Amount      float64
	Description string
	Note        string
	EnteredAt   time.Time
	OwnerID     int64
	EnteredBy   string
}

// FinancialSource maps a catalog source name to its id, per kind.
type FinancialSource struct {
	ID   int
	Name string
	Kind RecordKind
}

// SpeedTest is one network speed-test measurement.
type SpeedTest struct {
	ID           int64
	MeasuredAt   time.Time
	Location     string
	DownloadMbps float64
	UploadMbps   float64
	PingMs       float64
	OwnerID      int64
	EnteredBy    string
}
