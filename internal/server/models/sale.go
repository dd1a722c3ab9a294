package models

import "time"

// SaleItem is a single product line within a sale.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	SKU       string
	Name      string
	Quantity  int
	UnitPrice float64
}

// Sale is a completed point-of-sale transaction.
type Sale struct {
	ID        string
	UserID    string
	Total     float64
	CreatedAt time.Time
	Items     []SaleItem
}

// TrendPoint is a single aggregated bucket of sales over a period.
type TrendPoint struct {
	Period time.Time
	Total  float64
	Count  int
}
