// Package models defines the data shapes exchanged with the pharmacy
// backend. Fields mirror the REST API's JSON contract.
package models

import "time"

// UserProfile is the authenticated user's profile as returned by GET /user/.
// It is held in memory only and never persisted.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Product is a catalog item.
type Product struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	LineTotal   float64 `json:"line_total,omitempty"`
}

// Sale is a recorded point-of-sale transaction.
type Sale struct {
	ID        string     `json:"id"`
	Items     []SaleItem `json:"items"`
	Total     float64    `json:"total"`
	SoldBy    string     `json:"sold_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TrendPoint is one bucket of the sales trend report.
type TrendPoint struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

// Alert is a low-stock notification for a product.
type Alert struct {
	ID             string     `json:"id"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	SKU            string     `json:"sku"`
	Stock          int        `json:"stock"`
	ReorderLevel   int        `json:"reorder_level"`
	Acknowledged   bool       `json:"acknowledged"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

// StockMovement is one entry of the stock movement log.
type StockMovement struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"` // "in" or "out"
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImportSummary reports the outcome of a bulk CSV import.
type ImportSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}
