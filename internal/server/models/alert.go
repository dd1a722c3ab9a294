package models

import "time"

// Alert is a low-stock notification for a product. An alert stays open
// until acknowledged; at most one open alert exists per product.
type Alert struct {
	ID             string
	ProductID      string
	SKU            string
	ProductName    string
	Stock          int
	ReorderLevel   int
	Acknowledged   bool
	CreatedAt      time.Time
	AcknowledgedAt *time.Time
}
