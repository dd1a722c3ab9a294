// Package models defines server-side data models persisted in the database.
package models

import "time"

// Product is a catalog item tracked by the inventory.
type Product struct {
	ID           string
	SKU          string
	Name         string
	Category     string
	Price        float64
	Stock        int
	ReorderLevel int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowOnStock reports whether the product has fallen to or below its
// reorder level.
func (p *Product) LowOnStock() bool {
	return p.Stock <= p.ReorderLevel
}
