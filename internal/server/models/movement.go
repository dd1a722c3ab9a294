package models

import "time"

// Movement directions.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StockMovement is an audit record of a stock level change.
type StockMovement struct {
	ID          string
	ProductID   string
	SKU         string
	ProductName string
	Direction   string
	Quantity    int
	Reason      string
	CreatedAt   time.Time
}
