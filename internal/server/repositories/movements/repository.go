// Package movements declares the repository contract for the stock movement
// audit log.
package movements

import (
	"context"

	"github.com/Fury174k/pharmstock/internal/server/models"
)

type Repository interface {
	// Create records one stock level change.
	Create(ctx context.Context, movement *models.StockMovement) (*models.StockMovement, error)

	// List returns all movements, newest first.
	List(ctx context.Context) ([]*models.StockMovement, error)
}
