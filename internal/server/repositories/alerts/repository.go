// Package alerts declares the repository contract for low-stock alerts.
package alerts

import (
	"context"

	"github.com/Fury174k/pharmstock/internal/server/models"
)

type Repository interface {
	// Create opens a new alert for a product.
	Create(ctx context.Context, alert *models.Alert) (*models.Alert, error)

	// ListOpen returns unacknowledged alerts, newest first.
	ListOpen(ctx context.Context) ([]*models.Alert, error)

	// ListAll returns every alert regardless of state, newest first.
	ListAll(ctx context.Context) ([]*models.Alert, error)

	// HasOpenForProduct reports whether the product already has an
	// unacknowledged alert.
	HasOpenForProduct(ctx context.Context, productID string) (bool, error)

	// Acknowledge marks the given alerts acknowledged and returns how many
	// rows changed. Already-acknowledged or unknown IDs are skipped.
	Acknowledge(ctx context.Context, ids []string) (int, error)

	// AcknowledgeAll marks every open alert acknowledged and returns how
	// many rows changed.
	AcknowledgeAll(ctx context.Context) (int, error)
}
