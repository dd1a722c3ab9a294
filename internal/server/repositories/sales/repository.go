// Package sales declares the repository contract for completed sales.
package sales

import (
	"context"
	"time"

	"github.com/Fury174k/pharmstock/internal/server/models"
)

type Repository interface {
	// Create inserts a sale together with its items and returns the stored
	// record. Expects sale.Items to be non-empty.
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)

	// List returns all sales with items, newest first.
	List(ctx context.Context) ([]*models.Sale, error)

	// ListByDay returns sales whose creation date falls on day, with items.
	ListByDay(ctx context.Context, day time.Time) ([]*models.Sale, error)

	// Trend aggregates sales into buckets. bucket must be one of "day",
	// "week", "month".
	Trend(ctx context.Context, bucket string) ([]*models.TrendPoint, error)
}
