// Package products declares the repository contract for the product catalog.
package products

import (
	"context"

	"github.com/Fury174k/pharmstock/internal/server/models"
)

type Repository interface {
	// Create inserts a new product. A duplicate SKU yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, product *models.Product) (*models.Product, error)

	// List returns all products ordered by name.
	List(ctx context.Context) ([]*models.Product, error)

	// GetByID returns the product with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// GetBySKU returns the product with the given SKU, or common.ErrorNotFound.
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)

	// Update persists the mutable fields of product and refreshes its
	// UpdatedAt. A SKU collision yields common.ErrorAlreadyExists.
	Update(ctx context.Context, product *models.Product) (*models.Product, error)

	// Delete removes a product by ID, or returns common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
