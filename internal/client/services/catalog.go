package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/models"
)

// CatalogService exposes product catalog operations to the CLI. All backend
// failures pass through untouched as *api.Error.
type CatalogService struct {
	client api.Client
}

func NewCatalogService(client api.Client) *CatalogService {
	return &CatalogService{client: client}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.client.ListProducts(ctx)
}

func (s *CatalogService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	return s.client.CreateProduct(ctx, p)
}

func (s *CatalogService) Update(ctx context.Context, id string, patch map[string]any) (*models.Product, error) {
	return s.client.UpdateProduct(ctx, id, patch)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteProduct(ctx, id)
}

// ImportCSV uploads a local CSV file for bulk import.
func (s *CatalogService) ImportCSV(ctx context.Context, path string) (*models.ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	return s.client.ImportProductsCSV(ctx, filepath.Base(path), f)
}

// StockMovements returns the stock movement log.
func (s *CatalogService) StockMovements(ctx context.Context) ([]models.StockMovement, error) {
	return s.client.ListStockMovements(ctx)
}
