package api

import (
	"context"
	"io"
	"net/http"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

func (c *RESTClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *RESTClient) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products/", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct sends a partial update; patch holds only the fields to change.
func (c *RESTClient) UpdateProduct(ctx context.Context, id string, patch map[string]any) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPatch, "/products/"+id+"/", patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *RESTClient) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id+"/", nil, nil)
}

// ImportProductsCSV uploads a CSV file for bulk catalog import.
func (c *RESTClient) ImportProductsCSV(ctx context.Context, filename string, data io.Reader) (*models.ImportSummary, error) {
	var summary models.ImportSummary
	if err := c.upload(ctx, "/products/import_csv/", "file", filename, data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
