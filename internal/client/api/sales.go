package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

func (c *RESTClient) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := c.do(ctx, http.MethodGet, "/sales/", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *RESTClient) CreateSale(ctx context.Context, items []models.SaleItem) (*models.Sale, error) {
	body := map[string]any{"items": items}
	var sale models.Sale
	if err := c.do(ctx, http.MethodPost, "/sales/", body, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// SalesByDate lists the sales of a single day. date is formatted YYYY-MM-DD.
func (c *RESTClient) SalesByDate(ctx context.Context, date string) ([]models.Sale, error) {
	var sales []models.Sale
	path := "/sales/by_date/?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// SalesTrend returns aggregated sales buckets; period is one of
// "daily", "weekly", "monthly".
func (c *RESTClient) SalesTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	var points []models.TrendPoint
	path := "/sales/trend/?period=" + url.QueryEscape(period)
	if err := c.do(ctx, http.MethodGet, path, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}
