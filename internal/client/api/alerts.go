package api

import (
	"context"
	"net/http"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

func (c *RESTClient) LowStockAlerts(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.do(ctx, http.MethodGet, "/alerts/low-stock/", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *RESTClient) AlertHistory(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.do(ctx, http.MethodGet, "/alerts/history/", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// AcknowledgeAlerts marks the given alerts as seen. The backend field is
// plural (alert_ids) and takes a list even for a single alert.
func (c *RESTClient) AcknowledgeAlerts(ctx context.Context, alertIDs []string) error {
	body := map[string]any{"alert_ids": alertIDs}
	return c.do(ctx, http.MethodPost, "/alerts/acknowledge/", body, nil)
}

func (c *RESTClient) AcknowledgeAllAlerts(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/alerts/acknowledge-all/", nil, nil)
}

func (c *RESTClient) ListStockMovements(ctx context.Context) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	if err := c.do(ctx, http.MethodGet, "/stock-movements/", nil, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}
