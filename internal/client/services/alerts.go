package services

import (
	"context"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/models"
)

// AlertService exposes the stock-alert operations to the CLI.
type AlertService struct {
	client api.Client
}

func NewAlertService(client api.Client) *AlertService {
	return &AlertService{client: client}
}

// LowStock lists the open (unacknowledged) low-stock alerts.
func (s *AlertService) LowStock(ctx context.Context) ([]models.Alert, error) {
	return s.client.LowStockAlerts(ctx)
}

// History lists all alerts ever raised, acknowledged or not.
func (s *AlertService) History(ctx context.Context) ([]models.Alert, error) {
	return s.client.AlertHistory(ctx)
}

// Acknowledge marks the given alerts as seen.
func (s *AlertService) Acknowledge(ctx context.Context, alertIDs ...string) error {
	return s.client.AcknowledgeAlerts(ctx, alertIDs)
}

// AcknowledgeAll marks every open alert as seen.
func (s *AlertService) AcknowledgeAll(ctx context.Context) error {
	return s.client.AcknowledgeAllAlerts(ctx)
}
