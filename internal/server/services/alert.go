package services

import (
	"context"
	"database/sql"

	"github.com/Fury174k/pharmstock/internal/server/models"
	"github.com/Fury174k/pharmstock/internal/server/repositories/repomanager"
)

// AlertService exposes the low-stock alert workflow.
type AlertService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAlertService(db *sql.DB, m repomanager.RepositoryManager) *AlertService {
	return &AlertService{db: db, repomanager: m}
}

// LowStock returns the currently open alerts.
func (s *AlertService) LowStock(ctx context.Context) ([]*models.Alert, error) {
	return s.repomanager.Alerts(s.db).ListOpen(ctx)
}

// History returns every alert, acknowledged or not.
func (s *AlertService) History(ctx context.Context) ([]*models.Alert, error) {
	return s.repomanager.Alerts(s.db).ListAll(ctx)
}

// Acknowledge closes the given alerts and returns how many actually changed
// state. Unknown or already-closed IDs are ignored.
func (s *AlertService) Acknowledge(ctx context.Context, ids []string) (int, error) {
	return s.repomanager.Alerts(s.db).Acknowledge(ctx, ids)
}

// AcknowledgeAll closes every open alert.
func (s *AlertService) AcknowledgeAll(ctx context.Context) (int, error) {
	return s.repomanager.Alerts(s.db).AcknowledgeAll(ctx)
}
