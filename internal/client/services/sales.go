package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/models"
)

// Trend periods accepted by the backend.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// SalesService exposes sale recording and reporting to the CLI.
type SalesService struct {
	client api.Client
}

func NewSalesService(client api.Client) *SalesService {
	return &SalesService{client: client}
}

func (s *SalesService) Record(ctx context.Context, items []models.SaleItem) (*models.Sale, error) {
	return s.client.CreateSale(ctx, items)
}

func (s *SalesService) List(ctx context.Context) ([]models.Sale, error) {
	return s.client.ListSales(ctx)
}

// ByDate lists the sales of a single day. The date must be YYYY-MM-DD;
// a malformed date is rejected locally without a round-trip.
func (s *SalesService) ByDate(ctx context.Context, date string) ([]models.Sale, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return s.client.SalesByDate(ctx, date)
}

// Trend returns aggregated sales buckets for one of the known periods.
func (s *SalesService) Trend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return nil, fmt.Errorf("invalid period %q, expected daily, weekly or monthly", period)
	}
	return s.client.SalesTrend(ctx, period)
}
