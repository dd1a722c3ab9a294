package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/models"
)

type reportClient struct {
	api.Client

	byDateArg string
	trendArg  string
}

func (c *reportClient) SalesByDate(_ context.Context, date string) ([]models.Sale, error) {
	c.byDateArg = date
	return []models.Sale{{ID: "s1"}}, nil
}

func (c *reportClient) SalesTrend(_ context.Context, period string) ([]models.TrendPoint, error) {
	c.trendArg = period
	return []models.TrendPoint{{Period: "2026-08", Total: 12.5, Count: 3}}, nil
}

func TestSalesByDate_ValidatesFormat(t *testing.T) {
	client := &reportClient{}
	s := NewSalesService(client)
	ctx := context.Background()

	_, err := s.ByDate(ctx, "30-08-2026")
	require.Error(t, err)
	assert.Empty(t, client.byDateArg, "bad dates must not reach the backend")

	sales, err := s.ByDate(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", client.byDateArg)
	assert.Len(t, sales, 1)
}

func TestSalesTrend_ValidatesPeriod(t *testing.T) {
	client := &reportClient{}
	s := NewSalesService(client)
	ctx := context.Background()

	_, err := s.Trend(ctx, "hourly")
	require.Error(t, err)
	assert.Empty(t, client.trendArg)

	for _, period := range []string{PeriodDaily, PeriodWeekly, PeriodMonthly} {
		points, err := s.Trend(ctx, period)
		require.NoError(t, err)
		assert.Equal(t, period, client.trendArg)
		assert.NotEmpty(t, points)
	}
}
