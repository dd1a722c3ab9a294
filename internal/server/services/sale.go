package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/dbx"
	"github.com/Fury174k/pharmstock/internal/server/models"
	"github.com/Fury174k/pharmstock/internal/server/repositories/repomanager"
)

// SaleService records point-of-sale transactions. A sale is atomic: either
// every line has sufficient stock and all decrements, movements, and the sale
// itself commit, or nothing does.
type SaleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSaleService(db *sql.DB, m repomanager.RepositoryManager) *SaleService {
	return &SaleService{db: db, repomanager: m}
}

// SaleLine is one requested product line of a sale.
type SaleLine struct {
	ProductID string
	Quantity  int
}

// Create records a sale for userID. Each line decrements the product's
// stock, writes an outbound movement, and may open a low-stock alert. The
// total is computed from current catalog prices.
func (s *SaleService) Create(ctx context.Context, userID string, lines []SaleLine) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, common.ErrorEmptySale
	}
	for _, line := range lines {
		if line.Quantity <= 0 || line.ProductID == "" {
			return nil, common.ErrorValidation
		}
	}

	sale := &models.Sale{UserID: userID}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		productRepo := s.repomanager.Products(tx)
		for _, line := range lines {
			p, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p.Stock < line.Quantity {
				return common.ErrorInsufficientStock
			}

			p.Stock -= line.Quantity
			if _, err := productRepo.Update(ctx, p); err != nil {
				return err
			}
			if _, err := s.repomanager.Movements(tx).Create(ctx, &models.StockMovement{
				ProductID: p.ID,
				Direction: models.MovementOut,
				Quantity:  line.Quantity,
				Reason:    "sale",
			}); err != nil {
				return err
			}
			if err := s.maybeOpenAlert(ctx, tx, p); err != nil {
				return err
			}

			sale.Items = append(sale.Items, models.SaleItem{
				ProductID: p.ID,
				SKU:       p.SKU,
				Name:      p.Name,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			})
			sale.Total += float64(line.Quantity) * p.Price
		}

		_, err := s.repomanager.Sales(tx).Create(ctx, sale)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// maybeOpenAlert mirrors ProductService's alert dedup for in-transaction use.
func (s *SaleService) maybeOpenAlert(ctx context.Context, tx dbx.DBTX, p *models.Product) error {
	if !p.LowOnStock() {
		return nil
	}
	repo := s.repomanager.Alerts(tx)
	open, err := repo.HasOpenForProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if open {
		return nil
	}
	_, err = repo.Create(ctx, &models.Alert{
		ProductID:    p.ID,
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
	})
	return err
}

func (s *SaleService) List(ctx context.Context) ([]*models.Sale, error) {
	return s.repomanager.Sales(s.db).List(ctx)
}

// ByDate lists the sales of one calendar day.
func (s *SaleService) ByDate(ctx context.Context, date string) ([]*models.Sale, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Sales(s.db).ListByDay(ctx, day)
}

// trendBuckets maps API period names to SQL date_trunc buckets.
var trendBuckets = map[string]string{
	"daily":   "day",
	"weekly":  "week",
	"monthly": "month",
}

// Trend aggregates sales by the named period (daily, weekly, monthly).
func (s *SaleService) Trend(ctx context.Context, period string) ([]*models.TrendPoint, error) {
	bucket, ok := trendBuckets[period]
	if !ok {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Sales(s.db).Trend(ctx, bucket)
}
