package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/dbx"
	"github.com/Fury174k/pharmstock/internal/server/models"
	"github.com/Fury174k/pharmstock/internal/server/repositories/repomanager"
)

// ProductService manages the product catalog. Every stock level change is
// recorded as a stock movement, and a drop to or below the reorder level
// opens a low-stock alert unless one is already open for the product.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// ProductInput carries the mutable fields of a product. Nil pointers in
// Update mean "leave unchanged".
type ProductInput struct {
	SKU          *string
	Name         *string
	Category     *string
	Price        *float64
	Stock        *int
	ReorderLevel *int
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

func (s *ProductService) Movements(ctx context.Context) ([]*models.StockMovement, error) {
	return s.repomanager.Movements(s.db).List(ctx)
}

// Create validates the input and inserts the product. Initial stock is
// recorded as an inbound movement, and an alert opens right away if the
// product starts at or below its reorder level.
func (s *ProductService) Create(ctx context.Context, in *ProductInput) (*models.Product, error) {
	p := &models.Product{}
	applyInput(p, in)

	if fields := validateProduct(p); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var created *models.Product
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Products(tx).Create(ctx, p)
		if err != nil {
			return err
		}
		if created.Stock > 0 {
			if err := s.recordMovement(ctx, tx, created.ID, models.MovementIn, created.Stock, "initial stock"); err != nil {
				return err
			}
		}
		return s.maybeOpenAlert(ctx, tx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. A stock change produces a movement for
// the delta and may open a low-stock alert.
func (s *ProductService) Update(ctx context.Context, id string, in *ProductInput) (*models.Product, error) {
	var updated *models.Product
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Products(tx)
		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldStock := p.Stock
		applyInput(p, in)

		if fields := validateProduct(p); len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}

		updated, err = repo.Update(ctx, p)
		if err != nil {
			return err
		}

		if delta := updated.Stock - oldStock; delta != 0 {
			direction := models.MovementIn
			if delta < 0 {
				direction = models.MovementOut
				delta = -delta
			}
			if err := s.recordMovement(ctx, tx, updated.ID, direction, delta, "manual adjustment"); err != nil {
				return err
			}
		}
		return s.maybeOpenAlert(ctx, tx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}

func (s *ProductService) recordMovement(ctx context.Context, tx dbx.DBTX, productID, direction string, quantity int, reason string) error {
	_, err := s.repomanager.Movements(tx).Create(ctx, &models.StockMovement{
		ProductID: productID,
		Direction: direction,
		Quantity:  quantity,
		Reason:    reason,
	})
	return err
}

// maybeOpenAlert opens a low-stock alert for p unless one is already open.
func (s *ProductService) maybeOpenAlert(ctx context.Context, tx dbx.DBTX, p *models.Product) error {
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

func applyInput(p *models.Product, in *ProductInput) {
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.ReorderLevel != nil {
		p.ReorderLevel = *in.ReorderLevel
	}
}

func validateProduct(p *models.Product) map[string][]string {
	fields := map[string][]string{}
	if p.SKU == "" {
		fields["sku"] = append(fields["sku"], "This field may not be blank.")
	}
	if p.Name == "" {
		fields["name"] = append(fields["name"], "This field may not be blank.")
	}
	if p.Price < 0 {
		fields["price"] = append(fields["price"], "Ensure this value is greater than or equal to 0.")
	}
	if p.Stock < 0 {
		fields["stock"] = append(fields["stock"], "Ensure this value is greater than or equal to 0.")
	}
	if p.ReorderLevel < 0 {
		fields["reorder_level"] = append(fields["reorder_level"], "Ensure this value is greater than or equal to 0.")
	}
	return fields
}

// ValidationError carries per-field messages for a rejected write.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }
