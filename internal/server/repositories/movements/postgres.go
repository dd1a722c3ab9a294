package movements

import (
	"context"
	"fmt"

	"github.com/Fury174k/pharmstock/internal/dbx"
	"github.com/Fury174k/pharmstock/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, movement *models.StockMovement) (*models.StockMovement, error) {
	query := `
		INSERT INTO stock_movements (product_id, direction, quantity, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		movement.ProductID, movement.Direction, movement.Quantity, movement.Reason).
		Scan(&movement.ID, &movement.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return movement, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.StockMovement, error) {
	query := `
		SELECT m.id, m.product_id, p.sku, p.name, m.direction, m.quantity, m.reason, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.StockMovement
	for rows.Next() {
		m := &models.StockMovement{}
		if err := rows.Scan(&m.ID, &m.ProductID, &m.SKU, &m.ProductName,
			&m.Direction, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
