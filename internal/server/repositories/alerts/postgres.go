package alerts

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

func (r *PostgresRepository) Create(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	query := `
		INSERT INTO alerts (product_id, stock, reorder_level)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		alert.ProductID, alert.Stock, alert.ReorderLevel).
		Scan(&alert.ID, &alert.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return alert, nil
}

const selectAlerts = `
	SELECT a.id, a.product_id, p.sku, p.name, a.stock, a.reorder_level,
	       a.acknowledged, a.created_at, a.acknowledged_at
	FROM alerts a
	JOIN products p ON p.id = a.product_id
`

func (r *PostgresRepository) ListOpen(ctx context.Context) ([]*models.Alert, error) {
	query := selectAlerts + ` WHERE NOT a.acknowledged ORDER BY a.created_at DESC`
	return r.queryAlerts(ctx, query)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Alert, error) {
	query := selectAlerts + ` ORDER BY a.created_at DESC`
	return r.queryAlerts(ctx, query)
}

func (r *PostgresRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]*models.Alert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Alert
	for rows.Next() {
		a := &models.Alert{}
		if err := rows.Scan(&a.ID, &a.ProductID, &a.SKU, &a.ProductName,
			&a.Stock, &a.ReorderLevel, &a.Acknowledged, &a.CreatedAt, &a.AcknowledgedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) HasOpenForProduct(ctx context.Context, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE product_id = $1 AND NOT acknowledged
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Acknowledge(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE alerts
		SET acknowledged = true, acknowledged_at = now()
		WHERE id = ANY($1) AND NOT acknowledged
	`
	res, err := r.db.ExecContext(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(affected), nil
}

func (r *PostgresRepository) AcknowledgeAll(ctx context.Context) (int, error) {
	query := `
		UPDATE alerts
		SET acknowledged = true, acknowledged_at = now()
		WHERE NOT acknowledged
	`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(affected), nil
}
