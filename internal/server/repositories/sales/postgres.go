package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/Fury174k/pharmstock/internal/dbx"
	"github.com/Fury174k/pharmstock/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	query := `
		INSERT INTO sales (user_id, total)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, sale.UserID, sale.Total).
		Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		if err := r.db.QueryRowContext(ctx, itemQuery,
			sale.ID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return sale, nil
}

const selectSales = `
	SELECT s.id, s.user_id, s.total, s.created_at,
	       i.id, i.product_id, p.sku, p.name, i.quantity, i.unit_price
	FROM sales s
	JOIN sale_items i ON i.sale_id = s.id
	JOIN products p ON p.id = i.product_id
`

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Sale, error) {
	query := selectSales + ` ORDER BY s.created_at DESC, i.id`
	return r.querySales(ctx, query)
}

func (r *PostgresRepository) ListByDay(ctx context.Context, day time.Time) ([]*models.Sale, error) {
	query := selectSales + ` WHERE s.created_at::date = $1::date ORDER BY s.created_at DESC, i.id`
	return r.querySales(ctx, query, day)
}

// querySales runs a selectSales-shaped query and folds the joined rows back
// into sales with nested items. Rows for one sale are expected to be adjacent.
func (r *PostgresRepository) querySales(ctx context.Context, query string, args ...any) ([]*models.Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Sale
	var current *models.Sale
	for rows.Next() {
		var (
			sale models.Sale
			item models.SaleItem
		)
		if err := rows.Scan(&sale.ID, &sale.UserID, &sale.Total, &sale.CreatedAt,
			&item.ID, &item.ProductID, &item.SKU, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.SaleID = sale.ID

		if current == nil || current.ID != sale.ID {
			s := sale
			current = &s
			result = append(result, current)
		}
		current.Items = append(current.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Trend(ctx context.Context, bucket string) ([]*models.TrendPoint, error) {
	switch bucket {
	case "day", "week", "month":
	default:
		return nil, fmt.Errorf("unsupported trend bucket: %q", bucket)
	}

	// bucket is validated above, so interpolating it into date_trunc is safe.
	query := fmt.Sprintf(`
		SELECT date_trunc('%s', created_at) AS period, SUM(total), COUNT(*)
		FROM sales
		GROUP BY period
		ORDER BY period
	`, bucket)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.TrendPoint
	for rows.Next() {
		p := &models.TrendPoint{}
		if err := rows.Scan(&p.Period, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
