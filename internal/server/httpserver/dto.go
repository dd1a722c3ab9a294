package httpserver

import (
	"time"

	"github.com/Fury174k/pharmstock/internal/server/models"
)

// JSON shapes of the public API. Field names are part of the wire contract
// consumed by the CLI and the web dashboard.

type userJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}

type productJSON struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductJSON(p *models.Product) productJSON {
	return productJSON{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductListJSON(ps []*models.Product) []productJSON {
	result := make([]productJSON, 0, len(ps))
	for _, p := range ps {
		result = append(result, toProductJSON(p))
	}
	return result
}

type saleItemJSON struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type saleJSON struct {
	ID        string         `json:"id"`
	Items     []saleItemJSON `json:"items"`
	Total     float64        `json:"total"`
	SoldBy    string         `json:"sold_by"`
	CreatedAt time.Time      `json:"created_at"`
}

func toSaleJSON(s *models.Sale) saleJSON {
	items := make([]saleItemJSON, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, saleItemJSON{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   float64(item.Quantity) * item.UnitPrice,
		})
	}
	return saleJSON{ID: s.ID, Items: items, Total: s.Total, SoldBy: s.UserID, CreatedAt: s.CreatedAt}
}

func toSaleListJSON(ss []*models.Sale) []saleJSON {
	result := make([]saleJSON, 0, len(ss))
	for _, s := range ss {
		result = append(result, toSaleJSON(s))
	}
	return result
}

type trendPointJSON struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

// trendPeriodFormat renders the bucket start in the granularity the period
// implies.
func trendPeriodFormat(period string) string {
	if period == "monthly" {
		return "2006-01"
	}
	return "2006-01-02"
}

func toTrendJSON(points []*models.TrendPoint, period string) []trendPointJSON {
	layout := trendPeriodFormat(period)
	result := make([]trendPointJSON, 0, len(points))
	for _, p := range points {
		result = append(result, trendPointJSON{
			Period: p.Period.Format(layout),
			Total:  p.Total,
			Count:  p.Count,
		})
	}
	return result
}

type alertJSON struct {
	ID             string     `json:"id"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	SKU            string     `json:"sku"`
	Stock          int        `json:"stock"`
	ReorderLevel   int        `json:"reorder_level"`
	Acknowledged   bool       `json:"acknowledged"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

func toAlertListJSON(as []*models.Alert) []alertJSON {
	result := make([]alertJSON, 0, len(as))
	for _, a := range as {
		result = append(result, alertJSON{
			ID:             a.ID,
			ProductID:      a.ProductID,
			ProductName:    a.ProductName,
			SKU:            a.SKU,
			Stock:          a.Stock,
			ReorderLevel:   a.ReorderLevel,
			Acknowledged:   a.Acknowledged,
			CreatedAt:      a.CreatedAt,
			AcknowledgedAt: a.AcknowledgedAt,
		})
	}
	return result
}

type movementJSON struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMovementListJSON(ms []*models.StockMovement) []movementJSON {
	result := make([]movementJSON, 0, len(ms))
	for _, m := range ms {
		result = append(result, movementJSON{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Type:        m.Direction,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt,
		})
	}
	return result
}

type importSummaryJSON struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}
