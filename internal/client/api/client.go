// Package api is the sole boundary between the application and the pharmacy
// backend. It issues HTTP requests, attaches the bearer credential, and
// normalizes every failure into *Error so no caller ever handles a raw
// transport error or a backend-specific error shape.
package api

import (
	"context"
	"io"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

// TokenSource supplies the current primary credential for the Authorization
// header. The session store implements it; the gateway only ever reads.
type TokenSource interface {
	Token() string
}

// AuthResponse is the backend's reply to login and register. Two schemes are
// supported: a single bearer token ({token}) or an access/refresh pair
// ({access, refresh}). Register additionally embeds the created user.
type AuthResponse struct {
	Token   string              `json:"token"`
	Access  string              `json:"access"`
	Refresh string              `json:"refresh"`
	User    *models.UserProfile `json:"user"`
}

// Primary returns the credential that authorizes subsequent calls:
// "access" when present, else "token". Empty when the response carries
// neither, which callers must treat as a failed authentication.
func (r *AuthResponse) Primary() string {
	if r.Access != "" {
		return r.Access
	}
	return r.Token
}

// Client is the typed surface of the backend REST API. Services depend on
// this interface so tests can substitute a stub transport.
type Client interface {
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*AuthResponse, error)
	GetUser(ctx context.Context) (*models.UserProfile, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ImportProductsCSV(ctx context.Context, filename string, data io.Reader) (*models.ImportSummary, error)

	ListSales(ctx context.Context) ([]models.Sale, error)
	CreateSale(ctx context.Context, items []models.SaleItem) (*models.Sale, error)
	SalesByDate(ctx context.Context, date string) ([]models.Sale, error)
	SalesTrend(ctx context.Context, period string) ([]models.TrendPoint, error)

	LowStockAlerts(ctx context.Context) ([]models.Alert, error)
	AlertHistory(ctx context.Context) ([]models.Alert, error)
	AcknowledgeAlerts(ctx context.Context, alertIDs []string) error
	AcknowledgeAllAlerts(ctx context.Context) error

	ListStockMovements(ctx context.Context) ([]models.StockMovement, error)
}
