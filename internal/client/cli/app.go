// Package cli implements the interactive terminal dashboard: a REPL over
// the session store and the catalog, sales and alert services.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/config"
	"github.com/Fury174k/pharmstock/internal/client/models"
	"github.com/Fury174k/pharmstock/internal/client/repositories"
	"github.com/Fury174k/pharmstock/internal/client/services"
)

// Narrow service surfaces the commands depend on; the real services satisfy
// them, tests provide lightweight stubs.
type sessionService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context)
	CurrentUser() *models.UserProfile
	IsAuthenticated() bool
}

type catalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, patch map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, path string) (*models.ImportSummary, error)
	StockMovements(ctx context.Context) ([]models.StockMovement, error)
}

type salesService interface {
	Record(ctx context.Context, items []models.SaleItem) (*models.Sale, error)
	List(ctx context.Context) ([]models.Sale, error)
	ByDate(ctx context.Context, date string) ([]models.Sale, error)
	Trend(ctx context.Context, period string) ([]models.TrendPoint, error)
}

type alertService interface {
	LowStock(ctx context.Context) ([]models.Alert, error)
	History(ctx context.Context) ([]models.Alert, error)
	Acknowledge(ctx context.Context, alertIDs ...string) error
	AcknowledgeAll(ctx context.Context) error
}

type App struct {
	config  *config.Config
	session sessionService
	catalog catalogService
	sales   salesService
	alerts  alertService
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	repos, err := repositories.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing local database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewRESTClient(c.ServerBaseURL, c.RequestTimeout)
	session := services.NewSessionStore(apiClient, repos.Credentials)
	apiClient.SetTokenSource(session)

	return &App{
		config:  c,
		session: session,
		catalog: services.NewCatalogService(apiClient),
		sales:   services.NewSalesService(apiClient),
		alerts:  services.NewAlertService(apiClient),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		log.Printf("session restore failed: %s", err.Error())
	}
	if user := a.session.CurrentUser(); user != nil {
		log.Printf("Welcome back, %s", user.Username)
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
