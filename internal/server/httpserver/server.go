// Package httpserver exposes the pharmacy backend over a JSON REST API.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Fury174k/pharmstock/internal/logging"
	"github.com/Fury174k/pharmstock/internal/server/config"
	"github.com/Fury174k/pharmstock/internal/server/services"
)

// Server hosts the REST API and coordinates graceful shutdown.
type Server struct {
	config   *config.Config
	logger   logging.Logger
	users    *services.UserService
	products *services.ProductService
	sales    *services.SaleService
	alerts   *services.AlertService
	imports  *services.ImportService
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	users *services.UserService,
	products *services.ProductService,
	sales *services.SaleService,
	alerts *services.AlertService,
	imports *services.ImportService,
) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		users:    users,
		products: products,
		sales:    sales,
		alerts:   alerts,
		imports:  imports,
	}
}

// Handler builds the route table. Authentication guards everything except
// login, register, and token refresh.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login/", s.handleLogin)
	mux.HandleFunc("POST /register/", s.handleRegister)
	mux.HandleFunc("POST /token/refresh/", s.handleRefreshToken)

	authed := func(h http.HandlerFunc) http.Handler { return s.withAuth(h) }

	mux.Handle("GET /user/", authed(s.handleGetUser))

	mux.Handle("GET /products/", authed(s.handleListProducts))
	mux.Handle("POST /products/", authed(s.handleCreateProduct))
	mux.Handle("PATCH /products/{id}/", authed(s.handleUpdateProduct))
	mux.Handle("DELETE /products/{id}/", authed(s.handleDeleteProduct))
	mux.Handle("POST /products/import_csv/", authed(s.handleImportCSV))
	mux.Handle("GET /stock-movements/", authed(s.handleListMovements))

	mux.Handle("GET /sales/", authed(s.handleListSales))
	mux.Handle("POST /sales/", authed(s.handleCreateSale))
	mux.Handle("GET /sales/by_date/", authed(s.handleSalesByDate))
	mux.Handle("GET /sales/trend/", authed(s.handleSalesTrend))

	mux.Handle("GET /alerts/low-stock/", authed(s.handleLowStockAlerts))
	mux.Handle("GET /alerts/history/", authed(s.handleAlertHistory))
	mux.Handle("POST /alerts/acknowledge/", authed(s.handleAcknowledgeAlerts))
	mux.Handle("POST /alerts/acknowledge-all/", authed(s.handleAcknowledgeAllAlerts))

	return s.withLogging(mux)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
