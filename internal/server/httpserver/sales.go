package httpserver

import (
	"net/http"

	"github.com/Fury174k/pharmstock/internal/server/services"
)

type saleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type saleRequest struct {
	Items []saleItemRequest `json:"items"`
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	lines := make([]services.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.SaleLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	sale, err := s.sales.Create(r.Context(), userID(r), lines)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleJSON(sale))
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.sales.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleListJSON(sales))
}

func (s *Server) handleSalesByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeDetail(w, http.StatusBadRequest, "Query parameter \"date\" is required (YYYY-MM-DD).")
		return
	}

	sales, err := s.sales.ByDate(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleListJSON(sales))
}

func (s *Server) handleSalesTrend(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "daily"
	}

	points, err := s.sales.Trend(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrendJSON(points, period))
}
