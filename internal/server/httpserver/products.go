package httpserver

import (
	"errors"
	"net/http"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/server/services"
)

// productRequest mirrors ProductInput: absent JSON fields stay nil and are
// left untouched on partial updates.
type productRequest struct {
	SKU          *string  `json:"sku"`
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price"`
	Stock        *int     `json:"stock"`
	ReorderLevel *int     `json:"reorder_level"`
}

func (req *productRequest) toInput() *services.ProductInput {
	return &services.ProductInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
	}
}

// writeProductError renders a duplicate SKU as a field error so the client
// can show it next to the SKU input; everything else takes the common path.
func writeProductError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrorAlreadyExists) {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"sku": {"Product with this SKU already exists."},
		})
		return
	}
	writeError(w, err)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductListJSON(products))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := s.products.Create(r.Context(), req.toInput())
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductJSON(created))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.products.Update(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(updated))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// maxImportSize caps CSV uploads at 8 MiB.
const maxImportSize = 8 << 20

// handleImportCSV accepts a multipart upload (field "file") and bulk-upserts
// products by SKU.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeDetail(w, http.StatusBadRequest, "Expected a multipart upload with a \"file\" field.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Expected a multipart upload with a \"file\" field.")
		return
	}
	defer file.Close()

	summary, err := s.imports.ImportCSV(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, importSummaryJSON{
		Created: summary.Created,
		Updated: summary.Updated,
		Errors:  summary.Errors,
	})
}

func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := s.products.Movements(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovementListJSON(movements))
}
