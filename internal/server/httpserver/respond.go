package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/server/services"
)

// writeJSON serializes v with the given status. Encoding errors are ignored:
// the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeDetail writes a single-message error body: {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps a service error onto an HTTP status and error body.
// Validation errors with field details become a per-field message map, the
// shape clients render next to form inputs.
func writeError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		writeDetail(w, http.StatusBadRequest, "Invalid request.")
	case errors.Is(err, common.ErrorEmptySale):
		writeDetail(w, http.StatusBadRequest, "A sale requires at least one item.")
	case errors.Is(err, common.ErrorInsufficientStock):
		writeDetail(w, http.StatusBadRequest, "Insufficient stock.")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusConflict, "Already exists.")
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials.")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// decodeBody parses a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrorValidation
	}
	return nil
}
