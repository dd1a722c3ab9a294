package httpserver

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleLowStockAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alerts.LowStock(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAlertListJSON(alerts))
}

func (s *Server) handleAlertHistory(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alerts.History(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAlertListJSON(alerts))
}

// acknowledgeRequest accepts alert_ids as either a list or a single scalar,
// since older dashboard builds sent a bare ID.
type acknowledgeRequest struct {
	AlertIDs []string
}

func (req *acknowledgeRequest) UnmarshalJSON(data []byte) error {
	var envelope struct {
		AlertIDs json.RawMessage `json:"alert_ids"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.AlertIDs) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.AlertIDs, &req.AlertIDs); err == nil {
		return nil
	}
	var single string
	if err := json.Unmarshal(envelope.AlertIDs, &single); err != nil {
		return err
	}
	req.AlertIDs = []string{single}
	return nil
}

func (s *Server) handleAcknowledgeAlerts(w http.ResponseWriter, r *http.Request) {
	var req acknowledgeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.AlertIDs) == 0 {
		writeDetail(w, http.StatusBadRequest, "Field \"alert_ids\" is required.")
		return
	}

	count, err := s.alerts.Acknowledge(r.Context(), req.AlertIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"acknowledged": count})
}

func (s *Server) handleAcknowledgeAllAlerts(w http.ResponseWriter, r *http.Request) {
	count, err := s.alerts.AcknowledgeAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"acknowledged": count})
}
