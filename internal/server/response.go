package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/cart"
	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/session"
	"github.com/brndagencynl/HETT-sub001/internal/storage"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// handleError maps the error taxonomy onto HTTP statuses: unknown ids are
// 404s, an incomplete configuration at cart build is a 409 conflict, and
// anything else is an upstream or internal failure.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, storage.ErrOfferNotFound),
		errors.Is(err, session.ErrNotFound):
		s.logger.Warn("Resource not found", zap.Error(err))
		s.writeError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, cart.ErrIncompleteConfiguration):
		s.logger.Warn("Incomplete configuration rejected", zap.Error(err))
		s.writeError(w, http.StatusConflict, "incomplete_configuration", err.Error())

	default:
		s.logger.Error("Request failed", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "upstream_error", "request could not be completed")
	}
}
