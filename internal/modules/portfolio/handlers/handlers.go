// Package handlers provides HTTP handlers for holdings and valuation.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleHoldings handles GET /holdings
func (h *Handler) HandleHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.service.Holdings()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute holdings")
		http.Error(w, "failed to compute holdings", http.StatusInternalServerError)
		return
	}

	if holdings == nil {
		holdings = []portfolio.Holding{}
	}
	h.writeJSON(w, http.StatusOK, holdings)
}

// HandleValuation handles GET /portfolio/valuation
func (h *Handler) HandleValuation(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.service.Valuation()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute valuation")
		http.Error(w, "failed to compute valuation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, valuation)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
