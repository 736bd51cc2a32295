// Package handlers provides HTTP handlers for exchange-rate lookups.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/modules/currency"
)

// Handler handles exchange-rate HTTP requests
type Handler struct {
	resolver *currency.Resolver
	rateRepo *currency.RateRepository
	log      zerolog.Logger
}

// NewHandler creates a new currency handler
func NewHandler(resolver *currency.Resolver, rateRepo *currency.RateRepository, log zerolog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		rateRepo: rateRepo,
		log:      log.With().Str("handler", "currency").Logger(),
	}
}

// HandleExchangeRate handles GET /market/exchange-rate.
// The resolver never fails, so this endpoint always answers 200.
func (h *Handler) HandleExchangeRate(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.resolver.Resolve())
}

// HandleRateHistory handles GET /market/exchange-rate/history.
// Serves the reference table written by the snapshot job, latest per currency.
func (h *Handler) HandleRateHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.rateRepo.LatestRates()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load rate history")
		http.Error(w, "failed to load rate history", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []currency.RateRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
