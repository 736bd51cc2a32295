// Package handlers provides HTTP handlers for market data endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/modules/market"
	"github.com/haesung5/stock-asset-manager/internal/utils"
)

// Handler handles market data HTTP requests
type Handler struct {
	service *market.Service
	log     zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *market.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// HandleSpot handles GET /market/price/{symbol}
func (h *Handler) HandleSpot(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	quote, err := h.service.Spot(symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Spot quote failed")
		http.Error(w, "failed to fetch quote for "+symbol, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, quote)
}

// batchEntry mirrors the per-symbol shape of the batch endpoint.
type batchEntry struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prev_close"`
}

// HandleBatch handles GET /market/prices?symbols=a,b,c
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	symbols := utils.ParseCSV(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		http.Error(w, "symbols query parameter is required", http.StatusBadRequest)
		return
	}

	quotes := h.service.Batch(symbols)

	result := make(map[string]batchEntry, len(quotes))
	for symbol, quote := range quotes {
		result[symbol] = batchEntry{
			Name:      quote.Name,
			Price:     quote.Price,
			PrevClose: quote.PrevClose,
		}
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleSearch handles GET /market/search?query=...
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	h.writeJSON(w, http.StatusOK, h.service.SearchInstruments(query))
}

// HandleTrending handles GET /market/trending
func (h *Handler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Trending())
}

// HandleMarketList handles GET /market/list
func (h *Handler) HandleMarketList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, market.MarketList)
}

// HandleBrowseCatalog handles GET /market-list
func (h *Handler) HandleBrowseCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, market.BrowseCatalog)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
