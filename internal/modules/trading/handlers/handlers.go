// Package handlers provides HTTP handlers for trade recording.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/modules/trading"
)

// Handler handles trade HTTP requests
type Handler struct {
	service *trading.Service
	log     zerolog.Logger
}

// NewHandler creates a new trading handler
func NewHandler(service *trading.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "trading").Logger(),
	}
}

// TradeRequest is the body for both the buy and sell endpoints.
type TradeRequest struct {
	StockCode string  `json:"stock_code"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
}

// HandleRecordBuy handles POST /trades
func (h *Handler) HandleRecordBuy(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.RecordBuy(req.StockCode, req.Quantity, req.Price, req.Currency)
	if err != nil {
		h.respondTradeError(w, req, err, "buy")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("%s buy recorded", req.StockCode),
	})
}

// HandleRecordSell handles POST /trades/sell
func (h *Handler) HandleRecordSell(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.RecordSell(req.StockCode, req.Quantity, req.Price, req.Currency)
	if err != nil {
		h.respondTradeError(w, req, err, "sell")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("%s sell recorded", req.StockCode),
	})
}

// HandleHistory handles GET /trades
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	trades, err := h.service.History(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trade history")
		http.Error(w, "failed to load trade history", http.StatusInternalServerError)
		return
	}

	if trades == nil {
		trades = []trading.Trade{}
	}
	h.writeJSON(w, http.StatusOK, trades)
}

// respondTradeError maps validation errors to 400 and store errors to 500.
func (h *Handler) respondTradeError(w http.ResponseWriter, req TradeRequest, err error, side string) {
	switch {
	case errors.Is(err, trading.ErrZeroQuantity),
		errors.Is(err, trading.ErrNonPositiveQuantity),
		errors.Is(err, trading.ErrNegativePrice),
		errors.Is(err, trading.ErrEmptyCode),
		errors.Is(err, trading.ErrEmptyCurrency):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error().Err(err).Str("stock_code", req.StockCode).Str("side", side).Msg("Failed to record trade")
		http.Error(w, "failed to record trade", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
