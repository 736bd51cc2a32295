// Package trading implements the append-only trade ledger.
// Every position change is a new row; the ledger is never updated or
// deleted from, so holdings can always be rebuilt from history.
package trading

import "errors"

// TradeType tags a trade for display. It is derived from the sign of the
// quantity, which is the authoritative source of truth.
type TradeType string

const (
	// TradeTypeBuy - positive quantity, acquisition
	TradeTypeBuy TradeType = "BUY"
	// TradeTypeSell - negative quantity, disposal
	TradeTypeSell TradeType = "SELL"
)

// Validation errors surfaced before a trade reaches the store.
var (
	ErrZeroQuantity  = errors.New("trade quantity must not be zero")
	ErrNegativePrice = errors.New("trade price must not be negative")
	ErrEmptyCode     = errors.New("stock code must not be empty")
	ErrEmptyCurrency = errors.New("currency must not be empty")
)

// Trade is one immutable ledger entry.
type Trade struct {
	ID        string    `json:"id"`
	StockCode string    `json:"stock_code"`
	Quantity  float64   `json:"quantity"` // positive = buy, negative = sell, never zero
	Price     float64   `json:"price"`    // per-unit transaction price in Currency
	Currency  string    `json:"currency"`
	TradeType TradeType `json:"trade_type"`
	TradeDate string    `json:"trade_date"` // stamped by the store at insertion time
}

// TypeForQuantity derives the display tag from the quantity sign.
func TypeForQuantity(quantity float64) TradeType {
	if quantity < 0 {
		return TradeTypeSell
	}
	return TradeTypeBuy
}
