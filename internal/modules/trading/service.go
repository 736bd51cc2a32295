package trading

import (
	"errors"
	"math"

	"github.com/rs/zerolog"
)

// ErrNonPositiveQuantity is returned when a buy is submitted with a zero or
// negative quantity. Buys must state how much was acquired.
var ErrNonPositiveQuantity = errors.New("buy quantity must be positive")

// Service records buys and sells against the ledger.
type Service struct {
	repo *TradeRepository
	log  zerolog.Logger
}

// NewService creates a new trading service
func NewService(repo *TradeRepository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "trading").Logger(),
	}
}

// RecordBuy appends an acquisition. The quantity must be positive.
func (s *Service) RecordBuy(stockCode string, quantity, price float64, currency string) error {
	if quantity <= 0 {
		return ErrNonPositiveQuantity
	}

	return s.repo.Append(Trade{
		StockCode: stockCode,
		Quantity:  quantity,
		Price:     price,
		Currency:  currency,
	})
}

// RecordSell appends a disposal. The stored quantity is forced negative
// regardless of the sign the caller submitted.
func (s *Service) RecordSell(stockCode string, quantity, price float64, currency string) error {
	if quantity == 0 {
		return ErrZeroQuantity
	}

	return s.repo.Append(Trade{
		StockCode: stockCode,
		Quantity:  -math.Abs(quantity),
		Price:     price,
		Currency:  currency,
	})
}

// History returns recent ledger entries, newest first.
func (s *Service) History(limit int) ([]Trade, error) {
	return s.repo.History(limit)
}
