package portfolio

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// HoldingsRepository folds the trade ledger into current positions.
type HoldingsRepository struct {
	ledgerDB *sql.DB
	log      zerolog.Logger
}

// NewHoldingsRepository creates a new holdings repository
func NewHoldingsRepository(ledgerDB *sql.DB, log zerolog.Logger) *HoldingsRepository {
	return &HoldingsRepository{
		ledgerDB: ledgerDB,
		log:      log.With().Str("repo", "holdings").Logger(),
	}
}

// ComputeHoldings recomputes the full position set from the complete ledger
// history. Pairs that net to zero or negative are excluded.
//
// AVG(price) is deliberately a simple mean across trades, not weighted by
// quantity.
func (r *HoldingsRepository) ComputeHoldings() ([]Holding, error) {
	query := `
		SELECT stock_code, SUM(quantity) AS total_quantity, AVG(price) AS avg_buy_price, currency
		FROM trades
		GROUP BY stock_code, currency
		HAVING SUM(quantity) > 0
	`

	rows, err := r.ledgerDB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute holdings: %w", err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.StockCode, &h.TotalQuantity, &h.AvgBuyPrice, &h.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}
