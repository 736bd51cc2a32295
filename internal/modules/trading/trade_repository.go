package trading

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TradeRepository handles trade ledger database operations.
// The only write operation is Append; there is no update or delete.
type TradeRepository struct {
	ledgerDB *sql.DB
	log      zerolog.Logger
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(ledgerDB *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		ledgerDB: ledgerDB,
		log:      log.With().Str("repo", "trade").Logger(),
	}
}

// Append inserts a new trade row. The write is transactional: a failure
// leaves no partial row. trade_date is stamped by the store, never by the
// caller.
func (r *TradeRepository) Append(trade Trade) error {
	if trade.Quantity == 0 {
		return ErrZeroQuantity
	}
	if trade.Price < 0 {
		return ErrNegativePrice
	}

	code := strings.ToUpper(strings.TrimSpace(trade.StockCode))
	if code == "" {
		return ErrEmptyCode
	}
	currency := strings.ToUpper(strings.TrimSpace(trade.Currency))
	if currency == "" {
		return ErrEmptyCurrency
	}

	id := trade.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := r.ledgerDB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO trades (id, stock_code, quantity, price, currency, trade_type, trade_date)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err = tx.Exec(query,
		id,
		code,
		trade.Quantity,
		trade.Price,
		currency,
		string(TypeForQuantity(trade.Quantity)),
	)
	if err != nil {
		return fmt.Errorf("failed to append trade: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade: %w", err)
	}

	r.log.Info().
		Str("stock_code", code).
		Float64("quantity", trade.Quantity).
		Float64("price", trade.Price).
		Str("currency", currency).
		Msg("Trade appended")

	return nil
}

// History retrieves recent trades, newest first.
func (r *TradeRepository) History(limit int) ([]Trade, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, stock_code, quantity, price, currency, trade_type, trade_date
		FROM trades
		ORDER BY trade_date DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.ledgerDB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trade history: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var t Trade
		var tradeType string
		if err := rows.Scan(&t.ID, &t.StockCode, &t.Quantity, &t.Price, &t.Currency, &tradeType, &t.TradeDate); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		t.TradeType = TradeType(tradeType)
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}
