package trading

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLedgerDB creates an in-memory database with the trades table
func setupLedgerDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE trades (
			id TEXT PRIMARY KEY,
			stock_code TEXT NOT NULL,
			quantity REAL NOT NULL CHECK (quantity != 0),
			price REAL NOT NULL CHECK (price >= 0),
			currency TEXT NOT NULL,
			trade_type TEXT NOT NULL,
			trade_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	require.NoError(t, err, "Failed to create trades table")

	return db
}

func TestAppend_Validation(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := NewTradeRepository(setupLedgerDB(t), log)

	testCases := []struct {
		name    string
		trade   Trade
		wantErr error
	}{
		{
			name:  "valid buy",
			trade: Trade{StockCode: "AAPL", Quantity: 10, Price: 100, Currency: "USD"},
		},
		{
			name:  "valid sell",
			trade: Trade{StockCode: "AAPL", Quantity: -5, Price: 120, Currency: "USD"},
		},
		{
			name:    "zero quantity rejected",
			trade:   Trade{StockCode: "AAPL", Quantity: 0, Price: 100, Currency: "USD"},
			wantErr: ErrZeroQuantity,
		},
		{
			name:    "negative price rejected",
			trade:   Trade{StockCode: "AAPL", Quantity: 10, Price: -1, Currency: "USD"},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "empty stock code rejected",
			trade:   Trade{StockCode: "  ", Quantity: 10, Price: 100, Currency: "USD"},
			wantErr: ErrEmptyCode,
		},
		{
			name:    "empty currency rejected",
			trade:   Trade{StockCode: "AAPL", Quantity: 10, Price: 100, Currency: ""},
			wantErr: ErrEmptyCurrency,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Append(tc.trade)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppend_StampsTypeAndDate(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	db := setupLedgerDB(t)
	repo := NewTradeRepository(db, log)

	require.NoError(t, repo.Append(Trade{StockCode: "aapl", Quantity: 10, Price: 100, Currency: "usd"}))
	require.NoError(t, repo.Append(Trade{StockCode: "AAPL", Quantity: -4, Price: 150, Currency: "USD"}))

	rows, err := db.Query("SELECT id, stock_code, quantity, trade_type, currency, trade_date FROM trades ORDER BY rowid")
	require.NoError(t, err)
	defer rows.Close()

	var got []Trade
	for rows.Next() {
		var tr Trade
		var tradeType string
		require.NoError(t, rows.Scan(&tr.ID, &tr.StockCode, &tr.Quantity, &tradeType, &tr.Currency, &tr.TradeDate))
		tr.TradeType = TradeType(tradeType)
		got = append(got, tr)
	}
	require.Len(t, got, 2)

	// Codes and currencies are normalized to upper case
	assert.Equal(t, "AAPL", got[0].StockCode)
	assert.Equal(t, "USD", got[0].Currency)

	// trade_type derives from the quantity sign
	assert.Equal(t, TradeTypeBuy, got[0].TradeType)
	assert.Equal(t, TradeTypeSell, got[1].TradeType)

	// The store stamps id and trade_date, not the caller
	assert.NotEmpty(t, got[0].ID)
	assert.NotEmpty(t, got[0].TradeDate)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestHistory_NewestFirst(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	db := setupLedgerDB(t)
	repo := NewTradeRepository(db, log)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(Trade{StockCode: "AAPL", Quantity: 1, Price: float64(100 + i), Currency: "USD"}))
	}

	trades, err := repo.History(3)
	require.NoError(t, err)
	require.Len(t, trades, 3)

	// All rows share the same CURRENT_TIMESTAMP resolution, rowid breaks ties
	assert.Equal(t, 104.0, trades[0].Price)
	assert.Equal(t, 103.0, trades[1].Price)
	assert.Equal(t, 102.0, trades[2].Price)
}
