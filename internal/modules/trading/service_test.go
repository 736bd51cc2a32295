package trading

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBuy_RequiresPositiveQuantity(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	svc := NewService(NewTradeRepository(setupLedgerDB(t), log), log)

	assert.ErrorIs(t, svc.RecordBuy("AAPL", 0, 100, "USD"), ErrNonPositiveQuantity)
	assert.ErrorIs(t, svc.RecordBuy("AAPL", -3, 100, "USD"), ErrNonPositiveQuantity)
	assert.NoError(t, svc.RecordBuy("AAPL", 3, 100, "USD"))
}

func TestRecordSell_ForcesNegativeQuantity(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	db := setupLedgerDB(t)
	svc := NewService(NewTradeRepository(db, log), log)

	// Submitted sign does not matter: both store -|k|
	require.NoError(t, svc.RecordSell("AAPL", 7, 150, "USD"))
	require.NoError(t, svc.RecordSell("AAPL", -2, 150, "USD"))
	assert.ErrorIs(t, svc.RecordSell("AAPL", 0, 150, "USD"), ErrZeroQuantity)

	rows, err := db.Query("SELECT quantity, trade_type FROM trades ORDER BY rowid")
	require.NoError(t, err)
	defer rows.Close()

	var quantities []float64
	for rows.Next() {
		var q float64
		var tradeType string
		require.NoError(t, rows.Scan(&q, &tradeType))
		assert.Equal(t, "SELL", tradeType)
		quantities = append(quantities, q)
	}

	assert.Equal(t, []float64{-7, -2}, quantities)
}
