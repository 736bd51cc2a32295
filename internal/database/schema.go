package database

import "fmt"

// ledgerSchema holds the trade ledger and the exchange-rate reference table.
// The trades table is append-only: rows are inserted and never updated or
// deleted, so positions can always be rebuilt from history.
const ledgerSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	stock_code TEXT NOT NULL,
	quantity REAL NOT NULL CHECK (quantity != 0),
	price REAL NOT NULL CHECK (price >= 0),
	currency TEXT NOT NULL,
	trade_type TEXT NOT NULL,
	trade_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_trades_code_currency ON trades(stock_code, currency);

CREATE TABLE IF NOT EXISTS exchange_rates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	currency_code TEXT NOT NULL,
	country_name TEXT NOT NULL DEFAULT '',
	rate REAL NOT NULL,
	rate_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exchange_rates_code_date ON exchange_rates(currency_code, rate_date);
`

// cacheSchema holds TTL-expiring JSON blobs for external API responses.
const cacheSchema = `
CREATE TABLE IF NOT EXISTS quotes (
	symbol TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exchange_rate (
	pair TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	expires_at INTEGER NOT NULL
);
`

// InitSchema applies the schema matching the database profile.
func (db *DB) InitSchema() error {
	var schema string
	switch db.profile {
	case ProfileCache:
		schema = cacheSchema
	default:
		schema = ledgerSchema
	}

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema for %s: %w", db.name, err)
	}
	return nil
}
