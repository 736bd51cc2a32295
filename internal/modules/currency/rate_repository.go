package currency

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RateRecord is one row of the exchange_rates reference table.
type RateRecord struct {
	ID           int64   `json:"id"`
	CurrencyCode string  `json:"currency_code"`
	CountryName  string  `json:"country_name"`
	Rate         float64 `json:"rate"`
	RateDate     string  `json:"rate_date"`
}

// RateRepository manages the exchange_rates reference table. This table is a
// reporting/offline path fed by the snapshot job; the live resolver never
// reads it.
type RateRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRateRepository creates a new rate repository
func NewRateRepository(db *sql.DB, log zerolog.Logger) *RateRepository {
	return &RateRepository{
		db:  db,
		log: log.With().Str("repo", "exchange_rate").Logger(),
	}
}

// RecordSnapshot appends today's resolved rate for a currency.
func (r *RateRepository) RecordSnapshot(currencyCode, countryName string, rate float64) error {
	query := `
		INSERT INTO exchange_rates (currency_code, country_name, rate, rate_date)
		VALUES (?, ?, ?, ?)
	`

	rateDate := time.Now().Format("2006-01-02")
	if _, err := r.db.Exec(query, currencyCode, countryName, rate, rateDate); err != nil {
		return fmt.Errorf("failed to record rate snapshot: %w", err)
	}

	r.log.Info().
		Str("currency_code", currencyCode).
		Float64("rate", rate).
		Str("rate_date", rateDate).
		Msg("Rate snapshot recorded")

	return nil
}

// LatestRates returns the most recent snapshot per currency.
func (r *RateRepository) LatestRates() ([]RateRecord, error) {
	// Latest row per currency_code; MAX over rate_date with id as tiebreaker
	// for multiple snapshots on the same day.
	query := `
		SELECT id, currency_code, country_name, rate, rate_date
		FROM exchange_rates
		WHERE id IN (
			SELECT id FROM exchange_rates e1
			WHERE NOT EXISTS (
				SELECT 1 FROM exchange_rates e2
				WHERE e2.currency_code = e1.currency_code
				  AND (e2.rate_date > e1.rate_date
				       OR (e2.rate_date = e1.rate_date AND e2.id > e1.id))
			)
		)
		ORDER BY currency_code
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest rates: %w", err)
	}
	defer rows.Close()

	var records []RateRecord
	for rows.Next() {
		var rec RateRecord
		if err := rows.Scan(&rec.ID, &rec.CurrencyCode, &rec.CountryName, &rec.Rate, &rec.RateDate); err != nil {
			return nil, fmt.Errorf("failed to scan rate record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate records: %w", err)
	}

	return records, nil
}
