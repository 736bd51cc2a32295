package clientdata

import "time"

// TTL constants per data type, added to time.Now() when storing.
const (
	// TTLQuote - spot quotes for batch refreshes, short-lived
	TTLQuote = 10 * time.Minute
	// TTLExchangeRate - currency exchange rates
	TTLExchangeRate = time.Hour
)
