// Package frankfurter provides a client for the Frankfurter exchange-rate API,
// used as the backup source when the primary market-data provider fails.
package frankfurter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client for api.frankfurter.app
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Frankfurter client.
// The timeout is deliberately short: this client sits in a fallback chain
// and must fail fast so the chain can degrade to the default rate.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.frankfurter.app",
		client:  &http.Client{Timeout: 3 * time.Second},
		log:     log.With().Str("client", "frankfurter").Logger(),
	}
}

// Latest fetches the latest rate for one unit of from in to.
func (c *Client) Latest(from, to string) (float64, error) {
	u := fmt.Sprintf("%s/latest?from=%s&to=%s", c.baseURL, from, to)

	resp, err := c.client.Get(u)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("frankfurter returned status %d", resp.StatusCode)
	}

	var result struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	rate, ok := result.Rates[to]
	if !ok {
		return 0, fmt.Errorf("rate not found for %s->%s", from, to)
	}

	c.log.Debug().Str("from", from).Str("to", to).Float64("rate", rate).Msg("Fetched backup rate")

	return rate, nil
}
