// Package yahoo provides a client for the Yahoo Finance public API.
// It covers the chart endpoint (spot prices) and the search endpoint
// (instrument lookup and trending discovery).
package yahoo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoQuote indicates the provider returned no usable price series for a symbol.
var ErrNoQuote = errors.New("yahoo: no quote data")

const userAgent = "stock-asset-manager/1.0"

// Client for the Yahoo Finance chart and search APIs.
type Client struct {
	chartBaseURL  string
	searchBaseURL string
	client        *http.Client
	log           zerolog.Logger
}

// NewClient creates a new Yahoo Finance client with a bounded request timeout.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		chartBaseURL:  "https://query2.finance.yahoo.com/v8/finance/chart",
		searchBaseURL: "https://query2.finance.yahoo.com/v1/finance/search",
		client:        &http.Client{Timeout: 8 * time.Second},
		log:           log.With().Str("client", "yahoo").Logger(),
	}
}

// Quote is a spot quote for a single symbol.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prev_close"`
}

// SearchResult is one entry from the search endpoint.
type SearchResult struct {
	Symbol    string
	ShortName string
	LongName  string
	QuoteType string
}

// chartResponse is the response structure of the Yahoo Finance chart API.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote fetches the current and previous close for a symbol from a two-day
// daily chart. Prices are rounded to 2 decimal places.
func (c *Client) Quote(symbol string) (Quote, error) {
	if symbol == "" {
		return Quote{}, ErrNoQuote
	}

	u := fmt.Sprintf("%s/%s?interval=1d&range=2d", c.chartBaseURL, url.PathEscape(symbol))

	var raw chartResponse
	if err := c.getJSON(u, &raw); err != nil {
		return Quote{}, err
	}

	if raw.Chart.Error != nil {
		return Quote{}, fmt.Errorf("yahoo: %s: %s", raw.Chart.Error.Code, raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 {
		return Quote{}, ErrNoQuote
	}

	result := raw.Chart.Result[0]

	// Collect the non-null closes; markets that traded only one of the two
	// days produce null padding in the series.
	var closes []float64
	if len(result.Indicators.Quote) > 0 {
		for _, v := range result.Indicators.Quote[0].Close {
			if v != nil {
				closes = append(closes, *v)
			}
		}
	}

	price := result.Meta.RegularMarketPrice
	if len(closes) > 0 {
		price = closes[len(closes)-1]
	}
	if price == 0 {
		return Quote{}, ErrNoQuote
	}

	prevClose := price
	if len(closes) > 1 {
		prevClose = closes[len(closes)-2]
	} else if result.Meta.PreviousClose > 0 {
		prevClose = result.Meta.PreviousClose
	}

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	return Quote{
		Symbol:    symbol,
		Name:      name,
		Price:     round2(price),
		PrevClose: round2(prevClose),
	}, nil
}

// searchResponse is the response structure of the Yahoo Finance search API.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Search queries the search endpoint, returning at most maxResults entries.
func (c *Client) Search(query string, maxResults int) ([]SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	u := fmt.Sprintf("%s?q=%s&quotesCount=%d&newsCount=0",
		c.searchBaseURL, url.QueryEscape(query), maxResults)

	var raw searchResponse
	if err := c.getJSON(u, &raw); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(raw.Quotes))
	for _, q := range raw.Quotes {
		results = append(results, SearchResult{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			QuoteType: q.QuoteType,
		})
	}

	return results, nil
}

// getJSON performs a GET request and decodes the JSON body into out.
func (c *Client) getJSON(u string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
