package yahoo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(chartURL, searchURL string) *Client {
	c := NewClient(zerolog.New(nil).Level(zerolog.Disabled))
	if chartURL != "" {
		c.chartBaseURL = chartURL
	}
	if searchURL != "" {
		c.searchBaseURL = searchURL
	}
	return c
}

func TestQuote_ParsesTwoDaySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {"symbol": "AAPL", "longName": "Apple Inc.", "regularMarketPrice": 230.456, "chartPreviousClose": 225.0},
					"indicators": {"quote": [{"close": [228.104, 230.456]}]}
				}],
				"error": null
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")

	quote, err := c.Quote("AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "Apple Inc.", quote.Name)
	assert.Equal(t, 230.46, quote.Price, "prices are rounded to 2 decimals")
	assert.Equal(t, 228.1, quote.PrevClose)
}

func TestQuote_SingleBarFallsBackToMetaPreviousClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {"symbol": "005930.KS", "shortName": "Samsung Electronics", "regularMarketPrice": 71000, "chartPreviousClose": 70500},
					"indicators": {"quote": [{"close": [null, 71000]}]}
				}]
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")

	quote, err := c.Quote("005930.KS")
	require.NoError(t, err)

	assert.Equal(t, "Samsung Electronics", quote.Name)
	assert.Equal(t, 71000.0, quote.Price)
	assert.Equal(t, 70500.0, quote.PrevClose, "null-padded series uses meta previous close")
}

func TestQuote_Errors(t *testing.T) {
	testCases := []struct {
		name string
		body string
		code int
	}{
		{
			name: "provider error payload",
			body: `{"chart": {"result": [], "error": {"code": "Not Found", "description": "No data found"}}}`,
			code: http.StatusOK,
		},
		{
			name: "empty result",
			body: `{"chart": {"result": []}}`,
			code: http.StatusOK,
		},
		{
			name: "http error status",
			body: `{}`,
			code: http.StatusTooManyRequests,
		},
		{
			name: "malformed body",
			body: `{"chart": `,
			code: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, "")
			_, err := c.Quote("WHATEVER")
			assert.Error(t, err)
		})
	}
}

func TestSearch_ParsesQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kakao", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("quotesCount"))
		w.Write([]byte(`{
			"quotes": [
				{"symbol": "035720.KS", "shortname": "Kakao Corp.", "quoteType": "EQUITY"},
				{"symbol": "KAKAOUSD", "longname": "Kakao Something", "quoteType": "CRYPTOCURRENCY"}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient("", srv.URL)

	results, err := c.Search("kakao", 8)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "035720.KS", results[0].Symbol)
	assert.Equal(t, "Kakao Corp.", results[0].ShortName)
	assert.Equal(t, "EQUITY", results[0].QuoteType)
	assert.Equal(t, "CRYPTOCURRENCY", results[1].QuoteType)
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0", "http://127.0.0.1:0")

	results, err := c.Search("", 8)
	require.NoError(t, err)
	assert.Empty(t, results)
}
