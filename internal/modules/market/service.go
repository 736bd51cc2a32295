package market

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/clientdata"
	"github.com/haesung5/stock-asset-manager/internal/clients/yahoo"
)

// QuoteClient is the upstream market-data provider.
type QuoteClient interface {
	Quote(symbol string) (yahoo.Quote, error)
	Search(query string, maxResults int) ([]yahoo.SearchResult, error)
}

// Service serves spot prices, search and trending data.
type Service struct {
	client QuoteClient
	cache  *clientdata.Repository // optional - nil disables caching
	log    zerolog.Logger
}

// NewService creates a new market service
func NewService(client QuoteClient, cache *clientdata.Repository, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "market").Logger(),
	}
}

// Spot fetches the quote for a single symbol. Unlike Batch, a failure here
// surfaces to the caller: the single-symbol endpoint's contract is an error.
func (s *Service) Spot(symbol string) (yahoo.Quote, error) {
	symbol = strings.TrimSpace(symbol)

	if cached, ok := s.cachedQuote(symbol); ok {
		return cached, nil
	}

	quote, err := s.client.Quote(symbol)
	if err != nil {
		return yahoo.Quote{}, err
	}

	s.storeQuote(quote)
	return quote, nil
}

// Batch fetches quotes for several symbols with per-symbol error isolation:
// a failed symbol yields a zero-price sentinel entry and never fails the
// batch. Every requested symbol is present in the result.
func (s *Service) Batch(symbols []string) map[string]yahoo.Quote {
	result := make(map[string]yahoo.Quote, len(symbols))

	for _, symbol := range symbols {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}

		if cached, ok := s.cachedQuote(symbol); ok {
			result[symbol] = cached
			continue
		}

		quote, err := s.client.Quote(symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote lookup failed, using sentinel")
			result[symbol] = yahoo.Quote{Symbol: symbol, Name: symbol, Price: 0, PrevClose: 0}
			continue
		}

		s.storeQuote(quote)
		result[symbol] = quote
	}

	return result
}

// SearchInstruments searches the provider for instruments matching the query.
// Best-effort: returns an empty slice on total failure, never an error.
func (s *Service) SearchInstruments(query string) []Instrument {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Instrument{}
	}

	results, err := s.client.Search(query, 8)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("Instrument search failed")
		return []Instrument{}
	}

	instruments := make([]Instrument, 0, len(results))
	for _, q := range results {
		if q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
			continue
		}

		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = q.Symbol
		}

		instruments = append(instruments, Instrument{
			Code:     q.Symbol,
			Name:     name,
			Currency: currencyForSymbol(q.Symbol),
		})
	}

	// Nothing matched: the user may have typed an exact ticker, so probe it
	// directly before giving up.
	if len(instruments) == 0 && looksLikeTicker(query) {
		upper := strings.ToUpper(query)
		if quote, err := s.client.Quote(upper); err == nil && quote.Price > 0 {
			instruments = append(instruments, Instrument{
				Code:     upper,
				Name:     quote.Name,
				Currency: currencyForSymbol(upper),
			})
		}
	}

	return instruments
}

// Trending returns currently active symbols, merged with a static list of
// prominent US names. On provider failure the static fallback is served.
func (s *Service) Trending() []string {
	results, err := s.client.Search("stocks", 30)
	if err != nil {
		s.log.Warn().Err(err).Msg("Trending lookup failed, serving fallback list")
		return append([]string{}, trendingFallback...)
	}

	seen := make(map[string]bool)
	var symbols []string
	for _, q := range results {
		if q.QuoteType != "EQUITY" || seen[q.Symbol] {
			continue
		}
		seen[q.Symbol] = true
		symbols = append(symbols, q.Symbol)
	}
	for _, symbol := range trendingStaples {
		if !seen[symbol] {
			seen[symbol] = true
			symbols = append(symbols, symbol)
		}
	}

	return symbols
}

// cachedQuote returns a fresh cached quote when available.
func (s *Service) cachedQuote(symbol string) (yahoo.Quote, bool) {
	if s.cache == nil {
		return yahoo.Quote{}, false
	}

	data, err := s.cache.GetIfFresh("quotes", symbol)
	if err != nil || data == nil {
		return yahoo.Quote{}, false
	}

	var quote yahoo.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return yahoo.Quote{}, false
	}

	return quote, true
}

func (s *Service) storeQuote(quote yahoo.Quote) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store("quotes", quote.Symbol, quote, clientdata.TTLQuote); err != nil {
		s.log.Warn().Err(err).Str("symbol", quote.Symbol).Msg("Failed to cache quote")
	}
}

// currencyForSymbol infers the trading currency from the ticker suffix.
// Korean exchanges qualify tickers with .KS (KOSPI) or .KQ (KOSDAQ).
func currencyForSymbol(symbol string) string {
	upper := strings.ToUpper(symbol)
	if strings.HasSuffix(upper, ".KS") || strings.HasSuffix(upper, ".KQ") {
		return "KRW"
	}
	return "USD"
}

// looksLikeTicker reports whether a failed search query is worth a direct probe.
func looksLikeTicker(query string) bool {
	upper := strings.ToUpper(query)
	return strings.HasSuffix(upper, ".KS") || strings.HasSuffix(upper, ".KQ") || len(query) >= 4
}
