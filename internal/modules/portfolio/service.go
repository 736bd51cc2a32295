package portfolio

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/clients/yahoo"
	"github.com/haesung5/stock-asset-manager/internal/modules/currency"
	"github.com/haesung5/stock-asset-manager/internal/utils"
)

// QuoteSource provides batch spot prices for valuation.
// Every requested symbol gets an entry; failed lookups carry a zero price.
type QuoteSource interface {
	Batch(symbols []string) map[string]yahoo.Quote
}

// RateSource resolves the USD/KRW exchange rate, always returning something usable.
type RateSource interface {
	Resolve() currency.Resolution
}

// Service computes holdings and valuations.
type Service struct {
	repo   *HoldingsRepository
	quotes QuoteSource
	rates  RateSource
	log    zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(repo *HoldingsRepository, quotes QuoteSource, rates RateSource, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		quotes: quotes,
		rates:  rates,
		log:    log.With().Str("service", "portfolio").Logger(),
	}
}

// Holdings returns the current position set, recomputed from the ledger.
func (s *Service) Holdings() ([]Holding, error) {
	return s.repo.ComputeHoldings()
}

// Valuation values every holding against live prices and the resolved
// exchange rate. Per-currency summaries are reported in KRW; USD totals are
// converted at the resolved rate.
func (s *Service) Valuation() (*Valuation, error) {
	defer utils.OperationTimer("portfolio_valuation", s.log)()

	holdings, err := s.repo.ComputeHoldings()
	if err != nil {
		return nil, err
	}

	resolution := s.rates.Resolve()

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.StockCode)
	}
	prices := s.quotes.Batch(symbols)

	positions := make([]Position, 0, len(holdings))
	totals := make(map[string]*CurrencySummary)

	for _, h := range holdings {
		quote := prices[h.StockCode]

		name := quote.Name
		if name == "" {
			name = h.StockCode
		}

		evalAmount := quote.Price * h.TotalQuantity
		buyAmount := h.AvgBuyPrice * h.TotalQuantity
		pnl := evalAmount - buyAmount

		var returnRate float64
		if buyAmount != 0 {
			returnRate = pnl / buyAmount * 100
		}
		var dayRate float64
		if quote.PrevClose != 0 {
			dayRate = (quote.Price - quote.PrevClose) / quote.PrevClose * 100
		}

		positions = append(positions, Position{
			StockCode:   h.StockCode,
			Name:        name,
			Currency:    h.Currency,
			Quantity:    h.TotalQuantity,
			AvgBuyPrice: h.AvgBuyPrice,
			Price:       quote.Price,
			PrevClose:   quote.PrevClose,
			EvalAmount:  evalAmount,
			BuyAmount:   buyAmount,
			ProfitLoss:  pnl,
			ReturnRate:  returnRate,
			DayRate:     dayRate,
		})

		summary, ok := totals[h.Currency]
		if !ok {
			summary = &CurrencySummary{Currency: h.Currency}
			totals[h.Currency] = summary
		}

		// Summaries are in KRW: convert USD amounts at the resolved rate.
		factor := 1.0
		if h.Currency == "USD" {
			factor = resolution.Rate
		}
		summary.TotalEvalKRW += evalAmount * factor
		summary.TotalBuyKRW += buyAmount * factor
	}

	summaries := make([]CurrencySummary, 0, len(totals))
	for _, summary := range totals {
		summary.ProfitLossKRW = summary.TotalEvalKRW - summary.TotalBuyKRW
		if summary.TotalBuyKRW != 0 {
			summary.ReturnRate = summary.ProfitLossKRW / summary.TotalBuyKRW * 100
		}
		summaries = append(summaries, *summary)
	}

	// KRW first, then USD, then anything else alphabetically.
	priority := map[string]int{"KRW": 0, "USD": 1}
	sort.Slice(summaries, func(i, j int) bool {
		pi, ok := priority[summaries[i].Currency]
		if !ok {
			pi = 99
		}
		pj, ok := priority[summaries[j].Currency]
		if !ok {
			pj = 99
		}
		if pi != pj {
			return pi < pj
		}
		return summaries[i].Currency < summaries[j].Currency
	})

	return &Valuation{
		Positions:    positions,
		Summaries:    summaries,
		ExchangeRate: resolution.Rate,
		RateSource:   resolution.Source,
	}, nil
}
