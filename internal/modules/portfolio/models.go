// Package portfolio computes current holdings and their live valuation.
// Holdings have no stored state: they are a read-time projection of the
// trade ledger, recomputed in full on every request.
package portfolio

// Holding is the derived current position for one (stock_code, currency) pair.
// A pair is part of the holdings set iff its quantities sum to a positive
// number; fully or over-sold positions disappear from the view.
type Holding struct {
	StockCode     string  `json:"stock_code"`
	TotalQuantity float64 `json:"total_quantity"`
	AvgBuyPrice   float64 `json:"avg_buy_price"`
	Currency      string  `json:"currency"`
}

// Position is one holding valued against live prices.
type Position struct {
	StockCode   string  `json:"stock_code"`
	Name        string  `json:"name"`
	Currency    string  `json:"currency"`
	Quantity    float64 `json:"quantity"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
	Price       float64 `json:"price"`
	PrevClose   float64 `json:"prev_close"`
	EvalAmount  float64 `json:"eval_amount"`
	BuyAmount   float64 `json:"buy_amount"`
	ProfitLoss  float64 `json:"profit_loss"`
	ReturnRate  float64 `json:"return_rate"` // percent against buy amount
	DayRate     float64 `json:"day_rate"`    // percent change against previous close
}

// CurrencySummary aggregates positions of one currency. For USD the totals
// are additionally converted to KRW at the supplied exchange rate.
type CurrencySummary struct {
	Currency      string  `json:"currency"`
	TotalEvalKRW  float64 `json:"total_eval_krw"`
	TotalBuyKRW   float64 `json:"total_buy_krw"`
	ProfitLossKRW float64 `json:"profit_loss_krw"`
	ReturnRate    float64 `json:"return_rate"`
}

// Valuation is the full portfolio view: every position plus per-currency totals.
type Valuation struct {
	Positions    []Position        `json:"positions"`
	Summaries    []CurrencySummary `json:"summaries"`
	ExchangeRate float64           `json:"exchange_rate"`
	RateSource   string            `json:"rate_source"`
}
