// Package market serves live market data: spot quotes, instrument search,
// trending symbols and the curated instrument catalogs. It is a pass-through
// to the quote provider with per-symbol error isolation.
package market

// Instrument is one tradable instrument as shown in search and catalogs.
type Instrument struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// CatalogEntry is one entry of the browse catalog (no currency attached).
type CatalogEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
