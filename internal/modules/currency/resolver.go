// Package currency resolves the USD/KRW exchange rate through an ordered
// chain of sources and maintains the historical rate reference table.
package currency

import (
	"encoding/json"
	"math"

	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/clientdata"
	"github.com/haesung5/stock-asset-manager/internal/clients/yahoo"
)

// Resolution statuses. The resolver never fails: callers always get a rate,
// and the status tells them whether it is live or a stale default.
const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"
)

// Resolution sources, in chain order.
const (
	SourceYFinance = "yfinance"
	SourceBackup   = "backup_api"
	SourceCache    = "cache"
	SourceDefault  = "default"
	SourceOverride = "override"
)

// fxSymbol is the Yahoo ticker for the USD/KRW spot rate.
const fxSymbol = "USDKRW=X"

// ratePair is the cache key for the resolved USD/KRW rate.
const ratePair = "USDKRW"

// Resolution is the outcome of a rate lookup.
type Resolution struct {
	Rate   float64 `json:"rate"`
	Status string  `json:"status"`
	Source string  `json:"source"`
}

// PrimarySource is the live market-data provider for the spot rate.
type PrimarySource interface {
	Quote(symbol string) (yahoo.Quote, error)
}

// BackupSource is the secondary public rate API.
type BackupSource interface {
	Latest(from, to string) (float64, error)
}

// Resolver tries the primary source, then the backup, then a configured
// default, returning the first success. Each fallback is a different data
// source, never a retry of the same one. Live resolutions are cached; a
// fresh cached rate is served without consulting the chain, and a stale one
// outranks the configured default when every live source is down.
type Resolver struct {
	primary     PrimarySource
	backup      BackupSource
	cache       *clientdata.Repository // optional - nil disables caching
	defaultRate float64
	override    float64 // when > 0, bypasses the chain entirely
	log         zerolog.Logger
}

// NewResolver creates a new exchange-rate resolver
func NewResolver(primary PrimarySource, backup BackupSource, cache *clientdata.Repository, defaultRate, override float64, log zerolog.Logger) *Resolver {
	return &Resolver{
		primary:     primary,
		backup:      backup,
		cache:       cache,
		defaultRate: defaultRate,
		override:    override,
		log:         log.With().Str("service", "exchange_rate").Logger(),
	}
}

// Resolve returns the USD/KRW rate, degrading gracefully through the chain.
func (r *Resolver) Resolve() Resolution {
	if r.override > 0 {
		return Resolution{Rate: r.override, Status: StatusSuccess, Source: SourceOverride}
	}

	if cached, ok := r.cachedResolution(); ok {
		return cached
	}

	if quote, err := r.primary.Quote(fxSymbol); err == nil && quote.Price > 0 {
		resolution := Resolution{Rate: round2(quote.Price), Status: StatusSuccess, Source: SourceYFinance}
		r.storeResolution(resolution)
		return resolution
	} else if err != nil {
		r.log.Warn().Err(err).Msg("Primary rate source failed, trying backup")
	}

	if rate, err := r.backup.Latest("USD", "KRW"); err == nil && rate > 0 {
		resolution := Resolution{Rate: round2(rate), Status: StatusSuccess, Source: SourceBackup}
		r.storeResolution(resolution)
		return resolution
	} else if err != nil {
		r.log.Warn().Err(err).Msg("Backup rate source failed")
	}

	// A previously observed rate, even expired, beats the hardcoded default.
	if stale, ok := r.staleResolution(); ok {
		r.log.Warn().Float64("rate", stale.Rate).Msg("All live rate sources failed, serving stale cached rate")
		return Resolution{Rate: stale.Rate, Status: StatusFallback, Source: SourceCache}
	}

	r.log.Warn().Float64("rate", r.defaultRate).Msg("All rate sources failed, falling back to default")
	return Resolution{Rate: r.defaultRate, Status: StatusFallback, Source: SourceDefault}
}

// cachedResolution returns the cached resolution while it is still fresh.
func (r *Resolver) cachedResolution() (Resolution, bool) {
	if r.cache == nil {
		return Resolution{}, false
	}

	data, err := r.cache.GetIfFresh("exchange_rate", ratePair)
	if err != nil || data == nil {
		return Resolution{}, false
	}

	var resolution Resolution
	if err := json.Unmarshal(data, &resolution); err != nil || resolution.Rate <= 0 {
		return Resolution{}, false
	}

	return resolution, true
}

// staleResolution returns the cached resolution regardless of expiry.
func (r *Resolver) staleResolution() (Resolution, bool) {
	if r.cache == nil {
		return Resolution{}, false
	}

	data, err := r.cache.Get("exchange_rate", ratePair)
	if err != nil || data == nil {
		return Resolution{}, false
	}

	var resolution Resolution
	if err := json.Unmarshal(data, &resolution); err != nil || resolution.Rate <= 0 {
		return Resolution{}, false
	}

	return resolution, true
}

func (r *Resolver) storeResolution(resolution Resolution) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Store("exchange_rate", ratePair, resolution, clientdata.TTLExchangeRate); err != nil {
		r.log.Warn().Err(err).Msg("Failed to cache exchange rate")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
