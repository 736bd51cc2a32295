// Package server provides the HTTP server and routing for the stock asset manager.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	currencyhandlers "github.com/haesung5/stock-asset-manager/internal/modules/currency/handlers"
	markethandlers "github.com/haesung5/stock-asset-manager/internal/modules/market/handlers"
	portfoliohandlers "github.com/haesung5/stock-asset-manager/internal/modules/portfolio/handlers"
	tradinghandlers "github.com/haesung5/stock-asset-manager/internal/modules/trading/handlers"
)

// Config holds server configuration
type Config struct {
	Port              int
	DevMode           bool
	Log               zerolog.Logger
	TradingHandlers   *tradinghandlers.Handler
	PortfolioHandlers *portfoliohandlers.Handler
	CurrencyHandlers  *currencyhandlers.Handler
	MarketHandlers    *markethandlers.Handler
	SystemHandlers    *SystemHandlers
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}

	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)

	// Ledger and holdings
	s.router.Get("/holdings", s.cfg.PortfolioHandlers.HandleHoldings)
	s.router.Route("/trades", func(r chi.Router) {
		r.Get("/", s.cfg.TradingHandlers.HandleHistory)
		r.Post("/", s.cfg.TradingHandlers.HandleRecordBuy)
		r.Post("/sell", s.cfg.TradingHandlers.HandleRecordSell)
	})
	s.router.Get("/portfolio/valuation", s.cfg.PortfolioHandlers.HandleValuation)

	// Market data
	s.router.Route("/market", func(r chi.Router) {
		r.Get("/price/{symbol}", s.cfg.MarketHandlers.HandleSpot)
		r.Get("/prices", s.cfg.MarketHandlers.HandleBatch)
		r.Get("/exchange-rate", s.cfg.CurrencyHandlers.HandleExchangeRate)
		r.Get("/exchange-rate/history", s.cfg.CurrencyHandlers.HandleRateHistory)
		r.Get("/search", s.cfg.MarketHandlers.HandleSearch)
		r.Get("/trending", s.cfg.MarketHandlers.HandleTrending)
		r.Get("/list", s.cfg.MarketHandlers.HandleMarketList)
	})
	s.router.Get("/market-list", s.cfg.MarketHandlers.HandleBrowseCatalog)

	// System
	if s.cfg.SystemHandlers != nil {
		s.router.Get("/system/status", s.cfg.SystemHandlers.HandleSystemStatus)
	}
}

// Router returns the chi router, exposed for handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs each request with structured fields
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
