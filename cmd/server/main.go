// Package main is the entry point for the stock asset manager backend.
// It records buy/sell trades in an append-only ledger, computes holdings by
// aggregation, and serves live market data fetched from Yahoo Finance to the
// desktop client and the web dashboard.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/haesung5/stock-asset-manager/internal/clientdata"
	"github.com/haesung5/stock-asset-manager/internal/clients/frankfurter"
	"github.com/haesung5/stock-asset-manager/internal/clients/yahoo"
	"github.com/haesung5/stock-asset-manager/internal/config"
	"github.com/haesung5/stock-asset-manager/internal/database"
	"github.com/haesung5/stock-asset-manager/internal/modules/currency"
	currencyhandlers "github.com/haesung5/stock-asset-manager/internal/modules/currency/handlers"
	"github.com/haesung5/stock-asset-manager/internal/modules/market"
	markethandlers "github.com/haesung5/stock-asset-manager/internal/modules/market/handlers"
	"github.com/haesung5/stock-asset-manager/internal/modules/portfolio"
	portfoliohandlers "github.com/haesung5/stock-asset-manager/internal/modules/portfolio/handlers"
	"github.com/haesung5/stock-asset-manager/internal/modules/trading"
	tradinghandlers "github.com/haesung5/stock-asset-manager/internal/modules/trading/handlers"
	"github.com/haesung5/stock-asset-manager/internal/scheduler"
	"github.com/haesung5/stock-asset-manager/internal/server"
	"github.com/haesung5/stock-asset-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting stock asset manager")

	// Ledger database: trades and the exchange-rate reference table.
	ledgerDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "ledger.db"),
		Profile: database.ProfileLedger,
		Name:    "ledger",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger database")
	}
	defer ledgerDB.Close()

	if err := ledgerDB.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ledger schema")
	}

	// Cache database: TTL-expiring blobs of provider responses.
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	if err := cacheDB.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	// External clients
	yahooClient := yahoo.NewClient(log)
	backupClient := frankfurter.NewClient(log)
	cacheRepo := clientdata.NewRepository(cacheDB.Conn())

	// Repositories
	tradeRepo := trading.NewTradeRepository(ledgerDB.Conn(), log)
	holdingsRepo := portfolio.NewHoldingsRepository(ledgerDB.Conn(), log)
	rateRepo := currency.NewRateRepository(ledgerDB.Conn(), log)

	// Services
	resolver := currency.NewResolver(yahooClient, backupClient, cacheRepo, cfg.DefaultExchangeRate, cfg.ExchangeRateOverride, log)
	marketService := market.NewService(yahooClient, cacheRepo, log)
	tradingService := trading.NewService(tradeRepo, log)
	portfolioService := portfolio.NewService(holdingsRepo, marketService, resolver, log)

	// Daily exchange-rate snapshot into the reference table, hourly cache cleanup.
	sched := scheduler.New(resolver, rateRepo, cacheRepo, log)
	if err := sched.Register(cfg.RateSnapshotCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled jobs")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:              cfg.Port,
		DevMode:           cfg.DevMode,
		Log:               log,
		TradingHandlers:   tradinghandlers.NewHandler(tradingService, log),
		PortfolioHandlers: portfoliohandlers.NewHandler(portfolioService, log),
		CurrencyHandlers:  currencyhandlers.NewHandler(resolver, rateRepo, log),
		MarketHandlers:    markethandlers.NewHandler(marketService, log),
		SystemHandlers:    server.NewSystemHandlers(cfg.DataDir, log),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
