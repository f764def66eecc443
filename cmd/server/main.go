// Package main is the entry point for the Finobai personal finance
// backend. It wires the databases, module services and HTTP server,
// starts the maintenance scheduler and waits for a shutdown signal.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/finobai/finobai/internal/clients/advisor"
	"github.com/finobai/finobai/internal/clients/marketdata"
	"github.com/finobai/finobai/internal/config"
	"github.com/finobai/finobai/internal/database"
	"github.com/finobai/finobai/internal/events"
	"github.com/finobai/finobai/internal/modules/categorizer"
	"github.com/finobai/finobai/internal/modules/goals"
	"github.com/finobai/finobai/internal/modules/history"
	"github.com/finobai/finobai/internal/modules/insights"
	"github.com/finobai/finobai/internal/modules/statements"
	"github.com/finobai/finobai/internal/modules/stocks"
	"github.com/finobai/finobai/internal/reliability"
	"github.com/finobai/finobai/internal/scheduler"
	"github.com/finobai/finobai/internal/server"
	"github.com/finobai/finobai/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting Finobai")

	// finance.db holds statements, budgets and goals; cache.db holds
	// reconstructible summaries; history.db holds daily candles.
	financeDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "finance.db"),
		Profile: database.ProfileLedger,
		Name:    "finance",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open finance database")
	}
	defer financeDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	historyDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "history.db"),
		Profile: database.ProfileStandard,
		Name:    "history",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history database")
	}
	defer historyDB.Close()

	// The candle store keeps its own CGo-driver connection to
	// history.db; WAL mode lets both handles coexist.
	historyConn, err := sql.Open("sqlite3",
		filepath.Join(cfg.DataDir, "history.db")+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open candle store connection")
	}
	defer historyConn.Close()

	bus := events.NewBus()

	// Categorizer, statements, insights and goals share finance.db.
	categorizerSvc := categorizer.NewService(log)
	categorizerHandlers := categorizer.NewHandlers(categorizerSvc, log)

	statementsRepo, err := statements.NewRepository(financeDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize statements repository")
	}

	summaryCache, err := insights.NewSummaryCache(cacheDB.Conn(), cfg.SummaryCacheTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize summary cache")
	}
	budgetRepo, err := insights.NewBudgetRepository(financeDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize budget repository")
	}
	insightsSvc := insights.NewService(statementsRepo, summaryCache, budgetRepo, bus, log)
	insightsHandlers := insights.NewHandlers(insightsSvc, log)

	// Uploads invalidate the cached summaries of the months they touch.
	statementsSvc := statements.NewService(
		statements.NewParser(log), categorizerSvc, statementsRepo, insightsSvc, bus, log)
	statementsHandlers := statements.NewHandlers(statementsSvc, log)

	goalsRepo, err := goals.NewRepository(financeDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize goals repository")
	}
	goalsEngine := goals.NewEngine(cfg.IncomeMultiplier, cfg.HouseIncomeMultiplier, log)
	goalsSvc := goals.NewService(goalsRepo, goalsEngine, statementsRepo, bus, log)
	goalsHandlers := goals.NewHandlers(goalsSvc, log)

	candleStore, err := history.NewStore(historyConn, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize candle store")
	}

	market := marketdata.NewClient(cfg.MarketDataURL, candleStore, log)

	var narrativeAdvisor stocks.NarrativeAdvisor
	if cfg.AdvisorURL != "" {
		narrativeAdvisor = advisor.NewClient(cfg.AdvisorURL, cfg.AdvisorAPIKey, cfg.AdvisorTimeout, log)
	} else {
		log.Warn().Msg("Advisor not configured, recommendations use the rule-based fallback")
	}

	stocksSvc := stocks.NewService(market, narrativeAdvisor, bus, cfg.RiskFreeRate, log)
	stocksHandlers := stocks.NewHandlers(stocksSvc, log)

	srv := server.New(server.Config{
		Log:       log,
		Cfg:       cfg,
		FinanceDB: financeDB,
		CacheDB:   cacheDB,
		HistoryDB: historyDB,
		Bus:       bus,

		Categorizer: categorizerHandlers,
		Statements:  statementsHandlers,
		Insights:    insightsHandlers,
		Goals:       goalsHandlers,
		Stocks:      stocksHandlers,
	})

	sched := scheduler.New(log)
	allDBs := []*database.DB{financeDB, cacheDB, historyDB}

	if err := sched.AddJob("@hourly", scheduler.NewCachePurgeJob(summaryCache, candleStore, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache purge job")
	}
	if err := sched.AddJob("0 4 * * *", scheduler.NewWALCheckpointJob(allDBs, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register WAL checkpoint job")
	}

	if cfg.Backup != nil && cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(cfg.Backup, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize backup storage client")
		}
		backupSvc := reliability.NewBackupService(
			s3Client, allDBs, cfg.DataDir, cfg.Backup.RetentionDays, bus, log)
		if err := sched.AddJob(cfg.Backup.Schedule, scheduler.NewBackupJob(backupSvc, log)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	} else {
		log.Info().Msg("Backups disabled")
	}

	sched.Start()
	defer sched.Stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
