package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oasisfintech/oasis-backend/internal/adapter/events"
	kafkaevents "github.com/oasisfintech/oasis-backend/internal/adapter/events/kafka"
	httpadapter "github.com/oasisfintech/oasis-backend/internal/adapter/http"
	"github.com/oasisfintech/oasis-backend/internal/adapter/repository/memory"
	"github.com/oasisfintech/oasis-backend/internal/adapter/repository/postgres"
	"github.com/oasisfintech/oasis-backend/internal/adapter/session"
	"github.com/oasisfintech/oasis-backend/internal/config"
	"github.com/oasisfintech/oasis-backend/internal/domain"
	"github.com/oasisfintech/oasis-backend/internal/logger"
	"github.com/oasisfintech/oasis-backend/internal/security"
	"github.com/oasisfintech/oasis-backend/internal/usecase/access"
	"github.com/oasisfintech/oasis-backend/internal/usecase/fraud"
	"github.com/oasisfintech/oasis-backend/internal/usecase/ledger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/reconcile"
	"github.com/oasisfintech/oasis-backend/internal/usecase/report"
	"github.com/oasisfintech/oasis-backend/internal/usecase/seeder"
	"github.com/oasisfintech/oasis-backend/internal/usecase/transfer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// 1. Storage: postgres when configured, in-memory otherwise.
	var ledgerStore domain.LedgerStore
	var alertStore domain.FraudAlertStore
	if cfg.DBConnStr != "" {
		db, err := postgres.NewDB(cfg.DBConnStr)
		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
		defer db.Close()
		ledgerStore = postgres.NewLedgerStore(db)
		alertStore = postgres.NewFraudAlertStore(db)
		log.Info("using postgres storage")
	} else {
		store := memory.NewStore()
		ledgerStore = store
		alertStore = store
		log.Info("using in-memory storage")
	}

	// 2. Sessions: redis when configured, in-memory otherwise.
	var sessions session.Store
	if cfg.RedisAddr != "" {
		redisSessions, err := session.NewRedisStore(ctx, cfg.RedisAddr, 24*time.Hour)
		if err != nil {
			log.Fatal("failed to connect to redis", "error", err)
		}
		defer redisSessions.Close()
		sessions = redisSessions
		log.Info("using redis sessions", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
	}

	// 3. Events: kafka when brokers are configured.
	var publisher transfer.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafkaevents.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers)
	} else {
		publisher = events.NewNoopPublisher()
	}

	if _, err := security.NewEncryptor(cfg.EncryptionKey); err != nil {
		log.Fatal("failed to initialize encryptor", "error", err)
	}

	// 4. Core engines.
	ledgerService := ledger.NewService(ledgerStore, log)
	fraudEngine := fraud.NewEngine(alertStore, log)
	fraudEngine.AddRule("amount-above-limit", fraud.AmountAboveLimit(cfg.FraudAmountLimit))
	fraudEngine.AddRule("self-transfer", fraud.SelfTransfer())
	reconcileEngine := reconcile.NewEngine()
	transferService := transfer.NewService(ledgerService, fraudEngine, publisher, log)
	reportService := report.NewService(ledgerStore)
	policy := access.NewPolicy()

	if err := seeder.NewSystemSeeder(ledgerStore).Seed(ctx); err != nil {
		log.Fatal("failed to seed system accounts", "error", err)
	}

	// 5. HTTP server.
	server := httpadapter.NewServer(
		ledgerService,
		fraudEngine,
		reconcileEngine,
		transferService,
		reportService,
		policy,
		sessions,
		log,
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", "error", err)
		}
	}()

	waitForShutdown(httpServer, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server, log *logger.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("http server stopped")
}
