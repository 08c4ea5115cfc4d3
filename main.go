// @title Finance Tracker API
// @version 1.0
// @description Personal finance ledger: accounts, categories, transactions and daily net-worth snapshots.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"financetracker/events"
	"financetracker/ledger"
	"financetracker/ledger/firestore"
	"financetracker/ledger/memory"
	"financetracker/ledger/postgres"
)

var (
	service      *ledger.Service
	logger       = zerolog.New(os.Stdout).With().Timestamp().Logger()
	storeTimeout = 10 * time.Second
	dataBackend  = backendMemory
)

const (
	connectRetries       = 30
	connectRetryInterval = 2 * time.Second
	shutdownTimeout      = 15 * time.Second
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := config.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger = newLogger(config.LogLevel, config.LogFormat, os.Stdout)
	gin.SetMode(config.GinMode)
	storeTimeout = config.StoreTimeout
	dataBackend = config.DataBackend

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, config)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", config.DataBackend).Msg("Failed to open store")
	}
	defer store.Close()

	opts := []ledger.Option{ledger.WithLogger(logger)}
	if config.AMQPURL != "" {
		publisher, err := events.NewPublisher(config.AMQPURL, config.AMQPExchange, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to message broker")
		}
		defer publisher.Close()
		opts = append(opts, ledger.WithPublisher(publisher))
		logger.Info().Str("exchange", config.AMQPExchange).Msg("Publishing ledger events")
	}
	service = ledger.NewService(store, opts...)

	if config.SeedDemoData {
		seedCtx, cancel := context.WithTimeout(ctx, time.Minute)
		err := seedDemoData(seedCtx, service, logger)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	var scheduler *snapshotScheduler
	if config.SnapshotSchedule != "" {
		scheduler, err = newSnapshotScheduler(config.SnapshotSchedule, service, config.StoreTimeout, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to start snapshot scheduler")
		}
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           setupRouter(config.CORSAllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", config.Port).Str("backend", config.DataBackend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// openStore builds the ledger store selected by DATA_BACKEND.
func openStore(ctx context.Context, config *Config) (ledger.Store, error) {
	switch config.DataBackend {
	case backendPostgres:
		return openPostgres(ctx, config)
	case backendFirestore:
		store, err := firestore.Open(ctx, config.FirestoreProjectID)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("project", config.FirestoreProjectID).Msg("Using Firestore store")
		return store, nil
	case backendMemory:
		logger.Warn().Msg("Using in-memory store, data is lost on restart")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown data backend %q", config.DataBackend)
}

// openPostgres connects with retries, since the database container may still
// be starting, then applies migrations.
func openPostgres(ctx context.Context, config *Config) (*postgres.Store, error) {
	dsn := config.PostgresURL()

	var (
		store *postgres.Store
		err   error
	)
	for i := 0; i < connectRetries; i++ {
		store, err = postgres.Open(ctx, dsn)
		if err == nil {
			logger.Info().Msg("Successfully connected to database")
			break
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Error connecting to database")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", connectRetries, err)
	}

	if err := runMigrations(dsn, config.MigrationsPath, logger); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
