package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/dentalia/clinic-registry/cmd/mainconfig"
	"github.com/dentalia/clinic-registry/internal/api/router"
	"github.com/dentalia/clinic-registry/internal/blobstore"
	"github.com/dentalia/clinic-registry/internal/clinic"
	appconfig "github.com/dentalia/clinic-registry/internal/config"
	"github.com/dentalia/clinic-registry/internal/http/handlers"
	"github.com/dentalia/clinic-registry/internal/observability/metrics"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-registry API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"store", cfg.StoreDriver,
	)

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open blob store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	registryMetrics := metrics.NewRegistryMetrics(nil)

	var seed clinic.Seed
	if cfg.SeedDemoData {
		seed = clinic.DefaultSeed(time.Now())
	}

	registry, err := clinic.NewRegistry(ctx, clinic.Options{
		Store:   store,
		Seed:    seed,
		Locale:  cfg.Locale,
		Logger:  logger,
		Metrics: registryMetrics,
	})
	if err != nil {
		logger.Error("failed to initialize registry", "error", err)
		os.Exit(1)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		ProviderHandler:    handlers.NewProviderHandler(registry, logger),
		PatientHandler:     handlers.NewPatientHandler(registry, logger),
		AppointmentHandler: handlers.NewAppointmentHandler(registry, logger),
		MetricsHandler:     promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// openStore builds the blob store selected by CLINIC_STORE.
func openStore(ctx context.Context, cfg *appconfig.Config) (blobstore.Store, error) {
	switch cfg.StoreDriver {
	case appconfig.StoreMemory:
		return blobstore.NewMemory(), nil

	case appconfig.StoreRedis:
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		return blobstore.NewRedis(redis.NewClient(opts)), nil

	case appconfig.StoreDynamo:
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return blobstore.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTable), nil

	case appconfig.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		store := blobstore.NewPostgres(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
