package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dcastillo-dev/depotops-backend/internal/cron"
	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/internal/seed"
	"github.com/dcastillo-dev/depotops-backend/internal/trips"
	"github.com/dcastillo-dev/depotops-backend/pkg/config"
	"github.com/dcastillo-dev/depotops-backend/pkg/db"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
	"github.com/dcastillo-dev/depotops-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.Store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open local store", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing local store", err)
		}
	}()

	if err := dbClient.Ping(context.Background()); err != nil {
		logg.Error(context.Background(), "local store is not reachable", err)
		os.Exit(1)
	}

	if err := dbClient.AutoMigrate(); err != nil {
		logg.Error(context.Background(), "failed to migrate document tables", err)
		os.Exit(1)
	}

	store, err := ledger.NewStore(ledger.StoreParams{
		Client:      dbClient,
		Logger:      logg,
		DocumentKey: cfg.Store.DocumentKey,
		SessionKey:  cfg.Store.SessionKey,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create document store", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(randSeed(cfg.Seed.RandSeed)))

	seeder, err := seed.NewService(seed.ServiceParams{
		Store:  store,
		Logger: logg,
		Config: cfg.Seed,
		Rand:   rng,
		Now:    time.Now,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create seeder", err)
		os.Exit(1)
	}
	if err := seeder.EnsureSeeded(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed ledger", err)
		os.Exit(1)
	}

	tripService, err := trips.NewService(trips.ServiceParams{
		Store:  store,
		Logger: logg,
		Rand:   rng,
		Now:    time.Now,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create trips service", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(
		cron.NewInventoryRefreshJob(cron.InventoryRefreshJobParams{
			Store:    store,
			Logger:   logg,
			Interval: cfg.Scheduler.InventoryRefreshInterval,
		}),
		cron.NewTripSimulationJob(cron.TripSimulationJobParams{
			Trips:    tripService,
			Logger:   logg,
			Interval: cfg.Scheduler.TripTickInterval,
		}),
	)

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     cron.NewLocalLock(),
		Metrics:  metrics.NewJobMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "worker shutting down gracefully")
}

func randSeed(configured int64) int64 {
	if configured != 0 {
		return configured
	}
	return time.Now().UnixNano()
}
