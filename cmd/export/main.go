package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dcastillo-dev/depotops-backend/internal/export"
	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/pkg/config"
	"github.com/dcastillo-dev/depotops-backend/pkg/db"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

func main() {
	collection := flag.String("collection", "inventory", "collection to export: receipts, dispatches, inventory, trips")
	out := flag.String("out", "", "output file path (stdout when empty)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "export"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "export",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(context.Background(), cfg, logg, *collection, *out); err != nil {
		logg.Error(context.Background(), "export failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, collection, out string) error {
	dbClient, err := db.New(ctx, cfg.Store, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing local store", err)
		}
	}()

	if err := dbClient.Ping(ctx); err != nil {
		return err
	}

	if err := dbClient.AutoMigrate(); err != nil {
		return err
	}

	store, err := ledger.NewStore(ledger.StoreParams{
		Client:      dbClient,
		Logger:      logg,
		DocumentKey: cfg.Store.DocumentKey,
		SessionKey:  cfg.Store.SessionKey,
	})
	if err != nil {
		return err
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return err
	}

	records, err := selectRecords(doc, collection)
	if err != nil {
		return err
	}

	writer := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		writer = f
	}

	if err := export.Write(writer, records); err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "collection", collection), "export written")
	return nil
}

func selectRecords(doc *ledger.Ledger, collection string) (export.Records, error) {
	switch collection {
	case "receipts":
		return export.ReceiptRecords(doc.Receipts), nil
	case "dispatches":
		return export.DispatchRecords(doc.Dispatches), nil
	case "inventory":
		return export.InventoryRecords(doc.Inventory), nil
	case "trips":
		return export.TripRecords(doc.Trips), nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}
