package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

// InventoryRefreshJobParams configure the periodic inventory refresh.
type InventoryRefreshJobParams struct {
	Store    ledger.Store
	Logger   *logger.Logger
	Interval time.Duration
}

// InventoryRefreshJob recomputes inventory snapshots from the movement log
// and persists the document when the derived state drifted.
type InventoryRefreshJob struct {
	store    ledger.Store
	logg     *logger.Logger
	interval time.Duration
}

// NewInventoryRefreshJob builds the refresh job.
func NewInventoryRefreshJob(params InventoryRefreshJobParams) *InventoryRefreshJob {
	return &InventoryRefreshJob{
		store:    params.Store,
		logg:     params.Logger,
		interval: params.Interval,
	}
}

func (j *InventoryRefreshJob) Name() string { return "inventory_refresh" }

func (j *InventoryRefreshJob) Interval() time.Duration { return j.interval }

// Run reconciles the snapshots against the receipt and dispatch log. A
// missing document is not an error; the seeder owns first-write.
func (j *InventoryRefreshJob) Run(ctx context.Context) error {
	doc, err := j.store.Load(ctx)
	if err != nil {
		if ledger.Absent(err) {
			j.logg.Info(ctx, "ledger document absent; nothing to refresh")
			return nil
		}
		return err
	}

	recomputed := ledger.RecomputeInventory(doc.Receipts, doc.Dispatches, doc.Inventory)
	drifted, err := inventoryDrifted(doc.Inventory, recomputed)
	if err != nil {
		return err
	}
	if !drifted {
		return nil
	}

	doc.Inventory = recomputed
	if err := j.store.Save(ctx, doc); err != nil {
		return err
	}
	j.logg.Info(j.logg.WithField(ctx, "snapshots", len(recomputed)), "inventory snapshots refreshed")
	return nil
}

func inventoryDrifted(current, recomputed []ledger.InventorySnapshot) (bool, error) {
	a, err := json.Marshal(current)
	if err != nil {
		return false, err
	}
	b, err := json.Marshal(recomputed)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(a, b), nil
}
