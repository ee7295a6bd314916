package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/internal/trips"
	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
)

type fakeStore struct {
	ledger *ledger.Ledger
	saves  int
}

func (f *fakeStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	if f.ledger == nil {
		return nil, errors.New(errors.CodeNotFound, "ledger document absent")
	}
	return f.ledger, nil
}

func (f *fakeStore) Save(ctx context.Context, l *ledger.Ledger) error {
	f.ledger = l
	f.saves++
	return nil
}

func (f *fakeStore) LoadSession(ctx context.Context) (*ledger.Session, error) {
	return nil, errors.New(errors.CodeNotFound, "no active session")
}

func (f *fakeStore) SaveSession(ctx context.Context, s *ledger.Session) error { return nil }
func (f *fakeStore) ClearSession(ctx context.Context) error                   { return nil }

func TestInventoryRefreshJobSavesOnDrift(t *testing.T) {
	arrived := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{ledger: &ledger.Ledger{
		Receipts: []ledger.Receipt{{
			ID:        uuid.New(),
			CargoID:   "CG-1001",
			ArrivedAt: arrived,
			Quantity:  50,
			WeightKg:  decimal.NewFromInt(300),
		}},
		// Stale snapshot: refresh must rebuild it from the movement log.
		Inventory: []ledger.InventorySnapshot{{
			CargoID:  "CG-1001",
			Status:   enums.CargoStatusOnSite,
			Quantity: 10,
			WeightKg: decimal.NewFromInt(60),
		}},
	}}

	job := NewInventoryRefreshJob(InventoryRefreshJobParams{
		Store:    store,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.Equal(t, "inventory_refresh", job.Name())
	require.Equal(t, time.Minute, job.Interval())

	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 1, store.saves)

	snap := store.ledger.SnapshotFor("CG-1001")
	require.NotNil(t, snap)
	require.Equal(t, 50, snap.Quantity)
	require.True(t, snap.WeightKg.Equal(decimal.NewFromInt(300)))
}

func TestInventoryRefreshJobSkipsSaveWhenConsistent(t *testing.T) {
	arrived := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	doc := &ledger.Ledger{
		Receipts: []ledger.Receipt{{
			ID:        uuid.New(),
			CargoID:   "CG-1001",
			ArrivedAt: arrived,
			Quantity:  50,
			WeightKg:  decimal.NewFromInt(300),
		}},
	}
	doc.Inventory = ledger.RecomputeInventory(doc.Receipts, doc.Dispatches, nil)
	store := &fakeStore{ledger: doc}

	job := NewInventoryRefreshJob(InventoryRefreshJobParams{
		Store:    store,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 0, store.saves)
}

func TestInventoryRefreshJobKeepsOverDispatchInterleaveIntact(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{ledger: &ledger.Ledger{}}
	reconciler, err := ledger.NewService(ledger.ServiceParams{Store: store})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = reconciler.ApplyReceipt(ctx, ledger.ReceiptInput{
		CargoID: "CG-1001", ArrivedAt: base, IndentNumber: "IND-1",
		Quantity: 10, WeightKg: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	_, err = reconciler.ApplyDispatch(ctx, ledger.DispatchInput{
		CargoID: "CG-1001", PackedAt: base, DispatchedAt: base.Add(time.Hour),
		QtyPacked: 20, TotalWeightKg: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	_, err = reconciler.ApplyReceipt(ctx, ledger.ReceiptInput{
		CargoID: "CG-1001", ArrivedAt: base.Add(2 * time.Hour), IndentNumber: "IND-2",
		Quantity: 5, WeightKg: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	store.saves = 0

	job := NewInventoryRefreshJob(InventoryRefreshJobParams{
		Store:    store,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.NoError(t, job.Run(ctx))
	require.Equal(t, 0, store.saves, "refresh must agree with the applied sequence and not rewrite it")

	snap := store.ledger.SnapshotFor("CG-1001")
	require.NotNil(t, snap)
	require.Equal(t, 5, snap.Quantity)
	require.Equal(t, enums.CargoStatusOnSite, snap.Status)
	require.True(t, snap.WeightKg.Equal(decimal.NewFromInt(50)))
}

func TestInventoryRefreshJobToleratesAbsentDocument(t *testing.T) {
	store := &fakeStore{}
	job := NewInventoryRefreshJob(InventoryRefreshJobParams{
		Store:    store,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 0, store.saves)
}

type fakeTrips struct {
	err   error
	ticks int
}

func (f *fakeTrips) List(ctx context.Context) ([]ledger.Trip, error) { return nil, nil }

func (f *fakeTrips) SimulateTick(ctx context.Context) (*ledger.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.ticks++
	return &ledger.Trip{ID: uuid.New(), Status: enums.TripStatusIdle}, nil
}

var _ trips.Service = (*fakeTrips)(nil)

func TestTripSimulationJobTicks(t *testing.T) {
	fake := &fakeTrips{}
	job := NewTripSimulationJob(TripSimulationJobParams{
		Trips:    fake,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.Equal(t, "trip_simulation", job.Name())
	require.Equal(t, time.Minute, job.Interval())

	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 1, fake.ticks)
}

func TestTripSimulationJobToleratesAbsentDocument(t *testing.T) {
	fake := &fakeTrips{err: errors.New(errors.CodeNotFound, "ledger document absent")}
	job := NewTripSimulationJob(TripSimulationJobParams{
		Trips:    fake,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.NoError(t, job.Run(context.Background()))
}

func TestTripSimulationJobPropagatesOtherErrors(t *testing.T) {
	fake := &fakeTrips{err: errors.New(errors.CodeInternal, "store unavailable")}
	job := NewTripSimulationJob(TripSimulationJobParams{
		Trips:    fake,
		Logger:   testLogger(),
		Interval: time.Minute,
	})
	require.Error(t, job.Run(context.Background()))
}
