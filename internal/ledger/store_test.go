package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo-dev/depotops-backend/pkg/config"
	"github.com/dcastillo-dev/depotops-backend/pkg/db"
	"github.com/dcastillo-dev/depotops-backend/pkg/db/models"
	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
)

func newTestStore(t *testing.T) (Store, *db.Client) {
	t.Helper()
	client, err := db.New(context.Background(), config.StoreConfig{
		Path:         ":memory:",
		DocumentKey:  "depotops.ledger.v1",
		SessionKey:   "depotops.session.v1",
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, client.AutoMigrate())
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewStore(StoreParams{
		Client:      client,
		DocumentKey: "depotops.ledger.v1",
		SessionKey:  "depotops.session.v1",
	})
	require.NoError(t, err)
	return store, client
}

func TestStoreLoadAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background())
	require.True(t, errors.HasCode(err, errors.CodeNotFound), "got %v", err)
	require.True(t, Absent(err))
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	arrived := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	in := &Ledger{
		Receipts: []Receipt{mkReceipt("CG-1", 50, 300, arrived)},
		Inventory: []InventorySnapshot{{
			CargoID:        "CG-1",
			Status:         enums.CargoStatusOnSite,
			Quantity:       50,
			WeightKg:       decimal.NewFromInt(300),
			LastMovementAt: arrived,
		}},
		Users:       []User{{Email: "admin@depotops.dev", Name: "Demo Admin", Role: enums.UserRoleAdmin}},
		Credentials: map[string]Credential{"admin@depotops.dev": {Password: "admin123"}},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out.Receipts, 1)
	require.Equal(t, "CG-1", out.Receipts[0].CargoID)
	require.True(t, out.Receipts[0].WeightKg.Equal(decimal.NewFromInt(300)))
	require.Equal(t, enums.CargoStatusOnSite, out.Inventory[0].Status)
	require.Equal(t, "admin123", out.Credentials["admin@depotops.dev"].Password)
}

func TestStoreSaveReplacesWholeDocument(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := &Ledger{Receipts: []Receipt{mkReceipt("CG-1", 1, 10, time.Now().UTC())}}
	require.NoError(t, store.Save(ctx, first))

	second := &Ledger{Trips: []Trip{{VehicleNumber: "MH-12-4455", Status: enums.TripStatusIdle, StartedAt: time.Now().UTC()}}}
	require.NoError(t, store.Save(ctx, second))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, out.Receipts, "save must replace, not merge")
	require.Len(t, out.Trips, 1)
}

func TestStoreCorruptDocumentFailsSoft(t *testing.T) {
	store, client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.DB().Create(&models.LedgerDocument{
		Key:     "depotops.ledger.v1",
		Payload: []byte("{not json"),
	}).Error)

	_, err := store.Load(ctx)
	require.True(t, errors.HasCode(err, errors.CodeCorruptDoc), "got %v", err)
	require.True(t, Absent(err), "corrupt documents must count as absent so callers reseed")
}

func TestStoreSessionLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadSession(ctx)
	require.True(t, errors.HasCode(err, errors.CodeNotFound))

	session := &Session{Email: "viewer@depotops.dev", Name: "Demo Viewer", Role: enums.UserRoleViewer}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, session.Email, got.Email)
	require.Equal(t, enums.UserRoleViewer, got.Role)

	require.NoError(t, store.ClearSession(ctx))
	_, err = store.LoadSession(ctx)
	require.True(t, errors.HasCode(err, errors.CodeNotFound))
}
