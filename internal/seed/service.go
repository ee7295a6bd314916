// Package seed produces the initial demo dataset when the store holds no
// ledger document yet. Randomness and time are injected so tests can pin
// exact output shapes.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo-dev/depotops-backend/internal/fleet"
	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/pkg/config"
	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

// cargoPool is intentionally small so seeded receipts collide onto shared
// cargo ids and exercise aggregation.
var cargoPool = []string{
	"CG-1001", "CG-1002", "CG-1003", "CG-1004",
	"CG-1005", "CG-1006", "CG-1007", "CG-1008",
}

var demoUsers = []struct {
	Email    string
	Name     string
	Role     enums.UserRole
	Password string
}{
	{"admin@depotops.dev", "Demo Admin", enums.UserRoleAdmin, "admin123"},
	{"supervisor@depotops.dev", "Demo Supervisor", enums.UserRoleSupervisor, "super123"},
	{"viewer@depotops.dev", "Demo Viewer", enums.UserRoleViewer, "viewer123"},
}

// ServiceParams configure the seeder.
type ServiceParams struct {
	Store  ledger.Store
	Logger *logger.Logger
	Config config.SeedConfig
	Rand   *rand.Rand
	Now    func() time.Time
}

// Service seeds the store exactly once.
type Service struct {
	store ledger.Store
	logg  *logger.Logger
	cfg   config.SeedConfig
	rng   *rand.Rand
	now   func() time.Time
}

// NewService builds a seeder. Rand and Now are required so callers decide
// determinism explicitly.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, errors.New(errors.CodeInternal, "ledger store required")
	}
	if params.Rand == nil {
		return nil, errors.New(errors.CodeInternal, "random source required")
	}
	if params.Now == nil {
		return nil, errors.New(errors.CodeInternal, "clock required")
	}
	cfg := params.Config
	if cfg.Receipts <= 0 {
		cfg.Receipts = 24
	}
	if cfg.Dispatches <= 0 {
		cfg.Dispatches = 10
	}
	if cfg.Trips <= 0 {
		cfg.Trips = 8
	}
	return &Service{
		store: params.Store,
		logg:  params.Logger,
		cfg:   cfg,
		rng:   params.Rand,
		now:   params.Now,
	}, nil
}

// EnsureSeeded writes the demo dataset when no usable document exists.
// Idempotent: a store that already holds data is left untouched.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	_, err := s.store.Load(ctx)
	if err == nil {
		return nil
	}
	if !ledger.Absent(err) {
		return err
	}

	l := s.generate()
	if err := s.store.Save(ctx, l); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(ctx, "seeded demo ledger")
	}
	return nil
}

func (s *Service) generate() *ledger.Ledger {
	now := s.now().UTC()

	receipts := s.generateReceipts(now)
	dispatches := s.generateDispatches(now, receipts)
	inventory := s.deriveInventory(receipts, dispatches)
	trips := s.generateTrips(now)

	l := &ledger.Ledger{
		Receipts:    receipts,
		Dispatches:  dispatches,
		Inventory:   inventory,
		Trips:       trips,
		Credentials: map[string]ledger.Credential{},
	}
	for _, u := range demoUsers {
		l.Users = append(l.Users, ledger.User{
			ID:    s.newID(),
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		})
		l.Credentials[u.Email] = ledger.Credential{Password: u.Password}
	}
	return l
}

func (s *Service) generateReceipts(now time.Time) []ledger.Receipt {
	receipts := make([]ledger.Receipt, 0, s.cfg.Receipts)
	for i := 0; i < s.cfg.Receipts; i++ {
		vehicle := fleet.Pick(s.rng)
		qty := 5 + s.rng.Intn(76)
		perUnitKg := decimal.NewFromInt(int64(4 + s.rng.Intn(6)))
		arrived := now.Add(-time.Duration(1+s.rng.Intn(30*24)) * time.Hour)
		expiry := arrived.AddDate(0, 6, 0)
		inspection := arrived.Add(time.Duration(2+s.rng.Intn(46)) * time.Hour)

		receipts = append(receipts, ledger.Receipt{
			ID:             s.newID(),
			CargoID:        cargoPool[s.rng.Intn(len(cargoPool))],
			ArrivedAt:      arrived,
			IndentNumber:   fmt.Sprintf("IND-%05d", 10000+s.rng.Intn(90000)),
			Quantity:       qty,
			WeightKg:       perUnitKg.Mul(decimal.NewFromInt(int64(qty))),
			VehicleNumber:  vehicle.Number,
			DriverName:     vehicle.Driver,
			ExpiryDate:     &expiry,
			InspectionDate: &inspection,
			LabelPrinted:   s.rng.Intn(2) == 0,
		})
	}
	return receipts
}

func (s *Service) generateDispatches(now time.Time, receipts []ledger.Receipt) []ledger.Dispatch {
	if len(receipts) == 0 {
		return nil
	}
	dispatches := make([]ledger.Dispatch, 0, s.cfg.Dispatches)
	for i := 0; i < s.cfg.Dispatches; i++ {
		source := receipts[s.rng.Intn(len(receipts))]
		vehicle := fleet.Pick(s.rng)
		qty := 1 + s.rng.Intn(40)
		perUnitKg := decimal.NewFromInt(int64(4 + s.rng.Intn(6)))
		dispatched := source.ArrivedAt.Add(time.Duration(4+s.rng.Intn(72)) * time.Hour)
		if dispatched.After(now) {
			dispatched = now
		}

		dispatches = append(dispatches, ledger.Dispatch{
			ID:              s.newID(),
			CargoID:         source.CargoID,
			ContainerNumber: fmt.Sprintf("CONT-%04d", 1000+s.rng.Intn(9000)),
			SealNumber:      fmt.Sprintf("SEAL-%06d", s.rng.Intn(1000000)),
			PackedAt:        dispatched.Add(-2 * time.Hour),
			DispatchedAt:    dispatched,
			QtyPacked:       qty,
			TotalWeightKg:   perUnitKg.Mul(decimal.NewFromInt(int64(qty))),
			TruckNumber:     vehicle.Number,
			DriverName:      vehicle.Driver,
			InspectionsDone: s.rng.Intn(2) == 0,
		})
	}
	return dispatches
}

// deriveInventory folds the generated events, then replaces the default
// status with a random active one for lots still holding stock. Drained
// lots stay Dispatched.
func (s *Service) deriveInventory(receipts []ledger.Receipt, dispatches []ledger.Dispatch) []ledger.InventorySnapshot {
	snaps := ledger.RecomputeInventory(receipts, dispatches, nil)
	active := enums.ActiveCargoStatuses()
	for i := range snaps {
		if snaps[i].Quantity > 0 {
			snaps[i].Status = active[s.rng.Intn(len(active))]
		}
	}
	return snaps
}

func (s *Service) generateTrips(now time.Time) []ledger.Trip {
	trips := make([]ledger.Trip, 0, s.cfg.Trips)
	statuses := []enums.TripStatus{enums.TripStatusIdle, enums.TripStatusActive, enums.TripStatusCompleted}
	for i := 0; i < s.cfg.Trips; i++ {
		vehicle := fleet.Pick(s.rng)
		started := now.Add(-time.Duration(1+s.rng.Intn(14*24)) * time.Hour)
		status := statuses[s.rng.Intn(len(statuses))]

		trip := ledger.Trip{
			ID:            s.newID(),
			VehicleNumber: vehicle.Number,
			DriverName:    vehicle.Driver,
			StartedAt:     started,
			DistanceKm:    float64(20 + s.rng.Intn(480)),
			FuelLiters:    float64(5 + s.rng.Intn(90)),
			Status:        status,
		}
		if status == enums.TripStatusCompleted {
			ended := started.Add(time.Duration(1+s.rng.Intn(18)) * time.Hour)
			trip.EndedAt = &ended
			trip.ContainerNumber = fmt.Sprintf("CONT-%04d", 1000+s.rng.Intn(9000))
		}
		trips = append(trips, trip)
	}
	return trips
}

// newID draws uuids from the injected source so seeded output is fully
// reproducible for a fixed seed.
func (s *Service) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return uuid.New()
	}
	return id
}
