// Package trips manages vehicle transport trips. Trips are independent of
// the cargo ledger beyond an optional container-number label.
package trips

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/dcastillo-dev/depotops-backend/internal/fleet"
	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

// Service lists trips and appends simulated ones on the periodic tick.
type Service interface {
	List(ctx context.Context) ([]ledger.Trip, error)
	SimulateTick(ctx context.Context) (*ledger.Trip, error)
}

// ServiceParams configure the trips service.
type ServiceParams struct {
	Store  ledger.Store
	Logger *logger.Logger
	Rand   *rand.Rand
	Now    func() time.Time
}

type service struct {
	store ledger.Store
	logg  *logger.Logger
	rng   *rand.Rand
	now   func() time.Time
}

// NewService wires the trips service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, errors.New(errors.CodeInternal, "ledger store required")
	}
	if params.Rand == nil {
		return nil, errors.New(errors.CodeInternal, "random source required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{store: params.Store, logg: params.Logger, rng: params.Rand, now: now}, nil
}

func (s *service) List(ctx context.Context) ([]ledger.Trip, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.Trip, len(l.Trips))
	copy(out, l.Trips)
	return out, nil
}

// SimulateTick appends one randomized trip. Completed trips always end at
// or after their start.
func (s *service) SimulateTick(ctx context.Context) (*ledger.Trip, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	trip := s.randomTrip()
	l.Trips = append(l.Trips, trip)
	if err := s.store.Save(ctx, l); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "vehicle", trip.VehicleNumber), "simulated trip recorded")
	}
	return &trip, nil
}

func (s *service) randomTrip() ledger.Trip {
	vehicle := fleet.Pick(s.rng)
	statuses := []enums.TripStatus{enums.TripStatusIdle, enums.TripStatusActive, enums.TripStatusCompleted}
	status := statuses[s.rng.Intn(len(statuses))]
	started := s.now().UTC().Add(-time.Duration(s.rng.Intn(6)) * time.Hour)

	trip := ledger.Trip{
		ID:            uuid.New(),
		VehicleNumber: vehicle.Number,
		DriverName:    vehicle.Driver,
		StartedAt:     started,
		DistanceKm:    float64(10 + s.rng.Intn(400)),
		FuelLiters:    float64(4 + s.rng.Intn(70)),
		Status:        status,
	}
	if status == enums.TripStatusCompleted {
		ended := started.Add(time.Duration(s.rng.Intn(12)) * time.Hour)
		trip.EndedAt = &ended
		trip.ContainerNumber = fmt.Sprintf("CONT-%04d", 1000+s.rng.Intn(9000))
	}
	return trip
}
