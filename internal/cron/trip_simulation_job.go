package cron

import (
	"context"
	"time"

	"github.com/dcastillo-dev/depotops-backend/internal/trips"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

// TripSimulationJobParams configure the periodic trip tick.
type TripSimulationJobParams struct {
	Trips    trips.Service
	Logger   *logger.Logger
	Interval time.Duration
}

// TripSimulationJob appends one simulated trip per tick so the fleet view
// keeps moving during demos.
type TripSimulationJob struct {
	trips    trips.Service
	logg     *logger.Logger
	interval time.Duration
}

// NewTripSimulationJob builds the trip tick job.
func NewTripSimulationJob(params TripSimulationJobParams) *TripSimulationJob {
	return &TripSimulationJob{
		trips:    params.Trips,
		logg:     params.Logger,
		interval: params.Interval,
	}
}

func (j *TripSimulationJob) Name() string { return "trip_simulation" }

func (j *TripSimulationJob) Interval() time.Duration { return j.interval }

func (j *TripSimulationJob) Run(ctx context.Context) error {
	trip, err := j.trips.SimulateTick(ctx)
	if err != nil {
		if errors.HasCode(err, errors.CodeNotFound) {
			j.logg.Info(ctx, "ledger document absent; skipping trip tick")
			return nil
		}
		return err
	}
	j.logg.Info(j.logg.WithField(ctx, "trip_id", trip.ID.String()), "trip tick applied")
	return nil
}
