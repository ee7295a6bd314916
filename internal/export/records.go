// Package export renders record collections as CSV.
package export

import (
	"strconv"
	"time"

	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
)

// Records is a tabular view of a record collection. Header names the
// columns; Rows returns one string row per record in collection order.
type Records interface {
	Header() []string
	Rows() [][]string
}

// ReceiptRecords renders receipts.
type ReceiptRecords []ledger.Receipt

func (r ReceiptRecords) Header() []string {
	return []string{
		"id", "cargo_id", "arrived_at", "indent_number", "quantity",
		"weight_kg", "vehicle_number", "driver_name", "expiry_date",
		"inspection_date", "comment", "label_printed",
	}
}

func (r ReceiptRecords) Rows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, rec := range r {
		rows = append(rows, []string{
			rec.ID.String(),
			rec.CargoID,
			formatTime(rec.ArrivedAt),
			rec.IndentNumber,
			strconv.Itoa(rec.Quantity),
			rec.WeightKg.String(),
			rec.VehicleNumber,
			rec.DriverName,
			formatTimePtr(rec.ExpiryDate),
			formatTimePtr(rec.InspectionDate),
			rec.Comment,
			strconv.FormatBool(rec.LabelPrinted),
		})
	}
	return rows
}

// DispatchRecords renders dispatches.
type DispatchRecords []ledger.Dispatch

func (d DispatchRecords) Header() []string {
	return []string{
		"id", "cargo_id", "container_number", "seal_number", "packed_at",
		"dispatched_at", "qty_packed", "total_weight_kg", "truck_number",
		"driver_name", "inspections_done",
	}
}

func (d DispatchRecords) Rows() [][]string {
	rows := make([][]string, 0, len(d))
	for _, rec := range d {
		rows = append(rows, []string{
			rec.ID.String(),
			rec.CargoID,
			rec.ContainerNumber,
			rec.SealNumber,
			formatTime(rec.PackedAt),
			formatTime(rec.DispatchedAt),
			strconv.Itoa(rec.QtyPacked),
			rec.TotalWeightKg.String(),
			rec.TruckNumber,
			rec.DriverName,
			strconv.FormatBool(rec.InspectionsDone),
		})
	}
	return rows
}

// InventoryRecords renders inventory snapshots.
type InventoryRecords []ledger.InventorySnapshot

func (i InventoryRecords) Header() []string {
	return []string{"cargo_id", "status", "quantity", "weight_kg", "last_movement_at"}
}

func (i InventoryRecords) Rows() [][]string {
	rows := make([][]string, 0, len(i))
	for _, snap := range i {
		rows = append(rows, []string{
			snap.CargoID,
			snap.Status.String(),
			strconv.Itoa(snap.Quantity),
			snap.WeightKg.String(),
			formatTime(snap.LastMovementAt),
		})
	}
	return rows
}

// TripRecords renders trips.
type TripRecords []ledger.Trip

func (t TripRecords) Header() []string {
	return []string{
		"id", "vehicle_number", "driver_name", "started_at", "ended_at",
		"distance_km", "fuel_liters", "status", "container_number",
	}
}

func (t TripRecords) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, trip := range t {
		rows = append(rows, []string{
			trip.ID.String(),
			trip.VehicleNumber,
			trip.DriverName,
			formatTime(trip.StartedAt),
			formatTimePtr(trip.EndedAt),
			strconv.FormatFloat(trip.DistanceKm, 'f', -1, 64),
			strconv.FormatFloat(trip.FuelLiters, 'f', -1, 64),
			trip.Status.String(),
			trip.ContainerNumber,
		})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
