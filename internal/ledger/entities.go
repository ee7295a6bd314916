package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
)

// Receipt records one inbound cargo event. Immutable once created except
// for the LabelPrinted flag.
type Receipt struct {
	ID             uuid.UUID       `json:"id"`
	CargoID        string          `json:"cargo_id"`
	ArrivedAt      time.Time       `json:"arrived_at"`
	IndentNumber   string          `json:"indent_number"`
	Quantity       int             `json:"quantity"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	VehicleNumber  string          `json:"vehicle_number"`
	DriverName     string          `json:"driver_name"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	InspectionDate *time.Time      `json:"inspection_date,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	LabelPrinted   bool            `json:"label_printed"`
}

// Dispatch records one outbound cargo event. Immutable once created.
type Dispatch struct {
	ID              uuid.UUID       `json:"id"`
	CargoID         string          `json:"cargo_id"`
	ContainerNumber string          `json:"container_number"`
	SealNumber      string          `json:"seal_number"`
	PackedAt        time.Time       `json:"packed_at"`
	DispatchedAt    time.Time       `json:"dispatched_at"`
	QtyPacked       int             `json:"qty_packed"`
	TotalWeightKg   decimal.Decimal `json:"total_weight_kg"`
	TruckNumber     string          `json:"truck_number"`
	DriverName      string          `json:"driver_name"`
	InspectionsDone bool            `json:"inspections_done"`
}

// InventorySnapshot is the derived on-hand state for one cargo lot.
// Quantity and weight are clamped at zero; a lot whose quantity reaches
// zero is marked Dispatched.
type InventorySnapshot struct {
	CargoID        string            `json:"cargo_id"`
	Status         enums.CargoStatus `json:"status"`
	Quantity       int               `json:"quantity"`
	WeightKg       decimal.Decimal   `json:"weight_kg"`
	LastMovementAt time.Time         `json:"last_movement_at"`
}

// Trip records a vehicle transport run. Independent of the cargo ledger
// beyond the optional container number label.
type Trip struct {
	ID              uuid.UUID        `json:"id"`
	VehicleNumber   string           `json:"vehicle_number"`
	DriverName      string           `json:"driver_name"`
	StartedAt       time.Time        `json:"started_at"`
	EndedAt         *time.Time       `json:"ended_at,omitempty"`
	DistanceKm      float64          `json:"distance_km"`
	FuelLiters      float64          `json:"fuel_liters"`
	Status          enums.TripStatus `json:"status"`
	ContainerNumber string           `json:"container_number,omitempty"`
}

// User is a dashboard identity.
type User struct {
	ID    uuid.UUID      `json:"id"`
	Email string         `json:"email"`
	Name  string         `json:"name"`
	Role  enums.UserRole `json:"role"`
}

// Credential is the demo-grade password record for one email. Password is
// stored in plaintext by design; TempPassword is a one-time credential
// that is promoted to the permanent password on first successful use.
type Credential struct {
	Password     string `json:"password"`
	TempPassword string `json:"temp_password,omitempty"`
}

// Ledger is the whole persisted dashboard state. Saves replace the entire
// document; nothing outside the store holds an authoritative copy.
type Ledger struct {
	Receipts    []Receipt             `json:"receipts"`
	Dispatches  []Dispatch            `json:"dispatches"`
	Inventory   []InventorySnapshot   `json:"inventory"`
	Trips       []Trip                `json:"trips"`
	Users       []User                `json:"users"`
	Credentials map[string]Credential `json:"credentials"`
}

// Session is the persisted authenticated identity.
type Session struct {
	Email string         `json:"email"`
	Name  string         `json:"name"`
	Role  enums.UserRole `json:"role"`
}

// MovementEvent is one row of a cargo lot's merged audit history.
// Receipts contribute positive deltas, dispatches negative ones.
type MovementEvent struct {
	Kind          enums.MovementKind `json:"kind"`
	RefID         uuid.UUID          `json:"ref_id"`
	CargoID       string             `json:"cargo_id"`
	Timestamp     time.Time          `json:"timestamp"`
	QuantityDelta int                `json:"quantity_delta"`
	WeightDeltaKg decimal.Decimal    `json:"weight_delta_kg"`
}

// SnapshotFor returns a pointer into the ledger's inventory for the given
// cargo id, or nil when the lot has never been received.
func (l *Ledger) SnapshotFor(cargoID string) *InventorySnapshot {
	for i := range l.Inventory {
		if l.Inventory[i].CargoID == cargoID {
			return &l.Inventory[i]
		}
	}
	return nil
}

// ReceiptByID returns a pointer to the stored receipt, or nil.
func (l *Ledger) ReceiptByID(id uuid.UUID) *Receipt {
	for i := range l.Receipts {
		if l.Receipts[i].ID == id {
			return &l.Receipts[i]
		}
	}
	return nil
}

// UserByEmail returns the stored user for an email, or nil.
func (l *Ledger) UserByEmail(email string) *User {
	for i := range l.Users {
		if l.Users[i].Email == email {
			return &l.Users[i]
		}
	}
	return nil
}
