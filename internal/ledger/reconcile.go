package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
)

// applyReceiptToSnapshot folds one inbound event into a snapshot. The lot
// returns to On Site regardless of its prior status: new stock on hand.
func applyReceiptToSnapshot(s *InventorySnapshot, r Receipt) {
	s.Quantity += r.Quantity
	s.WeightKg = s.WeightKg.Add(r.WeightKg)
	s.Status = enums.CargoStatusOnSite
	s.LastMovementAt = r.ArrivedAt
}

// applyDispatchToSnapshot folds one outbound event into a snapshot.
// Quantity and weight are each clamped at zero; over-dispatch is absorbed,
// never rejected. A lot drained to zero is marked Dispatched, and this
// path never assigns any other status.
func applyDispatchToSnapshot(s *InventorySnapshot, d Dispatch) {
	s.Quantity -= d.QtyPacked
	if s.Quantity < 0 {
		s.Quantity = 0
	}
	s.WeightKg = s.WeightKg.Sub(d.TotalWeightKg)
	if s.WeightKg.IsNegative() {
		s.WeightKg = decimal.Zero
	}
	if s.Quantity == 0 {
		s.Status = enums.CargoStatusDispatched
	}
	s.LastMovementAt = d.DispatchedAt
}

// newSnapshot is the lazily-created state for a cargo id's first receipt.
func newSnapshot(cargoID string) InventorySnapshot {
	return InventorySnapshot{
		CargoID:  cargoID,
		Status:   enums.CargoStatusOnSite,
		Quantity: 0,
		WeightKg: decimal.Zero,
	}
}

// RecomputeInventory derives every snapshot by replaying the lot's merged
// movement history in chronological order with the same per-event clamping
// the apply path uses, so an over-dispatch absorbed mid-sequence never
// erases stock from a later receipt. Prior statuses are kept for lots that
// still hold stock (the refresh must not clobber a Bonded or In Transit
// label); drained lots become Dispatched. Cargo ids appearing only in
// dispatches never gain a snapshot. Order follows first appearance in the
// receipts collection.
func RecomputeInventory(receipts []Receipt, dispatches []Dispatch, prior []InventorySnapshot) []InventorySnapshot {
	priorByCargo := make(map[string]InventorySnapshot, len(prior))
	for _, snap := range prior {
		priorByCargo[snap.CargoID] = snap
	}

	var order []string
	seen := map[string]bool{}
	for _, r := range receipts {
		if !seen[r.CargoID] {
			seen[r.CargoID] = true
			order = append(order, r.CargoID)
		}
	}

	out := make([]InventorySnapshot, 0, len(order))
	for _, cargoID := range order {
		snap := newSnapshot(cargoID)
		for _, event := range mergeMovements(receipts, dispatches, cargoID) {
			switch event.Kind {
			case enums.MovementKindReceipt:
				snap.Quantity += event.QuantityDelta
				snap.WeightKg = snap.WeightKg.Add(event.WeightDeltaKg)
				snap.Status = enums.CargoStatusOnSite
			case enums.MovementKindDispatch:
				snap.Quantity += event.QuantityDelta
				if snap.Quantity < 0 {
					snap.Quantity = 0
				}
				snap.WeightKg = snap.WeightKg.Add(event.WeightDeltaKg)
				if snap.WeightKg.IsNegative() {
					snap.WeightKg = decimal.Zero
				}
				if snap.Quantity == 0 {
					snap.Status = enums.CargoStatusDispatched
				}
			}
			snap.LastMovementAt = event.Timestamp
		}

		if snap.Quantity > 0 {
			if existing, ok := priorByCargo[cargoID]; ok && existing.Status.IsValid() && existing.Status != enums.CargoStatusDispatched {
				snap.Status = existing.Status
			}
		}
		out = append(out, snap)
	}
	return out
}

// mergeMovements builds the chronological audit sequence for one cargo id.
// The sort is stable over the receipts-then-dispatches concatenation, so
// equal timestamps keep insertion order with receipts first.
func mergeMovements(receipts []Receipt, dispatches []Dispatch, cargoID string) []MovementEvent {
	var events []MovementEvent
	for _, r := range receipts {
		if r.CargoID != cargoID {
			continue
		}
		events = append(events, MovementEvent{
			Kind:          enums.MovementKindReceipt,
			RefID:         r.ID,
			CargoID:       r.CargoID,
			Timestamp:     r.ArrivedAt,
			QuantityDelta: r.Quantity,
			WeightDeltaKg: r.WeightKg,
		})
	}
	for _, d := range dispatches {
		if d.CargoID != cargoID {
			continue
		}
		events = append(events, MovementEvent{
			Kind:          enums.MovementKindDispatch,
			RefID:         d.ID,
			CargoID:       d.CargoID,
			Timestamp:     d.DispatchedAt,
			QuantityDelta: -d.QtyPacked,
			WeightDeltaKg: d.TotalWeightKg.Neg(),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}
