package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

// Reconciler maintains the derived per-cargo inventory as receipts and
// dispatches are recorded, and answers audit queries over the movement
// history. All mutations are whole-document read-modify-write against the
// injected Store; callers are expected to be single-session, so no
// cross-writer locking is attempted here.
type Reconciler interface {
	ApplyReceipt(ctx context.Context, input ReceiptInput) (*Receipt, error)
	ApplyDispatch(ctx context.Context, input DispatchInput) (*Dispatch, error)
	MovementHistory(ctx context.Context, cargoID string) ([]MovementEvent, error)
	SetLabelPrinted(ctx context.Context, receiptID uuid.UUID, printed bool) error
	Snapshot(ctx context.Context, cargoID string) (*InventorySnapshot, error)
	ListReceipts(ctx context.Context) ([]Receipt, error)
	ListDispatches(ctx context.Context) ([]Dispatch, error)
	ListInventory(ctx context.Context) ([]InventorySnapshot, error)
}

// ServiceParams configure the reconciler.
type ServiceParams struct {
	Store  Store
	Logger *logger.Logger
}

type service struct {
	store Store
	logg  *logger.Logger
}

// NewService wires a reconciler over the provided store.
func NewService(params ServiceParams) (Reconciler, error) {
	if params.Store == nil {
		return nil, errors.New(errors.CodeInternal, "ledger store required")
	}
	return &service{store: params.Store, logg: params.Logger}, nil
}

// ApplyReceipt appends the receipt and folds it into the cargo lot's
// snapshot, creating the snapshot on first receipt for that lot.
func (s *service) ApplyReceipt(ctx context.Context, input ReceiptInput) (*Receipt, error) {
	if err := input.validateInput(); err != nil {
		return nil, err
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	receipt := input.toReceipt()
	l.Receipts = append(l.Receipts, receipt)

	snap := l.SnapshotFor(receipt.CargoID)
	if snap == nil {
		l.Inventory = append(l.Inventory, newSnapshot(receipt.CargoID))
		snap = &l.Inventory[len(l.Inventory)-1]
	}
	applyReceiptToSnapshot(snap, receipt)

	if err := s.store.Save(ctx, l); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithCargoID(ctx, receipt.CargoID), "receipt recorded")
	}
	return &receipt, nil
}

// ApplyDispatch appends the dispatch and decrements the lot's snapshot,
// clamped at zero. Dispatching a cargo id that was never received is
// recorded but leaves inventory untouched.
func (s *service) ApplyDispatch(ctx context.Context, input DispatchInput) (*Dispatch, error) {
	if err := input.validateInput(); err != nil {
		return nil, err
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	dispatch := input.toDispatch()
	l.Dispatches = append(l.Dispatches, dispatch)

	if snap := l.SnapshotFor(dispatch.CargoID); snap != nil {
		applyDispatchToSnapshot(snap, dispatch)
	} else if s.logg != nil {
		s.logg.Warn(s.logg.WithCargoID(ctx, dispatch.CargoID), "dispatch for unknown cargo lot; inventory unchanged")
	}

	if err := s.store.Save(ctx, l); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithCargoID(ctx, dispatch.CargoID), "dispatch recorded")
	}
	return &dispatch, nil
}

// MovementHistory merges the lot's receipts and dispatches into one
// chronological sequence. Read-only.
func (s *service) MovementHistory(ctx context.Context, cargoID string) ([]MovementEvent, error) {
	if cargoID == "" {
		return nil, errors.New(errors.CodeValidation, "cargo id is required")
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return mergeMovements(l.Receipts, l.Dispatches, cargoID), nil
}

// SetLabelPrinted flips the one mutable receipt field.
func (s *service) SetLabelPrinted(ctx context.Context, receiptID uuid.UUID, printed bool) error {
	if receiptID == uuid.Nil {
		return errors.New(errors.CodeValidation, "receipt id is required")
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	receipt := l.ReceiptByID(receiptID)
	if receipt == nil {
		return errors.New(errors.CodeNotFound, "receipt not found")
	}
	receipt.LabelPrinted = printed
	return s.store.Save(ctx, l)
}

// Snapshot returns the derived state for one cargo lot.
func (s *service) Snapshot(ctx context.Context, cargoID string) (*InventorySnapshot, error) {
	if cargoID == "" {
		return nil, errors.New(errors.CodeValidation, "cargo id is required")
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := l.SnapshotFor(cargoID)
	if snap == nil {
		return nil, errors.New(errors.CodeNotFound, "no inventory for cargo lot")
	}
	out := *snap
	return &out, nil
}

func (s *service) ListReceipts(ctx context.Context) ([]Receipt, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Receipt, len(l.Receipts))
	copy(out, l.Receipts)
	return out, nil
}

func (s *service) ListDispatches(ctx context.Context) ([]Dispatch, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Dispatch, len(l.Dispatches))
	copy(out, l.Dispatches)
	return out, nil
}

func (s *service) ListInventory(ctx context.Context) ([]InventorySnapshot, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InventorySnapshot, len(l.Inventory))
	copy(out, l.Inventory)
	return out, nil
}
