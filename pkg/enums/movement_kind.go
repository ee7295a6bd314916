package enums

// MovementKind distinguishes inbound from outbound cargo movements in a
// merged movement history.
type MovementKind string

const (
	MovementKindReceipt  MovementKind = "receipt"
	MovementKindDispatch MovementKind = "dispatch"
)

// IsValid reports whether the value is a known MovementKind.
func (k MovementKind) IsValid() bool {
	return k == MovementKindReceipt || k == MovementKindDispatch
}
