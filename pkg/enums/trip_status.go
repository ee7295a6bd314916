package enums

import "fmt"

// TripStatus tracks the lifecycle of a vehicle transport trip.
type TripStatus string

const (
	TripStatusIdle      TripStatus = "Idle"
	TripStatusActive    TripStatus = "Active"
	TripStatusCompleted TripStatus = "Completed"
)

var validTripStatuses = []TripStatus{
	TripStatusIdle,
	TripStatusActive,
	TripStatusCompleted,
}

// String implements fmt.Stringer.
func (s TripStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TripStatus.
func (s TripStatus) IsValid() bool {
	for _, candidate := range validTripStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTripStatus converts raw input into a TripStatus.
func ParseTripStatus(value string) (TripStatus, error) {
	for _, candidate := range validTripStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trip status %q", value)
}
