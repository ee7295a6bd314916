package enums

import "fmt"

// CargoStatus describes where a cargo lot sits in the warehouse lifecycle.
type CargoStatus string

const (
	CargoStatusBonded     CargoStatus = "Bonded"
	CargoStatusFAK        CargoStatus = "FAK"
	CargoStatusOnSite     CargoStatus = "On Site"
	CargoStatusInTransit  CargoStatus = "In Transit"
	CargoStatusDispatched CargoStatus = "Dispatched"
)

var validCargoStatuses = []CargoStatus{
	CargoStatusBonded,
	CargoStatusFAK,
	CargoStatusOnSite,
	CargoStatusInTransit,
	CargoStatusDispatched,
}

// ActiveCargoStatuses lists the statuses a lot with stock on hand may carry.
func ActiveCargoStatuses() []CargoStatus {
	return []CargoStatus{
		CargoStatusBonded,
		CargoStatusFAK,
		CargoStatusOnSite,
		CargoStatusInTransit,
	}
}

// String implements fmt.Stringer.
func (s CargoStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CargoStatus.
func (s CargoStatus) IsValid() bool {
	for _, candidate := range validCargoStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCargoStatus converts raw input into a CargoStatus.
func ParseCargoStatus(value string) (CargoStatus, error) {
	for _, candidate := range validCargoStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cargo status %q", value)
}
