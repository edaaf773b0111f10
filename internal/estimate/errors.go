package estimate

import "errors"

var (
	// ErrEstimateNotFound is returned when an estimate ID does not exist.
	ErrEstimateNotFound = errors.New("estimate not found")

	// ErrLineItemNotFound is returned when a line item ID does not exist.
	ErrLineItemNotFound = errors.New("line item not found")

	// ErrInvalidEstimate is returned when estimate fields fail validation.
	ErrInvalidEstimate = errors.New("invalid estimate")

	// ErrNoAssemblyMatch is returned when no installation assembly matches
	// a device type, not even by partial name.
	ErrNoAssemblyMatch = errors.New("no assembly match for device type")
)
