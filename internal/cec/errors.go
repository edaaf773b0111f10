package cec

import "errors"

// Domain errors for the cec package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, cec.ErrInvalidInput) {
//	    // upstream detection produced garbage; fix it there
//	}
var (
	// ErrInvalidInput is returned when a numeric input is negative or
	// non-finite. The caller should treat this as a defect in the upstream
	// detection step, not a recoverable condition.
	ErrInvalidInput = errors.New("cec: invalid input")
)
