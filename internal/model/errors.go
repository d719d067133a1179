package model

import "errors"

// Sentinel errors for the failure taxonomy. Callers match with errors.Is.
var (
	// ErrInvalidArgument covers unrecognized variable names, unknown
	// strategy tags and out-of-range scalar parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrShapeMismatch means the load and reference-yield series do not
	// share the same hourly index.
	ErrShapeMismatch = errors.New("series shape mismatch")

	// ErrDegenerateInput means a quantity that appears in a denominator
	// (total load, total PV energy) sums to zero.
	ErrDegenerateInput = errors.New("degenerate input")
)
