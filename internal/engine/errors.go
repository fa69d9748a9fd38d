package engine

import "errors"

// Domain errors for body construction and stepping.
var (
	// ErrNonPositiveMass indicates a body was constructed with mass <= 0.
	ErrNonPositiveMass = errors.New("engine: mass must be positive")

	// ErrNonPositiveRadius indicates an explicitly supplied radius <= 0.
	ErrNonPositiveRadius = errors.New("engine: radius must be positive")

	// ErrNonPositiveStep indicates Step was called with dt <= 0.
	ErrNonPositiveStep = errors.New("engine: dt must be positive")
)
