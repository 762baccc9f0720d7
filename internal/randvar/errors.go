package randvar

import "errors"

// Domain errors for random-variable operations.
var (
	// ErrMode indicates an operation that is not valid for the
	// variable's construction mode (e.g. drawing fresh samples from an
	// empirical record).
	ErrMode = errors.New("randvar: operation not valid in this mode")

	// ErrSizeMismatch indicates a requested sample count that disagrees
	// with an empirical variable's fixed record size.
	ErrSizeMismatch = errors.New("randvar: sample count does not match empirical record")

	// ErrShapeMismatch indicates samples of inconsistent shape.
	ErrShapeMismatch = errors.New("randvar: sample shape mismatch")

	// ErrEmptySamples indicates an empirical record with no samples.
	ErrEmptySamples = errors.New("randvar: empirical record must contain at least one sample")

	// ErrInvalidSample indicates a draw containing NaN or Inf.
	ErrInvalidSample = errors.New("randvar: sample contains NaN or Inf")
)
