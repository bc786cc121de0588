package pattern

import "errors"

// Sentinel errors for pattern package.
var (
	// ErrEmptyPattern is returned when an operation would produce a pattern without points.
	ErrEmptyPattern = errors.New("pattern: pattern must contain at least one point")

	// ErrDimensionMismatch is returned when points or patterns of different dimensions are combined.
	ErrDimensionMismatch = errors.New("pattern: dimension mismatch")

	// ErrTooManyDimensions is returned when a point has no coordinates or more than MaxDimCount.
	ErrTooManyDimensions = errors.New("pattern: unsupported number of dimensions")

	// ErrInvalidGrid is returned when a uniform grid has a non-positive or non-finite step.
	ErrInvalidGrid = errors.New("pattern: grid steps must be positive and finite")

	// ErrNegativeMultiplier is returned by MinkowskiMultiple for a negative repeat count.
	ErrNegativeMultiplier = errors.New("pattern: negative Minkowski multiplier")
)
