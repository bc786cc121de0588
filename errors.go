package strel

import (
	"errors"
	"fmt"
)

// Sentinel errors for strel package.
var (
	// ErrInvalidSpecification is returned when a specification matches no grammar
	// rule or contains a malformed number. Every *SpecError matches it.
	ErrInvalidSpecification = errors.New("strel: invalid pattern specification")

	// ErrOutOfRange is returned when a shape parameter violates its bounds.
	ErrOutOfRange = errors.New("strel: parameter out of range")

	// ErrEmptyErosion is returned when the " - " operator erodes a pattern to nothing.
	ErrEmptyErosion = errors.New("strel: empty pattern erosion")

	// ErrMissingParameter is returned when a shape lacks a required parameter.
	ErrMissingParameter = errors.New("strel: missing parameter")

	// ErrEmptyPattern is returned when a set difference removes every point.
	ErrEmptyPattern = errors.New("strel: pattern must contain at least one point")

	// ErrUnknownElementType is returned for an element type the registry does not know.
	ErrUnknownElementType = errors.New("strel: unknown element type")
)

// errUnsupported is the cause reported when nothing in the grammar matched.
var errUnsupported = errors.New("unsupported pattern specification format")

// SpecError is returned when a specification cannot be turned into a pattern.
// Spec is the normalized specification text; Err is the underlying cause.
type SpecError struct {
	Spec string
	Err  error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("strel: illegal pattern specification %q: %v", e.Spec, e.Err)
}

func (e *SpecError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidSpecification as matching any SpecError.
func (e *SpecError) Is(target error) bool {
	return target == ErrInvalidSpecification
}
