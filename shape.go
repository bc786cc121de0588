package strel

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/strel/pattern"
)

// Shape is a named structuring element family parameterized by one size.
type Shape int

const (
	// ShapeSphere is the lattice ball of diameter about size.
	ShapeSphere Shape = iota
	// ShapeCube is the size×size×... box centered at the origin.
	ShapeCube
)

// Large circle approximation: a disk of diameter d > optimizedCircleStep is
// built as a Minkowski multiple of a disk of diameter optimizedCircleBase.
const (
	optimizedCircleStep = 16
	optimizedCircleBase = 16.4
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "SPHERE"
	case ShapeCube:
		return "CUBE"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape returns the shape with the given name. CIRCLE and SQUARE are
// accepted as aliases; case is ignored.
func ParseShape(name string) (Shape, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SPHERE", "CIRCLE":
		return ShapeSphere, nil
	case "CUBE", "SQUARE":
		return ShapeCube, nil
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrOutOfRange, name)
}

// NewShapePattern returns the pattern of the shape with the given size in
// dimCount dimensions.
//
// With minkowskiOptimize set, a sphere of size above 16 is approximated by a
// Minkowski sum of ⌊size/16⌋ balls of diameter 16.4 and one smaller ball, so
// that morphology can apply the small balls one after another.
func NewShapePattern(shape Shape, dimCount, size int, minkowskiOptimize bool) (pattern.Pattern, error) {
	return newShapePattern(Logger(), shape, dimCount, size, minkowskiOptimize)
}

func (r *Registry) shapePattern(shape Shape, dimCount, size int, minkowskiOptimize bool) (pattern.Pattern, error) {
	return newShapePattern(r.logger(), shape, dimCount, size, minkowskiOptimize)
}

func newShapePattern(log *slog.Logger, shape Shape, dimCount, size int, minkowskiOptimize bool) (pattern.Pattern, error) {
	if dimCount < 1 || dimCount > pattern.MaxDimCount {
		return nil, fmt.Errorf("%w: %d dimensions", pattern.ErrTooManyDimensions, dimCount)
	}
	if size < 0 {
		return nil, outOfRange("negative pattern size %d", size)
	}
	origin := pattern.Origin(dimCount)
	switch shape {
	case ShapeSphere:
		if minkowskiOptimize && size > optimizedCircleStep {
			return largeSphere(log, origin, size)
		}
		return pattern.NewSphere(origin, max(0, 0.5*float64(size+1)-0.2))
	case ShapeCube:
		if size == 0 {
			return nil, outOfRange("zero cube size")
		}
		side := pattern.IR(int64(-size/2), int64(-size/2+size-1))
		sides := make([]pattern.IRange, dimCount)
		for k := range sides {
			sides[k] = side
		}
		return pattern.NewIntegerRect(sides...)
	}
	return nil, fmt.Errorf("%w: unknown shape %v", ErrOutOfRange, shape)
}

// largeSphere decomposes a sphere of the given size into small balls.
// A remainder of 1 is covered by widening one base ball instead of adding a
// ball of diameter 1, so that the projection of the result does not grow.
func largeSphere(log *slog.Logger, origin pattern.Point, size int) (pattern.Pattern, error) {
	base, err := pattern.NewSphere(origin, 0.5*optimizedCircleBase)
	if err != nil {
		return nil, err
	}
	multiplier := size / optimizedCircleStep
	remainder := size % optimizedCircleStep
	log.Debug("strel: approximating large sphere",
		"size", size, "dims", origin.Dim(), "base", optimizedCircleBase,
		"multiplier", multiplier, "remainder", remainder)

	switch remainder {
	case 0:
		return pattern.MinkowskiMultiple(base, multiplier)
	case 1:
		plus1, err := pattern.NewSphere(origin, 0.5*(optimizedCircleBase+1))
		if err != nil {
			return nil, err
		}
		if multiplier == 1 {
			return plus1, nil
		}
		rest, err := pattern.MinkowskiMultiple(base, multiplier-1)
		if err != nil {
			return nil, err
		}
		return pattern.MinkowskiSum(rest, plus1)
	default:
		multiple, err := pattern.MinkowskiMultiple(base, multiplier)
		if err != nil {
			return nil, err
		}
		extra, err := pattern.NewSphere(origin, 0.5*float64(remainder))
		if err != nil {
			return nil, err
		}
		return pattern.MinkowskiSum(multiple, extra)
	}
}
