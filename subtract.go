package strel

import (
	"errors"
	"fmt"

	"github.com/gogpu/strel/pattern"
)

// IsRectangularInteger reports whether p is a uniform grid whose index set is
// a full box and whose points are all integer.
func IsRectangularInteger(p pattern.Pattern) bool {
	g, ok := p.(pattern.UniformGrid)
	return ok && g.IsActuallyRectangular() && p.IsSurelyInteger()
}

// Subtract returns the points of a, rounded to the lattice, that are not
// points of b. Two integer boxes of the same dimension are subtracted by
// cutting a into at most 2·D boxes around b, without enumerating points.
// Other patterns on the unit lattice are subtracted row by row.
func Subtract(a, b pattern.Pattern) (pattern.Pattern, error) {
	if a.DimCount() != b.DimCount() {
		return nil, fmt.Errorf("%w: %dD \\ %dD", pattern.ErrDimensionMismatch, a.DimCount(), b.DimCount())
	}
	if isIntegerBox(a) && isIntegerBox(b) {
		return subtractBoxes(a, b)
	}
	if ra, ok := pattern.UnitRows(a); ok {
		if rb, ok := pattern.UnitRows(b); ok {
			return subtractRows(ra, rb)
		}
	}
	return subtractPoints(a, b)
}

// isIntegerBox reports whether p covers every lattice point of its bounding box.
func isIntegerBox(p pattern.Pattern) bool {
	if !IsRectangularInteger(p) {
		return false
	}
	for _, s := range p.(pattern.UniformGrid).Steps() {
		if s != 1 {
			return false
		}
	}
	return true
}

func subtractBoxes(a, b pattern.Pattern) (pattern.Pattern, error) {
	frame := pattern.RoundedArea(a).Difference(pattern.RoundedArea(b))
	if len(frame) == 0 {
		return nil, ErrEmptyPattern
	}
	parts := make([]pattern.Pattern, len(frame))
	for k, area := range frame {
		r, err := pattern.NewAreaPattern(area)
		if err != nil {
			return nil, err
		}
		parts[k] = r
	}
	return pattern.Union(parts...)
}

func subtractRows(a, b *pattern.Rows) (pattern.Pattern, error) {
	res, err := a.Difference(b)
	if errors.Is(err, pattern.ErrEmptyPattern) {
		return nil, ErrEmptyPattern
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func subtractPoints(a, b pattern.Pattern) (pattern.Pattern, error) {
	removed := make(map[pattern.IPoint]struct{})
	for _, q := range pattern.RoundedPoints(b) {
		removed[q] = struct{}{}
	}
	var kept []pattern.IPoint
	for _, q := range pattern.RoundedPoints(a) {
		if _, ok := removed[q]; !ok {
			kept = append(kept, q)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyPattern
	}
	return pattern.NewIntegerPattern(kept)
}

// CrossPattern returns the origin and its 2·D axis neighbours.
func CrossPattern(dimCount int) (pattern.Pattern, error) {
	return pattern.NewSphere(pattern.Origin(dimCount), 1.000001)
}

// Cube3Pattern returns the 3×3×... box centered at the origin.
func Cube3Pattern(dimCount int) (pattern.Pattern, error) {
	return NewShapePattern(ShapeCube, dimCount, 3, false)
}

// Boundary returns the thin band of p left after removing the erosion of p
// by a small carcass: the 3^D box for integer boxes, the cross otherwise.
// A pattern too thin to erode is its own boundary.
func Boundary(p pattern.Pattern) (pattern.Pattern, error) {
	var (
		carcass pattern.Pattern
		err     error
	)
	if IsRectangularInteger(p) {
		carcass, err = Cube3Pattern(p.DimCount())
	} else {
		carcass, err = CrossPattern(p.DimCount())
	}
	if err != nil {
		return nil, err
	}
	erosion, ok, err := pattern.MinkowskiSubtract(p, carcass)
	if err != nil {
		return nil, err
	}
	if !ok {
		return p, nil
	}
	return Subtract(p, erosion)
}
