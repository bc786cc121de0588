package pattern

import (
	"fmt"
	"strings"
)

// Area is an axis-aligned box of lattice points: the Cartesian product of
// one IRange per axis. The zero Area has no dimensions.
type Area struct {
	ranges []IRange
}

// NewArea creates an area from per-axis ranges.
// Returns ErrEmptyPattern if any range is empty.
func NewArea(ranges ...IRange) (Area, error) {
	if len(ranges) == 0 || len(ranges) > MaxDimCount {
		return Area{}, fmt.Errorf("%w: %d ranges", ErrTooManyDimensions, len(ranges))
	}
	for _, r := range ranges {
		if r.Empty() {
			return Area{}, fmt.Errorf("%w: empty range %v", ErrEmptyPattern, r)
		}
	}
	return Area{ranges: append([]IRange(nil), ranges...)}, nil
}

// DimCount returns the number of axes.
func (a Area) DimCount() int {
	return len(a.ranges)
}

// Range returns the range along the given axis.
func (a Area) Range(axis int) IRange {
	return a.ranges[axis]
}

// Ranges returns a copy of the per-axis ranges.
func (a Area) Ranges() []IRange {
	return append([]IRange(nil), a.ranges...)
}

// Min returns the corner with minimal coordinates.
func (a Area) Min() IPoint {
	p := IPoint{dim: len(a.ranges)}
	for k, r := range a.ranges {
		p.coord[k] = r.Min
	}
	return p
}

// Max returns the corner with maximal coordinates.
func (a Area) Max() IPoint {
	p := IPoint{dim: len(a.ranges)}
	for k, r := range a.ranges {
		p.coord[k] = r.Max
	}
	return p
}

// Volume returns the number of lattice points in the area.
func (a Area) Volume() int64 {
	v := int64(1)
	for _, r := range a.ranges {
		v *= r.Size()
	}
	return v
}

// Contains reports whether p lies inside the area.
func (a Area) Contains(p IPoint) bool {
	if p.dim != len(a.ranges) {
		return false
	}
	for k, r := range a.ranges {
		if !r.Contains(p.coord[k]) {
			return false
		}
	}
	return true
}

// Intersects reports whether the two areas share at least one point.
func (a Area) Intersects(b Area) bool {
	if len(a.ranges) != len(b.ranges) {
		return false
	}
	for k := range a.ranges {
		if a.ranges[k].Intersect(b.ranges[k]).Empty() {
			return false
		}
	}
	return true
}

// Difference returns a \ b as a list of at most 2·D disjoint areas.
//
// The decomposition walks the axes in order: along each axis the slabs of the
// current remainder lying below and above b are emitted, then the remainder is
// clipped to b's range on that axis. What is left at the end is a ∩ b.
func (a Area) Difference(b Area) []Area {
	if !a.Intersects(b) {
		return []Area{a}
	}
	var result []Area
	cur := append([]IRange(nil), a.ranges...)
	for k := range cur {
		br := b.ranges[k]
		if cur[k].Min < br.Min {
			part := append([]IRange(nil), cur...)
			part[k] = IRange{Min: cur[k].Min, Max: br.Min - 1}
			result = append(result, Area{ranges: part})
		}
		if cur[k].Max > br.Max {
			part := append([]IRange(nil), cur...)
			part[k] = IRange{Min: br.Max + 1, Max: cur[k].Max}
			result = append(result, Area{ranges: part})
		}
		cur[k] = cur[k].Intersect(br)
	}
	return result
}

func (a Area) String() string {
	parts := make([]string, len(a.ranges))
	for k, r := range a.ranges {
		parts[k] = "[" + r.String() + "]"
	}
	return strings.Join(parts, "x")
}
