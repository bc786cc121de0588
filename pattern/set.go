package pattern

import (
	"fmt"
	"math"
)

// PointSet is a pattern stored as an explicit list of real points.
// It makes no assumption about a lattice and is never treated as a UniformGrid.
type PointSet struct {
	dim     int
	points  []Point
	ranges  []Range
	integer bool
}

// NewPointSet creates a pattern from an arbitrary list of points.
// Duplicates are removed. Returns ErrEmptyPattern for an empty list and
// ErrDimensionMismatch if the points have different dimensions.
func NewPointSet(points []Point) (*PointSet, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPattern
	}
	dim := points[0].Dim()
	set := make(map[Point]struct{}, len(points))
	unique := make([]Point, 0, len(points))
	for _, q := range points {
		if q.Dim() != dim {
			return nil, fmt.Errorf("%w: point %v in %dD set", ErrDimensionMismatch, q, dim)
		}
		if _, ok := set[q]; ok {
			continue
		}
		set[q] = struct{}{}
		unique = append(unique, q)
	}
	return newPointSet(dim, unique), nil
}

// newPointSet takes ownership of points, which must be non-empty and unique.
func newPointSet(dim int, points []Point) *PointSet {
	sortPoints(points)
	ps := &PointSet{dim: dim, points: points, integer: true}
	ps.ranges = make([]Range, dim)
	for k := range ps.ranges {
		ps.ranges[k] = Range{Min: math.Inf(1), Max: math.Inf(-1)}
	}
	for _, q := range points {
		for k := 0; k < dim; k++ {
			c := q.coord[k]
			ps.ranges[k].Min = min(ps.ranges[k].Min, c)
			ps.ranges[k].Max = max(ps.ranges[k].Max, c)
		}
		if ps.integer && !q.IsInteger() {
			ps.integer = false
		}
	}
	return ps
}

func (ps *PointSet) DimCount() int             { return ps.dim }
func (ps *PointSet) PointCount() int           { return len(ps.points) }
func (ps *PointSet) Points() []Point           { return ps.points }
func (ps *PointSet) CoordRange(axis int) Range { return ps.ranges[axis] }
func (ps *PointSet) IsSurelyInteger() bool     { return ps.integer }

func (ps *PointSet) String() string {
	if len(ps.points) <= 8 {
		return fmt.Sprintf("%dD point set %v", ps.dim, ps.points)
	}
	return fmt.Sprintf("%dD point set (%d points)", ps.dim, len(ps.points))
}
