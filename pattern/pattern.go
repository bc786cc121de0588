package pattern

import (
	"fmt"
	"slices"
)

// Pattern is an immutable, non-empty, finite set of points in 1..MaxDimCount
// dimensions, used as a structuring element for morphological operations.
//
// Implementations may be lazy: a Pattern built by MinkowskiSum or Union knows
// its bounding ranges without enumerating its points.
type Pattern interface {
	// DimCount returns the number of dimensions of every point.
	DimCount() int

	// PointCount returns the number of distinct points.
	PointCount() int

	// Points returns all points in a deterministic order.
	// The returned slice must not be modified.
	Points() []Point

	// CoordRange returns the minimal and maximal coordinate along the axis.
	CoordRange(axis int) Range

	// IsSurelyInteger reports that all coordinates are known to be integers.
	// A false result does not guarantee that some coordinate is fractional.
	IsSurelyInteger() bool

	String() string
}

// UniformGrid is a Pattern whose points lie on a regular lattice:
// every point equals Origin + Steps·i for some integer index vector i.
type UniformGrid interface {
	Pattern

	// Origin returns the lattice origin.
	Origin() Point

	// Steps returns the lattice step along each axis. All steps are positive.
	Steps() []float64

	// IndexPoints returns the grid indexes of all points, in the same order as Points.
	IndexPoints() []IPoint

	// IndexRange returns the range of grid indexes along the axis.
	IndexRange(axis int) IRange

	// IsActuallyRectangular reports whether the index set is a full box.
	IsActuallyRectangular() bool
}

// NewPattern creates a pattern from a list of points. Lattice points give an
// integer *Grid, anything else a *PointSet. Duplicates are removed.
func NewPattern(points []Point) (Pattern, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPattern
	}
	dim := points[0].Dim()
	if dim == 0 {
		return nil, ErrTooManyDimensions
	}
	set := make(map[Point]struct{}, len(points))
	for _, q := range points {
		if q.Dim() != dim {
			return nil, fmt.Errorf("%w: point %v in %dD pattern", ErrDimensionMismatch, q, dim)
		}
		set[q] = struct{}{}
	}
	return pointsFromSet(dim, set)
}

// RoundedPoints returns the points of p rounded to the integer lattice,
// with duplicates removed, in a deterministic order.
func RoundedPoints(p Pattern) []IPoint {
	if g, ok := p.(UniformGrid); ok && p.IsSurelyInteger() && isUnitGrid(g) {
		return g.IndexPoints()
	}
	points := p.Points()
	seen := make(map[IPoint]struct{}, len(points))
	result := make([]IPoint, 0, len(points))
	for _, q := range points {
		r := q.Round()
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		result = append(result, r)
	}
	sortIPoints(result)
	return result
}

// RoundedCoordRange returns CoordRange(axis) with both ends rounded to integers.
func RoundedCoordRange(p Pattern, axis int) IRange {
	r := p.CoordRange(axis)
	return IRange{Min: roundHalfUp(r.Min), Max: roundHalfUp(r.Max)}
}

// RoundedArea returns the bounding box of the rounded pattern.
func RoundedArea(p Pattern) Area {
	ranges := make([]IRange, p.DimCount())
	for k := range ranges {
		ranges[k] = RoundedCoordRange(p, k)
	}
	return Area{ranges: ranges}
}

// Equal reports whether two patterns contain exactly the same points.
func Equal(a, b Pattern) bool {
	if a.DimCount() != b.DimCount() {
		return false
	}
	return slices.Equal(a.Points(), b.Points())
}

// Contains reports whether p contains the point q.
func Contains(p Pattern, q Point) bool {
	if q.Dim() != p.DimCount() {
		return false
	}
	if r, ok := p.(*Rows); ok {
		return r.containsPoint(q)
	}
	for k := 0; k < q.Dim(); k++ {
		if !p.CoordRange(k).Contains(q.Coord(k)) {
			return false
		}
	}
	points := p.Points()
	_, found := slices.BinarySearchFunc(points, q, Point.compare)
	return found
}

// isUnitGrid reports whether g is the integer lattice itself (origin 0, steps 1).
func isUnitGrid(g UniformGrid) bool {
	if g.Origin() != Origin(g.DimCount()) {
		return false
	}
	for _, s := range g.Steps() {
		if s != 1 {
			return false
		}
	}
	return true
}

func sortPoints(points []Point) {
	slices.SortFunc(points, Point.compare)
}

func sortIPoints(points []IPoint) {
	slices.SortFunc(points, IPoint.compare)
}

// pointsFromSet builds the smallest suitable pattern for a set of points:
// an integer grid when all points are lattice points, a PointSet otherwise.
func pointsFromSet(dim int, set map[Point]struct{}) (Pattern, error) {
	if len(set) == 0 {
		return nil, ErrEmptyPattern
	}
	integer := true
	for q := range set {
		if !q.IsInteger() {
			integer = false
			break
		}
	}
	if integer {
		indexes := make([]IPoint, 0, len(set))
		for q := range set {
			indexes = append(indexes, q.Round())
		}
		return newIntegerGrid(dim, indexes), nil
	}
	points := make([]Point, 0, len(set))
	for q := range set {
		points = append(points, q)
	}
	return newPointSet(dim, points), nil
}

func checkDims(patterns []Pattern) (int, error) {
	if len(patterns) == 0 {
		return 0, ErrEmptyPattern
	}
	dim := patterns[0].DimCount()
	for _, p := range patterns[1:] {
		if p.DimCount() != dim {
			return 0, ErrDimensionMismatch
		}
	}
	return dim, nil
}
