package pattern

import (
	"fmt"
	"math"
	"sync"
)

// Grid is a uniform grid pattern with an explicit set of grid indexes.
type Grid struct {
	origin  Point
	steps   []float64
	indexes []IPoint
	ranges  []IRange

	pointsOnce sync.Once
	points     []Point
}

// NewGrid creates a uniform grid pattern with points origin + steps·i for every
// index i. Duplicated indexes are removed.
func NewGrid(origin Point, steps []float64, indexes []IPoint) (*Grid, error) {
	dim := origin.Dim()
	if err := checkSteps(dim, steps); err != nil {
		return nil, err
	}
	if len(indexes) == 0 {
		return nil, ErrEmptyPattern
	}
	set := make(map[IPoint]struct{}, len(indexes))
	unique := make([]IPoint, 0, len(indexes))
	for _, i := range indexes {
		if i.Dim() != dim {
			return nil, fmt.Errorf("%w: index %v in %dD grid", ErrDimensionMismatch, i, dim)
		}
		if _, ok := set[i]; ok {
			continue
		}
		set[i] = struct{}{}
		unique = append(unique, i)
	}
	return newGrid(origin, append([]float64(nil), steps...), unique), nil
}

// NewIntegerPattern creates a pattern on the unit integer lattice.
func NewIntegerPattern(points []IPoint) (*Grid, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPattern
	}
	dim := points[0].Dim()
	return NewGrid(Origin(dim), unitSteps(dim), points)
}

// newIntegerGrid takes ownership of indexes, which must be non-empty and unique.
func newIntegerGrid(dim int, indexes []IPoint) *Grid {
	return newGrid(Origin(dim), unitSteps(dim), indexes)
}

func newGrid(origin Point, steps []float64, indexes []IPoint) *Grid {
	sortIPoints(indexes)
	dim := origin.Dim()
	g := &Grid{origin: origin, steps: steps, indexes: indexes, ranges: make([]IRange, dim)}
	for k := range g.ranges {
		g.ranges[k] = IRange{Min: math.MaxInt64, Max: math.MinInt64}
	}
	for _, i := range indexes {
		for k := 0; k < dim; k++ {
			g.ranges[k].Min = min(g.ranges[k].Min, i.coord[k])
			g.ranges[k].Max = max(g.ranges[k].Max, i.coord[k])
		}
	}
	return g
}

func (g *Grid) DimCount() int { return g.origin.Dim() }

func (g *Grid) PointCount() int { return len(g.indexes) }

func (g *Grid) Points() []Point {
	g.pointsOnce.Do(func() {
		g.points = make([]Point, len(g.indexes))
		for n, i := range g.indexes {
			g.points[n] = gridPoint(g.origin, g.steps, i)
		}
	})
	return g.points
}

func (g *Grid) CoordRange(axis int) Range {
	return gridRange(g.origin, g.steps, g.ranges[axis], axis)
}

func (g *Grid) IsSurelyInteger() bool { return isIntegerLattice(g.origin, g.steps) }

func (g *Grid) Origin() Point { return g.origin }

func (g *Grid) Steps() []float64 { return append([]float64(nil), g.steps...) }

func (g *Grid) IndexPoints() []IPoint { return g.indexes }

func (g *Grid) IndexRange(axis int) IRange { return g.ranges[axis] }

// IsActuallyRectangular reports whether the indexes fill their bounding box.
func (g *Grid) IsActuallyRectangular() bool {
	volume := int64(1)
	for _, r := range g.ranges {
		volume *= r.Size()
		if volume > int64(len(g.indexes)) {
			return false
		}
	}
	return volume == int64(len(g.indexes))
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dD grid pattern (%d points, origin %v, steps %v)",
		g.DimCount(), len(g.indexes), g.origin, g.steps)
}

func gridPoint(origin Point, steps []float64, i IPoint) Point {
	q := origin
	for k := range steps {
		q.coord[k] += steps[k] * float64(i.coord[k])
	}
	return q
}

func gridRange(origin Point, steps []float64, r IRange, axis int) Range {
	o := origin.coord[axis]
	return Range{Min: o + steps[axis]*float64(r.Min), Max: o + steps[axis]*float64(r.Max)}
}

func isIntegerLattice(origin Point, steps []float64) bool {
	if !origin.IsInteger() {
		return false
	}
	for _, s := range steps {
		if s != math.Trunc(s) {
			return false
		}
	}
	return true
}

func checkSteps(dim int, steps []float64) error {
	if dim == 0 {
		return ErrTooManyDimensions
	}
	if len(steps) != dim {
		return fmt.Errorf("%w: %d steps for %dD grid", ErrDimensionMismatch, len(steps), dim)
	}
	for _, s := range steps {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidGrid, steps)
		}
	}
	return nil
}

func unitSteps(dim int) []float64 {
	steps := make([]float64, dim)
	for k := range steps {
		steps[k] = 1
	}
	return steps
}
