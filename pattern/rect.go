package pattern

import (
	"fmt"
	"sync"
)

// Rect is a uniform grid pattern whose index set is a full box.
// Its points are enumerated only when Points or IndexPoints is called.
type Rect struct {
	origin Point
	steps  []float64
	ranges []IRange

	once    sync.Once
	indexes []IPoint
	points  []Point
}

// NewRect creates a rectangular uniform grid pattern.
func NewRect(origin Point, steps []float64, ranges []IRange) (*Rect, error) {
	if err := checkSteps(origin.Dim(), steps); err != nil {
		return nil, err
	}
	if len(ranges) != origin.Dim() {
		return nil, fmt.Errorf("%w: %d ranges for %dD grid", ErrDimensionMismatch, len(ranges), origin.Dim())
	}
	for _, r := range ranges {
		if r.Empty() {
			return nil, fmt.Errorf("%w: empty range %v", ErrEmptyPattern, r)
		}
	}
	return &Rect{
		origin: origin,
		steps:  append([]float64(nil), steps...),
		ranges: append([]IRange(nil), ranges...),
	}, nil
}

// NewIntegerRect creates a box of lattice points with the given coordinate ranges.
func NewIntegerRect(ranges ...IRange) (*Rect, error) {
	if len(ranges) == 0 || len(ranges) > MaxDimCount {
		return nil, fmt.Errorf("%w: %d ranges", ErrTooManyDimensions, len(ranges))
	}
	return NewRect(Origin(len(ranges)), unitSteps(len(ranges)), ranges)
}

// NewAreaPattern creates a box of lattice points covering the area.
func NewAreaPattern(a Area) (*Rect, error) {
	return NewIntegerRect(a.ranges...)
}

func (r *Rect) DimCount() int { return r.origin.Dim() }

func (r *Rect) PointCount() int {
	n := int64(1)
	for _, rg := range r.ranges {
		n *= rg.Size()
	}
	return int(n)
}

func (r *Rect) Points() []Point {
	r.enumerate()
	return r.points
}

func (r *Rect) IndexPoints() []IPoint {
	r.enumerate()
	return r.indexes
}

// enumerate lists the box row by row, which is already the sorted order.
func (r *Rect) enumerate() {
	r.once.Do(func() {
		dim := len(r.ranges)
		n := r.PointCount()
		r.indexes = make([]IPoint, 0, n)
		r.points = make([]Point, 0, n)
		cur := IPoint{dim: dim}
		for k, rg := range r.ranges {
			cur.coord[k] = rg.Min
		}
		for {
			r.indexes = append(r.indexes, cur)
			r.points = append(r.points, gridPoint(r.origin, r.steps, cur))
			k := 0
			for ; k < dim; k++ {
				if cur.coord[k] < r.ranges[k].Max {
					cur.coord[k]++
					break
				}
				cur.coord[k] = r.ranges[k].Min
			}
			if k == dim {
				return
			}
		}
	})
}

func (r *Rect) CoordRange(axis int) Range {
	return gridRange(r.origin, r.steps, r.ranges[axis], axis)
}

func (r *Rect) IsSurelyInteger() bool { return isIntegerLattice(r.origin, r.steps) }

func (r *Rect) Origin() Point { return r.origin }

func (r *Rect) Steps() []float64 { return append([]float64(nil), r.steps...) }

func (r *Rect) IndexRange(axis int) IRange { return r.ranges[axis] }

func (r *Rect) IsActuallyRectangular() bool { return true }

// IndexArea returns the box of grid indexes.
func (r *Rect) IndexArea() Area {
	return Area{ranges: append([]IRange(nil), r.ranges...)}
}

func (r *Rect) String() string {
	if isUnitGrid(r) {
		return fmt.Sprintf("%dD rectangular integer pattern %v", r.DimCount(), r.IndexArea())
	}
	return fmt.Sprintf("%dD rectangular grid pattern %v (origin %v, steps %v)",
		r.DimCount(), r.IndexArea(), r.origin, r.steps)
}

// unitRect returns the coordinate box of r when r lies on the unit integer lattice.
func unitRect(p Pattern) (Area, bool) {
	r, ok := p.(*Rect)
	if !ok || !r.IsSurelyInteger() {
		return Area{}, false
	}
	ranges := make([]IRange, len(r.ranges))
	for k, rg := range r.ranges {
		if r.steps[k] != 1 {
			return Area{}, false
		}
		o := int64(r.origin.coord[k])
		ranges[k] = IRange{Min: rg.Min + o, Max: rg.Max + o}
	}
	return Area{ranges: ranges}, true
}
