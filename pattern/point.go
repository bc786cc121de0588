package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxDimCount is the largest number of dimensions a point or pattern may have.
const MaxDimCount = 4

// Point is a point (or vector) with real coordinates in 1..MaxDimCount dimensions.
//
// Point is a comparable value type: two points with the same dimension and
// coordinates are equal under ==, so points can be used as map keys.
type Point struct {
	coord [MaxDimCount]float64
	dim   int
}

// NewPoint creates a point from its coordinates.
// Returns ErrTooManyDimensions if the number of coordinates is 0 or exceeds MaxDimCount.
func NewPoint(coords ...float64) (Point, error) {
	if len(coords) == 0 || len(coords) > MaxDimCount {
		return Point{}, fmt.Errorf("%w: %d coordinates", ErrTooManyDimensions, len(coords))
	}
	var p Point
	p.dim = len(coords)
	for k, c := range coords {
		p.coord[k] = c
	}
	return p, nil
}

// Pt is a convenience function to create a Point.
// It panics if the number of coordinates is invalid; use NewPoint for untrusted input.
func Pt(coords ...float64) Point {
	p, err := NewPoint(coords...)
	if err != nil {
		panic(err)
	}
	return p
}

// Origin returns the origin of the given dimension.
func Origin(dim int) Point {
	return Point{dim: dim}
}

// Dim returns the number of coordinates.
func (p Point) Dim() int {
	return p.dim
}

// Coord returns the coordinate along the given axis.
func (p Point) Coord(axis int) float64 {
	return p.coord[axis]
}

// Coords returns a copy of all coordinates.
func (p Point) Coords() []float64 {
	return append([]float64(nil), p.coord[:p.dim]...)
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	for k := 0; k < p.dim; k++ {
		p.coord[k] += q.coord[k]
	}
	return p
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	for k := 0; k < p.dim; k++ {
		p.coord[k] -= q.coord[k]
	}
	return p
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	for k := 0; k < p.dim; k++ {
		p.coord[k] *= s
	}
	return p
}

// IsInteger reports whether all coordinates are exact integers.
func (p Point) IsInteger() bool {
	for k := 0; k < p.dim; k++ {
		if p.coord[k] != math.Trunc(p.coord[k]) {
			return false
		}
	}
	return true
}

// Round returns the nearest lattice point; halves are rounded up.
func (p Point) Round() IPoint {
	q := IPoint{dim: p.dim}
	for k := 0; k < p.dim; k++ {
		q.coord[k] = roundHalfUp(p.coord[k])
	}
	return q
}

func (p Point) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for k := 0; k < p.dim; k++ {
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(p.coord[k], 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}

// compare orders points by the last axis first, so 2D points sort row by row.
func (p Point) compare(q Point) int {
	for k := p.dim - 1; k >= 0; k-- {
		switch {
		case p.coord[k] < q.coord[k]:
			return -1
		case p.coord[k] > q.coord[k]:
			return 1
		}
	}
	return 0
}

// IPoint is a point with integer coordinates (a lattice point).
type IPoint struct {
	coord [MaxDimCount]int64
	dim   int
}

// NewIPoint creates a lattice point from its coordinates.
func NewIPoint(coords ...int64) (IPoint, error) {
	if len(coords) == 0 || len(coords) > MaxDimCount {
		return IPoint{}, fmt.Errorf("%w: %d coordinates", ErrTooManyDimensions, len(coords))
	}
	var p IPoint
	p.dim = len(coords)
	copy(p.coord[:], coords)
	return p, nil
}

// IPt is a convenience function to create an IPoint.
// It panics if the number of coordinates is invalid.
func IPt(coords ...int64) IPoint {
	p, err := NewIPoint(coords...)
	if err != nil {
		panic(err)
	}
	return p
}

// IOrigin returns the lattice origin of the given dimension.
func IOrigin(dim int) IPoint {
	return IPoint{dim: dim}
}

// Dim returns the number of coordinates.
func (p IPoint) Dim() int {
	return p.dim
}

// Coord returns the coordinate along the given axis.
func (p IPoint) Coord(axis int) int64 {
	return p.coord[axis]
}

// Coords returns a copy of all coordinates.
func (p IPoint) Coords() []int64 {
	return append([]int64(nil), p.coord[:p.dim]...)
}

// Add returns the sum of two lattice points.
func (p IPoint) Add(q IPoint) IPoint {
	for k := 0; k < p.dim; k++ {
		p.coord[k] += q.coord[k]
	}
	return p
}

// Sub returns the difference of two lattice points.
func (p IPoint) Sub(q IPoint) IPoint {
	for k := 0; k < p.dim; k++ {
		p.coord[k] -= q.coord[k]
	}
	return p
}

// Neg returns the point reflected through the origin.
func (p IPoint) Neg() IPoint {
	for k := 0; k < p.dim; k++ {
		p.coord[k] = -p.coord[k]
	}
	return p
}

// WithCoord returns a copy of p with one coordinate replaced.
func (p IPoint) WithCoord(axis int, v int64) IPoint {
	p.coord[axis] = v
	return p
}

// ToPoint converts the lattice point to a real point.
func (p IPoint) ToPoint() Point {
	q := Point{dim: p.dim}
	for k := 0; k < p.dim; k++ {
		q.coord[k] = float64(p.coord[k])
	}
	return q
}

func (p IPoint) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for k := 0; k < p.dim; k++ {
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(p.coord[k], 10))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p IPoint) compare(q IPoint) int {
	for k := p.dim - 1; k >= 0; k-- {
		switch {
		case p.coord[k] < q.coord[k]:
			return -1
		case p.coord[k] > q.coord[k]:
			return 1
		}
	}
	return 0
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
