package pattern

import (
	"fmt"
	"math"
)

// NewSphere returns the lattice points whose distance from center is at most r.
// The result is empty, and ErrEmptyPattern is returned, only when no lattice
// point is that close; a sphere around a lattice point always contains it.
func NewSphere(center Point, r float64) (*Rows, error) {
	if center.Dim() == 0 {
		return nil, ErrTooManyDimensions
	}
	if !(r >= 0) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: sphere radius %v", ErrEmptyPattern, r)
	}
	weights := make([]float64, center.Dim())
	for k := range weights {
		weights[k] = 1
	}
	return newQuadricBall(center, weights, r*r)
}

// NewEllipsoid returns the lattice points p with Σ (p[k]/semiAxes[k])² ≤ 1.
// The ellipsoid is centered at the origin and its axes are the coordinate axes.
func NewEllipsoid(semiAxes ...float64) (*Rows, error) {
	if len(semiAxes) == 0 || len(semiAxes) > MaxDimCount {
		return nil, fmt.Errorf("%w: %d semi-axes", ErrTooManyDimensions, len(semiAxes))
	}
	for _, a := range semiAxes {
		if !(a > 0) || math.IsInf(a, 0) {
			return nil, fmt.Errorf("%w: ellipsoid semi-axes %v", ErrEmptyPattern, semiAxes)
		}
	}
	weights := make([]float64, len(semiAxes))
	for k, a := range semiAxes {
		weights[k] = 1 / (a * a)
	}
	return newQuadricBall(Origin(len(semiAxes)), weights, 1)
}

// newQuadricBall returns the lattice points p with Σ weights[k]·(p[k]−c[k])² ≤ limit.
// The last axis is enumerated outermost; the range of each inner axis is
// derived from the part of the limit not spent yet, widened by one step and
// then checked exactly. Axis 0 is not enumerated: the ends of its run are
// moved inwards until they pass the exact check.
func newQuadricBall(c Point, weights []float64, limit float64) (*Rows, error) {
	dim := len(weights)
	var runs []Run
	cur := IPoint{dim: dim}
	var walk func(axis int, sum float64)
	walk = func(axis int, sum float64) {
		w, ck := weights[axis], c.coord[axis]
		half := math.Sqrt(max(0, limit-sum)/w) + 1
		lo, hi := int64(math.Floor(ck-half)), int64(math.Ceil(ck+half))
		if axis == 0 {
			inside := func(v int64) bool {
				d := float64(v) - ck
				return sum+w*d*d <= limit
			}
			for lo <= hi && !inside(lo) {
				lo++
			}
			for hi >= lo && !inside(hi) {
				hi--
			}
			if lo <= hi {
				runs = append(runs, Run{Key: cur, X: IRange{Min: lo, Max: hi}})
			}
			return
		}
		for v := lo; v <= hi; v++ {
			d := float64(v) - ck
			s := sum + w*d*d
			if s > limit {
				continue
			}
			cur.coord[axis] = v
			walk(axis-1, s)
		}
		cur.coord[axis] = 0
	}
	walk(dim-1, 0)
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no lattice points within the sphere", ErrEmptyPattern)
	}
	return newRows(Origin(dim), unitSteps(dim), runs), nil
}
