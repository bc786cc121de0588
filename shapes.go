package strel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/strel/pattern"
)

// Diameter limits of the parametric shapes.
const (
	maxDiameter        = 10000
	maxOctagonDiameter = 100000
)

// shape is a keyword of the grammar followed by its parameters.
type shape struct {
	keyword string
	// exact shapes take no parameters and match the whole specification.
	exact bool
	// literal shapes list their points explicitly; "-raw" is ignored for them.
	literal bool
	build   func(p *Parser, args string) (pattern.Pattern, error)
}

func (sh shape) match(s string) (string, bool) {
	if sh.exact {
		return "", s == sh.keyword
	}
	return strings.CutPrefix(s, sh.keyword+" ")
}

// shapes is searched in order; a keyword must precede any keyword it starts with.
var shapes []shape

func init() {
	shapes = []shape{
		{keyword: "circle", build: (*Parser).circle},
		{keyword: "ring", build: (*Parser).ring},
		{keyword: "ellipse", build: (*Parser).ellipse},
		{keyword: "rect", build: (*Parser).rect},
		{keyword: "square", build: (*Parser).square},
		{keyword: "octagon", build: (*Parser).octagon},
		{keyword: "cross", exact: true, build: (*Parser).cross},
		{keyword: "sphere-surface", build: quadricSurface(hemiEllipsoid, true)},
		{keyword: "sphere", build: quadricSolid(hemiEllipsoid, true)},
		{keyword: "hyperboloid-surface", build: quadricSurface(lowerHyperboloid, false)},
		{keyword: "hyperboloid", build: quadricSolid(lowerHyperboloid, false)},
		{keyword: "paraboloid-surface", build: quadricSurface(paraboloid, false)},
		{keyword: "paraboloid", build: quadricSolid(paraboloid, false)},
		{keyword: "series", build: (*Parser).series},
		{keyword: "points", literal: true, build: (*Parser).points},
	}
}

func outOfRange(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, a...))
}

func checkDiameter(d, limit float64) error {
	if d > limit {
		return outOfRange("too large diameter %v (maximal possible value is %v)", d, limit)
	}
	if !(d > 0) {
		return outOfRange("zero or negative diameter %v", d)
	}
	return nil
}

// circle: "circle d [x y]", the lattice disk of diameter d.
func (p *Parser) circle(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	d := a.float(0)
	x, y := a.center(1)
	if a.err != nil {
		return nil, a.err
	}
	if err := checkDiameter(d, maxDiameter); err != nil {
		return nil, err
	}
	disk, err := p.disk(d)
	if err != nil {
		return nil, err
	}
	return pattern.Shift(disk, pattern.Pt(x, y))
}

// disk returns the lattice disk of diameter d centered at the origin.
func (p *Parser) disk(d float64) (pattern.Pattern, error) {
	if p.registry.opts.circleOptimization && d == math.Trunc(d) && d > optimizedCircleStep {
		return p.registry.shapePattern(ShapeSphere, 2, int(d), true)
	}
	return pattern.NewSphere(pattern.Origin(2), 0.5*d)
}

// ring: "ring d th [x y]", the disk of diameter d without the disk of
// diameter d − 2·th, plus the outer boundary so that the ring is never thinner
// than one lattice point.
func (p *Parser) ring(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	d, th := a.float(0), a.float(1)
	x, y := a.center(2)
	if a.err != nil {
		return nil, a.err
	}
	if err := checkDiameter(d, maxDiameter); err != nil {
		return nil, err
	}
	if th >= 0.5*d {
		return nil, outOfRange("too large thickness %v: must be less than d/2 = %v", th, 0.5*d)
	}
	if !(th >= 0) {
		return nil, outOfRange("negative thickness %v", th)
	}
	center := pattern.Pt(x, y)
	larger, err := pattern.NewSphere(center, 0.5*d)
	if err != nil {
		return nil, err
	}
	band := larger
	smaller, err := pattern.NewSphere(center, 0.5*d-th)
	switch {
	case err == nil:
		band, err = larger.Difference(smaller)
		if errors.Is(err, pattern.ErrEmptyPattern) {
			return larger.Surface(), nil
		}
		if err != nil {
			return nil, err
		}
	case !errors.Is(err, pattern.ErrEmptyPattern):
		return nil, err
	}
	return band.Union(larger.Surface())
}

// ellipse: "ellipse a b φ [x y]" with diameters a, b and rotation φ in degrees.
func (p *Parser) ellipse(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	da, db := a.float(0), a.float(1)
	phi := a.float(2) * math.Pi / 180
	x, y := a.center(3)
	if a.err != nil {
		return nil, a.err
	}
	if err := checkDiameter(da, maxDiameter); err != nil {
		return nil, fmt.Errorf("first diameter: %w", err)
	}
	if err := checkDiameter(db, maxDiameter); err != nil {
		return nil, fmt.Errorf("second diameter: %w", err)
	}
	if phi == 0 {
		e, err := pattern.NewEllipsoid(0.5*da, 0.5*db)
		if err != nil {
			return nil, err
		}
		return pattern.Shift(e, pattern.Pt(x, y))
	}
	return p.rotatedEllipse(da, db, phi, x, y)
}

// rect: "rect w [h [x y]]", an integer box; w/2 is truncated.
func (p *Parser) rect(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	w := a.integer(0)
	h := w
	if a.has(2) {
		h = a.integer(1)
	}
	x, y := a.intCenter(2)
	if a.err != nil {
		return nil, a.err
	}
	if w < 1 || h < 1 {
		return nil, outOfRange("zero or negative rectangle size %dx%d", w, h)
	}
	return box(w, h, x, y)
}

// square: "square n [x y]".
func (p *Parser) square(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	n := a.integer(0)
	x, y := a.intCenter(1)
	if a.err != nil {
		return nil, a.err
	}
	if n < 1 {
		return nil, outOfRange("zero or negative square size %d", n)
	}
	return box(n, n, x, y)
}

func box(w, h, x, y int64) (pattern.Pattern, error) {
	x0, y0 := x-w/2, y-h/2
	return pattern.NewIntegerRect(pattern.IR(x0, x0+w-1), pattern.IR(y0, y0+h-1))
}

// octagon: "octagon d [x y]", a square core whose corners are cut by
// diagonal segments of ⌊d/(√2+2)⌋ points.
func (p *Parser) octagon(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	d := a.float(0)
	x, y := a.intCenter(1)
	if a.err != nil {
		return nil, a.err
	}
	if err := checkDiameter(d, maxOctagonDiameter); err != nil {
		return nil, err
	}
	rectSize := int64(roundHalfUp(d))
	diagSize := int64(d / (math.Sqrt2 + 2))
	nAxis := rectSize
	if diagSize >= 1 {
		nAxis = rectSize - 2*diagSize
	}
	nAxis = max(1, nAxis)
	axis := pattern.IR(-nAxis/2, -nAxis/2+nAxis-1)
	core, err := pattern.NewIntegerRect(axis, axis)
	if err != nil {
		return nil, err
	}
	var res pattern.Pattern = core
	if diagSize >= 1 {
		up, err := series(pattern.Origin(2), pattern.Pt(1, 1), int(diagSize)+1)
		if err != nil {
			return nil, err
		}
		down, err := series(pattern.Origin(2), pattern.Pt(1, -1), int(diagSize)+1)
		if err != nil {
			return nil, err
		}
		diamond, err := pattern.MinkowskiSum(up, down)
		if err != nil {
			return nil, err
		}
		xr, yr := pattern.RoundedCoordRange(diamond, 0), pattern.RoundedCoordRange(diamond, 1)
		diamond, err = pattern.Shift(diamond, pattern.Pt(float64(-(xr.Min+xr.Max)/2), float64(-(yr.Min+yr.Max)/2)))
		if err != nil {
			return nil, err
		}
		if nAxis == 1 {
			res, err = pattern.Union(res, diamond)
		} else {
			res, err = pattern.MinkowskiSum(res, diamond)
		}
		if err != nil {
			return nil, err
		}
	}
	return pattern.Shift(res, pattern.Pt(float64(x), float64(y)))
}

// cross: the origin and its 4 axis neighbours.
func (p *Parser) cross(string) (pattern.Pattern, error) {
	return pattern.NewIntegerPattern([]pattern.IPoint{
		pattern.IPt(0, 0), pattern.IPt(1, 0), pattern.IPt(0, 1), pattern.IPt(-1, 0), pattern.IPt(0, -1),
	})
}

// series: "series [x0 y0] dx dy n" or "series [x0 y0 z0] dx dy dz n",
// n points starting at the origin point with the given step. The 3D form is
// chosen by exactly 4 or at least 7 parameters; z is scaled by the element type.
func (p *Parser) series(s string) (pattern.Pattern, error) {
	a := newArgs(s)
	n := len(a.fields)
	var origin, step pattern.Point
	var count int
	if n >= 7 || n == 4 {
		var x0, y0 int64
		var z0 float64
		i := 0
		if n >= 7 {
			x0, y0, z0 = a.integer(0), a.integer(1), a.float(2)*p.zScale
			i = 3
		}
		dx, dy, dz := a.integer(i), a.integer(i+1), a.float(i+2)*p.zScale
		count = a.count(i + 3)
		if p.integer {
			z0, dz = roundHalfUp(z0), roundHalfUp(dz)
		}
		origin = pattern.Pt(float64(x0), float64(y0), z0)
		step = pattern.Pt(float64(dx), float64(dy), dz)
	} else {
		var x0, y0 int64
		i := 0
		if n >= 5 {
			x0, y0 = a.integer(0), a.integer(1)
			i = 2
		}
		dx, dy := a.integer(i), a.integer(i+1)
		count = a.count(i + 2)
		origin = pattern.Pt(float64(x0), float64(y0))
		step = pattern.Pt(float64(dx), float64(dy))
	}
	if a.err != nil {
		return nil, a.err
	}
	return series(origin, step, count)
}

// series returns {origin + k·step : 0 ≤ k < n}.
func series(origin, step pattern.Point, n int) (pattern.Pattern, error) {
	if n < 1 {
		return nil, outOfRange("zero or negative length of the series: %d", n)
	}
	if n == 1 {
		return pattern.NewPattern([]pattern.Point{origin})
	}
	segment, err := pattern.NewPattern([]pattern.Point{pattern.Origin(origin.Dim()), step})
	if err != nil {
		return nil, err
	}
	res, err := pattern.MinkowskiMultiple(segment, n-1)
	if err != nil {
		return nil, err
	}
	return pattern.Shift(res, origin)
}

// points: "points x y [z]; x y [z]; ...", z scaled by the element type.
func (p *Parser) points(s string) (pattern.Pattern, error) {
	descriptions := strings.Split(s, ";")
	for len(descriptions) > 0 && descriptions[len(descriptions)-1] == "" {
		descriptions = descriptions[:len(descriptions)-1]
	}
	points := make([]pattern.Point, 0, len(descriptions))
	for k, d := range descriptions {
		a := newArgs(d)
		coords := make([]float64, len(a.fields))
		for j := range coords {
			coords[j] = a.float(j)
			if j == 2 {
				coords[j] *= p.zScale
				if p.integer {
					coords[j] = roundHalfUp(coords[j])
				}
			}
		}
		if a.err != nil {
			return nil, fmt.Errorf("point #%d: %w", k+1, a.err)
		}
		q, err := pattern.NewPoint(coords...)
		if err != nil {
			return nil, fmt.Errorf("point #%d: %w", k+1, err)
		}
		points = append(points, q)
	}
	return pattern.NewPattern(points)
}
