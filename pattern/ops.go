package pattern

import (
	"fmt"
	"math"
)

// Union returns the set union of the patterns.
// All patterns must have the same dimension.
func Union(patterns ...Pattern) (Pattern, error) {
	dim, err := checkDims(patterns)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	parts := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		if u, ok := p.(*UnionPattern); ok {
			parts = append(parts, u.parts...)
		} else {
			parts = append(parts, p)
		}
	}
	return &UnionPattern{dim: dim, parts: parts}, nil
}

// MinkowskiSum returns {a1 + a2 + ... : ai ∈ patterns[i]}.
// Boxes on the integer lattice are summed directly into a box; any other
// combination produces a lazy *Sum.
func MinkowskiSum(patterns ...Pattern) (Pattern, error) {
	dim, err := checkDims(patterns)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	if area, ok := sumOfUnitRects(patterns); ok {
		return NewAreaPattern(area)
	}
	sum := &Sum{dim: dim, offset: Origin(dim)}
	for _, p := range patterns {
		if s, ok := p.(*Sum); ok {
			for _, t := range s.terms {
				sum.terms = appendTerm(sum.terms, t.Pattern, t.Count)
			}
			sum.offset = sum.offset.Add(s.offset)
		} else {
			sum.terms = appendTerm(sum.terms, p, 1)
		}
	}
	return sum, nil
}

// MinkowskiMultiple returns the Minkowski sum of n copies of p.
// For n == 0 the result is the single origin point.
func MinkowskiMultiple(p Pattern, n int) (Pattern, error) {
	dim := p.DimCount()
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: %d", ErrNegativeMultiplier, n)
	case n == 0:
		return newIntegerGrid(dim, []IPoint{IOrigin(dim)}), nil
	case n == 1:
		return p, nil
	}
	if area, ok := unitRect(p); ok {
		ranges := make([]IRange, dim)
		for k, r := range area.ranges {
			ranges[k] = IRange{Min: r.Min * int64(n), Max: r.Max * int64(n)}
		}
		return NewIntegerRect(ranges...)
	}
	if s, ok := p.(*Sum); ok {
		terms := make([]SumTerm, len(s.terms))
		for k, t := range s.terms {
			terms[k] = SumTerm{Pattern: t.Pattern, Count: t.Count * n}
		}
		return &Sum{dim: dim, terms: terms, offset: s.offset.Mul(float64(n))}, nil
	}
	return &Sum{dim: dim, terms: []SumTerm{{Pattern: p, Count: n}}, offset: Origin(dim)}, nil
}

// MinkowskiSubtract returns the erosion of a by b: the set of points c such
// that c + q ∈ a for every q ∈ b. The boolean result is false when the
// erosion is empty; in that case the returned pattern is nil.
func MinkowskiSubtract(a, b Pattern) (Pattern, bool, error) {
	if a.DimCount() != b.DimCount() {
		return nil, false, fmt.Errorf("%w: %dD and %dD", ErrDimensionMismatch, a.DimCount(), b.DimCount())
	}
	if aa, ok := unitRect(a); ok {
		if ba, ok := unitRect(b); ok {
			ranges := make([]IRange, aa.DimCount())
			for k := range ranges {
				ranges[k] = IRange{Min: aa.ranges[k].Min - ba.ranges[k].Min, Max: aa.ranges[k].Max - ba.ranges[k].Max}
				if ranges[k].Empty() {
					return nil, false, nil
				}
			}
			r, err := NewIntegerRect(ranges...)
			if err != nil {
				return nil, false, err
			}
			return r, true, nil
		}
	}
	for k := 0; k < a.DimCount(); k++ {
		if a.CoordRange(k).Size() < b.CoordRange(k).Size() {
			return nil, false, nil
		}
	}
	aSet := toSet(a)
	bPoints := b.Points()
	b0 := bPoints[0]
	result := make(map[Point]struct{})
	for _, q := range a.Points() {
		c := q.Sub(b0)
		inside := true
		for _, d := range bPoints[1:] {
			if _, ok := aSet[c.Add(d)]; !ok {
				inside = false
				break
			}
		}
		if inside {
			result[c] = struct{}{}
		}
	}
	if len(result) == 0 {
		return nil, false, nil
	}
	p, err := pointsFromSet(a.DimCount(), result)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// Shift returns p translated by the vector v.
func Shift(p Pattern, v Point) (Pattern, error) {
	if v.Dim() != p.DimCount() {
		return nil, fmt.Errorf("%w: cannot shift %dD pattern by %dD vector", ErrDimensionMismatch, p.DimCount(), v.Dim())
	}
	if v == Origin(v.Dim()) {
		return p, nil
	}
	switch t := p.(type) {
	case *Rect:
		return &Rect{origin: t.origin.Add(v), steps: t.steps, ranges: t.ranges}, nil
	case *Grid:
		return &Grid{origin: t.origin.Add(v), steps: t.steps, indexes: t.indexes, ranges: t.ranges}, nil
	case *Rows:
		return &Rows{origin: t.origin.Add(v), steps: t.steps, runs: t.runs, count: t.count, ranges: t.ranges}, nil
	case *Sum:
		return &Sum{dim: t.dim, terms: t.terms, offset: t.offset.Add(v)}, nil
	case *UnionPattern:
		parts := make([]Pattern, len(t.parts))
		for k, part := range t.parts {
			shifted, err := Shift(part, v)
			if err != nil {
				return nil, err
			}
			parts[k] = shifted
		}
		return &UnionPattern{dim: t.dim, parts: parts}, nil
	}
	points := p.Points()
	shifted := make([]Point, len(points))
	for k, q := range points {
		shifted[k] = q.Add(v)
	}
	return newPointSet(p.DimCount(), shifted), nil
}

// Multiply returns p with all coordinates multiplied by m.
func Multiply(p Pattern, m float64) Pattern {
	multipliers := make([]float64, p.DimCount())
	for k := range multipliers {
		multipliers[k] = m
	}
	return Scale(p, multipliers...)
}

// Scale returns p with coordinate k multiplied by multipliers[k].
// Missing multipliers are treated as 1, extra ones are ignored.
func Scale(p Pattern, multipliers ...float64) Pattern {
	return scale(p, normalizeMultipliers(p.DimCount(), multipliers), make(map[Pattern]Pattern))
}

func normalizeMultipliers(dim int, multipliers []float64) []float64 {
	m := unitSteps(dim)
	copy(m, multipliers)
	return m
}

// scale memoizes results so that patterns shared between terms stay shared.
func scale(p Pattern, m []float64, memo map[Pattern]Pattern) Pattern {
	if res, ok := memo[p]; ok {
		return res
	}
	res := scaleOnce(p, m, memo)
	memo[p] = res
	return res
}

func scaleOnce(p Pattern, m []float64, memo map[Pattern]Pattern) Pattern {
	identity, nonZero := true, true
	for _, v := range m {
		identity = identity && v == 1
		nonZero = nonZero && v != 0
	}
	if identity {
		return p
	}
	switch t := p.(type) {
	case *Rect:
		if nonZero {
			ranges := append([]IRange(nil), t.ranges...)
			for k, v := range m {
				if v < 0 {
					ranges[k] = IRange{Min: -ranges[k].Max, Max: -ranges[k].Min}
				}
			}
			return &Rect{origin: scalePoint(t.origin, m), steps: scaleSteps(t.steps, m), ranges: ranges}
		}
	case *Grid:
		if nonZero {
			indexes := make([]IPoint, len(t.indexes))
			for n, i := range t.indexes {
				for k, v := range m {
					if v < 0 {
						i.coord[k] = -i.coord[k]
					}
				}
				indexes[n] = i
			}
			return newGrid(scalePoint(t.origin, m), scaleSteps(t.steps, m), indexes)
		}
	case *Rows:
		if nonZero {
			runs := make([]Run, len(t.runs))
			for n, run := range t.runs {
				for k := 1; k < len(m); k++ {
					if m[k] < 0 {
						run.Key.coord[k] = -run.Key.coord[k]
					}
				}
				if m[0] < 0 {
					run.X = IRange{Min: -run.X.Max, Max: -run.X.Min}
				}
				runs[n] = run
			}
			return newRows(scalePoint(t.origin, m), scaleSteps(t.steps, m), runs)
		}
	case *Sum:
		terms := make([]SumTerm, len(t.terms))
		for k, term := range t.terms {
			terms[k] = SumTerm{Pattern: scale(term.Pattern, m, memo), Count: term.Count}
		}
		return &Sum{dim: t.dim, terms: terms, offset: scalePoint(t.offset, m)}
	case *UnionPattern:
		parts := make([]Pattern, len(t.parts))
		for k, part := range t.parts {
			parts[k] = scale(part, m, memo)
		}
		return &UnionPattern{dim: t.dim, parts: parts}
	}
	set := make(map[Point]struct{}, p.PointCount())
	for _, q := range p.Points() {
		set[scalePoint(q, m)] = struct{}{}
	}
	res, _ := pointsFromSet(p.DimCount(), set)
	return res
}

func scalePoint(q Point, m []float64) Point {
	for k, v := range m {
		q.coord[k] *= v
	}
	return q
}

func scaleSteps(steps, m []float64) []float64 {
	res := make([]float64, len(steps))
	for k, s := range steps {
		res[k] = s * math.Abs(m[k])
	}
	return res
}

// Round returns the pattern of lattice points nearest to the points of p.
// Patterns already lying on the integer lattice are returned unchanged.
func Round(p Pattern) UniformGrid {
	if g, ok := p.(UniformGrid); ok && g.IsSurelyInteger() {
		return g
	}
	if s, ok := p.(*Sum); ok && s.IsSurelyInteger() {
		if g, ok := s.materialize().(UniformGrid); ok {
			return g
		}
	}
	return newIntegerGrid(p.DimCount(), RoundedPoints(p))
}

// Surface returns the points of g having at least one of the 2·D axis
// neighbours on the grid outside g. The surface of a box is returned as the
// union of at most 2·D boxes forming its frame, the surface of *Rows as *Rows.
func Surface(g UniformGrid) Pattern {
	switch t := g.(type) {
	case *Rect:
		return rectSurface(t)
	case *Rows:
		return t.Surface()
	}
	indexes := g.IndexPoints()
	set := make(map[IPoint]struct{}, len(indexes))
	for _, i := range indexes {
		set[i] = struct{}{}
	}
	var boundary []IPoint
	for _, i := range indexes {
		if onSurface(i, set) {
			boundary = append(boundary, i)
		}
	}
	return newGrid(g.Origin(), g.Steps(), boundary)
}

func onSurface(i IPoint, set map[IPoint]struct{}) bool {
	for k := 0; k < i.dim; k++ {
		for _, d := range [2]int64{-1, 1} {
			n := i
			n.coord[k] += d
			if _, ok := set[n]; !ok {
				return true
			}
		}
	}
	return false
}

func rectSurface(r *Rect) Pattern {
	inner := make([]IRange, len(r.ranges))
	for k, rg := range r.ranges {
		inner[k] = IRange{Min: rg.Min + 1, Max: rg.Max - 1}
		if inner[k].Empty() {
			return r
		}
	}
	frame := r.IndexArea().Difference(Area{ranges: inner})
	parts := make([]Pattern, len(frame))
	for k, a := range frame {
		parts[k] = &Rect{origin: r.origin, steps: r.steps, ranges: a.ranges}
	}
	return &UnionPattern{dim: r.DimCount(), parts: parts}
}

// MinBound returns, for every line parallel to the axis that crosses p,
// the point of p with the minimal coordinate along the axis.
func MinBound(p Pattern, axis int) (Pattern, error) {
	return bound(p, axis, false)
}

// MaxBound is like MinBound, keeping the maximal coordinate instead.
func MaxBound(p Pattern, axis int) (Pattern, error) {
	return bound(p, axis, true)
}

func bound(p Pattern, axis int, upper bool) (Pattern, error) {
	if axis < 0 || axis >= p.DimCount() {
		return nil, fmt.Errorf("%w: axis %d of %dD pattern", ErrDimensionMismatch, axis, p.DimCount())
	}
	switch t := p.(type) {
	case *Rect:
		ranges := append([]IRange(nil), t.ranges...)
		if upper {
			ranges[axis].Min = ranges[axis].Max
		} else {
			ranges[axis].Max = ranges[axis].Min
		}
		return &Rect{origin: t.origin, steps: t.steps, ranges: ranges}, nil
	case *Rows:
		if axis == 0 {
			return rowsBound(t, upper), nil
		}
		return gridBound(t, axis, upper), nil
	case UniformGrid:
		return gridBound(t, axis, upper), nil
	}
	best := make(map[Point]Point)
	for _, q := range p.Points() {
		key := q
		key.coord[axis] = 0
		if cur, ok := best[key]; !ok || (upper && q.coord[axis] > cur.coord[axis]) ||
			(!upper && q.coord[axis] < cur.coord[axis]) {
			best[key] = q
		}
	}
	set := make(map[Point]struct{}, len(best))
	for _, q := range best {
		set[q] = struct{}{}
	}
	return pointsFromSet(p.DimCount(), set)
}

func sumOfUnitRects(patterns []Pattern) (Area, bool) {
	var ranges []IRange
	for _, p := range patterns {
		area, ok := unitRect(p)
		if !ok {
			return Area{}, false
		}
		if ranges == nil {
			ranges = area.Ranges()
			continue
		}
		for k, r := range area.ranges {
			ranges[k].Min += r.Min
			ranges[k].Max += r.Max
		}
	}
	return Area{ranges: ranges}, true
}

// rowsBound keeps one end of every row: the first run's start or the last run's end.
func rowsBound(r *Rows, upper bool) *Rows {
	runs := make([]Run, 0, len(r.runs))
	for _, run := range r.runs {
		x := run.X.Min
		if upper {
			x = run.X.Max
		}
		if n := len(runs) - 1; n >= 0 && runs[n].Key == run.Key {
			if upper {
				runs[n].X = IRange{Min: x, Max: x}
			}
			continue
		}
		runs = append(runs, Run{Key: run.Key, X: IRange{Min: x, Max: x}})
	}
	return newRows(r.origin, r.steps, runs)
}

func gridBound(g UniformGrid, axis int, upper bool) Pattern {
	best := make(map[IPoint]IPoint)
	for _, i := range g.IndexPoints() {
		key := i.WithCoord(axis, 0)
		if cur, ok := best[key]; !ok || (upper && i.coord[axis] > cur.coord[axis]) ||
			(!upper && i.coord[axis] < cur.coord[axis]) {
			best[key] = i
		}
	}
	indexes := make([]IPoint, 0, len(best))
	for _, i := range best {
		indexes = append(indexes, i)
	}
	return newGrid(g.Origin(), g.Steps(), indexes)
}
