package pattern

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"
)

// Run is a segment of grid indexes along axis 0: Key with coordinate 0
// replaced by every value of X. Coordinate 0 of Key is ignored.
type Run struct {
	Key IPoint
	X   IRange
}

// Rows is a uniform grid pattern stored as runs of indexes along axis 0.
// A convex shape needs one run per row, so a disk of diameter d takes O(d)
// memory; points are enumerated only when Points or IndexPoints is called.
type Rows struct {
	origin Point
	steps  []float64
	// runs are sorted by key, then by X; runs of one key neither overlap nor touch.
	runs   []Run
	count  int64
	ranges []IRange

	indexesOnce sync.Once
	indexes     []IPoint
	pointsOnce  sync.Once
	points      []Point
}

// NewRows creates a uniform grid pattern from runs of indexes.
// Runs may come in any order and may overlap; empty runs are skipped.
func NewRows(origin Point, steps []float64, runs []Run) (*Rows, error) {
	dim := origin.Dim()
	if err := checkSteps(dim, steps); err != nil {
		return nil, err
	}
	for _, r := range runs {
		if r.Key.Dim() != dim {
			return nil, fmt.Errorf("%w: run key %v in %dD grid", ErrDimensionMismatch, r.Key, dim)
		}
	}
	rows := newRows(origin, append([]float64(nil), steps...), append([]Run(nil), runs...))
	if rows == nil {
		return nil, ErrEmptyPattern
	}
	return rows, nil
}

// newRows takes ownership of runs and returns nil when all of them are empty.
func newRows(origin Point, steps []float64, runs []Run) *Rows {
	n := 0
	for _, r := range runs {
		if r.X.Empty() {
			continue
		}
		r.Key.coord[0] = 0
		runs[n] = r
		n++
	}
	if n == 0 {
		return nil
	}
	runs = runs[:n]
	slices.SortFunc(runs, compareRuns)
	merged := runs[:1]
	for _, r := range runs[1:] {
		last := &merged[len(merged)-1]
		if r.Key == last.Key && r.X.Min <= last.X.Max+1 {
			last.X.Max = max(last.X.Max, r.X.Max)
			continue
		}
		merged = append(merged, r)
	}

	dim := origin.Dim()
	rows := &Rows{origin: origin, steps: steps, runs: merged, ranges: make([]IRange, dim)}
	for k := range rows.ranges {
		rows.ranges[k] = IRange{Min: math.MaxInt64, Max: math.MinInt64}
	}
	for _, r := range merged {
		rows.count += r.X.Size()
		rows.ranges[0].Min = min(rows.ranges[0].Min, r.X.Min)
		rows.ranges[0].Max = max(rows.ranges[0].Max, r.X.Max)
		for k := 1; k < dim; k++ {
			rows.ranges[k].Min = min(rows.ranges[k].Min, r.Key.coord[k])
			rows.ranges[k].Max = max(rows.ranges[k].Max, r.Key.coord[k])
		}
	}
	return rows
}

func compareRuns(a, b Run) int {
	if c := a.Key.compare(b.Key); c != 0 {
		return c
	}
	return cmp.Compare(a.X.Min, b.X.Min)
}

func (r *Rows) DimCount() int { return r.origin.Dim() }

func (r *Rows) PointCount() int { return int(r.count) }

// Points lists the runs in order, which is already the sorted order.
func (r *Rows) Points() []Point {
	r.pointsOnce.Do(func() {
		r.points = make([]Point, 0, r.count)
		for _, run := range r.runs {
			i := run.Key
			for x := run.X.Min; x <= run.X.Max; x++ {
				i.coord[0] = x
				r.points = append(r.points, gridPoint(r.origin, r.steps, i))
			}
		}
	})
	return r.points
}

func (r *Rows) IndexPoints() []IPoint {
	r.indexesOnce.Do(func() {
		r.indexes = make([]IPoint, 0, r.count)
		for _, run := range r.runs {
			i := run.Key
			for x := run.X.Min; x <= run.X.Max; x++ {
				i.coord[0] = x
				r.indexes = append(r.indexes, i)
			}
		}
	})
	return r.indexes
}

// Runs returns the runs in sorted order.
func (r *Rows) Runs() []Run {
	return append([]Run(nil), r.runs...)
}

func (r *Rows) CoordRange(axis int) Range {
	return gridRange(r.origin, r.steps, r.ranges[axis], axis)
}

func (r *Rows) IsSurelyInteger() bool { return isIntegerLattice(r.origin, r.steps) }

func (r *Rows) Origin() Point { return r.origin }

func (r *Rows) Steps() []float64 { return append([]float64(nil), r.steps...) }

func (r *Rows) IndexRange(axis int) IRange { return r.ranges[axis] }

func (r *Rows) IsActuallyRectangular() bool {
	volume := int64(1)
	for _, rg := range r.ranges {
		volume *= rg.Size()
		if volume > r.count {
			return false
		}
	}
	return volume == r.count
}

// ContainsIndex reports whether the grid index i belongs to r.
func (r *Rows) ContainsIndex(i IPoint) bool {
	if i.Dim() != r.DimCount() {
		return false
	}
	key := i.WithCoord(0, 0)
	n, _ := slices.BinarySearchFunc(r.runs, Run{Key: key, X: IRange{Min: i.coord[0] + 1}}, compareRuns)
	if n == 0 {
		return false
	}
	run := r.runs[n-1]
	return run.Key == key && run.X.Contains(i.coord[0])
}

// containsPoint reports whether q is one of the grid points of r.
func (r *Rows) containsPoint(q Point) bool {
	i := IPoint{dim: q.dim}
	for k := 0; k < q.dim; k++ {
		i.coord[k] = roundHalfUp((q.coord[k] - r.origin.coord[k]) / r.steps[k])
	}
	return gridPoint(r.origin, r.steps, i) == q && r.ContainsIndex(i)
}

func (r *Rows) String() string {
	return fmt.Sprintf("%dD rows pattern (%d points in %d runs, origin %v, steps %v)",
		r.DimCount(), r.count, len(r.runs), r.origin, r.steps)
}

// Difference returns the indexes of r that are not indexes of s.
// Both patterns must lie on the same grid.
func (r *Rows) Difference(s *Rows) (*Rows, error) {
	if err := checkSameGrid(r, s); err != nil {
		return nil, err
	}
	cut := runsByKey(s.runs)
	var runs []Run
	for _, run := range r.runs {
		for _, x := range subtractRanges(run.X, cut[run.Key]) {
			runs = append(runs, Run{Key: run.Key, X: x})
		}
	}
	res := newRows(r.origin, r.steps, runs)
	if res == nil {
		return nil, ErrEmptyPattern
	}
	return res, nil
}

// Union returns the indexes of r or s. Both patterns must lie on the same grid.
func (r *Rows) Union(s *Rows) (*Rows, error) {
	if err := checkSameGrid(r, s); err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(r.runs)+len(s.runs))
	runs = append(append(runs, r.runs...), s.runs...)
	return newRows(r.origin, r.steps, runs), nil
}

// Surface returns the indexes of r having an axis neighbour outside r.
// Run ends always qualify; an inner index qualifies when one of the
// neighbouring rows does not cover it.
func (r *Rows) Surface() *Rows {
	byKey := runsByKey(r.runs)
	dim := r.DimCount()
	var runs []Run
	for _, run := range r.runs {
		var inner []IRange
		if run.X.Size() > 2 {
			inner = []IRange{{Min: run.X.Min + 1, Max: run.X.Max - 1}}
		}
		for k := 1; k < dim && len(inner) > 0; k++ {
			for _, d := range [2]int64{-1, 1} {
				n := run.Key
				n.coord[k] += d
				inner = intersectRanges(inner, byKey[n])
			}
		}
		for _, x := range subtractRanges(run.X, inner) {
			runs = append(runs, Run{Key: run.Key, X: x})
		}
	}
	return newRows(r.origin, r.steps, runs)
}

// AsRows returns a uniform grid as runs along axis 0 without enumerating
// boxes: *Rows is returned as is, *Rect and *Grid are converted.
func AsRows(p Pattern) (*Rows, bool) {
	switch t := p.(type) {
	case *Rows:
		return t, true
	case *Rect:
		return newRows(t.origin, t.steps, rectRuns(t.ranges)), true
	case *Grid:
		var runs []Run
		for _, i := range t.indexes {
			key := i.WithCoord(0, 0)
			if n := len(runs) - 1; n >= 0 && runs[n].Key == key && runs[n].X.Max+1 == i.coord[0] {
				runs[n].X.Max++
				continue
			}
			runs = append(runs, Run{Key: key, X: IRange{Min: i.coord[0], Max: i.coord[0]}})
		}
		return newRows(t.origin, t.steps, runs), true
	}
	return nil, false
}

// UnitRows is like AsRows, additionally moving the pattern onto the unit
// integer lattice (origin 0, steps 1). It fails for grids with fractional
// origin or steps other than 1.
func UnitRows(p Pattern) (*Rows, bool) {
	r, ok := AsRows(p)
	if !ok || !r.origin.IsInteger() {
		return nil, false
	}
	for _, s := range r.steps {
		if s != 1 {
			return nil, false
		}
	}
	dim := r.DimCount()
	if r.origin == Origin(dim) {
		return r, true
	}
	shift := r.origin.Round()
	runs := make([]Run, len(r.runs))
	for n, run := range r.runs {
		run.Key = run.Key.Add(shift)
		run.X = IRange{Min: run.X.Min + shift.coord[0], Max: run.X.Max + shift.coord[0]}
		runs[n] = run
	}
	return newRows(Origin(dim), unitSteps(dim), runs), true
}

func rectRuns(ranges []IRange) []Run {
	dim := len(ranges)
	cur := IPoint{dim: dim}
	for k := 1; k < dim; k++ {
		cur.coord[k] = ranges[k].Min
	}
	var runs []Run
	for {
		runs = append(runs, Run{Key: cur, X: ranges[0]})
		k := 1
		for ; k < dim; k++ {
			if cur.coord[k] < ranges[k].Max {
				cur.coord[k]++
				break
			}
			cur.coord[k] = ranges[k].Min
		}
		if k >= dim {
			return runs
		}
	}
}

func checkSameGrid(a, b *Rows) error {
	if a.DimCount() != b.DimCount() {
		return fmt.Errorf("%w: %dD and %dD", ErrDimensionMismatch, a.DimCount(), b.DimCount())
	}
	if a.origin != b.origin || !slices.Equal(a.steps, b.steps) {
		return fmt.Errorf("%w: origins %v, %v and steps %v, %v differ", ErrInvalidGrid, a.origin, b.origin, a.steps, b.steps)
	}
	return nil
}

// runsByKey groups sorted runs by their key.
func runsByKey(runs []Run) map[IPoint][]IRange {
	m := make(map[IPoint][]IRange)
	for _, r := range runs {
		m[r.Key] = append(m[r.Key], r.X)
	}
	return m
}

// subtractRanges returns x without the sorted, disjoint ranges of cut.
func subtractRanges(x IRange, cut []IRange) []IRange {
	var res []IRange
	for _, c := range cut {
		if c.Max < x.Min {
			continue
		}
		if c.Min > x.Max {
			break
		}
		if c.Min > x.Min {
			res = append(res, IRange{Min: x.Min, Max: c.Min - 1})
		}
		x.Min = c.Max + 1
		if x.Empty() {
			return res
		}
	}
	return append(res, x)
}

// intersectRanges intersects two sorted lists of disjoint ranges.
func intersectRanges(a, b []IRange) []IRange {
	var res []IRange
	for i, j := 0, 0; i < len(a) && j < len(b); {
		if r := a[i].Intersect(b[j]); !r.Empty() {
			res = append(res, r)
		}
		if a[i].Max < b[j].Max {
			i++
		} else {
			j++
		}
	}
	return res
}
