package pattern_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/strel/pattern"
)

func disk(t *testing.T, center pattern.Point, r float64) *pattern.Rows {
	t.Helper()
	d, err := pattern.NewSphere(center, r)
	require.NoError(t, err)
	return d
}

func indexSet(p pattern.UniformGrid) map[pattern.IPoint]struct{} {
	set := make(map[pattern.IPoint]struct{})
	for _, i := range p.IndexPoints() {
		set[i] = struct{}{}
	}
	return set
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNewRows_Normalizes(t *testing.T) {
	rows, err := pattern.NewRows(pattern.Origin(2), []float64{1, 1}, []pattern.Run{
		{Key: pattern.IPt(7, 1), X: pattern.IR(3, 5)},
		{Key: pattern.IPt(0, 0), X: pattern.IR(0, 2)},
		{Key: pattern.IPt(0, 0), X: pattern.IR(2, 4)},
		{Key: pattern.IPt(0, 0), X: pattern.IR(5, 6)},
		{Key: pattern.IPt(0, 1), X: pattern.IR(9, 8)},
	})
	require.NoError(t, err)
	assert.Equal(t, []pattern.Run{
		{Key: pattern.IPt(0, 0), X: pattern.IR(0, 6)},
		{Key: pattern.IPt(0, 1), X: pattern.IR(3, 5)},
	}, rows.Runs())
	assert.Equal(t, 10, rows.PointCount())
	assert.Equal(t, pattern.IR(0, 6), rows.IndexRange(0))
	assert.Equal(t, pattern.IR(0, 1), rows.IndexRange(1))

	points := rows.Points()
	require.Len(t, points, 10)
	assert.Equal(t, pattern.Pt(0, 0), points[0])
	assert.Equal(t, pattern.Pt(5, 1), points[9])
	assert.False(t, rows.IsActuallyRectangular())
}

func TestNewRows_Errors(t *testing.T) {
	_, err := pattern.NewRows(pattern.Origin(2), []float64{1, 1}, nil)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)

	_, err = pattern.NewRows(pattern.Origin(2), []float64{1, 1}, []pattern.Run{{Key: pattern.IPt(0, 0), X: pattern.IR(1, 0)}})
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)

	_, err = pattern.NewRows(pattern.Origin(2), []float64{1, 1}, []pattern.Run{{Key: pattern.IPt(0, 0, 0), X: pattern.IR(0, 0)}})
	assert.ErrorIs(t, err, pattern.ErrDimensionMismatch)

	_, err = pattern.NewRows(pattern.Origin(2), []float64{1, -1}, []pattern.Run{{Key: pattern.IPt(0, 0), X: pattern.IR(0, 0)}})
	assert.ErrorIs(t, err, pattern.ErrInvalidGrid)
}

func TestNewSphere_OneRunPerRow(t *testing.T) {
	d := disk(t, pattern.Origin(2), 5000)
	assert.Len(t, d.Runs(), 10001)
	assert.InEpsilon(t, math.Pi*5000*5000, float64(d.PointCount()), 0.001)
	assert.Equal(t, pattern.Range{Min: -5000, Max: 5000}, d.CoordRange(1))
	assert.False(t, d.IsActuallyRectangular())
}

//----------------------------------------------------------------------------//
// Agreement with explicit grids
//----------------------------------------------------------------------------//

func TestRows_MatchesGrid(t *testing.T) {
	d := disk(t, pattern.Origin(2), 7.3)
	g := integerPattern(t, d.IndexPoints()...)

	assert.Equal(t, g.Points(), d.Points())
	assert.Equal(t, pattern.RoundedPoints(pattern.Surface(g)), pattern.RoundedPoints(pattern.Surface(d)))

	for axis := 0; axis < 2; axis++ {
		minRows, err := pattern.MinBound(d, axis)
		require.NoError(t, err)
		minGrid, err := pattern.MinBound(g, axis)
		require.NoError(t, err)
		assert.True(t, pattern.Equal(minGrid, minRows), "min bound along %d", axis)

		maxRows, err := pattern.MaxBound(d, axis)
		require.NoError(t, err)
		maxGrid, err := pattern.MaxBound(g, axis)
		require.NoError(t, err)
		assert.True(t, pattern.Equal(maxGrid, maxRows), "max bound along %d", axis)
	}

	assert.True(t, pattern.Equal(pattern.Scale(g, -1, 2), pattern.Scale(d, -1, 2)))

	for _, q := range []pattern.Point{pattern.Pt(7, 1), pattern.Pt(6, 4), pattern.Pt(7, 3), pattern.Pt(0.5, 0), pattern.Pt(-7, 0)} {
		assert.Equal(t, pattern.Contains(g, q), pattern.Contains(d, q), "%v", q)
	}
	assert.True(t, d.ContainsIndex(pattern.IPt(6, 4)))
	assert.False(t, d.ContainsIndex(pattern.IPt(7, 3)))
	assert.False(t, d.ContainsIndex(pattern.IPt(0, 0, 0)))
}

func TestRows_Surface3D(t *testing.T) {
	ball := disk(t, pattern.Origin(3), 4)
	g := integerPattern(t, ball.IndexPoints()...)
	assert.Equal(t, pattern.RoundedPoints(pattern.Surface(g)), pattern.RoundedPoints(ball.Surface()))
}

//----------------------------------------------------------------------------//
// Set operations
//----------------------------------------------------------------------------//

func TestRows_DifferenceAndUnion(t *testing.T) {
	a := disk(t, pattern.Origin(2), 5)
	b := disk(t, pattern.Pt(3, 1), 3)
	inA, inB := indexSet(a), indexSet(b)

	diff, err := a.Difference(b)
	require.NoError(t, err)
	var want []pattern.IPoint
	for _, i := range a.IndexPoints() {
		if _, ok := inB[i]; !ok {
			want = append(want, i)
		}
	}
	assert.Equal(t, want, diff.IndexPoints())

	union, err := a.Union(b)
	require.NoError(t, err)
	for i := range inB {
		inA[i] = struct{}{}
	}
	assert.Equal(t, len(inA), union.PointCount())
	assert.Equal(t, indexSet(union), inA)

	_, err = a.Difference(a)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)

	shifted, err := pattern.Shift(a, pattern.Pt(1, 0))
	require.NoError(t, err)
	_, err = a.Difference(shifted.(*pattern.Rows))
	assert.ErrorIs(t, err, pattern.ErrInvalidGrid)
}

func TestAsRows(t *testing.T) {
	r := square(t, -1, 1)
	rows, ok := pattern.AsRows(r)
	require.True(t, ok)
	assert.Len(t, rows.Runs(), 3)
	assert.True(t, rows.IsActuallyRectangular())
	assert.True(t, pattern.Equal(r, rows))

	g := integerPattern(t, pattern.IPt(0, 0), pattern.IPt(1, 0), pattern.IPt(3, 0), pattern.IPt(1, 2))
	rows, ok = pattern.AsRows(g)
	require.True(t, ok)
	assert.Len(t, rows.Runs(), 3)
	assert.True(t, pattern.Equal(g, rows))

	set, err := pattern.NewPointSet(r.Points())
	require.NoError(t, err)
	_, ok = pattern.AsRows(set)
	assert.False(t, ok)
}

func TestUnitRows(t *testing.T) {
	shifted, err := pattern.Shift(disk(t, pattern.Origin(2), 3), pattern.Pt(3, -2))
	require.NoError(t, err)
	rows, ok := pattern.UnitRows(shifted)
	require.True(t, ok)
	assert.Equal(t, pattern.Origin(2), rows.Origin())
	assert.True(t, pattern.Equal(shifted, rows))
	assert.Equal(t, pattern.Range{Min: 0, Max: 6}, rows.CoordRange(0))

	_, ok = pattern.UnitRows(pattern.Multiply(square(t, -1, 1), 2))
	assert.False(t, ok)

	half, err := pattern.Shift(square(t, -1, 1), pattern.Pt(0.5, 0))
	require.NoError(t, err)
	_, ok = pattern.UnitRows(half)
	assert.False(t, ok)
}
