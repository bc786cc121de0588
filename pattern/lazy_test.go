package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/strel/pattern"
)

func segment(t *testing.T, dx, dy int64) *pattern.Grid {
	t.Helper()
	return integerPattern(t, pattern.IPt(0, 0), pattern.IPt(dx, dy))
}

func TestMinkowskiMultiple_StoresCount(t *testing.T) {
	seg := segment(t, 1, 1)
	m, err := pattern.MinkowskiMultiple(seg, 1000)
	require.NoError(t, err)

	sum, ok := m.(*pattern.Sum)
	require.True(t, ok, "want *Sum, got %T", m)
	require.Len(t, sum.Terms(), 1)
	assert.Equal(t, 1000, sum.Terms()[0].Count)

	// range known without enumeration
	assert.Equal(t, pattern.Range{Min: 0, Max: 1000}, m.CoordRange(0))
	assert.Equal(t, 1001, m.PointCount())
}

func TestSum_ShiftKeepsTerms(t *testing.T) {
	m, err := pattern.MinkowskiMultiple(segment(t, 1, 0), 3)
	require.NoError(t, err)

	shifted, err := pattern.Shift(m, pattern.Pt(10, 5))
	require.NoError(t, err)

	sum, ok := shifted.(*pattern.Sum)
	require.True(t, ok)
	assert.Equal(t, pattern.Pt(10, 5), sum.Offset())
	assert.Equal(t, 3, sum.Terms()[0].Count)

	want := integerPattern(t, pattern.IPt(10, 5), pattern.IPt(11, 5), pattern.IPt(12, 5), pattern.IPt(13, 5))
	assert.True(t, pattern.Equal(want, shifted))
	assert.Equal(t, pattern.Range{Min: 10, Max: 13}, shifted.CoordRange(0))
}

func TestSum_MergesRepeatedTerms(t *testing.T) {
	seg := segment(t, 0, 1)
	a, err := pattern.MinkowskiMultiple(seg, 2)
	require.NoError(t, err)
	sum, err := pattern.MinkowskiSum(a, seg)
	require.NoError(t, err)

	s := sum.(*pattern.Sum)
	require.Len(t, s.Terms(), 1)
	assert.Equal(t, 3, s.Terms()[0].Count)
	assert.Equal(t, 4, sum.PointCount())
}

func TestSum_ScaleNegative(t *testing.T) {
	m, err := pattern.MinkowskiMultiple(segment(t, 1, 2), 2)
	require.NoError(t, err)
	shifted, err := pattern.Shift(m, pattern.Pt(1, 1))
	require.NoError(t, err)

	flipped := pattern.Multiply(shifted, -1)
	want := integerPattern(t, pattern.IPt(-1, -1), pattern.IPt(-2, -3), pattern.IPt(-3, -5))
	assert.True(t, pattern.Equal(want, flipped), "got %v", flipped.Points())
}

func TestUnion_FlattensAndRanges(t *testing.T) {
	a := square(t, -1, 1)
	b := integerPattern(t, pattern.IPt(5, 0))
	u1, err := pattern.Union(a, b)
	require.NoError(t, err)
	u2, err := pattern.Union(u1, integerPattern(t, pattern.IPt(0, -7)))
	require.NoError(t, err)

	assert.Len(t, u2.(*pattern.UnionPattern).Parts(), 3)
	assert.Equal(t, pattern.Range{Min: -1, Max: 5}, u2.CoordRange(0))
	assert.Equal(t, pattern.Range{Min: -7, Max: 1}, u2.CoordRange(1))
	assert.Equal(t, 11, u2.PointCount())
}

func TestNewPattern(t *testing.T) {
	p, err := pattern.NewPattern([]pattern.Point{pattern.Pt(1, 2), pattern.Pt(1, 2), pattern.Pt(0, 0)})
	require.NoError(t, err)
	_, isGrid := p.(*pattern.Grid)
	assert.True(t, isGrid)
	assert.Equal(t, 2, p.PointCount())

	p, err = pattern.NewPattern([]pattern.Point{pattern.Pt(0.5, 2)})
	require.NoError(t, err)
	_, isSet := p.(*pattern.PointSet)
	assert.True(t, isSet)

	_, err = pattern.NewPattern(nil)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)
}
