package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/strel/pattern"
)

func TestNewSphere_Counts(t *testing.T) {
	tests := []struct {
		dim  int
		r    float64
		want int
	}{
		{2, 0, 1},
		{2, 0.5, 1},
		{2, 1, 5},
		{2, 1.000001, 5},
		{2, 1.5, 9},
		{2, 2, 13},
		{2, 5, 81},
		{3, 1, 7},
		{1, 3, 7},
		{4, 1.000001, 9},
	}
	for _, tt := range tests {
		s, err := pattern.NewSphere(pattern.Origin(tt.dim), tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.dim, s.DimCount())
		assert.Equal(t, tt.want, s.PointCount(), "dim %d r %v", tt.dim, tt.r)
	}
}

func TestNewSphere_BoundaryPointsIncluded(t *testing.T) {
	s, err := pattern.NewSphere(pattern.Origin(2), 5)
	require.NoError(t, err)
	for _, q := range []pattern.Point{pattern.Pt(3, 4), pattern.Pt(-4, 3), pattern.Pt(5, 0), pattern.Pt(0, -5)} {
		assert.True(t, pattern.Contains(s, q), "%v", q)
	}
	assert.False(t, pattern.Contains(s, pattern.Pt(4, 4)))
	assert.Equal(t, pattern.Range{Min: -5, Max: 5}, s.CoordRange(0))
}

func TestNewSphere_Errors(t *testing.T) {
	_, err := pattern.NewSphere(pattern.Point{}, 1)
	assert.ErrorIs(t, err, pattern.ErrTooManyDimensions)

	_, err = pattern.NewSphere(pattern.Origin(2), -1)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)

	// no lattice point within 0.1 of (0.5, 0.5)
	_, err = pattern.NewSphere(pattern.Pt(0.5, 0.5), 0.1)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)
}

func TestNewSphere_Center(t *testing.T) {
	s, err := pattern.NewSphere(pattern.Pt(10, -3), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, s.PointCount())
	assert.True(t, pattern.Contains(s, pattern.Pt(11, -3)))
	assert.True(t, pattern.Contains(s, pattern.Pt(10, -4)))

	// 4 lattice points around a cell center
	s, err = pattern.NewSphere(pattern.Pt(0.5, 0.5), 0.75)
	require.NoError(t, err)
	assert.Equal(t, 4, s.PointCount())
}

func TestNewEllipsoid(t *testing.T) {
	e, err := pattern.NewEllipsoid(3, 1)
	require.NoError(t, err)
	assert.Equal(t, pattern.Range{Min: -3, Max: 3}, e.CoordRange(0))
	assert.Equal(t, pattern.Range{Min: -1, Max: 1}, e.CoordRange(1))
	// 7 points on row 0, only the axis point on rows ±1
	assert.Equal(t, 9, e.PointCount())

	circle, err := pattern.NewEllipsoid(4, 4)
	require.NoError(t, err)
	sphere, err := pattern.NewSphere(pattern.Origin(2), 4)
	require.NoError(t, err)
	assert.True(t, pattern.Equal(circle, sphere))

	_, err = pattern.NewEllipsoid(1, 0)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)
}
