package bitmap_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/strel"
	"github.com/gogpu/strel/bitmap"
	"github.com/gogpu/strel/pattern"
)

func parse(t *testing.T, spec string) pattern.Pattern {
	t.Helper()
	r := strel.NewRegistry()
	t.Cleanup(r.Close)
	p, err := r.Parse(spec, strel.Uint8)
	require.NoError(t, err)
	return p
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, text := range []string{
		"010\n111\n010",
		"1",
		"11\n01",
		"1001\n0110",
	} {
		s, err := bitmap.Format(parse(t, text))
		require.NoError(t, err)
		assert.Equal(t, text, s)
	}
}

func TestFormat_Shapes(t *testing.T) {
	s, err := bitmap.Format(parse(t, "circle 5"))
	require.NoError(t, err)
	assert.Equal(t, "01110\n11111\n11111\n11111\n01110", s)

	s, err = bitmap.Format(parse(t, "square 3 \\ cross"))
	require.NoError(t, err)
	assert.Equal(t, "101\n000\n101", s)
}

func TestFormat_Errors(t *testing.T) {
	_, err := bitmap.Format(parse(t, "series 1 1 0.5 3"))
	assert.ErrorIs(t, err, bitmap.ErrNot2D)

	_, err = bitmap.Format(parse(t, "points 0 0; 100000 100000"))
	assert.ErrorIs(t, err, bitmap.ErrTooLarge)
}

func TestRender(t *testing.T) {
	img, err := bitmap.Render(parse(t, "cross"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0xff), img.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(0xff), img.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(0), img.GrayAt(2, 2).Y)
}

func TestUpscale(t *testing.T) {
	img, err := bitmap.Render(parse(t, "cross"))
	require.NoError(t, err)

	big := bitmap.Upscale(img, 4)
	assert.Equal(t, image.Rect(0, 0, 12, 12), big.Bounds())
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			assert.Equal(t, img.GrayAt(x/4, y/4), big.GrayAt(x, y), "(%d, %d)", x, y)
		}
	}
	assert.Same(t, img, bitmap.Upscale(img, 1))
}

func TestSavePNG(t *testing.T) {
	img, err := bitmap.Render(parse(t, "ring 9 1"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ring.png")
	require.NoError(t, bitmap.SavePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
