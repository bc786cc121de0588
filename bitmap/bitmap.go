// Package bitmap converts 2D patterns to 0/1 text matrices and grayscale images.
//
// Format is the inverse of the 0/1 matrix literal accepted by strel: parsing
// the text it returns gives back the same pattern, up to a translation.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/strel/pattern"
)

// MaxArea is the largest bounding box, in lattice points, that can be converted.
const MaxArea = 1 << 26

var (
	// ErrNot2D is returned for patterns that are not two-dimensional.
	ErrNot2D = errors.New("bitmap: pattern is not 2D")

	// ErrTooLarge is returned when the bounding box exceeds MaxArea.
	ErrTooLarge = errors.New("bitmap: pattern bounding box is too large")
)

// box returns the rounded bounding box of p and the set of its rounded points.
func box(p pattern.Pattern) (pattern.Area, []pattern.IPoint, error) {
	if p.DimCount() != 2 {
		return pattern.Area{}, nil, fmt.Errorf("%w: %d dimensions", ErrNot2D, p.DimCount())
	}
	area := pattern.RoundedArea(p)
	if area.Volume() > MaxArea {
		return pattern.Area{}, nil, fmt.Errorf("%w: %v", ErrTooLarge, area)
	}
	return area, pattern.RoundedPoints(p), nil
}

// Format returns the rounded points of p as rows of '0' and '1' covering
// its bounding box, top row (minimal y) first, joined by "\n".
func Format(p pattern.Pattern) (string, error) {
	area, points, err := box(p)
	if err != nil {
		return "", err
	}
	w := int(area.Range(0).Size())
	h := int(area.Range(1).Size())
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = []byte(strings.Repeat("0", w))
	}
	x0, y0 := area.Range(0).Min, area.Range(1).Min
	for _, q := range points {
		rows[q.Coord(1)-y0][q.Coord(0)-x0] = '1'
	}
	var sb strings.Builder
	sb.Grow(h * (w + 1))
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(row)
	}
	return sb.String(), nil
}

// Render draws p as a grayscale image of its bounding box: points are white,
// everything else black. Pixel (0, 0) is the minimal corner of the box.
func Render(p pattern.Pattern) (*image.Gray, error) {
	area, points, err := box(p)
	if err != nil {
		return nil, err
	}
	w := int(area.Range(0).Size())
	h := int(area.Range(1).Size())
	img := image.NewGray(image.Rect(0, 0, w, h))
	x0, y0 := area.Range(0).Min, area.Range(1).Min
	for _, q := range points {
		img.SetGray(int(q.Coord(0)-x0), int(q.Coord(1)-y0), color.Gray{Y: 0xff})
	}
	return img, nil
}

// Upscale enlarges img by an integer factor, keeping pixels sharp.
// A factor below 2 returns img itself.
func Upscale(img *image.Gray, factor int) *image.Gray {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// SavePNG writes img to the file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
