package strel

import (
	"math"

	"github.com/gogpu/strel/pattern"
)

// profile returns the height of a surface of revolution at squared distance
// r2 from its axis.
type profile func(r2 float64) float64

// profileFunc builds a profile from the full diameter d and the z extent
// (already scaled by the element type).
type profileFunc func(d, z float64) profile

// hemiEllipsoid is the upper half of the ellipsoid of revolution with
// semi-axes d/2 and z/2; it is 0 outside the ellipsoid.
func hemiEllipsoid(d, z float64) profile {
	a, c := 0.5*d, 0.5*z
	return func(r2 float64) float64 {
		t := 1 - r2/(a*a)
		if t < 0 {
			return 0
		}
		return c * math.Sqrt(t)
	}
}

// lowerHyperboloid is the lower sheet of the hyperboloid of revolution
// −c·√(1 + r²/a²) with a = d/2, c = z/2.
func lowerHyperboloid(d, z float64) profile {
	a, c := 0.5*d, 0.5*z
	return func(r2 float64) float64 {
		return -c * math.Sqrt(1+r2/(a*a))
	}
}

// paraboloid is k·r² with k = −z/(d²/2): it descends by z at r = d/√2.
func paraboloid(d, z float64) profile {
	k := -z / (0.5 * d * d)
	return func(r2 float64) float64 {
		return k * r2
	}
}

func checkQuadric(dCircle, d float64, bounded bool) error {
	if dCircle > maxDiameter {
		return outOfRange("too large circle diameter %v (maximal possible value is %d)", dCircle, maxDiameter)
	}
	if dCircle < 0 {
		return outOfRange("negative circle diameter %v", dCircle)
	}
	if !(d > 0) {
		return outOfRange("zero or negative diameter %v", d)
	}
	if bounded && dCircle > d {
		return outOfRange("circle diameter %v is greater than sphere diameter %v", dCircle, d)
	}
	return nil
}

// quadricSurface builds "<name>-surface dCircle d z [x y [z0]]": one point
// above every point of the lattice disk of diameter dCircle.
func quadricSurface(newProfile profileFunc, bounded bool) func(*Parser, string) (pattern.Pattern, error) {
	return func(p *Parser, s string) (pattern.Pattern, error) {
		a := newArgs(s)
		dCircle, d, z := a.float(0), a.float(1), a.float(2)*p.zScale
		x, y := a.center(3)
		z0 := a.optional(5) * p.zScale
		if a.err != nil {
			return nil, a.err
		}
		if err := checkQuadric(dCircle, d, bounded); err != nil {
			return nil, err
		}
		footprint, err := pattern.NewSphere(pattern.Origin(2), 0.5*dCircle)
		if err != nil {
			return nil, err
		}
		f := newProfile(d, z)
		points := make([]pattern.Point, 0, footprint.PointCount())
		for _, run := range footprint.Runs() {
			py := float64(run.Key.Coord(1))
			for ix := run.X.Min; ix <= run.X.Max; ix++ {
				px := float64(ix)
				points = append(points, pattern.Pt(px+x, py+y, f(px*px+py*py)+z0))
			}
		}
		res, err := pattern.NewPattern(points)
		if err != nil {
			return nil, err
		}
		if p.integer {
			return pattern.Round(res), nil
		}
		return res, nil
	}
}

// quadricSolid builds "<name> dCircle d z zStep [x y [z0]]": above every
// point of the lattice disk, the multiples of zStep from the height at the
// disk edge up to the surface. For integer element types zStep is rounded up
// and z0 rounded.
func quadricSolid(newProfile profileFunc, bounded bool) func(*Parser, string) (pattern.Pattern, error) {
	return func(p *Parser, s string) (pattern.Pattern, error) {
		a := newArgs(s)
		dCircle, d, z := a.float(0), a.float(1), a.float(2)*p.zScale
		zStep := a.float(3) * p.zScale
		x, y := a.center(4)
		z0 := a.optional(6) * p.zScale
		if a.err != nil {
			return nil, a.err
		}
		if p.integer {
			zStep = math.Ceil(zStep)
			z0 = roundHalfUp(z0)
		}
		if err := checkQuadric(dCircle, d, bounded); err != nil {
			return nil, err
		}
		if !(zStep > 0) || math.IsInf(zStep, 0) {
			return nil, outOfRange("z step %v must be positive", zStep)
		}
		footprint, err := pattern.NewSphere(pattern.Origin(2), 0.5*dCircle)
		if err != nil {
			return nil, err
		}
		f := newProfile(d, z)
		r := 0.5 * dCircle
		kMin := int64(math.Ceil(f(r*r) / zStep))
		// levels above a footprint point form the prefix kMin..kTop of the
		// column, so each level of a footprint row is a run along x
		levels := func(px, py int64) int64 {
			top := f(float64(px*px + py*py))
			kTop := int64(math.Floor(top / zStep))
			for float64(kTop+1)*zStep <= top {
				kTop++
			}
			for kTop >= kMin && float64(kTop)*zStep > top {
				kTop--
			}
			return max(0, kTop-kMin+1)
		}
		var runs []pattern.Run
		emit := func(py, k, x0, x1 int64) {
			runs = append(runs, pattern.Run{Key: pattern.IPt(0, py, k), X: pattern.IR(x0, x1)})
		}
		for _, run := range footprint.Runs() {
			py := run.Key.Coord(1)
			var starts []int64
			for px := run.X.Min; px <= run.X.Max; px++ {
				n := levels(px, py)
				for j := n; j < int64(len(starts)); j++ {
					emit(py, kMin+j, starts[j], px-1)
				}
				starts = starts[:min(n, int64(len(starts)))]
				for int64(len(starts)) < n {
					starts = append(starts, px)
				}
			}
			for j, start := range starts {
				emit(py, kMin+int64(j), start, run.X.Max)
			}
		}
		g, err := pattern.NewRows(pattern.Origin(3), []float64{1, 1, zStep}, runs)
		if err != nil {
			return nil, err
		}
		return pattern.Shift(g, pattern.Pt(x, y, z0))
	}
}
