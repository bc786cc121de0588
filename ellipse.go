package strel

import (
	"errors"
	"math"
	"sync"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/strel/internal/parallel"
	"github.com/gogpu/strel/pattern"
)

// rotatedEllipse rasterizes the ellipse with diameters da, db whose da axis
// has direction phi (radians), centered at (x, y).
//
// A point p (relative to the center) is inside when stretching its component
// along the major axis by db/da moves it into the disk of diameter db.
// Rows of the bounding box are split between the pool workers: row iy goes to
// worker (iy − yMin) mod W. Each worker reports the runs of inside points
// it finds along its rows.
func (p *Parser) rotatedEllipse(da, db, phi, x, y float64) (pattern.Pattern, error) {
	if da < db {
		da, db = db, da
		phi += 0.5 * math.Pi
	}
	stretch := db/da - 1
	r := 0.5 * db
	e := vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}

	ir := int64(da) + 2
	xMin, xMax := int64(x)-ir, int64(x)+ir
	yMin, yMax := int64(y)-ir, int64(y)+ir

	pool := p.registry.pool
	workers := int64(pool.Workers())

	var (
		mu     sync.Mutex
		runs []pattern.Run
	)
	tasks := make([]func(), workers)
	for k := range tasks {
		tasks[k] = func() {
			var local []pattern.Run
			for iy := yMin + int64(k); iy <= yMax; iy += workers {
				start := int64(math.MinInt64)
				for ix := xMin; ix <= xMax+1; ix++ {
					q := vec.Vec2{X: float64(ix) - x, Y: float64(iy) - y}
					q = q.Add(e.Mul(q.Dot(e) * stretch))
					inside := ix <= xMax && q.Length() <= r
					switch {
					case inside && start == math.MinInt64:
						start = ix
					case !inside && start != math.MinInt64:
						local = append(local, pattern.Run{Key: pattern.IPt(0, iy), X: pattern.IR(start, ix-1)})
						start = math.MinInt64
					}
				}
			}
			mu.Lock()
			runs = append(runs, local...)
			mu.Unlock()
		}
	}
	if err := pool.ExecuteAll(tasks); err != nil {
		if errors.Is(err, parallel.ErrTaskPanic) {
			p.registry.logger().Warn("strel: ellipse rasterization failed", "error", err)
		}
		return nil, err
	}
	return pattern.NewRows(pattern.Origin(2), []float64{1, 1}, runs)
}
