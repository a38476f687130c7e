package geodesic

import (
	"context"
	"math"
	"sync"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Fan traces count geodesics radiating from origin with headings
// spread evenly over the full circle, one goroutine per heading. Every
// ray starts at unit metric speed so the fan forms a geodesic
// wavefront after equal trace time.
func Fan(ctx context.Context, surf geometry.Surface, origin Point, count int, cfg TraceConfig) ([]Path, error) {
	if count < 1 {
		count = 1
	}

	paths := make([]Path, count)
	errs := make([]error, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			heading := 2 * math.Pi * float64(idx) / float64(count)
			st := State{
				U:  origin.U,
				V:  origin.V,
				DU: math.Cos(heading),
				DV: math.Sin(heading),
			}.Normalize(surf)

			paths[idx], errs[idx] = Trace(ctx, surf, st, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return paths, nil
}
