package geodesic

import (
	"context"
	"math"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// ShootConfig bounds the boundary-seeking heading search.
type ShootConfig struct {
	Dt       float64
	MaxSteps int

	// Headings is the coarse scan resolution over [0, 2π).
	Headings int

	// Refinements halves the heading bracket around the best coarse
	// hit this many times.
	Refinements int

	// Tolerance is the parameter-space miss distance below which the
	// search is considered converged.
	Tolerance float64
}

func DefaultShootConfig() ShootConfig {
	return ShootConfig{
		Dt:          0.01,
		MaxSteps:    1500,
		Headings:    72,
		Refinements: 12,
		// The path is sampled every Dt of arc, so the achievable miss
		// distance is bounded below by about half a step.
		Tolerance: 0.02,
	}
}

// ShootResult is the best heading found and the path it produced,
// truncated at its closest approach to the target.
type ShootResult struct {
	Heading float64
	Miss    float64
	Path    Path
}

// Shoot approximately connects two parameter-space points by scanning
// initial headings from the start point and integrating each candidate
// with RK4. Best-effort: it reports ErrNoConvergence when no heading
// brings the path within the tolerance, still returning the closest
// candidate found.
func Shoot(ctx context.Context, surf geometry.Surface, from, to Point, cfg ShootConfig) (ShootResult, error) {
	if cfg.Headings < 2 {
		cfg = DefaultShootConfig()
	}
	if cfg.Dt <= 0 {
		return ShootResult{}, ErrNonPositiveDt
	}
	if cfg.MaxSteps <= 0 {
		return ShootResult{}, ErrNoStepBudget
	}

	best := ShootResult{Miss: math.Inf(1)}
	evalHeading := func(theta float64) ShootResult {
		st := State{U: from.U, V: from.V, DU: math.Cos(theta), DV: math.Sin(theta)}
		st = st.Normalize(surf)
		path, _ := Trace(ctx, surf, st, TraceConfig{
			Dt:         cfg.Dt,
			MaxSteps:   cfg.MaxSteps,
			Integrator: "rk4",
		})
		miss, at := closestApproach(path, to)
		return ShootResult{Heading: theta, Miss: miss, Path: path[:at+1]}
	}

	step := 2 * math.Pi / float64(cfg.Headings)
	for i := 0; i < cfg.Headings; i++ {
		select {
		case <-ctx.Done():
			return best, ctx.Err()
		default:
		}
		if r := evalHeading(float64(i) * step); r.Miss < best.Miss {
			best = r
		}
	}

	// Bisect the bracket around the coarse winner.
	span := step
	for i := 0; i < cfg.Refinements; i++ {
		span /= 2
		for _, theta := range [2]float64{best.Heading - span, best.Heading + span} {
			if r := evalHeading(theta); r.Miss < best.Miss {
				best = r
			}
		}
	}

	if best.Miss > cfg.Tolerance {
		return best, ErrNoConvergence
	}
	return best, nil
}

func closestApproach(path Path, to Point) (miss float64, at int) {
	miss = math.Inf(1)
	for i, p := range path {
		d := math.Hypot(p.U-to.U, p.V-to.V)
		if d < miss {
			miss = d
			at = i
		}
	}
	return miss, at
}
