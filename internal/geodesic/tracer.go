package geodesic

import (
	"context"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// TraceConfig bounds a batch solve.
type TraceConfig struct {
	// Dt is the integration time increment.
	Dt float64

	// MaxSteps caps the number of steps taken.
	MaxSteps int

	// MaxLength caps the accumulated metric-weighted path length.
	// Zero disables the length check entirely.
	MaxLength float64

	// Integrator names the scheme; batch tracing keeps the legacy
	// Euler scheme when left empty.
	Integrator string

	// NormalizeVelocity rescales the initial velocity to unit metric
	// length before integration. When off, the given magnitude sets
	// the traversal speed along the geodesic.
	NormalizeVelocity bool
}

// DefaultTraceConfig matches the everyday single-shot solve.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		Dt:        0.01,
		MaxSteps:  2000,
		MaxLength: 0,
	}
}

func (cfg TraceConfig) validate() error {
	if cfg.Dt <= 0 {
		return ErrNonPositiveDt
	}
	if cfg.MaxSteps <= 0 {
		return ErrNoStepBudget
	}
	return nil
}

// Trace integrates from the initial state until the step budget is
// exhausted or the accumulated length reaches the cap. The returned path
// always includes the starting point; when the cap is hit, the step that
// crossed it is still appended before iteration halts, so the last point
// may overshoot the cap by one step's worth. NaN states are appended
// like any other; they are the consumer's truncation problem.
func Trace(ctx context.Context, surf geometry.Surface, st State, cfg TraceConfig) (Path, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	name := cfg.Integrator
	if name == "" {
		name = "euler"
	}
	integ, err := NewIntegrator(name)
	if err != nil {
		return nil, err
	}

	if cfg.NormalizeVelocity {
		st = st.Normalize(surf)
	}

	path := Path{st.Point()}
	total := 0.0

	for i := 0; i < cfg.MaxSteps; i++ {
		select {
		case <-ctx.Done():
			return path, ctx.Err()
		default:
		}

		g := geometry.MetricAt(surf, st.U, st.V)
		next := integ.Step(surf, st, cfg.Dt)
		total += g.Length(next.U-st.U, next.V-st.V)

		path = append(path, next.Point())
		st = next

		if cfg.MaxLength > 0 && total >= cfg.MaxLength {
			break
		}
	}

	return path, nil
}
