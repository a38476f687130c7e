package geodesic

import "github.com/geodesic-lab/geotrace/internal/geometry"

// Walker is the mutable ODE-state cell owned by an animation driver.
// The driver calls Advance once per tick with the elapsed real time; the
// walker splits it across sub-steps for stability at high speed and
// accumulates the emitted points. Not safe for concurrent use.
type Walker struct {
	surf     geometry.Surface
	integ    Integrator
	state    State
	subSteps int

	// Path grows by subSteps points per Advance until Reset.
	Path Path
}

// NewWalker starts a walker at the given state. subSteps below 1 is
// treated as 1.
func NewWalker(surf geometry.Surface, integ Integrator, st State, subSteps int) *Walker {
	if subSteps < 1 {
		subSteps = 1
	}
	return &Walker{
		surf:     surf,
		integ:    integ,
		state:    st,
		subSteps: subSteps,
		Path:     Path{st.Point()},
	}
}

// State returns a snapshot of the current ODE state.
func (w *Walker) State() State { return w.state }

// Advance integrates the elapsed time in subSteps equal increments and
// appends each intermediate point to the path.
func (w *Walker) Advance(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	dt := elapsed / float64(w.subSteps)
	for i := 0; i < w.subSteps; i++ {
		w.state = w.integ.Step(w.surf, w.state, dt)
		w.Path = append(w.Path, w.state.Point())
	}
}

// Reset restarts the walker from a new initial state, dropping the
// accumulated path.
func (w *Walker) Reset(st State) {
	w.state = st
	w.Path = Path{st.Point()}
}

// SetSurface swaps the surface under the walker, keeping the current
// parameter-space state. The caller decides whether to Reset as well.
func (w *Walker) SetSurface(surf geometry.Surface) { w.surf = surf }

// SetIntegrator swaps the integration scheme mid-flight.
func (w *Walker) SetIntegrator(integ Integrator) { w.integ = integ }
