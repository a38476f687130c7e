package geodesic

import "errors"

var (
	// ErrNonPositiveDt indicates a zero or negative time increment.
	ErrNonPositiveDt = errors.New("geodesic: dt must be positive")

	// ErrNoStepBudget indicates a zero or negative maximum step count.
	ErrNoStepBudget = errors.New("geodesic: step budget must be positive")

	// ErrUnknownIntegrator indicates an unrecognized integrator name.
	ErrUnknownIntegrator = errors.New("geodesic: unknown integrator")

	// ErrNoConvergence indicates the shooting search found no heading
	// that brings the path near the target.
	ErrNoConvergence = errors.New("geodesic: shooting search did not converge")
)
