package geodesic

import (
	"fmt"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Integrator advances a geodesic state by one time increment. Purely
// numeric: a degenerate input yields a (possibly NaN-valued) new state,
// never an error.
type Integrator interface {
	Step(surf geometry.Surface, st State, dt float64) State
}

// Acceleration is the geodesic equation's right-hand side for the
// velocity components: a^k = -Γ^k_{ij} v^i v^j.
func Acceleration(surf geometry.Surface, st State) (au, av float64) {
	c := geometry.ChristoffelAt(surf, st.U, st.V)
	vel := [2]float64{st.DU, st.DV}
	var a [2]float64
	for k := 0; k < 2; k++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				a[k] -= c[k][i][j] * vel[i] * vel[j]
			}
		}
	}
	return a[0], a[1]
}

// deriv is the coupled first-order system d(position)/dt = velocity,
// d(velocity)/dt = acceleration, packed into a State-shaped slope.
func deriv(surf geometry.Surface, st State) State {
	au, av := Acceleration(surf, st)
	return State{U: st.DU, V: st.DV, DU: au, DV: av}
}

func addScaled(st, k State, h float64) State {
	return State{
		U:  st.U + h*k.U,
		V:  st.V + h*k.V,
		DU: st.DU + h*k.DU,
		DV: st.DV + h*k.DV,
	}
}

// Euler is the first-order explicit scheme: one Christoffel evaluation
// per step, visibly drifting off the true geodesic for large dt or long
// paths.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(surf geometry.Surface, st State, dt float64) State {
	return addScaled(st, deriv(surf, st), dt)
}

// RK4 is the classical fourth-order Runge-Kutta scheme: four Christoffel
// evaluations per step.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(surf geometry.Surface, st State, dt float64) State {
	k1 := deriv(surf, st)
	k2 := deriv(surf, addScaled(st, k1, dt*0.5))
	k3 := deriv(surf, addScaled(st, k2, dt*0.5))
	k4 := deriv(surf, addScaled(st, k3, dt))

	dt6 := dt / 6.0
	return State{
		U:  st.U + dt6*(k1.U+2*k2.U+2*k3.U+k4.U),
		V:  st.V + dt6*(k1.V+2*k2.V+2*k3.V+k4.V),
		DU: st.DU + dt6*(k1.DU+2*k2.DU+2*k3.DU+k4.DU),
		DV: st.DV + dt6*(k1.DV+2*k2.DV+2*k3.DV+k4.DV),
	}
}

// DefaultIntegrator is used when no scheme is selected.
const DefaultIntegrator = "rk4"

// NewIntegrator resolves an integrator by name: "euler", or "rk"/"rk4".
func NewIntegrator(name string) (Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk", "rk4", "":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
}
