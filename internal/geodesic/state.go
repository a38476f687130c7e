package geodesic

import (
	"math"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Point is a position in the surface's parameter domain.
type Point struct {
	U, V float64
}

// State is the full ODE state: a parameter-space position and its
// velocity. States are value types; every step produces a fresh one.
type State struct {
	U, V   float64
	DU, DV float64
}

func (s State) Point() Point { return Point{U: s.U, V: s.V} }

func (s State) IsValid() bool {
	for _, c := range [4]float64{s.U, s.V, s.DU, s.DV} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Normalize rescales the velocity to unit metric length at the current
// point. A zero or degenerate velocity is returned unchanged.
func (s State) Normalize(surf geometry.Surface) State {
	speed := geometry.MetricAt(surf, s.U, s.V).Length(s.DU, s.DV)
	if speed == 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return s
	}
	s.DU /= speed
	s.DV /= speed
	return s
}

// Path is an ordered, append-only sequence of parameter-space points.
type Path []Point

// Length accumulates the metric-weighted length of the path's steps,
// measuring each step with the metric at its starting point.
func (p Path) Length(surf geometry.Surface) float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		g := geometry.MetricAt(surf, p[i-1].U, p[i-1].V)
		total += g.Length(p[i].U-p[i-1].U, p[i].V-p[i-1].V)
	}
	return total
}

// Positions maps the path through the surface into ambient 3D space.
func (p Path) Positions(surf geometry.Surface) []geometry.Vec3 {
	out := make([]geometry.Vec3, len(p))
	for i, pt := range p {
		out[i] = surf.At(pt.U, pt.V)
	}
	return out
}
