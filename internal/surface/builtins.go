package surface

import (
	"math"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Parametric is a named surface with display-only parameter ranges.
// The ranges bound tessellation and plotting, not evaluation: At accepts
// any (u, v).
type Parametric struct {
	Name   string
	URange [2]float64
	VRange [2]float64
	fn     geometry.Func
}

func (p *Parametric) At(u, v float64) geometry.Vec3 { return p.fn(u, v) }

// NewPlane is the flat reference surface x=u, y=0, z=v.
func NewPlane() *Parametric {
	return &Parametric{
		Name:   "plane",
		URange: [2]float64{-2, 2},
		VRange: [2]float64{-2, 2},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: u, Y: 0, Z: v}
		},
	}
}

// NewSphere parametrizes a sphere of radius r by longitude u and
// latitude v. The poles v = ±π/2 are singular points of the
// parametrization; the metric degenerates there.
func NewSphere(r float64) *Parametric {
	return &Parametric{
		Name:   "sphere",
		URange: [2]float64{0, 2 * math.Pi},
		VRange: [2]float64{-math.Pi / 2, math.Pi / 2},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{
				X: r * math.Cos(v) * math.Cos(u),
				Y: r * math.Cos(v) * math.Sin(u),
				Z: r * math.Sin(v),
			}
		},
	}
}

// NewTorus has major radius rr and tube radius r.
func NewTorus(rr, r float64) *Parametric {
	return &Parametric{
		Name:   "torus",
		URange: [2]float64{0, 2 * math.Pi},
		VRange: [2]float64{0, 2 * math.Pi},
		fn: func(u, v float64) geometry.Vec3 {
			w := rr + r*math.Cos(v)
			return geometry.Vec3{
				X: w * math.Cos(u),
				Y: w * math.Sin(u),
				Z: r * math.Sin(v),
			}
		},
	}
}

func NewCylinder(r float64) *Parametric {
	return &Parametric{
		Name:   "cylinder",
		URange: [2]float64{0, 2 * math.Pi},
		VRange: [2]float64{-2, 2},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: r * math.Cos(u), Y: r * math.Sin(u), Z: v}
		},
	}
}

func NewCone(slope float64) *Parametric {
	return &Parametric{
		Name:   "cone",
		URange: [2]float64{0, 2 * math.Pi},
		VRange: [2]float64{0.2, 2},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: v * math.Cos(u), Y: v * math.Sin(u), Z: slope * v}
		},
	}
}

// NewCatenoid is the minimal surface of revolution of the catenary.
func NewCatenoid(c float64) *Parametric {
	return &Parametric{
		Name:   "catenoid",
		URange: [2]float64{0, 2 * math.Pi},
		VRange: [2]float64{-2, 2},
		fn: func(u, v float64) geometry.Vec3 {
			w := c * math.Cosh(v/c)
			return geometry.Vec3{X: w * math.Cos(u), Y: w * math.Sin(u), Z: v}
		},
	}
}

func NewHelicoid(c float64) *Parametric {
	return &Parametric{
		Name:   "helicoid",
		URange: [2]float64{-2 * math.Pi, 2 * math.Pi},
		VRange: [2]float64{-2, 2},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: v * math.Cos(u), Y: v * math.Sin(u), Z: c * u}
		},
	}
}

func NewMonkeySaddle() *Parametric {
	return &Parametric{
		Name:   "saddle",
		URange: [2]float64{-1.2, 1.2},
		VRange: [2]float64{-1.2, 1.2},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: u, Y: u*u*u - 3*u*v*v, Z: v}
		},
	}
}

// NewBump is a gaussian bump over the plane, height h and width s.
func NewBump(h, s float64) *Parametric {
	return &Parametric{
		Name:   "bump",
		URange: [2]float64{-3, 3},
		VRange: [2]float64{-3, 3},
		fn: func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: u, Y: h * math.Exp(-(u*u+v*v)/(2*s*s)), Z: v}
		},
	}
}
