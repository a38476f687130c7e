package geometry_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Finite differences with eps=1e-4 cap the accuracy of everything here.
const tol = 5e-3

var plane = geometry.Func(func(u, v float64) geometry.Vec3 {
	return geometry.Vec3{X: u, Y: 0, Z: v}
})

func sphere(r float64) geometry.Surface {
	return geometry.Func(func(u, v float64) geometry.Vec3 {
		return geometry.Vec3{
			X: r * math.Cos(v) * math.Cos(u),
			Y: r * math.Cos(v) * math.Sin(u),
			Z: r * math.Sin(v),
		}
	})
}

var undefined = geometry.Func(func(u, v float64) geometry.Vec3 {
	return geometry.Invalid()
})

var _ = Describe("tangent basis", func() {
	It("recovers the coordinate axes on the plane", func() {
		eu := geometry.PartialU(plane, 0.3, -0.7)
		ev := geometry.PartialV(plane, 0.3, -0.7)
		Expect(eu.X).To(BeNumerically("~", 1, tol))
		Expect(eu.Y).To(BeNumerically("~", 0, tol))
		Expect(eu.Z).To(BeNumerically("~", 0, tol))
		Expect(ev.Z).To(BeNumerically("~", 1, tol))
	})

	It("propagates the NaN sentinel", func() {
		eu := geometry.PartialU(undefined, 0, 0)
		Expect(eu.IsValid()).To(BeFalse())
		Expect(math.IsNaN(eu.X)).To(BeTrue())
	})
})

var _ = Describe("metric", func() {
	It("is the identity on the plane", func() {
		g := geometry.MetricAt(plane, 1.1, -2.4)
		Expect(g.UU).To(BeNumerically("~", 1, tol))
		Expect(g.UV).To(BeNumerically("~", 0, tol))
		Expect(g.VV).To(BeNumerically("~", 1, tol))
	})

	It("matches the analytic sphere metric", func() {
		r, v := 2.0, 0.6
		g := geometry.MetricAt(sphere(r), 1.0, v)
		Expect(g.UU).To(BeNumerically("~", r*r*math.Cos(v)*math.Cos(v), tol))
		Expect(g.UV).To(BeNumerically("~", 0, tol))
		Expect(g.VV).To(BeNumerically("~", r*r, tol))
	})

	It("round-trips through the closed-form inverse", func() {
		g := geometry.MetricAt(sphere(1.5), 0.8, 0.4)
		id := g.Mul(g.Inverse())
		Expect(id[0][0]).To(BeNumerically("~", 1, 1e-9))
		Expect(id[0][1]).To(BeNumerically("~", 0, 1e-9))
		Expect(id[1][0]).To(BeNumerically("~", 0, 1e-9))
		Expect(id[1][1]).To(BeNumerically("~", 1, 1e-9))
	})

	It("turns singular at a degenerate point without guarding", func() {
		degenerate := geometry.Func(func(u, v float64) geometry.Vec3 {
			return geometry.Vec3{X: u, Y: 0, Z: 0} // e_v == 0 everywhere
		})
		g := geometry.MetricAt(degenerate, 0, 0)
		inv := g.Inverse()
		finite := !math.IsNaN(inv.UU) && !math.IsInf(inv.UU, 0) &&
			!math.IsNaN(inv.VV) && !math.IsInf(inv.VV, 0)
		Expect(finite).To(BeFalse())
	})
})

var _ = Describe("Christoffel symbols", func() {
	It("vanish on the plane", func() {
		c := geometry.ChristoffelAt(plane, 0.2, 0.9)
		for k := 0; k < 2; k++ {
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					Expect(c[k][i][j]).To(BeNumerically("~", 0, tol))
				}
			}
		}
	})

	It("matches the analytic sphere symbols", func() {
		v := 0.5
		c := geometry.ChristoffelAt(sphere(1.0), 1.2, v)
		Expect(c[1][0][0]).To(BeNumerically("~", math.Sin(v)*math.Cos(v), tol))
		Expect(c[0][0][1]).To(BeNumerically("~", -math.Tan(v), tol))
	})

	It("is symmetric in the lower indices by construction", func() {
		c := geometry.ChristoffelAt(sphere(1.0), 0.7, -0.3)
		for k := 0; k < 2; k++ {
			Expect(c[k][0][1]).To(Equal(c[k][1][0]))
		}
	})

	It("propagates NaN from an undefined surface", func() {
		c := geometry.ChristoffelAt(undefined, 0, 0)
		Expect(math.IsNaN(c[0][0][0])).To(BeTrue())
		Expect(math.IsNaN(c[1][1][1])).To(BeTrue())
	})
})
