package geometry

// Christoffel holds the second-kind symbols Γ[k][i][j] at a surface
// point, indexed 0 = u, 1 = v. Symmetric in the lower indices.
type Christoffel [2][2][2]float64

// ChristoffelAt computes the second-kind symbols using the extrinsic
// formulation: differentiate the tangent-basis fields themselves, project
// the derivatives onto the basis to get the first-kind symbols, then
// raise the upper index with the inverse metric. This needs only first
// derivatives of the basis, never second derivatives of position.
func ChristoffelAt(s Surface, u, v float64) Christoffel {
	eu := PartialU(s, u, v)
	ev := PartialV(s, u, v)

	// Derivatives of the basis fields. d(e_v)/du equals d(e_u)/dv by
	// symmetry of mixed partials, so three vectors suffice.
	uu := PartialU(basisU(s), u, v)
	uv := PartialV(basisU(s), u, v)
	vv := PartialV(basisV(s), u, v)

	// First kind: Γ_{m,ij} = (d e_i / d x^j) · e_m.
	var first [2][2][2]float64
	first[0][0][0] = uu.Dot(eu)
	first[1][0][0] = uu.Dot(ev)
	first[0][0][1] = uv.Dot(eu)
	first[1][0][1] = uv.Dot(ev)
	first[0][1][1] = vv.Dot(eu)
	first[1][1][1] = vv.Dot(ev)
	first[0][1][0] = first[0][0][1]
	first[1][1][0] = first[1][0][1]

	inv := MetricAt(s, u, v).Inverse()
	ginv := [2][2]float64{{inv.UU, inv.UV}, {inv.UV, inv.VV}}

	var c Christoffel
	for k := 0; k < 2; k++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				c[k][i][j] = ginv[k][0]*first[0][i][j] + ginv[k][1]*first[1][i][j]
			}
		}
	}
	return c
}

// basisU and basisV expose the tangent-basis fields as surfaces so the
// finite-difference operators can be applied to them directly.
func basisU(s Surface) Surface {
	return Func(func(u, v float64) Vec3 { return PartialU(s, u, v) })
}

func basisV(s Surface) Surface {
	return Func(func(u, v float64) Vec3 { return PartialV(s, u, v) })
}
