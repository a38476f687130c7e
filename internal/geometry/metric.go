package geometry

import "math"

// Metric is the first fundamental form at a surface point: the symmetric
// 2x2 matrix of dot products of the tangent basis vectors.
type Metric struct {
	UU, UV, VV float64
}

// MetricAt builds the metric from the finite-difference tangent basis.
func MetricAt(s Surface, u, v float64) Metric {
	eu := PartialU(s, u, v)
	ev := PartialV(s, u, v)
	return Metric{
		UU: eu.Dot(eu),
		UV: eu.Dot(ev),
		VV: ev.Dot(ev),
	}
}

func (g Metric) Det() float64 {
	return g.UU*g.VV - g.UV*g.UV
}

// Inverse returns the closed-form 2x2 inverse. A singular metric
// (Det == 0) yields Inf/NaN entries; callers must tolerate them.
func (g Metric) Inverse() Metric {
	det := g.Det()
	return Metric{
		UU: g.VV / det,
		UV: -g.UV / det,
		VV: g.UU / det,
	}
}

// Length is the metric-weighted norm of a parameter-space displacement.
func (g Metric) Length(du, dv float64) float64 {
	return math.Sqrt(g.UU*du*du + 2*g.UV*du*dv + g.VV*dv*dv)
}

// Mul returns the matrix product g * o, with both operands read as
// symmetric 2x2 matrices. The product itself is a general 2x2 matrix.
func (g Metric) Mul(o Metric) [2][2]float64 {
	return [2][2]float64{
		{g.UU*o.UU + g.UV*o.UV, g.UU*o.UV + g.UV*o.VV},
		{g.UV*o.UU + g.VV*o.UV, g.UV*o.UV + g.VV*o.VV},
	}
}
