package geometry

// Eps is the fixed step for all forward-difference derivatives.
const Eps = 1e-4

// PartialU returns the tangent basis vector along u, i.e. the forward
// difference (r(u+eps, v) - r(u, v)) / eps.
func PartialU(s Surface, u, v float64) Vec3 {
	return s.At(u+Eps, v).Sub(s.At(u, v)).Scale(1 / Eps)
}

// PartialV returns the tangent basis vector along v.
func PartialV(s Surface, u, v float64) Vec3 {
	return s.At(u, v+Eps).Sub(s.At(u, v)).Scale(1 / Eps)
}
