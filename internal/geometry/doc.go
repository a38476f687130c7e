// Package geometry provides the differential-geometry primitives for
// tracing geodesics on parametric surfaces:
//
//   - [Vec3]: position/tangent vector in ambient 3D space
//   - [Surface]: the (u, v) -> position capability
//   - [PartialU], [PartialV]: finite-difference tangent basis
//   - [Metric]: the first fundamental form and its closed-form inverse
//   - [ChristoffelAt]: second-kind Christoffel symbols
//
// All computations are pointwise and pure. Degenerate inputs (an
// undefined surface point, a singular metric) propagate as NaN/Inf
// through every downstream value; nothing in this package panics or
// returns an error for numeric degeneracy.
package geometry
