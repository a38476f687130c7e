// Package analysis offers offline diagnostics over traced geodesic
// paths: metric-length statistics, integrator divergence, and frequency
// content of the coordinate histories (useful for quasi-periodic
// geodesics such as torus windings).
package analysis
