package analysis

import (
	"math"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// PathStats summarizes a traced path.
type PathStats struct {
	Points    int
	ArcLength float64
	// ValidPrefix is the number of leading points before the first
	// NaN/Inf coordinate; equal to Points for a clean path.
	ValidPrefix int
	// MeanSpeed is the average metric step length per unit time.
	MeanSpeed float64
}

// Stats walks the path once, accumulating metric length over the valid
// prefix.
func Stats(surf geometry.Surface, path geodesic.Path, dt float64) PathStats {
	st := PathStats{Points: len(path), ValidPrefix: len(path)}

	for i, pt := range path {
		if math.IsNaN(pt.U) || math.IsNaN(pt.V) || math.IsInf(pt.U, 0) || math.IsInf(pt.V, 0) {
			st.ValidPrefix = i
			break
		}
	}

	for i := 1; i < st.ValidPrefix; i++ {
		g := geometry.MetricAt(surf, path[i-1].U, path[i-1].V)
		st.ArcLength += g.Length(path[i].U-path[i-1].U, path[i].V-path[i-1].V)
	}

	if dt > 0 && st.ValidPrefix > 1 {
		st.MeanSpeed = st.ArcLength / (dt * float64(st.ValidPrefix-1))
	}
	return st
}

// Divergence is the pointwise parameter-space distance between two paths
// traced from the same initial state, e.g. by different integrators.
// The result covers the shorter of the two.
func Divergence(a, b geodesic.Path) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Hypot(a[i].U-b[i].U, a[i].V-b[i].V)
	}
	return out
}

// CoordinateHistory extracts one coordinate (0 = u, 1 = v) as a series
// for spectral analysis.
func CoordinateHistory(path geodesic.Path, coord int) []float64 {
	out := make([]float64, len(path))
	for i, pt := range path {
		if coord == 0 {
			out[i] = pt.U
		} else {
			out[i] = pt.V
		}
	}
	return out
}
