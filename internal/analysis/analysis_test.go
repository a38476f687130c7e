package analysis

import (
	"math"
	"testing"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

var plane = geometry.Func(func(u, v float64) geometry.Vec3 {
	return geometry.Vec3{X: u, Y: 0, Z: v}
})

func TestPowerSpectrumPeak(t *testing.T) {
	// 8 full cycles over 256 samples must peak at bin 8.
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 8 {
		t.Errorf("expected peak at bin 8, got %d", peak)
	}
}

func TestPad(t *testing.T) {
	padded := Pad(make([]float64, 100))
	if len(padded) != 128 {
		t.Errorf("expected length 128, got %d", len(padded))
	}
}

func TestSpectrumWindow(t *testing.T) {
	if got := SpectrumWindow(make([]float64, 16)); len(got) != 4 {
		t.Errorf("expected quarter window of 4, got %d", len(got))
	}
	if got := SpectrumWindow(make([]float64, 4)); len(got) != 4 {
		t.Errorf("expected short spectrum returned whole, got %d", len(got))
	}
	if got := SpectrumWindow(nil); len(got) != 0 {
		t.Errorf("expected empty window for empty spectrum, got %d", len(got))
	}
}

func TestDominantFrequency(t *testing.T) {
	ps := []float64{10, 0, 5, 0} // ignore the DC bin
	if f := DominantFrequency(ps, 2.0); f != 1.0 {
		t.Errorf("expected 1.0 hz, got %f", f)
	}
	if f := DominantFrequency(ps, 0); f != 0 {
		t.Errorf("expected 0 for zero duration, got %f", f)
	}
}

func TestStats(t *testing.T) {
	path := geodesic.Path{{U: 0}, {U: 0.1}, {U: 0.2}, {U: 0.3}}
	st := Stats(plane, path, 0.1)

	if st.Points != 4 || st.ValidPrefix != 4 {
		t.Errorf("unexpected counts: %+v", st)
	}
	if math.Abs(st.ArcLength-0.3) > 1e-9 {
		t.Errorf("expected arc length 0.3, got %f", st.ArcLength)
	}
	if math.Abs(st.MeanSpeed-1.0) > 1e-9 {
		t.Errorf("expected mean speed 1, got %f", st.MeanSpeed)
	}
}

func TestStatsStopsAtNaN(t *testing.T) {
	path := geodesic.Path{{U: 0}, {U: 0.1}, {U: math.NaN()}, {U: 0.3}}
	st := Stats(plane, path, 0.1)

	if st.ValidPrefix != 2 {
		t.Errorf("expected valid prefix 2, got %d", st.ValidPrefix)
	}
	if math.IsNaN(st.ArcLength) {
		t.Error("arc length must exclude the NaN tail")
	}
}

func TestDivergence(t *testing.T) {
	a := geodesic.Path{{U: 0}, {U: 1}, {U: 2}}
	b := geodesic.Path{{U: 0}, {U: 1.5}}

	d := Divergence(a, b)
	if len(d) != 2 {
		t.Fatalf("expected length 2, got %d", len(d))
	}
	if d[0] != 0 || d[1] != 0.5 {
		t.Errorf("unexpected divergence %v", d)
	}
}

func TestCoordinateHistory(t *testing.T) {
	path := geodesic.Path{{U: 1, V: 2}, {U: 3, V: 4}}
	if got := CoordinateHistory(path, 0); got[1] != 3 {
		t.Errorf("expected u history, got %v", got)
	}
	if got := CoordinateHistory(path, 1); got[0] != 2 {
		t.Errorf("expected v history, got %v", got)
	}
}
