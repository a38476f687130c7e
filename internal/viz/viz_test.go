package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(10, 4)
	c.Set(0, 0)

	out := c.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 rows, got %d", len(lines))
	}
	if out == NewCanvas(10, 4).String() {
		t.Errorf("expected a lit pixel in output")
	}
}

func TestCanvasSetOutOfBounds(t *testing.T) {
	c := NewCanvas(5, 5)
	// Must not panic.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(8, 3)
	c.Line(0, 0, 15, 11)
	c.Clear()

	blank := NewCanvas(8, 3)
	if c.String() != blank.String() {
		t.Errorf("expected canvas to be blank after Clear")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(2, 3, 17, 30)

	probe := NewCanvas(10, 10)
	probe.Set(2, 3)
	a := probe.String()
	probe.Clear()
	probe.Set(17, 30)
	b := probe.String()

	out := c.String()
	if out == a || out == b {
		t.Errorf("expected line to light more than one pixel")
	}
}

func TestCameraProjectRejectsNaN(t *testing.T) {
	cam := NewCamera()
	_, _, _, ok := cam.Project(geometry.Invalid(), 160, 96)
	if ok {
		t.Errorf("expected NaN position to be undrawable")
	}
	_, _, _, ok = cam.Project(geometry.Vec3{X: 1, Y: 0, Z: 0}, 160, 96)
	if !ok {
		t.Errorf("expected finite position to be drawable")
	}
}

func TestSurfaceWireframeEdgeCount(t *testing.T) {
	plane := geometry.Func(func(u, v float64) geometry.Vec3 {
		return geometry.Vec3{X: u, Z: v}
	})
	w := SurfaceWireframe(plane, [2]float64{0, 1}, [2]float64{0, 1}, 4, 4)

	// A full nu x nv grid carries nu*(nv-1) + nv*(nu-1) edges.
	want := 4*3 + 4*3
	if len(w.Edges) != want {
		t.Errorf("expected %d edges, got %d", want, len(w.Edges))
	}
}

func TestSurfaceWireframeDropsNaNCells(t *testing.T) {
	holed := geometry.Func(func(u, v float64) geometry.Vec3 {
		if u > 0.5 {
			return geometry.Invalid()
		}
		return geometry.Vec3{X: u, Z: v}
	})
	full := SurfaceWireframe(holed, [2]float64{0, 0.4}, [2]float64{0, 1}, 4, 4)
	part := SurfaceWireframe(holed, [2]float64{0, 1}, [2]float64{0, 1}, 4, 4)
	if len(part.Edges) >= len(full.Edges) {
		t.Errorf("expected NaN samples to drop edges: %d >= %d", len(part.Edges), len(full.Edges))
	}
}

func TestPathWireframe(t *testing.T) {
	plane := geometry.Func(func(u, v float64) geometry.Vec3 {
		return geometry.Vec3{X: u, Z: v}
	})
	path := geodesic.Path{{U: 0, V: 0}, {U: 1, V: 0}, {U: 2, V: 0}}
	w := PathWireframe(plane, path)
	if len(w.Edges) != 2 {
		t.Errorf("expected 2 edges for 3 points, got %d", len(w.Edges))
	}
}

func TestFitZoom(t *testing.T) {
	small := &Wireframe{}
	small.Add(geometry.Vec3{X: -1}, geometry.Vec3{X: 1})
	big := &Wireframe{}
	big.Add(geometry.Vec3{X: -10}, geometry.Vec3{X: 10})

	zs, zb := FitZoom(small), FitZoom(big)
	if !(zs > zb) {
		t.Errorf("expected smaller scene to get larger zoom: %f <= %f", zs, zb)
	}
	if math.IsNaN(zs) || math.IsInf(zs, 0) {
		t.Errorf("expected finite zoom, got %f", zs)
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	th := ThemeRetro
	for i := 0; i < 4; i++ {
		seen[th.Name] = true
		th = NextTheme(th.Name)
	}
	if len(seen) < 3 {
		t.Errorf("expected to cycle through at least 3 themes, saw %d", len(seen))
	}
	if th.Name != ThemeRetro.Name {
		t.Errorf("expected cycle to return to start, got %q", th.Name)
	}
}
