package export

import (
	"math"
	"strings"
	"testing"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/viz"
)

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)

	var sb strings.Builder
	if err := CanvasSVG(&sb, c, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Errorf("expected a complete SVG document")
	}
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
}

func TestCanvasSVGEmpty(t *testing.T) {
	var sb strings.Builder
	if err := CanvasSVG(&sb, viz.NewCanvas(4, 2), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(sb.String(), "<circle") {
		t.Errorf("expected no dots for a blank canvas")
	}
}

func TestPathSVG(t *testing.T) {
	path := geodesic.Path{{U: 0, V: 0}, {U: 1, V: 1}, {U: 2, V: 0}}

	var sb strings.Builder
	if err := PathSVG(&sb, path, 640, 480); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "<polyline") {
		t.Errorf("expected a polyline element")
	}
	if got := strings.Count(out, ","); got != 3 {
		t.Errorf("expected 3 coordinate pairs, got %d commas", got)
	}
}

func TestPathSVGStopsAtNaN(t *testing.T) {
	nan := math.NaN()
	path := geodesic.Path{{U: 0, V: 0}, {U: 1, V: 0}, {U: nan, V: nan}, {U: 2, V: 0}}

	var sb strings.Builder
	if err := PathSVG(&sb, path, 640, 480); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(sb.String(), ","); got != 2 {
		t.Errorf("expected drawing to stop before NaN point, got %d pairs", got)
	}
}

func TestPathSVGTooShort(t *testing.T) {
	var sb strings.Builder
	if err := PathSVG(&sb, geodesic.Path{{U: 0, V: 0}}, 640, 480); err == nil {
		t.Errorf("expected error for single-point path")
	}
}
