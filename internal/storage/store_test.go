package storage

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

var plane = geometry.Func(func(u, v float64) geometry.Vec3 {
	return geometry.Vec3{X: u, Y: 0, Z: v}
})

func testMeta() RunMetadata {
	return RunMetadata{
		Surface:    "plane",
		Dt:         0.01,
		Integrator: "rk4",
		InitDU:     1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	path := geodesic.Path{{U: 0, V: 0}, {U: 0.01, V: 0}, {U: 0.02, V: 0}}
	runID, err := st.Save(testMeta(), path, plane)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Surface != "plane" {
		t.Errorf("expected surface plane, got %s", meta.Surface)
	}
	if meta.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", meta.Steps)
	}
	if meta.ArcLength <= 0 {
		t.Errorf("expected positive arc length, got %f", meta.ArcLength)
	}

	gotPath, positions, times, err := st.LoadPath(runID)
	if err != nil {
		t.Fatalf("load path failed: %v", err)
	}
	if len(gotPath) != 3 || len(positions) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 rows, got %d/%d/%d", len(gotPath), len(positions), len(times))
	}
	if gotPath[1].U != 0.01 {
		t.Errorf("expected u 0.01, got %f", gotPath[1].U)
	}
	if positions[2].X != 0.02 {
		t.Errorf("expected x 0.02, got %f", positions[2].X)
	}
}

func TestStoreSaveDegeneratePath(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	nan := math.NaN()
	path := geodesic.Path{{U: 0}, {U: 0.1}, {U: nan, V: nan}}

	runID, err := st.Save(testMeta(), path, plane)
	if err != nil {
		t.Fatalf("save failed for degenerate path: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if math.IsNaN(meta.ArcLength) {
		t.Error("arc length must cover only the valid prefix")
	}
	if math.Abs(meta.ArcLength-0.1) > 1e-9 {
		t.Errorf("expected arc length 0.1, got %f", meta.ArcLength)
	}

	gotPath, _, _, err := st.LoadPath(runID)
	if err != nil {
		t.Fatalf("load path failed: %v", err)
	}
	if len(gotPath) != 3 {
		t.Fatalf("expected all 3 rows back, got %d", len(gotPath))
	}
	if !math.IsNaN(gotPath[2].U) {
		t.Error("expected NaN tail to round-trip through the CSV")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testMeta(), geodesic.Path{{}}, plane); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), geodesic.Path{{}}, plane)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "path.csv")); os.IsNotExist(err) {
		t.Error("path.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	meta := testMeta()
	meta.ID = "plane_1"
	path := geodesic.Path{{U: 0, V: 0}, {U: 0.5, V: 0.5}}
	positions := path.Positions(plane)
	times := []float64{0, 0.01}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, path, positions, times); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"surface": "plane"`, `"points"`, `"positions"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in output:\n%s", want, out)
		}
	}
}
