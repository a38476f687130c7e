package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Surface != "sphere" {
		t.Errorf("expected surface sphere, got %s", cfg.Surface)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Init.DU == 0 && cfg.Init.DV == 0 {
		t.Error("default initial velocity should be nonzero")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Surface = "torus"
	cfg.Integrator = "euler"
	cfg.MaxLength = 12.5
	cfg.Init = InitConfig{U: 0.1, V: 0.2, DU: 0.3, DV: 0.4}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Surface != "torus" || got.Integrator != "euler" {
		t.Errorf("unexpected config: %+v", got)
	}
	if got.MaxLength != 12.5 || got.Init.DV != 0.4 {
		t.Errorf("values lost in round trip: %+v", got)
	}
}

func TestBuildSurfaceBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	s, ur, vr, err := cfg.BuildSurface()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if s == nil {
		t.Fatal("expected surface")
	}
	if ur[0] == ur[1] || vr[0] == vr[1] {
		t.Error("expected non-degenerate display ranges")
	}
}

func TestBuildSurfaceFormulaPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = &FormulaConfig{X: "%u", Y: "0", Z: "%v"}

	s, ur, _, err := cfg.BuildSurface()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	p := s.At(0.5, -0.5)
	if p.X != 0.5 || p.Z != -0.5 {
		t.Errorf("formula surface not used: %+v", p)
	}
	if ur != ([2]float64{-1, 1}) {
		t.Errorf("expected default formula range, got %v", ur)
	}
}

func TestBuildSurfaceErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Surface = "nonexistent"
	if _, _, _, err := cfg.BuildSurface(); err == nil {
		t.Error("expected error for unknown surface")
	}

	cfg = DefaultConfig()
	cfg.Formula = &FormulaConfig{X: "sin(", Y: "0", Z: "0"}
	if _, _, _, err := cfg.BuildSurface(); err == nil {
		t.Error("expected error for bad formula")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sphere", "equator")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Init.DU != 1 {
		t.Errorf("expected du 1, got %f", cfg.Init.DU)
	}

	if GetPreset("sphere", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "equator") != nil {
		t.Error("expected nil for nonexistent surface")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("torus"); len(presets) == 0 {
		t.Error("expected presets for torus")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent surface")
	}
}

func TestTraceConfigMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalize = true
	cfg.MaxLength = 3.0

	tc := cfg.TraceConfig()
	if tc.Dt != cfg.Dt || tc.MaxSteps != cfg.Steps {
		t.Errorf("budget not mapped: %+v", tc)
	}
	if !tc.NormalizeVelocity || tc.MaxLength != 3.0 {
		t.Errorf("options not mapped: %+v", tc)
	}
}
