package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
	"github.com/geodesic-lab/geotrace/internal/surface"
)

const (
	DefaultDt        = 0.01
	DefaultSteps     = 2000
	DefaultSubSteps  = 4
	DefaultFrameRate = 30
)

type Config struct {
	Surface    string         `yaml:"surface"`
	Formula    *FormulaConfig `yaml:"formula,omitempty"`
	Integrator string         `yaml:"integrator"`
	Dt         float64        `yaml:"dt"`
	Steps      int            `yaml:"steps"`
	MaxLength  float64        `yaml:"max_length"`
	Normalize  bool           `yaml:"normalize"`
	SubSteps   int            `yaml:"substeps"`
	FrameRate  int            `yaml:"fps"`
	Init       InitConfig     `yaml:"init"`
}

// FormulaConfig defines a user surface by three coordinate expressions.
// When present it takes precedence over the named builtin.
type FormulaConfig struct {
	X      string             `yaml:"x"`
	Y      string             `yaml:"y"`
	Z      string             `yaml:"z"`
	Params map[string]float64 `yaml:"params,omitempty"`
	URange [2]float64         `yaml:"u_range,omitempty"`
	VRange [2]float64         `yaml:"v_range,omitempty"`
}

// InitConfig is the initial ODE state.
type InitConfig struct {
	U  float64 `yaml:"u"`
	V  float64 `yaml:"v"`
	DU float64 `yaml:"du"`
	DV float64 `yaml:"dv"`
}

func DefaultConfig() *Config {
	return &Config{
		Surface:    "sphere",
		Integrator: geodesic.DefaultIntegrator,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		SubSteps:   DefaultSubSteps,
		FrameRate:  DefaultFrameRate,
		Init:       InitConfig{DU: 1},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildSurface resolves the configured surface: the formula definition
// when present, otherwise the named builtin.
func (c *Config) BuildSurface() (geometry.Surface, [2]float64, [2]float64, error) {
	if c.Formula != nil {
		f, err := surface.NewFormula(c.Formula.X, c.Formula.Y, c.Formula.Z, c.Formula.Params)
		if err != nil {
			return nil, [2]float64{}, [2]float64{}, err
		}
		ur, vr := c.Formula.URange, c.Formula.VRange
		if ur == ([2]float64{}) {
			ur = [2]float64{-1, 1}
		}
		if vr == ([2]float64{}) {
			vr = [2]float64{-1, 1}
		}
		f.WithRanges(ur[0], ur[1], vr[0], vr[1])
		return f, f.URange, f.VRange, nil
	}

	p, err := surface.Lookup(c.Surface)
	if err != nil {
		return nil, [2]float64{}, [2]float64{}, err
	}
	return p, p.URange, p.VRange, nil
}

// InitState returns the configured initial ODE state.
func (c *Config) InitState() geodesic.State {
	return geodesic.State{U: c.Init.U, V: c.Init.V, DU: c.Init.DU, DV: c.Init.DV}
}

// TraceConfig maps the run settings onto a batch solve.
func (c *Config) TraceConfig() geodesic.TraceConfig {
	return geodesic.TraceConfig{
		Dt:                c.Dt,
		MaxSteps:          c.Steps,
		MaxLength:         c.MaxLength,
		Integrator:        c.Integrator,
		NormalizeVelocity: c.Normalize,
	}
}
