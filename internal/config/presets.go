package config

var Presets = map[string]map[string]*Config{
	"sphere": {
		"equator": {
			Surface: "sphere", Integrator: "rk4", Dt: 0.005, Steps: 1400,
			Init: InitConfig{U: 0, V: 0, DU: 1, DV: 0},
		},
		"tilted": {
			Surface: "sphere", Integrator: "rk4", Dt: 0.005, Steps: 1400,
			Init: InitConfig{U: 0, V: 0, DU: 0.7, DV: 0.7}, Normalize: true,
		},
	},
	"torus": {
		"outer": {
			Surface: "torus", Integrator: "rk4", Dt: 0.01, Steps: 3000,
			Init: InitConfig{U: 0, V: 0, DU: 0.5, DV: 0},
		},
		"winding": {
			Surface: "torus", Integrator: "rk4", Dt: 0.01, Steps: 6000,
			Init: InitConfig{U: 0, V: 0.5, DU: 0.3, DV: 0.6}, Normalize: true,
		},
	},
	"plane": {
		"line": {
			Surface: "plane", Integrator: "euler", Dt: 0.01, Steps: 400,
			Init: InitConfig{U: -2, V: -2, DU: 1, DV: 1},
		},
	},
	"catenoid": {
		"waist": {
			Surface: "catenoid", Integrator: "rk4", Dt: 0.01, Steps: 2500,
			Init: InitConfig{U: 0, V: 0.2, DU: 0.8, DV: -0.1}, Normalize: true,
		},
	},
	"bump": {
		"deflect": {
			Surface: "bump", Integrator: "rk4", Dt: 0.01, Steps: 800,
			Init: InitConfig{U: -3, V: 0.4, DU: 1, DV: 0},
		},
	},
}

func GetPreset(surfaceName, preset string) *Config {
	group, ok := Presets[surfaceName]
	if !ok {
		return nil
	}
	cfg, ok := group[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(surfaceName string) []string {
	group, ok := Presets[surfaceName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
