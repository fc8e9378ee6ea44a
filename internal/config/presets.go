package config

// Presets are canned configurations for the gripper demo.
var Presets = map[string]*Config{
	// The standard cycle: 1s phases at 2ms steps, diagnostics every 100.
	"demo": Default(),

	// Slower descent and a lighter squeeze.
	"gentle": {
		Sim: SimConfig{Dt: DefaultDt, Steps: 6000, Integrator: "semi_implicit"},
		Cycle: CycleConfig{
			Period: 1500,
			ZLow:   0.06,
			ZHigh:  -0.01,
			Open:   []float64{-0.0115, 0.0115},
			Closed: []float64{0.018, -0.018},
		},
		Diag: DiagConfig{Interval: 300},
	},

	// Short phases for quick smoke runs.
	"quick": {
		Sim: SimConfig{Dt: DefaultDt, Steps: 500, Integrator: "semi_implicit"},
		Cycle: CycleConfig{
			Period: 125,
			ZLow:   0.07,
			ZHigh:  -0.02,
			Open:   []float64{-0.0115, 0.0115},
			Closed: []float64{0.020833, -0.020833},
		},
		Diag: DiagConfig{Interval: 25},
	},
}

// GetPreset returns a copy of the named preset, so callers can layer
// overrides on the result without editing the table. Unknown names
// return nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := Default()
	if cfg.Scene.BoxHalfSize != [3]float64{} {
		*out = *cfg
	} else {
		// Presets may omit the scene section; fall back to defaults there.
		out.Sim = cfg.Sim
		out.Cycle = cfg.Cycle
		if cfg.Diag.Interval > 0 {
			out.Diag = cfg.Diag
		}
	}
	out.Cycle.Open = append([]float64(nil), cfg.Cycle.Open...)
	out.Cycle.Closed = append([]float64(nil), cfg.Cycle.Closed...)
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
