package config

// Presets are ready-made run configurations, keyed by scenario then name.
var Presets = map[string]map[string]*Config{
	"valley": {
		"spinup": {
			NX: 60, NY: 80, DX: 100, Dt: 0.5, TStop: 500,
			Bed:         BedConfig{Profile: "valley", Params: map[string]float64{"z0": 1200, "slope": 0.08, "wall": 0.0004}},
			MassBalance: MassBalanceConfig{Mode: "ela", ELA: 1800, Beta: 0.005, Cap: 2.0},
		},
		"retreat": {
			NX: 60, NY: 80, DX: 100, Dt: 0.5, TStop: 300,
			Bed:         BedConfig{Profile: "valley", Params: map[string]float64{"z0": 1200, "slope": 0.08, "wall": 0.0004}},
			MassBalance: MassBalanceConfig{Mode: "ela", ELA: 2200, Beta: 0.005, Cap: 2.0},
		},
	},
	"icecap": {
		"steady": {
			NX: 80, NY: 80, DX: 200, Dt: 1.0, TStop: 1000,
			Bed:         BedConfig{Profile: "dome", Params: map[string]float64{"z0": 1500, "height": 600, "radius": 4000}},
			MassBalance: MassBalanceConfig{Mode: "ela", ELA: 1700, Beta: 0.004, Cap: 1.5},
		},
		"flat": {
			NX: 64, NY: 64, DX: 200, Dt: 1.0, TStop: 400,
			Bed:         BedConfig{Profile: "flat", Params: map[string]float64{"z0": 2000}},
			MassBalance: MassBalanceConfig{Mode: "uniform", Rate: 0.5},
		},
	},
}

// GetPreset returns the named preset or nil.
func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	return group[name]
}

// ListPresets lists preset names for a scenario.
func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
