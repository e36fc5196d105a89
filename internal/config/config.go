package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNX    = 60
	DefaultNY    = 80
	DefaultDX    = 100.0
	DefaultDt    = 0.5
	DefaultTStop = 500.0
)

// Config is the YAML run configuration consumed by the CLI driver. Bed
// and mass balance are synthesized from named profiles; field arrays
// themselves never appear in config files.
type Config struct {
	NX int     `yaml:"nx"`
	NY int     `yaml:"ny"`
	DX float64 `yaml:"dx"`

	Dt    float64 `yaml:"dt"`
	T     float64 `yaml:"t"`
	TStop float64 `yaml:"t_stop"`

	Bed         BedConfig         `yaml:"bed"`
	MassBalance MassBalanceConfig `yaml:"mass_balance"`
	FlowLaw     FlowLawConfig     `yaml:"flow_law"`
}

// BedConfig names a terrain profile and its parameters.
type BedConfig struct {
	Profile string             `yaml:"profile"`
	Params  map[string]float64 `yaml:"params"`
}

// MassBalanceConfig selects the forcing: "uniform" (constant Rate
// everywhere) or "ela" (elevation-dependent, recomputed from the evolving
// surface).
type MassBalanceConfig struct {
	Mode string  `yaml:"mode"`
	Rate float64 `yaml:"rate"` // uniform mode, m/a
	ELA  float64 `yaml:"ela"`  // ela mode, m
	Beta float64 `yaml:"beta"` // ela mode, a^-1
	Cap  float64 `yaml:"cap"`  // ela mode, m/a
}

// FlowLawConfig carries the shallow-ice closure parameters. Zero values
// take the solver defaults.
type FlowLawConfig struct {
	FlowRate     float64 `yaml:"flow_rate"`
	ThicknessExp float64 `yaml:"thickness_exp"`
	SlopeExp     float64 `yaml:"slope_exp"`
	CFL          float64 `yaml:"cfl"`
}

func DefaultConfig() *Config {
	return &Config{
		NX:    DefaultNX,
		NY:    DefaultNY,
		DX:    DefaultDX,
		Dt:    DefaultDt,
		TStop: DefaultTStop,
		Bed: BedConfig{
			Profile: "valley",
			Params:  map[string]float64{"z0": 1200, "slope": 0.08, "wall": 0.0004},
		},
		MassBalance: MassBalanceConfig{
			Mode: "ela",
			ELA:  1800,
			Beta: 0.005,
			Cap:  2.0,
		},
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
