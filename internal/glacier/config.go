package glacier

import "math"

// Standard shallow-ice closure with Glen exponent n = 3: the diffusivity
// is D = Gamma * H^(n+2) * |grad S|^(n-1), Gamma = 2*A*(rho*g)^n / (n+2)
// with A = 1e-16 Pa^-3 a^-1, rho = 910 kg/m^3, g = 9.81 m/s^2.
const (
	DefaultFlowRate     = 0.0285 // Gamma, m^-3 a^-1
	DefaultThicknessExp = 5.0    // n + 2
	DefaultSlopeExp     = 2.0    // n - 1
	DefaultCFL          = 0.25
)

// Config describes a solver run. Bed and MassBalance are per-node arrays
// matching the grid node count; everything else is scalar. Flow-law
// parameters left at zero take the shallow-ice defaults above.
type Config struct {
	NX, NY int
	DX     float64

	Dt    float64 // maximum time step, years
	T     float64 // start time, years
	TStop float64 // terminal time, years

	Bed         []float64 // B, static bed elevation, m
	MassBalance []float64 // b_dot, ice-equivalent m/a

	// Optional initial thickness; nil means start ice-free.
	InitialThickness []float64

	FlowRate     float64 // Gamma
	ThicknessExp float64 // exponent on H
	SlopeExp     float64 // exponent on |grad S|
	CFL          float64 // fraction of the explicit stability bound to use
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.FlowRate == 0 {
		out.FlowRate = DefaultFlowRate
	}
	if out.ThicknessExp == 0 {
		out.ThicknessExp = DefaultThicknessExp
	}
	if out.SlopeExp == 0 {
		out.SlopeExp = DefaultSlopeExp
	}
	if out.CFL == 0 {
		out.CFL = DefaultCFL
	}
	return out
}

// Validate checks the configuration, returning a *ConfigurationError on
// the first violation found.
func (c *Config) Validate() error {
	if c.NX <= 0 {
		return &ConfigurationError{Field: "nx", Reason: "must be positive"}
	}
	if c.NY <= 0 {
		return &ConfigurationError{Field: "ny", Reason: "must be positive"}
	}
	if c.DX <= 0 || math.IsNaN(c.DX) {
		return &ConfigurationError{Field: "dx", Reason: "must be positive"}
	}
	if c.Dt <= 0 || math.IsNaN(c.Dt) {
		return &ConfigurationError{Field: "dt", Reason: "must be positive"}
	}
	if c.TStop <= c.T {
		return &ConfigurationError{Field: "t_STOP", Reason: "must exceed start time t"}
	}
	n := c.NX * c.NY
	if len(c.Bed) != n {
		return &ConfigurationError{Field: "B", Reason: "length must equal grid node count"}
	}
	if len(c.MassBalance) != n {
		return &ConfigurationError{Field: "b_dot", Reason: "length must equal grid node count"}
	}
	if c.InitialThickness != nil && len(c.InitialThickness) != n {
		return &ConfigurationError{Field: "initial_thickness", Reason: "length must equal grid node count"}
	}
	if c.FlowRate < 0 {
		return &ConfigurationError{Field: "flow_rate", Reason: "must be non-negative"}
	}
	if c.CFL < 0 || c.CFL > 1 {
		return &ConfigurationError{Field: "cfl", Reason: "must be in (0, 1]"}
	}
	return nil
}
