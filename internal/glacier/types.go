package glacier

// Grid field names published by the solver. These names are an external
// contract shared with downstream visualization tooling.
const (
	FieldThickness = "ice_thickness"
	FieldElevation = "ice_elevation"
	FieldMask      = "I_map"

	FieldBed         = "bed_elevation"
	FieldMassBalance = "mass_balance"
)

// Fields is a read-only view of the published state handed to observers
// and metrics after each completed step. The slices alias the grid fields;
// callers must not mutate them.
type Fields struct {
	Thickness []float64 // H
	Surface   []float64 // S = B + H
	Mask      []float64 // I, 1 where H > 0
}

// Metric accumulates a scalar diagnostic over a run.
type Metric interface {
	Name() string
	Observe(f Fields, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed (published) step.
type Observer interface {
	OnStep(f Fields, t float64)
}

// MassBalanceSource supplies time-dependent forcing. Rate fills out with
// the ice-equivalent balance rate (m/a) per node for time t, given the
// current ice surface elevation.
type MassBalanceSource interface {
	Rate(t float64, surface []float64, out []float64)
}

// Result summarizes a completed run.
type Result struct {
	FinalTime float64
	Steps     int // explicit updates applied
	// Updates where the CFL bound, not the configured Dt or the remaining
	// time, set the step size.
	StabilityLimited int

	// Ice volume removed by the H >= 0 clip, m^3. Nonzero only under
	// ablation stronger than the available ice in a step.
	ClippedVolume float64

	Times   []float64          // published step times
	Volumes []float64          // total ice volume per published step, m^3
	Areas   []float64          // ice-covered area per published step, m^2
	Metrics map[string]float64 // final metric values
}
