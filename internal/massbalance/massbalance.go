// Package massbalance provides forcing sources for the glacier solver:
// static per-node balance fields, elevation-dependent balance recomputed
// from the evolving ice surface, and time-ramped wrappers.
package massbalance

import "github.com/san-kum/glacsim/internal/glacier"

// Constant replays a fixed per-node balance field regardless of time.
type Constant struct {
	rates []float64
}

func NewConstant(rates []float64) *Constant {
	c := &Constant{rates: make([]float64, len(rates))}
	copy(c.rates, rates)
	return c
}

func (c *Constant) Rate(t float64, surface []float64, out []float64) {
	copy(out, c.rates)
}

// ELAGradient is the standard alpine mass-balance closure: balance grows
// linearly with height above the equilibrium-line altitude at rate Beta
// (a^-1), capped at Cap (m/a). Because it reads the evolving ice surface,
// the forcing is time-dependent: a thickening glacier raises its own
// accumulation area.
type ELAGradient struct {
	ELA  float64 // equilibrium-line altitude, m
	Beta float64 // balance gradient, a^-1
	Cap  float64 // maximum accumulation rate, m/a
}

func NewELAGradient(ela, beta, cap float64) *ELAGradient {
	return &ELAGradient{ELA: ela, Beta: beta, Cap: cap}
}

func (e *ELAGradient) Rate(t float64, surface []float64, out []float64) {
	for i, s := range surface {
		b := e.Beta * (s - e.ELA)
		if b > e.Cap {
			b = e.Cap
		}
		out[i] = b
	}
}

// Scaled ramps another source linearly from zero at RampStart to full
// strength at RampEnd, for spin-up runs.
type Scaled struct {
	Source    glacier.MassBalanceSource
	RampStart float64
	RampEnd   float64
}

func (s *Scaled) Rate(t float64, surface []float64, out []float64) {
	s.Source.Rate(t, surface, out)
	switch {
	case t <= s.RampStart:
		for i := range out {
			out[i] = 0
		}
	case t < s.RampEnd:
		f := (t - s.RampStart) / (s.RampEnd - s.RampStart)
		for i := range out {
			out[i] *= f
		}
	}
}
