// Package metrics provides scalar diagnostics accumulated over a glacier
// run: total ice volume, ice-covered area, maximum thickness, and the
// volume removed by the non-negativity clip.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/glacsim/internal/glacier"
)

// TotalVolume tracks the latest total ice volume, m^3.
type TotalVolume struct {
	dx2   float64
	value float64
}

func NewTotalVolume(dx float64) *TotalVolume {
	return &TotalVolume{dx2: dx * dx}
}

func (m *TotalVolume) Name() string { return "ice_volume" }

func (m *TotalVolume) Observe(f glacier.Fields, t float64) {
	m.value = floats.Sum(f.Thickness) * m.dx2
}

func (m *TotalVolume) Value() float64 { return m.value }
func (m *TotalVolume) Reset()         { m.value = 0 }

// IceArea tracks the latest ice-covered area, m^2.
type IceArea struct {
	dx2   float64
	value float64
}

func NewIceArea(dx float64) *IceArea {
	return &IceArea{dx2: dx * dx}
}

func (m *IceArea) Name() string { return "ice_area" }

func (m *IceArea) Observe(f glacier.Fields, t float64) {
	m.value = floats.Sum(f.Mask) * m.dx2
}

func (m *IceArea) Value() float64 { return m.value }
func (m *IceArea) Reset()         { m.value = 0 }

// MaxThickness tracks the maximum thickness seen over the whole run, m.
type MaxThickness struct {
	value float64
}

func NewMaxThickness() *MaxThickness { return &MaxThickness{} }

func (m *MaxThickness) Name() string { return "max_thickness" }

func (m *MaxThickness) Observe(f glacier.Fields, t float64) {
	if len(f.Thickness) == 0 {
		return
	}
	if v := floats.Max(f.Thickness); v > m.value {
		m.value = v
	}
}

func (m *MaxThickness) Value() float64 { return m.value }
func (m *MaxThickness) Reset()         { m.value = 0 }

// ClippedVolume reads the solver's conservation ledger: ice removed by
// the H >= 0 clip, m^3.
type ClippedVolume struct {
	solver *glacier.Solver
}

func NewClippedVolume(sv *glacier.Solver) *ClippedVolume {
	return &ClippedVolume{solver: sv}
}

func (m *ClippedVolume) Name() string { return "clipped_volume" }

func (m *ClippedVolume) Observe(f glacier.Fields, t float64) {}

func (m *ClippedVolume) Value() float64 { return m.solver.ClippedVolume() }
func (m *ClippedVolume) Reset()         {}

// Defaults returns the metric set the CLI attaches to every run.
func Defaults(dx float64, sv *glacier.Solver) []glacier.Metric {
	return []glacier.Metric{
		NewTotalVolume(dx),
		NewIceArea(dx),
		NewMaxThickness(),
		NewClippedVolume(sv),
	}
}
