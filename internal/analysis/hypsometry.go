// Package analysis provides post-run diagnostics: hypsometry of the ice
// surface and power spectra of surface transects.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Band is one elevation bin of a hypsometric distribution.
type Band struct {
	Low, High float64
	Area      float64 // m^2
}

// Hypsometry bins the ice-covered area by surface elevation. Only nodes
// with mask > 0 contribute. bins must be positive.
func Hypsometry(surface, mask []float64, dx float64, bins int) ([]Band, error) {
	if len(surface) != len(mask) {
		return nil, fmt.Errorf("analysis: surface has %d nodes, mask has %d", len(surface), len(mask))
	}
	if bins <= 0 {
		return nil, fmt.Errorf("analysis: bins must be positive, got %d", bins)
	}

	var iced []float64
	for i, m := range mask {
		if m > 0 {
			iced = append(iced, surface[i])
		}
	}
	if len(iced) == 0 {
		return nil, nil
	}

	lo := floats.Min(iced)
	hi := floats.Max(iced)
	width := (hi - lo) / float64(bins)
	if width == 0 {
		return []Band{{Low: lo, High: hi, Area: float64(len(iced)) * dx * dx}}, nil
	}

	bands := make([]Band, bins)
	for i := range bands {
		bands[i].Low = lo + float64(i)*width
		bands[i].High = bands[i].Low + width
	}
	for _, z := range iced {
		idx := int((z - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		bands[idx].Area += dx * dx
	}
	return bands, nil
}
