package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Transect extracts one row of a per-node field as a 1-D profile.
func Transect(field []float64, nx, row int) ([]float64, error) {
	if nx <= 0 || len(field)%nx != 0 {
		return nil, fmt.Errorf("analysis: %d nodes do not form rows of %d", len(field), nx)
	}
	ny := len(field) / nx
	if row < 0 || row >= ny {
		return nil, fmt.Errorf("analysis: row %d out of range [0, %d)", row, ny)
	}
	out := make([]float64, nx)
	copy(out, field[row*nx:(row+1)*nx])
	return out, nil
}

// RoughnessSpectrum returns the one-sided power spectrum of a detrended
// surface transect, for inspecting the wavelength content of the
// simulated ice surface.
func RoughnessSpectrum(profile []float64) []float64 {
	if len(profile) == 0 {
		return nil
	}

	// remove the mean so the zero-frequency bin does not swamp the rest
	mean := 0.0
	for _, v := range profile {
		mean += v
	}
	mean /= float64(len(profile))

	detrended := make([]float64, len(profile))
	for i, v := range profile {
		detrended[i] = v - mean
	}

	spectrum := fft.FFTReal(detrended)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}
