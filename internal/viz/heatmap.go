package viz

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// heat characters from low to high
var heatChars = []rune{' ', '░', '▒', '▓', '█'}

// Heatmap renders a per-node field as a character map, nx runes per line,
// with intensity and color scaled between the field's min and max. Rows
// are drawn north (row 0) first. Grids wider than maxCols are subsampled
// by striding.
func Heatmap(field []float64, nx int, maxCols int) (string, error) {
	if nx <= 0 || len(field) == 0 || len(field)%nx != 0 {
		return "", fmt.Errorf("viz: %d nodes do not form rows of %d", len(field), nx)
	}
	ny := len(field) / nx

	stride := 1
	if maxCols > 0 && nx > maxCols {
		stride = (nx + maxCols - 1) / maxCols
	}

	lo := floats.Min(field)
	hi := floats.Max(field)
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for r := 0; r < ny; r += stride {
		for c := 0; c < nx; c += stride {
			v := (field[r*nx+c] - lo) / rng
			idx := int(v * float64(len(heatChars)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(heatChars) {
				idx = len(heatChars) - 1
			}
			ci := int(v * float64(len(rampColors)-1))
			if ci < 0 {
				ci = 0
			}
			if ci >= len(rampColors) {
				ci = len(rampColors) - 1
			}
			b.WriteString(rampColors[ci].Render(string(heatChars[idx])))
		}
		b.WriteByte('\n')
	}
	b.WriteString(Subtle.Render(fmt.Sprintf("min %.2f  max %.2f", lo, hi)))
	b.WriteByte('\n')
	return b.String(), nil
}

// MaskMap renders a binary field: '#' where the value is positive, '.'
// elsewhere.
func MaskMap(mask []float64, nx int) (string, error) {
	if nx <= 0 || len(mask)%nx != 0 {
		return "", fmt.Errorf("viz: %d nodes do not form rows of %d", len(mask), nx)
	}
	var b strings.Builder
	for i, v := range mask {
		if v > 0 {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		if (i+1)%nx == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
