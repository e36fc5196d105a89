// Package export renders glacier fields to SVG for reports and quick
// visual checks outside the terminal.
package export

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// FieldToSVG renders a per-node field as an SVG raster, one rect per
// node scaled by scale pixels, colored on a dark-blue-to-white ramp
// between the field's min and max. Rows are drawn north (row 0) first.
func FieldToSVG(field []float64, nx int, scale float64) (string, error) {
	if nx <= 0 || len(field) == 0 || len(field)%nx != 0 {
		return "", fmt.Errorf("export: %d nodes do not form rows of %d", len(field), nx)
	}
	ny := len(field) / nx

	lo := floats.Min(field)
	hi := floats.Max(field)
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	w := float64(nx) * scale
	h := float64(ny) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a1a"/>
`, w, h, w, h))

	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			v := (field[r*nx+c] - lo) / rng
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*scale, float64(r)*scale, scale, scale, rampHex(v)))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// WriteFieldSVG renders the field and writes it to path.
func WriteFieldSVG(path string, field []float64, nx int, scale float64) error {
	svg, err := FieldToSVG(field, nx, scale)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

// rampHex interpolates #16244c -> #44aadd -> #ffffff over v in [0, 1].
func rampHex(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	type rgb struct{ r, g, b int }
	stops := []rgb{{0x16, 0x24, 0x4c}, {0x44, 0xaa, 0xdd}, {0xff, 0xff, 0xff}}

	seg := v * float64(len(stops)-1)
	i := int(seg)
	if i >= len(stops)-1 {
		i = len(stops) - 2
	}
	f := seg - float64(i)
	a, b := stops[i], stops[i+1]
	return fmt.Sprintf("#%02x%02x%02x",
		a.r+int(f*float64(b.r-a.r)),
		a.g+int(f*float64(b.g-a.g)),
		a.b+int(f*float64(b.b-a.b)))
}
