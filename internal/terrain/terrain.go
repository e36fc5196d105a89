// Package terrain synthesizes bed topographies for the CLI driver and
// tests: flat plains, inclined planes, parabolic valleys and domes.
package terrain

import (
	"fmt"
	"math"

	"github.com/san-kum/glacsim/internal/grid"
)

// Flat returns a bed at uniform elevation z0.
func Flat(g *grid.RasterGrid, z0 float64) []float64 {
	bed := make([]float64, g.NumNodes())
	for i := range bed {
		bed[i] = z0
	}
	return bed
}

// Incline returns a plane rising northward (toward row 0) with the given
// slope, from base elevation z0 at the southern edge.
func Incline(g *grid.RasterGrid, z0, slope float64) []float64 {
	bed := make([]float64, g.NumNodes())
	for i := range bed {
		row, _ := g.Coordinate(i)
		bed[i] = z0 + slope*float64(g.NY-1-row)*g.DX
	}
	return bed
}

// Valley returns a tilted trunk valley with a parabolic cross-section:
// the floor rises northward at the given slope from z0, and the walls
// rise quadratically away from the centerline column by wall per meter
// squared.
func Valley(g *grid.RasterGrid, z0, slope, wall float64) []float64 {
	bed := make([]float64, g.NumNodes())
	center := float64(g.NX-1) / 2
	for i := range bed {
		row, col := g.Coordinate(i)
		across := (float64(col) - center) * g.DX
		bed[i] = z0 + slope*float64(g.NY-1-row)*g.DX + wall*across*across
	}
	return bed
}

// Dome returns a radially symmetric bed high point of the given height
// and e-folding radius, centered on the grid, over base elevation z0.
func Dome(g *grid.RasterGrid, z0, height, radius float64) []float64 {
	bed := make([]float64, g.NumNodes())
	cr := float64(g.NY-1) / 2
	cc := float64(g.NX-1) / 2
	for i := range bed {
		row, col := g.Coordinate(i)
		dr := (float64(row) - cr) * g.DX
		dc := (float64(col) - cc) * g.DX
		bed[i] = z0 + height*math.Exp(-(dr*dr+dc*dc)/(radius*radius))
	}
	return bed
}

// Build dispatches on a profile name from configuration.
func Build(g *grid.RasterGrid, profile string, params map[string]float64) ([]float64, error) {
	switch profile {
	case "flat":
		return Flat(g, params["z0"]), nil
	case "incline":
		return Incline(g, params["z0"], params["slope"]), nil
	case "valley":
		return Valley(g, params["z0"], params["slope"], params["wall"]), nil
	case "dome":
		return Dome(g, params["z0"], params["height"], params["radius"]), nil
	default:
		return nil, fmt.Errorf("terrain: unknown profile %q", profile)
	}
}
