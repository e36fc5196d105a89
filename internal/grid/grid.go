// Package grid provides a uniform 2-D raster grid with named per-node
// scalar fields, the spatial substrate for the glacier flow solver.
//
// Nodes are addressed either by (row, col) or by a row-major linear
// index. Interior nodes have four orthogonal neighbors; boundary nodes
// have fewer.
package grid

import (
	"fmt"
	"math"
)

// neighbor offsets, orthogonal connectivity: N, S, W, E in (dRow, dCol).
var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// RasterGrid is an immutable-geometry raster of NY rows by NX columns
// with uniform spacing DX in both axes. Field storage is mutable.
type RasterGrid struct {
	NX, NY int
	DX     float64

	fields map[string][]float64
}

// NewRasterGrid builds a grid of nx columns by ny rows with spacing dx.
func NewRasterGrid(nx, ny int, dx float64) (*RasterGrid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("grid: dimensions must be positive, got %dx%d", nx, ny)
	}
	if dx <= 0 || math.IsNaN(dx) {
		return nil, fmt.Errorf("grid: spacing must be positive, got %f", dx)
	}
	return &RasterGrid{
		NX:     nx,
		NY:     ny,
		DX:     dx,
		fields: make(map[string][]float64),
	}, nil
}

// NumNodes returns the total node count.
func (g *RasterGrid) NumNodes() int { return g.NX * g.NY }

// Index converts (row, col) to a row-major linear node index.
func (g *RasterGrid) Index(row, col int) int { return row*g.NX + col }

// Coordinate converts a linear node index back to (row, col).
func (g *RasterGrid) Coordinate(idx int) (row, col int) {
	return idx / g.NX, idx % g.NX
}

// InBounds reports whether (row, col) addresses a node on the grid.
func (g *RasterGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.NY && col >= 0 && col < g.NX
}

// IsBoundary reports whether the node sits on the outer edge of the raster.
func (g *RasterGrid) IsBoundary(idx int) bool {
	row, col := g.Coordinate(idx)
	return row == 0 || row == g.NY-1 || col == 0 || col == g.NX-1
}

// Neighbors appends the linear indices of the orthogonal neighbors of idx
// to buf and returns the result. Boundary nodes yield fewer than four.
func (g *RasterGrid) Neighbors(idx int, buf []int) []int {
	row, col := g.Coordinate(idx)
	for _, d := range offsets {
		r, c := row+d[0], col+d[1]
		if g.InBounds(r, c) {
			buf = append(buf, g.Index(r, c))
		}
	}
	return buf
}
