package terrain

import (
	"math"
	"testing"

	"github.com/san-kum/glacsim/internal/grid"
)

func mustGrid(t *testing.T, nx, ny int, dx float64) *grid.RasterGrid {
	t.Helper()
	g, err := grid.NewRasterGrid(nx, ny, dx)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestFlat(t *testing.T) {
	g := mustGrid(t, 4, 4, 100)
	bed := Flat(g, 1500)
	for i, v := range bed {
		if v != 1500 {
			t.Fatalf("node %d: want 1500, got %f", i, v)
		}
	}
}

func TestInclineRisesNorthward(t *testing.T) {
	g := mustGrid(t, 3, 5, 100)
	bed := Incline(g, 1000, 0.1)

	if bed[g.Index(4, 0)] != 1000 {
		t.Errorf("southern edge should sit at z0, got %f", bed[g.Index(4, 0)])
	}
	for r := 0; r < 4; r++ {
		if bed[g.Index(r, 1)] <= bed[g.Index(r+1, 1)] {
			t.Errorf("row %d not above row %d", r, r+1)
		}
	}
	want := 1000 + 0.1*4*100
	if math.Abs(bed[g.Index(0, 0)]-want) > 1e-12 {
		t.Errorf("northern edge: want %f, got %f", want, bed[g.Index(0, 0)])
	}
}

func TestValleySymmetricAboutCenterline(t *testing.T) {
	g := mustGrid(t, 7, 5, 100)
	bed := Valley(g, 1000, 0.05, 0.0005)

	for r := 0; r < g.NY; r++ {
		for c := 0; c < g.NX; c++ {
			mirror := bed[g.Index(r, g.NX-1-c)]
			if math.Abs(bed[g.Index(r, c)]-mirror) > 1e-9 {
				t.Fatalf("asymmetric at (%d,%d): %f vs %f", r, c, bed[g.Index(r, c)], mirror)
			}
		}
	}
	// walls above floor
	if bed[g.Index(2, 0)] <= bed[g.Index(2, 3)] {
		t.Error("valley wall should rise above the floor")
	}
}

func TestDomePeaksAtCenter(t *testing.T) {
	g := mustGrid(t, 9, 9, 100)
	bed := Dome(g, 1000, 500, 300)

	peak := bed[g.Index(4, 4)]
	if math.Abs(peak-1500) > 1e-9 {
		t.Errorf("center: want 1500, got %f", peak)
	}
	for i, v := range bed {
		if v > peak {
			t.Fatalf("node %d above the center peak", i)
		}
		if v < 1000 {
			t.Fatalf("node %d below base elevation", i)
		}
	}
}

func TestBuildDispatch(t *testing.T) {
	g := mustGrid(t, 4, 4, 100)

	for _, profile := range []string{"flat", "incline", "valley", "dome"} {
		bed, err := Build(g, profile, map[string]float64{"z0": 1000, "radius": 100})
		if err != nil {
			t.Errorf("%s: %v", profile, err)
		}
		if len(bed) != g.NumNodes() {
			t.Errorf("%s: got %d nodes", profile, len(bed))
		}
	}

	if _, err := Build(g, "fjord", nil); err == nil {
		t.Error("unknown profile should fail")
	}
}
