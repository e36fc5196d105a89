package glacier_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glacsim/internal/glacier"
	"github.com/san-kum/glacsim/internal/grid"
)

// uniform returns an n-node array filled with v.
func uniform(n int, v float64) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = v
	}
	return a
}

// dome returns a radially symmetric thickness bump centered on the grid.
func dome(g *grid.RasterGrid, height, radius float64) []float64 {
	h := make([]float64, g.NumNodes())
	cr := float64(g.NY-1) / 2
	cc := float64(g.NX-1) / 2
	for i := range h {
		row, col := g.Coordinate(i)
		dr := (float64(row) - cr) * g.DX
		dc := (float64(col) - cc) * g.DX
		v := height * math.Exp(-(dr*dr+dc*dc)/(radius*radius))
		if v < 1e-3 {
			v = 0
		}
		h[i] = v
	}
	return h
}

func newSolver(nx, ny int, dx float64, mutate func(*glacier.Config)) (*grid.RasterGrid, *glacier.Solver) {
	g, err := grid.NewRasterGrid(nx, ny, dx)
	Expect(err).NotTo(HaveOccurred())

	cfg := glacier.Config{
		NX:          nx,
		NY:          ny,
		DX:          dx,
		Dt:          1.0,
		TStop:       10.0,
		Bed:         uniform(nx*ny, 1000),
		MassBalance: uniform(nx*ny, 0),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	sv, err := glacier.New(g, cfg)
	Expect(err).NotTo(HaveOccurred())
	return g, sv
}

var _ = Describe("configuration validation", func() {
	base := func() glacier.Config {
		return glacier.Config{
			NX: 4, NY: 4, DX: 100, Dt: 1, TStop: 10,
			Bed:         uniform(16, 0),
			MassBalance: uniform(16, 0),
		}
	}

	newWith := func(mutate func(*glacier.Config)) error {
		cfg := base()
		mutate(&cfg)
		g, err := grid.NewRasterGrid(4, 4, 100)
		Expect(err).NotTo(HaveOccurred())
		_, err = glacier.New(g, cfg)
		return err
	}

	DescribeTable("rejects invalid parameters with ConfigurationError",
		func(mutate func(*glacier.Config)) {
			err := newWith(mutate)
			var cerr *glacier.ConfigurationError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &cerr)).To(BeTrue())
		},
		Entry("non-positive nx", func(c *glacier.Config) { c.NX = 0 }),
		Entry("non-positive ny", func(c *glacier.Config) { c.NY = -2 }),
		Entry("non-positive dx", func(c *glacier.Config) { c.DX = 0 }),
		Entry("non-positive dt", func(c *glacier.Config) { c.Dt = 0 }),
		Entry("t_STOP at start time", func(c *glacier.Config) { c.TStop = 0; c.T = 0 }),
		Entry("t_STOP before start time", func(c *glacier.Config) { c.T = 20; c.TStop = 10 }),
		Entry("bed length mismatch", func(c *glacier.Config) { c.Bed = uniform(7, 0) }),
		Entry("mass balance length mismatch", func(c *glacier.Config) { c.MassBalance = uniform(3, 0) }),
	)

	It("rejects a grid whose geometry disagrees with the config", func() {
		g, err := grid.NewRasterGrid(5, 5, 100)
		Expect(err).NotTo(HaveOccurred())
		_, err = glacier.New(g, base())
		var cerr *glacier.ConfigurationError
		Expect(errors.As(err, &cerr)).To(BeTrue())
	})

	It("accepts a valid configuration and publishes the contract fields", func() {
		g, _ := newSolver(4, 4, 100, nil)
		Expect(g.HasField("ice_thickness")).To(BeTrue())
		Expect(g.HasField("ice_elevation")).To(BeTrue())
		Expect(g.HasField("I_map")).To(BeTrue())
	})
})

var _ = Describe("Run", func() {
	It("keeps a zero-ice, zero-forcing domain exactly at zero", func() {
		g, sv := newSolver(6, 6, 100, nil)
		res, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.FinalTime).To(BeNumerically(">=", 10.0))

		h, err := g.Field("ice_thickness")
		Expect(err).NotTo(HaveOccurred())
		for _, v := range h {
			Expect(v).To(Equal(0.0))
		}
	})

	It("terminates with final t >= t_STOP for a dt that does not divide the span", func() {
		_, sv := newSolver(4, 4, 100, func(c *glacier.Config) {
			c.Dt = 0.3
			c.TStop = 1.0
		})
		res, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.FinalTime).To(BeNumerically(">=", 1.0))
		Expect(res.Steps).To(BeNumerically(">", 0))
	})

	It("keeps thickness non-negative under ablation stronger than the ice", func() {
		g, sv := newSolver(6, 6, 100, func(c *glacier.Config) {
			c.MassBalance = uniform(36, -5.0) // m/a of melt, far beyond supply
			c.InitialThickness = uniform(36, 1.0)
			c.TStop = 4
		})
		res, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		h, _ := g.Field("ice_thickness")
		for _, v := range h {
			Expect(v).To(BeNumerically(">=", 0))
		}
		// the overdraft must appear in the conservation ledger
		Expect(res.ClippedVolume).To(BeNumerically(">", 0))
	})

	It("keeps S = B + H and the mask consistent after every step", func() {
		g, sv := newSolver(9, 9, 100, func(c *glacier.Config) {
			c.InitialThickness = dome(mustGrid(9, 9, 100), 80, 300)
			c.TStop = 5
		})

		bed, _ := g.Field("bed_elevation")
		checks, violations := 0, 0
		sv.AddObserver(observerFunc(func(f glacier.Fields, t float64) {
			for i := range f.Thickness {
				if f.Surface[i] != bed[i]+f.Thickness[i] {
					violations++
				}
				iced := f.Thickness[i] > 0
				if (iced && f.Mask[i] != 1) || (!iced && f.Mask[i] != 0) {
					violations++
				}
			}
			checks++
		}))

		_, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(checks).To(BeNumerically(">", 0))
		Expect(violations).To(BeZero())
	})

	It("conserves volume on a closed domain with zero mass balance", func() {
		_, sv := newSolver(11, 11, 100, func(c *glacier.Config) {
			c.InitialThickness = dome(mustGrid(11, 11, 100), 100, 300)
			c.TStop = 20
		})
		res, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Volumes).NotTo(BeEmpty())
		v0 := res.Volumes[0]
		Expect(v0).To(BeNumerically(">", 0))
		for _, v := range res.Volumes {
			Expect(v).To(BeNumerically("~", v0, v0*1e-9))
		}
		// nothing went negative, so nothing was clipped
		Expect(res.ClippedVolume).To(Equal(0.0))
	})

	It("spreads a symmetric dome without directional bias", func() {
		g, sv := newSolver(11, 11, 100, func(c *glacier.Config) {
			c.InitialThickness = dome(mustGrid(11, 11, 100), 100, 300)
			c.TStop = 20
		})
		_, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		h, _ := g.Field("ice_thickness")
		nx, ny := 11, 11
		for r := 0; r < ny; r++ {
			for c := 0; c < nx; c++ {
				Expect(h[r*nx+c]).To(BeNumerically("~", h[r*nx+(nx-1-c)], 1e-9))
				Expect(h[r*nx+c]).To(BeNumerically("~", h[(ny-1-r)*nx+c], 1e-9))
			}
		}
	})

	It("sub-steps instead of failing when dt far exceeds the stability bound", func() {
		_, sv := newSolver(15, 15, 100, func(c *glacier.Config) {
			c.InitialThickness = dome(mustGrid(15, 15, 100), 30, 300)
			c.Dt = 50 // years; unstable as a raw explicit step here
			c.TStop = 100
		})
		res, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StabilityLimited).To(BeNumerically(">", 0))
		Expect(res.Steps).To(BeNumerically(">", 2), "the bound must force extra sub-steps")
	})

	It("reports NumericalInstabilityError on non-finite input state", func() {
		bed := uniform(16, 1000)
		bed[5] = math.NaN()
		g, err := grid.NewRasterGrid(4, 4, 100)
		Expect(err).NotTo(HaveOccurred())
		sv, err := glacier.New(g, glacier.Config{
			NX: 4, NY: 4, DX: 100, Dt: 1, TStop: 5,
			Bed:         bed,
			MassBalance: uniform(16, 0.5),
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = sv.Run(context.Background())
		var nerr *glacier.NumericalInstabilityError
		Expect(err).To(HaveOccurred())
		Expect(errors.As(err, &nerr)).To(BeTrue())
		Expect(nerr.Step).To(BeNumerically(">=", 1))
	})

	It("stops early when the context is canceled", func() {
		_, sv := newSolver(6, 6, 100, func(c *glacier.Config) {
			c.MassBalance = uniform(36, 0.5)
			c.TStop = 1e6
		})
		ctx, cancel := context.WithCancel(context.Background())
		sv.AddObserver(observerFunc(func(f glacier.Fields, t float64) {
			if t > 10 {
				cancel()
			}
		}))
		_, err := sv.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("mass-balance sources", func() {
	It("queries a time-dependent source each step", func() {
		calls := 0
		src := sourceFunc(func(t float64, surface, out []float64) {
			calls++
			for i := range out {
				out[i] = 0.2
			}
		})
		g, sv := newSolver(6, 6, 100, func(c *glacier.Config) { c.TStop = 5 })
		sv.SetMassBalanceSource(src)

		_, err := sv.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(BeNumerically(">", 1))

		h, _ := g.Field("ice_thickness")
		for _, v := range h {
			Expect(v).To(BeNumerically(">", 0))
		}
	})
})

// test plumbing

func mustGrid(nx, ny int, dx float64) *grid.RasterGrid {
	g, err := grid.NewRasterGrid(nx, ny, dx)
	Expect(err).NotTo(HaveOccurred())
	return g
}

type observerFunc func(f glacier.Fields, t float64)

func (fn observerFunc) OnStep(f glacier.Fields, t float64) { fn(f, t) }

type sourceFunc func(t float64, surface, out []float64)

func (fn sourceFunc) Rate(t float64, surface, out []float64) { fn(t, surface, out) }
