package glacier

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/glacsim/internal/grid"
)

// Solver integrates ice thickness forward in time on a raster grid. It
// owns its working state and republishes the ice_thickness, ice_elevation
// and I_map grid fields only after each completed step.
type Solver struct {
	grid *grid.RasterGrid
	cfg  Config

	bed  []float64
	bdot []float64

	// working state, published to the grid after each completed step
	h    []float64
	s    []float64
	mask []float64
	div  []float64 // flux divergence scratch, m/a

	pubH []float64
	pubS []float64
	pubI []float64

	source    MassBalanceSource
	metrics   []Metric
	observers []Observer

	clipped float64 // m^3 removed by the H >= 0 clip
}

// New validates cfg against g and constructs a solver. The bed and
// mass-balance arrays are copied; ice_thickness, ice_elevation and I_map
// are created (or reset) on the grid.
func New(g *grid.RasterGrid, cfg Config) (*Solver, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g.NX != cfg.NX || g.NY != cfg.NY {
		return nil, &ConfigurationError{Field: "nx/ny", Reason: "must match the grid dimensions"}
	}
	if g.DX != cfg.DX {
		return nil, &ConfigurationError{Field: "dx", Reason: "must match the grid spacing"}
	}

	n := g.NumNodes()
	sv := &Solver{
		grid: g,
		cfg:  cfg,
		bed:  make([]float64, n),
		bdot: make([]float64, n),
		h:    make([]float64, n),
		s:    make([]float64, n),
		mask: make([]float64, n),
		div:  make([]float64, n),
	}
	copy(sv.bed, cfg.Bed)
	copy(sv.bdot, cfg.MassBalance)
	if cfg.InitialThickness != nil {
		copy(sv.h, cfg.InitialThickness)
		for i, v := range sv.h {
			if v < 0 {
				sv.h[i] = 0
			}
		}
	}
	sv.refreshDerived()

	if err := g.SetField(FieldBed, sv.bed); err != nil {
		return nil, err
	}
	if err := g.SetField(FieldMassBalance, sv.bdot); err != nil {
		return nil, err
	}
	sv.pubH = g.AddZeros(FieldThickness)
	sv.pubS = g.AddZeros(FieldElevation)
	sv.pubI = g.AddZeros(FieldMask)
	sv.publish()

	return sv, nil
}

// SetMassBalanceSource replaces the static mass-balance array with a
// time-dependent source, queried before every step.
func (sv *Solver) SetMassBalanceSource(src MassBalanceSource) { sv.source = src }

func (sv *Solver) AddMetric(m Metric)     { sv.metrics = append(sv.metrics, m) }
func (sv *Solver) AddObserver(o Observer) { sv.observers = append(sv.observers, o) }

// Fields returns the published field view.
func (sv *Solver) Fields() Fields {
	return Fields{Thickness: sv.pubH, Surface: sv.pubS, Mask: sv.pubI}
}

// ClippedVolume reports the total ice volume removed so far by the
// non-negativity clip, in m^3.
func (sv *Solver) ClippedVolume() float64 { return sv.clipped }

// Run advances the state from t to t_STOP. The configured Dt is a maximum
// step: each update is shrunk to the diffusive stability bound
// CFL * dx^2 / (4 * D_max) when that bound is tighter. There is no other
// stopping condition. On NumericalInstabilityError the grid fields are
// undefined and the solver must be discarded.
func (sv *Solver) Run(ctx context.Context) (*Result, error) {
	for _, m := range sv.metrics {
		m.Reset()
	}

	t := sv.cfg.T
	res := &Result{Metrics: make(map[string]float64)}
	sv.record(res, t)

	dx2 := sv.cfg.DX * sv.cfg.DX
	step := 0
	for t < sv.cfg.TStop {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if sv.source != nil {
			sv.source.Rate(t, sv.s, sv.bdot)
		}

		maxD := sv.computeFluxes()

		dt := sv.cfg.Dt
		limited := false
		if dtStable := sv.cfg.CFL * dx2 / (4 * maxD); maxD > 0 && dtStable < dt {
			dt = dtStable
			limited = true
		}
		if rem := sv.cfg.TStop - t; rem < dt {
			dt = rem
			limited = false
		}

		sv.applyStep(dt)
		step++
		t += dt

		if !sv.finite() {
			return res, &NumericalInstabilityError{Step: step, Time: t}
		}

		sv.publish()
		res.Steps++
		if limited {
			res.StabilityLimited++
		}

		f := sv.Fields()
		for _, m := range sv.metrics {
			m.Observe(f, t)
		}
		for _, o := range sv.observers {
			o.OnStep(f, t)
		}
		sv.record(res, t)
	}

	res.FinalTime = t
	res.ClippedVolume = sv.clipped
	for _, m := range sv.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

// applyStep advances thickness by dt years using the current divergence
// and forcing, clips to H >= 0, and refreshes the derived fields.
func (sv *Solver) applyStep(dt float64) {
	dx2 := sv.cfg.DX * sv.cfg.DX
	for i, h := range sv.h {
		hn := h + dt*(sv.div[i]+sv.bdot[i])
		if hn < 0 {
			sv.clipped += -hn * dx2
			hn = 0
		}
		sv.h[i] = hn
	}
	sv.refreshDerived()
}

func (sv *Solver) refreshDerived() {
	for i, h := range sv.h {
		sv.s[i] = sv.bed[i] + h
		if h > 0 {
			sv.mask[i] = 1
		} else {
			sv.mask[i] = 0
		}
	}
}

func (sv *Solver) publish() {
	copy(sv.pubH, sv.h)
	copy(sv.pubS, sv.s)
	copy(sv.pubI, sv.mask)
}

func (sv *Solver) finite() bool {
	for i := range sv.h {
		if math.IsNaN(sv.h[i]) || math.IsInf(sv.h[i], 0) {
			return false
		}
		if math.IsNaN(sv.s[i]) || math.IsInf(sv.s[i], 0) {
			return false
		}
	}
	return true
}

func (sv *Solver) record(res *Result, t float64) {
	dx2 := sv.cfg.DX * sv.cfg.DX
	res.Times = append(res.Times, t)
	res.Volumes = append(res.Volumes, floats.Sum(sv.h)*dx2)
	res.Areas = append(res.Areas, floats.Sum(sv.mask)*dx2)
}
