package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/glacsim/internal/analysis"
	"github.com/san-kum/glacsim/internal/compare"
	"github.com/san-kum/glacsim/internal/config"
	"github.com/san-kum/glacsim/internal/export"
	"github.com/san-kum/glacsim/internal/glacier"
	"github.com/san-kum/glacsim/internal/grid"
	"github.com/san-kum/glacsim/internal/massbalance"
	"github.com/san-kum/glacsim/internal/metrics"
	"github.com/san-kum/glacsim/internal/store"
	"github.com/san-kum/glacsim/internal/terrain"
	"github.com/san-kum/glacsim/internal/tui"
	"github.com/san-kum/glacsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	nx, ny int
	dx     float64
	dt     float64
	tStop  float64

	fieldName string
	svgPath   string
	svgScale  float64
	frameRate int
	row       int
	bins      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glacsim",
		Short: "shallow-ice glacier flow simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glacsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a glacier simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&fieldName, "field", glacier.FieldThickness, "field to plot")

	compareCmd := &cobra.Command{
		Use:   "compare-mask [run_id] [observed.csv]",
		Short: "score the simulated ice mask against an observed mask",
		Args:  cobra.ExactArgs(2),
		RunE:  compareMask,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored field to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&fieldName, "field", glacier.FieldThickness, "field to render")
	exportSVGCmd.Flags().StringVar(&svgPath, "out", "field.svg", "output path")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 6, "pixels per node")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "hypsometry and surface roughness of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&row, "row", -1, "transect row (default: middle)")
	analyzeCmd.Flags().IntVar(&bins, "bins", 10, "hypsometry bins")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, compareCmd,
		presetsCmd, exportJSONCmd, exportSVGCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name for the scenario")
	cmd.Flags().IntVar(&nx, "nx", 0, "grid columns (overrides config)")
	cmd.Flags().IntVar(&ny, "ny", 0, "grid rows (overrides config)")
	cmd.Flags().Float64Var(&dx, "dx", 0, "grid spacing, m (overrides config)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "maximum time step, years (overrides config)")
	cmd.Flags().Float64Var(&tStop, "t-stop", 0, "terminal time, years (overrides config)")
}

// resolveConfig assembles the run configuration from defaults, preset,
// config file, and CLI overrides, in that order of increasing precedence.
func resolveConfig(args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 && preset != "" {
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if nx > 0 {
		cfg.NX = nx
	}
	if ny > 0 {
		cfg.NY = ny
	}
	if dx > 0 {
		cfg.DX = dx
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if tStop > 0 {
		cfg.TStop = tStop
	}
	return cfg, nil
}

// buildSolver wires grid, terrain, forcing, solver and default metrics
// from a run configuration.
func buildSolver(cfg *config.Config) (*grid.RasterGrid, *glacier.Solver, error) {
	g, err := grid.NewRasterGrid(cfg.NX, cfg.NY, cfg.DX)
	if err != nil {
		return nil, nil, err
	}

	bed, err := terrain.Build(g, cfg.Bed.Profile, cfg.Bed.Params)
	if err != nil {
		return nil, nil, err
	}

	bdot := make([]float64, g.NumNodes())
	var source glacier.MassBalanceSource
	switch cfg.MassBalance.Mode {
	case "", "uniform":
		for i := range bdot {
			bdot[i] = cfg.MassBalance.Rate
		}
	case "ela":
		ela := massbalance.NewELAGradient(cfg.MassBalance.ELA, cfg.MassBalance.Beta, cfg.MassBalance.Cap)
		ela.Rate(cfg.T, bed, bdot)
		source = ela
	default:
		return nil, nil, fmt.Errorf("unknown mass balance mode: %s", cfg.MassBalance.Mode)
	}

	sv, err := glacier.New(g, glacier.Config{
		NX:           cfg.NX,
		NY:           cfg.NY,
		DX:           cfg.DX,
		Dt:           cfg.Dt,
		T:            cfg.T,
		TStop:        cfg.TStop,
		Bed:          bed,
		MassBalance:  bdot,
		FlowRate:     cfg.FlowLaw.FlowRate,
		ThicknessExp: cfg.FlowLaw.ThicknessExp,
		SlopeExp:     cfg.FlowLaw.SlopeExp,
		CFL:          cfg.FlowLaw.CFL,
	})
	if err != nil {
		return nil, nil, err
	}
	if source != nil {
		sv.SetMassBalanceSource(source)
	}
	for _, m := range metrics.Defaults(cfg.DX, sv) {
		sv.AddMetric(m)
	}
	return g, sv, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	g, sv, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	res, err := sv.Run(context.Background())
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, g, res)
	if err != nil {
		return err
	}

	printSummary(runID, res)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	g, sv, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	res, err := tui.Run(sv, cfg.NX, cfg.T, cfg.TStop, cfg.DX, frameRate)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, g, res)
	if err != nil {
		return err
	}

	printSummary(runID, res)
	return nil
}

func printSummary(runID string, res *glacier.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", runID)
	fmt.Fprintf(w, "final time\t%.2f a\n", res.FinalTime)
	fmt.Fprintf(w, "steps\t%d (%d stability-limited)\n", res.Steps, res.StabilityLimited)
	fmt.Fprintf(w, "clipped volume\t%.1f m^3\n", res.ClippedVolume)
	for name, v := range res.Metrics {
		fmt.Fprintf(w, "%s\t%.4g\n", name, v)
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tFINAL t\tVOLUME km^3")
	for _, r := range runs {
		vol := 0.0
		if len(r.Volumes) > 0 {
			vol = r.Volumes[len(r.Volumes)-1] / 1e9
		}
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.1f\t%.3f\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04"),
			r.Config.NX, r.Config.NY, r.FinalTime, vol)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	g, err := st.LoadFields(args[0])
	if err != nil {
		return err
	}

	field, err := g.Field(fieldName)
	if err != nil {
		return err
	}

	var rendered string
	if fieldName == glacier.FieldMask {
		rendered, err = viz.MaskMap(field, g.NX)
	} else {
		rendered, err = viz.Heatmap(field, g.NX, 100)
	}
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(fieldName))
	fmt.Println(rendered)
	fmt.Println(viz.VolumeChart(meta.Volumes, 70, 10))
	fmt.Println()
	fmt.Println(viz.AreaChart(meta.Areas, 70, 10))
	return nil
}

func compareMask(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	g, err := st.LoadFields(args[0])
	if err != nil {
		return err
	}
	simulated, err := g.Field(glacier.FieldMask)
	if err != nil {
		return err
	}
	observed, err := readMaskCSV(args[1], g.NumNodes())
	if err != nil {
		return err
	}

	stats, err := compare.Accuracy(simulated, observed)
	if err != nil {
		return err
	}
	diff, err := compare.Render(simulated, observed, g.NX)
	if err != nil {
		return err
	}

	fmt.Println(diff)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "accuracy\t%.4f\n", stats.Accuracy())
	fmt.Fprintf(w, "jaccard\t%.4f\n", stats.Jaccard())
	fmt.Fprintf(w, "both ice\t%d\n", stats.BothIce)
	fmt.Fprintf(w, "simulated only\t%d\n", stats.SimOnly)
	fmt.Fprintf(w, "observed only\t%d\n", stats.ObsOnly)
	return w.Flush()
}

// readMaskCSV reads a flat or row-per-line CSV of 0/1 values.
func readMaskCSV(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	mask := make([]float64, 0, n)
	for _, rec := range records {
		for _, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("bad mask value %q in %s: %w", cell, path, err)
			}
			mask = append(mask, v)
		}
	}
	if len(mask) != n {
		return nil, fmt.Errorf("mask %s has %d values, grid has %d nodes", path, len(mask), n)
	}
	return mask, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	g, err := st.LoadFields(args[0])
	if err != nil {
		return err
	}

	res := &glacier.Result{
		FinalTime:        meta.FinalTime,
		Steps:            meta.Steps,
		StabilityLimited: meta.Limited,
		ClippedVolume:    meta.Clipped,
		Times:            meta.Times,
		Volumes:          meta.Volumes,
		Areas:            meta.Areas,
		Metrics:          meta.Metrics,
	}
	return store.ExportJSON(os.Stdout, g, res)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	g, err := st.LoadFields(args[0])
	if err != nil {
		return err
	}
	field, err := g.Field(fieldName)
	if err != nil {
		return err
	}
	if err := export.WriteFieldSVG(svgPath, field, g.NX, svgScale); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	g, err := st.LoadFields(args[0])
	if err != nil {
		return err
	}
	surface, err := g.Field(glacier.FieldElevation)
	if err != nil {
		return err
	}
	mask, err := g.Field(glacier.FieldMask)
	if err != nil {
		return err
	}

	bands, err := analysis.Hypsometry(surface, mask, g.DX, bins)
	if err != nil {
		return err
	}
	if len(bands) == 0 {
		fmt.Println("no ice-covered nodes")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ELEVATION m\tAREA km^2")
	for _, b := range bands {
		fmt.Fprintf(w, "%.0f-%.0f\t%.3f\n", b.Low, b.High, b.Area/1e6)
	}
	w.Flush()

	tr := row
	if tr < 0 {
		tr = g.NY / 2
	}
	profile, err := analysis.Transect(surface, g.NX, tr)
	if err != nil {
		return err
	}
	ps := analysis.RoughnessSpectrum(profile)
	if len(ps) > 1 {
		fmt.Println()
		fmt.Println(viz.Chart(ps, fmt.Sprintf("surface roughness spectrum, row %d", tr), 60, 8))
	}
	return nil
}
