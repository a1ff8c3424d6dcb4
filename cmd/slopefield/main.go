package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/slopefield/internal/analysis"
	"github.com/san-kum/slopefield/internal/automation"
	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/export"
	"github.com/san-kum/slopefield/internal/expr"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/gui"
	"github.com/san-kum/slopefield/internal/integrators"
	"github.com/san-kum/slopefield/internal/logging"
	"github.com/san-kum/slopefield/internal/session"
	"github.com/san-kum/slopefield/internal/storage"
	"github.com/san-kum/slopefield/internal/viz"
)

var (
	configFile string
	preset     string
	ode        string
	seeds      []string
	theme      string
	maxSteps   int
	debug      bool
	logFile    string
	dataDir    string

	// render
	outFile string
	// trace
	format string
	save   bool
	// montecarlo
	trials  int
	spread  float64
	rngSeed int64
)

const (
	equilibriaSamples = 121
	nullclineColumns  = 30
)

// main registers the commands and runs the terminal front end when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "slopefield",
		Short:        "direction fields and Euler solution curves of dy/dx = f(x, y)",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&ode, "ode", "", "right-hand side f(x, y)")
	pf.StringArrayVar(&seeds, "seed", nil, "initial point x,y (repeatable)")
	pf.StringVar(&theme, "theme", "", "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.IntVar(&maxSteps, "max-steps", 0, "cap on Euler steps per direction (0 = none)")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to a file")
	pf.StringVar(&dataDir, "data", ".slopefield", "data directory for stored runs")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal plot (default)",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the field and seed curves to svg or text",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (.svg); text to stdout when empty")

	traceCmd := &cobra.Command{
		Use:   "trace [x,y ...]",
		Short: "integrate seeds and summarize the curves",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&format, "format", "plot", "output format: plot, csv, json")
	traceCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")

	runsCmd := &cobra.Command{
		Use:   "runs [run_id]",
		Short: "list stored runs or replot one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "render a yaml scenario of scenes to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [x,y]",
		Short: "trace random seeds around a point and count where they leave",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of seeds")
	monteCarloCmd.Flags().Float64Var(&spread, "spread", 0.5, "half-width of the y interval seeds are drawn from")
	monteCarloCmd.Flags().Int64Var(&rngSeed, "rng-seed", 0, "random seed (0 = time-based)")

	checkCmd := &cobra.Command{
		Use:   "check [expr]",
		Short: "validate an expression",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named odes",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, renderCmd, traceCmd, runsCmd, batchCmd, monteCarloCmd, checkCmd, presetsCmd)
	return rootCmd
}

// parseSeed reads "x,y".
func parseSeed(s string) (dynamo.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return dynamo.Point{}, fmt.Errorf("seed %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return dynamo.Point{}, fmt.Errorf("seed %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return dynamo.Point{}, fmt.Errorf("seed %q: %w", s, err)
	}
	return dynamo.Point{X: x, Y: y}, nil
}

// loadConfig layers defaults or a preset, then the config file, then
// SLOPEFIELD_* variables, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("ode") {
		cfg.ODE = ode
	}
	if flags.Changed("seed") {
		cfg.Seeds = nil
		for _, s := range seeds {
			p, err := parseSeed(s)
			if err != nil {
				return nil, err
			}
			cfg.AddSeed(p.X, p.Y)
		}
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("max-steps must not be negative, got %d", cfg.MaxSteps)
	}
	return cfg, nil
}

// setup resolves the config and builds the logger. quiet discards log
// output unless a log file is set.
func setup(cmd *cobra.Command, quiet bool) (*config.Config, *log.Logger, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := logging.New(logging.Options{
		Debug: cfg.Debug,
		File:  cfg.LogFile,
		Quiet: quiet,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger.Debug("config", "ode", cfg.ODE, "seeds", len(cfg.Seeds), "max_steps", cfg.MaxSteps)
	return cfg, logger, closeLog, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	view, err := cfg.Viewport()
	if err != nil {
		return err
	}
	return viz.Run(viz.Options{
		Viewport: view,
		ODE:      cfg.ODE,
		Seeds:    cfg.SeedPoints(),
		MaxSteps: cfg.MaxSteps,
		Theme:    viz.GetTheme(cfg.Theme).WithCurve(cfg.Color),
		Logger:   logger,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	view, err := cfg.Viewport()
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{
		Viewport: view,
		ODE:      cfg.ODE,
		Seeds:    cfg.SeedPoints(),
		MaxSteps: cfg.MaxSteps,
		Color:    cfg.Color,
		Logger:   logger,
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	view, err := cfg.Viewport()
	if err != nil {
		return err
	}
	opts := session.Options{
		Viewport: view,
		Logger:   logger,
		ODE:      cfg.ODE,
		Seeds:    cfg.SeedPoints(),
		MaxSteps: cfg.MaxSteps,
	}

	if outFile == "" {
		surface := viz.NewBrailleSurface(cfg.Render.Cols, cfg.Render.Rows)
		opts.Surface = surface
		if _, err := session.New(opts); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), surface.Plain())
		return nil
	}

	if ext := strings.ToLower(filepath.Ext(outFile)); ext != ".svg" {
		return fmt.Errorf("unsupported output format %q", ext)
	}
	svg := export.NewSVG(cfg.Render.Pixels, cfg.Render.Pixels, cfg.Color)
	opts.Surface = svg
	if _, err := session.New(opts); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if _, err := svg.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	points := cfg.SeedPoints()
	if len(args) > 0 {
		points = points[:0]
		for _, a := range args {
			p, err := parseSeed(a)
			if err != nil {
				return err
			}
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return errors.New("no seed: pass x,y or --seed")
	}

	f, err := expr.Compile(cfg.ODE)
	if err != nil {
		return fmt.Errorf("%s: %w", expr.Diagnostic(err), err)
	}
	view, err := cfg.Viewport()
	if err != nil {
		return err
	}
	b := view.Bounds()

	ensemble := integrators.NewEnsemble(integrators.NewTracer(cfg.MaxSteps), runtime.NumCPU())
	results := ensemble.Run(cmd.Context(), f, points, b, view.Step)
	trs := make([]integrators.Trajectory, len(results))
	for i, r := range results {
		var walkErr *dynamo.WalkError
		switch {
		case errors.As(r.Err, &walkErr):
			logger.Warn("walk truncated", "seed", points[i], "step", walkErr.Step, "at", walkErr.At)
		case r.Err != nil:
			return r.Err
		}
		trs[i] = r.Trajectory
	}

	if save {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(storage.RunMetadata{
			ODE:      f.Source(),
			Step:     view.Step,
			MaxSteps: cfg.MaxSteps,
			Bounds:   export.BoundsData{XMin: b.XMin, XMax: b.XMax, YMin: b.YMin, YMax: b.YMax},
		}, trs)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("saved run", "id", id, "dir", dataDir)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteCSV(out, trs)
	case "json":
		return export.WriteJSON(out, export.NewTraceData(f.Source(), b, view.Step, trs))
	case "plot":
		return printTrace(out, f, trs, b, view.Step)
	}
	return fmt.Errorf("unknown format %q", format)
}

func printTrace(w io.Writer, f *expr.Func, trs []integrators.Trajectory, b dynamo.Bounds, h float64) error {
	fmt.Fprintf(w, "dy/dx = %s\n", f.Source())
	if fld, err := field.NewSampler(b.Width()/nullclineColumns).Sample(f, b); err == nil {
		cols := make(map[float64]bool)
		for _, p := range analysis.Isocline(fld) {
			cols[p.X] = true
		}
		fmt.Fprintf(w, "nullcline f = 0 crosses %d of %d grid columns\n", len(cols), len(fld.Xs))
	}
	for _, tr := range trs {
		fmt.Fprintln(w)
		if tr.Empty() {
			fmt.Fprintf(w, "seed %v is outside %v\n", tr.Seed, b)
			continue
		}

		curve := tr.Curve()
		graph := asciigraph.Plot(curve.Ys(),
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("y through %v, x from %.2f to %.2f", tr.Seed, curve[0].X, curve[len(curve)-1].X)),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)

		s := analysis.Summarize(f, tr, b, h)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DIRECTION\tSTEPS\tARC LENGTH\tLAST\tEXIT")
		fmt.Fprintf(tw, "forward\t%d\t%.4f\t%v\t%s\n", s.Forward.Steps, s.Forward.ArcLength, s.Forward.Last, s.Forward.Exit)
		fmt.Fprintf(tw, "backward\t%d\t%.4f\t%v\t%s\n", s.Backward.Steps, s.Backward.ArcLength, s.Backward.Last, s.Backward.Exit)
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(w, "\ny range [%.4f, %.4f]\n", s.YMin, s.YMax)
		fmt.Fprintf(w, "lyapunov exponent %.4f\n", analysis.LyapunovExponent(f, tr.Seed, b, h, 1e-8))
		for _, e := range analysis.Equilibria(f, tr.Seed.X, b.YMin, b.YMax, equilibriaSamples) {
			kind := "unstable"
			if e.Stable() {
				kind = "stable"
			}
			fmt.Fprintf(w, "f = 0 at (%.4f, %.4f), %s\n", tr.Seed.X, e.Y, kind)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		meta, err := store.Load(args[0])
		if err != nil {
			return err
		}
		trs, err := store.LoadTrajectories(args[0])
		if err != nil {
			return err
		}
		f, err := expr.Compile(meta.ODE)
		if err != nil {
			return fmt.Errorf("run %s: %w", meta.ID, err)
		}
		b, err := meta.DynamoBounds()
		if err != nil {
			return err
		}
		return printTrace(out, f, trs, b, meta.Step)
	}

	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tODE\tSEEDS\tPOINTS\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.ODE, len(r.Seeds), r.Points, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	_, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(cmd.Context(), scenario, logger)
	out := cmd.OutOrStdout()
	for i, r := range results {
		dest := r.Out
		if dest == "" {
			dest = "(not written)"
		}
		fmt.Fprintf(out, "%d/%d  dy/dx = %-24s %d curves  %s\n", i+1, len(scenario.Steps), r.ODE, len(r.Trajectories), dest)
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	base, err := parseSeed(args[0])
	if err != nil {
		return err
	}
	view, err := cfg.Viewport()
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		ODE:      cfg.ODE,
		Base:     base,
		Spread:   spread,
		Trials:   trials,
		Bounds:   view.Bounds(),
		Step:     view.Step,
		MaxSteps: cfg.MaxSteps,
		Workers:  runtime.NumCPU(),
		Seed:     rngSeed,
	})
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("trial", "id", r.TrialID, "seed", r.Seed, "err", r.Err)
		}
	}

	stats := automation.MonteCarloStats(results)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXIT\tTRIALS\tSHARE")
	for _, edge := range []analysis.Edge{analysis.EdgeLeft, analysis.EdgeRight, analysis.EdgeBottom, analysis.EdgeTop, analysis.EdgeUndefined, analysis.EdgeNone} {
		if n := stats[edge]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", edge, n, 100*float64(n)/float64(len(results)))
		}
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	f, err := expr.Compile(args[0])
	if err != nil {
		if expr.IsNoop(err) {
			fmt.Fprintln(out, "nothing to check")
			return nil
		}
		fmt.Fprintln(out, expr.Diagnostic(err))
		if errors.Is(err, expr.ErrUndefinedSymbol) {
			fmt.Fprintf(out, "allowed names: %s\n", strings.Join(expr.Allowed(), ", "))
		}
		return err
	}
	fmt.Fprintf(out, "ok: %s\n", f)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tODE\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.ODE, p.Description)
	}
	return w.Flush()
}
