// Package automation runs scripted batches: YAML scenarios that render a
// sequence of scenes to SVG, and Monte Carlo fans of seeds around a point.
package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/slopefield/internal/analysis"
	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/export"
	"github.com/san-kum/slopefield/internal/expr"
	"github.com/san-kum/slopefield/internal/integrators"
	"github.com/san-kum/slopefield/internal/logging"
	"github.com/san-kum/slopefield/internal/session"
)

// Scenario defines a scripted sequence of scenes
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one scene. Preset fills in the ODE and seeds; ODE and
// Seeds override it. Out is the SVG path, relative to the scenario file.
type ScenarioStep struct {
	Preset   string              `yaml:"preset"`
	ODE      string              `yaml:"ode"`
	View     *config.ViewConfig  `yaml:"view"`
	Seeds    []config.SeedConfig `yaml:"seeds"`
	MaxSteps int                 `yaml:"max_steps"`
	Pixels   int                 `yaml:"pixels"`
	Color    string              `yaml:"color"`
	Out      string              `yaml:"out"`
}

// StepResult is what a step drew.
type StepResult struct {
	ODE          string
	Out          string
	Trajectories []integrators.Trajectory
}

// LoadScenario loads a scenario from a YAML file. Relative Out paths are
// resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range scenario.Steps {
		if out := scenario.Steps[i].Out; out != "" && !filepath.IsAbs(out) {
			scenario.Steps[i].Out = filepath.Join(dir, out)
		}
	}
	return &scenario, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.ODE != "" {
		cfg.ODE = s.ODE
	}
	if s.View != nil {
		cfg.View = *s.View
	}
	if len(s.Seeds) > 0 {
		cfg.Seeds = s.Seeds
	}
	cfg.MaxSteps = s.MaxSteps
	if s.Pixels > 0 {
		cfg.Render.Pixels = s.Pixels
	}
	if s.Color != "" {
		cfg.Color = s.Color
	}
	return cfg, nil
}

// RunScenario renders every step in order and stops at the first failure.
// Steps without Out are drawn but not written.
func RunScenario(ctx context.Context, scenario *Scenario, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		view, err := cfg.Viewport()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		svg := export.NewSVG(cfg.Render.Pixels, cfg.Render.Pixels, cfg.Color)
		ctrl, err := session.New(session.Options{
			Viewport: view,
			Surface:  svg,
			Logger:   logger,
			ODE:      cfg.ODE,
			Seeds:    cfg.SeedPoints(),
			MaxSteps: cfg.MaxSteps,
		})
		if err != nil {
			return results, fmt.Errorf("step %d: %s: %w", i+1, expr.Diagnostic(err), err)
		}

		if step.Out != "" {
			if err := writeSVG(step.Out, svg); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "ode", cfg.ODE, "out", step.Out)

		results = append(results, StepResult{
			ODE:          ctrl.Func().Source(),
			Out:          step.Out,
			Trajectories: ctrl.Traces(),
		})
	}

	return results, nil
}

func writeSVG(path string, svg *export.SVG) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := svg.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MonteCarloConfig defines a fan of random seeds around Base.
type MonteCarloConfig struct {
	ODE    string
	Base   dynamo.Point
	Spread float64
	Trials int
	// Bounds and Step are the viewport the walks run in.
	Bounds   dynamo.Bounds
	Step     float64
	MaxSteps int
	Workers  int
	// Seed seeds the generator; zero means time-based.
	Seed int64
}

// MonteCarloResult is one trial: where it started and where the forward
// walk left the bounds.
type MonteCarloResult struct {
	TrialID int
	Seed    dynamo.Point
	Exit    analysis.Edge
	Last    dynamo.Point
	Err     error
}

// RunMonteCarlo traces Trials seeds drawn uniformly from Base ± Spread in
// y, all at Base.X, and records each forward exit edge.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	f, err := expr.Compile(cfg.ODE)
	if err != nil {
		return nil, err
	}
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	seeds := make([]dynamo.Point, cfg.Trials)
	for i := range seeds {
		seeds[i] = dynamo.Point{X: cfg.Base.X, Y: cfg.Base.Y + (rng.Float64()-0.5)*2*cfg.Spread}
	}

	ensemble := integrators.NewEnsemble(integrators.NewTracer(cfg.MaxSteps), cfg.Workers)
	runs := ensemble.Run(ctx, f, seeds, cfg.Bounds, cfg.Step)

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		s := analysis.Summarize(f, r.Trajectory, cfg.Bounds, cfg.Step)
		results[i] = MonteCarloResult{
			TrialID: i,
			Seed:    seeds[i],
			Exit:    s.Forward.Exit,
			Last:    s.Forward.Last,
			Err:     r.Err,
		}
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// MonteCarloStats counts trials per exit edge.
func MonteCarloStats(results []MonteCarloResult) map[analysis.Edge]int {
	counts := make(map[analysis.Edge]int)
	for _, r := range results {
		counts[r.Exit]++
	}
	return counts
}
