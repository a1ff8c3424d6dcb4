package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/session"
	"github.com/san-kum/slopefield/internal/viewport"
)

const (
	DefaultODE   = session.DefaultODE
	DefaultTheme = "minimal"
	DefaultColor = "#1f77b4"
)

type Config struct {
	ODE      string       `yaml:"ode"`
	View     ViewConfig   `yaml:"view"`
	Seeds    []SeedConfig `yaml:"seeds"`
	MaxSteps int          `yaml:"max_steps"`
	Theme    string       `yaml:"theme"`
	Color    string       `yaml:"color"`
	Render   RenderConfig `yaml:"render"`
	Debug    bool         `yaml:"debug"`
	LogFile  string       `yaml:"log_file"`
}

type ViewConfig struct {
	CenterX     float64 `yaml:"center_x"`
	CenterY     float64 `yaml:"center_y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GridSpacing float64 `yaml:"grid_spacing"`
	Step        float64 `yaml:"step"`
	Sensitivity float64 `yaml:"sensitivity"`
}

type SeedConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RenderConfig sizes non-interactive output: SVG in pixels, text in cells.
type RenderConfig struct {
	Pixels int `yaml:"pixels"`
	Cols   int `yaml:"cols"`
	Rows   int `yaml:"rows"`
}

func DefaultConfig() *Config {
	return &Config{
		ODE: DefaultODE,
		View: ViewConfig{
			Width:       viewport.DefaultWidth,
			Height:      viewport.DefaultHeight,
			GridSpacing: viewport.DefaultSpacing,
			Step:        viewport.DefaultStep,
			Sensitivity: viewport.DefaultSensitivity,
		},
		Theme: DefaultTheme,
		Color: DefaultColor,
		Render: RenderConfig{
			Pixels: 600,
			Cols:   60,
			Rows:   30,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file on top of cfg. Keys missing from the file keep
// their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Viewport validates the view section and builds a viewport from it.
func (c *Config) Viewport() (*viewport.Viewport, error) {
	return viewport.New(viewport.Params{
		CenterX:     c.View.CenterX,
		CenterY:     c.View.CenterY,
		Width:       c.View.Width,
		Height:      c.View.Height,
		GridSpacing: c.View.GridSpacing,
		Step:        c.View.Step,
		Sensitivity: c.View.Sensitivity,
	})
}

func (c *Config) SeedPoints() []dynamo.Point {
	out := make([]dynamo.Point, len(c.Seeds))
	for i, s := range c.Seeds {
		out[i] = dynamo.Point{X: s.X, Y: s.Y}
	}
	return out
}

func (c *Config) AddSeed(x, y float64) {
	c.Seeds = append(c.Seeds, SeedConfig{X: x, Y: y})
}
