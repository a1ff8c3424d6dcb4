package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name: SLOPEFIELD_ODE, SLOPEFIELD_WIDTH, ...
const EnvPrefix = "slopefield"

// Env holds the environment overrides. Unset variables leave the
// corresponding pointer nil so file and default values survive.
type Env struct {
	ODE         *string  `envconfig:"ODE"`
	CenterX     *float64 `envconfig:"CENTER_X"`
	CenterY     *float64 `envconfig:"CENTER_Y"`
	Width       *float64 `envconfig:"WIDTH"`
	Height      *float64 `envconfig:"HEIGHT"`
	GridSpacing *float64 `envconfig:"GRID_SPACING"`
	Step        *float64 `envconfig:"STEP"`
	Sensitivity *float64 `envconfig:"SENSITIVITY"`
	MaxSteps    *int     `envconfig:"MAX_STEPS"`
	Theme       *string  `envconfig:"THEME"`
	Color       *string  `envconfig:"COLOR"`
	Debug       *bool    `envconfig:"DEBUG"`
	LogFile     *string  `envconfig:"LOG_FILE"`
}

// LoadEnv reads the SLOPEFIELD_* variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Apply copies every set variable onto cfg.
func (e *Env) Apply(cfg *Config) {
	setString(&cfg.ODE, e.ODE)
	setFloat(&cfg.View.CenterX, e.CenterX)
	setFloat(&cfg.View.CenterY, e.CenterY)
	setFloat(&cfg.View.Width, e.Width)
	setFloat(&cfg.View.Height, e.Height)
	setFloat(&cfg.View.GridSpacing, e.GridSpacing)
	setFloat(&cfg.View.Step, e.Step)
	setFloat(&cfg.View.Sensitivity, e.Sensitivity)
	if e.MaxSteps != nil {
		cfg.MaxSteps = *e.MaxSteps
	}
	setString(&cfg.Theme, e.Theme)
	setString(&cfg.Color, e.Color)
	if e.Debug != nil {
		cfg.Debug = *e.Debug
	}
	setString(&cfg.LogFile, e.LogFile)
}

// ApplyEnv reads the environment and overlays it onto cfg.
func ApplyEnv(cfg *Config) error {
	env, err := LoadEnv()
	if err != nil {
		return err
	}
	env.Apply(cfg)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
