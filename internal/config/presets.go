package config

import "sort"

// Preset is a named ODE with seeds that show its behavior well in the
// default window.
type Preset struct {
	ODE         string
	Description string
	Seeds       []SeedConfig
}

var Presets = map[string]Preset{
	"quadratic": {
		ODE:         DefaultODE,
		Description: "two equilibria, one stable and one unstable",
		Seeds:       []SeedConfig{{X: 0, Y: 0}, {X: -2, Y: 2.5}},
	},
	"logistic": {
		ODE:         "y*(1 - y)",
		Description: "logistic growth toward y = 1",
		Seeds:       []SeedConfig{{X: -2, Y: 0.1}, {X: -2, Y: 2}, {X: -2, Y: -0.1}},
	},
	"decay": {
		ODE:         "-y",
		Description: "exponential decay",
		Seeds:       []SeedConfig{{X: 0, Y: 2}, {X: 0, Y: -2}},
	},
	"linear": {
		ODE:         "x - y",
		Description: "solutions approach the line y = x - 1",
		Seeds:       []SeedConfig{{X: -2, Y: 2}, {X: -2, Y: -2}},
	},
	"riccati": {
		ODE:         "x**2 + y**2",
		Description: "finite-time blow-up",
		Seeds:       []SeedConfig{{X: -2, Y: 0}, {X: 0, Y: -1}},
	},
	"separable": {
		ODE:         "x*y",
		Description: "Gaussian-shaped solutions",
		Seeds:       []SeedConfig{{X: 0, Y: 0.5}, {X: 0, Y: -0.5}},
	},
	"forced": {
		ODE:         "sin(x) - y",
		Description: "forced damping, solutions lock onto a sinusoid",
		Seeds:       []SeedConfig{{X: -3, Y: 1}},
	},
	"singular": {
		ODE:         "y/x",
		Description: "straight lines through the origin, undefined on x = 0",
		Seeds:       []SeedConfig{{X: 1, Y: 1}, {X: -1, Y: 2}},
	},
}

// GetPreset returns the defaults with the preset's ODE and seeds, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.ODE = p.ODE
	cfg.Seeds = append([]SeedConfig(nil), p.Seeds...)
	return cfg
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
