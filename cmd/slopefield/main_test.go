package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in      string
		want    dynamo.Point
		wantErr bool
	}{
		{"1,2", dynamo.Point{X: 1, Y: 2}, false},
		{" -0.5 , 1e-1 ", dynamo.Point{X: -0.5, Y: 0.1}, false},
		{"1", dynamo.Point{}, true},
		{"1,2,3", dynamo.Point{}, true},
		{"a,2", dynamo.Point{}, true},
		{"1,b", dynamo.Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSeed(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "sin(x)*y")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.HasPrefix(out, "ok: ") {
		t.Errorf("expected ok, got %q", out)
	}

	out, err = execute(t, "check", "z + 1")
	if err == nil {
		t.Fatal("expected error for undefined name")
	}
	if !strings.Contains(out, "INVALID FUNCTION NAME: z") {
		t.Errorf("expected diagnostic, got %q", out)
	}
	if !strings.Contains(out, "allowed names: abs, arccos, arcsin, arctan, cos, exp, log, sin, tan, x, y") {
		t.Errorf("expected allowed names, got %q", out)
	}

	out, err = execute(t, "check", "x +")
	if err == nil || !strings.Contains(out, "INVALID SYNTAX") {
		t.Errorf("expected syntax diagnostic, got %q (%v)", out, err)
	}
	if strings.Contains(out, "allowed names") {
		t.Errorf("syntax errors should not list names, got %q", out)
	}

	out, err = execute(t, "check", "x // 2 + y % 3")
	if err != nil || !strings.HasPrefix(out, "ok: ") {
		t.Errorf("expected floor division and modulo accepted, got %q (%v)", out, err)
	}
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, name := range []string{"NAME", "logistic", "y*(1 - y)", "singular"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %q in output", name)
		}
	}
}

func TestTraceCSV(t *testing.T) {
	out, err := execute(t, "trace", "0,0", "--format", "csv")
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "seed,direction,index,x,y" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) < 300 {
		t.Errorf("expected a full walk, got %d rows", len(lines)-1)
	}
}

func TestTracePlot(t *testing.T) {
	out, err := execute(t, "trace", "--preset", "decay")
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	for _, want := range []string{"dy/dx = -y", "forward", "backward", "EXIT", "y range"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	out, err = execute(t, "trace", "10,10")
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	if !strings.Contains(out, "outside") {
		t.Errorf("expected seed outside message, got %q", out)
	}

	if _, err := execute(t, "trace"); err == nil {
		t.Error("expected error without a seed")
	}
	if _, err := execute(t, "trace", "0,0", "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderText(t *testing.T) {
	out, err := execute(t, "render", "--seed", "0,0")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(rows) != 30 {
		t.Errorf("expected 30 rows, got %d", len(rows))
	}
	if strings.Trim(out, "\u2800\n") == "" {
		t.Error("expected something drawn")
	}
}

func TestRenderSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.svg")
	out, err := execute(t, "render", "--preset", "logistic", "-o", path)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "wrote") {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "<path") {
		t.Error("expected an svg with curves")
	}

	if _, err := execute(t, "render", "-o", filepath.Join(t.TempDir(), "field.png")); err == nil {
		t.Error("expected error for png output")
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("max_steps: 50\nview:\n  width: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLOPEFIELD_WIDTH", "8")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--preset", "decay", "--config", path, "--ode", "x", "--max-steps", "7"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.ODE != "x" {
		t.Errorf("expected flag ode, got %q", cfg.ODE)
	}
	if len(cfg.Seeds) != 2 {
		t.Errorf("expected preset seeds, got %d", len(cfg.Seeds))
	}
	if cfg.View.Width != 8 {
		t.Errorf("expected env width 8, got %v", cfg.View.Width)
	}
	if cfg.MaxSteps != 7 {
		t.Errorf("expected flag max steps 7, got %d", cfg.MaxSteps)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"--preset", "nope"}},
		{"bad seed", []string{"--seed", "1"}},
		{"negative cap", []string{"--max-steps=-1"}},
		{"missing file", []string{"--config", "/nonexistent/cfg.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			if _, err := loadConfig(cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTraceSaveAndRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	out, err := execute(t, "runs", "--data", dir)
	if err != nil || !strings.Contains(out, "no runs found") {
		t.Fatalf("expected empty listing, got %q (%v)", out, err)
	}

	if _, err := execute(t, "trace", "0,0", "-1,2", "--save", "--data", dir, "--format", "csv"); err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	runs, err := storage.New(dir).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one stored run, got %v (%v)", runs, err)
	}
	if len(runs[0].Seeds) != 2 {
		t.Errorf("expected 2 seeds, got %d", len(runs[0].Seeds))
	}

	out, err = execute(t, "runs", "--data", dir)
	if err != nil || !strings.Contains(out, runs[0].ID) {
		t.Errorf("expected %s in listing, got %q (%v)", runs[0].ID, out, err)
	}

	out, err = execute(t, "runs", runs[0].ID, "--data", dir)
	if err != nil {
		t.Fatalf("runs %s failed: %v", runs[0].ID, err)
	}
	if strings.Count(out, "DIRECTION") != 2 {
		t.Errorf("expected two replotted curves, got %q", out)
	}
}

func TestTraceEquilibria(t *testing.T) {
	out, err := execute(t, "trace", "0,0")
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	for _, want := range []string{"f = 0 at (0.0000, 0.3820), stable", "f = 0 at (0.0000, 2.6180), unstable", "lyapunov exponent", "nullcline f = 0 crosses 30 of 30 grid columns"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	body := "steps:\n  - preset: decay\n    out: decay.svg\n  - ode: \"x\"\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "batch", path)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if !strings.Contains(out, "1/2") || !strings.Contains(out, "(not written)") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "decay.svg")); err != nil {
		t.Errorf("expected decay.svg: %v", err)
	}
}

func TestMonteCarlo(t *testing.T) {
	out, err := execute(t, "montecarlo", "0,0", "--ode", "-y", "--trials", "20", "--spread", "1", "--rng-seed", "3")
	if err != nil {
		t.Fatalf("montecarlo failed: %v", err)
	}
	if !strings.Contains(out, "right") || !strings.Contains(out, "100.0%") {
		t.Errorf("expected every trial to leave on the right, got %q", out)
	}
}
