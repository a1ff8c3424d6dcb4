package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/export"
	"github.com/san-kum/slopefield/internal/expr"
	"github.com/san-kum/slopefield/internal/integrators"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "runs"))
	clock := time.Unix(1700000000, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	f := expr.MustCompile("y**2 - 3*y + 1")
	b := dynamo.Bounds{XMin: -3, XMax: 3, YMin: -3, YMax: 3}
	trs := []integrators.Trajectory{
		integrators.Trace(f, dynamo.Point{X: 0, Y: 0}, b, 0.01),
		integrators.Trace(f, dynamo.Point{X: 5, Y: 0}, b, 0.01),
	}

	id, err := s.Save(RunMetadata{
		ODE:    f.Source(),
		Step:   0.01,
		Bounds: export.BoundsData{XMin: -3, XMax: 3, YMin: -3, YMax: 3},
	}, trs)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.ODE != f.Source() || meta.Step != 0.01 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Points != trs[0].Steps() {
		t.Errorf("expected %d points, got %d", trs[0].Steps(), meta.Points)
	}
	if got, err := meta.DynamoBounds(); err != nil || got != b {
		t.Errorf("expected bounds %v, got %v (%v)", b, got, err)
	}

	got, err := s.LoadTrajectories(id)
	if err != nil {
		t.Fatalf("LoadTrajectories failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 trajectories, got %d", len(got))
	}
	for i := range trs {
		if got[i].Seed != trs[i].Seed || got[i].Marker != trs[i].Marker {
			t.Errorf("trajectory %d: expected seed %v marker %v, got %v %v", i, trs[i].Seed, trs[i].Marker, got[i].Seed, got[i].Marker)
		}
		if len(got[i].Forward) != len(trs[i].Forward) || len(got[i].Backward) != len(trs[i].Backward) {
			t.Errorf("trajectory %d: length mismatch", i)
			continue
		}
		for j := range trs[i].Forward {
			if got[i].Forward[j] != trs[i].Forward[j] {
				t.Errorf("trajectory %d point %d: expected %v, got %v", i, j, trs[i].Forward[j], got[i].Forward[j])
				break
			}
		}
	}
}

func TestDynamoBounds_Invalid(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Save(RunMetadata{ODE: "x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := meta.DynamoBounds(); !errors.Is(err, dynamo.ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	runs, err := s.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected no runs, got %v (%v)", runs, err)
	}

	first, _ := s.Save(RunMetadata{ODE: "x"}, nil)
	second, _ := s.Save(RunMetadata{ODE: "y"}, nil)
	if err := os.MkdirAll(filepath.Join(s.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := s.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v (%v)", runs, err)
	}
}

func TestLoadTrajectories_Corrupt(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Save(RunMetadata{ODE: "x"}, []integrators.Trajectory{{Seed: dynamo.Point{}}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"bad index", "seed,direction,index,x,y\n7,forward,0,0,0\n"},
		{"bad direction", "seed,direction,index,x,y\n0,sideways,0,0,0\n"},
		{"bad point", "seed,direction,index,x,y\n0,forward,0,a,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(s.baseDir, id, "curves.csv")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := s.LoadTrajectories(id); err == nil {
				t.Error("expected error")
			}
		})
	}
}
