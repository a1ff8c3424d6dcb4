// Package storage keeps traced runs on disk, one directory per run with a
// metadata.json and a curves.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/export"
	"github.com/san-kum/slopefield/internal/integrators"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string            `json:"id"`
	ODE       string            `json:"ode"`
	Timestamp time.Time         `json:"timestamp"`
	Step      float64           `json:"step"`
	MaxSteps  int               `json:"max_steps"`
	Bounds    export.BoundsData `json:"bounds"`
	Seeds     [][2]float64      `json:"seeds"`
	Points    int               `json:"points"`
}

// DynamoBounds returns the stored bounds, or an error when the file holds
// an empty or inverted rectangle.
func (m RunMetadata) DynamoBounds() (dynamo.Bounds, error) {
	b := dynamo.Bounds{XMin: m.Bounds.XMin, XMax: m.Bounds.XMax, YMin: m.Bounds.YMin, YMax: m.Bounds.YMax}
	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("run %s: %w", m.ID, err)
	}
	return b, nil
}

// Save writes a run and returns its ID. ODE, Step, MaxSteps and Bounds come
// from meta; ID, Timestamp, Seeds and Points are filled in.
func (s *Store) Save(meta RunMetadata, trs []integrators.Trajectory) (string, error) {
	now := s.now()
	meta.ID = fmt.Sprintf("trace_%d", now.UnixNano())
	meta.Timestamp = now
	meta.Seeds = make([][2]float64, len(trs))
	meta.Points = 0
	for i, t := range trs {
		meta.Seeds[i] = [2]float64{t.Seed.X, t.Seed.Y}
		meta.Points += t.Steps()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "curves.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, trs); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first. A missing base directory
// means no runs.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectories rebuilds the curves of a run.
func (s *Store) LoadTrajectories(runID string) ([]integrators.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "curves.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	trs := make([]integrators.Trajectory, len(meta.Seeds))
	for i, seed := range meta.Seeds {
		trs[i].Seed = dynamo.Point{X: seed[0], Y: seed[1]}
	}

	for n, record := range records {
		if n == 0 {
			continue
		}
		if len(record) != 5 {
			return nil, fmt.Errorf("run %s: line %d: want 5 fields, got %d", runID, n+1, len(record))
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil || idx < 0 || idx >= len(trs) {
			return nil, fmt.Errorf("run %s: line %d: bad seed index %q", runID, n+1, record[0])
		}
		x, errX := strconv.ParseFloat(record[3], 64)
		y, errY := strconv.ParseFloat(record[4], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("run %s: line %d: bad point", runID, n+1)
		}

		p := dynamo.Point{X: x, Y: y}
		switch record[1] {
		case "forward":
			trs[idx].Forward = append(trs[idx].Forward, p)
		case "backward":
			trs[idx].Backward = append(trs[idx].Backward, p)
		default:
			return nil, fmt.Errorf("run %s: line %d: bad direction %q", runID, n+1, record[1])
		}
	}

	for i := range trs {
		trs[i].Marker = len(trs[i].Forward) > 0
	}
	return trs, nil
}
