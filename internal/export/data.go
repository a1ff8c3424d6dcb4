package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/slopefield/internal/dynamo"
	"github.com/san-kum/slopefield/internal/integrators"
)

type TraceData struct {
	ODE          string           `json:"ode"`
	Step         float64          `json:"step"`
	Bounds       BoundsData       `json:"bounds"`
	Trajectories []TrajectoryData `json:"trajectories"`
}

type BoundsData struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

type TrajectoryData struct {
	Seed     [2]float64   `json:"seed"`
	Marker   bool         `json:"marker"`
	Forward  [][2]float64 `json:"forward"`
	Backward [][2]float64 `json:"backward"`
}

func NewTraceData(ode string, b dynamo.Bounds, step float64, trs []integrators.Trajectory) TraceData {
	data := TraceData{
		ODE:          ode,
		Step:         step,
		Bounds:       BoundsData{XMin: b.XMin, XMax: b.XMax, YMin: b.YMin, YMax: b.YMax},
		Trajectories: make([]TrajectoryData, len(trs)),
	}
	for i, t := range trs {
		data.Trajectories[i] = TrajectoryData{
			Seed:     [2]float64{t.Seed.X, t.Seed.Y},
			Marker:   t.Marker,
			Forward:  pairs(t.Forward),
			Backward: pairs(t.Backward),
		}
	}
	return data
}

func pairs(l dynamo.Polyline) [][2]float64 {
	out := make([][2]float64, len(l))
	for i, p := range l {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func WriteJSON(w io.Writer, data TraceData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per point: seed index, direction, step index, x, y.
func WriteCSV(w io.Writer, trs []integrators.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seed", "direction", "index", "x", "y"}); err != nil {
		return err
	}
	for i, t := range trs {
		for _, half := range []struct {
			name string
			line dynamo.Polyline
		}{{"forward", t.Forward}, {"backward", t.Backward}} {
			for j, p := range half.line {
				row := []string{
					strconv.Itoa(i),
					half.name,
					strconv.Itoa(j),
					strconv.FormatFloat(p.X, 'g', -1, 64),
					strconv.FormatFloat(p.Y, 'g', -1, 64),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
