package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/attsim/attsim/internal/kinematics"
)

type ExportData struct {
	Scenario   string       `json:"scenario"`
	Integrator string       `json:"integrator"`
	Frame      string       `json:"frame"`
	Dt         float64      `json:"dt"`
	Duration   float64      `json:"duration"`
	Steps      int          `json:"steps"`
	NormDrift  float64      `json:"norm_drift"`
	Times      []float64    `json:"times"`
	Attitudes  [][4]float64 `json:"attitudes"` // w, x, y, z
	Rates      [][3]float64 `json:"rates"`
}

func exportData(scenario, integrator, frame string, dt, duration float64, result *kinematics.Result) ExportData {
	data := ExportData{
		Scenario:   scenario,
		Integrator: integrator,
		Frame:      frame,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		NormDrift:  result.NormDrift,
		Times:      result.Times,
		Attitudes:  make([][4]float64, len(result.Attitudes)),
		Rates:      make([][3]float64, len(result.Rates)),
	}

	for i, q := range result.Attitudes {
		data.Attitudes[i] = [4]float64{q.W, q.X, q.Y, q.Z}
	}
	for i, w := range result.Rates {
		data.Rates[i] = [3]float64{w.X, w.Y, w.Z}
	}
	return data
}

func ExportJSON(w io.Writer, scenario, integrator, frame string, dt, duration float64, result *kinematics.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(scenario, integrator, frame, dt, duration, result))
}

func ExportJSONStdout(scenario, integrator, frame string, dt, duration float64, result *kinematics.Result) error {
	return ExportJSON(os.Stdout, scenario, integrator, frame, dt, duration, result)
}
