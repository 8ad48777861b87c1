// Package storage persists propagation runs as per-run directories holding
// metadata and the sampled trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/attsim/attsim/internal/kinematics"
)

// Columns of states.csv after the time column.
var stateHeader = []string{"qw", "qx", "qy", "qz", "yaw", "pitch", "roll", "wx", "wy", "wz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	Timestamp  time.Time `json:"timestamp"`
	Dt         float64   `json:"dt"`
	Duration   float64   `json:"duration"`
	Integrator string    `json:"integrator"`
	Frame      string    `json:"frame"`
	NormDrift  float64   `json:"norm_drift"`
}

func (s *Store) Save(scenario string, dt, duration float64, integrator, frame string, result *kinematics.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Integrator: integrator,
		Frame:      frame,
		NormDrift:  result.NormDrift,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, stateHeader...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		if err := w.Write(formatRow(result, i)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatRow(result *kinematics.Result, i int) []string {
	q := result.Attitudes[i]
	e := q.Euler()
	w := result.Rates[i]

	vals := []float64{
		result.Times[i],
		q.W, q.X, q.Y, q.Z,
		e.Yaw, e.Pitch, e.Roll,
		w.X, w.Y, w.Z,
	}
	row := make([]string, len(vals))
	for j, v := range vals {
		row[j] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads back the sampled trajectory as raw rows in stateHeader
// order, plus the time column separately.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return states, times, nil
}

// StateColumn returns the index of a named column within LoadStates rows,
// or -1 if unknown.
func StateColumn(name string) int {
	for i, h := range stateHeader {
		if h == name {
			return i
		}
	}
	return -1
}
