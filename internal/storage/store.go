package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"frame", "x", "y", "vx", "vy", "ex", "ey"}

// Store keeps each run in its own directory under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrapf(os.MkdirAll(s.baseDir, 0755), "create %s", s.baseDir)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Level     string             `json:"level"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Params    dynamo.Params      `json:"params"`
	Started   int                `json:"contacts_started"`
	Corrected int                `json:"corrections"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(level string, params dynamo.Params, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", level, now.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrapf(err, "create run %s", runID)
	}

	meta := RunMetadata{
		ID:        runID,
		Level:     level,
		Timestamp: now,
		Seed:      result.Seed,
		Frames:    result.FramesRun,
		Params:    params,
		Started:   result.Started,
		Corrected: result.Corrected,
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Trace); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrapf(enc.Encode(v), "encode %s", path)
}

func writeFrames(path string, trace []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, sm := range trace {
		row := []string{strconv.Itoa(sm.Frame)}
		for _, val := range []float64{sm.Position.X, sm.Position.Y, sm.Velocity.X, sm.Velocity.Y, sm.Embed.X, sm.Embed.Y} {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "write frame %d", sm.Frame)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "flush %s", path)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrapf(err, "list %s", s.baseDir)
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
	slices.SortFunc(runs, func(a, b RunMetadata) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, errors.Wrapf(err, "run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "run %s metadata", runID)
	}
	return &meta, nil
}

// LoadTrace reads the per-frame samples of a run. Malformed rows are skipped.
func (s *Store) LoadTrace(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, errors.Wrapf(err, "run %s", runID)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "run %s frames", runID)
	}
	if len(records) < 2 {
		return nil, errors.Wrapf(dynamo.ErrNoData, "run %s", runID)
	}

	trace := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(framesHeader) {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals := make([]float64, 0, 6)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) != 6 {
			continue
		}
		trace = append(trace, sim.Sample{
			Frame:    frame,
			Position: dynamo.V(vals[0], vals[1]),
			Velocity: dynamo.V(vals[2], vals[3]),
			Embed:    dynamo.V(vals[4], vals[5]),
		})
	}
	return trace, nil
}
