package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/inspector/internal/plot"
	"github.com/san-kum/inspector/internal/props"
)

const (
	metaFile   = "metadata.json"
	pointsFile = "points.csv"
)

// Store keeps saved sweeps, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Param struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Function  string    `json:"function"`
	Timestamp time.Time `json:"timestamp"`
	Variable  string    `json:"variable"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Samples   int       `json:"samples"`
	Params    []Param   `json:"params"`
	Message   string    `json:"message"`
}

// Run is one finished sweep.
type Run struct {
	Function string
	Variable string
	Min, Max float64
	Params   *props.Store
	Points   []plot.Point
	Message  string
}

// Save writes run under a fresh id and returns the id. The sweep variable
// itself is not recorded as a parameter.
func (s *Store) Save(run Run) (string, error) {
	runID := fmt.Sprintf("%s_%s", run.Function, strings.SplitN(uuid.NewString(), "-", 2)[0])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Function:  run.Function,
		Timestamp: time.Now(),
		Variable:  run.Variable,
		Min:       run.Min,
		Max:       run.Max,
		Samples:   len(run.Points),
		Params:    params(run.Params, run.Variable),
		Message:   run.Message,
	}
	if err := writeMeta(filepath.Join(runDir, metaFile), &meta); err != nil {
		return "", fmt.Errorf("storage: %s: %w", runID, err)
	}

	header := run.Variable
	if header == "" {
		header = "x"
	}
	if err := writePoints(filepath.Join(runDir, pointsFile), header, run.Points); err != nil {
		return "", fmt.Errorf("storage: %s: %w", runID, err)
	}
	return runID, nil
}

func params(st *props.Store, skip string) []Param {
	if st == nil {
		return nil
	}
	out := make([]Param, 0, st.Len())
	for _, p := range st.Properties() {
		if p.Name == skip {
			continue
		}
		out = append(out, Param{Name: p.Name, Kind: p.Kind().String(), Value: p.Value.String()})
	}
	return out
}

func writeMeta(path string, meta *RunMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func writePoints(path, header string, points []plot.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{header, "y"})
	for _, p := range points {
		w.Write([]string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		})
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPoints reads the points of a run. Malformed rows are skipped.
func (s *Store) LoadPoints(runID string) ([]plot.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, pointsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var points []plot.Point
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(rec[0], 64)
		y, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, plot.Point{X: x, Y: y})
	}
}
