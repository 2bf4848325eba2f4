package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/inspector/internal/plot"
	"github.com/san-kum/inspector/internal/props"
)

func sampleRun() Run {
	params, _ := props.FromPairs("velocity", 710.0, "distance", 100.0, "plot_x", 95.0)
	return Run{
		Function: "trajectory",
		Variable: "plot_x",
		Min:      0,
		Max:      100,
		Params:   params,
		Points:   []plot.Point{{X: 0, Y: 0}, {X: 50, Y: -0.0243}, {X: 95, Y: -0.0877}},
		Message:  "Drop is -0.0877 meters",
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "trajectory_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Function != "trajectory" {
		t.Errorf("expected function 'trajectory', got '%s'", meta.Function)
	}
	if meta.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", meta.Samples)
	}
	if len(meta.Params) != 2 {
		t.Errorf("sweep variable should not be saved as a param, got %+v", meta.Params)
	}
	if meta.Params[0].Value != "710.0" || meta.Params[0].Kind != "float" {
		t.Errorf("unexpected first param %+v", meta.Params[0])
	}

	points, err := st.LoadPoints(runID)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(points) != 3 || points[2].Y != -0.0877 {
		t.Errorf("points not restored: %+v", points)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(sampleRun()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(sampleRun()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("run ids must be unique")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "points.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	data, _ := os.ReadFile(filepath.Join(tmpDir, runID, "points.csv"))
	if !strings.HasPrefix(string(data), "plot_x,y\n") {
		t.Errorf("unexpected csv header: %q", string(data))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, _ := st.Save(sampleRun())
	meta, _ := st.Load(runID)
	points, _ := st.LoadPoints(runID)

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, points); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != runID || len(got.Xs) != 3 || got.Ys[1] != -0.0243 {
		t.Errorf("unexpected export %+v", got)
	}
}
