package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/davfen/pendsim/internal/engine"
)

func sampleSnapshots() []engine.Snapshot {
	return []engine.Snapshot{
		{
			Tick: 1, Time: 0.016,
			Bobs: []engine.BobState{
				{Theta: 1.5, Omega: -0.1, X: 119.7, Y: 8.5, Mass: 10, RodLength: 120},
				{Theta: 1.4, Omega: 0.2, X: 237.9, Y: 28.9, Mass: 10, RodLength: 120},
			},
		},
		{
			Tick: 2, Time: 0.032,
			Bobs: []engine.BobState{
				{Theta: 1.49, Omega: -0.3, X: 119.2, Y: 9.7, Mass: 10, RodLength: 120},
				{Theta: 1.41, Omega: 0.1, X: 237.5, Y: 29.1, Mass: 10, RodLength: 120},
			},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	metrics := map[string]float64{"energy_drift": 0.001}
	runID, err := st.Save(0.016, 1.0, 2, metrics, sampleSnapshots())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Dt != 0.016 {
		t.Errorf("expected dt 0.016, got %f", meta.Dt)
	}
	if meta.Bobs != 2 {
		t.Errorf("expected 2 bobs, got %d", meta.Bobs)
	}
	if meta.Metrics["energy_drift"] != 0.001 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}

	times, states, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 2 || len(states) != 2 {
		t.Fatalf("expected 2 rows, got %d/%d", len(times), len(states))
	}
	if len(states[0]) != 8 {
		t.Errorf("expected 8 columns for 2 bobs, got %d", len(states[0]))
	}
	if states[0][0] != 1.5 {
		t.Errorf("theta0 not round-tripped: %f", states[0][0])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(0.016, 1.0, 1, nil, sampleSnapshots()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(0.016, 1.0, 1, nil, sampleSnapshots())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(0.016, 1.0, 1, map[string]float64{"mean_energy": -42}, sampleSnapshots())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	times, states, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, times, states); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", data.Steps)
	}
	if data.Metrics["mean_energy"] != -42 {
		t.Errorf("metrics not exported: %v", data.Metrics)
	}
}
