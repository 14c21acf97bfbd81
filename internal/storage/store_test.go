package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Trace: []sim.Sample{
			{Frame: 0, Position: dynamo.V(4.8, 2.7), Velocity: dynamo.V(0.0027, 0)},
			{Frame: 1, Position: dynamo.V(4.80783, 2.7), Velocity: dynamo.V(0.00513, 0), Embed: dynamo.V(-0.01, 0.02)},
		},
		Metrics:   map[string]float64{"max_speed": 0.06},
		FramesRun: 2,
		Started:   3,
		Corrected: 1,
		Seed:      42,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("box", dynamo.DefaultParams(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Level != "box" || meta.Seed != 42 || meta.Frames != 2 || meta.Started != 3 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Params != dynamo.DefaultParams() {
		t.Errorf("params = %+v", meta.Params)
	}
	if meta.Metrics["max_speed"] != 0.06 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	want := testResult().Trace
	if len(trace) != len(want) {
		t.Fatalf("trace = %d samples, want %d", len(trace), len(want))
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, trace[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty list = %v, %v", runs, err)
	}

	if _, err := st.Save("pit", dynamo.DefaultParams(), testResult()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Level != "pit" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List() = %v, %v", runs, err)
	}
}

func TestLoadTrace_Empty(t *testing.T) {
	st := New(t.TempDir())
	result := testResult()
	result.Trace = nil
	runID, err := st.Save("box", dynamo.DefaultParams(), result)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadTrace(runID); !errors.Is(err, dynamo.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := New(t.TempDir()).Load("nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "box_1", Level: "box", Frames: 2}
	if err := ExportJSON(&buf, meta, testResult().Trace); err != nil {
		t.Fatal(err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != "box_1" || len(decoded.Trace) != 2 || decoded.Trace[1].Embed != dynamo.V(-0.01, 0.02) {
		t.Errorf("decoded = %+v", decoded)
	}
}
