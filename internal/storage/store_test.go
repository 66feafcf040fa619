package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/san-kum/galton/internal/board"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := board.DefaultConfig()
	cfg.Width = 6
	cfg.Seed = 42
	meta := NewRunMetadata(cfg)
	meta.Workers = 2
	meta.Mean = 2.5

	counts := []int{0, 3, 9, 8, 1, 0}
	runID, err := st.Save(meta, counts)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != runID || loaded.Seed != 42 || loaded.Workers != 2 || loaded.Mean != 2.5 {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if got := loaded.Board(); got != cfg {
		t.Errorf("expected board %+v, got %+v", cfg, got)
	}

	got, err := st.LoadCounts(runID)
	if err != nil {
		t.Fatalf("load counts failed: %v", err)
	}
	if !reflect.DeepEqual(got, counts) {
		t.Errorf("expected %v, got %v", counts, got)
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

	meta := NewRunMetadata(board.DefaultConfig())
	first, err := st.Save(meta, []int{1})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(meta, []int{2})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(NewRunMetadata(board.DefaultConfig()), []int{0, 1})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "counts.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadCountsMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	tests := []struct {
		name string
		body string
	}{
		{"bad count", "bin,count\n0,x\n"},
		{"bad bin", "bin,count\nzero,1\n"},
		{"out of range", "bin,count\n5,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(tmpDir, tt.name)
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "counts.csv"), []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := st.LoadCounts(tt.name); err == nil {
				t.Error("expected error")
			}
		})
	}
}
