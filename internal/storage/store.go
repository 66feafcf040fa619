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

	"github.com/san-kum/galton/internal/board"
)

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
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Rows      int           `json:"rows"`
	Balls     int           `json:"balls"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Walk      string        `json:"walk"`
	Seed      int64         `json:"seed"`
	Workers   int           `json:"workers"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Mean      float64       `json:"mean"`
	StdDev    float64       `json:"stddev"`
	Image     string        `json:"image,omitempty"`
}

// Board rebuilds the configuration the run was made with.
func (m *RunMetadata) Board() board.Config {
	return board.Config{
		Rows:   m.Rows,
		Balls:  m.Balls,
		Width:  m.Width,
		Height: m.Height,
		Walk:   board.Walk(m.Walk),
		Seed:   m.Seed,
	}
}

func NewRunMetadata(cfg board.Config) RunMetadata {
	return RunMetadata{
		Rows:   cfg.Rows,
		Balls:  cfg.Balls,
		Width:  cfg.Width,
		Height: cfg.Height,
		Walk:   string(cfg.Walk),
		Seed:   cfg.Seed,
	}
}

// Save writes metadata.json and counts.csv under a fresh run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, counts []int) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

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

	csvFile, err := os.Create(filepath.Join(runDir, "counts.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"bin", "count"}); err != nil {
		return "", err
	}
	for i, c := range counts {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(c)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, oldest first. Unreadable entries are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadCounts reads the histogram back; rows are placed by their bin column.
func (s *Store) LoadCounts(runID string) ([]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "counts.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []int{}, nil
	}

	counts := make([]int, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("counts.csv line %d: expected 2 fields, got %d", i+2, len(record))
		}
		bin, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("counts.csv line %d: %w", i+2, err)
		}
		c, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("counts.csv line %d: %w", i+2, err)
		}
		if bin < 0 || bin >= len(counts) {
			return nil, fmt.Errorf("counts.csv line %d: bin %d out of range", i+2, bin)
		}
		counts[bin] = c
	}

	return counts, nil
}
