package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/davfen/pendsim/internal/engine"
)

// Store persists recorded simulation runs, one directory per run with a
// metadata.json and a states.csv holding the snapshot series.
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Substeps  int                `json:"substeps"`
	Bobs      int                `json:"bobs"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save records a snapshot series. The CSV carries time plus
// theta/omega/x/y columns per bob of the first snapshot; runs whose
// chain was edited mid-flight produce ragged rows, which LoadSeries
// tolerates.
func (s *Store) Save(dt, duration float64, substeps int, metrics map[string]float64, snaps []engine.Snapshot) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bobs := 0
	if len(snaps) > 0 {
		bobs = len(snaps[0].Bobs)
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Substeps:  substeps,
		Bobs:      bobs,
		Metrics:   metrics,
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(snaps) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < bobs; i++ {
		header = append(header,
			fmt.Sprintf("theta%d", i), fmt.Sprintf("omega%d", i),
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range snaps {
		row := []string{strconv.FormatFloat(snap.Time, 'f', 6, 64)}
		for _, b := range snap.Bobs {
			row = append(row,
				strconv.FormatFloat(b.Theta, 'f', 6, 64),
				strconv.FormatFloat(b.Omega, 'f', 6, 64),
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

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

// LoadSeries reads back the recorded state rows: times plus the raw
// per-row float columns (theta/omega/x/y per bob).
func (s *Store) LoadSeries(runID string) ([]float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
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
		return []float64{}, [][]float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return times, rows, nil
}
