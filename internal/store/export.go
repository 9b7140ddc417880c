package store

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	ID       string             `json:"id"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Substeps int                `json:"substeps"`
	Bobs     int                `json:"bobs"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a recorded run as a single self-describing JSON
// document. States carry the CSV columns (theta/omega/x/y per bob).
func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, states [][]float64) error {
	data := ExportData{
		ID:       meta.ID,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Substeps: meta.Substeps,
		Bobs:     meta.Bobs,
		Steps:    len(times),
		Times:    times,
		States:   states,
		Metrics:  meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile is ExportJSON to a freshly created file.
func ExportJSONFile(path string, meta *RunMetadata, times []float64, states [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, times, states)
}
