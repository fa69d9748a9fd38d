package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the flat JSON form of a stored run.
type ExportData struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	NumBodies int                `json:"num_bodies"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	data := ExportData{
		ID:        meta.ID,
		Preset:    meta.Preset,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		NumBodies: meta.NumBodies,
		Steps:     len(times),
		Times:     times,
		States:    states,
		Metrics:   meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout writes a stored run as indented JSON to stdout.
func ExportJSONStdout(meta *RunMetadata, states [][]float64, times []float64) error {
	return ExportJSON(os.Stdout, meta, states, times)
}
