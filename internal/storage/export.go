package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/rebound/internal/sim"
)

type ExportData struct {
	RunMetadata
	Trace []sim.Sample `json:"trace"`
}

// ExportJSON writes a run's metadata and trace as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, trace []sim.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: meta, Trace: trace})
}
