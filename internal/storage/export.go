package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/inspector/internal/plot"
)

type ExportData struct {
	RunMetadata
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`
}

// ExportJSON writes a run and its points as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, points []plot.Point) error {
	data := ExportData{
		RunMetadata: *meta,
		Xs:          make([]float64, len(points)),
		Ys:          plot.Ys(points),
	}
	for i, p := range points {
		data.Xs[i] = p.X
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
