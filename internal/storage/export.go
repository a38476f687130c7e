package storage

import (
	"encoding/json"
	"io"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// ExportData is the flat JSON form of a traced run.
type ExportData struct {
	ID         string       `json:"id"`
	Surface    string       `json:"surface"`
	Integrator string       `json:"integrator"`
	Dt         float64      `json:"dt"`
	Steps      int          `json:"steps"`
	ArcLength  float64      `json:"arc_length"`
	Times      []float64    `json:"times"`
	Points     [][2]float64 `json:"points"`
	Positions  [][3]float64 `json:"positions"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, path geodesic.Path, positions []geometry.Vec3, times []float64) error {
	data := ExportData{
		ID:         meta.ID,
		Surface:    meta.Surface,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Steps:      meta.Steps,
		ArcLength:  meta.ArcLength,
		Times:      times,
		Points:     make([][2]float64, len(path)),
		Positions:  make([][3]float64, len(positions)),
	}

	for i, pt := range path {
		data.Points[i] = [2]float64{pt.U, pt.V}
	}
	for i, pos := range positions {
		data.Positions[i] = [3]float64{pos.X, pos.Y, pos.Z}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
