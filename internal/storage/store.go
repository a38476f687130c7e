package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/geodesic-lab/geotrace/internal/analysis"
	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Store persists traced runs, one directory per run: metadata.json plus
// path.csv with the parameter-space points and their mapped 3D
// positions.
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
	ID         string    `json:"id"`
	Surface    string    `json:"surface"`
	Timestamp  time.Time `json:"timestamp"`
	Dt         float64   `json:"dt"`
	Steps      int       `json:"steps"`
	MaxLength  float64   `json:"max_length"`
	Integrator string    `json:"integrator"`
	Normalized bool      `json:"normalized"`
	InitU      float64   `json:"init_u"`
	InitV      float64   `json:"init_v"`
	InitDU     float64   `json:"init_du"`
	InitDV     float64   `json:"init_dv"`
	ArcLength  float64   `json:"arc_length"`
}

func (s *Store) Save(meta RunMetadata, path geodesic.Path, surf geometry.Surface) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Surface, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = len(path) - 1
	// Arc length over the valid prefix only: the JSON encoder rejects
	// NaN, and a degenerate tail must not fail the whole save.
	meta.ArcLength = analysis.Stats(surf, path, meta.Dt).ArcLength

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

	csvFile, err := os.Create(filepath.Join(runDir, "path.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "u", "v", "x", "y", "z"}); err != nil {
		return "", err
	}

	for i, pt := range path {
		pos := surf.At(pt.U, pt.V)
		row := []string{
			strconv.FormatFloat(float64(i)*meta.Dt, 'f', 6, 64),
			strconv.FormatFloat(pt.U, 'f', 6, 64),
			strconv.FormatFloat(pt.V, 'f', 6, 64),
			strconv.FormatFloat(pos.X, 'f', 6, 64),
			strconv.FormatFloat(pos.Y, 'f', 6, 64),
			strconv.FormatFloat(pos.Z, 'f', 6, 64),
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
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

// LoadPath reads back the parameter-space path, the mapped 3D positions,
// and the per-point times.
func (s *Store) LoadPath(runID string) (geodesic.Path, []geometry.Vec3, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "path.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return geodesic.Path{}, []geometry.Vec3{}, []float64{}, nil
	}

	path := make(geodesic.Path, 0, len(records)-1)
	positions := make([]geometry.Vec3, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 6 {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		times = append(times, vals[0])
		path = append(path, geodesic.Point{U: vals[1], V: vals[2]})
		positions = append(positions, geometry.Vec3{X: vals[3], Y: vals[4], Z: vals[5]})
	}

	return path, positions, times, nil
}
