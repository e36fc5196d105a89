// Package store persists completed runs: a metadata.json per run plus a
// fields.csv snapshot of the final grid state, under a base directory.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/glacsim/internal/config"
	"github.com/san-kum/glacsim/internal/glacier"
	"github.com/san-kum/glacsim/internal/grid"
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

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Config    *config.Config     `json:"config"`
	FinalTime float64            `json:"final_time"`
	Steps     int                `json:"steps"`
	Limited   int                `json:"stability_limited_steps"`
	Clipped   float64            `json:"clipped_volume"`
	Metrics   map[string]float64 `json:"metrics"`
	Times     []float64          `json:"times"`
	Volumes   []float64          `json:"volumes"`
	Areas     []float64          `json:"areas"`
}

// Save writes metadata and the final field snapshot, returning the run id.
func (s *Store) Save(cfg *config.Config, g *grid.RasterGrid, res *glacier.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Config:    cfg,
		FinalTime: res.FinalTime,
		Steps:     res.Steps,
		Limited:   res.StabilityLimited,
		Clipped:   res.ClippedVolume,
		Metrics:   res.Metrics,
		Times:     res.Times,
		Volumes:   res.Volumes,
		Areas:     res.Areas,
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

	if err := s.saveFields(runDir, g); err != nil {
		return "", err
	}
	return runID, nil
}

var fieldColumns = []string{
	glacier.FieldBed,
	glacier.FieldMassBalance,
	glacier.FieldThickness,
	glacier.FieldElevation,
	glacier.FieldMask,
}

func (s *Store) saveFields(runDir string, g *grid.RasterGrid) error {
	f, err := os.Create(filepath.Join(runDir, "fields.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"node", "row", "col"}
	cols := make([][]float64, 0, len(fieldColumns))
	for _, name := range fieldColumns {
		vals, err := g.Field(name)
		if err != nil {
			return err
		}
		cols = append(cols, vals)
		header = append(header, name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < g.NumNodes(); i++ {
		row, col := g.Coordinate(i)
		rec := []string{
			strconv.Itoa(i),
			strconv.Itoa(row),
			strconv.Itoa(col),
		}
		for _, vals := range cols {
			rec = append(rec, strconv.FormatFloat(vals[i], 'f', 6, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// LoadMetadata reads a stored run's metadata.json.
func (s *Store) LoadMetadata(runID string) (*RunMetadata, error) {
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

// LoadFields rebuilds a grid with the stored field snapshot attached.
func (s *Store) LoadFields(runID string) (*grid.RasterGrid, error) {
	meta, err := s.LoadMetadata(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, "fields.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("store: empty fields.csv in %s", runID)
	}

	g, err := grid.NewRasterGrid(meta.Config.NX, meta.Config.NY, meta.Config.DX)
	if err != nil {
		return nil, err
	}
	header := records[0]
	if len(records)-1 != g.NumNodes() {
		return nil, fmt.Errorf("store: %s has %d rows, grid has %d nodes",
			runID, len(records)-1, g.NumNodes())
	}

	for col := 3; col < len(header); col++ {
		vals := make([]float64, g.NumNodes())
		for i, rec := range records[1:] {
			v, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				return nil, fmt.Errorf("store: bad value in %s row %d: %w", runID, i+1, err)
			}
			vals[i] = v
		}
		if err := g.AddField(header[col], vals); err != nil {
			return nil, err
		}
	}
	return g, nil
}
