package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/glacsim/internal/glacier"
	"github.com/san-kum/glacsim/internal/grid"
)

// ExportData is the JSON export of a run: the time series plus the final
// fields, row-major.
type ExportData struct {
	NX            int                  `json:"nx"`
	NY            int                  `json:"ny"`
	DX            float64              `json:"dx"`
	FinalTime     float64              `json:"final_time"`
	Steps         int                  `json:"steps"`
	ClippedVolume float64              `json:"clipped_volume"`
	Times         []float64            `json:"times"`
	Volumes       []float64            `json:"volumes"`
	Areas         []float64            `json:"areas"`
	Metrics       map[string]float64   `json:"metrics"`
	Fields        map[string][]float64 `json:"fields"`
}

func buildExport(g *grid.RasterGrid, res *glacier.Result) (*ExportData, error) {
	data := &ExportData{
		NX:            g.NX,
		NY:            g.NY,
		DX:            g.DX,
		FinalTime:     res.FinalTime,
		Steps:         res.Steps,
		ClippedVolume: res.ClippedVolume,
		Times:         res.Times,
		Volumes:       res.Volumes,
		Areas:         res.Areas,
		Metrics:       res.Metrics,
		Fields:        make(map[string][]float64, len(fieldColumns)),
	}
	for _, name := range fieldColumns {
		vals, err := g.Field(name)
		if err != nil {
			return nil, err
		}
		data.Fields[name] = vals
	}
	return data, nil
}

// ExportJSON writes the run to w as indented JSON.
func ExportJSON(w io.Writer, g *grid.RasterGrid, res *glacier.Result) error {
	data, err := buildExport(g, res)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the run to a file path.
func ExportJSONFile(path string, g *grid.RasterGrid, res *glacier.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, g, res)
}
