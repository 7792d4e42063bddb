package headless

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Seed        int64                `json:"seed"`
	Frames      uint64               `json:"frames"`
	Nodes       int                  `json:"nodes"`
	Connections int                  `json:"connections"`
	Camera      [3]float64           `json:"camera"`
	Metrics     map[string]float64   `json:"metrics"`
	Series      map[string][]float64 `json:"series,omitempty"`
	Positions   [][3]float64         `json:"positions"`
	Links       [][2]int             `json:"links"`
}

func toExport(res *Result) ExportData {
	data := ExportData{
		Seed:        res.Seed,
		Frames:      res.Frames,
		Nodes:       res.Nodes,
		Connections: res.Connections,
		Camera:      [3]float64{res.Camera.X, res.Camera.Y, res.Camera.Z},
		Metrics:     res.Metrics,
		Series:      res.Series,
		Positions:   make([][3]float64, len(res.Final.Positions)),
		Links:       res.Links,
	}
	for i, p := range res.Final.Positions {
		data.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return data
}

// WriteJSON encodes res to w as indented JSON.
func WriteJSON(w io.Writer, res *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toExport(res))
}

func ExportJSON(path string, res *Result) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteJSON(file, res)
}
