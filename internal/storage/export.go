package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
)

type ExportData struct {
	Name      string             `json:"name"`
	Params    physics.Params     `json:"params"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Speeds    [][]float64        `json:"speeds"`
	Positions [][3]float64       `json:"positions"`
	Metrics   map[string]float64 `json:"metrics"`
	Totals    dynamo.StepStats   `json:"totals"`
}

func newExportData(name string, params physics.Params, cfg dynamo.Config, result *dynamo.Result) ExportData {
	data := ExportData{
		Name:      name,
		Params:    params,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Times:     result.Times,
		Speeds:    result.Speeds,
		Positions: make([][3]float64, len(result.FinalPositions)),
		Metrics:   finiteMetrics(result.Metrics),
		Totals:    result.Totals,
	}
	for i, p := range result.FinalPositions {
		data.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return data
}

func WriteJSON(w io.Writer, name string, params physics.Params, cfg dynamo.Config, result *dynamo.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(name, params, cfg, result))
}

func ExportJSON(path string, name string, params physics.Params, cfg dynamo.Config, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteJSON(f, name, params, cfg, result)
}
