package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	metadataFile  = "metadata.json"
	speedsFile    = "speeds.csv"
	positionsFile = "positions.csv"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Params    physics.Params     `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
	Totals    dynamo.StepStats   `json:"totals"`
	Samples   int                `json:"samples"`
}

// Save writes one run directory: metadata, every sampled speed row and the
// final positions.
func (s *Store) Save(name string, params physics.Params, cfg dynamo.Config, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Params:    params,
		Metrics:   finiteMetrics(result.Metrics),
		Totals:    result.Totals,
		Samples:   len(result.Speeds),
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSpeeds(filepath.Join(runDir, speedsFile), result); err != nil {
		return "", err
	}
	if err := writePositions(filepath.Join(runDir, positionsFile), result.FinalPositions); err != nil {
		return "", err
	}

	return runID, nil
}

// finiteMetrics drops NaN and Inf values, which encoding/json rejects.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSpeeds(path string, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(result.Speeds) > 0 {
		header := []string{"time"}
		for i := range result.Speeds[0] {
			header = append(header, fmt.Sprintf("s%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for i, row := range result.Speeds {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writePositions(path string, pos []r3.Vec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, p := range pos {
		rec := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.Z, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSpeeds returns the sampled speed rows and their times.
func (s *Store) LoadSpeeds(runID string) ([][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, speedsFile))
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	speeds := make([][]float64, 0, len(records)-1)
	for line, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: %s line %d: %w", runID, speedsFile, line+2, err)
		}
		if len(row) == 0 {
			continue
		}
		times = append(times, row[0])
		speeds = append(speeds, row[1:])
	}
	return speeds, times, nil
}

func (s *Store) LoadPositions(runID string) ([]r3.Vec, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, positionsFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []r3.Vec{}, nil
	}

	pos := make([]r3.Vec, 0, len(records)-1)
	for line, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil || len(row) != 3 {
			return nil, fmt.Errorf("run %s: %s line %d: malformed position", runID, positionsFile, line+2)
		}
		pos = append(pos, r3.Vec{X: row[0], Y: row[1], Z: row[2]})
	}
	return pos, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func parseRow(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for i, field := range rec {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}
