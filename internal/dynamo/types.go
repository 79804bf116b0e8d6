package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// StepStats records what happened during a single integrator step.
type StepStats struct {
	// Collisions is the number of pairs whose velocities were exchanged.
	Collisions int
	// Separating counts overlapping pairs left alone because they already move apart.
	Separating int
	// Degenerate counts pairs skipped for coincident centers.
	Degenerate int
	WallHits   int
	// WallImpulse is the momentum delivered to the chamber walls, in kg·m/s.
	WallImpulse float64
}

// Add accumulates o into s.
func (s *StepStats) Add(o StepStats) {
	s.Collisions += o.Collisions
	s.Separating += o.Separating
	s.Degenerate += o.Degenerate
	s.WallHits += o.WallHits
	s.WallImpulse += o.WallImpulse
}

// Frame is what a driver sees after each step.
type Frame struct {
	Step       int
	Time       float64
	Dt         float64
	Positions  []r3.Vec
	Velocities []r3.Vec
	Stats      StepStats
}

// Speeds returns the velocity magnitude of every particle.
func (f *Frame) Speeds() []float64 {
	return SpeedsOf(f.Velocities, nil)
}

// SpeedsOf writes |v| for each velocity into dst, growing it when needed.
func SpeedsOf(vel []r3.Vec, dst []float64) []float64 {
	if cap(dst) < len(vel) {
		dst = make([]float64, len(vel))
	}
	dst = dst[:len(vel)]
	for i, v := range vel {
		dst[i] = r3.Norm(v)
	}
	return dst
}

// IsValid reports whether every component in the frame is finite.
func (f *Frame) IsValid() bool {
	return finite(f.Positions) && finite(f.Velocities)
}

func finite(vs []r3.Vec) bool {
	for _, v := range vs {
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f *Frame)
}

// Config controls a simulation run.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// SampleEvery keeps one speed sample per SampleEvery steps; 0 keeps none.
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            2e-9,
		Duration:      600 * 2e-9,
		SampleEvery:   10,
		ValidateState: true,
	}
}

// Steps is the number of whole steps that fit in the duration.
func (c Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(math.Round(c.Duration / c.Dt))
}

// Result holds the output of a completed run.
type Result struct {
	Times          []float64
	Speeds         [][]float64
	FinalPositions []r3.Vec
	FinalSpeeds    []float64
	Metrics        map[string]float64
	Totals         StepStats
	StepsTaken     int
	Errors         []error
}
