package physics

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/gasbox/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Boltzmann is the Boltzmann constant in J/K.
	Boltzmann = 1.380649e-23

	// wallMargin places a reflected particle slightly inside the wall so it
	// does not trigger again on the next step.
	wallMargin = 1.01
	// spawnMargin keeps the initial lattice this many radii from each wall.
	spawnMargin = 5.0
	// jitterFraction scales the per-axis spawn jitter, in radii.
	jitterFraction = 0.5
)

type SearchMode string

const (
	SearchPairs SearchMode = "pairs"
	SearchCells SearchMode = "cells"
)

// Params are the construction parameters of a gas. All are immutable once
// the gas exists.
type Params struct {
	ParticleCount int
	Mass          float64 // kg
	Radius        float64 // effective interaction radius, m
	Volume        float64 // m³
	Temperature   float64 // K
	Search        SearchMode
	// Workers bounds the goroutines used for the distance checks; 0 means one per CPU.
	Workers int
}

func DefaultParams() Params {
	return Params{
		ParticleCount: 125,
		Mass:          5e-20,
		Radius:        2e-10,
		Volume:        1e-23,
		Temperature:   300,
		Search:        SearchPairs,
		Workers:       1,
	}
}

func (p Params) Validate() error {
	if p.ParticleCount <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", dynamo.ErrInvalidConfig, p.ParticleCount)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mass", p.Mass},
		{"radius", p.Radius},
		{"volume", p.Volume},
		{"temperature", p.Temperature},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", dynamo.ErrInvalidConfig, f.name, f.v)
		}
	}
	if side := math.Cbrt(p.Volume); side <= 2*spawnMargin*p.Radius {
		return fmt.Errorf("%w: chamber side %g too small for radius %g", dynamo.ErrInvalidConfig, side, p.Radius)
	}
	switch p.Search {
	case "", SearchPairs, SearchCells:
	default:
		return fmt.Errorf("%w: unknown search mode %q", dynamo.ErrInvalidConfig, p.Search)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", dynamo.ErrInvalidConfig, p.Workers)
	}
	return nil
}

// ThermalSpeed is the root-mean-square speed sqrt(3 k T / m).
func (p Params) ThermalSpeed() float64 {
	return math.Sqrt(3 * Boltzmann * p.Temperature / p.Mass)
}

// SideLength is the edge of the cubic chamber.
func (p Params) SideLength() float64 { return math.Cbrt(p.Volume) }

// ExcludedVolume is the van der Waals b term, N·(4/3)πr³.
func (p Params) ExcludedVolume() float64 {
	return float64(p.ParticleCount) * (4.0 / 3.0) * math.Pi * p.Radius * p.Radius * p.Radius
}

// RandSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Gas is a single simulation session. Row i of the position and velocity
// buffers always refers to the same particle.
type Gas struct {
	params  Params
	side    float64
	thermal float64
	b       float64

	pos []r3.Vec
	vel []r3.Vec

	cells   []Cell
	perAxis int

	workers    int
	chunkPairs [][]Pair
	pairs      []Pair
	buckets    [][]int

	stats dynamo.StepStats
	steps int
}

// New validates p, builds the cell partition table, places the particles and
// draws their velocities from rng. A nil rng uses a time-seeded source.
func New(p Params, rng RandSource) (*Gas, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := newGas(p)
	g.place(rng)
	g.assignVelocities(rng)
	return g, nil
}

// NewFromState builds a gas around caller-supplied positions and velocities.
// The particle count is taken from the buffers, which are copied.
func NewFromState(p Params, pos, vel []r3.Vec) (*Gas, error) {
	if len(pos) != len(vel) {
		return nil, fmt.Errorf("%w: %d positions, %d velocities", dynamo.ErrDimensionMismatch, len(pos), len(vel))
	}
	p.ParticleCount = len(pos)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := newGas(p)
	copy(g.pos, pos)
	copy(g.vel, vel)
	return g, nil
}

func newGas(p Params) *Gas {
	if p.Search == "" {
		p.Search = SearchPairs
	}
	n := p.ParticleCount
	g := &Gas{
		params:  p,
		side:    p.SideLength(),
		thermal: p.ThermalSpeed(),
		b:       p.ExcludedVolume(),
		pos:     make([]r3.Vec, n),
		vel:     make([]r3.Vec, n),
		perAxis: cubeRoot(n),
		workers: dynamo.Workers(p.Workers),
	}
	g.cells = buildCells(g.perAxis, g.side)
	g.chunkPairs = make([][]Pair, dynamo.Chunks(n, minRowsPerChunk, g.workers))
	return g
}

// Step advances the ensemble by dt: free flight, pair collisions, then wall
// reflection. A non-positive dt is rejected before anything is touched.
func (g *Gas) Step(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidTimestep, dt)
	}

	var st dynamo.StepStats

	for i := range g.pos {
		g.pos[i] = r3.Add(g.pos[i], r3.Scale(dt, g.vel[i]))
	}

	for _, pr := range g.findPairs() {
		g.collide(pr.I, pr.J, dt, &st)
	}

	for i := range g.pos {
		g.reflect(i, &st)
	}

	g.stats = st
	g.steps++
	return nil
}

func (g *Gas) Params() Params          { return g.params }
func (g *Gas) N() int                  { return len(g.pos) }
func (g *Gas) Mass() float64           { return g.params.Mass }
func (g *Gas) Radius() float64         { return g.params.Radius }
func (g *Gas) SideLength() float64     { return g.side }
func (g *Gas) ThermalSpeed() float64   { return g.thermal }
func (g *Gas) ExcludedVolume() float64 { return g.b }
func (g *Gas) Steps() int              { return g.steps }

// LastStats reports the accounting of the most recent Step.
func (g *Gas) LastStats() dynamo.StepStats { return g.stats }

// Positions returns a copy of the position buffer.
func (g *Gas) Positions() []r3.Vec {
	out := make([]r3.Vec, len(g.pos))
	copy(out, g.pos)
	return out
}

// Velocities returns a copy of the velocity buffer.
func (g *Gas) Velocities() []r3.Vec {
	out := make([]r3.Vec, len(g.vel))
	copy(out, g.vel)
	return out
}

// Speeds returns |v| for every particle.
func (g *Gas) Speeds() []float64 {
	return dynamo.SpeedsOf(g.vel, nil)
}

// View exposes the live buffers without copying. Callers must not modify
// them, and the slices are only meaningful until the next Step.
func (g *Gas) View() (pos, vel []r3.Vec) {
	return g.pos, g.vel
}

// KineticEnergy is Σ ½ m |v|².
func (g *Gas) KineticEnergy() float64 {
	sum := 0.0
	for _, v := range g.vel {
		sum += r3.Norm2(v)
	}
	return 0.5 * g.params.Mass * sum
}

// Momentum is Σ m v.
func (g *Gas) Momentum() r3.Vec {
	var p r3.Vec
	for _, v := range g.vel {
		p = r3.Add(p, v)
	}
	return r3.Scale(g.params.Mass, p)
}
