package metrics

import (
	"math"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

func kineticEnergy(vel []r3.Vec, mass float64) float64 {
	sum := 0.0
	for _, v := range vel {
		sum += r3.Norm2(v)
	}
	return 0.5 * mass * sum
}

// Temperature averages the kinetic temperature 2E/(3Nk) over the run.
type Temperature struct {
	name    string
	mass    float64
	sum     float64
	samples int
}

func NewTemperature(mass float64) *Temperature {
	return &Temperature{
		name: "temperature",
		mass: mass,
	}
}

func (m *Temperature) Name() string { return m.name }

func (m *Temperature) Observe(f *dynamo.Frame) {
	n := len(f.Velocities)
	if n == 0 {
		return
	}
	m.sum += 2 * kineticEnergy(f.Velocities, m.mass) / (3 * float64(n) * physics.Boltzmann)
	m.samples++
}

func (m *Temperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Temperature) Reset() {
	m.sum = 0
	m.samples = 0
}

// EnergyDrift is the largest relative departure of the total kinetic energy
// from its first observed value. Elastic walls and collisions keep it at
// rounding level.
type EnergyDrift struct {
	name          string
	mass          float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(mass float64) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		mass: mass,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f *dynamo.Frame) {
	energy := kineticEnergy(f.Velocities, e.mass)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
