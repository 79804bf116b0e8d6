package metrics

import (
	"github.com/san-kum/gasbox/internal/analysis"
	"github.com/san-kum/gasbox/internal/dynamo"
)

// MaxwellDistance reports the Kolmogorov–Smirnov distance between the most
// recent frame's speeds and Maxwell–Boltzmann at the configured temperature.
type MaxwellDistance struct {
	name        string
	mass        float64
	temperature float64
	speeds      []float64
	last        float64
	samples     int
}

func NewMaxwellDistance(mass, temperature float64) *MaxwellDistance {
	return &MaxwellDistance{
		name:        "maxwell_ks",
		mass:        mass,
		temperature: temperature,
		last:        1,
	}
}

func (m *MaxwellDistance) Name() string { return m.name }

func (m *MaxwellDistance) Observe(f *dynamo.Frame) {
	m.speeds = dynamo.SpeedsOf(f.Velocities, m.speeds)
	m.last = analysis.KSDistance(m.speeds, m.mass, m.temperature)
	m.samples++
}

func (m *MaxwellDistance) Value() float64 { return m.last }

func (m *MaxwellDistance) Reset() {
	m.last = 1
	m.samples = 0
}
