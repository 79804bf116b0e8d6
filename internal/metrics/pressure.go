package metrics

import (
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
)

// Pressure is the time-averaged momentum flux into the six chamber walls.
type Pressure struct {
	name    string
	area    float64
	impulse float64
	elapsed float64
}

func NewPressure(p physics.Params) *Pressure {
	side := p.SideLength()
	return &Pressure{
		name: "pressure",
		area: 6 * side * side,
	}
}

func (m *Pressure) Name() string { return m.name }

func (m *Pressure) Observe(f *dynamo.Frame) {
	m.impulse += f.Stats.WallImpulse
	m.elapsed += f.Dt
}

func (m *Pressure) Value() float64 {
	if m.elapsed == 0 {
		return 0
	}
	return m.impulse / (m.elapsed * m.area)
}

func (m *Pressure) Reset() {
	m.impulse = 0
	m.elapsed = 0
}

// GasLaw compares P·(V - b) with N·k·T. It approaches 1 for a dilute gas at
// equilibrium.
type GasLaw struct {
	name     string
	pressure *Pressure
	volume   float64
	b        float64
	nkt      float64
}

func NewGasLaw(p physics.Params) *GasLaw {
	return &GasLaw{
		name:     "gas_law_ratio",
		pressure: NewPressure(p),
		volume:   p.Volume,
		b:        p.ExcludedVolume(),
		nkt:      float64(p.ParticleCount) * physics.Boltzmann * p.Temperature,
	}
}

func (m *GasLaw) Name() string { return m.name }

func (m *GasLaw) Observe(f *dynamo.Frame) { m.pressure.Observe(f) }

func (m *GasLaw) Value() float64 {
	return m.pressure.Value() * (m.volume - m.b) / m.nkt
}

func (m *GasLaw) Reset() { m.pressure.Reset() }
