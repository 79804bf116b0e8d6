package metrics

import (
	"github.com/san-kum/gasbox/internal/dynamo"
)

// Containment is the fraction of observed frames in which every particle
// sits within [r, side-r] on every axis.
type Containment struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewContainment(radius, side float64) *Containment {
	return &Containment{
		name: "containment",
		lo:   radius,
		hi:   side - radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f *dynamo.Frame) {
	c.samples++
	for _, p := range f.Positions {
		if p.X < c.lo || p.X > c.hi || p.Y < c.lo || p.Y > c.hi || p.Z < c.lo || p.Z > c.hi {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
