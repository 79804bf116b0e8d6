package metrics

import (
	"github.com/san-kum/gasbox/internal/dynamo"
)

// CollisionRate is the number of collisions per particle per second.
type CollisionRate struct {
	name       string
	collisions int
	particles  int
	elapsed    float64
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{
		name: "collision_rate",
	}
}

func (c *CollisionRate) Name() string {
	return c.name
}

func (c *CollisionRate) Observe(f *dynamo.Frame) {
	// each collision involves two particles
	c.collisions += 2 * f.Stats.Collisions
	c.particles = len(f.Positions)
	c.elapsed += f.Dt
}

func (c *CollisionRate) Value() float64 {
	if c.elapsed == 0 || c.particles == 0 {
		return 0
	}
	return float64(c.collisions) / (float64(c.particles) * c.elapsed)
}

func (c *CollisionRate) Reset() {
	c.collisions = 0
	c.particles = 0
	c.elapsed = 0
}
