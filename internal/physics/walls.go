package physics

import (
	"math"

	"github.com/san-kum/gasbox/internal/dynamo"
)

// reflect bounces particle i off any wall it has crossed. Each axis is
// checked on its own, so a particle in a corner can bounce off several
// walls in one step.
func (g *Gas) reflect(i int, st *dynamo.StepStats) {
	r := g.params.Radius
	lo, hi := r*wallMargin, g.side-r*wallMargin
	p, v := &g.pos[i], &g.vel[i]

	for _, ax := range [3]struct{ x, v *float64 }{{&p.X, &v.X}, {&p.Y, &v.Y}, {&p.Z, &v.Z}} {
		if *ax.x-r < 0 {
			g.bounce(ax.v, st)
			*ax.x = lo
		}
		if *ax.x+r > g.side {
			g.bounce(ax.v, st)
			*ax.x = hi
		}
	}
}

func (g *Gas) bounce(v *float64, st *dynamo.StepStats) {
	st.WallHits++
	st.WallImpulse += 2 * math.Abs(*v) * g.params.Mass
	*v = -*v
}
