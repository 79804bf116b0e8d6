package physics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// cubeRoot returns floor(n^(1/3)) computed exactly on integers.
func cubeRoot(n int) int {
	m := int(math.Cbrt(float64(n)))
	for (m+1)*(m+1)*(m+1) <= n {
		m++
	}
	for m > 0 && m*m*m > n {
		m--
	}
	return m
}

// lattice returns m evenly spaced coordinates spanning [lo, hi].
func lattice(m int, lo, hi float64) []float64 {
	if m == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, m), lo, hi)
}

// latticeIndex maps a slot k in [0, m³) to its x, y, z lattice indices.
func latticeIndex(k, m int) (ix, iy, iz int) {
	m2 := m * m
	return k % m, (k % m2) / m, k / m2
}

// place puts particle i on lattice slot i mod m³ plus a small jitter. With a
// particle count that is not a perfect cube the extra particles share slots
// with earlier ones and may spawn overlapping.
func (g *Gas) place(rng RandSource) {
	m := g.perAxis
	r := g.params.Radius
	dists := lattice(m, spawnMargin*r, g.side-spawnMargin*r)
	jitter := jitterFraction * r

	slots := m * m * m
	for i := range g.pos {
		k := i % slots
		ix, iy, iz := latticeIndex(k, m)
		g.pos[i].X = dists[ix] + rng.Float64()*jitter
		g.pos[i].Y = dists[iy] + rng.Float64()*jitter
		g.pos[i].Z = dists[iz] + rng.Float64()*jitter
		g.cells[k].Occupant = i
	}
}

// assignVelocities draws every component uniformly from [-1, 1) and scales it
// by the thermal speed. The result only approximates Maxwell–Boltzmann; the
// collisions do the rest.
func (g *Gas) assignVelocities(rng RandSource) {
	for i := range g.vel {
		g.vel[i].X = (2*rng.Float64() - 1) * g.thermal
		g.vel[i].Y = (2*rng.Float64() - 1) * g.thermal
		g.vel[i].Z = (2*rng.Float64() - 1) * g.thermal
	}
}
