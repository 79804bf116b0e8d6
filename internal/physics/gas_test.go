package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
)

func scenarioParams() physics.Params {
	return physics.Params{
		ParticleCount: 27,
		Mass:          5e-20,
		Radius:        2e-10,
		Volume:        1e-23,
		Temperature:   300,
	}
}

func expectContained(g *physics.Gas) {
	r, side := g.Radius(), g.SideLength()
	for i, p := range g.Positions() {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			Expect(c).To(BeNumerically(">=", r), "particle %d", i)
			Expect(c).To(BeNumerically("<=", side-r), "particle %d", i)
		}
	}
}

var _ = Describe("Params", func() {
	DescribeTable("rejects invalid construction parameters",
		func(mutate func(*physics.Params)) {
			p := physics.DefaultParams()
			mutate(&p)
			g, err := physics.New(p, rand.New(rand.NewSource(1)))
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			Expect(g).To(BeNil())
		},
		Entry("zero particles", func(p *physics.Params) { p.ParticleCount = 0 }),
		Entry("negative particles", func(p *physics.Params) { p.ParticleCount = -3 }),
		Entry("zero mass", func(p *physics.Params) { p.Mass = 0 }),
		Entry("negative radius", func(p *physics.Params) { p.Radius = -1e-10 }),
		Entry("zero volume", func(p *physics.Params) { p.Volume = 0 }),
		Entry("negative temperature", func(p *physics.Params) { p.Temperature = -300 }),
		Entry("NaN mass", func(p *physics.Params) { p.Mass = math.NaN() }),
		Entry("chamber smaller than spawn margin", func(p *physics.Params) { p.Radius = 1e-8 }),
		Entry("unknown search mode", func(p *physics.Params) { p.Search = "octree" }),
		Entry("negative workers", func(p *physics.Params) { p.Workers = -1 }),
	)

	It("derives chamber geometry and thermal speed", func() {
		p := scenarioParams()
		Expect(p.SideLength()).To(BeNumerically("~", math.Cbrt(1e-23), 1e-20))
		Expect(p.ThermalSpeed()).To(BeNumerically("~", math.Sqrt(3*physics.Boltzmann*300/5e-20), 1e-12))
		Expect(p.ExcludedVolume()).To(BeNumerically("~", 27*4.0/3.0*math.Pi*8e-30, 1e-40))
	})
})

var _ = Describe("Initialization", func() {
	It("places a perfect cube of particles inside the spawn margin without coincidences", func() {
		g, err := physics.New(scenarioParams(), rand.New(rand.NewSource(42)))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.N()).To(Equal(27))
		Expect(g.CellsPerAxis()).To(Equal(3))

		r, side := g.Radius(), g.SideLength()
		pos := g.Positions()
		for i, p := range pos {
			for _, c := range []float64{p.X, p.Y, p.Z} {
				Expect(c).To(BeNumerically(">=", 5*r))
				Expect(c).To(BeNumerically("<", side-5*r+0.5*r))
			}
			for j := i + 1; j < len(pos); j++ {
				Expect(r3.Norm(r3.Sub(p, pos[j]))).To(BeNumerically(">", 2*r))
			}
		}
	})

	It("draws speeds on the thermal scale", func() {
		g, err := physics.New(scenarioParams(), rand.New(rand.NewSource(42)))
		Expect(err).NotTo(HaveOccurred())

		sum := 0.0
		for _, s := range g.Speeds() {
			sum += s * s
		}
		rms := math.Sqrt(sum / float64(g.N()))
		Expect(rms).To(BeNumerically("~", g.ThermalSpeed(), 0.25*g.ThermalSpeed()))

		for _, v := range g.Velocities() {
			for _, c := range []float64{v.X, v.Y, v.Z} {
				Expect(math.Abs(c)).To(BeNumerically("<=", g.ThermalSpeed()))
			}
		}
	})

	It("is deterministic for a fixed seed", func() {
		a, err := physics.New(scenarioParams(), rand.New(rand.NewSource(9)))
		Expect(err).NotTo(HaveOccurred())
		b, err := physics.New(scenarioParams(), rand.New(rand.NewSource(9)))
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Positions()).To(Equal(b.Positions()))
		Expect(a.Velocities()).To(Equal(b.Velocities()))
	})

	It("wraps extra particles onto used lattice slots", func() {
		p := scenarioParams()
		p.ParticleCount = 30
		g, err := physics.New(p, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.CellsPerAxis()).To(Equal(3))

		pos := g.Positions()
		jitter := 0.5 * g.Radius() * math.Sqrt(3)
		Expect(r3.Norm(r3.Sub(pos[27], pos[0]))).To(BeNumerically("<", jitter))
		Expect(r3.Norm(r3.Sub(pos[29], pos[2]))).To(BeNumerically("<", jitter))

		cells := g.Cells()
		Expect(cells[0].Occupant).To(Equal(27))
		Expect(cells[3].Occupant).To(Equal(3))
	})

	It("builds a partition table tiling the chamber", func() {
		p := scenarioParams()
		p.ParticleCount = 64
		g, err := physics.New(p, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())

		cells := g.Cells()
		Expect(cells).To(HaveLen(64))
		width := g.SideLength() / 4
		volume := 0.0
		for _, c := range cells {
			size := r3.Sub(c.Bounds.Max, c.Bounds.Min)
			Expect(size.X).To(BeNumerically("~", width, 1e-20))
			volume += size.X * size.Y * size.Z
		}
		Expect(volume).To(BeNumerically("~", p.Volume, 1e-30))

		// slot 1 steps along x, slot 4 along y, slot 16 along z
		Expect(cells[1].Bounds.Min.X).To(BeNumerically("~", width, 1e-20))
		Expect(cells[4].Bounds.Min.Y).To(BeNumerically("~", width, 1e-20))
		Expect(cells[16].Bounds.Min.Z).To(BeNumerically("~", width, 1e-20))
	})

	It("rejects mismatched state buffers", func() {
		_, err := physics.NewFromState(scenarioParams(), make([]r3.Vec, 3), make([]r3.Vec, 2))
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})
})

var _ = Describe("Step", func() {
	It("keeps every particle inside the chamber", func() {
		g, err := physics.New(scenarioParams(), rand.New(rand.NewSource(42)))
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Step(2e-9)).To(Succeed())
		expectContained(g)

		for i := 0; i < 500; i++ {
			Expect(g.Step(2e-8)).To(Succeed())
		}
		expectContained(g)
	})

	It("reflects a particle off a wall and records the impulse", func() {
		p := scenarioParams()
		r := p.Radius
		side := p.SideLength()
		pos := []r3.Vec{{X: r * 1.1, Y: side / 2, Z: side / 2}}
		vel := []r3.Vec{{X: -1, Y: 0.5, Z: 0}}
		g, err := physics.NewFromState(p, pos, vel)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Step(1e-9)).To(Succeed())
		v := g.Velocities()[0]
		Expect(v.X).To(Equal(1.0))
		Expect(v.Y).To(Equal(0.5))
		Expect(g.Positions()[0].X).To(BeNumerically("~", r*1.01, 1e-24))

		st := g.LastStats()
		Expect(st.WallHits).To(Equal(1))
		Expect(st.WallImpulse).To(BeNumerically("~", 2*p.Mass, 1e-30))
	})

	It("bounces off three walls at once in a corner", func() {
		p := scenarioParams()
		side := p.SideLength()
		pos := []r3.Vec{{X: side, Y: 0, Z: side}}
		vel := []r3.Vec{{X: 1, Y: -1, Z: 1}}
		g, err := physics.NewFromState(p, pos, vel)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Step(1e-12)).To(Succeed())
		Expect(g.Velocities()[0]).To(Equal(r3.Vec{X: -1, Y: 1, Z: -1}))
		Expect(g.LastStats().WallHits).To(Equal(3))
		expectContained(g)
	})

	DescribeTable("rejects invalid timesteps without mutating state",
		func(dt float64) {
			g, err := physics.New(scenarioParams(), rand.New(rand.NewSource(5)))
			Expect(err).NotTo(HaveOccurred())
			pos, vel := g.Positions(), g.Velocities()

			Expect(g.Step(dt)).To(MatchError(dynamo.ErrInvalidTimestep))
			Expect(g.Positions()).To(Equal(pos))
			Expect(g.Velocities()).To(Equal(vel))
			Expect(g.Steps()).To(Equal(0))
		},
		Entry("zero", 0.0),
		Entry("negative", -1e-9),
		Entry("NaN", math.NaN()),
		Entry("infinite", math.Inf(1)),
	)

	It("reverses a head-on pair", func() {
		p := scenarioParams()
		r := p.Radius
		c := p.SideLength() / 2
		u := 0.5
		pos := []r3.Vec{{X: c - 0.75*r, Y: c, Z: c}, {X: c + 0.75*r, Y: c, Z: c}}
		vel := []r3.Vec{{X: u}, {X: -u}}
		g, err := physics.NewFromState(p, pos, vel)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Step(1e-11)).To(Succeed())
		Expect(g.LastStats().Collisions).To(Equal(1))

		v := g.Velocities()
		Expect(v[0].X).To(BeNumerically("~", -u, 1e-12))
		Expect(v[1].X).To(BeNumerically("~", u, 1e-12))
		Expect(v[0].Y).To(BeNumerically("~", 0, 1e-12))

		before := r3.Norm(r3.Sub(g.Positions()[1], g.Positions()[0]))
		Expect(g.Step(1e-11)).To(Succeed())
		after := r3.Norm(r3.Sub(g.Positions()[1], g.Positions()[0]))
		Expect(after).To(BeNumerically(">", before))
		Expect(g.LastStats().Collisions).To(Equal(0))
	})

	It("skips coincident centers instead of dividing by zero", func() {
		p := scenarioParams()
		c := p.SideLength() / 2
		pos := []r3.Vec{{X: c, Y: c, Z: c}, {X: c, Y: c, Z: c}}
		vel := []r3.Vec{{X: 0.3}, {X: 0.3}}
		g, err := physics.NewFromState(p, pos, vel)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Step(1e-11)).To(Succeed())
		Expect(g.LastStats().Degenerate).To(Equal(1))
		for _, v := range g.Velocities() {
			Expect(v).To(Equal(r3.Vec{X: 0.3}))
		}
		Expect(g.Step(1e-11)).To(Succeed())
	})

	It("leaves an overlapping pair alone when it already separates", func() {
		p := scenarioParams()
		r := p.Radius
		c := p.SideLength() / 2
		pos := []r3.Vec{{X: c - 0.5*r, Y: c, Z: c}, {X: c + 0.5*r, Y: c, Z: c}}
		vel := []r3.Vec{{X: -0.2}, {X: 0.2}}
		g, err := physics.NewFromState(p, pos, vel)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Step(1e-12)).To(Succeed())
		Expect(g.LastStats().Separating).To(Equal(1))
		Expect(g.Velocities()).To(Equal(vel))
	})

	It("conserves kinetic energy and keeps momentum up to wall impulses", func() {
		p := scenarioParams()
		p.ParticleCount = 125
		p.Radius = 5e-10
		g, err := physics.New(p, rand.New(rand.NewSource(11)))
		Expect(err).NotTo(HaveOccurred())

		e0 := g.KineticEnergy()
		collisions := 0
		for i := 0; i < 400; i++ {
			Expect(g.Step(5e-10)).To(Succeed())
			collisions += g.LastStats().Collisions
		}
		Expect(collisions).To(BeNumerically(">", 0))
		Expect(g.KineticEnergy()).To(BeNumerically("~", e0, 1e-9*e0))
	})
})

var _ = Describe("ResolveElastic", func() {
	It("conserves momentum and energy for arbitrary pairs", func() {
		rng := rand.New(rand.NewSource(17))
		vec := func() r3.Vec {
			return r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		}
		for trial := 0; trial < 200; trial++ {
			vi, vj, n := vec(), vec(), vec()
			wi, wj := physics.ResolveElastic(vi, vj, n)

			p0, p1 := r3.Add(vi, vj), r3.Add(wi, wj)
			Expect(r3.Norm(r3.Sub(p0, p1))).To(BeNumerically("<", 1e-12))

			e0 := r3.Norm2(vi) + r3.Norm2(vj)
			e1 := r3.Norm2(wi) + r3.Norm2(wj)
			Expect(e1).To(BeNumerically("~", e0, 1e-12*e0))

			// normal component of the relative velocity flips sign
			before := r3.Dot(n, r3.Sub(vi, vj))
			after := r3.Dot(n, r3.Sub(wi, wj))
			Expect(after).To(BeNumerically("~", -before, 1e-9))
		}
	})
})
