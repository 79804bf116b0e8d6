package physics

import (
	"github.com/san-kum/gasbox/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

const minRowsPerChunk = 64

// Pair is an unordered particle pair with I < J.
type Pair struct {
	I, J int
}

// CandidatePairs returns the pairs currently closer than twice the radius,
// ordered by (I, J). It does not modify the ensemble.
func (g *Gas) CandidatePairs() []Pair {
	found := g.findPairs()
	out := make([]Pair, len(found))
	copy(out, found)
	return out
}

func (g *Gas) findPairs() []Pair {
	if g.params.Search == SearchCells && g.cellsUsable() {
		return g.cellPairs()
	}
	return g.allPairs()
}

// allPairs checks every i < j. Rows are split across workers; each chunk
// fills its own buffer and the buffers are joined in row order, so the
// result does not depend on the worker count.
func (g *Gas) allPairs() []Pair {
	n := len(g.pos)
	limit := 4 * g.params.Radius * g.params.Radius

	dynamo.ParallelFor(n, minRowsPerChunk, g.workers, func(chunk, start, end int) {
		buf := g.chunkPairs[chunk][:0]
		for i := start; i < end; i++ {
			pi := g.pos[i]
			for j := i + 1; j < n; j++ {
				if r3.Norm2(r3.Sub(pi, g.pos[j])) < limit {
					buf = append(buf, Pair{I: i, J: j})
				}
			}
		}
		g.chunkPairs[chunk] = buf
	})

	pairs := g.pairs[:0]
	for k, buf := range g.chunkPairs {
		pairs = append(pairs, buf...)
		g.chunkPairs[k] = buf[:0]
	}
	g.pairs = pairs
	return pairs
}

// collide resolves an equal-mass elastic collision between i and j by
// reflecting their relative velocity about the line of centers, then
// re-advances both particles with the new velocities.
func (g *Gas) collide(i, j int, dt float64, st *dynamo.StepStats) {
	normal := r3.Sub(g.pos[i], g.pos[j])
	n2 := r3.Norm2(normal)
	if n2 == 0 {
		st.Degenerate++
		return
	}

	rel := r3.Sub(g.vel[i], g.vel[j])
	approach := r3.Dot(normal, rel)
	if approach > 0 {
		st.Separating++
		return
	}

	g.vel[i], g.vel[j] = ResolveElastic(g.vel[i], g.vel[j], normal)

	g.pos[i] = r3.Add(g.pos[i], r3.Scale(dt, g.vel[i]))
	g.pos[j] = r3.Add(g.pos[j], r3.Scale(dt, g.vel[j]))
	st.Collisions++
}

// ResolveElastic returns the post-collision velocities of two equal masses
// whose centers are separated by normal (pos_i - pos_j). normal must be
// non-zero.
func ResolveElastic(vi, vj, normal r3.Vec) (r3.Vec, r3.Vec) {
	cm := r3.Scale(0.5, r3.Add(vi, vj))
	rel := r3.Sub(vi, vj)
	change := r3.Sub(r3.Scale(2*r3.Dot(normal, rel)/r3.Norm2(normal), normal), rel)
	half := r3.Scale(0.5, change)
	return r3.Sub(cm, half), r3.Add(cm, half)
}
