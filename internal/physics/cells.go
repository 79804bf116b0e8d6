package physics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cell is one row of the chamber's partition table.
type Cell struct {
	Bounds r3.Box
	// Occupant is the last particle spawned into this lattice slot, or -1.
	Occupant int
}

// buildCells divides a chamber of the given side into m×m×m sub-cubes,
// indexed the same way as the spawn lattice.
func buildCells(m int, side float64) []Cell {
	cells := make([]Cell, m*m*m)
	length := side / float64(m)
	for k := range cells {
		ix, iy, iz := latticeIndex(k, m)
		lo := r3.Vec{X: float64(ix) * length, Y: float64(iy) * length, Z: float64(iz) * length}
		cells[k] = Cell{
			Bounds:   r3.Box{Min: lo, Max: r3.Add(lo, r3.Vec{X: length, Y: length, Z: length})},
			Occupant: -1,
		}
	}
	return cells
}

// Cells returns a copy of the partition table.
func (g *Gas) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// CellsPerAxis is floor(N^(1/3)).
func (g *Gas) CellsPerAxis() int { return g.perAxis }

// cellWidth is the edge of one partition cell.
func (g *Gas) cellWidth() float64 { return g.side / float64(g.perAxis) }

// cellsUsable reports whether neighbour-only search is exact: every pair
// closer than 2r must sit in the same or adjacent cells.
func (g *Gas) cellsUsable() bool {
	return g.perAxis >= 3 && g.cellWidth() >= 2*g.params.Radius
}

func (g *Gas) cellCoord(x float64) int {
	c := int(math.Floor(x / g.cellWidth()))
	if c < 0 {
		return 0
	}
	if c >= g.perAxis {
		return g.perAxis - 1
	}
	return c
}

// binParticles sorts particle indices into their cells. Indices within a
// bucket stay ascending.
func (g *Gas) binParticles() {
	if len(g.buckets) != len(g.cells) {
		g.buckets = make([][]int, len(g.cells))
	}
	for k := range g.buckets {
		g.buckets[k] = g.buckets[k][:0]
	}
	m := g.perAxis
	for i, p := range g.pos {
		k := g.cellCoord(p.X) + g.cellCoord(p.Y)*m + g.cellCoord(p.Z)*m*m
		g.buckets[k] = append(g.buckets[k], i)
	}
}

// cellPairs finds overlapping pairs by checking each particle against the
// 27-cell neighbourhood around it.
func (g *Gas) cellPairs() []Pair {
	g.binParticles()
	limit := 4 * g.params.Radius * g.params.Radius
	m := g.perAxis
	pairs := g.pairs[:0]

	for i, p := range g.pos {
		cx, cy, cz := g.cellCoord(p.X), g.cellCoord(p.Y), g.cellCoord(p.Z)
		for z := max(cz-1, 0); z <= min(cz+1, m-1); z++ {
			for y := max(cy-1, 0); y <= min(cy+1, m-1); y++ {
				for x := max(cx-1, 0); x <= min(cx+1, m-1); x++ {
					for _, j := range g.buckets[x+y*m+z*m*m] {
						if j <= i {
							continue
						}
						if r3.Norm2(r3.Sub(p, g.pos[j])) < limit {
							pairs = append(pairs, Pair{I: i, J: j})
						}
					}
				}
			}
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})
	g.pairs = pairs
	return pairs
}
