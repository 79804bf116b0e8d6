package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins matches the live display.
const DefaultBins = 100

type Histogram struct {
	Edges  []float64
	Counts []float64
	// Density integrates to one over the bins, so it overlays MaxwellPDF.
	Density []float64
}

// Centers returns the midpoint of each bin.
func (h *Histogram) Centers() []float64 {
	c := make([]float64, len(h.Counts))
	for i := range c {
		c[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return c
}

// NewHistogram bins data into [lo, hi). Values outside the range are
// dropped. If hi <= lo the range is taken from the data.
func NewHistogram(data []float64, bins int, lo, hi float64) *Histogram {
	if bins < 1 {
		bins = DefaultBins
	}
	if hi <= lo && len(data) > 0 {
		lo, hi = floats.Min(data), floats.Max(data)
		if hi <= lo {
			hi = lo + 1
		}
		// keep the maximum inside the last bin
		hi += (hi - lo) * 1e-9
	}
	if hi <= lo {
		hi = lo + 1
	}

	inRange := make([]float64, 0, len(data))
	for _, v := range data {
		if v >= lo && v < hi {
			inRange = append(inRange, v)
		}
	}
	sort.Float64s(inRange)

	h := &Histogram{
		Edges:   floats.Span(make([]float64, bins+1), lo, hi),
		Density: make([]float64, bins),
	}
	h.Counts = stat.Histogram(nil, h.Edges, inRange, nil)

	total := float64(len(data))
	if total == 0 {
		return h
	}
	for i, c := range h.Counts {
		h.Density[i] = c / (total * (h.Edges[i+1] - h.Edges[i]))
	}
	return h
}
