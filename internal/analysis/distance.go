package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// KSDistance is the Kolmogorov–Smirnov statistic between the empirical
// distribution of speeds and Maxwell–Boltzmann for the given mass and
// temperature. It returns 1 for an empty sample.
func KSDistance(speeds []float64, mass, temperature float64) float64 {
	n := len(speeds)
	if n == 0 {
		return 1
	}
	sorted := make([]float64, n)
	copy(sorted, speeds)
	sort.Float64s(sorted)

	d := 0.0
	for i, v := range sorted {
		f := MaxwellCDF(v, mass, temperature)
		d = math.Max(d, math.Max(f-float64(i)/float64(n), float64(i+1)/float64(n)-f))
	}
	return d
}

// ExcessKurtosis of the sample; 0 for a Gaussian, -1.2 for a uniform.
func ExcessKurtosis(x []float64) float64 {
	if len(x) < 4 {
		return math.NaN()
	}
	return stat.ExKurtosis(x, nil)
}

// RMS is the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sq := make([]float64, len(x))
	for i, v := range x {
		sq[i] = v * v
	}
	return math.Sqrt(stat.Mean(sq, nil))
}
