package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"
)

const (
	testMass = 5e-20
	testTemp = 300.0
)

func TestMaxwellPDFNormalised(t *testing.T) {
	vmax := 10 * MostProbableSpeed(testMass, testTemp)
	xs, ys := Curve(testMass, testTemp, vmax, 4001)

	area := integrate.Simpsons(xs, ys)
	assert.InDelta(t, 1.0, area, 1e-6)
	assert.Equal(t, 0.0, ys[0])
}

func TestMaxwellCDFMatchesDensity(t *testing.T) {
	vp := MostProbableSpeed(testMass, testTemp)
	for _, v := range []float64{0.2 * vp, vp, 2 * vp, 3 * vp} {
		xs, ys := Curve(testMass, testTemp, v, 2001)
		assert.InDelta(t, integrate.Simpsons(xs, ys), MaxwellCDF(v, testMass, testTemp), 1e-8, "v=%g", v)
	}
	assert.Equal(t, 0.0, MaxwellCDF(-1, testMass, testTemp))
	assert.InDelta(t, 1.0, MaxwellCDF(20*vp, testMass, testTemp), 1e-12)
}

func TestCharacteristicSpeeds(t *testing.T) {
	vp := MostProbableSpeed(testMass, testTemp)
	mean := MeanSpeed(testMass, testTemp)
	assert.Less(t, vp, mean)

	// the density peaks at the most probable speed
	assert.Greater(t, MaxwellPDF(vp, testMass, testTemp), MaxwellPDF(0.95*vp, testMass, testTemp))
	assert.Greater(t, MaxwellPDF(vp, testMass, testTemp), MaxwellPDF(1.05*vp, testMass, testTemp))
}

// maxwellSample draws speeds as norms of Gaussian velocity vectors.
func maxwellSample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	a := scale(testMass, testTemp)
	out := make([]float64, n)
	for i := range out {
		x, y, z := rng.NormFloat64()*a, rng.NormFloat64()*a, rng.NormFloat64()*a
		out[i] = math.Sqrt(x*x + y*y + z*z)
	}
	return out
}

func TestKSDistance(t *testing.T) {
	speeds := maxwellSample(5000, 1)
	assert.Less(t, KSDistance(speeds, testMass, testTemp), 0.03)

	// a sample at four times the temperature is far off
	assert.Greater(t, KSDistance(speeds, testMass, testTemp/4), 0.3)

	assert.Equal(t, 1.0, KSDistance(nil, testMass, testTemp))
}

func TestHistogramDensity(t *testing.T) {
	speeds := maxwellSample(20000, 2)
	vmax := 4 * MostProbableSpeed(testMass, testTemp)
	h := NewHistogram(speeds, 40, 0, vmax)

	require.Len(t, h.Counts, 40)
	require.Len(t, h.Edges, 41)

	width := h.Edges[1] - h.Edges[0]
	area := 0.0
	for _, d := range h.Density {
		area += d * width
	}
	// only the tail beyond vmax is missing
	assert.InDelta(t, MaxwellCDF(vmax, testMass, testTemp), area, 1e-3)

	centers := h.Centers()
	peak := 0
	for i, d := range h.Density {
		if d > h.Density[peak] {
			peak = i
		}
	}
	assert.InDelta(t, MostProbableSpeed(testMass, testTemp), centers[peak], 5*width)
}

func TestHistogramAutoRange(t *testing.T) {
	h := NewHistogram([]float64{1, 2, 3, 4}, 4, 0, 0)

	total := 0.0
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, 4.0, total)
	assert.Equal(t, 1.0, h.Edges[0])

	empty := NewHistogram(nil, 10, 0, 1)
	assert.Len(t, empty.Density, 10)
}

func TestExcessKurtosis(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	uniform := make([]float64, 20000)
	gauss := make([]float64, 20000)
	for i := range uniform {
		uniform[i] = 2*rng.Float64() - 1
		gauss[i] = rng.NormFloat64()
	}
	assert.InDelta(t, -1.2, ExcessKurtosis(uniform), 0.05)
	assert.InDelta(t, 0.0, ExcessKurtosis(gauss), 0.15)
	assert.True(t, math.IsNaN(ExcessKurtosis([]float64{1, 2})))
}

func TestRMS(t *testing.T) {
	assert.InDelta(t, 5.0/math.Sqrt2, RMS([]float64{3, 4, -3, -4}), 1e-12)
	assert.Equal(t, 0.0, RMS(nil))
}
