package analysis

import (
	"math"

	"github.com/san-kum/gasbox/internal/physics"
	"gonum.org/v1/gonum/floats"
)

// scale is sqrt(kT/m), the per-component standard deviation.
func scale(mass, temperature float64) float64 {
	return math.Sqrt(physics.Boltzmann * temperature / mass)
}

// MaxwellPDF is the Maxwell–Boltzmann speed density
// f(v) = sqrt(2/π) (m/kT)^{3/2} v² exp(-m v² / 2kT).
func MaxwellPDF(v, mass, temperature float64) float64 {
	if v < 0 {
		return 0
	}
	kt := physics.Boltzmann * temperature
	return math.Sqrt(2/math.Pi) * math.Pow(mass/kt, 1.5) * v * v * math.Exp(-mass*v*v/(2*kt))
}

// MaxwellCDF is the probability that a particle moves slower than v.
func MaxwellCDF(v, mass, temperature float64) float64 {
	if v <= 0 {
		return 0
	}
	x := v / scale(mass, temperature)
	return math.Erf(x/math.Sqrt2) - math.Sqrt(2/math.Pi)*x*math.Exp(-x*x/2)
}

// MostProbableSpeed is the peak of the density, sqrt(2kT/m).
func MostProbableSpeed(mass, temperature float64) float64 {
	return math.Sqrt2 * scale(mass, temperature)
}

// MeanSpeed is sqrt(8kT/πm).
func MeanSpeed(mass, temperature float64) float64 {
	return math.Sqrt(8/math.Pi) * scale(mass, temperature)
}

// Curve samples the density at n evenly spaced speeds in [0, vmax].
func Curve(mass, temperature, vmax float64, n int) (speeds, density []float64) {
	if n < 2 {
		n = 2
	}
	speeds = floats.Span(make([]float64, n), 0, vmax)
	density = make([]float64, n)
	for i, v := range speeds {
		density[i] = MaxwellPDF(v, mass, temperature)
	}
	return speeds, density
}
