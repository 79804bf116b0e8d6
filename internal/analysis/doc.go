// Package analysis compares simulated speeds with kinetic theory.
//
// The package provides what a display or a test needs to judge how close
// an ensemble is to equilibrium:
//
//   - [MaxwellPDF] and [MaxwellCDF]: the Maxwell–Boltzmann speed distribution
//   - [Curve]: the reference density sampled for plotting
//   - [NewHistogram]: density-normalised speed histogram
//   - [KSDistance]: one-sample Kolmogorov–Smirnov distance to Maxwell–Boltzmann
//   - [ExcessKurtosis]: Gaussianity check on velocity components
//
// # Equilibrium Check
//
//	d := analysis.KSDistance(gas.Speeds(), mass, temperature)
//	if d < 0.1 {
//	    // speeds are consistent with the configured temperature
//	}
package analysis
