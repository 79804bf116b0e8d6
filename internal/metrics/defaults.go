package metrics

import (
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
)

// Defaults is the metric set attached to every run.
func Defaults(p physics.Params) []dynamo.Metric {
	return []dynamo.Metric{
		NewTemperature(p.Mass),
		NewEnergyDrift(p.Mass),
		NewPressure(p),
		NewGasLaw(p),
		NewMaxwellDistance(p.Mass, p.Temperature),
		NewCollisionRate(),
		NewContainment(p.Radius, p.SideLength()),
	}
}
