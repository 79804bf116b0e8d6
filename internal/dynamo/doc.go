// Package dynamo provides the shared vocabulary of the gas simulator.
//
// The package defines the types passed between the physics core, the run
// driver and its collaborators:
//
//   - [Frame]: read-only view of the ensemble after one step
//   - [StepStats]: per-step collision and wall accounting
//   - [Metric]: statistic accumulated over a run
//   - [Observer]: per-step hook for live drivers
//   - [Config] and [Result]: run configuration and output
//
// # Example
//
//	gas, _ := physics.New(physics.DefaultParams(), rand.New(rand.NewSource(1)))
//	s := sim.New(gas)
//	result, _ := s.Run(ctx, dynamo.DefaultConfig())
//
// # Thread Safety
//
// A Frame aliases the live ensemble buffers. It is valid only until the next
// step; observers that keep data must copy it.
package dynamo
