// Package viz renders a running gas in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Simulator] on every tick,
// draws the chamber and its particles on a braille [Canvas] through a
// rotatable [Camera], and plots the live speed histogram against the
// Maxwell-Boltzmann density with asciigraph.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Single step while paused
//	R     - Reset with the configured seed
//	X/Y   - Rotate the chamber (shift reverses)
//	+/-   - Zoom
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
