// Package viz renders a running simulation in the terminal.
//
// [Model] is a Bubble Tea program that steps the simulation at a fixed dt and
// draws the particles onto a Braille [Canvas], two by four dots per cell.
// The mouse pointer acts as the attraction point.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	A     - Toggle the pointer attractor
//	R     - Reset to a fresh population
//	T     - Cycle color themes
//	Q     - Quit
package viz
