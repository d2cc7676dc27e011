// Package viz draws a running scenario in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live arena, ticking a scheduler once per UI frame
//   - [Canvas]: braille dot grid for collider outlines, with glyphs on top
//   - a scenario picker over the built-in presets
//
// # Key Bindings
//
//	Arrows - Steer the player (held for a short window after each press)
//	Mouse  - Place the player under the pointer
//	Space  - Pause/Resume
//	R      - Quietly destroy everything and respawn the scenario
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
