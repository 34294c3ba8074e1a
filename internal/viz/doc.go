// Package viz renders Collatz trajectories in the terminal.
//
// It consumes trajectories and statistics from the collatz package and never
// feeds anything back into them:
//
//   - [PlotStatic], [PlotComparison]: asciigraph line plots (linear and log10)
//   - [Spiral], [Tree]: point projections drawn on a Braille [Canvas]
//   - [RenderStats], [RenderComparison]: lipgloss summaries
//   - [Animation]: Bubble Tea model that plays a trajectory step by step
//
// # Key Bindings (animation)
//
//	Space - Pause/Resume
//	R     - Restart from the first step
//	+/-   - Faster/slower (10-500 ms per frame)
//	Q     - Quit
package viz
