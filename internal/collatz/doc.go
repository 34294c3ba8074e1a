// Package collatz provides the arbitrary-precision Collatz (3n+1) engine.
//
// The package defines the core types and operations:
//
//   - [Trajectory]: the ordered values visited from a start value down to 1
//   - [Generator]: produces a trajectory, with an advisory ceiling and an
//     optional step bound
//   - [Summarize]: derives [Statistics] (length, maximum, head/tail terms)
//   - [FormatGrouped], [ParseStart], [Log10]: exact formatting, lenient
//     parsing and plot-safe scaling of huge values
//
// # Example
//
//	gen := collatz.NewGenerator(collatz.WithMaxSteps(1_000_000))
//	traj, _ := gen.Generate(ctx, big.NewInt(27))
//	stats, _ := collatz.Summarize(traj, collatz.DefaultHead, collatz.DefaultTail)
//
// # Thread Safety
//
// A Generator holds only immutable settings and may be shared between
// goroutines. Returned trajectories must not be modified by callers.
package collatz
