package viz

import (
	"math"

	"github.com/san-kum/collatzlab/internal/collatz"
)

// SpiralTurns is how many full turns the spiral projection makes.
const SpiralTurns = 10

// Point is a projected trajectory value. Even carries the parity of the
// value at that position.
type Point struct {
	X, Y float64
	Even bool
}

// Spiral lays the trajectory out along an Archimedean spiral of
// SpiralTurns turns. The angle advances evenly with the step and the radius
// is scaled by value/max, so peaks bulge outwards.
func Spiral(t collatz.Trajectory) []Point {
	n := len(t)
	if n == 0 {
		return nil
	}
	logs := t.Log10()
	peak := math.Inf(-1)
	for _, l := range logs {
		peak = math.Max(peak, l)
	}

	pts := make([]Point, n)
	for i, v := range t {
		theta := 0.0
		if n > 1 {
			theta = float64(i) * SpiralTurns * 2 * math.Pi / float64(n-1)
		}
		// value/max computed in log space to stay finite for huge values
		r := theta * math.Pow(10, logs[i]-peak)
		pts[i] = Point{
			X:    r * math.Cos(theta),
			Y:    r * math.Sin(theta),
			Even: collatz.IsEven(v),
		}
	}
	return pts
}

// Tree walks one unit right after an even value and one unit left after an
// odd value, dropping half a unit per step.
func Tree(t collatz.Trajectory) []Point {
	if len(t) == 0 {
		return nil
	}
	pts := make([]Point, len(t))
	pts[0] = Point{Even: collatz.IsEven(t[0])}
	for i := 1; i < len(t); i++ {
		prev := pts[i-1]
		dx := -1.0
		if collatz.IsEven(t[i-1]) {
			dx = 1
		}
		pts[i] = Point{X: prev.X + dx, Y: prev.Y - 0.5, Even: collatz.IsEven(t[i])}
	}
	return pts
}

// Project returns the points for a projection mode. Modes without a
// geometric projection return nil.
func Project(m Mode, t collatz.Trajectory) []Point {
	switch m {
	case ModeSpiral:
		return Spiral(t)
	case ModeTree:
		return Tree(t)
	}
	return nil
}

// RenderProjection draws pts on a w x h cell canvas with parity tints.
func RenderProjection(pts []Point, w, h int, theme Theme) string {
	c := NewCanvas(w, h)
	c.Plot(pts)
	return c.Render(theme)
}
