package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/collatzlab/internal/collatz"
)

const (
	PlotWidth  = 80
	PlotHeight = 12
)

// PlotStatic returns the linear plot of t followed by its log10 plot. The
// linear plot is omitted when a value is too large for float64.
func PlotStatic(t collatz.Trajectory, width, height int) string {
	if len(t) == 0 {
		return ""
	}
	width, height = plotSize(width, height)
	start := collatz.FormatGrouped(t.Start())

	var b strings.Builder
	if linear := t.Floats(); finite(linear) {
		b.WriteString(asciigraph.Plot(linear,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Precision(0),
			asciigraph.SeriesColors(asciigraph.Cyan),
			asciigraph.Caption(fmt.Sprintf("Collatz sequence for n = %s", start)),
		))
		b.WriteString("\n\n")
	} else {
		fmt.Fprintf(&b, "values exceed float64 range; linear plot skipped for n = %s\n\n", start)
	}
	b.WriteString(asciigraph.Plot(t.Log10(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Magenta),
		asciigraph.Caption("log10 scale"),
	))
	b.WriteByte('\n')
	return b.String()
}

// PlotComparison overlays two trajectories on a shared log10 axis. The
// shorter series is padded with its final value so both span the same steps.
func PlotComparison(a, b collatz.Trajectory, width, height int) string {
	if len(a) == 0 || len(b) == 0 {
		return ""
	}
	width, height = plotSize(width, height)
	la, lb := a.Log10(), b.Log10()
	n := max(len(la), len(lb))
	la, lb = padTo(la, n), padTo(lb, n)

	caption := fmt.Sprintf("log10: %s (cyan) vs %s (magenta)",
		collatz.FormatGrouped(a.Start()), collatz.FormatGrouped(b.Start()))
	return asciigraph.PlotMany([][]float64{la, lb},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.Caption(caption),
	) + "\n"
}

// Sparkline compresses log10 values into one line of block characters.
func Sparkline(values []float64, width int, theme Theme) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	bars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	high := styleFg(theme.Primary)
	low := styleFg(theme.Secondary)

	step := max(len(values)/width, 1)
	var out strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := min(max(int(norm*float64(len(bars)-1)), 0), len(bars)-1)
		if norm > 0.5 {
			out.WriteString(high.Render(string(bars[idx])))
		} else {
			out.WriteString(low.Render(string(bars[idx])))
		}
	}
	return out.String()
}

func plotSize(width, height int) (int, int) {
	if width <= 0 {
		width = PlotWidth
	}
	if height <= 0 {
		height = PlotHeight
	}
	return width, height
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

func padTo(xs []float64, n int) []float64 {
	if len(xs) >= n {
		return xs
	}
	out := make([]float64, n)
	copy(out, xs)
	for i := len(xs); i < n; i++ {
		out[i] = xs[len(xs)-1]
	}
	return out
}
