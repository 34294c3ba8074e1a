package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/collatzlab/internal/collatz"
)

// Render produces the non-interactive view of a trajectory for mode m:
// plots or a projection, followed by the statistics panel. ModeAnimation
// falls back to the static plots; use [Animation] to play it.
func Render(m Mode, t collatz.Trajectory, s *collatz.Statistics, theme Theme, width, height int) string {
	if len(t) == 0 {
		return ""
	}
	width, height = plotSize(width, height)
	p := newPalette(theme)

	var b strings.Builder
	switch m {
	case ModeSpiral, ModeTree:
		b.WriteString(p.title.Render(fmt.Sprintf("Collatz %s for n = %s", m, collatz.FormatGrouped(t.Start()))))
		b.WriteString("\n\n")
		b.WriteString(RenderProjection(Project(m, t), width, height, theme))
		b.WriteString(p.even.Render("● even") + "  " + p.odd.Render("● odd"))
		if m == ModeTree {
			b.WriteString(p.label.Render("  (right after even, left after odd)"))
		}
		b.WriteString("\n\n")
	default:
		b.WriteString(PlotStatic(t, width, height))
		b.WriteString(Sparkline(t.Log10(), width, theme))
		b.WriteString("\n\n")
	}
	b.WriteString(RenderStats(s, theme))
	b.WriteString("\n")
	return b.String()
}
