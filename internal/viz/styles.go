package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/collatzlab/internal/collatz"
	"github.com/san-kum/collatzlab/internal/compare"
)

func styleFg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

type palette struct {
	title, label, value, muted lipgloss.Style
	even, odd, warn            lipgloss.Style
	panel                      lipgloss.Style
}

func newPalette(t Theme) palette {
	return palette{
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		label: styleFg(t.Muted),
		value: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		muted: styleFg(t.Muted).Italic(true),
		even:  styleFg(t.Even),
		odd:   styleFg(t.Odd),
		warn:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

func (p palette) row(label, value string) string {
	return p.label.Render(fmt.Sprintf("%-16s", label)) + p.value.Render(value)
}

func (p palette) terms(terms []collatz.Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		style := p.odd
		if collatz.IsEven(t.Value) {
			style = p.even
		}
		parts[i] = p.label.Render(fmt.Sprintf("#%d ", t.Position)) + style.Render(collatz.FormatGrouped(t.Value))
	}
	return strings.Join(parts, p.label.Render(" → "))
}

// RenderStats draws the statistics panel for one trajectory.
func RenderStats(s *collatz.Statistics, theme Theme) string {
	if s == nil {
		return ""
	}
	p := newPalette(theme)

	stopping := "none"
	if s.StoppingTime > 0 {
		stopping = fmt.Sprintf("%d steps", s.StoppingTime)
	}
	lines := []string{
		p.title.Render("Statistics for n = " + collatz.FormatGrouped(s.Start)),
		"",
		p.row("Length", fmt.Sprintf("%d values (%d steps)", s.Length, s.Steps)),
		p.row("Maximum", fmt.Sprintf("%s at position %d", collatz.FormatGrouped(s.Max), s.MaxPosition)),
		p.row("Stopping time", stopping),
		p.row("Parity", p.even.Render(fmt.Sprintf("%d even", s.Evens))+p.label.Render(" / ")+p.odd.Render(fmt.Sprintf("%d odd", s.Odds))),
		"",
		p.label.Render(fmt.Sprintf("First %d:", len(s.Head))),
		"  " + p.terms(s.Head),
		p.label.Render(fmt.Sprintf("Last %d:", len(s.Tail))),
		"  " + p.terms(s.Tail),
	}
	return p.panel.Render(strings.Join(lines, "\n"))
}

// RenderComparison draws both statistics panels side by side with the
// comparison summary underneath.
func RenderComparison(r *compare.Result, theme Theme) string {
	if r == nil {
		return ""
	}
	p := newPalette(theme)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderStats(r.A.Stats, theme), " ", RenderStats(r.B.Stats, theme))

	a, b := collatz.FormatGrouped(r.A.Stats.Start), collatz.FormatGrouped(r.B.Stats.Start)
	var peak string
	switch r.HigherPeak() {
	case "a":
		peak = a + " climbs higher"
	case "b":
		peak = b + " climbs higher"
	default:
		peak = "both reach " + collatz.FormatGrouped(r.A.Stats.Max)
	}

	delta := r.LengthDelta()
	var length string
	switch {
	case delta > 0:
		length = fmt.Sprintf("%s is %d steps longer", a, delta)
	case delta < 0:
		length = fmt.Sprintf("%s is %d steps longer", b, -delta)
	default:
		length = "same length"
	}

	summary := []string{
		p.title.Render("Comparison"),
		p.row("Length", length),
		p.row("Peak", peak),
	}
	if c := r.Confluence(); c.Value != nil {
		summary = append(summary, p.row("Meet at", fmt.Sprintf("%s (position %d in %s, %d in %s)",
			collatz.FormatGrouped(c.Value), c.PositionA, a, c.PositionB, b)))
	}
	return panels + "\n" + p.panel.Render(strings.Join(summary, "\n"))
}

// RenderAdvisory formats a ceiling advisory for display.
func RenderAdvisory(a collatz.Advisory, theme Theme) string {
	return newPalette(theme).warn.Render(fmt.Sprintf("warning: %s exceeds the recommended ceiling %s; this may take a while",
		collatz.FormatGrouped(a.Start), collatz.FormatGrouped(a.Ceiling)))
}

// ProgressBar renders a horizontal bar filled to fraction (0..1).
func ProgressBar(fraction float64, width int, theme Theme) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	return styleFg(theme.Primary).Render(strings.Repeat("█", filled)) +
		styleFg(theme.Muted).Render(strings.Repeat("░", width-filled))
}
