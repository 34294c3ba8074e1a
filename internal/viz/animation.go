package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/collatzlab/internal/collatz"
)

const (
	MinFrameDelay     = 10 * time.Millisecond
	MaxFrameDelay     = 500 * time.Millisecond
	DefaultFrameDelay = 200 * time.Millisecond
	frameDelayStep    = 10 * time.Millisecond
)

// frameMsg advances the animation. Frames from an earlier generation are
// dropped, so a restart or resume never runs two tickers at once.
type frameMsg struct{ gen int }

// AnimationDoneMsg is emitted instead of quitting when the animation runs
// embedded in another program.
type AnimationDoneMsg struct{}

// AnimationOptions configures an Animation.
type AnimationOptions struct {
	Mode     Mode // ModeAnimation plots values, ModeSpiral and ModeTree reveal a projection
	Delay    time.Duration
	Theme    Theme
	Width    int
	Height   int
	Embedded bool
	Head     int
	Tail     int
}

// Animation is a Bubble Tea model that reveals a trajectory one value per
// frame.
type Animation struct {
	traj   collatz.Trajectory
	stats  *collatz.Statistics
	points []Point
	opts   AnimationOptions

	shown  int
	paused bool
	gen    int
}

// NewAnimation prepares an animation of t. t must be non-empty.
func NewAnimation(t collatz.Trajectory, opts AnimationOptions) (*Animation, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: nothing to animate", collatz.ErrInvalidInput)
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultFrameDelay
	}
	opts.Delay = clampDelay(opts.Delay)
	if opts.Theme.Name == "" {
		opts.Theme = GetTheme(DefaultTheme)
	}
	if opts.Mode != ModeSpiral && opts.Mode != ModeTree {
		opts.Mode = ModeAnimation
	}
	opts.Width, opts.Height = plotSize(opts.Width, opts.Height)

	stats, err := collatz.Summarize(t, opts.Head, opts.Tail)
	if err != nil {
		return nil, err
	}
	return &Animation{
		traj:   t,
		stats:  stats,
		points: Project(opts.Mode, t),
		opts:   opts,
		shown:  1,
	}, nil
}

// Shown is the number of values currently revealed.
func (a *Animation) Shown() int { return a.shown }

// Paused reports whether playback is paused.
func (a *Animation) Paused() bool { return a.paused }

// Done reports whether every value has been revealed.
func (a *Animation) Done() bool { return a.shown >= len(a.traj) }

// Delay is the current time between frames.
func (a *Animation) Delay() time.Duration { return a.opts.Delay }

func (a *Animation) tick() tea.Cmd {
	gen := a.gen
	return tea.Tick(a.opts.Delay, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

func (a *Animation) Init() tea.Cmd {
	return a.tick()
}

func (a *Animation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if a.opts.Embedded && msg.String() != "ctrl+c" {
				return a, func() tea.Msg { return AnimationDoneMsg{} }
			}
			return a, tea.Quit
		case " ", "space", "p":
			a.paused = !a.paused
			if !a.paused && !a.Done() {
				a.gen++
				return a, a.tick()
			}
		case "r":
			a.shown = 1
			a.paused = false
			a.gen++
			return a, a.tick()
		case "+", "=":
			a.opts.Delay = clampDelay(a.opts.Delay - frameDelayStep)
		case "-", "_":
			a.opts.Delay = clampDelay(a.opts.Delay + frameDelayStep)
		}

	case frameMsg:
		if msg.gen != a.gen || a.paused || a.Done() {
			return a, nil
		}
		a.shown++
		if a.Done() {
			return a, nil
		}
		return a, a.tick()
	}
	return a, nil
}

func (a *Animation) View() string {
	p := newPalette(a.opts.Theme)
	var b strings.Builder

	b.WriteString(p.title.Render(fmt.Sprintf("Collatz %s for n = %s", a.opts.Mode, collatz.FormatGrouped(a.traj.Start()))))
	b.WriteString("\n\n")

	switch a.opts.Mode {
	case ModeSpiral, ModeTree:
		b.WriteString(RenderProjection(a.points[:a.shown], a.opts.Width, a.opts.Height, a.opts.Theme))
	default:
		b.WriteString(a.plot())
	}
	b.WriteString("\n")

	cur := a.traj[a.shown-1]
	parity := p.odd.Render("odd")
	if collatz.IsEven(cur) {
		parity = p.even.Render("even")
	}
	b.WriteString(p.row("Step", fmt.Sprintf("%d / %d", a.shown-1, a.traj.Steps())))
	b.WriteString("\n")
	b.WriteString(p.row("Value", collatz.FormatGrouped(cur)) + "  " + parity)
	b.WriteString("\n")
	b.WriteString(ProgressBar(float64(a.shown)/float64(len(a.traj)), 40, a.opts.Theme))

	status := fmt.Sprintf("  %dms/frame", a.opts.Delay.Milliseconds())
	switch {
	case a.Done():
		status = "  done" + status
	case a.paused:
		status = "  paused" + status
	}
	b.WriteString(p.label.Render(status))
	b.WriteString("\n\n")

	if a.Done() {
		b.WriteString(RenderStats(a.stats, a.opts.Theme))
		b.WriteString("\n")
	}
	b.WriteString(p.muted.Render("space pause • r restart • +/- speed • q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (a *Animation) plot() string {
	if a.shown < 2 {
		return collatz.FormatGrouped(a.traj.Start()) + "\n"
	}
	series, caption, precision := a.traj[:a.shown].Log10(), "log10 scale", uint(2)
	if linear := a.traj[:a.shown].Floats(); finite(linear) {
		series, caption, precision = linear, "value", 0
	}
	return asciigraph.Plot(series,
		asciigraph.Height(a.opts.Height),
		asciigraph.Width(a.opts.Width),
		asciigraph.Precision(precision),
		asciigraph.SeriesColors(asciigraph.Cyan),
		asciigraph.Caption(caption),
	) + "\n"
}

func clampDelay(d time.Duration) time.Duration {
	return min(max(d, MinFrameDelay), MaxFrameDelay)
}

// RunAnimation plays t full screen until the user quits.
func RunAnimation(t collatz.Trajectory, opts AnimationOptions) error {
	opts.Embedded = false
	anim, err := NewAnimation(t, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(anim, tea.WithAltScreen()).Run()
	return err
}
