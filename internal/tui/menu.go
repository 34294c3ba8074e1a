// Package tui is the interactive front end: a Bubble Tea menu for analysing,
// sampling, loading and comparing trajectories.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/collatzlab/internal/catalog"
	"github.com/san-kum/collatzlab/internal/collatz"
	"github.com/san-kum/collatzlab/internal/compare"
	"github.com/san-kum/collatzlab/internal/store"
	"github.com/san-kum/collatzlab/internal/viz"
)

type state int

const (
	stateMenu state = iota
	stateInput
	stateSamples
	stateMode
	stateBusy
	stateView
	stateAnimation
	stateCompare
)

type action int

const (
	actionAnalyze action = iota
	actionSample
	actionRandom
	actionLoad
	actionCompare
	actionQuit
)

var menuItems = []struct {
	action action
	label  string
	desc   string
}{
	{actionAnalyze, "analyze", "enter a start value"},
	{actionSample, "samples", "pick a canonical start"},
	{actionRandom, "random", "draw a random start"},
	{actionLoad, "load", "open a saved sequence"},
	{actionCompare, "compare", "two sequences side by side"},
	{actionQuit, "quit", ""},
}

// input purposes
type purpose int

const (
	inputStart purpose = iota
	inputLoad
	inputCompareFirst
	inputCompareSecond
)

// Options wires the menu to the rest of the program.
type Options struct {
	Generator  *collatz.Generator
	Store      *store.Store
	Theme      viz.Theme
	Head, Tail int
	FrameDelay time.Duration
	// RandomCeiling bounds random draws; nil uses the generator ceiling.
	RandomCeiling *big.Int
	// Random is the randomness source for draws; nil uses crypto/rand.
	Random io.Reader
}

type generatedMsg struct {
	seq  int
	traj collatz.Trajectory
	err  error
}

type comparedMsg struct {
	seq    int
	result *compare.Result
	err    error
}

type model struct {
	opts Options
	cmp  *compare.Comparator

	state  state
	cursor int

	purpose purpose
	input   string
	first   *big.Int

	start  *big.Int
	traj   collatz.Trajectory
	stats  *collatz.Statistics
	mode   viz.Mode
	result *compare.Result
	anim   *viz.Animation

	seq    int
	cancel context.CancelFunc

	status string
	err    error

	width, height int
}

// New returns the menu model.
func New(opts Options) tea.Model {
	if opts.Generator == nil {
		opts.Generator = collatz.NewGenerator()
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.GetTheme(viz.DefaultTheme)
	}
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = viz.DefaultFrameDelay
	}
	return model{
		opts:   opts,
		cmp:    compare.New(opts.Generator, opts.Head, opts.Tail),
		width:  100,
		height: 40,
	}
}

// Run starts the menu in the alternate screen and blocks until the user
// quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateAnimation {
			return m.forward(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stop()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case generatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.cancel = nil
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		return m.show(msg.traj)

	case comparedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.cancel = nil
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.result = msg.result
		m.state = stateCompare
		return m, nil

	case viz.AnimationDoneMsg:
		m.anim = nil
		m.state = stateView
		return m, nil
	}

	if m.state == stateAnimation {
		return m.forward(msg)
	}
	return m, nil
}

func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.anim == nil {
		return m, nil
	}
	next, cmd := m.anim.Update(msg)
	m.anim = next.(*viz.Animation)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateInput:
		return m.inputKey(msg)
	case stateSamples:
		return m.samplesKey(msg)
	case stateMode:
		return m.modeKey(msg)
	case stateBusy:
		if msg.String() == "esc" {
			m.stop()
			m.seq++
			m.status = "cancelled"
			m.state = stateMenu
		}
		return m, nil
	case stateView:
		return m.viewKey(msg)
	case stateAnimation:
		return m.forward(msg)
	case stateCompare:
		m.state = stateMenu
		m.result = nil
		return m, nil
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.err, m.status = nil, ""
		return m.choose(menuItems[m.cursor].action)
	}
	return m, nil
}

func (m model) choose(a action) (tea.Model, tea.Cmd) {
	m.traj, m.stats, m.start = nil, nil, nil
	switch a {
	case actionAnalyze:
		m = m.prompt(inputStart)
	case actionSample:
		m.state, m.cursor = stateSamples, 0
	case actionRandom:
		ceiling := m.opts.RandomCeiling
		if ceiling == nil {
			ceiling = m.opts.Generator.Ceiling()
		}
		if ceiling == nil {
			ceiling = collatz.DefaultCeilingInt()
		}
		n, err := catalog.RandomStart(ceiling, m.opts.Random)
		if err != nil {
			return m.fail(err), nil
		}
		m.status = "random start " + collatz.FormatGrouped(n)
		m.start = n
		m.state, m.cursor = stateMode, 0
	case actionLoad:
		if m.opts.Store == nil {
			return m.fail(errors.New("no data directory configured")), nil
		}
		m = m.prompt(inputLoad)
	case actionCompare:
		m = m.prompt(inputCompareFirst)
	case actionQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) prompt(p purpose) model {
	m.state, m.purpose, m.input = stateInput, p, ""
	return m
}

func (m model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state, m.cursor = stateMenu, 0
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if m.accepts(r) {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m model) accepts(r rune) bool {
	if m.purpose == inputLoad {
		return r >= ' ' && r != 0x7f
	}
	return (r >= '0' && r <= '9') || r == ',' || r == '_'
}

func (m model) submit() (tea.Model, tea.Cmd) {
	m.err = nil
	if m.purpose == inputLoad {
		rec, err := m.opts.Store.Load(strings.TrimSpace(m.input))
		if err != nil {
			m.err = err
			return m, nil
		}
		if err := rec.Verify(); err != nil {
			m.status = "warning: " + err.Error()
		} else {
			m.status = "loaded " + m.opts.Store.Path(strings.TrimSpace(m.input))
		}
		m.traj, m.start = rec.Sequence, rec.Start
		m.state, m.cursor = stateMode, 0
		return m, nil
	}

	n, err := collatz.ParseStart(m.input)
	if err == nil {
		err = m.opts.Generator.Validate(n)
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.opts.Generator.ExceedsCeiling(n) {
		m.status = "warning: " + collatz.FormatGrouped(n) + " is above the recommended ceiling"
	}

	switch m.purpose {
	case inputCompareFirst:
		m.first = n
		m = m.prompt(inputCompareSecond)
		return m, nil
	case inputCompareSecond:
		return m.startCompare(m.first, n)
	}
	m.start = n
	m.state, m.cursor = stateMode, 0
	return m, nil
}

func (m model) samplesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := catalog.Entries()
	switch msg.String() {
	case "q", "esc":
		m.state, m.cursor = stateMenu, 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.start = entries[m.cursor].Value
		m.state, m.cursor = stateMode, 0
	default:
		if e, ok := catalog.Lookup(msg.String()); ok {
			m.start = e.Value
			m.state, m.cursor = stateMode, 0
		}
	}
	return m, nil
}

func (m model) modeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modes := viz.Modes()
	switch msg.String() {
	case "q", "esc":
		m.state, m.cursor = stateMenu, 0
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(modes)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		m.mode = modes[m.cursor]
	default:
		mode, err := viz.ParseMode(msg.String())
		if err != nil || msg.String() == "" {
			return m, nil
		}
		m.mode = mode
	}

	if m.traj != nil {
		return m.show(m.traj)
	}
	return m.startGenerate(m.start)
}

func (m model) viewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		return m.animate(m.mode)
	case "m":
		m.state, m.cursor = stateMode, 0
	case "s":
		if m.opts.Store == nil {
			m.err = errors.New("no data directory configured")
			return m, nil
		}
		path, err := m.opts.Store.Save(recordName(m.traj.Start()), store.NewRecord(m.traj))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = "saved " + path
	default:
		m.state, m.cursor = stateMenu, 0
	}
	return m, nil
}

func recordName(start *big.Int) string {
	return "collatz_" + start.String()
}

func (m model) startGenerate(start *big.Int) (tea.Model, tea.Cmd) {
	m.stop()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	m.state = stateBusy

	gen, seq := m.opts.Generator, m.seq
	return m, func() tea.Msg {
		traj, err := gen.Generate(ctx, start)
		return generatedMsg{seq: seq, traj: traj, err: err}
	}
}

func (m model) startCompare(a, b *big.Int) (tea.Model, tea.Cmd) {
	m.stop()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	m.state = stateBusy

	cmp, seq := m.cmp, m.seq
	return m, func() tea.Msg {
		r, err := cmp.Compare(ctx, a, b)
		return comparedMsg{seq: seq, result: r, err: err}
	}
}

func (m *model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m model) show(t collatz.Trajectory) (tea.Model, tea.Cmd) {
	stats, err := collatz.Summarize(t, m.opts.Head, m.opts.Tail)
	if err != nil {
		return m.fail(err), nil
	}
	m.traj, m.stats = t, stats
	if m.mode == viz.ModeAnimation {
		return m.animate(viz.ModeAnimation)
	}
	m.state = stateView
	return m, nil
}

func (m model) animate(mode viz.Mode) (tea.Model, tea.Cmd) {
	w, h := m.plotSize()
	anim, err := viz.NewAnimation(m.traj, viz.AnimationOptions{
		Mode:     mode,
		Delay:    m.opts.FrameDelay,
		Theme:    m.opts.Theme,
		Width:    w,
		Height:   h,
		Embedded: true,
		Head:     m.opts.Head,
		Tail:     m.opts.Tail,
	})
	if err != nil {
		return m.fail(err), nil
	}
	m.anim = anim
	m.state = stateAnimation
	return m, anim.Init()
}

func (m model) fail(err error) model {
	m.err = err
	m.state, m.cursor = stateMenu, 0
	return m
}

func (m model) plotSize() (int, int) {
	return max(m.width-16, 40), max(min(m.height/3, 16), 8)
}

var frame = lipgloss.NewStyle().Padding(1, 3)

func (m model) View() string {
	t := m.opts.Theme
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	selected := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	cursor := lipgloss.NewStyle().Foreground(t.Secondary)
	dim := lipgloss.NewStyle().Foreground(t.Muted)
	errStyle := lipgloss.NewStyle().Foreground(t.Error)
	warn := lipgloss.NewStyle().Foreground(t.Warning)

	list := func(b *strings.Builder, items [][2]string) {
		for i, it := range items {
			if i == m.cursor {
				b.WriteString(cursor.Render("▸ ") + selected.Render(fmt.Sprintf("%-12s", it[0])) + dim.Render(it[1]) + "\n")
			} else {
				b.WriteString("  " + dim.Render(fmt.Sprintf("%-12s", it[0])+it[1]) + "\n")
			}
		}
	}

	var b strings.Builder
	switch m.state {
	case stateMenu:
		b.WriteString(title.Render("c o l l a t z") + "\n\n")
		items := make([][2]string, len(menuItems))
		for i, it := range menuItems {
			items[i] = [2]string{it.label, it.desc}
		}
		list(&b, items)
		b.WriteString("\n" + dim.Render("↑↓ select   enter choose   q quit") + "\n")

	case stateInput:
		b.WriteString(title.Render(m.promptText()) + "\n\n")
		b.WriteString("  > " + selected.Render(m.input) + cursor.Render("▋") + "\n\n")
		b.WriteString(dim.Render("enter confirm   esc back") + "\n")

	case stateSamples:
		b.WriteString(title.Render("Samples") + "\n\n")
		entries := catalog.Entries()
		items := make([][2]string, len(entries))
		for i, e := range entries {
			items[i] = [2]string{e.Key + ". " + e.Label, collatz.FormatGrouped(e.Value)}
		}
		list(&b, items)
		b.WriteString("\n" + dim.Render("↑↓ select   enter choose   esc back") + "\n")

	case stateMode:
		subject := ""
		if m.start != nil {
			subject = " for n = " + collatz.FormatGrouped(m.start)
		}
		b.WriteString(title.Render("Display"+subject) + "\n\n")
		modes := viz.Modes()
		items := make([][2]string, len(modes))
		for i, md := range modes {
			items[i] = [2]string{fmt.Sprintf("%d. %s", i+1, md), md.Description()}
		}
		list(&b, items)
		b.WriteString("\n" + dim.Render("↑↓ select   1-4 or enter choose   esc back") + "\n")

	case stateBusy:
		b.WriteString(title.Render("computing...") + "\n\n" + dim.Render("esc cancel") + "\n")

	case stateView:
		w, h := m.plotSize()
		b.WriteString(viz.Render(m.mode, m.traj, m.stats, t, w, h))
		b.WriteString("\n" + dim.Render("a animate   m change view   s save   any other key menu") + "\n")

	case stateAnimation:
		if m.anim != nil {
			return m.anim.View()
		}

	case stateCompare:
		if m.result != nil {
			w, h := m.plotSize()
			b.WriteString(viz.PlotComparison(m.result.A.Trajectory, m.result.B.Trajectory, w, h))
			b.WriteString("\n")
			b.WriteString(viz.RenderComparison(m.result, t))
			b.WriteString("\n\n" + dim.Render("any key menu") + "\n")
		}
	}

	if m.status != "" {
		style := dim
		if strings.HasPrefix(m.status, "warning") {
			style = warn
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render("error: "+m.err.Error()) + "\n")
	}
	return frame.Render(b.String())
}

func (m model) promptText() string {
	switch m.purpose {
	case inputLoad:
		return "Sequence file (name in " + m.opts.Store.Dir() + " or path)"
	case inputCompareFirst:
		return "First start value"
	case inputCompareSecond:
		return "Second start value (first: " + collatz.FormatGrouped(m.first) + ")"
	}
	return "Start value (at least 2)"
}
