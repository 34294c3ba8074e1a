// Package export writes trajectory views as standalone SVG documents.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/collatzlab/internal/collatz"
	"github.com/san-kum/collatzlab/internal/viz"
)

// Options controls SVG output size and colours.
type Options struct {
	Width, Height int
	Theme         viz.Theme
	Background    string
	DotRadius     float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Theme.Name == "" {
		o.Theme = viz.GetTheme(viz.DefaultTheme)
	}
	if o.Background == "" {
		o.Background = "#0a0a0a"
	}
	if o.DotRadius <= 0 {
		o.DotRadius = 3
	}
	return o
}

// WriteTrajectory renders t in mode m. Static and animation modes draw the
// log10 value against the step; spiral and tree draw their projection.
func WriteTrajectory(w io.Writer, m viz.Mode, t collatz.Trajectory, opts Options) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty trajectory", collatz.ErrInvalidInput)
	}
	pts := viz.Project(m, t)
	if pts == nil {
		logs := t.Log10()
		pts = make([]viz.Point, len(t))
		for i, v := range t {
			pts[i] = viz.Point{X: float64(i), Y: logs[i], Even: collatz.IsEven(v)}
		}
	}
	title := fmt.Sprintf("Collatz %s for n = %s", m, collatz.FormatGrouped(t.Start()))
	return WritePoints(w, pts, title, opts)
}

// SaveTrajectory writes the SVG for t to path.
func SaveTrajectory(path string, m viz.Mode, t collatz.Trajectory, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTrajectory(f, m, t, opts)
}

// WritePoints draws pts as a grey path with a dot per point, coloured by
// parity. Bounds get 10% padding, a flat axis is centred and y points up.
func WritePoints(w io.Writer, pts []viz.Point, title string, opts Options) error {
	if len(pts) == 0 {
		return fmt.Errorf("%w: no points", collatz.ErrInvalidInput)
	}
	opts = opts.withDefaults()

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX, minX = 1, minX-0.5
	}
	if rangeY == 0 {
		rangeY, minY = 1, minY-0.5
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	width, height := float64(opts.Width), float64(opts.Height)
	project := func(p viz.Point) (float64, float64) {
		return (p.X - minX) / rangeX * width, height - (p.Y-minY)/rangeY*height
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<title>%s</title>
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1.5" d="`,
		opts.Width, opts.Height, opts.Width, opts.Height, title, opts.Background, string(opts.Theme.Muted))

	for i, p := range pts {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(bw, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
		}
	}
	bw.WriteString("\"/>\n")

	even, odd := string(opts.Theme.Even), string(opts.Theme.Odd)
	for _, p := range pts {
		x, y := project(p)
		fill := odd
		if p.Even {
			fill = even
		}
		fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", x, y, opts.DotRadius, fill)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
