// Package compare runs two Collatz analyses side by side.
//
// Both trajectories are generated concurrently and summarized independently;
// the result adds step alignment and the point where the two paths merge.
package compare

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/collatzlab/internal/collatz"
)

// Side is one analyzed start value.
type Side struct {
	Trajectory collatz.Trajectory
	Stats      *collatz.Statistics
}

// Result pairs two independent analyses.
type Result struct {
	A, B Side
}

// Comparator compares trajectories using a shared generator.
type Comparator struct {
	gen        *collatz.Generator
	head, tail int
}

func New(gen *collatz.Generator, head, tail int) *Comparator {
	if gen == nil {
		gen = collatz.NewGenerator()
	}
	return &Comparator{gen: gen, head: head, tail: tail}
}

// Compare validates both starts, then generates and summarizes them in
// parallel. Each side owns its trajectory; nothing is shared between them.
func (c *Comparator) Compare(ctx context.Context, a, b *big.Int) (*Result, error) {
	if err := collatz.ValidateStart(a); err != nil {
		return nil, fmt.Errorf("first start: %w", err)
	}
	if err := collatz.ValidateStart(b); err != nil {
		return nil, fmt.Errorf("second start: %w", err)
	}

	res := &Result{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		side, err := c.analyze(gctx, a)
		if err != nil {
			return fmt.Errorf("first start: %w", err)
		}
		res.A = side
		return nil
	})
	g.Go(func() error {
		side, err := c.analyze(gctx, b)
		if err != nil {
			return fmt.Errorf("second start: %w", err)
		}
		res.B = side
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Comparator) analyze(ctx context.Context, start *big.Int) (Side, error) {
	traj, err := c.gen.Generate(ctx, start)
	if err != nil {
		return Side{}, err
	}
	stats, err := collatz.Summarize(traj, c.head, c.tail)
	if err != nil {
		return Side{}, err
	}
	return Side{Trajectory: traj, Stats: stats}, nil
}

// LengthDelta is len(A) - len(B).
func (r *Result) LengthDelta() int {
	return r.A.Stats.Length - r.B.Stats.Length
}

// HigherPeak returns "a", "b" or "tie" for the side with the larger maximum.
func (r *Result) HigherPeak() string {
	switch r.A.Stats.Max.Cmp(r.B.Stats.Max) {
	case 1:
		return "a"
	case -1:
		return "b"
	}
	return "tie"
}

// Pair holds the values of both trajectories at one step. A nil value
// means that trajectory already ended.
type Pair struct {
	Step int
	A, B *big.Int
}

// Aligned returns the trajectories paired by step index, padded to the
// longer length.
func (r *Result) Aligned() []Pair {
	n := max(len(r.A.Trajectory), len(r.B.Trajectory))
	out := make([]Pair, n)
	for i := range out {
		out[i].Step = i
		if i < len(r.A.Trajectory) {
			out[i].A = r.A.Trajectory[i]
		}
		if i < len(r.B.Trajectory) {
			out[i].B = r.B.Trajectory[i]
		}
	}
	return out
}

// Confluence is where two trajectories first meet. From there on both
// follow the same values down to 1.
type Confluence struct {
	Value     *big.Int
	PositionA int
	PositionB int
}

// Confluence finds the first shared value. Every pair of trajectories meets
// at 1 at the latest, so the result is always set for valid input.
func (r *Result) Confluence() Confluence {
	a, b := r.A.Trajectory, r.B.Trajectory

	// Walk back over the common suffix.
	i, j := len(a)-1, len(b)-1
	for i > 0 && j > 0 && a[i-1].Cmp(b[j-1]) == 0 {
		i--
		j--
	}
	if i < 0 || j < 0 || a[i].Cmp(b[j]) != 0 {
		return Confluence{}
	}
	return Confluence{Value: a[i], PositionA: i + 1, PositionB: j + 1}
}
