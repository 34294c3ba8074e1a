package collatz

import (
	"context"
	"fmt"
	"math/big"
)

const (
	// DefaultCeiling is the largest recommended start value (10^21).
	DefaultCeiling = "1000000000000000000000"

	// cancelCheckInterval is how many steps run between context checks.
	cancelCheckInterval = 1024
)

// DefaultCeilingInt returns DefaultCeiling as a fresh big.Int.
func DefaultCeilingInt() *big.Int {
	c, _ := new(big.Int).SetString(DefaultCeiling, 10)
	return c
}

// Advisory is delivered when a start value exceeds the configured ceiling.
// Such values are still processed; they only cost more time and memory.
type Advisory struct {
	Start   *big.Int
	Ceiling *big.Int
}

// Option configures a Generator.
type Option func(*Generator)

// WithCeiling sets the advisory ceiling. A nil ceiling disables advisories.
func WithCeiling(c *big.Int) Option {
	return func(g *Generator) {
		if c == nil {
			g.ceiling = nil
			return
		}
		g.ceiling = new(big.Int).Set(c)
	}
}

// WithMaxSteps bounds the number of steps a generation may take.
// Zero means unbounded, which relies on the conjecture holding for the input.
func WithMaxSteps(n int) Option {
	return func(g *Generator) {
		if n < 0 {
			n = 0
		}
		g.maxSteps = n
	}
}

// WithAdvisor sets the callback receiving ceiling advisories.
func WithAdvisor(fn func(Advisory)) Option {
	return func(g *Generator) { g.advisor = fn }
}

// Generator produces Collatz trajectories. It holds no mutable state.
type Generator struct {
	ceiling  *big.Int
	maxSteps int
	advisor  func(Advisory)
}

// NewGenerator returns a Generator with the default ceiling, no step bound
// and no advisor.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{ceiling: DefaultCeilingInt()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ceiling returns a copy of the advisory ceiling, or nil when disabled.
func (g *Generator) Ceiling() *big.Int {
	if g.ceiling == nil {
		return nil
	}
	return new(big.Int).Set(g.ceiling)
}

// MaxSteps returns the step bound, zero when unbounded.
func (g *Generator) MaxSteps() int { return g.maxSteps }

// Validate reports whether start is an acceptable start value.
func (g *Generator) Validate(start *big.Int) error {
	return ValidateStart(start)
}

// ValidateStart fails with ErrInvalidInput unless start >= 2.
func ValidateStart(start *big.Int) error {
	if start == nil {
		return fmt.Errorf("%w: start must exceed 1, got nothing", ErrInvalidInput)
	}
	if start.Cmp(two) < 0 {
		return fmt.Errorf("%w: start must exceed 1, got %s", ErrInvalidInput, start.String())
	}
	return nil
}

// ExceedsCeiling reports whether start is above the advisory ceiling.
func (g *Generator) ExceedsCeiling(start *big.Int) bool {
	return g.ceiling != nil && start != nil && start.Cmp(g.ceiling) > 0
}

// Generate returns the trajectory of start. The loop stops exactly when the
// current value equals 1. When a step bound is set and exhausted, a
// *NonTerminatingError is returned instead.
func (g *Generator) Generate(ctx context.Context, start *big.Int) (Trajectory, error) {
	if err := g.Validate(start); err != nil {
		return nil, err
	}
	if g.ExceedsCeiling(start) && g.advisor != nil {
		g.advisor(Advisory{Start: new(big.Int).Set(start), Ceiling: g.Ceiling()})
	}

	n := new(big.Int).Set(start)
	traj := Trajectory{n}

	for steps := 0; n.Cmp(one) != 0; steps++ {
		if steps%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		if g.maxSteps > 0 && steps >= g.maxSteps {
			return nil, &NonTerminatingError{
				Start:   new(big.Int).Set(start),
				Steps:   steps,
				Last:    new(big.Int).Set(n),
				Wrapped: ErrNonTerminating,
			}
		}

		n = Next(new(big.Int), n)
		traj = append(traj, n)
	}

	return traj, nil
}

// Generate runs a default Generator without cancellation.
func Generate(start *big.Int) (Trajectory, error) {
	return NewGenerator().Generate(context.Background(), start)
}
