package collatz

import (
	"math/big"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Trajectory is the ordered list of values from a start value down to 1.
type Trajectory []*big.Int

// Start returns the first value, or nil for an empty trajectory.
func (t Trajectory) Start() *big.Int {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Len returns the number of values, including the start and the final 1.
func (t Trajectory) Len() int { return len(t) }

// Steps returns the number of Collatz steps taken.
func (t Trajectory) Steps() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// Clone returns a deep copy.
func (t Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(t))
	for i, v := range t {
		c[i] = new(big.Int).Set(v)
	}
	return c
}

// Equal reports whether both trajectories hold the same values in order.
func (t Trajectory) Equal(other Trajectory) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i].Cmp(other[i]) != 0 {
			return false
		}
	}
	return true
}

// Validate checks every trajectory invariant: a start of at least 2, each
// step following the Collatz rule and a single 1 as the final element.
func (t Trajectory) Validate() error {
	if len(t) == 0 {
		return &InvalidTrajectoryError{Reason: "empty"}
	}
	for i, v := range t {
		if v == nil {
			return &InvalidTrajectoryError{Position: i + 1, Reason: "missing value"}
		}
	}
	if t[0].Cmp(two) < 0 {
		return &InvalidTrajectoryError{Position: 1, Reason: "start must exceed 1, got " + t[0].String()}
	}
	next := new(big.Int)
	for i := 0; i < len(t)-1; i++ {
		if t[i].Cmp(one) == 0 {
			return &InvalidTrajectoryError{Position: i + 1, Reason: "1 has a successor"}
		}
		Next(next, t[i])
		if next.Cmp(t[i+1]) != 0 {
			return &InvalidTrajectoryError{
				Position: i + 2,
				Reason:   "expected " + next.String() + ", got " + t[i+1].String(),
			}
		}
	}
	if last := t[len(t)-1]; last.Cmp(one) != 0 {
		return &InvalidTrajectoryError{Position: len(t), Reason: "does not end at 1, got " + last.String()}
	}
	return nil
}

// Strings returns the exact decimal text of every value.
func (t Trajectory) Strings() []string {
	out := make([]string, len(t))
	for i, v := range t {
		out[i] = v.String()
	}
	return out
}

// Floats returns float64 approximations for plotting. Values beyond float64
// range become +Inf; use [Trajectory.Log10] for those.
func (t Trajectory) Floats() []float64 {
	out := make([]float64, len(t))
	f := new(big.Float)
	for i, v := range t {
		out[i], _ = f.SetInt(v).Float64()
	}
	return out
}

// Log10 returns the base-10 logarithm of every value.
func (t Trajectory) Log10() []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = Log10(v)
	}
	return out
}

// Next stores the Collatz successor of n in z and returns z.
// z and n may be the same value.
func Next(z, n *big.Int) *big.Int {
	if n.Bit(0) == 0 {
		return z.Rsh(n, 1)
	}
	z.Mul(n, three)
	return z.Add(z, one)
}

// IsEven reports whether n is even.
func IsEven(n *big.Int) bool {
	return n.Bit(0) == 0
}
