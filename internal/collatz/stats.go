package collatz

import (
	"fmt"
	"math/big"
)

const (
	DefaultHead = 5
	DefaultTail = 5
)

// Term is a trajectory value with its 1-based position.
type Term struct {
	Position int
	Value    *big.Int
}

// Statistics is a read-only summary of a trajectory.
type Statistics struct {
	Start        *big.Int
	Length       int
	Steps        int
	Max          *big.Int
	MaxPosition  int
	StoppingTime int
	Evens        int
	Odds         int
	Head         []Term
	Tail         []Term
}

// Summarize derives statistics from t. head and tail are clamped to the
// trajectory length; tail positions are absolute (Length-len(Tail)+i).
func Summarize(t Trajectory, head, tail int) (*Statistics, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: empty trajectory", ErrInvalidInput)
	}
	if head < 0 || tail < 0 {
		return nil, fmt.Errorf("%w: head and tail must be non-negative, got %d and %d", ErrInvalidInput, head, tail)
	}

	n := len(t)
	head = min(head, n)
	tail = min(tail, n)

	s := &Statistics{
		Start:       t[0],
		Length:      n,
		Steps:       n - 1,
		Max:         t[0],
		MaxPosition: 1,
		Head:        make([]Term, 0, head),
		Tail:        make([]Term, 0, tail),
	}

	for i, v := range t {
		if v.Cmp(s.Max) > 0 {
			s.Max = v
			s.MaxPosition = i + 1
		}
		if IsEven(v) {
			s.Evens++
		} else {
			s.Odds++
		}
		if s.StoppingTime == 0 && i > 0 && v.Cmp(t[0]) < 0 {
			s.StoppingTime = i
		}
	}

	for i := 0; i < head; i++ {
		s.Head = append(s.Head, Term{Position: i + 1, Value: t[i]})
	}
	for i := n - tail; i < n; i++ {
		s.Tail = append(s.Tail, Term{Position: i + 1, Value: t[i]})
	}

	return s, nil
}
