package compare

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/san-kum/collatzlab/internal/collatz"
)

func TestCompareMatchesSingleRuns(t *testing.T) {
	c := New(nil, collatz.DefaultHead, collatz.DefaultTail)

	res, err := c.Compare(context.Background(), big.NewInt(6), big.NewInt(27))
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	if res.A.Stats.Length != 9 {
		t.Errorf("expected length 9 for 6, got %d", res.A.Stats.Length)
	}
	if res.A.Stats.Max.Int64() != 16 {
		t.Errorf("expected max 16 for 6, got %s", res.A.Stats.Max)
	}
	if res.B.Stats.Length != 112 {
		t.Errorf("expected length 112 for 27, got %d", res.B.Stats.Length)
	}
	if res.B.Stats.Max.Int64() != 9232 {
		t.Errorf("expected max 9232 for 27, got %s", res.B.Stats.Max)
	}

	single, err := collatz.Generate(big.NewInt(27))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !single.Equal(res.B.Trajectory) {
		t.Error("comparison trajectory differs from a single run")
	}

	if res.LengthDelta() != -103 {
		t.Errorf("expected length delta -103, got %d", res.LengthDelta())
	}
	if res.HigherPeak() != "b" {
		t.Errorf("expected b to peak higher, got %s", res.HigherPeak())
	}
}

func TestCompareOrderIndependent(t *testing.T) {
	c := New(nil, 3, 3)
	ab, err := c.Compare(context.Background(), big.NewInt(97), big.NewInt(871))
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	ba, err := c.Compare(context.Background(), big.NewInt(871), big.NewInt(97))
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	if !ab.A.Trajectory.Equal(ba.B.Trajectory) || !ab.B.Trajectory.Equal(ba.A.Trajectory) {
		t.Error("swapping arguments changed the trajectories")
	}
	if ab.LengthDelta() != -ba.LengthDelta() {
		t.Errorf("length deltas not symmetric: %d vs %d", ab.LengthDelta(), ba.LengthDelta())
	}
}

func TestCompareConcurrentCalls(t *testing.T) {
	c := New(nil, collatz.DefaultHead, collatz.DefaultTail)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = c.Compare(context.Background(), big.NewInt(27), big.NewInt(871))
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("run %d failed: %v", i, errs[i])
		}
		if !results[i].A.Trajectory.Equal(results[0].A.Trajectory) {
			t.Errorf("run %d differs", i)
		}
	}
}

func TestCompareInvalidInput(t *testing.T) {
	c := New(nil, 5, 5)

	tests := []struct {
		name string
		a, b *big.Int
	}{
		{"first below 2", big.NewInt(1), big.NewInt(27)},
		{"second below 2", big.NewInt(27), big.NewInt(0)},
		{"both invalid", big.NewInt(-3), big.NewInt(1)},
		{"nil", nil, big.NewInt(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compare(context.Background(), tt.a, tt.b)
			if !errors.Is(err, collatz.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCompareStepBound(t *testing.T) {
	c := New(collatz.NewGenerator(collatz.WithMaxSteps(20)), 5, 5)
	_, err := c.Compare(context.Background(), big.NewInt(6), big.NewInt(27))
	if !errors.Is(err, collatz.ErrNonTerminating) {
		t.Errorf("expected ErrNonTerminating, got %v", err)
	}
}

func TestAligned(t *testing.T) {
	c := New(nil, 5, 5)
	res, err := c.Compare(context.Background(), big.NewInt(2), big.NewInt(6))
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	pairs := res.Aligned()
	if len(pairs) != 9 {
		t.Fatalf("expected 9 pairs, got %d", len(pairs))
	}
	if pairs[1].A.Int64() != 1 || pairs[1].B.Int64() != 3 {
		t.Errorf("unexpected pair at step 1: %v %v", pairs[1].A, pairs[1].B)
	}
	if pairs[2].A != nil {
		t.Errorf("expected nil after the shorter trajectory ends, got %v", pairs[2].A)
	}
	if pairs[8].Step != 8 || pairs[8].B.Int64() != 1 {
		t.Errorf("unexpected last pair: %+v", pairs[8])
	}
}

func TestConfluence(t *testing.T) {
	tests := []struct {
		name       string
		a, b       int64
		value      int64
		posA, posB int
	}{
		{"six and twenty-seven", 6, 27, 10, 3, 106},
		{"contained start", 6, 3, 3, 2, 1},
		{"same start", 13, 13, 13, 1, 1},
		{"two inside three", 2, 3, 2, 1, 7},
	}

	c := New(nil, 5, 5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Compare(context.Background(), big.NewInt(tt.a), big.NewInt(tt.b))
			if err != nil {
				t.Fatalf("compare failed: %v", err)
			}
			conf := res.Confluence()
			if conf.Value == nil {
				t.Fatal("expected a confluence")
			}
			if conf.Value.Int64() != tt.value || conf.PositionA != tt.posA || conf.PositionB != tt.posB {
				t.Errorf("got %s at %d/%d, want %d at %d/%d",
					conf.Value, conf.PositionA, conf.PositionB, tt.value, tt.posA, tt.posB)
			}
		})
	}
}
