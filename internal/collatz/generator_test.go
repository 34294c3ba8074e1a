package collatz_test

import (
	"context"
	"errors"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collatzlab/internal/collatz"
)

func ints(vals ...int64) collatz.Trajectory {
	t := make(collatz.Trajectory, len(vals))
	for i, v := range vals {
		t[i] = big.NewInt(v)
	}
	return t
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	Expect(ok).To(BeTrue(), "bad literal %s", s)
	return n
}

var _ = Describe("Generator", func() {
	var (
		ctx context.Context
		gen *collatz.Generator
	)

	BeforeEach(func() {
		ctx = context.Background()
		gen = collatz.NewGenerator()
	})

	DescribeTable("known trajectories",
		func(start int64, want collatz.Trajectory) {
			traj, err := gen.Generate(ctx, big.NewInt(start))
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Equal(want)).To(BeTrue(), "got %v", traj.Strings())
		},
		Entry("smallest start", int64(2), ints(2, 1)),
		Entry("six", int64(6), ints(6, 3, 10, 5, 16, 8, 4, 2, 1)),
		Entry("power of two", int64(16), ints(16, 8, 4, 2, 1)),
	)

	It("generates the 112-term trajectory of 27 peaking at 9232", func() {
		traj, err := gen.Generate(ctx, big.NewInt(27))
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(112))
		Expect(traj.Steps()).To(Equal(111))
		Expect(traj.Start().Int64()).To(Equal(int64(27)))
		Expect(traj[len(traj)-1].Int64()).To(Equal(int64(1)))

		stats, err := collatz.Summarize(traj, collatz.DefaultHead, collatz.DefaultTail)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Max.Int64()).To(Equal(int64(9232)))
	})

	It("terminates with valid trajectories for every start up to 3000", func() {
		for n := int64(2); n <= 3000; n++ {
			traj, err := gen.Generate(ctx, big.NewInt(n))
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Start().Int64()).To(Equal(n))
			Expect(traj[len(traj)-1].Int64()).To(Equal(int64(1)))
			Expect(traj.Validate()).To(Succeed())
		}
	})

	It("follows the step rule and never continues past 1", func() {
		traj, err := gen.Generate(ctx, big.NewInt(871))
		Expect(err).NotTo(HaveOccurred())
		ones := 0
		for i, v := range traj {
			if v.Cmp(big.NewInt(1)) == 0 {
				ones++
				Expect(i).To(Equal(len(traj) - 1))
				continue
			}
			next := traj[i+1]
			if v.Bit(0) == 0 {
				Expect(next.Cmp(new(big.Int).Rsh(v, 1))).To(BeZero())
			} else {
				want := new(big.Int).Mul(v, big.NewInt(3))
				want.Add(want, big.NewInt(1))
				Expect(next.Cmp(want)).To(BeZero())
			}
		}
		Expect(ones).To(Equal(1))
	})

	DescribeTable("rejects starts below 2",
		func(start int64) {
			_, err := gen.Generate(ctx, big.NewInt(start))
			Expect(err).To(MatchError(collatz.ErrInvalidInput))
		},
		Entry("one", int64(1)),
		Entry("zero", int64(0)),
		Entry("negative", int64(-7)),
	)

	It("rejects a nil start", func() {
		_, err := gen.Generate(ctx, nil)
		Expect(errors.Is(err, collatz.ErrInvalidInput)).To(BeTrue())
	})

	It("does not mutate the caller's start value", func() {
		start := big.NewInt(27)
		traj, err := gen.Generate(ctx, start)
		Expect(err).NotTo(HaveOccurred())
		Expect(start.Int64()).To(Equal(int64(27)))
		traj[0].SetInt64(99)
		Expect(start.Int64()).To(Equal(int64(27)))
	})

	Context("with starts above the ceiling", func() {
		It("still generates and sends one advisory", func() {
			var got []collatz.Advisory
			gen = collatz.NewGenerator(
				collatz.WithCeiling(big.NewInt(100)),
				collatz.WithAdvisor(func(a collatz.Advisory) { got = append(got, a) }),
			)

			traj, err := gen.Generate(ctx, big.NewInt(101))
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Validate()).To(Succeed())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Start.Int64()).To(Equal(int64(101)))
			Expect(got[0].Ceiling.Int64()).To(Equal(int64(100)))
		})

		It("stays quiet at the ceiling itself", func() {
			calls := 0
			gen = collatz.NewGenerator(
				collatz.WithCeiling(big.NewInt(100)),
				collatz.WithAdvisor(func(collatz.Advisory) { calls++ }),
			)
			_, err := gen.Generate(ctx, big.NewInt(100))
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(BeZero())
		})

		It("handles 21-digit starts exactly", func() {
			start := mustBig("999999999999999999999")
			traj, err := gen.Generate(ctx, start)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Start().Cmp(start)).To(BeZero())
			Expect(traj.Validate()).To(Succeed())
			Expect(traj[1].String()).To(Equal("2999999999999999999998"))
		})
	})

	Context("with a step bound", func() {
		It("reports non-termination with context", func() {
			gen = collatz.NewGenerator(collatz.WithMaxSteps(10))
			_, err := gen.Generate(ctx, big.NewInt(27))
			Expect(err).To(MatchError(collatz.ErrNonTerminating))

			var nt *collatz.NonTerminatingError
			Expect(errors.As(err, &nt)).To(BeTrue())
			Expect(nt.Steps).To(Equal(10))
			Expect(nt.Start.Int64()).To(Equal(int64(27)))
			Expect(nt.Last.Int64()).To(Equal(int64(214)))
		})

		It("allows a trajectory that needs exactly the bound", func() {
			gen = collatz.NewGenerator(collatz.WithMaxSteps(8))
			traj, err := gen.Generate(ctx, big.NewInt(6))
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Steps()).To(Equal(8))
		})
	})

	It("stops on a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := gen.Generate(cctx, big.NewInt(27))
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Trajectory.Validate", func() {
	DescribeTable("rejects broken trajectories",
		func(t collatz.Trajectory, position int) {
			err := t.Validate()
			Expect(err).To(MatchError(collatz.ErrInvalidTrajectory))
			var ite *collatz.InvalidTrajectoryError
			Expect(errors.As(err, &ite)).To(BeTrue())
			Expect(ite.Position).To(Equal(position))
		},
		Entry("empty", collatz.Trajectory{}, 0),
		Entry("start of one", ints(1), 1),
		Entry("wrong step", ints(6, 3, 11, 5, 16, 8, 4, 2, 1), 3),
		Entry("stops early", ints(6, 3, 10), 3),
		Entry("continues past 1", ints(2, 1, 4), 2),
	)
})
