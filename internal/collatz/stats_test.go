package collatz_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collatzlab/internal/collatz"
)

func positions(terms []collatz.Term) []int {
	out := make([]int, len(terms))
	for i, t := range terms {
		out[i] = t.Position
	}
	return out
}

func values(terms []collatz.Term) []int64 {
	out := make([]int64, len(terms))
	for i, t := range terms {
		out[i] = t.Value.Int64()
	}
	return out
}

var _ = Describe("Summarize", func() {
	var traj27 collatz.Trajectory

	BeforeEach(func() {
		var err error
		traj27, err = collatz.Generate(big.NewInt(27))
		Expect(err).NotTo(HaveOccurred())
	})

	It("numbers head and tail terms by absolute position", func() {
		s, err := collatz.Summarize(traj27, 5, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Length).To(Equal(112))
		Expect(positions(s.Head)).To(Equal([]int{1, 2, 3, 4, 5}))
		Expect(values(s.Head)).To(Equal([]int64{27, 82, 41, 124, 62}))
		Expect(positions(s.Tail)).To(Equal([]int{108, 109, 110, 111, 112}))
		Expect(values(s.Tail)).To(Equal([]int64{16, 8, 4, 2, 1}))
	})

	It("reports maximum, parity and stopping time", func() {
		s, err := collatz.Summarize(traj27, 5, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Max.Int64()).To(Equal(int64(9232)))
		Expect(traj27[s.MaxPosition-1].Int64()).To(Equal(int64(9232)))
		Expect(s.Evens).To(Equal(70))
		Expect(s.Odds).To(Equal(42))
		Expect(s.StoppingTime).To(Equal(96))
		Expect(s.Steps).To(Equal(111))
	})

	It("clamps windows larger than the trajectory", func() {
		traj, err := collatz.Generate(big.NewInt(2))
		Expect(err).NotTo(HaveOccurred())
		s, err := collatz.Summarize(traj, 5, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(positions(s.Head)).To(Equal([]int{1, 2}))
		Expect(positions(s.Tail)).To(Equal([]int{1, 2}))
		Expect(s.StoppingTime).To(Equal(1))
	})

	It("allows empty windows", func() {
		s, err := collatz.Summarize(traj27, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Head).To(BeEmpty())
		Expect(s.Tail).To(BeEmpty())
	})

	It("compares huge values exactly", func() {
		big1 := mustBig("100000000000000000000000000001")
		big2 := mustBig("100000000000000000000000000000")
		s, err := collatz.Summarize(collatz.Trajectory{big2, big1, big.NewInt(1)}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Max.Cmp(big1)).To(BeZero())
		Expect(s.MaxPosition).To(Equal(2))
	})

	It("rejects an empty trajectory", func() {
		_, err := collatz.Summarize(nil, 5, 5)
		Expect(err).To(MatchError(collatz.ErrInvalidInput))
	})

	It("rejects negative windows", func() {
		_, err := collatz.Summarize(traj27, -1, 5)
		Expect(err).To(MatchError(collatz.ErrInvalidInput))
	})
})
