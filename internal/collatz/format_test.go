package collatz_test

import (
	"math"
	"math/big"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collatzlab/internal/collatz"
)

var _ = Describe("FormatGrouped", func() {
	DescribeTable("groups digits by three",
		func(in, want string) {
			Expect(collatz.FormatGrouped(mustBig(in))).To(Equal(want))
		},
		Entry("short", "27", "27"),
		Entry("three digits", "871", "871"),
		Entry("four digits", "9232", "9,232"),
		Entry("six digits", "100000", "100,000"),
		Entry("negative", "-1234567", "-1,234,567"),
		Entry("giant", "999999999999999999999", "999,999,999,999,999,999,999"),
	)
})

var _ = Describe("ParseStart", func() {
	DescribeTable("accepts grouped decimal text",
		func(in, want string) {
			n, err := collatz.ParseStart(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.String()).To(Equal(want))
		},
		Entry("plain", "27", "27"),
		Entry("commas", "1,000,000", "1000000"),
		Entry("spaces", "1 000 000", "1000000"),
		Entry("underscores", "10_000", "10000"),
		Entry("huge", "999,999,999,999,999,999,999", "999999999999999999999"),
		Entry("negative", "-5", "-5"),
	)

	DescribeTable("rejects non-integers",
		func(in string) {
			_, err := collatz.ParseStart(in)
			Expect(err).To(MatchError(collatz.ErrInvalidInput))
		},
		Entry("empty", ""),
		Entry("only separators", " , "),
		Entry("letters", "12a"),
		Entry("float", "1.5"),
		Entry("hex", "0x1f"),
	)
})

var _ = Describe("Log10", func() {
	It("matches math.Log10 for small values", func() {
		Expect(collatz.Log10(big.NewInt(1))).To(BeNumerically("~", 0, 1e-12))
		Expect(collatz.Log10(big.NewInt(9232))).To(BeNumerically("~", math.Log10(9232), 1e-12))
	})

	It("stays finite beyond float64 range", func() {
		huge := mustBig("1" + strings.Repeat("0", 400))
		Expect(collatz.Log10(huge)).To(BeNumerically("~", 400, 1e-9))
	})

	It("returns -Inf for non-positive values", func() {
		Expect(math.IsInf(collatz.Log10(big.NewInt(0)), -1)).To(BeTrue())
	})
})
