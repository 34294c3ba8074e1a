package collatz_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCollatz(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Collatz Suite")
}
