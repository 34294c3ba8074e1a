package collatz

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

var log10Of2 = math.Log10(2)

// FormatGrouped renders x in decimal with comma thousands separators,
// e.g. 999,999,999,999,999,999,999. The digits are exact.
func FormatGrouped(x *big.Int) string {
	if x == nil {
		return "<nil>"
	}
	digits := x.String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.Grow(len(sign) + len(digits) + len(digits)/3)
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseStart parses a decimal integer, ignoring commas, underscores and
// spaces used as digit grouping. Range checks are left to ValidateStart.
func ParseStart(text string) (*big.Int, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ', '\t':
			return -1
		}
		return r
	}, text)

	digits := strings.TrimPrefix(strings.TrimPrefix(cleaned, "-"), "+")
	if digits == "" {
		return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidInput, text)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidInput, text)
		}
	}

	n, ok := new(big.Int).SetString(cleaned, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidInput, text)
	}
	return n, nil
}

// Log10 returns log10(x) for x > 0 without overflowing float64 on values
// with thousands of digits. It returns -Inf for x <= 0.
func Log10(x *big.Int) float64 {
	if x == nil || x.Sign() <= 0 {
		return math.Inf(-1)
	}
	mant := new(big.Float)
	exp := new(big.Float).SetInt(x).MantExp(mant)
	m, _ := mant.Float64()
	return math.Log10(m) + float64(exp)*log10Of2
}
