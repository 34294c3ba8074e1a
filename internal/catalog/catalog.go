// Package catalog holds the canonical sample starts and random start draws.
package catalog

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrInvalidRange indicates a random draw ceiling below 2.
var ErrInvalidRange = errors.New("catalog: ceiling must be at least 2")

// Entry is a named canonical start value.
type Entry struct {
	Key   string
	Label string
	Value *big.Int
}

type sample struct {
	key, label, value string
}

var samples = []sample{
	{"1", "classic", "27"},
	{"2", "long", "97"},
	{"3", "extreme", "871"},
	{"4", "simple", "13"},
	{"5", "giant", "999999999999999999999"},
}

// Entries returns the catalog in key order. Values are fresh copies.
func Entries() []Entry {
	out := make([]Entry, len(samples))
	for i, s := range samples {
		out[i] = s.entry()
	}
	return out
}

// Lookup returns the entry with the given key or label.
func Lookup(name string) (Entry, bool) {
	for _, s := range samples {
		if s.key == name || s.label == name {
			return s.entry(), true
		}
	}
	return Entry{}, false
}

// Keys returns the entry keys in order.
func Keys() []string {
	keys := make([]string, len(samples))
	for i, s := range samples {
		keys[i] = s.key
	}
	return keys
}

func (s sample) entry() Entry {
	v, ok := new(big.Int).SetString(s.value, 10)
	if !ok {
		panic(fmt.Sprintf("catalog: bad sample value %q", s.value))
	}
	return Entry{Key: s.key, Label: s.label, Value: v}
}

// RandomStart draws a value uniformly from [2, ceiling] using src as the
// randomness source. A nil src uses crypto/rand.
func RandomStart(ceiling *big.Int, src io.Reader) (*big.Int, error) {
	if ceiling == nil || ceiling.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidRange, ceiling)
	}
	if src == nil {
		src = rand.Reader
	}

	span := new(big.Int).Sub(ceiling, big.NewInt(1))
	n, err := uniform(src, span)
	if err != nil {
		return nil, fmt.Errorf("catalog: draw random start: %w", err)
	}
	return n.Add(n, big.NewInt(2)), nil
}

// uniform returns a value in [0, span) by rejection sampling the smallest
// bit width that covers span, reading only from src.
func uniform(src io.Reader, span *big.Int) (*big.Int, error) {
	bits := new(big.Int).Sub(span, big.NewInt(1)).BitLen()
	n := new(big.Int)
	if bits == 0 {
		return n, nil
	}

	buf := make([]byte, (bits+7)/8)
	mask := byte(0xff)
	if r := bits % 8; r != 0 {
		mask = byte(1<<r) - 1
	}
	for {
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		n.SetBytes(buf)
		if n.Cmp(span) < 0 {
			return n, nil
		}
	}
}
