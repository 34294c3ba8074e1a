package catalog

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestEntries(t *testing.T) {
	entries := Entries()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	want := []struct {
		key, label, value string
	}{
		{"1", "classic", "27"},
		{"2", "long", "97"},
		{"3", "extreme", "871"},
		{"4", "simple", "13"},
		{"5", "giant", "999999999999999999999"},
	}
	for i, w := range want {
		e := entries[i]
		if e.Key != w.key || e.Label != w.label || e.Value.String() != w.value {
			t.Errorf("entry %d: got %s/%s/%s, want %s/%s/%s", i, e.Key, e.Label, e.Value, w.key, w.label, w.value)
		}
	}
}

func TestEntriesAreCopies(t *testing.T) {
	first := Entries()
	first[0].Value.SetInt64(1)

	second := Entries()
	if second[0].Value.Int64() != 27 {
		t.Errorf("catalog mutated through returned entry: %s", second[0].Value)
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("3")
	if !ok || e.Value.Int64() != 871 {
		t.Errorf("lookup by key failed: %v %v", e, ok)
	}

	e, ok = Lookup("giant")
	if !ok || e.Key != "5" {
		t.Errorf("lookup by label failed: %v %v", e, ok)
	}

	if _, ok := Lookup("nonexistent"); ok {
		t.Error("expected lookup miss")
	}
}

func TestRandomStartSingleValueRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		n, err := RandomStart(big.NewInt(2), nil)
		if err != nil {
			t.Fatalf("random start failed: %v", err)
		}
		if n.Int64() != 2 {
			t.Fatalf("expected 2, got %s", n)
		}
	}
}

func TestRandomStartBounds(t *testing.T) {
	ceiling := big.NewInt(10)
	src := SeededSource(42)
	seen := make(map[int64]bool)

	for i := 0; i < 2000; i++ {
		n, err := RandomStart(ceiling, src)
		if err != nil {
			t.Fatalf("random start failed: %v", err)
		}
		if n.Cmp(big.NewInt(2)) < 0 || n.Cmp(ceiling) > 0 {
			t.Fatalf("value %s outside [2, 10]", n)
		}
		seen[n.Int64()] = true
	}

	for v := int64(2); v <= 10; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn", v)
		}
	}
}

func TestRandomStartHugeCeiling(t *testing.T) {
	ceiling, _ := new(big.Int).SetString("1000000000000000000000", 10)
	n, err := RandomStart(ceiling, SeededSource(7))
	if err != nil {
		t.Fatalf("random start failed: %v", err)
	}
	if n.Cmp(big.NewInt(2)) < 0 || n.Cmp(ceiling) > 0 {
		t.Errorf("value %s outside range", n)
	}
}

func TestRandomStartSeededIsReproducible(t *testing.T) {
	ceiling := big.NewInt(1_000_000)
	a, _ := RandomStart(ceiling, SeededSource(99))
	b, _ := RandomStart(ceiling, SeededSource(99))
	if a.Cmp(b) != 0 {
		t.Errorf("same seed gave %s and %s", a, b)
	}
}

func TestRandomStartInvalidRange(t *testing.T) {
	tests := []struct {
		name    string
		ceiling *big.Int
	}{
		{"nil", nil},
		{"one", big.NewInt(1)},
		{"zero", big.NewInt(0)},
		{"negative", big.NewInt(-10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RandomStart(tt.ceiling, nil)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestRandomStartSourceFailure(t *testing.T) {
	_, err := RandomStart(big.NewInt(1000), bytes.NewReader(nil))
	if err == nil {
		t.Error("expected error from exhausted source")
	}
	if errors.Is(err, ErrInvalidRange) {
		t.Error("source failure must not look like a range error")
	}
}
