package rng

import (
	"math"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"abc", (97*31+98)*31 + 99},
	}

	for _, tc := range tests {
		if got := Hash(tc.input); got != tc.want {
			t.Errorf("Hash(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestHashNeverNegativeOverflow(t *testing.T) {
	// Long strings overflow int32 many times over; the result must still be stable
	s := "0,0,0,a-fairly-long-salt-that-overflows-the-rolling-hash-repeatedly"
	first := Hash(s)
	for i := 0; i < 5; i++ {
		if got := Hash(s); got != first {
			t.Fatalf("Hash not stable: %d vs %d", got, first)
		}
	}
	if first > math.MaxInt32+1 {
		t.Errorf("Hash(%q) = %d, exceeds absolute int32 range", s, first)
	}
}

func TestSeedSaltsDiffer(t *testing.T) {
	a := Seed(3, 4, 0, "name")
	b := Seed(3, 4, 0, "economy")
	if a == b {
		t.Errorf("Seed with different salts collided: %d", a)
	}
	if Seed(3, 4, 0, "name") != a {
		t.Error("Seed is not deterministic")
	}
}

func TestLCGKnownValues(t *testing.T) {
	l := NewLCG(0)
	got := l.Next()
	want := 1013904223.0 / 4294967296.0
	if got != want {
		t.Errorf("LCG(0).Next() = %v, want %v", got, want)
	}

	l = NewLCG(1)
	got = l.Next()
	want = 1015568748.0 / 4294967296.0
	if got != want {
		t.Errorf("LCG(1).Next() = %v, want %v", got, want)
	}
}

func TestHashMinInt32(t *testing.T) {
	// This string hashes to exactly math.MinInt32 before the absolute value
	if got := Hash("polygenelubricants"); got != 2147483648 {
		t.Errorf("Hash(polygenelubricants) = %d, want 2147483648", got)
	}
}

func TestMulberry32KnownValues(t *testing.T) {
	m := NewMulberry32(42)
	for i, want := range []float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099} {
		if got := m.Next(); got != want {
			t.Errorf("Mulberry32(42) draw %d = %v, want %v", i, got, want)
		}
	}
}

func TestSourcesDeterministicAndInRange(t *testing.T) {
	sources := map[string]func(uint32) Source{
		"mulberry32": func(s uint32) Source { return NewMulberry32(s) },
		"lcg":        func(s uint32) Source { return NewLCG(s) },
	}

	for name, mk := range sources {
		t.Run(name, func(t *testing.T) {
			a := mk(42)
			b := mk(42)
			for i := 0; i < 1000; i++ {
				va, vb := a.Next(), b.Next()
				if va != vb {
					t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
				}
				if va < 0 || va >= 1 {
					t.Fatalf("draw %d out of range: %v", i, va)
				}
			}
		})
	}
}

func TestMulberryAndLCGDiffer(t *testing.T) {
	if NewMulberry32(7).Next() == NewLCG(7).Next() {
		t.Error("Mulberry32 and LCG produced the same first value")
	}
}

func TestForCoordMatchesLCG(t *testing.T) {
	r := ForCoord(3, -4, 0, "room_content")
	src := NewLCG(Seed(3, -4, 0, "room_content"))
	for i := 0; i < 10; i++ {
		if got, want := r.Float(), src.Next(); got != want {
			t.Fatalf("draw %d = %v, want %v", i, got, want)
		}
	}
}

func TestRange(t *testing.T) {
	r := New(NewLCG(99))
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := r.Range(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("Range(-2, 2) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("Range(-2, 2) only produced %v", seen)
	}

	if got := r.Range(5, 5); got != 5 {
		t.Errorf("Range(5, 5) = %d, want 5", got)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := New(NewLCG(11))
	in := []string{"a", "b", "c", "d", "e", "f"}
	out := Shuffle(r, in)

	if len(out) != len(in) {
		t.Fatalf("Shuffle length = %d, want %d", len(out), len(in))
	}
	counts := make(map[string]int)
	for _, v := range out {
		counts[v]++
	}
	for _, v := range in {
		if counts[v] != 1 {
			t.Errorf("element %q appears %d times", v, counts[v])
		}
	}
	// Input must not be modified
	if in[0] != "a" || in[5] != "f" {
		t.Error("Shuffle modified its input")
	}
}

func TestWeightedIndexSkipsZeroWeights(t *testing.T) {
	r := New(NewLCG(5))
	for i := 0; i < 200; i++ {
		idx := r.WeightedIndex([]float64{0, 3, 0, 1})
		if idx != 1 && idx != 3 {
			t.Fatalf("WeightedIndex chose zero-weight index %d", idx)
		}
	}
	if idx := r.WeightedIndex([]float64{0, 0}); idx != -1 {
		t.Errorf("WeightedIndex with no weight = %d, want -1", idx)
	}
}

func TestWeightedSelectWithoutReplacement(t *testing.T) {
	entries := []Weighted{
		{ID: "wolf", Weight: 5},
		{ID: "bear", Weight: 2},
		{ID: "boar", Weight: 3},
	}

	r := New(NewLCG(123))
	got := r.WeightedSelectWithoutReplacement(entries, 2)
	if len(got) != 2 {
		t.Fatalf("selected %d ids, want 2", len(got))
	}
	if got[0] == got[1] {
		t.Errorf("selected duplicate id %q", got[0])
	}

	// Asking for more than the pool returns every entry exactly once
	all := New(NewLCG(123)).WeightedSelectWithoutReplacement(entries, 10)
	if len(all) != 3 {
		t.Errorf("selected %d ids from a pool of 3", len(all))
	}

	// Same seed, same draws
	again := New(NewLCG(123)).WeightedSelectWithoutReplacement(entries, 2)
	if again[0] != got[0] || again[1] != got[1] {
		t.Errorf("selection not deterministic: %v vs %v", got, again)
	}

	// Source entries untouched
	if len(entries) != 3 || entries[0].ID != "wolf" {
		t.Error("WeightedSelectWithoutReplacement modified its input")
	}
}
