// Package rng provides the deterministic random sources used by every
// generator. Nothing in this module draws from math/rand or crypto/rand:
// all randomness is a pure function of a seed.
package rng

import (
	"fmt"
	"math"
)

// Source produces floats in [0, 1).
type Source interface {
	Next() float64
}

// Hash returns the rolling string hash (hash = hash*31 + char) of s,
// truncated to 32 bits and made non-negative.
func Hash(s string) uint32 {
	var h int32
	for _, c := range utf16Units(s) {
		h = h*31 + int32(c)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return uint32(abs)
}

// Seed derives the seed for one independent random stream at a coordinate.
func Seed(x, y, z int, salt string) uint32 {
	return Hash(fmt.Sprintf("%d,%d,%d,%s", x, y, z, salt))
}

// utf16Units mirrors charCode iteration so non-ASCII salts hash the same
// way regardless of how the string was produced.
func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

// Mulberry32 is the xor-shift/multiply generator used by the template engine.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a generator seeded with seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next returns the next float in [0, 1).
func (m *Mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// LCG is the linear congruential generator used by the generation services.
type LCG struct {
	state uint32
}

// NewLCG creates a generator seeded with seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next returns the next float in [0, 1).
func (l *LCG) Next() float64 {
	l.state = l.state*1664525 + 1013904223
	return float64(l.state) / 4294967296.0
}

// Rand wraps a Source with the draw helpers generators need.
type Rand struct {
	src Source
}

// New wraps src.
func New(src Source) *Rand {
	return &Rand{src: src}
}

// ForCoord returns an LCG-backed Rand for the given coordinate and salt.
func ForCoord(x, y, z int, salt string) *Rand {
	return New(NewLCG(Seed(x, y, z, salt)))
}

// Float returns the next float in [0, 1).
func (r *Rand) Float() float64 {
	return r.src.Next()
}

// Intn returns an int in [0, n). It returns 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(math.Floor(r.src.Next() * float64(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// Range returns an int in [min, max], inclusive on both ends.
func (r *Rand) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.src.Next() < p
}

// Pick returns a uniformly chosen element of items, or the zero value if
// items is empty.
func Pick[T any](r *Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Intn(len(items))]
}

// Shuffle returns a Fisher-Yates shuffled copy of items.
func Shuffle[T any](r *Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// WeightedIndex returns an index into weights chosen proportionally to the
// weights. Non-positive weights are never chosen. Returns -1 when the total
// weight is zero.
func (r *Rand) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := r.src.Next() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}

	// Float rounding can leave roll at ~0; fall back to the last positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// Weighted is an id paired with a selection weight.
type Weighted struct {
	ID     string  `yaml:"id"`
	Weight float64 `yaml:"weight"`
}

// WeightedPick returns the id of one weighted entry, or "" if none has weight.
func (r *Rand) WeightedPick(entries []Weighted) string {
	weights := make([]float64, len(entries))
	for i, e := range entries {
		weights[i] = e.Weight
	}
	idx := r.WeightedIndex(weights)
	if idx < 0 {
		return ""
	}
	return entries[idx].ID
}

// WeightedSelectWithoutReplacement draws up to count distinct ids. The total
// weight is recomputed from the shrinking pool on every draw.
func (r *Rand) WeightedSelectWithoutReplacement(entries []Weighted, count int) []string {
	pool := make([]Weighted, len(entries))
	copy(pool, entries)

	selected := make([]string, 0, count)
	for len(selected) < count && len(pool) > 0 {
		total := 0.0
		for _, e := range pool {
			total += e.Weight
		}
		if total <= 0 {
			break
		}

		roll := r.src.Next() * total
		chosen := len(pool) - 1
		for i, e := range pool {
			roll -= e.Weight
			if roll < 0 {
				chosen = i
				break
			}
		}

		selected = append(selected, pool[chosen].ID)
		pool = append(pool[:chosen], pool[chosen+1:]...)
	}
	return selected
}
