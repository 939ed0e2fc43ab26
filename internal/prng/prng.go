// Package prng is the engine's only source of randomness. Every replica of a
// game drives identical generator instances through identical call sequences,
// so any output here is a pure function of (seed, call index). Nothing in this
// package may read the clock or iterate a Go map.
package prng

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Seed offsets keep subsystems that share a base session hash on
// decorrelated streams.
const (
	OffsetBots    = 101
	OffsetNations = 102
	OffsetNames   = 103
)

// Rand is a splitmix64 generator.
type Rand struct {
	state uint64
}

func New(seed uint64) *Rand {
	return &Rand{state: seed}
}

func (r *Rand) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// NextInt returns a value in [min, maxExclusive). min==maxExclusive returns min.
func (r *Rand) NextInt(min, maxExclusive int) int {
	if maxExclusive <= min {
		return min
	}
	span := uint64(maxExclusive - min)
	return min + int(r.next()%span)
}

// NextFloat returns a value in [0, 1) with 53 bits of precision.
func (r *Rand) NextFloat() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Chance returns true with probability 1/n. n <= 1 is always true.
func (r *Rand) Chance(n int) bool {
	if n <= 1 {
		return true
	}
	return r.NextInt(0, n) == 0
}

// NextID derives a short pseudo-unique identifier from generator state.
func (r *Rand) NextID() string {
	return fmt.Sprintf("%08x", uint32(r.next()))
}

// RandElement picks a uniform element of s. Panics on an empty slice, since
// callers are expected to have checked; an empty pick is a programmer error.
func RandElement[T any](r *Rand, s []T) T {
	if len(s) == 0 {
		panic("prng: RandElement on empty slice")
	}
	return s[r.NextInt(0, len(s))]
}

// RandFromSet picks a uniform element of an unordered set. The keys are
// sorted before sampling so the pick never depends on map iteration order.
func RandFromSet[T constraints.Ordered](r *Rand, set map[T]struct{}) T {
	if len(set) == 0 {
		panic("prng: RandFromSet on empty set")
	}
	keys := make([]T, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys[r.NextInt(0, len(keys))]
}

// SimHash maps a session identifier to a base seed. Subsystems sharing one
// session add a fixed offset so their streams stay decorrelated.
func SimHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
