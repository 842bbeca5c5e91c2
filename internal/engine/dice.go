// Package engine holds the concurrency primitives of a simulation run:
// the shared random source and the zombie pool.
package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source is the randomness provider for die rolls.
//
// Implementations MUST be safe for concurrent use: every survivor worker
// draws from the same source.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// lockedSource serializes access to one seeded generator. All workers
// share it, so a fixed seed fixes the sequence of rolls but not which
// worker receives which roll.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a concurrency-safe source seeded with seed.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- game dice
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// D100 rolls a percentile die in [1, 100].
func D100(src Source) int {
	return rollDie(src, 100)
}

// rollDie rolls a die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// Script replays fixed draws in order, then repeats Fallback forever.
// It is a test helper that dictates exact die rolls.
type Script struct {
	mu       sync.Mutex
	values   []int
	pos      int
	Fallback int
}

// NewScript returns a script of raw Intn results.
func NewScript(values ...int) *Script {
	return &Script{values: append([]int(nil), values...)}
}

// ScriptD100 returns a script producing the given d100 faces (1..100).
// Exhausted scripts keep rolling 100, which misses every check.
func ScriptD100(rolls ...int) *Script {
	values := make([]int, len(rolls))
	for i, r := range rolls {
		values[i] = r - 1
	}
	return &Script{values: values, Fallback: 99}
}

// Intn returns the next scripted value, clamped into [0, n).
func (s *Script) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.Fallback
	if s.pos < len(s.values) {
		v = s.values[s.pos]
		s.pos++
	}
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Used reports how many scripted values have been consumed.
func (s *Script) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
