// Package random provides seed generation and the seeded RNG used by the
// simulation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Source is a seeded uniform float source. It satisfies the RNG
// collaborator of the transformation engine. Not safe for concurrent use.
type Source struct {
	seed int64
	r    *rand.Rand
}

// New creates a source for seed. A zero seed draws one from NewSeed.
func New(seed int64) (*Source, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}, nil
}

// Seed returns the seed, for reproducing a run.
func (s *Source) Seed() int64 { return s.seed }

// Float64 returns a uniform float in [0,1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// IntN returns a uniform int in [0,n).
func (s *Source) IntN(n int) int { return s.r.IntN(n) }
