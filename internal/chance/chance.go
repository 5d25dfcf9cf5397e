// Package chance is the single source of randomness for a game session.
//
// Every probabilistic rule draws from a Source so that tests and scripted
// runs can replace the generator with a fixed sequence.
package chance

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source draws uniform random values. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// New returns a generator seeded with seed, or with a fresh seed from
// crypto/rand when seed is 0. The seed actually used is returned so it can
// be logged and the run reproduced.
func New(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var err error
		seed, err = NewSeed()
		if err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Roll reports whether an event with probability p happens.
func Roll(src Source, p float64) bool {
	return src.Float64() < p
}

// Between returns a uniform integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}
