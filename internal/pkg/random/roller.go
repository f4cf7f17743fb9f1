// Package random provides deterministic dice rollers and seed helpers.
//
// SeededRoller satisfies rpg-toolkit's dice.Roller. Given the same seed and
// the same sequence of calls it always produces the same faces, which makes
// simulations reproducible from the command line and in tests.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// SeededRoller rolls dice from a seeded math/rand source
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeededRoller creates a roller whose sequence is fixed by seed
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- reproducibility, not secrecy
	}
}

// Roll returns a face in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rng.Intn(size) + 1, nil
}

// RollN returns count faces in [1, size]
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 1 {
		return nil, errors.InvalidArgumentf("dice count must be positive: %d", count)
	}
	if size < 1 {
		return nil, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	faces := make([]int, count)
	for i := range faces {
		faces[i] = r.rng.Intn(size) + 1
	}
	return faces, nil
}

// NewSeed generates a seed from crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "failed to read random seed")
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil // #nosec G115 -- any bit pattern is a valid seed
}
