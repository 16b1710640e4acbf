package engine

import (
	"io"
	"math/rand"

	"github.com/google/uuid"
)

// Random is the randomness the engine consumes. Between returns a uniformly
// distributed integer in the inclusive range [lo, hi]; the Reader side feeds
// block identity generation.
type Random interface {
	io.Reader
	Between(lo, hi int) int
}

// SeededRandom is a Random backed by math/rand with a fixed seed.
type SeededRandom struct {
	rng *rand.Rand
}

// NewRandom creates a deterministic random source.
func NewRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// Between returns a random integer in [lo, hi].
func (r *SeededRandom) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// Read fills p with random bytes. It never fails.
func (r *SeededRandom) Read(p []byte) (int, error) {
	return r.rng.Read(p)
}

// newBlockID draws a version 4 UUID from the random source so identities are
// reproducible for a given seed.
func newBlockID(r Random) BlockID {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return BlockID(uuid.New())
	}
	return BlockID(id)
}
