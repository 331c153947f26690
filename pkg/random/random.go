// Package random provides a seedable, goroutine-safe random source used to
// seed new chat threads.
package random

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ThreadSafeRandom is a PCG generator guarded by a mutex.
type ThreadSafeRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ types.RandomSource = (*ThreadSafeRandom)(nil)

// New returns a deterministic source for the given seed.
func New(seed uint64) *ThreadSafeRandom {
	return &ThreadSafeRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a source seeded from the clock and the runtime generator.
func NewRandom() *ThreadSafeRandom {
	return New(uint64(time.Now().UnixNano()) ^ rand.Uint64())
}

// Next returns a non-negative int in [0, MaxInt32).
func (r *ThreadSafeRandom) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(math.MaxInt32)
}
