// internal/domain/negotiation/random.go
package negotiation

import (
	"math/rand/v2"
	"sync"
)

// RandomSource draws uniform integers in [0, n)
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRandom uses the process-wide generator
func DefaultRandom() RandomSource {
	return globalRandom{}
}

type seededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom returns a reproducible source, safe for concurrent use
func NewSeededRandom(seed uint64) RandomSource {
	return &seededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *seededRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Sequence replays fixed draws in order and wraps around. Each value is
// reduced into [0, n). Intended for tests that need exact outcomes.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a Sequence over values
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++

	v %= n
	if v < 0 {
		v += n
	}
	return v
}
