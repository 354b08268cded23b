package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

const (
	idMin = 1000
	idMax = 9999

	DefaultIDAttempts = 10
)

var ErrIDSpaceExhausted = errors.New("could not find a free identifier")

// ExistsFunc reports whether a candidate identifier is already taken.
type ExistsFunc func(ctx context.Context, id int) (bool, error)

// IDGenerator assigns short human-facing ids by drawing uniformly from the
// 4-digit space and probing the store for collisions. The caller supplies
// the random source, so tests can make the draws deterministic.
type IDGenerator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	attempts int
}

func NewIDGenerator(src rand.Source, attempts int) *IDGenerator {
	if attempts <= 0 {
		attempts = DefaultIDAttempts
	}
	return &IDGenerator{
		rng:      rand.New(src),
		attempts: attempts,
	}
}

// Generate returns the first drawn id with no collision. Once the attempt
// budget is spent it fails with ErrIDSpaceExhausted; it never falls back to
// returning a duplicate.
func (g *IDGenerator) Generate(ctx context.Context, exists ExistsFunc) (int, error) {
	for i := 0; i < g.attempts; i++ {
		g.mu.Lock()
		id := idMin + g.rng.Intn(idMax-idMin+1)
		g.mu.Unlock()

		taken, err := exists(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("probe id %d: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w after %d attempts", ErrIDSpaceExhausted, g.attempts)
}
