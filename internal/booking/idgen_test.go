package booking

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReturnsDistinctIdsInRange(t *testing.T) {
	gen := NewIDGenerator(rand.NewSource(42), DefaultIDAttempts)

	// The exists probe consults every previously assigned id, the way a
	// repository would, so the generator must retry past its own history.
	assigned := map[int]bool{}
	exists := func(ctx context.Context, id int) (bool, error) {
		return assigned[id], nil
	}

	for i := 0; i < 500; i++ {
		id, err := gen.Generate(context.Background(), exists)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, id, 1000)
		assert.LessOrEqual(t, id, 9999)
		assert.False(t, assigned[id], "id %d assigned twice", id)
		assigned[id] = true
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	gen := NewIDGenerator(rand.NewSource(1), DefaultIDAttempts)

	probes := 0
	exists := func(ctx context.Context, id int) (bool, error) {
		probes++
		return probes == 1, nil // first draw collides
	}

	id, err := gen.Generate(context.Background(), exists)
	require.NoError(t, err)
	assert.Equal(t, 2, probes)
	assert.GreaterOrEqual(t, id, 1000)
	assert.LessOrEqual(t, id, 9999)
}

func TestGenerateExhaustsAfterBudget(t *testing.T) {
	gen := NewIDGenerator(rand.NewSource(1), DefaultIDAttempts)

	probes := 0
	alwaysTaken := func(ctx context.Context, id int) (bool, error) {
		probes++
		return true, nil
	}

	_, err := gen.Generate(context.Background(), alwaysTaken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	assert.Equal(t, DefaultIDAttempts, probes)
}

func TestGenerateCustomBudget(t *testing.T) {
	gen := NewIDGenerator(rand.NewSource(1), 3)

	probes := 0
	alwaysTaken := func(ctx context.Context, id int) (bool, error) {
		probes++
		return true, nil
	}

	_, err := gen.Generate(context.Background(), alwaysTaken)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	assert.Equal(t, 3, probes)
}

func TestGenerateDefaultsNonPositiveBudget(t *testing.T) {
	gen := NewIDGenerator(rand.NewSource(1), 0)

	probes := 0
	alwaysTaken := func(ctx context.Context, id int) (bool, error) {
		probes++
		return true, nil
	}

	_, err := gen.Generate(context.Background(), alwaysTaken)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	assert.Equal(t, DefaultIDAttempts, probes)
}

func TestGeneratePropagatesProbeError(t *testing.T) {
	gen := NewIDGenerator(rand.NewSource(1), DefaultIDAttempts)

	probeErr := errors.New("connection refused")
	exists := func(ctx context.Context, id int) (bool, error) {
		return false, probeErr
	}

	_, err := gen.Generate(context.Background(), exists)
	assert.ErrorIs(t, err, probeErr)
	assert.NotErrorIs(t, err, ErrIDSpaceExhausted)
}
