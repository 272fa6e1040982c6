package datagen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationClockAdvance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	start := time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)
	clock := NewSimulationClock(start, start.Add(time.Hour))

	prev := clock.Now()
	for i := 0; i < 10; i++ {
		got, err := clock.Advance(rng, time.Second, time.Minute)
		require.NoError(t, err)
		assert.True(t, got.After(prev))
		prev = got
	}
}

func TestSimulationClockExhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	start := time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)
	clock := NewSimulationClock(start, start.Add(90*time.Second))

	var err error
	for i := 0; i < 100; i++ {
		if _, err = clock.Advance(rng, time.Minute, time.Minute); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, ErrClockExhausted)
}

func TestSimulationClockAdvanceTo(t *testing.T) {
	start := time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)
	clock := NewSimulationClock(start, start.Add(time.Hour))

	target := start.Add(30 * time.Minute)
	got, err := clock.AdvanceTo(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	// Moving backwards is not allowed, the clock stays put.
	got, err = clock.AdvanceTo(start.Add(10 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, target, got)

	_, err = clock.AdvanceTo(start.Add(2 * time.Hour))
	assert.ErrorIs(t, err, ErrClockExhausted)
}
