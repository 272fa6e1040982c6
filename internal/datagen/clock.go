package datagen

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// ErrClockExhausted signals that the simulation clock has reached its
// ceiling and no further events fit. Generators treat it as a soft
// stop: they keep what was produced so far and return.
var ErrClockExhausted = errors.New("simulation clock exhausted")

// SimulationClock is a monotone cursor over simulated time. Each
// Advance moves the cursor strictly forward; once the ceiling is
// reached the clock reports exhaustion instead of going backwards or
// standing still.
type SimulationClock struct {
	now     time.Time
	ceiling time.Time
}

func NewSimulationClock(start, ceiling time.Time) *SimulationClock {
	return &SimulationClock{now: start, ceiling: ceiling}
}

func (c *SimulationClock) Now() time.Time     { return c.now }
func (c *SimulationClock) Ceiling() time.Time { return c.ceiling }

// Advance moves the cursor forward by a random delta in
// [minDelta, maxDelta] and returns the new instant. Returns
// ErrClockExhausted when the advanced instant would pass the ceiling.
func (c *SimulationClock) Advance(rng *rand.Rand, minDelta, maxDelta time.Duration) (time.Time, error) {
	if minDelta <= 0 {
		minDelta = time.Second
	}
	if maxDelta < minDelta {
		maxDelta = minDelta
	}
	delta := minDelta
	if maxDelta > minDelta {
		delta += time.Duration(rng.Int63n(int64(maxDelta - minDelta + 1)))
	}
	candidate := c.now.Add(delta)
	if candidate.After(c.ceiling) {
		return time.Time{}, ErrClockExhausted
	}
	c.now = candidate
	return c.now, nil
}

// AdvanceTo moves the cursor to t if t is ahead of the current cursor.
// Moving past the ceiling reports exhaustion.
func (c *SimulationClock) AdvanceTo(t time.Time) (time.Time, error) {
	if t.After(c.ceiling) {
		return time.Time{}, ErrClockExhausted
	}
	if t.After(c.now) {
		c.now = t
	}
	return c.now, nil
}
