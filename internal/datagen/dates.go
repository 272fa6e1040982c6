package datagen

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Simulation window. Every generated timestamp lives inside these bounds.
var (
	SimulationStart = time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)
	SimulationEnd   = time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)

	StoreOpening = time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)

	ProviderWindowStart = time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC)
	ProviderWindowEnd   = time.Date(2024, 11, 10, 23, 59, 59, 0, time.UTC)

	ProductWindowStart = time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)
	ProductWindowEnd   = time.Date(2025, 4, 15, 23, 59, 59, 0, time.UTC)

	StaffWindowStart = time.Date(2022, 1, 1, 8, 5, 0, 0, time.UTC)
	StaffWindowEnd   = time.Date(2022, 1, 3, 20, 0, 0, 0, time.UTC)

	EarlyClientsStart = time.Date(2022, 1, 18, 0, 0, 0, 0, time.UTC)
	EarlyClientsEnd   = time.Date(2022, 1, 25, 0, 0, 0, 0, time.UTC)

	UserWindowEnd = time.Date(2025, 5, 5, 20, 0, 0, 0, time.UTC)

	CartWindowEnd = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	DiscountWindowStart = time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)
	DiscountWindowEnd   = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	InventoryWindowEnd = time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC)
)

// SequentialDate spreads total elements evenly across [start, end] and
// returns the timestamp of the element at index. Index is zero based; a
// single element lands exactly on start.
func SequentialDate(start, end time.Time, total, index int) (time.Time, error) {
	if total <= 0 {
		return time.Time{}, errors.New("total must be positive")
	}
	if index < 0 || index >= total {
		return time.Time{}, errors.Errorf("index %d out of range [0, %d)", index, total)
	}
	if start.After(end) {
		return time.Time{}, errors.New("start must not be after end")
	}

	if total == 1 {
		return start, nil
	}
	step := end.Sub(start) / time.Duration(total-1)
	generated := start.Add(step * time.Duration(index))
	if generated.After(end) {
		return end, nil
	}
	return generated, nil
}

// RandomDateIn returns a uniformly random instant in [min, max]. When
// min is at or past max it degrades gracefully to min plus a small
// random increment instead of failing; order generation relies on this
// to keep timelines moving near the window edge.
func RandomDateIn(rng *rand.Rand, min, max time.Time) time.Time {
	if !min.Before(max) {
		return min.Add(time.Duration(1+rng.Intn(300)) * time.Second)
	}
	span := max.Sub(min)
	return min.Add(time.Duration(rng.Int63n(int64(span) + 1)))
}

// NextUpdateTime returns a timestamp strictly after prev, offset by a
// random delta in [minDelta, maxDelta], clamped to ceil.
func NextUpdateTime(rng *rand.Rand, prev time.Time, minDelta, maxDelta time.Duration, ceil time.Time) time.Time {
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
	candidate := prev.Add(delta)
	if candidate.After(ceil) {
		candidate = ceil
	}
	if !candidate.After(prev) {
		candidate = prev.Add(time.Second)
	}
	return candidate
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
