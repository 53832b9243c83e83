package cooldown

import (
	"math/rand"
	"time"
)

// RandomSource samples the duration of a range-mode cooldown each time it is armed.
type RandomSource interface {
	// Uniform returns a duration in [min, max].
	Uniform(min, max time.Duration) time.Duration
}

// RandomFunc adapts a plain function to a RandomSource.
type RandomFunc func(min, max time.Duration) time.Duration

// Uniform implements RandomSource.
func (f RandomFunc) Uniform(min, max time.Duration) time.Duration {
	return f(min, max)
}

// RandSource draws uniformly distributed durations from its own *rand.Rand.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource constructs a RandSource with its own seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// Uniform implements RandomSource.
func (s *RandSource) Uniform(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Float64()*float64(max-min))
}

func defaultRandomSource() RandomSource {
	return NewRandSource(time.Now().UnixNano())
}
