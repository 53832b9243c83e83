// Package cooldown provides a pausable countdown used to gate repeatable
// actions such as ability recharges or spawn intervals.
//
// A Cooldown is driven by an injected Clock and derives every query from a
// single deadline. It is not safe for concurrent use; callers that share one
// across goroutines must serialize access.
package cooldown

import (
	"time"

	"github.com/rs/zerolog"
)

// Cooldown is a single countdown-to-ready gate.
type Cooldown struct {
	clock  Clock
	random RandomSource
	logger zerolog.Logger

	ranged      bool
	duration    time.Duration
	minDuration time.Duration
	maxDuration time.Duration

	// current is the duration sampled at the last arm.
	current  time.Duration
	deadline time.Time
	state    State

	// valid only while state == Paused
	pausedRemaining time.Duration
	pausedPercent   float64
}

// New creates a fixed-duration cooldown. A duration <= 0 reports finished as
// soon as it is armed.
func New(d time.Duration, opts ...Option) *Cooldown {
	o := buildOptions(opts)
	c := &Cooldown{
		clock:    o.clock,
		random:   o.random,
		logger:   o.logger,
		duration: d,
	}
	if o.autoStart {
		c.Start()
	}
	return c
}

// NewRange creates a cooldown that samples its duration uniformly from
// [min, max] every time it is armed.
func NewRange(min, max time.Duration, opts ...Option) (*Cooldown, error) {
	if err := validateRange(min, max); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	c := &Cooldown{
		clock:       o.clock,
		random:      o.random,
		logger:      o.logger,
		ranged:      true,
		minDuration: min,
		maxDuration: max,
	}
	if o.autoStart {
		c.Start()
	}
	return c, nil
}

// SetDuration switches to fixed mode. It takes effect on the next arm.
func (c *Cooldown) SetDuration(d time.Duration) {
	c.ranged = false
	c.duration = d
}

// SetRange switches to range mode. It takes effect on the next arm. An
// inverted range is rejected and the current configuration kept.
func (c *Cooldown) SetRange(min, max time.Duration) error {
	if err := validateRange(min, max); err != nil {
		return err
	}
	c.ranged = true
	c.minDuration = min
	c.maxDuration = max
	return nil
}

// IsFinished reports whether the deadline has passed. A paused cooldown is
// never finished.
func (c *Cooldown) IsFinished() bool {
	return c.finishedAt(c.clock.Now())
}

// PercentComplete returns progress in [0, 100].
func (c *Cooldown) PercentComplete() float64 {
	return c.percentAt(c.clock.Now())
}

// TimeRemaining returns the time left until the deadline, never negative.
func (c *Cooldown) TimeRemaining() time.Duration {
	return c.remainingAt(c.clock.Now())
}

// State returns the lifecycle state as observed now.
func (c *Cooldown) State() State {
	return c.stateAt(c.clock.Now())
}

// IsPaused reports whether the countdown is frozen.
func (c *Cooldown) IsPaused() bool {
	return c.state == Paused
}

// Duration returns the fixed duration, or in range mode the duration
// sampled at the last arm.
func (c *Cooldown) Duration() time.Duration {
	if c.ranged {
		return c.current
	}
	return c.duration
}

// Range returns the configured bounds; ok is false in fixed mode.
func (c *Cooldown) Range() (min, max time.Duration, ok bool) {
	return c.minDuration, c.maxDuration, c.ranged
}

// Deadline returns the absolute completion time. It is stale while paused.
func (c *Cooldown) Deadline() time.Time {
	return c.deadline
}

// Start arms the cooldown, or resumes it from where it was paused.
func (c *Cooldown) Start() {
	now := c.clock.Now()
	if c.state == Paused {
		c.resume(now)
		return
	}
	c.arm(now)
}

// Restart arms the cooldown from zero, discarding any paused progress.
func (c *Cooldown) Restart() {
	c.arm(c.clock.Now())
}

// Reset is an alias for Start.
func (c *Cooldown) Reset() {
	c.Start()
}

// AddTime moves the deadline by delta; a negative delta shortens it.
// Paused snapshots are left as they are, so a delta applied while paused is
// dropped when the cooldown resumes.
func (c *Cooldown) AddTime(delta time.Duration) {
	c.deadline = c.deadline.Add(delta)
	c.logger.Debug().
		Dur("delta", delta).
		Time("deadline", c.deadline).
		Bool("paused", c.state == Paused).
		Msg("cooldown deadline moved")
}

// Pause freezes the remaining time and percent. It does nothing when the
// cooldown is already finished or already paused.
func (c *Cooldown) Pause() {
	now := c.clock.Now()
	if c.state == Paused || c.finishedAt(now) {
		return
	}
	// capture before flipping state; the helpers branch on it
	c.pausedRemaining = c.remainingAt(now)
	c.pausedPercent = c.percentAt(now)
	c.state = Paused

	c.logger.Debug().
		Dur("remaining", c.pausedRemaining).
		Float64("percent", c.pausedPercent).
		Msg("cooldown paused")
}

// ForceFinish completes the cooldown immediately.
func (c *Cooldown) ForceFinish() {
	now := c.clock.Now()
	c.deadline = now
	c.state = Finished
	c.pausedRemaining = 0
	c.pausedPercent = 0

	c.logger.Debug().Time("deadline", now).Msg("cooldown force finished")
}

// Stop arms the cooldown afresh and pauses it at 0%.
func (c *Cooldown) Stop() {
	c.Restart()
	c.Pause()
}

func (c *Cooldown) arm(now time.Time) {
	d := c.duration
	if c.ranged {
		d = c.random.Uniform(c.minDuration, c.maxDuration)
	}
	c.current = d
	c.deadline = now.Add(d)
	c.state = Running
	c.pausedRemaining = 0
	c.pausedPercent = 0

	c.logger.Debug().
		Dur("duration", d).
		Time("deadline", c.deadline).
		Bool("ranged", c.ranged).
		Msg("cooldown armed")
}

func (c *Cooldown) resume(now time.Time) {
	c.deadline = now.Add(c.pausedRemaining)
	c.state = Running

	c.logger.Debug().
		Dur("remaining", c.pausedRemaining).
		Time("deadline", c.deadline).
		Msg("cooldown resumed")
}

func (c *Cooldown) finishedAt(now time.Time) bool {
	if c.state == Paused {
		return false
	}
	return !now.Before(c.deadline)
}

func (c *Cooldown) percentAt(now time.Time) float64 {
	if c.state == Paused {
		return c.pausedPercent
	}
	if c.finishedAt(now) || c.current <= 0 {
		return 100
	}
	left := float64(c.deadline.Sub(now)) / float64(c.current)
	return clamp(100-left*100, 0, 100)
}

func (c *Cooldown) remainingAt(now time.Time) time.Duration {
	if c.state == Paused {
		return c.pausedRemaining
	}
	if c.finishedAt(now) {
		return 0
	}
	return c.deadline.Sub(now)
}

func (c *Cooldown) stateAt(now time.Time) State {
	switch c.state {
	case Idle, Paused:
		return c.state
	}
	if c.finishedAt(now) {
		return Finished
	}
	return Running
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
