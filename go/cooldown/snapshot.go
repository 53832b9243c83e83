package cooldown

import "time"

// Snapshot is a point-in-time view of a Cooldown, taken against one reading
// of the clock.
type Snapshot struct {
	State           State      `json:"state"`
	Finished        bool       `json:"finished"`
	Paused          bool       `json:"paused"`
	PercentComplete float64    `json:"percent_complete"`
	RemainingSec    float64    `json:"remaining_sec"`
	DurationSec     float64    `json:"duration_sec"`
	Ranged          bool       `json:"ranged"`
	MinDurationSec  float64    `json:"min_duration_sec,omitempty"`
	MaxDurationSec  float64    `json:"max_duration_sec,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	TakenAt         time.Time  `json:"taken_at"`
}

// Snapshot captures the current queries of c.
func (c *Cooldown) Snapshot() Snapshot {
	now := c.clock.Now()
	s := Snapshot{
		State:           c.stateAt(now),
		Finished:        c.finishedAt(now),
		Paused:          c.state == Paused,
		PercentComplete: c.percentAt(now),
		RemainingSec:    c.remainingAt(now).Seconds(),
		DurationSec:     c.Duration().Seconds(),
		Ranged:          c.ranged,
		TakenAt:         now,
	}
	if c.ranged {
		s.MinDurationSec = c.minDuration.Seconds()
		s.MaxDurationSec = c.maxDuration.Seconds()
	}
	if c.state != Idle && c.state != Paused {
		deadline := c.deadline
		s.Deadline = &deadline
	}
	return s
}
