package cooldown

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source a Cooldown measures against.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
}

func defaultClock() Clock {
	return clockwork.NewRealClock()
}
