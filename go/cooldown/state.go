package cooldown

import "fmt"

// State is the lifecycle position of a Cooldown.
type State int

const (
	// Idle cooldowns have never been armed and report finished.
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText encodes the state by name so snapshots read well as JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "running":
		*s = Running
	case "paused":
		*s = Paused
	case "finished":
		*s = Finished
	default:
		return fmt.Errorf("unknown cooldown state %q", string(text))
	}
	return nil
}
