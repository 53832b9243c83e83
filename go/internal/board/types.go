package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jv-albuquerque/cooldown/go/cooldown"
)

var (
	ErrNotFound      = errors.New("cooldown not found")
	ErrExists        = errors.New("cooldown already exists")
	ErrUnknownAction = errors.New("unknown cooldown action")
)

// Action is an operation a client can apply to a named cooldown.
type Action string

const (
	ActionStart       Action = "start"
	ActionRestart     Action = "restart"
	ActionReset       Action = "reset"
	ActionPause       Action = "pause"
	ActionStop        Action = "stop"
	ActionForceFinish Action = "force-finish"
	ActionAddTime     Action = "add-time"
)

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionStart, ActionRestart, ActionReset, ActionPause, ActionStop, ActionForceFinish, ActionAddTime:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Entry is a named cooldown as seen by clients.
type Entry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	cooldown.Snapshot
}

// Transition records a cooldown moving between states, either because time
// passed (Cause "tick") or because an action was applied.
type Transition struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	From     cooldown.State    `json:"from"`
	To       cooldown.State    `json:"to"`
	Cause    string            `json:"cause"`
	At       time.Time         `json:"at"`
	Snapshot cooldown.Snapshot `json:"snapshot"`
}

// Kind names the transition: "ready" when a running cooldown completes,
// otherwise the name of the state entered.
func (t Transition) Kind() string {
	if t.To == cooldown.Finished {
		return "ready"
	}
	return t.To.String()
}
