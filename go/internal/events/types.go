package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jv-albuquerque/cooldown/go/cooldown"
	"github.com/jv-albuquerque/cooldown/go/internal/board"
)

// Event is the published form of a board transition.
type Event struct {
	ID         uuid.UUID         `json:"eventId"`
	Kind       string            `json:"eventType"`
	CooldownID uuid.UUID         `json:"cooldownId"`
	Cooldown   string            `json:"cooldown"`
	From       cooldown.State    `json:"from"`
	To         cooldown.State    `json:"to"`
	Cause      string            `json:"cause"`
	Timestamp  time.Time         `json:"timestamp"`
	Snapshot   cooldown.Snapshot `json:"snapshot"`
}

// FromTransition wraps a transition in an event with a fresh ID.
func FromTransition(t board.Transition) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       t.Kind(),
		CooldownID: t.ID,
		Cooldown:   t.Name,
		From:       t.From,
		To:         t.To,
		Cause:      t.Cause,
		Timestamp:  t.At,
		Snapshot:   t.Snapshot,
	}
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher discards events; used when publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NoopPublisher) Close() error                                   { return nil }

// Subject returns the subject an event is published on:
// <prefix>.<cooldown>.<kind>, with subject-reserved characters in the
// cooldown name replaced by underscores.
func Subject(prefix string, event Event) string {
	return prefix + "." + subjectToken(event.Cooldown) + "." + event.Kind
}

func subjectToken(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, s)
}
