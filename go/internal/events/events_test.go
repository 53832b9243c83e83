package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jv-albuquerque/cooldown/go/cooldown"
	"github.com/jv-albuquerque/cooldown/go/internal/board"
)

type recordingPublisher struct {
	published chan Event
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, event Event) error {
	p.published <- event
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func readyTransition(name string) board.Transition {
	return board.Transition{
		ID:    uuid.New(),
		Name:  name,
		From:  cooldown.Running,
		To:    cooldown.Finished,
		Cause: "tick",
		At:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFromTransition(t *testing.T) {
	tr := readyTransition("fireball")
	ev := FromTransition(tr)

	if ev.ID == uuid.Nil {
		t.Fatal("event ID not set")
	}
	if ev.Kind != "ready" || ev.Cooldown != "fireball" || ev.CooldownID != tr.ID || !ev.Timestamp.Equal(tr.At) {
		t.Fatalf("event = %+v", ev)
	}
	if FromTransition(tr).ID == ev.ID {
		t.Fatal("event IDs should be unique per event")
	}
}

func TestSubject(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"fireball", "cooldown.events.fireball.ready"},
		{"spawn.wave", "cooldown.events.spawn_wave.ready"},
		{"big boss>*", "cooldown.events.big_boss__.ready"},
		{"", "cooldown.events._.ready"},
	}
	for _, tt := range tests {
		ev := Event{Cooldown: tt.name, Kind: "ready"}
		if got := Subject("cooldown.events", ev); got != tt.want {
			t.Fatalf("Subject(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestForwarderPublishesQueuedEvents(t *testing.T) {
	pub := &recordingPublisher{published: make(chan Event, 4), err: errors.New("broker down")}
	f := NewForwarder(pub, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()

	f.Listen(readyTransition("fireball"))
	f.Listen(readyTransition("blink"))

	for _, want := range []string{"fireball", "blink"} {
		select {
		case ev := <-pub.published:
			if ev.Cooldown != want {
				t.Fatalf("published %q, want %q", ev.Cooldown, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder did not stop after cancel")
	}
}

func TestForwarderDropsWhenFull(t *testing.T) {
	pub := &recordingPublisher{published: make(chan Event, 1)}
	f := NewForwarder(pub, 1)

	f.Listen(readyTransition("a"))
	f.Listen(readyTransition("b"))

	if got := len(f.queue); got != 1 {
		t.Fatalf("queue length = %d, want 1", got)
	}
	if ev := <-f.queue; ev.Cooldown != "a" {
		t.Fatalf("kept %q, want the first event", ev.Cooldown)
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	if err := p.Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
