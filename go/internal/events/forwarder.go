package events

import (
	"context"
	"time"

	"github.com/jv-albuquerque/cooldown/go/internal/board"
	"github.com/rs/zerolog/log"
)

// Forwarder moves board transitions onto a Publisher without blocking the
// board. Events are dropped, with a warning, when the buffer is full.
type Forwarder struct {
	publisher Publisher
	queue     chan Event
	timeout   time.Duration
}

func NewForwarder(publisher Publisher, buffer int) *Forwarder {
	if buffer <= 0 {
		buffer = 1
	}
	return &Forwarder{
		publisher: publisher,
		queue:     make(chan Event, buffer),
		timeout:   5 * time.Second,
	}
}

// Listen is registered with board.OnTransition.
func (f *Forwarder) Listen(t board.Transition) {
	event := FromTransition(t)
	select {
	case f.queue <- event:
	default:
		log.Warn().
			Str("cooldown", event.Cooldown).
			Str("event_type", event.Kind).
			Msg("event queue full, dropping cooldown event")
	}
}

// Run publishes queued events until ctx is cancelled. Publish failures are
// logged and never stop the loop.
func (f *Forwarder) Run(ctx context.Context) {
	log.Info().Msg("event forwarder started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event forwarder shutting down")
			return
		case event := <-f.queue:
			pubCtx, cancel := context.WithTimeout(ctx, f.timeout)
			if err := f.publisher.Publish(pubCtx, event); err != nil {
				log.Error().
					Err(err).
					Str("cooldown", event.Cooldown).
					Str("event_type", event.Kind).
					Msg("failed to publish cooldown event")
			}
			cancel()
		}
	}
}
