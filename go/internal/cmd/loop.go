package main

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jv-albuquerque/cooldown/go/internal/board"
	"github.com/rs/zerolog/log"
)

type snapshotBroadcaster interface {
	BroadcastSnapshot()
}

// runTickLoop is the daemon's update step: every interval it lets the board
// detect cooldowns that became ready, then pushes the full board to clients.
func runTickLoop(ctx context.Context, clock clockwork.Clock, interval time.Duration, b *board.Board, out snapshotBroadcaster) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("tick loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("tick loop stopped")
			return
		case <-ticker.Chan():
			for _, t := range b.Tick() {
				log.Info().
					Str("cooldown", t.Name).
					Str("event", t.Kind()).
					Msg("cooldown transition")
			}
			out.BroadcastSnapshot()
		}
	}
}
