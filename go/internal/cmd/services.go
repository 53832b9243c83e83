package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/jv-albuquerque/cooldown/go/internal/board"
	"github.com/jv-albuquerque/cooldown/go/internal/config"
	"github.com/jv-albuquerque/cooldown/go/internal/events"
	"github.com/jv-albuquerque/cooldown/go/internal/gateway"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Board     *board.Board
	Gateway   *gateway.Service
	Publisher events.Publisher
	Forwarder *events.Forwarder
}

func setupServices(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*Services, error) {
	b, err := board.FromPresets(cfg.Cooldowns, clock)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}

	gw := gateway.NewService(gateway.DefaultConfig(), b)
	b.OnTransition(gw.BroadcastTransition)

	services := &Services{
		Board:     b,
		Gateway:   gw,
		Publisher: events.NoopPublisher{},
	}

	if cfg.Events.Enabled {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = cfg.Events.URL
		jsCfg.StreamName = cfg.Events.Stream
		jsCfg.SubjectPrefix = cfg.Events.SubjectPrefix

		pub, err := events.NewJetStreamPublisher(ctx, jsCfg)
		if err != nil {
			return nil, fmt.Errorf("set up event publisher: %w", err)
		}
		services.Publisher = pub
		services.Forwarder = events.NewForwarder(pub, 256)
		b.OnTransition(services.Forwarder.Listen)

		log.Info().
			Str("url", jsCfg.URL).
			Str("stream", jsCfg.StreamName).
			Msg("publishing cooldown events to JetStream")
	}

	return services, nil
}

func (s *Services) Close() {
	if err := s.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close event publisher")
	}
}
