package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridiron/go/clients/fantasy_api_client"
	"github.com/mcdev12/gridiron/go/internal/audit"
	"github.com/mcdev12/gridiron/go/internal/config"
	"github.com/mcdev12/gridiron/go/internal/leagues"
	"github.com/mcdev12/gridiron/go/internal/player"
	"github.com/mcdev12/gridiron/go/internal/seasons"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/mcdev12/gridiron/go/internal/teams"
	"github.com/mcdev12/gridiron/go/internal/users"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Session *session.Store
	Users   *users.App
	Join    *leagues.JoinFlow
	Leagues *leagues.CreateApp
	Seasons *seasons.App
	Teams   *teams.App
	Players *player.App

	closers []func()
}

// Close releases the session store and the audit connection
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func setupServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	// Wire up dependency injection chain
	// Token file → Session store → API client → App layer
	services := &Services{}
	clock := clockwork.NewRealClock()

	emitter := audit.NewEmitter(setupPublisher(ctx, cfg, services), clock)

	tokens, err := session.NewFileTokenStore(cfg.Session.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}

	client := fantasy_api_client.NewFantasyApiClient(cfg.API.BaseURL, nil, cfg.API.Timeout)
	store := session.NewStore(tokens, client,
		session.WithClock(clock),
		session.WithEmitter(emitter),
		session.WithProfileTimeout(cfg.Session.ProfileTimeout),
	)
	client.SetTokenSource(store)
	services.closers = append(services.closers, store.Close)

	services.Session = store
	services.Users = users.NewApp(client, store)
	services.Join = leagues.NewJoinFlow(client, store, client,
		leagues.WithRequireSearchFilter(cfg.Leagues.RequireSearchFilter),
		leagues.WithJoinEmitter(emitter),
		leagues.WithJoinClock(clock),
	)
	services.Leagues = leagues.NewCreateApp(client, store, emitter)
	services.Seasons = seasons.NewApp(client, store, clock, emitter)
	services.Teams = teams.NewApp(client, store, emitter)
	services.Players = player.NewApp(client, store, emitter)

	return services, nil
}

// setupPublisher connects to JetStream when configured. Activity events are
// optional, so a failed connection falls back to discarding them.
func setupPublisher(ctx context.Context, cfg *config.Config, services *Services) audit.EventPublisher {
	if cfg.Audit.NATSURL == "" {
		return audit.NopPublisher{}
	}

	jsCfg := audit.DefaultJetStreamConfig()
	jsCfg.URL = cfg.Audit.NATSURL
	jsCfg.StreamName = cfg.Audit.Stream
	jsCfg.SubjectPrefix = cfg.Audit.SubjectPrefix

	publisher, err := audit.NewJetStreamPublisher(ctx, jsCfg)
	if err != nil {
		log.Warn().Err(err).Str("url", jsCfg.URL).Msg("audit events disabled")
		return audit.NopPublisher{}
	}
	services.closers = append(services.closers, func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	})
	return publisher
}
