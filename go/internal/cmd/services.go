package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/transfermarket/go/internal/authz"
	"github.com/mcdev12/transfermarket/go/internal/cache/redis"
	"github.com/mcdev12/transfermarket/go/internal/squad"
	"github.com/mcdev12/transfermarket/go/internal/transfer"
	"github.com/mcdev12/transfermarket/go/internal/transfer/feed"
	"github.com/mcdev12/transfermarket/go/internal/transfer/memstore"
	"github.com/mcdev12/transfermarket/go/internal/valuation"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Transfer *transfer.Service
	Tokens   *authz.Tokens
	Feed     *feed.Service

	closers []func()
}

// Close releases every resource opened by setupServices
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func setupServices(ctx context.Context, cfg *Config, market MarketConfig) (*Services, error) {
	// Wire up dependency injection chain
	// Store → App → Service

	services := &Services{}
	clock := clockwork.NewRealClock()

	tokens, err := authz.NewTokens(authz.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure tokens: %w", err)
	}
	services.Tokens = tokens

	var store transfer.Store
	switch cfg.StoreDriver {
	case storeDriverMemory:
		mem := memstore.New()
		if err := seedMemoryStore(ctx, mem, market.Squad, tokens, cfg.SeedTeams, clock.Now()); err != nil {
			return nil, err
		}
		store = mem
	default:
		pool, conn, err := setupDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		services.closers = append(services.closers, pool.Close, func() { _ = conn.Close() })
		store = transfer.NewRepository(conn)
	}

	var cache transfer.ListingCache
	if cfg.RedisAddr != "" {
		client, err := redis.New(ctx, redis.ClientConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		services.closers = append(services.closers, func() { _ = client.Close() })
		cache = redis.NewListingCache(client, cfg.CacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("listing cache enabled")
	}

	appreciator, err := valuation.NewAppreciator(market.Valuation, nil)
	if err != nil {
		services.Close()
		return nil, err
	}

	transferApp := transfer.NewApp(store, appreciator, clock, cache)
	services.Transfer = transfer.NewService(transferApp, market.Paging)

	if cfg.NATSURL != "" {
		feedConfig := feed.DefaultConfig()
		feedConfig.JetStreamConfig.URL = cfg.NATSURL
		feedService, err := feed.NewService(feedConfig)
		if err != nil {
			// the relay creates the stream; the API still serves without the feed
			log.Warn().Err(err).Msg("market feed disabled")
		} else {
			services.Feed = feedService
		}
	}

	return services, nil
}

// seedMemoryStore fills an in-memory market and logs a token per team so the
// API can be exercised without Postgres.
func seedMemoryStore(ctx context.Context, store *memstore.Store, policy squad.Policy, tokens *authz.Tokens, n int, now time.Time) error {
	gen, err := squad.NewGenerator(policy, nil)
	if err != nil {
		return err
	}

	squads, err := gen.Seed(ctx, store, n, now)
	if err != nil {
		return fmt.Errorf("failed to seed memory store: %w", err)
	}

	for _, s := range squads {
		token, err := tokens.Issue(authz.Team(s.Team.ID))
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}
		log.Info().
			Str("team_id", s.Team.ID.String()).
			Str("team", s.Team.Name).
			Str("budget", transfer.FormatMoney(s.Team.Budget)).
			Str("token", token).
			Msg("seeded team")
	}

	admin, err := tokens.Issue(authz.Admin())
	if err != nil {
		return fmt.Errorf("failed to issue admin token: %w", err)
	}
	log.Info().Str("token", admin).Msg("admin token")
	return nil
}
