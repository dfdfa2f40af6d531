package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        // Channel name to LISTEN on
	FallbackInterval time.Duration // How often to poll for missed events
	PingInterval     time.Duration
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    "transfer_outbox_events",
		FallbackInterval: 30 * time.Second,
		PingInterval:     90 * time.Second,
	}
}

// Listener drives a Relay from Postgres notifications, with a periodic sweep
// for anything a dropped connection missed.
type Listener struct {
	listener *pq.Listener
	relay    *Relay
	cfg      ListenerConfig
}

func NewListener(relay *Relay, cfg ListenerConfig) (*Listener, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return &Listener{
		listener: l,
		relay:    relay,
		cfg:      cfg,
	}, nil
}

func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	// Catch up on anything written while the relay was down.
	l.sweep(ctx)

	pingTicker := time.NewTicker(l.cfg.PingInterval)
	fallbackTicker := time.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-l.listener.Notify:
			if note == nil {
				// connection was re-established; notifications may have been lost
				l.sweep(ctx)
				continue
			}
			if err := l.relay.HandleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.C:
			l.sweep(ctx)
		case <-pingTicker.C:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) sweep(ctx context.Context) {
	n, err := l.relay.ProcessUnsent(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to process unsent events")
		return
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("relayed unsent events")
	}
}

func (l *Listener) Stop() error {
	return l.listener.Close()
}
