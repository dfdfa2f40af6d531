package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type RelayConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	BatchSize  int32 // Max events to fetch per fallback sweep
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		MaxRetries: 5,
		RetryDelay: 200 * time.Millisecond,
		BatchSize:  100,
	}
}

// Relay moves outbox rows to the publisher and marks them sent
type Relay struct {
	source    Source
	publisher Publisher
	cfg       RelayConfig
}

func NewRelay(source Source, publisher Publisher, cfg RelayConfig) *Relay {
	return &Relay{source: source, publisher: publisher, cfg: cfg}
}

// HandleNotification publishes the event whose ID arrived on the notify channel
func (r *Relay) HandleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := r.source.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotPending) {
			// Already relayed by the fallback sweep.
			return nil
		}
		return fmt.Errorf("failed to fetch outbox event: %w", err)
	}

	if err := r.publishWithRetry(ctx, *event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Info().Str("event_id", id.String()).Msg("published and marked event as sent")
	return nil
}

// ProcessUnsent sweeps up events whose notification was missed. It returns
// how many were relayed.
func (r *Relay) ProcessUnsent(ctx context.Context) (int, error) {
	unsent, err := r.source.FetchUnsentOutbox(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	sent := 0
	for _, event := range unsent {
		if err := r.publishWithRetry(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to publish event")
			continue
		}
		sent++
	}
	return sent, nil
}

// publishWithRetry attempts to publish an outbox event with a linear backoff,
// then marks it sent.
func (r *Relay) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := r.cfg.RetryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := r.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if err := r.source.MarkOutboxSent(ctx, event.ID); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to mark outbox event as sent")
			return err
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", r.cfg.MaxRetries+1, lastErr)
}
