package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is an unsent transfer_outbox row
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	ListingID uuid.UUID       `json:"listing_id"`
	EventType string          `json:"event_type"`
	TeamIDs   []string        `json:"team_ids"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Publisher is an interface that defines our publisher.
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// Source reads unsent events and records delivery
type Source interface {
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}
