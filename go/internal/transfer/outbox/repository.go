package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/transfer/db"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/sqlc-dev/pqtype"
)

// ErrEventNotPending is returned when an event is missing or already sent
var ErrEventNotPending = errors.New("outbox event not found or already sent")

type Repository struct {
	queries *db.Queries
}

func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

var _ Source = (*Repository)(nil)

func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	out := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		out[i] = OutboxEvent{
			ID:        row.ID,
			ListingID: row.ListingID,
			EventType: row.EventType,
			TeamIDs:   teamIDs(row.Metadata),
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		}
	}
	return out, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotPending
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}

	return &OutboxEvent{
		ID:        row.ID,
		ListingID: row.ListingID,
		EventType: row.EventType,
		TeamIDs:   teamIDs(row.Metadata),
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
	}, nil
}

func teamIDs(raw pqtype.NullRawMessage) []string {
	if !raw.Valid {
		return nil
	}
	var meta events.Metadata
	if err := json.Unmarshal(raw.RawMessage, &meta); err != nil {
		return nil
	}
	return meta.TeamIDs
}
