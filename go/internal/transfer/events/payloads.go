package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event payload types shared between the transfer engine, the outbox relay and
// the market feed gateway

// EventType names a transfer market event
type EventType string

const (
	EventTypeListingCreated    EventType = "ListingCreated"
	EventTypeListingUpdated    EventType = "ListingUpdated"
	EventTypeListingWithdrawn  EventType = "ListingWithdrawn"
	EventTypePlayerTransferred EventType = "PlayerTransferred"
)

// Valid reports whether t is a known event type
func (t EventType) Valid() bool {
	switch t {
	case EventTypeListingCreated, EventTypeListingUpdated, EventTypeListingWithdrawn, EventTypePlayerTransferred:
		return true
	default:
		return false
	}
}

// ListingCreatedPayload is the payload for a ListingCreated event
type ListingCreatedPayload struct {
	ListingID    string          `json:"listing_id"`
	PlayerID     string          `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	SellerTeamID string          `json:"seller_team_id"`
	AskPrice     decimal.Decimal `json:"ask_price"`
	ListedAt     time.Time       `json:"listed_at"`
}

// ListingUpdatedPayload is the payload for a ListingUpdated event
type ListingUpdatedPayload struct {
	ListingID        string          `json:"listing_id"`
	SellerTeamID     string          `json:"seller_team_id"`
	AskPrice         decimal.Decimal `json:"ask_price"`
	PreviousAskPrice decimal.Decimal `json:"previous_ask_price"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ListingWithdrawnPayload is the payload for a ListingWithdrawn event
type ListingWithdrawnPayload struct {
	ListingID    string    `json:"listing_id"`
	SellerTeamID string    `json:"seller_team_id"`
	WithdrawnAt  time.Time `json:"withdrawn_at"`
}

// PlayerTransferredPayload is the payload for a PlayerTransferred event
type PlayerTransferredPayload struct {
	ListingID           string          `json:"listing_id"`
	PlayerID            string          `json:"player_id"`
	PlayerName          string          `json:"player_name"`
	SellerTeamID        string          `json:"seller_team_id"`
	BuyerTeamID         string          `json:"buyer_team_id"`
	Price               decimal.Decimal `json:"price"`
	PreviousMarketValue decimal.Decimal `json:"previous_market_value"`
	NewMarketValue      decimal.Decimal `json:"new_market_value"`
	TransferredAt       time.Time       `json:"transferred_at"`
}

// Record is an event ready to be written to the outbox in the same transaction
// as the change it describes
type Record struct {
	ID        uuid.UUID
	Type      EventType
	ListingID uuid.UUID
	TeamIDs   []uuid.UUID
	Payload   json.RawMessage
	CreatedAt time.Time
}

// NewRecord marshals payload into a Record scoped to the given teams
func NewRecord(eventType EventType, listingID uuid.UUID, at time.Time, payload any, teamIDs ...uuid.UUID) (Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Record{
		ID:        uuid.New(),
		Type:      eventType,
		ListingID: listingID,
		TeamIDs:   teamIDs,
		Payload:   data,
		CreatedAt: at,
	}, nil
}

// Metadata is stored next to the payload and copied into message headers
type Metadata struct {
	TeamIDs []string `json:"team_ids"`
}

// MetadataFor builds the Metadata for a record
func MetadataFor(r Record) Metadata {
	ids := make([]string, len(r.TeamIDs))
	for i, id := range r.TeamIDs {
		ids[i] = id.String()
	}
	return Metadata{TeamIDs: ids}
}

// Envelope is the message published to the event stream for every outbox record
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType EventType       `json:"event_type"`
	ListingID string          `json:"listing_id"`
	TeamIDs   []string        `json:"team_ids,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Concerns reports whether the event involves the given team
func (e Envelope) Concerns(teamID string) bool {
	for _, id := range e.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
