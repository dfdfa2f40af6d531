package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	listingID, seller, buyer := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	rec, err := events.NewRecord(events.EventTypePlayerTransferred, listingID, at, events.PlayerTransferredPayload{
		ListingID: listingID.String(),
		Price:     decimal.RequireFromString("20000.50"),
	}, seller, buyer)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, events.EventTypePlayerTransferred, rec.Type)
	assert.Equal(t, at, rec.CreatedAt)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Payload, &payload))
	assert.Equal(t, "20000.5", payload["price"])

	meta := events.MetadataFor(rec)
	assert.Equal(t, []string{seller.String(), buyer.String()}, meta.TeamIDs)
}

func TestEventTypeValid(t *testing.T) {
	assert.True(t, events.EventTypeListingWithdrawn.Valid())
	assert.False(t, events.EventType("PickMade").Valid())
}

func TestEnvelopeConcerns(t *testing.T) {
	env := events.Envelope{TeamIDs: []string{"a", "b"}}
	assert.True(t, env.Concerns("b"))
	assert.False(t, env.Concerns("c"))
}
