package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu     sync.Mutex
	events map[uuid.UUID]OutboxEvent
	sent   map[uuid.UUID]bool
	order  []uuid.UUID
}

func newFakeSource(evs ...OutboxEvent) *fakeSource {
	s := &fakeSource{events: map[uuid.UUID]OutboxEvent{}, sent: map[uuid.UUID]bool{}}
	for _, e := range evs {
		s.events[e.ID] = e
		s.order = append(s.order, e.ID)
	}
	return s
}

func (s *fakeSource) FetchOutboxByID(_ context.Context, id uuid.UUID) (*OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok || s.sent[id] {
		return nil, ErrEventNotPending
	}
	return &e, nil
}

func (s *fakeSource) FetchUnsentOutbox(_ context.Context, limit int32) ([]OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []OutboxEvent
	for _, id := range s.order {
		if !s.sent[id] && int32(len(out)) < limit {
			out = append(out, s.events[id])
		}
	}
	return out, nil
}

func (s *fakeSource) MarkOutboxSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[id] = true
	return nil
}

type fakePublisher struct {
	failures  int
	published []OutboxEvent
}

func (p *fakePublisher) Publish(_ context.Context, e OutboxEvent) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, e)
	return nil
}

func testRelayConfig() RelayConfig {
	return RelayConfig{MaxRetries: 2, RetryDelay: time.Millisecond, BatchSize: 10}
}

func TestRelay_HandleNotification(t *testing.T) {
	ev := OutboxEvent{ID: uuid.New(), EventType: "ListingCreated"}
	src := newFakeSource(ev)
	pub := &fakePublisher{failures: 1}
	relay := NewRelay(src, pub, testRelayConfig())

	require.NoError(t, relay.HandleNotification(context.Background(), ev.ID.String()))
	require.Len(t, pub.published, 1)
	assert.True(t, src.sent[ev.ID])

	// A repeated notification for a sent event is a no-op.
	require.NoError(t, relay.HandleNotification(context.Background(), ev.ID.String()))
	assert.Len(t, pub.published, 1)

	assert.Error(t, relay.HandleNotification(context.Background(), "not-a-uuid"))
}

func TestRelay_GivesUpAfterRetries(t *testing.T) {
	ev := OutboxEvent{ID: uuid.New(), EventType: "ListingUpdated"}
	src := newFakeSource(ev)
	relay := NewRelay(src, &fakePublisher{failures: 10}, testRelayConfig())

	err := relay.HandleNotification(context.Background(), ev.ID.String())
	require.Error(t, err)
	assert.False(t, src.sent[ev.ID])
}

func TestRelay_ProcessUnsent(t *testing.T) {
	a := OutboxEvent{ID: uuid.New(), EventType: "ListingCreated"}
	b := OutboxEvent{ID: uuid.New(), EventType: "PlayerTransferred"}
	src := newFakeSource(a, b)
	src.sent[a.ID] = true
	pub := &fakePublisher{}

	n, err := NewRelay(src, pub, testRelayConfig()).ProcessUnsent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, pub.published, 1)
	assert.Equal(t, b.ID, pub.published[0].ID)
}

func TestJetStreamConfig_Subject(t *testing.T) {
	cfg := DefaultJetStreamConfig()
	assert.Equal(t, "TRANSFER_EVENTS", cfg.StreamName)
	assert.Equal(t, "transfer.events.PlayerTransferred", cfg.Subject("PlayerTransferred"))
}

func TestBuildMsg(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	p := &JetStreamPublisher{config: DefaultJetStreamConfig(), clock: clock}
	ev := OutboxEvent{
		ID:        uuid.New(),
		ListingID: uuid.New(),
		EventType: "ListingWithdrawn",
		TeamIDs:   []string{"t1"},
		Payload:   []byte(`{"listing_id":"x"}`),
	}

	msg, err := p.buildMsg(ev)
	require.NoError(t, err)
	assert.Equal(t, "transfer.events.ListingWithdrawn", msg.Subject)
	assert.Equal(t, ev.ID.String(), msg.Header.Get("Event-ID"))
	assert.JSONEq(t, `{
		"event_id": "`+ev.ID.String()+`",
		"event_type": "ListingWithdrawn",
		"listing_id": "`+ev.ListingID.String()+`",
		"team_ids": ["t1"],
		"timestamp": "2024-01-02T03:04:05Z",
		"payload": {"listing_id": "x"}
	}`, string(msg.Data))
}
