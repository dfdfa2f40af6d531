package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/mcdev12/transfermarket/go/internal/transfer/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startFeed(t *testing.T) (*feed.ConnectionManager, *httptest.Server) {
	t.Helper()
	cm := feed.NewConnectionManager(feed.DefaultConnectionConfig())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go cm.Start(ctx)

	mux := http.NewServeMux()
	feed.NewWebSocketHandler(cm).RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return cm, server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/market" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) events.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var env events.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func TestFeed_TeamFilter(t *testing.T) {
	cm, server := startFeed(t)
	teamA, teamB := uuid.NewString(), uuid.NewString()

	all := dial(t, server, "")
	onlyA := dial(t, server, "?team_id="+teamA)
	require.Eventually(t, func() bool {
		return cm.GetConnectionStats().TotalConnections == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, cm.GetConnectionStats().FilteredConnections)

	cm.Broadcast(events.Envelope{EventID: "1", EventType: events.EventTypeListingCreated, TeamIDs: []string{teamB}})
	cm.Broadcast(events.Envelope{EventID: "2", EventType: events.EventTypePlayerTransferred, TeamIDs: []string{teamB, teamA}})

	assert.Equal(t, "1", readEnvelope(t, all).EventID)
	assert.Equal(t, "2", readEnvelope(t, all).EventID)
	assert.Equal(t, "2", readEnvelope(t, onlyA).EventID)
}

func TestFeed_RejectsBadTeamID(t *testing.T) {
	_, server := startFeed(t)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/market?team_id=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := feed.DecodeEnvelope([]byte(`{"event_id":"e","event_type":"ListingUpdated","payload":{}}`))
	require.NoError(t, err)
	assert.Equal(t, events.EventTypeListingUpdated, env.EventType)

	_, err = feed.DecodeEnvelope([]byte(`{"event_type":"DraftStarted"}`))
	assert.Error(t, err)

	_, err = feed.DecodeEnvelope([]byte(`not json`))
	assert.Error(t, err)
}
