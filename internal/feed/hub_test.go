package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hoopbot/internal/core/events/bus"
)

type received struct {
	Type   string         `json:"type"`
	Source string         `json:"source"`
	Data   map[string]any `json:"data"`
}

func startHub(t *testing.T, opts Options) (*Hub, bus.EventBus, string) {
	t.Helper()
	hub := NewHub(nil, opts)
	events := bus.New()
	require.NoError(t, hub.Attach(events))

	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		_ = hub.Close()
		srv.Close()
	})
	return hub, events, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBroadcastsBusEvents(t *testing.T) {
	hub, events, url := startHub(t, DefaultOptions())
	a := dial(t, url, nil)
	b := dial(t, url, nil)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)

	payload := map[string]any{"chance": 95.3, "made": true}
	require.NoError(t, events.Publish(bus.NewEvent(bus.TypeShotDecided, "test", payload)))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg received
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, bus.TypeShotDecided, msg.Type)
		require.Equal(t, "test", msg.Source)
		require.Equal(t, true, msg.Data["made"])
		require.InDelta(t, 95.3, msg.Data["chance"], 1e-9)
	}

	broadcasts, dropped := hub.Stats()
	require.Equal(t, uint64(1), broadcasts)
	require.Zero(t, dropped)
}

func TestViewerDisconnect(t *testing.T) {
	hub, _, url := startHub(t, DefaultOptions())
	conn := dial(t, url, nil)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestOriginCheck(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowedOrigins = []string{"http://court.local"}
	hub, _, url := startHub(t, opts)

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://elsewhere"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	dial(t, url, http.Header{"Origin": {"http://court.local"}})
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
}

func TestCloseDetaches(t *testing.T) {
	hub, events, url := startHub(t, DefaultOptions())
	dial(t, url, nil)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Close())
	require.Zero(t, hub.Clients())

	require.NoError(t, events.Publish(bus.NewEvent(bus.TypeShotFrame, "test", nil)))
	broadcasts, _ := hub.Stats()
	require.Zero(t, broadcasts)
}

func TestSlowViewerDropDoesNotBlock(t *testing.T) {
	hub := NewHub(nil, Options{SendBuffer: 1})
	// No writer goroutine and no socket: dropping must not touch the connection.
	c := newConnection(nil, 1, time.Second)
	require.True(t, c.enqueue([]byte("backlog")))
	hub.clients[c.id] = c

	start := time.Now()
	require.NoError(t, hub.Broadcast(Message{Type: bus.TypeShotFrame, Source: "test"}))
	require.Less(t, time.Since(start), 100*time.Millisecond)

	_, dropped := hub.Stats()
	require.Equal(t, uint64(1), dropped)
	require.Zero(t, hub.Clients())
	require.True(t, c.IsClosed())
	require.False(t, c.enqueue([]byte("late")))
}
