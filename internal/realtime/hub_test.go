package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	e := echo.New()
	e.GET("/ws", hub.ServeWS(NamespacePublic))
	e.GET("/ws/admin", hub.ServeWS(NamespaceAdmin))

	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, ns string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount(ns) == n }, 2*time.Second, 10*time.Millisecond)
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(msg, &got))
	return got
}

func TestHub_PublishReachesOnlyNamespace(t *testing.T) {
	hub, base := newHubServer(t)

	public := dial(t, base+"/ws")
	admin := dial(t, base+"/ws/admin")
	waitClients(t, hub, NamespacePublic, 1)
	waitClients(t, hub, NamespaceAdmin, 1)

	hub.Publish(context.Background(), Event{
		Name:      EventNewOrder,
		Namespace: NamespaceAdmin,
		Data:      map[string]any{"order_id": 1},
	})

	got := readEvent(t, admin)
	assert.Equal(t, EventNewOrder, got["event"])
	assert.EqualValues(t, 1, got["data"].(map[string]any)["order_id"])

	require.NoError(t, public.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := public.ReadMessage()
	require.Error(t, err)
}

func TestHub_PublishWithoutListenersIsDropped(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Publish(context.Background(), Event{Name: EventOrderUpdate, Namespace: NamespacePublic})
	})
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, base := newHubServer(t)

	conn := dial(t, base+"/ws")
	waitClients(t, hub, NamespacePublic, 1)

	require.NoError(t, conn.Close())
	waitClients(t, hub, NamespacePublic, 0)
}

type fakeSink struct {
	key   string
	event any
	err   error
}

func (f *fakeSink) PublishEvent(_ context.Context, key string, event any) error {
	f.key = key
	f.event = event
	return f.err
}

func TestNotifier_MirrorsToSink(t *testing.T) {
	sink := &fakeSink{}
	n := &Notifier{Hub: NewHub(), Sink: sink}

	n.Publish(context.Background(), Event{
		Name:      EventOrderUpdate,
		Namespace: NamespacePublic,
		Key:       "5",
		Data:      map[string]any{"order_id": 5, "status": "ready"},
	})

	assert.Equal(t, "5", sink.key)
	se, ok := sink.event.(streamEvent)
	require.True(t, ok)
	assert.Equal(t, EventOrderUpdate, se.Type)
	assert.Equal(t, NamespacePublic, se.Namespace)
}

func TestNotifier_SinkErrorIsSwallowed(t *testing.T) {
	n := &Notifier{Sink: &fakeSink{err: errors.New("broker down")}}
	assert.NotPanics(t, func() {
		n.Publish(context.Background(), Event{Name: EventNewOrder, Namespace: NamespaceAdmin})
	})
}
