package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsPair upgrades one connection through a test server and returns both ends.
func wsPair(t *testing.T) (serverSide *websocket.Conn, clientSide *websocket.Conn) {
	t.Helper()

	upgraded := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		upgraded <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientSide, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { clientSide.Close() })

	select {
	case serverSide = <-upgraded:
	case <-time.After(2 * time.Second):
		t.Fatal("websocket upgrade timed out")
	}
	return serverSide, clientSide
}

func readEvent(t *testing.T, conn *websocket.Conn) *Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	evt := &Event{}
	require.NoError(t, json.Unmarshal(raw, evt))
	return evt
}

func TestRoomDeliversJoinAndLeaveEvents(t *testing.T) {
	cleanup := make(chan CleanupMsg, 1)
	room := NewRoom("Ab3xY9", PlayersMaxClients, cleanup)
	go room.Run()
	defer room.Stop()

	srvA, cliA := wsPair(t)
	alice := NewClient(room, srvA, 1, "alice")
	go alice.WritePump()
	room.RegisterClient(alice)

	evt := readEvent(t, cliA)
	assert.Equal(t, EventJoin, evt.Type)
	assert.Equal(t, int64(1), evt.SenderID)
	assert.Equal(t, "alice", evt.Sender)

	srvB, _ := wsPair(t)
	bob := NewClient(room, srvB, 2, "bob")
	go bob.WritePump()
	room.RegisterClient(bob)

	evt = readEvent(t, cliA)
	assert.Equal(t, EventJoin, evt.Type)
	assert.Equal(t, int64(2), evt.SenderID)

	room.UnregisterClient(bob)

	evt = readEvent(t, cliA)
	assert.Equal(t, EventLeave, evt.Type)
	assert.Equal(t, int64(2), evt.SenderID)
}

func TestRoomBroadcastReachesAllClients(t *testing.T) {
	cleanup := make(chan CleanupMsg, 1)
	room := NewRoom("Ab3xY9", PlayersMaxClients, cleanup)
	go room.Run()
	defer room.Stop()

	srvA, cliA := wsPair(t)
	alice := NewClient(room, srvA, 1, "alice")
	go alice.WritePump()
	room.RegisterClient(alice)
	readEvent(t, cliA)

	room.Broadcast(&Event{
		Type:     EventChat,
		RoomCode: room.Code,
		SenderID: 1,
		Sender:   "alice",
		SentAt:   time.Now(),
	})

	evt := readEvent(t, cliA)
	assert.Equal(t, EventChat, evt.Type)
	assert.Equal(t, "Ab3xY9", evt.RoomCode)
}

func TestRoomCleanupNotificationAfterShutdown(t *testing.T) {
	t.Parallel()

	cleanup := make(chan CleanupMsg)
	room := NewRoom("Ab3xY9", PlayersMaxClients, cleanup)

	room.Stop()
	close(cleanup)

	assert.NotPanics(t, room.requestCleanup)
}

func TestRoomCleanupNotificationDoesNotBlock(t *testing.T) {
	t.Parallel()

	// Unbuffered channel with no reader: the notification must be skipped,
	// not waited on.
	cleanup := make(chan CleanupMsg)
	room := NewRoom("Ab3xY9", PlayersMaxClients, cleanup)

	done := make(chan struct{})
	go func() {
		room.requestCleanup()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup notification blocked")
	}
}
