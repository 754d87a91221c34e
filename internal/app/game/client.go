package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pongarena/internal/pkg/logx"
)

const (
	// writeWait is the deadline for a single websocket write.
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong before dropping the connection.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds a single inbound frame.
	maxMessageSize = 4096

	// sendQueueSize bounds the per-client outbound buffer.
	sendQueueSize = 64
)

// inboundFrame is what a connected client may send: chat text or a game state
// blob relayed verbatim to the other participants.
type inboundFrame struct {
	Type string          `json:"type"`
	Body string          `json:"body,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client is one websocket connection inside a room.
type Client struct {
	// UserID and Username identify the authenticated session owner.
	UserID   int64
	Username string

	room *Room
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

// NewClient wraps an upgraded connection for the given room and user.
func NewClient(room *Room, conn *websocket.Conn, userID int64, username string) *Client {
	return &Client{
		UserID:   userID,
		Username: username,
		room:     room,
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
	}
}

// Enqueue queues a payload for delivery. A client that cannot keep up is
// dropped rather than allowed to stall the room loop.
func (c *Client) Enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		logx.Warn("Dropping slow websocket client", "user_id", c.UserID, "room_code", c.room.Code)
		// Enqueue runs on the room loop; unregister must not block it.
		go c.room.UnregisterClient(c)
	}
}

// Close shuts the send channel and the underlying connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// ReadPump consumes inbound frames until the connection dies, relaying chat
// and state frames to the room. It must run on the connection's reader
// goroutine; the caller blocks on it.
func (c *Client) ReadPump() {
	defer c.room.UnregisterClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warn("Websocket closed unexpectedly", "user_id", c.UserID, "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case EventChat:
			if frame.Body == "" {
				continue
			}
			c.room.Broadcast(&Event{
				Type:     EventChat,
				RoomCode: c.room.Code,
				SenderID: c.UserID,
				Sender:   c.Username,
				Data:     mustRaw(frame.Body),
				SentAt:   time.Now(),
			})
		case EventState:
			c.room.Broadcast(&Event{
				Type:     EventState,
				RoomCode: c.room.Code,
				SenderID: c.UserID,
				Sender:   c.Username,
				Data:     frame.Data,
				SentAt:   time.Now(),
			})
		}
	}
}

// WritePump flushes the send queue and keeps the connection alive with pings.
// It runs on its own goroutine, one per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// mustRaw wraps a plain string as a JSON value.
func mustRaw(s string) json.RawMessage {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return raw
}
