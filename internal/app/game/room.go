package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pongarena/internal/pkg/logx"
)

const (
	// PlayersMaxClients is the connection capacity of a two-player room
	// (both players plus a small spectator allowance).
	PlayersMaxClients = 10

	// idleTimeout is how long an empty room survives before asking the
	// manager to remove it.
	idleTimeout = 10 * time.Minute
)

// Event is the wire format broadcast to every connection in a room.
type Event struct {
	Type     string          `json:"type"`
	RoomCode string          `json:"roomCode"`
	SenderID int64           `json:"senderId,omitempty"`
	Sender   string          `json:"sender,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	SentAt   time.Time       `json:"sentAt"`
}

// Event types exchanged over the room channel.
const (
	EventJoin  = "join"
	EventLeave = "leave"
	EventChat  = "chat"
	EventState = "state"
)

// Room is one live game room: a set of websocket clients and a broadcast loop.
type Room struct {
	// Code is the public identifier players join with.
	Code string

	maxClients int

	// clients is owned by the Run loop; never touched from other goroutines.
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}

	// clientCount mirrors len(clients) for callers outside the Run loop.
	countMu     sync.RWMutex
	clientCount int

	cleanup chan<- CleanupMsg
	logger  zerolog.Logger
}

// NewRoom constructs a Room; the caller starts its Run loop.
func NewRoom(code string, maxClients int, cleanup chan<- CleanupMsg) *Room {
	return &Room{
		Code:       code,
		maxClients: maxClients,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
		stop:       make(chan struct{}),
		cleanup:    cleanup,
		logger:     logx.Logger().With().Str("component", "GameRoom").Str("room_code", code).Logger(),
	}
}

// IsFull reports whether the room reached its connection capacity.
func (r *Room) IsFull() bool {
	r.countMu.RLock()
	defer r.countMu.RUnlock()
	return r.clientCount >= r.maxClients
}

func (r *Room) setCount(n int) {
	r.countMu.Lock()
	r.clientCount = n
	r.countMu.Unlock()
}

// RegisterClient hands a new connection to the Run loop.
func (r *Room) RegisterClient(c *Client) {
	select {
	case r.register <- c:
	case <-r.stop:
		c.Close()
	}
}

// UnregisterClient hands a closing connection to the Run loop.
func (r *Room) UnregisterClient(c *Client) {
	select {
	case r.unregister <- c:
	case <-r.stop:
	}
}

// Broadcast queues an event for delivery to every client in the room.
// For callers outside the Run loop; the loop itself uses notify.
func (r *Room) Broadcast(evt *Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal room event.")
		return
	}

	select {
	case r.broadcast <- payload:
	case <-r.stop:
	}
}

// fanout delivers a payload to every connected client. Must run on the Run loop.
func (r *Room) fanout(payload []byte) {
	for client := range r.clients {
		client.Enqueue(payload)
	}
}

// notify marshals and fans out an event from inside the Run loop. It bypasses
// the broadcast channel, which only the loop drains, so the loop can never
// block on itself.
func (r *Room) notify(evt *Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal room event.")
		return
	}
	r.fanout(payload)
}

// requestCleanup asks the manager to drop this room. During shutdown the
// manager may have closed the cleanup channel already; the send is
// non-blocking and a panic from a closed channel is swallowed.
func (r *Room) requestCleanup() {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn().Msg("Cleanup channel closed before notification, skipping.")
		}
	}()

	select {
	case r.cleanup <- CleanupMsg{RoomCode: r.Code}:
	default:
		r.logger.Warn().Msg("Cleanup channel blocked or full, skipping notification.")
	}
}

// Stop terminates the Run loop and disconnects every client.
func (r *Room) Stop() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// Run is the room's event loop. It owns the client set: joins, leaves, fanout,
// and idle expiry all happen here, so no locking is needed on the map itself.
func (r *Room) Run() {
	idle := time.NewTimer(idleTimeout)
	defer idle.Stop()

	defer func() {
		for c := range r.clients {
			c.Close()
		}
		r.setCount(0)
	}()

	for {
		select {
		case client := <-r.register:
			r.clients[client] = struct{}{}
			r.setCount(len(r.clients))

			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}

			r.logger.Info().Int64("user_id", client.UserID).Msg("Client joined room.")
			r.notify(&Event{
				Type:     EventJoin,
				RoomCode: r.Code,
				SenderID: client.UserID,
				Sender:   client.Username,
				SentAt:   time.Now(),
			})

		case client := <-r.unregister:
			if _, ok := r.clients[client]; ok {
				delete(r.clients, client)
				r.setCount(len(r.clients))
				client.Close()

				r.logger.Info().Int64("user_id", client.UserID).Msg("Client left room.")
				r.notify(&Event{
					Type:     EventLeave,
					RoomCode: r.Code,
					SenderID: client.UserID,
					Sender:   client.Username,
					SentAt:   time.Now(),
				})
			}

			if len(r.clients) == 0 {
				idle.Reset(idleTimeout)
			}

		case payload := <-r.broadcast:
			r.fanout(payload)

		case <-idle.C:
			r.logger.Info().Msg("Room idle timeout reached, requesting cleanup.")
			r.requestCleanup()
			return

		case <-r.stop:
			return
		}
	}
}
