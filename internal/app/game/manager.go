/*
Package game holds the in-memory registry of live game rooms and the realtime
connections inside them.

The Manager owns the room map; each Room runs its own loop and asks the Manager
to remove it once it is empty.
*/
package game

import (
	"sync"

	"github.com/rs/zerolog"

	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/logx"
)

// CleanupMsg is sent by a Room when it wants to be removed from the registry.
type CleanupMsg struct {
	RoomCode string
}

// Manager coordinates all active game rooms.
type Manager struct {
	// rooms maps room codes to live Room instances.
	rooms map[string]*Room

	// mu protects concurrent access to the rooms map.
	mu sync.RWMutex

	// cleanup receives removal requests from rooms that emptied out.
	cleanup chan CleanupMsg

	// wg waits for the cleanup loop during shutdown.
	wg sync.WaitGroup

	logger zerolog.Logger
}

// NewManager constructs a Manager and starts its cleanup loop.
func NewManager() *Manager {
	m := &Manager{
		rooms:   make(map[string]*Room),
		cleanup: make(chan CleanupMsg, 10),
		logger:  logx.Logger().With().Str("component", "GameManager").Logger(),
	}

	m.wg.Add(1)

	go m.runCleanupLoop()

	return m
}

// runCleanupLoop removes rooms as they report themselves empty.
func (m *Manager) runCleanupLoop() {
	defer m.wg.Done()

	m.logger.Info().Msg("Room cleanup loop started.")

	for msg := range m.cleanup {
		m.deleteRoom(msg.RoomCode)
	}

	m.logger.Info().Msg("Room cleanup loop stopped.")
}

// deleteRoom removes the given room from the registry.
func (m *Manager) deleteRoom(roomCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[roomCode]; ok {
		delete(m.rooms, roomCode)
		m.logger.Info().Str("room_code", roomCode).Msg("Room removed.")
	}
}

// CreateRoom registers a new Room under the given code and starts its loop.
func (m *Manager) CreateRoom(roomCode string, maxClients int) (*Room, *errs.CustomError) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rooms == nil {
		return nil, errs.NewError(errs.ErrUnknown)
	}

	if _, ok := m.rooms[roomCode]; ok {
		m.logger.Warn().Str("room_code", roomCode).Msg("Attempted to create existing room.")
		return nil, errs.NewError(errs.ErrRoomCodeExists)
	}

	newRoom := NewRoom(roomCode, maxClients, m.cleanup)
	m.rooms[roomCode] = newRoom

	go newRoom.Run()

	m.logger.Info().Str("room_code", roomCode).Int("max_clients", maxClients).Msg("Room created and started.")
	return newRoom, nil
}

// GetRoom looks up a live room by its code.
func (m *Manager) GetRoom(roomCode string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	room, ok := m.rooms[roomCode]
	if !ok {
		return nil
	}
	return room
}

// Shutdown stops every room, closes the cleanup channel, and waits for the
// cleanup loop to drain.
func (m *Manager) Shutdown() {
	m.logger.Info().Msg("Shutting down game room manager...")

	m.mu.Lock()

	for _, room := range m.rooms {
		room.Stop()
	}
	m.rooms = nil

	m.mu.Unlock()

	close(m.cleanup)
	m.wg.Wait()

	m.logger.Info().Msg("Game room manager shutdown complete.")
}
