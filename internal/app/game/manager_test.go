package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pongarena/internal/pkg/errs"
)

func TestCreateAndGetRoom(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	room, customErr := m.CreateRoom("Ab3xY9", PlayersMaxClients)
	require.Nil(t, customErr)
	require.NotNil(t, room)
	assert.Equal(t, "Ab3xY9", room.Code)

	assert.Same(t, room, m.GetRoom("Ab3xY9"))
}

func TestCreateRoomDuplicateCode(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	_, customErr := m.CreateRoom("Ab3xY9", PlayersMaxClients)
	require.Nil(t, customErr)

	_, customErr = m.CreateRoom("Ab3xY9", PlayersMaxClients)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrRoomCodeExists, customErr.Code)
}

func TestGetRoomUnknownCode(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	assert.Nil(t, m.GetRoom("zzzzzz"))
}

func TestCreateRoomAfterShutdown(t *testing.T) {
	m := NewManager()
	m.Shutdown()

	_, customErr := m.CreateRoom("Ab3xY9", PlayersMaxClients)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUnknown, customErr.Code)
}

func TestRoomIsFullTracksCapacity(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	room, customErr := m.CreateRoom("Ab3xY9", 1)
	require.Nil(t, customErr)

	assert.False(t, room.IsFull())

	room.setCount(1)
	assert.True(t, room.IsFull())
}
