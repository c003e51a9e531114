package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bingo-backend/internal/engine"
	"bingo-backend/internal/lobby"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, zap.NewNop())
}

func createRoom(t *testing.T, h *Hub, gridSize, maxPlayers int) CreateReply {
	t.Helper()
	reply := make(chan CreateReply, 1)
	h.Inbox() <- CreateRoom{GridSize: gridSize, MaxPlayers: maxPlayers, Reply: reply}
	select {
	case res := <-reply:
		return res
	case <-time.After(time.Second):
		t.Fatalf("timed out creating room")
		return CreateReply{} // unreachable
	}
}

func getRoom(t *testing.T, h *Hub, code string) *lobby.Lobby {
	t.Helper()
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- GetRoom{Code: code, Reply: reply}
	select {
	case lb := <-reply:
		return lb
	case <-time.After(time.Second):
		t.Fatalf("timed out getting room")
		return nil // unreachable
	}
}

func listJoinable(t *testing.T, h *Hub) []RoomInfo {
	t.Helper()
	reply := make(chan []RoomInfo, 1)
	h.Inbox() <- ListJoinable{Reply: reply}
	select {
	case rooms := <-reply:
		return rooms
	case <-time.After(time.Second):
		t.Fatalf("timed out listing rooms")
		return nil // unreachable
	}
}

func joinPlayer(t *testing.T, lb *lobby.Lobby, id string) chan lobby.Event {
	t.Helper()
	out := make(chan lobby.Event, 16)
	reply := make(chan error, 1)
	lb.Inbox() <- lobby.Join{PlayerID: id, Name: id, Outbox: out, Reply: reply}
	require.NoError(t, <-reply)
	return out
}

func TestHub_CreateThenGetSameLobby(t *testing.T) {
	h := newTestHub(t)

	res := createRoom(t, h, 5, 4)
	require.NoError(t, res.Err)
	require.Len(t, res.Code, 6)
	require.NotNil(t, res.Lobby)

	require.Same(t, res.Lobby, getRoom(t, h, res.Code))
}

func TestHub_CreateRejectsInvalidConfig(t *testing.T) {
	h := newTestHub(t)

	for _, cfg := range [][2]int{{6, 4}, {5, 3}, {0, 0}} {
		res := createRoom(t, h, cfg[0], cfg[1])
		require.ErrorIs(t, res.Err, engine.ErrInvalidConfig)
		require.Nil(t, res.Lobby)
	}
	require.Empty(t, listJoinable(t, h))
}

func TestHub_GetUnknownRoomIsNil(t *testing.T) {
	h := newTestHub(t)
	require.Nil(t, getRoom(t, h, "NOSUCH"))
}

func TestHub_ListJoinableFiltersFullAndStartedRooms(t *testing.T) {
	h := newTestHub(t)

	open := createRoom(t, h, 5, 4)
	require.NoError(t, open.Err)
	full := createRoom(t, h, 5, 2)
	require.NoError(t, full.Err)
	started := createRoom(t, h, 5, 2)
	require.NoError(t, started.Err)

	joinPlayer(t, open.Lobby, "a")

	joinPlayer(t, full.Lobby, "b")
	joinPlayer(t, full.Lobby, "c")

	joinPlayer(t, started.Lobby, "d")
	joinPlayer(t, started.Lobby, "e")
	reply := make(chan error, 1)
	started.Lobby.Inbox() <- lobby.SetBoard{PlayerID: "d", Reply: reply}
	require.NoError(t, <-reply)
	started.Lobby.Inbox() <- lobby.SetBoard{PlayerID: "e", Reply: reply}
	require.NoError(t, <-reply)

	rooms := listJoinable(t, h)
	require.Len(t, rooms, 1)
	require.Equal(t, open.Code, rooms[0].RoomID)
	require.Equal(t, 1, rooms[0].PlayerCount)
	require.Equal(t, 4, rooms[0].MaxPlayers)
	require.Equal(t, 5, rooms[0].GridSize)
}

func TestHub_RemovesRoomOnceEmpty(t *testing.T) {
	h := newTestHub(t)

	res := createRoom(t, h, 5, 4)
	require.NoError(t, res.Err)
	joinPlayer(t, res.Lobby, "a")

	reply := make(chan error, 1)
	res.Lobby.Inbox() <- lobby.Leave{PlayerID: "a", Reply: reply}
	require.NoError(t, <-reply)

	require.Nil(t, getRoom(t, h, res.Code))
	require.Empty(t, listJoinable(t, h))
}
