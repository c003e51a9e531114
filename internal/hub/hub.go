package hub

import (
	"context"
	"crypto/rand"
	"math/big"

	"go.uber.org/zap"

	"bingo-backend/internal/engine"
	"bingo-backend/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

// CreateRoom validates the config, allocates a fresh room code, and
// starts the room's lobby.
type CreateRoom struct {
	GridSize   int
	MaxPlayers int
	Reply      chan CreateReply
}

type CreateReply struct {
	Code  string
	Lobby *lobby.Lobby
	Err   error
}

type GetRoom struct {
	Code  string
	Reply chan *lobby.Lobby // nil when absent
}

// ListJoinable returns rooms still waiting for players with a free seat.
type ListJoinable struct {
	Reply chan []RoomInfo
}

// RemoveRoom drops a room from the registry; sent by a lobby itself once
// its last player leaves.
type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()   {}
func (GetRoom) isHubMsg()      {}
func (ListJoinable) isHubMsg() {}
func (RemoveRoom) isHubMsg()   {}
func (ShutdownHub) isHubMsg()  {}

// RoomInfo is the joinable-rooms listing entry.
type RoomInfo struct {
	RoomID      string `json:"roomId"`
	GridSize    int    `json:"gridSize"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
}

// Hub is the process-wide registry of rooms. A single goroutine owns the
// code->lobby map; rooms themselves run independently.
type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				msg.Reply <- h.createRoom(msg)

			case GetRoom:
				msg.Reply <- h.lobbies[msg.Code] // May be nil

			case ListJoinable:
				msg.Reply <- h.listJoinable()

			case RemoveRoom:
				if _, ok := h.lobbies[msg.Code]; ok {
					delete(h.lobbies, msg.Code)
					h.log.Info("room removed", zap.String("room", msg.Code))
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) createRoom(msg CreateRoom) CreateReply {
	game, err := engine.NewGame(msg.GridSize, msg.MaxPlayers)
	if err != nil {
		return CreateReply{Err: err}
	}

	var code string
	for {
		c, err := GenerateCode()
		if err != nil {
			return CreateReply{Err: err}
		}
		if _, taken := h.lobbies[c]; !taken {
			code = c
			break
		}
		h.log.Warn("room code collision, regenerating", zap.String("room", c))
	}

	lb := lobby.NewLobby(h.ctx, code, game, func(code string) {
		h.inbox <- RemoveRoom{Code: code}
	})
	h.lobbies[code] = lb
	h.log.Info("room created",
		zap.String("room", code),
		zap.Int("gridSize", msg.GridSize),
		zap.Int("maxPlayers", msg.MaxPlayers),
	)
	return CreateReply{Code: code, Lobby: lb}
}

func (h *Hub) listJoinable() []RoomInfo {
	out := make([]RoomInfo, 0, len(h.lobbies))
	for _, lb := range h.lobbies {
		info := lb.Info()
		if info.Phase != engine.PhaseWaiting || info.PlayerCount >= info.MaxPlayers {
			continue
		}
		out = append(out, RoomInfo{
			RoomID:      info.Code,
			GridSize:    info.GridSize,
			PlayerCount: info.PlayerCount,
			MaxPlayers:  info.MaxPlayers,
		})
	}
	return out
}

func (h *Hub) shutdown() {
	for _, lb := range h.lobbies {
		lb.Inbox() <- lobby.Shutdown{}
	}
	clear(h.lobbies)
	h.cancel()
}

// GenerateCode returns a 6-character human-shareable room code.
func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}
