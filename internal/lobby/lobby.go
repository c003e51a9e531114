package lobby

import (
	"context"
	"sync/atomic"

	"bingo-backend/internal/engine"
)

type Msg interface{ isLobbyMsg() }

// Join admits a new player and registers their event outbox. The first
// event on Outbox is joined-room with the current snapshot; everyone
// else gets player-joined.
type Join struct {
	PlayerID string
	Name     string
	Avatar   engine.Avatar
	Outbox   chan Event
	Reply    chan error
}

func (Join) isLobbyMsg() {}

// Leave removes a player in any phase. Reply is optional.
type Leave struct {
	PlayerID string
	Reply    chan error
}

func (Leave) isLobbyMsg() {}

// SetBoard finalizes the player's board; a nil matrix asks the server to
// generate a random one.
type SetBoard struct {
	PlayerID string
	Matrix   [][]int
	Reply    chan error
}

func (SetBoard) isLobbyMsg() {}

type CallNumber struct {
	PlayerID string
	Number   int
	Reply    chan error
}

func (CallNumber) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type EventType string

const (
	EvtJoinedRoom   EventType = "joined-room"
	EvtPlayerJoined EventType = "player-joined"
	EvtPlayerLeft   EventType = "player-left"
	EvtPlayerReady  EventType = "player-ready"
	EvtGameStarted  EventType = "game-started"
	EvtNumberCalled EventType = "number-called"
)

// Event is what clients receive after every successful mutation: the
// event name plus the fresh room snapshot.
type Event struct {
	Type   EventType
	Game   engine.GameView
	Number int
	Winner *engine.PlayerView
}

// View reflects internal state without data races; used by tests.
type View struct {
	Code       string
	NumClients int
	Game       engine.GameView
}

// Info is the cheap summary the hub reads when listing rooms.
type Info struct {
	Code        string
	GridSize    int
	MaxPlayers  int
	PlayerCount int
	Phase       engine.Phase
}

// Lobby serializes all mutations for one room: a single goroutine owns
// the game state and applies messages in arrival order, so two
// concurrent commands for the same room can never interleave.
type Lobby struct {
	code    string
	inbox   chan Msg
	game    *engine.Game
	clients map[string]chan Event
	info    atomic.Value // Info
	onEmpty func(code string)
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewLobby starts the room's actor goroutine. onEmpty runs on that
// goroutine when the last player leaves, right before shutdown.
func NewLobby(parent context.Context, code string, game *engine.Game, onEmpty func(code string)) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		code:    code,
		inbox:   make(chan Msg, 64),
		game:    game,
		clients: make(map[string]chan Event),
		onEmpty: onEmpty,
		ctx:     ctx,
		cancel:  cancel,
	}
	l.storeInfo()

	go l.loop()
	return l
}

// Expose the inbox so the gateway and tests can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Info returns the last published room summary.
func (l *Lobby) Info() Info { return l.info.Load().(Info) }

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				l.handleJoin(msg)

			case Leave:
				if empty := l.handleLeave(msg); empty {
					l.shutdown()
					return
				}

			case SetBoard:
				l.handleSetBoard(msg)

			case CallNumber:
				l.handleCallNumber(msg)

			case GetState:
				msg.Reply <- View{
					Code:       l.code,
					NumClients: len(l.clients),
					Game:       l.game.Snapshot(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handleJoin(msg Join) {
	if err := l.game.AddPlayer(msg.PlayerID, msg.Name, msg.Avatar); err != nil {
		reply(msg.Reply, err)
		return
	}
	l.clients[msg.PlayerID] = msg.Outbox
	l.storeInfo()
	reply(msg.Reply, nil)

	snap := l.game.Snapshot()
	msg.Outbox <- Event{Type: EvtJoinedRoom, Game: snap}
	l.broadcastExcept(msg.PlayerID, Event{Type: EvtPlayerJoined, Game: snap})
}

func (l *Lobby) handleLeave(msg Leave) bool {
	if ch, ok := l.clients[msg.PlayerID]; ok {
		close(ch)
		delete(l.clients, msg.PlayerID)
	}
	removed := l.game.RemovePlayer(msg.PlayerID)
	l.storeInfo()
	empty := len(l.game.Players) == 0
	if empty {
		// Tell the hub before releasing the caller, so a follow-up
		// registry lookup can no longer find this room.
		if l.onEmpty != nil {
			l.onEmpty(l.code)
		}
	} else if removed {
		l.broadcast(Event{Type: EvtPlayerLeft, Game: l.game.Snapshot()})
	}
	reply(msg.Reply, nil)
	return empty
}

func (l *Lobby) handleSetBoard(msg SetBoard) {
	matrix := msg.Matrix
	if matrix == nil {
		matrix = engine.RandomMatrix(l.game.GridSize)
	}
	started, err := l.game.SetBoard(msg.PlayerID, matrix)
	if err != nil {
		reply(msg.Reply, err)
		return
	}
	l.storeInfo()
	reply(msg.Reply, nil)

	snap := l.game.Snapshot()
	l.broadcast(Event{Type: EvtPlayerReady, Game: snap})
	if started {
		l.broadcast(Event{Type: EvtGameStarted, Game: snap})
	}
}

func (l *Lobby) handleCallNumber(msg CallNumber) {
	winner, err := l.game.CallNumber(msg.PlayerID, msg.Number)
	if err != nil {
		reply(msg.Reply, err)
		return
	}
	l.storeInfo()
	reply(msg.Reply, nil)

	ev := Event{Type: EvtNumberCalled, Number: msg.Number, Game: l.game.Snapshot()}
	if winner != nil {
		for _, pv := range ev.Game.Players {
			if pv.ID == winner.ID {
				w := pv
				ev.Winner = &w
				break
			}
		}
	}
	l.broadcast(ev)
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more events
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(ev Event) {
	l.broadcastExcept("", ev)
}

func (l *Lobby) broadcastExcept(skipID string, ev Event) {
	for id, ch := range l.clients {
		if id == skipID {
			continue
		}
		select {
		case ch <- ev:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
		}
	}
}

func (l *Lobby) storeInfo() {
	l.info.Store(Info{
		Code:        l.code,
		GridSize:    l.game.GridSize,
		MaxPlayers:  l.game.MaxPlayers,
		PlayerCount: len(l.game.Players),
		Phase:       l.game.Phase,
	})
}

func reply(ch chan error, err error) {
	if ch != nil {
		ch <- err
	}
}
