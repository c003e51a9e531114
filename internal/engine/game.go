package engine

import (
	"errors"
	"slices"
)

var ErrInvalidConfig = errors.New("invalid room configuration")
var ErrRoomFull = errors.New("room is full")
var ErrAlreadyStarted = errors.New("game already started")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrInvalidBoard = errors.New("invalid board")
var ErrGameNotActive = errors.New("game is not active")
var ErrNotYourTurn = errors.New("not your turn")
var ErrNumberOutOfRange = errors.New("number out of range")
var ErrNumberAlreadyCalled = errors.New("number already called")

type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// WinLines is the number of completed lines that ends the game. Fixed at
// 5 for every grid size.
const WinLines = 5

// MinPlayers is the player count required before a game can start.
const MinPlayers = 2

var AllowedGridSizes = []int{5, 7, 10}
var AllowedMaxPlayers = []int{2, 4, 6, 8}

func ValidateConfig(gridSize, maxPlayers int) error {
	if !slices.Contains(AllowedGridSizes, gridSize) {
		return ErrInvalidConfig
	}
	if !slices.Contains(AllowedMaxPlayers, maxPlayers) {
		return ErrInvalidConfig
	}
	return nil
}

// Game is the authoritative state of one room: the joined players in
// turn order, the call history, and the phase machine
// waiting -> playing -> finished.
type Game struct {
	GridSize   int
	MaxPlayers int
	Players    []*Player
	Called     []int
	TurnIndex  int
	Phase      Phase
	WinnerID   string
}

func NewGame(gridSize, maxPlayers int) (*Game, error) {
	if err := ValidateConfig(gridSize, maxPlayers); err != nil {
		return nil, err
	}
	return &Game{
		GridSize:   gridSize,
		MaxPlayers: maxPlayers,
		Phase:      PhaseWaiting,
	}, nil
}

// AddPlayer appends a new, not-yet-ready player. Join order defines the
// turn rotation.
func (g *Game) AddPlayer(id, name string, avatar Avatar) error {
	if len(g.Players) >= g.MaxPlayers {
		return ErrRoomFull
	}
	if g.Phase != PhaseWaiting {
		return ErrAlreadyStarted
	}
	g.Players = append(g.Players, NewPlayer(id, name, avatar))
	return nil
}

// RemovePlayer drops a player in any phase. Reports whether the player
// was present. The turn index keeps its value and is clamped by modulo,
// so the next call resolves to a real player. A mid-game removal that
// leaves fewer than two players finishes the game immediately; the sole
// survivor, if any, wins by forfeit.
func (g *Game) RemovePlayer(id string) bool {
	idx := g.playerIndex(id)
	if idx < 0 {
		return false
	}
	g.Players = slices.Delete(g.Players, idx, idx+1)
	if len(g.Players) > 0 {
		g.TurnIndex %= len(g.Players)
	} else {
		g.TurnIndex = 0
	}
	if g.Phase == PhasePlaying && len(g.Players) < MinPlayers {
		g.Phase = PhaseFinished
		if len(g.Players) == 1 {
			g.WinnerID = g.Players[0].ID
		}
	}
	return true
}

// SetBoard finalizes a player's board and marks them ready. When every
// joined player is ready and at least MinPlayers are present, the game
// starts. Reports whether this call started the game.
func (g *Game) SetBoard(id string, matrix [][]int) (bool, error) {
	if g.Phase != PhaseWaiting {
		return false, ErrAlreadyStarted
	}
	idx := g.playerIndex(id)
	if idx < 0 {
		return false, ErrUnknownPlayer
	}
	p := g.Players[idx]
	board := NewBoard(g.GridSize)
	if err := board.Finalize(matrix); err != nil {
		return false, err
	}
	p.Board = board
	p.Ready = true

	if len(g.Players) >= MinPlayers && g.allReady() {
		g.Phase = PhasePlaying
		g.TurnIndex = 0
		return true, nil
	}
	return false, nil
}

// CallNumber applies one call by the player holding the turn: the number
// is recorded, every finalized board marks it, and line progress is
// recomputed. Returns the winner when this call ends the game; if the
// call completes WinLines for several players at once, the earliest
// joiner wins. The turn does not advance on the winning call.
func (g *Game) CallNumber(id string, number int) (*Player, error) {
	if g.Phase != PhasePlaying {
		return nil, ErrGameNotActive
	}
	if g.Players[g.TurnIndex].ID != id {
		return nil, ErrNotYourTurn
	}
	if number < 1 || number > g.GridSize*g.GridSize {
		return nil, ErrNumberOutOfRange
	}
	if slices.Contains(g.Called, number) {
		return nil, ErrNumberAlreadyCalled
	}

	g.Called = append(g.Called, number)
	for _, p := range g.Players {
		if p.Board == nil {
			continue
		}
		if _, marked := p.Board.Mark(number); marked {
			p.RecomputeLines()
		}
	}

	for _, p := range g.Players {
		if p.BingoCount >= WinLines {
			g.WinnerID = p.ID
			g.Phase = PhaseFinished
			return p, nil
		}
	}
	g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
	return nil, nil
}

// CurrentPlayer returns the player holding the turn, or nil for an empty
// room.
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.TurnIndex%len(g.Players)]
}

func (g *Game) playerIndex(id string) int {
	return slices.IndexFunc(g.Players, func(p *Player) bool { return p.ID == id })
}

func (g *Game) allReady() bool {
	for _, p := range g.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}
