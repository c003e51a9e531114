package types

import "bingo-backend/internal/engine"

// ClientMessage is the JSON envelope for commands arriving over the
// websocket. Board may be omitted on set-board to request a
// server-generated random board.
type ClientMessage struct {
	Type   string  `json:"type"`
	Board  [][]int `json:"board,omitempty"`
	Number int     `json:"number,omitempty"`
}

// ServerMessage is the JSON envelope for events sent to clients.
type ServerMessage struct {
	Type    string             `json:"type"` // event name | "error"
	Game    *engine.GameView   `json:"game,omitempty"`
	Number  int                `json:"number,omitempty"`
	Winner  *engine.PlayerView `json:"winner,omitempty"`
	Message string             `json:"message,omitempty"`
}
