package engine

import "sort"

// PlayerView is the externally visible projection of one player.
// MarkedCells uses the "row-col" wire form the clients key on.
type PlayerView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Avatar         Avatar   `json:"avatar"`
	Board          [][]int  `json:"board"`
	MarkedCells    []string `json:"markedCells"`
	CompletedLines []string `json:"completedLines"`
	BingoCount     int      `json:"bingoCount"`
	IsReady        bool     `json:"isReady"`
}

// GameView is the complete room snapshot broadcast after every mutation.
type GameView struct {
	GridSize      int          `json:"gridSize"`
	MaxPlayers    int          `json:"maxPlayers"`
	Players       []PlayerView `json:"players"`
	CurrentPlayer string       `json:"currentPlayer"`
	CalledNumbers []int        `json:"calledNumbers"`
	GameState     Phase        `json:"gameState"`
	Winner        string       `json:"winner,omitempty"`
}

// Snapshot projects the game into its external view. Pure: repeated
// calls with no intervening command return identical values.
func (g *Game) Snapshot() GameView {
	view := GameView{
		GridSize:      g.GridSize,
		MaxPlayers:    g.MaxPlayers,
		Players:       make([]PlayerView, 0, len(g.Players)),
		CalledNumbers: append([]int(nil), g.Called...),
		GameState:     g.Phase,
		Winner:        g.WinnerID,
	}
	if cp := g.CurrentPlayer(); cp != nil {
		view.CurrentPlayer = cp.ID
	}
	for _, p := range g.Players {
		view.Players = append(view.Players, projectPlayer(p))
	}
	return view
}

func projectPlayer(p *Player) PlayerView {
	pv := PlayerView{
		ID:             p.ID,
		Name:           p.Name,
		Avatar:         p.Avatar,
		MarkedCells:    []string{},
		CompletedLines: []string{},
		BingoCount:     p.BingoCount,
		IsReady:        p.Ready,
	}
	if p.Board != nil {
		pv.Board = make([][]int, p.Board.Size)
		for i, row := range p.Board.Cells {
			pv.Board[i] = append([]int(nil), row...)
		}
		marked := make([]Cell, 0, len(p.Board.Marked))
		for pos := range p.Board.Marked {
			marked = append(marked, pos)
		}
		sort.Slice(marked, func(i, j int) bool {
			if marked[i].Row != marked[j].Row {
				return marked[i].Row < marked[j].Row
			}
			return marked[i].Col < marked[j].Col
		})
		for _, pos := range marked {
			pv.MarkedCells = append(pv.MarkedCells, pos.String())
		}
	}
	for line := range p.CompletedLines {
		pv.CompletedLines = append(pv.CompletedLines, line.String())
	}
	sort.Strings(pv.CompletedLines)
	return pv
}
