package engine

// Avatar is cosmetic display data chosen by the client; the engine only
// carries it through to snapshots.
type Avatar struct {
	Variant string   `json:"variant"`
	Colors  []string `json:"colors"`
}

type Player struct {
	ID             string
	Name           string
	Avatar         Avatar
	Board          *Board
	CompletedLines map[LineID]bool
	BingoCount     int
	Ready          bool
}

func NewPlayer(id, name string, avatar Avatar) *Player {
	return &Player{
		ID:             id,
		Name:           name,
		Avatar:         avatar,
		CompletedLines: make(map[LineID]bool),
	}
}

// RecomputeLines re-evaluates every candidate line and unions the newly
// complete ones into CompletedLines. Lines are never removed. Returns
// whether BingoCount grew, so callers can gate the winner check.
func (p *Player) RecomputeLines() bool {
	if p.Board == nil {
		return false
	}
	before := p.BingoCount
	for _, line := range AllLines(p.Board.Size) {
		if p.CompletedLines[line] {
			continue
		}
		if p.Board.LineComplete(line) {
			p.CompletedLines[line] = true
		}
	}
	p.BingoCount = len(p.CompletedLines)
	return p.BingoCount > before
}
