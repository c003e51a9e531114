package engine

import "strconv"

type LineKind int

const (
	LineRow LineKind = iota
	LineCol
	LineDiag
)

// LineID names one of the 2*size+2 winnable lines of a grid.
type LineID struct {
	Kind  LineKind
	Index int
}

func (l LineID) String() string {
	switch l.Kind {
	case LineRow:
		return "row-" + strconv.Itoa(l.Index)
	case LineCol:
		return "col-" + strconv.Itoa(l.Index)
	default:
		return "diagonal-" + strconv.Itoa(l.Index)
	}
}

// AllLines enumerates every candidate line for a size×size grid:
// size rows, size columns, and the two diagonals.
func AllLines(size int) []LineID {
	lines := make([]LineID, 0, 2*size+2)
	for i := 0; i < size; i++ {
		lines = append(lines, LineID{Kind: LineRow, Index: i})
	}
	for i := 0; i < size; i++ {
		lines = append(lines, LineID{Kind: LineCol, Index: i})
	}
	lines = append(lines, LineID{Kind: LineDiag, Index: 0}, LineID{Kind: LineDiag, Index: 1})
	return lines
}

// Positions maps a line to the cells it covers on a size×size grid.
func (l LineID) Positions(size int) []Cell {
	cells := make([]Cell, 0, size)
	switch l.Kind {
	case LineRow:
		for col := 0; col < size; col++ {
			cells = append(cells, Cell{Row: l.Index, Col: col})
		}
	case LineCol:
		for row := 0; row < size; row++ {
			cells = append(cells, Cell{Row: row, Col: l.Index})
		}
	case LineDiag:
		for i := 0; i < size; i++ {
			if l.Index == 0 {
				cells = append(cells, Cell{Row: i, Col: i})
			} else {
				cells = append(cells, Cell{Row: i, Col: size - 1 - i})
			}
		}
	}
	return cells
}
