package engine

import (
	"math/rand"
	"strconv"
)

// Cell is a (row, col) position on a board.
type Cell struct {
	Row int
	Col int
}

// String renders the wire form used in snapshots, e.g. "2-4".
func (c Cell) String() string {
	return strconv.Itoa(c.Row) + "-" + strconv.Itoa(c.Col)
}

// Board is one player's size×size grid plus the set of marked positions.
// Cells holds 0 (unassigned) until Finalize replaces the whole matrix.
type Board struct {
	Size   int
	Cells  [][]int
	Marked map[Cell]bool
}

func NewBoard(size int) *Board {
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}
	return &Board{
		Size:   size,
		Cells:  cells,
		Marked: make(map[Cell]bool),
	}
}

// Finalize installs a fully populated matrix. The matrix must be
// size×size and its flattened values exactly the permutation 1..size².
// The board is untouched when validation fails.
func (b *Board) Finalize(matrix [][]int) error {
	if len(matrix) != b.Size {
		return ErrInvalidBoard
	}
	seen := make(map[int]bool, b.Size*b.Size)
	for _, row := range matrix {
		if len(row) != b.Size {
			return ErrInvalidBoard
		}
		for _, v := range row {
			if v < 1 || v > b.Size*b.Size || seen[v] {
				return ErrInvalidBoard
			}
			seen[v] = true
		}
	}
	cells := make([][]int, b.Size)
	for i, row := range matrix {
		cells[i] = make([]int, b.Size)
		copy(cells[i], row)
	}
	b.Cells = cells
	b.Marked = make(map[Cell]bool)
	return nil
}

// Mark scans for value and marks its cell. The bool reports whether a
// cell was newly marked; a value not on the board, or one whose cell is
// already marked, returns false.
func (b *Board) Mark(value int) (Cell, bool) {
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == value {
				pos := Cell{Row: row, Col: col}
				if b.Marked[pos] {
					return pos, false
				}
				b.Marked[pos] = true
				return pos, true
			}
		}
	}
	return Cell{}, false
}

// LineComplete reports whether every cell of the line is marked.
func (b *Board) LineComplete(id LineID) bool {
	for _, pos := range id.Positions(b.Size) {
		if !b.Marked[pos] {
			return false
		}
	}
	return true
}

// RandomMatrix returns a shuffled permutation of 1..size² laid out
// row-major, for players who skip manual board setup.
func RandomMatrix(size int) [][]int {
	numbers := make([]int, size*size)
	for i := range numbers {
		numbers[i] = i + 1
	}
	rand.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})
	matrix := make([][]int, size)
	for i := range matrix {
		matrix[i] = numbers[i*size : (i+1)*size]
	}
	return matrix
}
