package engine

import (
	"reflect"
	"testing"
)

// rowMajorMatrix lays out 1..size² row by row.
func rowMajorMatrix(size int) [][]int {
	m := make([][]int, size)
	for r := 0; r < size; r++ {
		m[r] = make([]int, size)
		for c := 0; c < size; c++ {
			m[r][c] = r*size + c + 1
		}
	}
	return m
}

func TestFinalizeValidation(t *testing.T) {
	dup := rowMajorMatrix(5)
	dup[4][4] = 1

	outOfRange := rowMajorMatrix(5)
	outOfRange[0][0] = 26

	tooLow := rowMajorMatrix(5)
	tooLow[0][0] = 0

	ragged := rowMajorMatrix(5)
	ragged[2] = ragged[2][:4]

	cases := []struct {
		name    string
		size    int
		matrix  [][]int
		wantErr bool
	}{
		{name: "valid 5x5 permutation", size: 5, matrix: rowMajorMatrix(5)},
		{name: "valid 7x7 permutation", size: 7, matrix: rowMajorMatrix(7)},
		{name: "valid 10x10 permutation", size: 10, matrix: rowMajorMatrix(10)},
		{name: "duplicate value", size: 5, matrix: dup, wantErr: true},
		{name: "value above range", size: 5, matrix: outOfRange, wantErr: true},
		{name: "value below range", size: 5, matrix: tooLow, wantErr: true},
		{name: "wrong row count", size: 5, matrix: rowMajorMatrix(4), wantErr: true},
		{name: "ragged row", size: 5, matrix: ragged, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(tc.size)
			err := b.Finalize(tc.matrix)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestFinalizeLeavesBoardUntouchedOnError(t *testing.T) {
	b := NewBoard(5)
	if err := b.Finalize(rowMajorMatrix(5)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b.Mark(1)

	bad := rowMajorMatrix(5)
	bad[0][0] = 99
	if err := b.Finalize(bad); err == nil {
		t.Fatalf("expected error")
	}
	if b.Cells[0][0] != 1 {
		t.Fatalf("cells changed on failed finalize: %v", b.Cells[0])
	}
	if !b.Marked[Cell{Row: 0, Col: 0}] {
		t.Fatalf("marks cleared on failed finalize")
	}
}

func TestMark(t *testing.T) {
	b := NewBoard(5)
	if err := b.Finalize(rowMajorMatrix(5)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	pos, marked := b.Mark(8)
	if !marked || pos != (Cell{Row: 1, Col: 2}) {
		t.Fatalf("Mark(8): got %v, %v", pos, marked)
	}

	// Re-marking the same cell is a no-op.
	pos, marked = b.Mark(8)
	if marked {
		t.Fatalf("second Mark(8) should not mark again")
	}
	if pos != (Cell{Row: 1, Col: 2}) {
		t.Fatalf("second Mark(8) lost the position: %v", pos)
	}
	if len(b.Marked) != 1 {
		t.Fatalf("want 1 marked cell, got %d", len(b.Marked))
	}

	// Off-board values are tolerated, not errors.
	if _, marked := b.Mark(999); marked {
		t.Fatalf("Mark(999) should report not present")
	}
}

func TestLineComplete(t *testing.T) {
	cases := []struct {
		name   string
		line   LineID
		values []int
	}{
		{name: "row", line: LineID{Kind: LineRow, Index: 1}, values: []int{6, 7, 8, 9, 10}},
		{name: "col", line: LineID{Kind: LineCol, Index: 2}, values: []int{3, 8, 13, 18, 23}},
		{name: "main diagonal", line: LineID{Kind: LineDiag, Index: 0}, values: []int{1, 7, 13, 19, 25}},
		{name: "anti diagonal", line: LineID{Kind: LineDiag, Index: 1}, values: []int{5, 9, 13, 17, 21}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(5)
			if err := b.Finalize(rowMajorMatrix(5)); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			for i, v := range tc.values {
				if b.LineComplete(tc.line) {
					t.Fatalf("line complete after only %d marks", i)
				}
				b.Mark(v)
			}
			if !b.LineComplete(tc.line) {
				t.Fatalf("line should be complete")
			}
		})
	}
}

func TestAllLinesCount(t *testing.T) {
	for _, size := range AllowedGridSizes {
		if got := len(AllLines(size)); got != 2*size+2 {
			t.Fatalf("size %d: want %d lines, got %d", size, 2*size+2, got)
		}
	}
}

func TestRandomMatrixIsPermutation(t *testing.T) {
	for _, size := range AllowedGridSizes {
		b := NewBoard(size)
		if err := b.Finalize(RandomMatrix(size)); err != nil {
			t.Fatalf("size %d: random matrix rejected: %v", size, err)
		}
	}
}

func TestLinePositionsString(t *testing.T) {
	line := LineID{Kind: LineDiag, Index: 1}
	want := []Cell{{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}}
	if got := line.Positions(5); !reflect.DeepEqual(got, want) {
		t.Fatalf("positions: got %v, want %v", got, want)
	}
	if line.String() != "diagonal-1" {
		t.Fatalf("string: got %q", line.String())
	}
	if (LineID{Kind: LineRow, Index: 3}).String() != "row-3" {
		t.Fatalf("row string wrong")
	}
}
