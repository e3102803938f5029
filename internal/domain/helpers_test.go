package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFromRows builds a board from a picture drawn top row first, using
// '.' for Empty, 'P' for Player and 'A' for AI. Gravity is not checked.
func boardFromRows(t *testing.T, picture ...string) *Board {
	t.Helper()
	require.Len(t, picture, Rows)

	b := NewBoard()
	for i, line := range picture {
		require.Len(t, line, Columns)
		row := Rows - 1 - i
		for col, ch := range line {
			switch ch {
			case 'P':
				b.grid[row][col] = PlayerDisc
			case 'A':
				b.grid[row][col] = AIDisc
			case '.':
			default:
				t.Fatalf("unexpected cell %q", ch)
			}
		}
	}
	for col := 0; col < Columns; col++ {
		b.heights[col] = 0
		for row := 0; row < Rows && b.grid[row][col] != Empty; row++ {
			b.heights[col]++
		}
	}
	return b
}

// play drops discs for side into the given columns in order.
func play(t *testing.T, b *Board, side Side, cols ...int) {
	t.Helper()
	for _, col := range cols {
		_, err := b.MakeMove(col, side)
		require.NoError(t, err, "column %d", col)
	}
}

var drawnBoard = []string{
	"AAPPAAP",
	"PPAAPPA",
	"AAPPAAP",
	"PPAAPPA",
	"AAPPAAP",
	"PPAAPPA",
}
