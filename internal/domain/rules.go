package domain

// window is four co-linear contiguous cells, as (row, col) pairs.
type window [ToWin][2]int

// windows holds every horizontal, vertical and diagonal window of the grid.
var windows = buildWindows()

func buildWindows() []window {
	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal /
		{-1, 1}, // diagonal \
	}

	var out []window
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, dir := range directions {
				endRow := row + dir[0]*(ToWin-1)
				endCol := col + dir[1]*(ToWin-1)
				if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
					continue
				}
				var w window
				for i := 0; i < ToWin; i++ {
					w[i] = [2]int{row + dir[0]*i, col + dir[1]*i}
				}
				out = append(out, w)
			}
		}
	}
	return out
}

// WindowCount is the number of distinct 4-cell windows on the board.
func WindowCount() int {
	return len(windows)
}

// Windows calls fn with the contents of every window on the board.
func (b *Board) Windows(fn func(cells [ToWin]Cell)) {
	for _, w := range windows {
		var cells [ToWin]Cell
		for i, pos := range w {
			cells[i] = b.grid[pos[0]][pos[1]]
		}
		fn(cells)
	}
}

// CheckWinner scans every window and reports the side owning a full one.
func (b *Board) CheckWinner() (Side, bool) {
	for _, w := range windows {
		first := b.grid[w[0][0]][w[0][1]]
		if first == Empty {
			continue
		}
		if b.grid[w[1][0]][w[1][1]] == first &&
			b.grid[w[2][0]][w[2][1]] == first &&
			b.grid[w[3][0]][w[3][1]] == first {
			return first.Side()
		}
	}
	return 0, false
}

// IsDraw is true only when the board is full and nobody has won.
func (b *Board) IsDraw() bool {
	if !b.IsFull() {
		return false
	}
	_, won := b.CheckWinner()
	return !won
}

// Outcome reports whether the position is won, drawn or still active.
func (b *Board) Outcome() Outcome {
	if winner, ok := b.CheckWinner(); ok {
		return Outcome{Status: StatusWon, Winner: winner}
	}
	if b.IsDraw() {
		return Outcome{Status: StatusDraw}
	}
	return Outcome{Status: StatusActive}
}

// CanWinInOneMove returns the lowest column in which side wins immediately.
// Each candidate is placed, checked and undone, so the board is unchanged on return.
func (b *Board) CanWinInOneMove(side Side) (int, bool) {
	for _, col := range b.ValidMoves() {
		b.MustMove(col, side)
		winner, won := b.CheckWinner()
		b.UndoMove()

		if won && winner == side {
			return col, true
		}
	}
	return NoMove, false
}
