package domain

// Board is the 6x7 grid plus the move log that produced it.
// Row 0 is the bottom row. heights[c] counts the discs in column c, so the
// cells below heights[c] are filled and the ones above are Empty.
type Board struct {
	grid    [Rows][Columns]Cell
	heights [Columns]int
	moves   []Move
}

func NewBoard() *Board {
	return &Board{moves: make([]Move, 0, Rows*Columns)}
}

// At returns the cell at (row, col); row 0 is the bottom.
func (b *Board) At(row, col int) Cell {
	return b.grid[row][col]
}

// Grid returns a copy of the cells.
func (b *Board) Grid() [Rows][Columns]Cell {
	return b.grid
}

// Cells returns the grid as nested slices, bottom row first, for encoding.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, Rows)
	for r := range out {
		out[r] = append([]Cell(nil), b.grid[r][:]...)
	}
	return out
}

func (b *Board) Height(col int) int {
	return b.heights[col]
}

func (b *Board) MoveCount() int {
	return len(b.moves)
}

// Moves returns a copy of the move log.
func (b *Board) Moves() []Move {
	return append([]Move(nil), b.moves...)
}

// LastMove returns the most recent move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.moves) == 0 {
		return Move{}, false
	}
	return b.moves[len(b.moves)-1], true
}

func (b *Board) IsValidMove(col int) bool {
	if col < 0 || col >= Columns {
		return false
	}
	return b.grid[Rows-1][col] == Empty
}

// ValidMoves lists the playable columns in ascending order.
// An empty result means the board is full.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b.grid[Rows-1][col] == Empty {
			return false
		}
	}
	return true
}

// NextRow returns the lowest empty row of col, or NoRow when the column is full.
func (b *Board) NextRow(col int) int {
	for row := 0; row < Rows; row++ {
		if b.grid[row][col] == Empty {
			return row
		}
	}
	return NoRow
}

// CheckMove explains why col cannot be played, or returns nil.
func (b *Board) CheckMove(col int) error {
	if col < 0 || col >= Columns {
		return ErrColumnOutOfRange
	}
	if !b.IsValidMove(col) {
		return ErrColumnFull
	}
	return nil
}

// MakeMove drops a disc for side into col and records it.
// The board is left untouched when the move is invalid.
func (b *Board) MakeMove(col int, side Side) (Move, error) {
	if err := b.CheckMove(col); err != nil {
		return Move{}, err
	}

	row := b.NextRow(col)
	b.grid[row][col] = side.Cell()
	b.heights[col]++

	move := Move{Column: col, Side: side, Row: row}
	b.moves = append(b.moves, move)
	return move, nil
}

// UndoMove pops the last recorded move and clears its cell.
// Undoing an empty log is a programming error.
func (b *Board) UndoMove() Move {
	if len(b.moves) == 0 {
		panic("domain: UndoMove called on an empty move log")
	}

	last := b.moves[len(b.moves)-1]
	b.moves = b.moves[:len(b.moves)-1]
	b.grid[last.Row][last.Column] = Empty
	b.heights[last.Column]--
	return last
}

// MustMove is MakeMove for callers that already validated col, such as the
// search. A failure there means the caller broke the move/undo pairing.
func (b *Board) MustMove(col int, side Side) {
	if _, err := b.MakeMove(col, side); err != nil {
		panic("domain: move into column that was not validated: " + err.Error())
	}
}
