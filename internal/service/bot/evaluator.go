package bot

import (
	"github.com/blindattack4/backend/internal/domain"
)

const (
	// Score weights of the static evaluator (integers only, so results are reproducible)
	CENTER_WEIGHT         = 3
	FOUR_IN_ROW_WEIGHT    = 100
	THREE_OPEN_WEIGHT     = 5
	TWO_OPEN_WEIGHT       = 2
	OPPONENT_THREE_WEIGHT = -4
)

// EvaluateBoard scores the position from side's point of view; higher is better for side.
// The board is only read.
func EvaluateBoard(board *domain.Board, side domain.Side) int {
	opponent := side.Opponent()
	score := 0

	// Center column preference
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		if board.At(row, centerCol) == side.Cell() {
			score += CENTER_WEIGHT
		}
	}

	board.Windows(func(cells [domain.ToWin]domain.Cell) {
		score += scoreWindow(cells, side, opponent)
	})

	return score
}

// scoreWindow rates a single 4-cell window. Own patterns and the opponent's
// open three are scored independently and summed.
func scoreWindow(cells [domain.ToWin]domain.Cell, side, opponent domain.Side) int {
	own, opp, empty := 0, 0, 0
	for _, c := range cells {
		switch c {
		case side.Cell():
			own++
		case opponent.Cell():
			opp++
		default:
			empty++
		}
	}

	score := 0
	switch {
	case own == 4:
		score += FOUR_IN_ROW_WEIGHT
	case own == 3 && empty == 1:
		score += THREE_OPEN_WEIGHT
	case own == 2 && empty == 2:
		score += TWO_OPEN_WEIGHT
	}

	if opp == 3 && empty == 1 {
		score += OPPONENT_THREE_WEIGHT
	}

	return score
}
