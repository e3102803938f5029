package bot

import (
	"math"

	"github.com/blindattack4/backend/internal/domain"
)

const (
	MINIMAX_WIN  = 10000000
	MINIMAX_LOSS = -10000000
	MINIMAX_DRAW = 0
)

// Searcher runs depth-limited minimax with alpha-beta pruning on a live board.
// Every explored move is undone before the next sibling is tried, so the board
// is identical to its input whenever Search returns.
type Searcher struct {
	rng   Random
	nodes int
}

func NewSearcher(rng Random) *Searcher {
	return &Searcher{rng: rng}
}

// Nodes returns the number of positions visited since the last Reset.
func (s *Searcher) Nodes() int {
	return s.nodes
}

func (s *Searcher) Reset() {
	s.nodes = 0
}

// BestMove searches the full window from the AI's point of view.
func (s *Searcher) BestMove(board *domain.Board, depth int) (int, int) {
	return s.Search(board, depth, math.MinInt, math.MaxInt, true)
}

// Search returns the recommended column and its score. The AI maximizes and the
// Player minimizes. Leaves return NoMove. When no child beats the starting
// bound the pre-drawn random column is kept instead of favouring column 0.
func (s *Searcher) Search(board *domain.Board, depth, alpha, beta int, maximizing bool) (int, int) {
	s.nodes++

	validColumns := board.ValidMoves()

	// Terminal conditions
	if winner, won := board.CheckWinner(); won {
		if winner == domain.AI {
			return domain.NoMove, MINIMAX_WIN
		}
		return domain.NoMove, MINIMAX_LOSS
	}
	if len(validColumns) == 0 {
		return domain.NoMove, MINIMAX_DRAW
	}
	if depth == 0 {
		return domain.NoMove, EvaluateBoard(board, domain.AI)
	}

	bestCol := pickRandom(s.rng, validColumns)

	if maximizing {
		maxEval := math.MinInt
		for _, col := range validColumns {
			board.MustMove(col, domain.AI)
			_, eval := s.Search(board, depth-1, alpha, beta, false)
			board.UndoMove()

			if eval > maxEval {
				maxEval = eval
				bestCol = col
			}
			alpha = max(alpha, eval)
			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return bestCol, maxEval
	}

	minEval := math.MaxInt
	for _, col := range validColumns {
		board.MustMove(col, domain.Player)
		_, eval := s.Search(board, depth-1, alpha, beta, true)
		board.UndoMove()

		if eval < minEval {
			minEval = eval
			bestCol = col
		}
		beta = min(beta, eval)
		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return bestCol, minEval
}
