package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindattack4/backend/internal/domain"
)

// referenceMinimax is the unpruned search with the same leaf scoring.
func referenceMinimax(b *domain.Board, depth int, maximizing bool) int {
	if winner, won := b.CheckWinner(); won {
		if winner == domain.AI {
			return MINIMAX_WIN
		}
		return MINIMAX_LOSS
	}
	valid := b.ValidMoves()
	if len(valid) == 0 {
		return MINIMAX_DRAW
	}
	if depth == 0 {
		return EvaluateBoard(b, domain.AI)
	}

	side := domain.Player
	if maximizing {
		side = domain.AI
	}

	best := 0
	for i, col := range valid {
		b.MustMove(col, side)
		score := referenceMinimax(b, depth-1, !maximizing)
		b.UndoMove()

		if i == 0 || (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}
	return best
}

func TestSearchMatchesExhaustiveMinimax(t *testing.T) {
	for seed := uint64(1); seed <= 12; seed++ {
		b := randomPosition(t, seed, int(4+seed%10))

		for depth := 1; depth <= 4; depth++ {
			s := NewSearcher(rand.New(rand.NewPCG(seed, 99)))
			move, score := s.BestMove(b, depth)

			want := referenceMinimax(b, depth, true)
			require.Equal(t, want, score, "seed %d depth %d", seed, depth)
			require.Contains(t, b.ValidMoves(), move)

			// The recommended move must actually achieve the reported score.
			b.MustMove(move, domain.AI)
			child := referenceMinimax(b, depth-1, false)
			b.UndoMove()
			require.Equal(t, score, child, "seed %d depth %d move %d", seed, depth, move)
		}
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	b := randomPosition(t, 21, 11)
	grid := b.Grid()
	moves := b.Moves()

	s := NewSearcher(rand.New(rand.NewPCG(1, 2)))
	s.BestMove(b, 5)

	assert.Equal(t, grid, b.Grid())
	assert.Equal(t, moves, b.Moves())
	assert.Positive(t, s.Nodes())
}

func TestSearchTakesImmediateWin(t *testing.T) {
	b := domain.NewBoard()
	play(t, b, domain.AI, 0, 1, 2)
	play(t, b, domain.Player, 6, 6, 5)

	for depth := 1; depth <= 4; depth++ {
		move, score := NewSearcher(&scriptedRandom{}).BestMove(b, depth)
		assert.Equal(t, 3, move, "depth %d", depth)
		assert.Equal(t, MINIMAX_WIN, score, "depth %d", depth)
	}
}

func TestSearchBlocksImmediateLoss(t *testing.T) {
	b := domain.NewBoard()
	play(t, b, domain.Player, 0, 1, 2)
	play(t, b, domain.AI, 6, 6)

	move, score := NewSearcher(&scriptedRandom{}).BestMove(b, 2)
	assert.Equal(t, 3, move)
	assert.Greater(t, score, MINIMAX_LOSS)
}

func TestSearchLeafScores(t *testing.T) {
	t.Run("depth zero evaluates for the AI", func(t *testing.T) {
		b := domain.NewBoard()
		play(t, b, domain.AI, 3)
		move, score := NewSearcher(&scriptedRandom{}).Search(b, 0, -1, 1, true)
		assert.Equal(t, domain.NoMove, move)
		assert.Equal(t, EvaluateBoard(b, domain.AI), score)
	})

	t.Run("player win", func(t *testing.T) {
		b := domain.NewBoard()
		play(t, b, domain.Player, 2, 2, 2, 2)
		move, score := NewSearcher(&scriptedRandom{}).BestMove(b, 3)
		assert.Equal(t, domain.NoMove, move)
		assert.Equal(t, MINIMAX_LOSS, score)
	})
}

func TestSearchMoveIsAlwaysLegal(t *testing.T) {
	// The starting column is drawn at random, so only legality is asserted.
	for seed := uint64(100); seed < 130; seed++ {
		b := randomPosition(t, seed, 20)
		move, _ := NewSearcher(rand.New(rand.NewPCG(seed, seed))).BestMove(b, 3)
		assert.Contains(t, b.ValidMoves(), move, "seed %d", seed)
	}
}
