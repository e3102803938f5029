package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blindattack4/backend/internal/domain"
)

// scriptedRandom replays fixed answers; once a script runs out it returns zero.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (s *scriptedRandom) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRandom) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

func play(t *testing.T, b *domain.Board, side domain.Side, cols ...int) {
	t.Helper()
	for _, col := range cols {
		_, err := b.MakeMove(col, side)
		require.NoError(t, err, "column %d", col)
	}
}

// randomPosition plays alternating random moves and returns a non-terminal board.
func randomPosition(t *testing.T, seed uint64, plies int) *domain.Board {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed+1))

	for attempt := 0; attempt < 100; attempt++ {
		b := domain.NewBoard()
		side := domain.Player
		for i := 0; i < plies && !b.Outcome().IsFinished(); i++ {
			valid := b.ValidMoves()
			_, err := b.MakeMove(valid[rng.IntN(len(valid))], side)
			require.NoError(t, err)
			side = side.Opponent()
		}
		if !b.Outcome().IsFinished() {
			return b
		}
	}
	t.Fatalf("no open position found for seed %d", seed)
	return nil
}
