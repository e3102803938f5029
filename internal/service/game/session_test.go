package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindattack4/backend/internal/domain"
	"github.com/blindattack4/backend/internal/service/bot"
)

func newTestSession(t *testing.T, d domain.Difficulty, blind bool) *Session {
	t.Helper()
	profile, err := domain.ProfileFor(d)
	require.NoError(t, err)
	return NewSession(profile, bot.NewRandom(7), blind)
}

func human(t *testing.T, s *Session, cols ...int) []MoveResult {
	t.Helper()
	var out []MoveResult
	for _, col := range cols {
		res := s.ApplyHumanMove(col)
		require.True(t, res.Accepted, "column %d", col)
		out = append(out, res)
	}
	return out
}

func ai(t *testing.T, s *Session, cols ...int) {
	t.Helper()
	for _, col := range cols {
		_, err := s.ApplyAIMove(col)
		require.NoError(t, err, "column %d", col)
	}
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, domain.Hard, true)

	assert.NotEmpty(t, s.GameID)
	assert.Equal(t, domain.Hard, s.Difficulty)
	assert.Equal(t, "Charles", s.BotName)
	assert.Empty(t, s.MoveHistory())
	assert.Zero(t, s.Blunders())
	assert.Zero(t, s.AIMoveCount())
	assert.Equal(t, domain.Outcome{Status: domain.StatusActive}, s.CheckOutcome())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.ValidMoves())
}

func TestBlunderDetection(t *testing.T) {
	t.Run("stacking without a threat is not a blunder", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		for _, res := range human(t, s, 0, 0, 0) {
			assert.False(t, res.Blunder)
		}
		assert.Zero(t, s.Blunders())
	})

	t.Run("ignoring an open three is a blunder", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 1, 2, 3)

		res := s.ApplyHumanMove(5)
		assert.True(t, res.Accepted)
		assert.True(t, res.Blunder)
		assert.Equal(t, 1, s.Blunders())
		assert.Equal(t, domain.StatusActive, s.CheckOutcome().Status)
	})

	t.Run("taking either winning column is not a blunder", func(t *testing.T) {
		for _, col := range []int{0, 4} {
			s := newTestSession(t, domain.Easy, true)
			human(t, s, 1, 2, 3)

			res := s.ApplyHumanMove(col)
			assert.False(t, res.Blunder, "column %d", col)
			assert.Equal(t, domain.Outcome{Status: domain.StatusWon, Winner: domain.Player}, s.CheckOutcome())
		}
	})

	t.Run("counted once per missed move", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 1, 2, 3)
		human(t, s, 6)
		human(t, s, 6)
		assert.Equal(t, 2, s.Blunders())
	})

	t.Run("rejected moves are not judged", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 1, 2, 3)

		res := s.ApplyHumanMove(9)
		assert.False(t, res.Accepted)
		assert.False(t, res.Blunder)
		assert.Zero(t, s.Blunders())
	})
}

func TestApplyHumanMoveRejects(t *testing.T) {
	s := newTestSession(t, domain.Medium, true)
	human(t, s, 0, 0, 0)
	ai(t, s, 0)
	human(t, s, 0, 0)

	before := s.MoveHistory()
	for _, col := range []int{-1, 7, 0} {
		res := s.ApplyHumanMove(col)
		assert.False(t, res.Accepted, "column %d", col)
	}
	assert.Equal(t, before, s.MoveHistory())
	assert.False(t, s.IsValidMove(0))
	assert.True(t, s.IsValidMove(1))
}

func TestPlayerWinsAlongBottomRow(t *testing.T) {
	s := newTestSession(t, domain.Medium, true)

	human(t, s, 3)
	ai(t, s, 6)
	human(t, s, 2)
	ai(t, s, 6)
	human(t, s, 1)
	ai(t, s, 6)
	res := human(t, s, 0)[0]

	assert.False(t, res.Blunder)
	assert.Equal(t, domain.Move{Column: 0, Side: domain.Player, Row: 0}, res.Move)
	assert.Equal(t, domain.Outcome{Status: domain.StatusWon, Winner: domain.Player}, s.CheckOutcome())
	assert.Len(t, s.MoveHistory(), 7)
	assert.False(t, s.FinishedAt.IsZero())

	t.Run("no further moves", func(t *testing.T) {
		assert.False(t, s.ApplyHumanMove(4).Accepted)
		_, err := s.ApplyAIMove(4)
		assert.ErrorIs(t, err, domain.ErrGameOver)
		assert.Equal(t, domain.NoMove, s.ComputeAIMove())
		assert.Empty(t, s.ValidMoves())
	})

	t.Run("history replays to the final board", func(t *testing.T) {
		board, err := domain.Replay(s.MoveHistory(), len(s.MoveHistory()))
		require.NoError(t, err)
		assert.Equal(t, domain.Outcome{Status: domain.StatusWon, Winner: domain.Player}, board.Outcome())
		assert.Equal(t, s.View().Board, board.Cells())
	})
}

func TestComputeAIMoveDoesNotApply(t *testing.T) {
	s := newTestSession(t, domain.VeryHard, true)
	human(t, s, 0, 1, 2)

	col := s.ComputeAIMove()
	assert.Equal(t, 3, col)
	assert.Len(t, s.MoveHistory(), 3)
	assert.Equal(t, 1, s.AIMoveCount())

	s.ComputeAIMove()
	assert.Equal(t, 2, s.AIMoveCount())

	move, err := s.ApplyAIMove(col)
	require.NoError(t, err)
	assert.Equal(t, domain.Move{Column: 3, Side: domain.AI, Row: 0}, move)
	assert.Equal(t, 3, s.View().LastAIMove)
}

func TestPlayTurn(t *testing.T) {
	t.Run("ai replies", func(t *testing.T) {
		s := newTestSession(t, domain.Medium, true)
		res, err := s.PlayTurn(3)
		require.NoError(t, err)

		assert.Equal(t, domain.Move{Column: 3, Side: domain.Player, Row: 0}, res.Human)
		require.NotNil(t, res.AI)
		assert.Equal(t, domain.AI, res.AI.Side)
		assert.Equal(t, domain.StatusActive, res.Outcome.Status)
		assert.Len(t, s.MoveHistory(), 2)
		assert.Equal(t, 1, s.AIMoveCount())
	})

	t.Run("ai blocks", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 0, 1)

		res, err := s.PlayTurn(2)
		require.NoError(t, err)
		require.NotNil(t, res.AI)
		assert.Equal(t, 3, res.AI.Column)
		assert.Equal(t, bot.ReasonBlock, res.AIReason)
	})

	t.Run("winning move ends the turn", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 0, 1, 2)

		res, err := s.PlayTurn(3)
		require.NoError(t, err)
		assert.Nil(t, res.AI)
		assert.Equal(t, domain.Outcome{Status: domain.StatusWon, Winner: domain.Player}, res.Outcome)
		assert.Zero(t, s.AIMoveCount())
	})

	t.Run("ai takes its win", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		ai(t, s, 5, 5, 5)

		res, err := s.PlayTurn(0)
		require.NoError(t, err)
		require.NotNil(t, res.AI)
		assert.Equal(t, 5, res.AI.Column)
		assert.Equal(t, domain.Outcome{Status: domain.StatusWon, Winner: domain.AI}, res.Outcome)
	})

	t.Run("invalid column", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		_, err := s.PlayTurn(7)
		assert.ErrorIs(t, err, domain.ErrInvalidMove)
		assert.ErrorIs(t, err, domain.ErrColumnOutOfRange)
		assert.Empty(t, s.MoveHistory())
	})

	t.Run("game over", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 0, 1, 2, 3)
		_, err := s.PlayTurn(4)
		assert.ErrorIs(t, err, domain.ErrGameOver)
	})
}

func TestPlayTurnUntilFinished(t *testing.T) {
	// Whatever the AI does, a game played to the end is consistent.
	s := newTestSession(t, domain.Easy, true)
	for !s.CheckOutcome().IsFinished() {
		valid := s.ValidMoves()
		require.NotEmpty(t, valid)
		_, err := s.PlayTurn(valid[len(valid)-1])
		require.NoError(t, err)
	}

	history := s.MoveHistory()
	board, err := domain.Replay(history, len(history))
	require.NoError(t, err)
	assert.Equal(t, s.CheckOutcome(), board.Outcome())

	summary, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, len(history), summary.TotalMoves)
	assert.Contains(t, []string{ResultWin, ResultLoss, ResultDraw}, summary.Result)
}

func TestView(t *testing.T) {
	t.Run("blind hides the board while playing", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 3)

		v := s.View()
		assert.Nil(t, v.Board)
		assert.Equal(t, 1, v.MoveCount)
		assert.Equal(t, domain.NoMove, v.LastAIMove)
		assert.Equal(t, domain.StatusActive, v.Status)
		assert.Equal(t, "Alice", v.BotName)
	})

	t.Run("blind reveals the board at the end", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, true)
		human(t, s, 0, 1, 2, 3)

		v := s.View()
		require.NotNil(t, v.Board)
		assert.Equal(t, domain.PlayerDisc, v.Board[0][3])
		assert.Equal(t, domain.Player, v.Winner)
		assert.Empty(t, v.ValidMoves)
	})

	t.Run("sighted mode always shows the board", func(t *testing.T) {
		s := newTestSession(t, domain.Easy, false)
		human(t, s, 3)
		assert.NotNil(t, s.View().Board)
	})
}

func TestSummary(t *testing.T) {
	s := newTestSession(t, domain.Hard, true)
	human(t, s, 1, 2, 3)
	human(t, s, 6)
	ai(t, s, 0)

	_, err := s.Summary()
	assert.ErrorIs(t, err, domain.ErrGameInProgress)

	human(t, s, 4)
	summary, err := s.Summary()
	require.NoError(t, err)

	assert.Equal(t, ResultWin, summary.Result)
	assert.Equal(t, 6, summary.TotalMoves)
	assert.Equal(t, 1, summary.Blunders)
	assert.Len(t, summary.Moves, 6)
	assert.Equal(t, domain.PlayerDisc, summary.FinalBoard[0][4])
	assert.GreaterOrEqual(t, summary.Duration, time.Duration(0))
}
