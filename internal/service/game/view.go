package game

import (
	"time"

	"github.com/blindattack4/backend/internal/domain"
)

// View is what the client sees of a session. In blind mode the board is only
// revealed once the game is over.
type View struct {
	GameID      string            `json:"gameId"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	BotName     string            `json:"botName"`
	Status      domain.GameStatus `json:"status"`
	Winner      domain.Side       `json:"winner,omitempty"`
	LastAIMove  int               `json:"lastAIMove"`
	MoveCount   int               `json:"moveCount"`
	Blunders    int               `json:"blunders"`
	AIMoveCount int               `json:"aiMoveCount"`
	ValidMoves  []int             `json:"validMoves"`
	Board       [][]domain.Cell   `json:"board,omitempty"`
}

// Summary is the end-of-game report.
type Summary struct {
	GameID      string            `json:"gameId"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	Result      string            `json:"result"`
	Outcome     domain.Outcome    `json:"outcome"`
	TotalMoves  int               `json:"totalMoves"`
	Blunders    int               `json:"blunders"`
	AIMoveCount int               `json:"aiMoveCount"`
	Duration    time.Duration     `json:"durationNs"`
	FinalBoard  [][]domain.Cell   `json:"finalBoard"`
	Moves       []domain.Move     `json:"moves"`
}

// Result strings, from the human's point of view.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.board.Outcome()
	v := View{
		GameID:      s.GameID,
		Difficulty:  s.Difficulty,
		BotName:     s.BotName,
		Status:      outcome.Status,
		Winner:      outcome.Winner,
		LastAIMove:  s.lastAIMove,
		MoveCount:   s.board.MoveCount(),
		Blunders:    s.blunders,
		AIMoveCount: s.aiMoves,
		ValidMoves:  s.validMovesLocked(),
	}
	if !s.blind || outcome.IsFinished() {
		v.Board = s.board.Cells()
	}
	return v
}

// BoardVisible reports whether the board, and so the move list, may be shown.
func (s *Session) BoardVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.blind || s.board.Outcome().IsFinished()
}

// Summary fails with ErrGameInProgress until the game has finished.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.board.Outcome()
	if !outcome.IsFinished() {
		return Summary{}, domain.ErrGameInProgress
	}

	result := ResultDraw
	switch {
	case outcome.Status == domain.StatusWon && outcome.Winner == domain.Player:
		result = ResultWin
	case outcome.Status == domain.StatusWon:
		result = ResultLoss
	}

	return Summary{
		GameID:      s.GameID,
		Difficulty:  s.Difficulty,
		Result:      result,
		Outcome:     outcome,
		TotalMoves:  s.board.MoveCount(),
		Blunders:    s.blunders,
		AIMoveCount: s.aiMoves,
		Duration:    s.FinishedAt.Sub(s.CreatedAt),
		FinalBoard:  s.board.Cells(),
		Moves:       s.board.Moves(),
	}, nil
}
