package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/blindattack4/backend/internal/domain"
	"github.com/blindattack4/backend/internal/service/bot"
	"github.com/blindattack4/backend/pkg/uid"
)

// Session is one human-vs-AI game. It owns the board, the move log and the
// per-game counters; every exported method takes the session lock.
type Session struct {
	GameID     string
	Difficulty domain.Difficulty
	BotName    string
	CreatedAt  time.Time
	FinishedAt time.Time

	board        *domain.Board
	engine       *bot.Engine
	blunders     int
	aiMoves      int
	lastAIMove   int
	lastActivity time.Time
	blind        bool
	exported     bool
	onFinish     func(domain.ReplayRecord)
	now          func() time.Time
	mu           sync.Mutex
}

// MoveResult is the answer to one human move.
type MoveResult struct {
	Accepted bool        `json:"accepted"`
	Blunder  bool        `json:"blunder"`
	Move     domain.Move `json:"move"`
}

// TurnResult is one full click: the human move and, if the game went on, the
// AI reply.
type TurnResult struct {
	Human    domain.Move    `json:"human"`
	Blunder  bool           `json:"blunder"`
	AI       *domain.Move   `json:"ai,omitempty"`
	AIReason bot.Reason     `json:"aiReason,omitempty"`
	Outcome  domain.Outcome `json:"outcome"`
}

func NewSession(profile domain.Profile, rng bot.Random, blind bool) *Session {
	now := time.Now()
	return &Session{
		GameID:       uid.GenerateGameID(),
		Difficulty:   profile.Difficulty,
		BotName:      profile.BotName,
		CreatedAt:    now,
		board:        domain.NewBoard(),
		engine:       bot.NewEngine(profile, rng),
		lastAIMove:   domain.NoMove,
		lastActivity: now,
		blind:        blind,
		now:          time.Now,
	}
}

func (s *Session) IsValidMove(col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.board.Outcome().IsFinished() && s.board.IsValidMove(col)
}

// ValidMoves lists the open columns, or nothing once the game is over.
func (s *Session) ValidMoves() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.validMovesLocked()
}

func (s *Session) validMovesLocked() []int {
	if s.board.Outcome().IsFinished() {
		return []int{}
	}
	return s.board.ValidMoves()
}

// ApplyHumanMove validates col, runs blunder detection on the pre-move board
// and places the Player disc. Rejected moves change nothing.
func (s *Session) ApplyHumanMove(col int) MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, _ := s.applyHumanLocked(col)
	return res
}

func (s *Session) applyHumanLocked(col int) (MoveResult, error) {
	if s.board.Outcome().IsFinished() {
		return MoveResult{}, domain.ErrGameOver
	}
	if err := s.board.CheckMove(col); err != nil {
		return MoveResult{}, fmt.Errorf("%w: %w", domain.ErrInvalidMove, err)
	}

	blunder := s.isBlunderLocked(col)
	if blunder {
		s.blunders++
	}

	move, err := s.placeLocked(col, domain.Player)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Accepted: true, Blunder: blunder, Move: move}, nil
}

// isBlunderLocked runs on the pre-move board: a win was available and col
// does not take one. With two winning columns either counts as taken.
func (s *Session) isBlunderLocked(col int) bool {
	winCol, ok := s.board.CanWinInOneMove(domain.Player)
	if !ok || winCol == col {
		return false
	}

	s.board.MustMove(col, domain.Player)
	winner, won := s.board.CheckWinner()
	s.board.UndoMove()
	return !won || winner != domain.Player
}

func (s *Session) CheckOutcome() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Outcome()
}

// ComputeAIMove returns the AI's column without applying it. It returns
// NoMove once the game is over.
func (s *Session) ComputeAIMove() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.computeAILocked().Column
}

func (s *Session) computeAILocked() bot.Decision {
	if s.board.Outcome().IsFinished() {
		return bot.Decision{Column: domain.NoMove, Reason: bot.ReasonNone}
	}
	s.aiMoves++
	return s.engine.ChooseMove(s.board)
}

// ApplyAIMove places an AI disc through the same path as human moves.
func (s *Session) ApplyAIMove(col int) (domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board.Outcome().IsFinished() {
		return domain.Move{}, domain.ErrGameOver
	}
	return s.placeLocked(col, domain.AI)
}

// placeLocked is the single placement path for both sides.
func (s *Session) placeLocked(col int, side domain.Side) (domain.Move, error) {
	move, err := s.board.MakeMove(col, side)
	if err != nil {
		return domain.Move{}, fmt.Errorf("%w: %w", domain.ErrInvalidMove, err)
	}

	s.lastActivity = s.now()
	if side == domain.AI {
		s.lastAIMove = col
	}

	if s.board.Outcome().IsFinished() {
		s.FinishedAt = s.lastActivity
		if s.onFinish != nil && !s.exported {
			s.exported = true
			s.onFinish(s.replayLocked())
		}
	}
	return move, nil
}

// PlayTurn runs one click: human move, outcome check and, while the game is
// still on, the AI reply applied through the same placement path.
func (s *Session) PlayTurn(col int) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	human, err := s.applyHumanLocked(col)
	if err != nil {
		return TurnResult{}, err
	}

	result := TurnResult{Human: human.Move, Blunder: human.Blunder}
	if outcome := s.board.Outcome(); outcome.IsFinished() {
		result.Outcome = outcome
		return result, nil
	}

	decision := s.computeAILocked()
	aiMove, err := s.placeLocked(decision.Column, domain.AI)
	if err != nil {
		return TurnResult{}, fmt.Errorf("apply ai move: %w", err)
	}

	result.AI = &aiMove
	result.AIReason = decision.Reason
	result.Outcome = s.board.Outcome()
	return result, nil
}

// MoveHistory returns a copy of the move log.
func (s *Session) MoveHistory() []domain.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Moves()
}

func (s *Session) Blunders() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.blunders
}

func (s *Session) AIMoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.aiMoves
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActivity
}

// Replay snapshots the move log for export.
func (s *Session) Replay() domain.ReplayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replayLocked()
}

func (s *Session) replayLocked() domain.ReplayRecord {
	return domain.ReplayRecord{
		GameID:     s.GameID,
		Difficulty: s.Difficulty,
		Moves:      s.board.Moves(),
		Outcome:    s.board.Outcome(),
		Blunders:   s.blunders,
		CreatedAt:  s.CreatedAt,
		FinishedAt: s.FinishedAt,
	}
}

// takeExport returns the replay if it has not been exported yet and marks it
// exported. Empty games have nothing to export.
func (s *Session) takeExport() (domain.ReplayRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exported || s.board.MoveCount() == 0 {
		return domain.ReplayRecord{}, false
	}
	s.exported = true
	return s.replayLocked(), true
}
