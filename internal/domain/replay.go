package domain

import (
	"fmt"
	"time"
)

// Replay rebuilds a board from an empty grid by applying the first upTo
// recorded moves in order. upTo is clamped to [0, len(moves)].
func Replay(moves []Move, upTo int) (*Board, error) {
	if upTo < 0 {
		upTo = 0
	}
	if upTo > len(moves) {
		upTo = len(moves)
	}

	board := NewBoard()
	for i := 0; i < upTo; i++ {
		m := moves[i]
		placed, err := board.MakeMove(m.Column, m.Side)
		if err != nil {
			return nil, fmt.Errorf("move %d (column %d): %w", i+1, m.Column, ErrReplayCorrupt)
		}
		if placed.Row != m.Row {
			return nil, fmt.Errorf("move %d landed on row %d, recorded %d: %w", i+1, placed.Row, m.Row, ErrReplayCorrupt)
		}
	}
	return board, nil
}

// ReplayRecord is the move log of one session, copied out when the session
// finishes or is discarded.
type ReplayRecord struct {
	GameID     string     `json:"gameId"`
	Difficulty Difficulty `json:"difficulty"`
	Moves      []Move     `json:"moves"`
	Outcome    Outcome    `json:"outcome"`
	Blunders   int        `json:"blunders"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt time.Time  `json:"finishedAt,omitempty"`
}

// ReplayFrame is the board after the first Step recorded moves.
type ReplayFrame struct {
	GameID     string   `json:"gameId"`
	Step       int      `json:"step"`
	TotalSteps int      `json:"totalSteps"`
	Board      [][]Cell `json:"board"`
	Move       *Move    `json:"move,omitempty"`
	Outcome    Outcome  `json:"outcome"`
}

// Frame rebuilds the record's board at step, clamped to [0, len(Moves)].
// Move is the move that produced the frame, nil at step 0.
func (r ReplayRecord) Frame(step int) (ReplayFrame, error) {
	step = max(0, min(step, len(r.Moves)))

	board, err := Replay(r.Moves, step)
	if err != nil {
		return ReplayFrame{}, err
	}

	frame := ReplayFrame{
		GameID:     r.GameID,
		Step:       step,
		TotalSteps: len(r.Moves),
		Board:      board.Cells(),
		Outcome:    board.Outcome(),
	}
	if m, ok := board.LastMove(); ok {
		frame.Move = &m
	}
	return frame, nil
}
