package bot

import (
	"context"

	"github.com/blindattack4/backend/internal/domain"
)

// Reason records which rule of the strategy ladder produced a move.
type Reason string

const (
	ReasonWin    Reason = "win"
	ReasonBlock  Reason = "block"
	ReasonRandom Reason = "random"
	ReasonSearch Reason = "search"
	ReasonNone   Reason = "none"
)

// Decision is the column chosen for the AI plus how it was chosen.
type Decision struct {
	Column int    `json:"column"`
	Reason Reason `json:"reason"`
	Score  int    `json:"score,omitempty"`
	Nodes  int    `json:"nodes,omitempty"`
}

// Engine picks AI moves for one difficulty profile. It is not safe for
// concurrent use; each game session owns its own engine.
type Engine struct {
	profile  domain.Profile
	rng      Random
	searcher *Searcher
}

func NewEngine(profile domain.Profile, rng Random) *Engine {
	return &Engine{
		profile:  profile,
		rng:      rng,
		searcher: NewSearcher(rng),
	}
}

// ChooseMove returns the AI's column without applying it. Immediate wins and
// blocks are taken on every difficulty; only open positions are subject to the
// random/search split of the profile. The board is unchanged on return.
func (e *Engine) ChooseMove(board *domain.Board) Decision {
	decision := e.choose(board)
	recordDecision(context.Background(), e.profile.Difficulty, decision)
	return decision
}

func (e *Engine) choose(board *domain.Board) Decision {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return Decision{Column: domain.NoMove, Reason: ReasonNone}
	}

	if col, ok := board.CanWinInOneMove(domain.AI); ok {
		return Decision{Column: col, Reason: ReasonWin}
	}

	if col, ok := board.CanWinInOneMove(domain.Player); ok {
		return Decision{Column: col, Reason: ReasonBlock}
	}

	if e.rng.Float64() < e.profile.RandomProbability() {
		return Decision{Column: pickRandom(e.rng, validColumns), Reason: ReasonRandom}
	}

	e.searcher.Reset()
	col, score := e.searcher.BestMove(board, e.profile.SearchDepth)
	return Decision{Column: col, Reason: ReasonSearch, Score: score, Nodes: e.searcher.Nodes()}
}
