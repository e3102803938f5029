package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/blindattack4/backend/internal/domain"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions *SessionManager
	Replays  ReplayStore
}

func NewService(sessions *SessionManager, replays ReplayStore) *Service {
	return &Service{
		Sessions: sessions,
		Replays:  replays,
	}
}

// ReplayFrame rebuilds the board of a game at step. A finished live session
// is read directly; otherwise the exported replay is loaded from the store.
// Games still in play cannot be replayed, since that would reveal the board.
func (s *Service) ReplayFrame(ctx context.Context, gameID string, step int) (domain.ReplayFrame, error) {
	replay, err := s.replay(ctx, gameID)
	if err != nil {
		return domain.ReplayFrame{}, err
	}
	return replay.Frame(step)
}

func (s *Service) replay(ctx context.Context, gameID string) (domain.ReplayRecord, error) {
	if session, ok := s.Sessions.GetSessionByGameID(gameID); ok {
		replay := session.Replay()
		if !replay.Outcome.IsFinished() {
			return domain.ReplayRecord{}, fmt.Errorf("game %s: %w", gameID, domain.ErrGameInProgress)
		}
		return replay, nil
	}
	if s.Replays == nil {
		return domain.ReplayRecord{}, fmt.Errorf("game %s: %w", gameID, domain.ErrReplayNotFound)
	}

	replay, err := s.Replays.GetReplay(ctx, gameID)
	if err != nil {
		if errors.Is(err, domain.ErrReplayNotFound) {
			return domain.ReplayRecord{}, err
		}
		return domain.ReplayRecord{}, fmt.Errorf("load replay %s: %w", gameID, err)
	}
	return replay, nil
}
