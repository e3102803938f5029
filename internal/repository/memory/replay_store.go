package memory

import (
	"context"
	"sync"
	"time"

	"github.com/blindattack4/backend/internal/domain"
)

type entry struct {
	replay    domain.ReplayRecord
	expiresAt time.Time
}

// ReplayStore keeps replays in process memory. It is the fallback when Redis
// is not configured; replays do not survive a restart.
type ReplayStore struct {
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
}

// NewReplayStore creates a store whose entries expire after ttl. With a ttl
// of zero entries never expire.
func NewReplayStore(ttl time.Duration) *ReplayStore {
	return &ReplayStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *ReplayStore) SaveReplay(ctx context.Context, replay domain.ReplayRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := entry{replay: replay}
	e.replay.Moves = append([]domain.Move(nil), replay.Moves...)
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[replay.GameID] = e
	s.mu.Unlock()
	return nil
}

func (s *ReplayStore) GetReplay(ctx context.Context, gameID string) (domain.ReplayRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReplayRecord{}, err
	}

	s.mu.RLock()
	e, ok := s.entries[gameID]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return domain.ReplayRecord{}, domain.ErrReplayNotFound
	}
	replay := e.replay
	replay.Moves = append([]domain.Move(nil), e.replay.Moves...)
	return replay, nil
}

// DeleteExpired drops expired entries and returns how many were removed.
func (s *ReplayStore) DeleteExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			count++
		}
	}
	return count
}

func (s *ReplayStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
