package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blindattack4/backend/internal/domain"
	"github.com/blindattack4/backend/internal/service/bot"
)

// ReplayStore keeps the move logs of sessions that have ended.
type ReplayStore interface {
	SaveReplay(ctx context.Context, replay domain.ReplayRecord) error
	GetReplay(ctx context.Context, gameID string) (domain.ReplayRecord, error)
}

type Options struct {
	// Blind hides the board from views until the game is over.
	Blind bool
	// Seed makes AI randomness reproducible; 0 seeds every session randomly.
	Seed uint64
	// SaveTimeout bounds one replay export.
	SaveTimeout time.Duration
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*Session // gameID → Session
	mu       sync.RWMutex
	replays  ReplayStore
	opts     Options
	created  uint64
	saves    sync.WaitGroup
	saveMu   sync.Mutex // guards closed and saves.Add
	closed   bool
}

func NewSessionManager(replays ReplayStore, opts Options) *SessionManager {
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = 5 * time.Second
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		replays:  replays,
		opts:     opts,
	}
}

func (sm *SessionManager) CreateSession(difficulty domain.Difficulty) (*Session, error) {
	profile, err := domain.ProfileFor(difficulty)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.created++
	var rng bot.Random
	if sm.opts.Seed != 0 {
		rng = bot.NewRandom(sm.opts.Seed + sm.created)
	} else {
		rng = bot.NewRandom(0)
	}

	session := NewSession(profile, rng, sm.opts.Blind)
	session.onFinish = sm.saveReplayAsync
	sm.sessions[session.GameID] = session

	slog.Info("[SESSION] Created session",
		"game_id", session.GameID, "difficulty", profile.Difficulty, "bot", profile.BotName)
	return session, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

// Session is GetSessionByGameID returning ErrSessionNotFound for unknown ids.
func (sm *SessionManager) Session(gameID string) (*Session, error) {
	session, ok := sm.GetSessionByGameID(gameID)
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, domain.ErrSessionNotFound)
	}
	return session, nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.sessions)
}

// RemoveSession discards a session, exporting its move log first if that has
// not happened yet.
func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	session, exists := sm.sessions[gameID]
	if !exists {
		sm.mu.Unlock()
		return fmt.Errorf("game %s: %w", gameID, domain.ErrSessionNotFound)
	}
	delete(sm.sessions, gameID)
	sm.mu.Unlock()

	slog.Info("[SESSION] Removing session", "game_id", gameID)
	sm.export(session)
	return nil
}

// CleanupIdleSessions removes sessions with no move for longer than idle and
// returns how many were removed. Activity is read without the manager lock
// held, so a session busy in an AI search only delays its own check.
func (sm *SessionManager) CleanupIdleSessions(idle time.Duration) int {
	now := time.Now()

	sm.mu.RLock()
	candidates := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		candidates = append(candidates, session)
	}
	sm.mu.RUnlock()

	var stale []*Session
	for _, session := range candidates {
		if now.Sub(session.LastActivity()) <= idle {
			continue
		}
		if sm.removeIfSame(session) {
			stale = append(stale, session)
		}
	}

	for _, session := range stale {
		sm.export(session)
	}

	if len(stale) > 0 {
		slog.Info("[SESSION] Memory cleanup: removed stale game sessions", "count", len(stale))
	}
	return len(stale)
}

// removeIfSame deletes the map entry only if it still points at session.
func (sm *SessionManager) removeIfSame(session *Session) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.sessions[session.GameID] != session {
		return false
	}
	delete(sm.sessions, session.GameID)
	return true
}

// Close removes every session, exports their move logs and waits for all
// pending saves. Exports requested after Close are saved synchronously.
func (sm *SessionManager) Close() {
	sm.mu.Lock()
	remaining := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		remaining = append(remaining, session)
	}
	clear(sm.sessions)
	sm.mu.Unlock()

	for _, session := range remaining {
		sm.export(session)
	}

	sm.saveMu.Lock()
	sm.closed = true
	sm.saveMu.Unlock()

	sm.saves.Wait()
	slog.Info("[SESSION] Session manager closed", "exported", len(remaining))
}

// Wait blocks until every pending replay export has returned.
func (sm *SessionManager) Wait() {
	sm.saves.Wait()
}

func (sm *SessionManager) export(session *Session) {
	if replay, ok := session.takeExport(); ok {
		sm.saveReplayAsync(replay)
	}
}

// saveReplayAsync stores the replay in the background so a finished turn is
// answered without waiting on the store. Once the manager is closed the save
// runs in the caller instead.
func (sm *SessionManager) saveReplayAsync(replay domain.ReplayRecord) {
	if sm.replays == nil {
		return
	}

	sm.saveMu.Lock()
	if sm.closed {
		sm.saveMu.Unlock()
		sm.saveReplay(replay)
		return
	}
	sm.saves.Add(1)
	sm.saveMu.Unlock()

	go func() {
		defer sm.saves.Done()
		sm.saveReplay(replay)
	}()
}

func (sm *SessionManager) saveReplay(replay domain.ReplayRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), sm.opts.SaveTimeout)
	defer cancel()

	if err := sm.replays.SaveReplay(ctx, replay); err != nil {
		slog.Error("[REPLAY] Error saving replay", "game_id", replay.GameID, "error", err)
		return
	}
	slog.Info("[REPLAY] Replay saved", "game_id", replay.GameID, "moves", len(replay.Moves))
}
