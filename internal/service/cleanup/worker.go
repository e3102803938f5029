package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// SessionSweeper removes sessions idle for longer than the given duration.
type SessionSweeper interface {
	CleanupIdleSessions(idle time.Duration) int
}

// ExpiringStore is implemented by replay stores that expire entries in
// process rather than relying on the backend.
type ExpiringStore interface {
	DeleteExpired() int
}

type Worker struct {
	Sessions SessionSweeper
	Replays  ExpiringStore // optional
	Idle     time.Duration
	Interval time.Duration
}

func NewWorker(sessions SessionSweeper, replays ExpiringStore, idle, interval time.Duration) *Worker {
	return &Worker{Sessions: sessions, Replays: replays, Idle: idle, Interval: interval}
}

// Start runs one sweep immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		w.RunOnce()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.RunOnce()
			}
		}
	}()
	slog.Info("[CLEANUP] Background worker started", "interval", interval, "idle", w.Idle)
}

// RunOnce executes a single sweep and returns the removed session and
// replay counts.
func (w *Worker) RunOnce() (sessions, replays int) {
	slog.Debug("[CLEANUP] Starting scheduled cleanup task")

	sessions = w.Sessions.CleanupIdleSessions(w.Idle)

	if w.Replays != nil {
		replays = w.Replays.DeleteExpired()
		if replays > 0 {
			slog.Info("[CLEANUP] Removed expired replays", "count", replays)
		}
	}
	return sessions, replays
}
