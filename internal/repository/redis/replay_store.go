package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blindattack4/backend/internal/domain"
)

const replayKeyPrefix = "replay:"

// ReplayStore keeps finished move logs as JSON strings with a TTL.
type ReplayStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewReplayStore(client redis.Cmdable, ttl time.Duration) *ReplayStore {
	return &ReplayStore{client: client, ttl: ttl}
}

func replayKey(gameID string) string {
	return replayKeyPrefix + gameID
}

func (s *ReplayStore) SaveReplay(ctx context.Context, replay domain.ReplayRecord) error {
	payload, err := json.Marshal(replay)
	if err != nil {
		return fmt.Errorf("encode replay %s: %w", replay.GameID, err)
	}
	if err := s.client.Set(ctx, replayKey(replay.GameID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store replay %s: %w", replay.GameID, err)
	}
	return nil
}

func (s *ReplayStore) GetReplay(ctx context.Context, gameID string) (domain.ReplayRecord, error) {
	payload, err := s.client.Get(ctx, replayKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ReplayRecord{}, domain.ErrReplayNotFound
	}
	if err != nil {
		return domain.ReplayRecord{}, fmt.Errorf("load replay %s: %w", gameID, err)
	}

	return decodeReplay(gameID, payload)
}

// decodeReplay rejects payloads that do not name a known difficulty.
func decodeReplay(gameID string, payload []byte) (domain.ReplayRecord, error) {
	var replay domain.ReplayRecord
	if err := json.Unmarshal(payload, &replay); err != nil {
		return domain.ReplayRecord{}, fmt.Errorf("decode replay %s: %w", gameID, err)
	}
	if !replay.Difficulty.IsValid() {
		return domain.ReplayRecord{}, fmt.Errorf("replay %s has difficulty %q: %w", gameID, replay.Difficulty, domain.ErrReplayCorrupt)
	}
	return replay, nil
}
