package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis at url, which is either a redis:// URL or a
// bare host:port. The connection is verified with PING.
func NewClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opts := &redis.Options{Addr: url, Password: password, DB: db}
	if strings.Contains(url, "://") {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		if password != "" {
			parsed.Password = password
		}
		if db != 0 {
			parsed.DB = db
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	slog.Info("[REDIS] Connected successfully", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}
