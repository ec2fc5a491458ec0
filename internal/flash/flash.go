// Package flash stores one-shot notices shown on the page rendered after a
// redirect. A notice survives exactly one read: handlers push on a mutating
// request and the next page fetch pops everything pending for that visitor.
package flash

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Notice struct {
	Level   string `json:"level"` // success | danger
	Message string `json:"message"`
}

type Store interface {
	Push(ctx context.Context, key string, n Notice) error
	Pop(ctx context.Context, key string) ([]Notice, error)
}

// RedisStore keeps pending notices in a Redis list per visitor key, so they
// survive restarts and work across multiple backend instances.
type RedisStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{RDB: rdb, TTL: ttl}
}

func (s *RedisStore) Push(ctx context.Context, key string, n Notice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	pipe := s.RDB.TxPipeline()
	pipe.RPush(ctx, "flash:"+key, payload)
	pipe.Expire(ctx, "flash:"+key, s.TTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Pop(ctx context.Context, key string) ([]Notice, error) {
	pipe := s.RDB.TxPipeline()
	items := pipe.LRange(ctx, "flash:"+key, 0, -1)
	pipe.Del(ctx, "flash:"+key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	raw, err := items.Result()
	if err != nil {
		return nil, err
	}

	out := make([]Notice, 0, len(raw))
	for _, r := range raw {
		var n Notice
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
