package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
)

const rateLimitKeyPrefix = "write_attempts:"

type RateLimitRepository interface {
	Allow(ctx context.Context, client string) (bool, int, int, error)
}

type redisRateLimitRepository struct {
	client *redis.Client
	cfg    *config.RateLimit
	now    func() time.Time
	newID  func() string
}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateLimit) RateLimitRepository {
	return &redisRateLimitRepository{client: client, cfg: cfg, now: time.Now, newID: uuid.NewString}
}

// Allow records one write for client in a sliding window kept as a sorted set
// of timestamps. Members carry a random suffix so writes landing in the same
// nanosecond are counted separately. Returns isAllowed, writes left, seconds to wait.
func (r *redisRateLimitRepository) Allow(ctx context.Context, client string) (bool, int, int, error) {
	key := rateLimitKeyPrefix + client
	now := r.now()
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + r.newID()
	windowStart := now.Add(-r.cfg.Window).UnixNano()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	if attempts <= r.cfg.MaxRequests {
		return true, int(r.cfg.MaxRequests - attempts), 0, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return false, 0, int(r.cfg.Window.Seconds()), fmt.Errorf("failed to get oldest write time: %w", err)
	}

	if len(oldest) == 0 {
		return false, 0, int(r.cfg.Window.Seconds()), nil
	}

	resetAt := time.Unix(0, int64(oldest[0].Score)).Add(r.cfg.Window)
	retryAfter := max(int(resetAt.Sub(now).Seconds()+0.5), 1)

	return false, 0, retryAfter, nil
}
