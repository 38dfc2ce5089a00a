package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cashbook/backend/internal/config"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// TransferLimiter caps how many transfers an owner may start per window.
// It fails open: without Redis, or when Redis errors, transfers go through.
type TransferLimiter struct {
	redis  *redis.Client
	max    int
	window time.Duration
	logger zerolog.Logger
}

func NewTransferLimiter(client *redis.Client, cfg *config.LedgerConfig, logger zerolog.Logger) *TransferLimiter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &TransferLimiter{
		redis:  client,
		max:    cfg.TransferRateLimit,
		window: cfg.TransferRateWindow,
		logger: logger,
	}
}

func rateLimitKey(owner string) string {
	return fmt.Sprintf("transfer:ratelimit:%s", owner)
}

func (l *TransferLimiter) enabled() bool {
	return l != nil && l.redis != nil && l.max > 0
}

// Allow returns ErrRateLimited once owner used up the window's quota.
func (l *TransferLimiter) Allow(ctx context.Context, owner string) error {
	if !l.enabled() {
		return nil
	}
	count, err := l.redis.Get(ctx, rateLimitKey(owner)).Int()
	if err != nil && err != redis.Nil {
		l.logger.Warn().Err(err).Msg("[TRANSFER] rate limit check failed")
		return nil
	}
	if count >= l.max {
		return fmt.Errorf("%w: at most %d transfers per %s", ErrRateLimited, l.max, l.window)
	}
	return nil
}

// Record counts one transfer against owner's quota.
func (l *TransferLimiter) Record(ctx context.Context, owner string) {
	if !l.enabled() {
		return
	}
	key := rateLimitKey(owner)
	pipe := l.redis.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn().Err(err).Msg("[TRANSFER] rate limit update failed")
	}
}
