package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BalanceCache keeps derived book balances in Redis. It is never authoritative:
// every write to a book invalidates its entry and a miss falls back to the
// store. A nil cache or nil client turns every call into a no-op.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewBalanceCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl, logger: logger}
}

func balanceKey(bookID int64) string {
	return fmt.Sprintf("ledger:balance:%d", bookID)
}

func (c *BalanceCache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *BalanceCache) Get(ctx context.Context, bookID int64) (decimal.Decimal, bool) {
	if !c.enabled() {
		return decimal.Zero, false
	}
	val, err := c.client.Get(ctx, balanceKey(bookID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Int64("book_id", bookID).Msg("[CACHE] balance read failed")
		}
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		c.logger.Warn().Err(err).Int64("book_id", bookID).Msg("[CACHE] dropping corrupt balance")
		c.Invalidate(ctx, bookID)
		return decimal.Zero, false
	}
	return d, true
}

func (c *BalanceCache) Set(ctx context.Context, bookID int64, balance decimal.Decimal) {
	if !c.enabled() {
		return
	}
	if err := c.client.Set(ctx, balanceKey(bookID), balance.StringFixed(2), c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("book_id", bookID).Msg("[CACHE] balance write failed")
	}
}

func (c *BalanceCache) Invalidate(ctx context.Context, bookIDs ...int64) {
	if !c.enabled() || len(bookIDs) == 0 {
		return
	}
	keys := make([]string, len(bookIDs))
	for i, id := range bookIDs {
		keys[i] = balanceKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Ints64("book_ids", bookIDs).Msg("[CACHE] balance invalidation failed")
	}
}
