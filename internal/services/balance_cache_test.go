package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceCache(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	cache := NewBalanceCache(client, time.Minute, zerolog.Nop())

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("ledger:balance:7").SetVal("42.50")

		got, ok := cache.Get(ctx, 7)
		assert.True(t, ok)
		assert.True(t, decimal.RequireFromString("42.5").Equal(got))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("ledger:balance:7").RedisNil()

		_, ok := cache.Get(ctx, 7)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis error is a miss", func(t *testing.T) {
		mock.ExpectGet("ledger:balance:7").SetErr(errors.New("connection refused"))

		_, ok := cache.Get(ctx, 7)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt value is dropped", func(t *testing.T) {
		mock.ExpectGet("ledger:balance:7").SetVal("garbage")
		mock.ExpectDel("ledger:balance:7").SetVal(1)

		_, ok := cache.Get(ctx, 7)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set", func(t *testing.T) {
		mock.ExpectSet("ledger:balance:7", "10.00", time.Minute).SetVal("OK")

		cache.Set(ctx, 7, decimal.NewFromInt(10))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalidate several books", func(t *testing.T) {
		mock.ExpectDel("ledger:balance:1", "ledger:balance:2").SetVal(2)

		cache.Invalidate(ctx, 1, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBalanceCache_Disabled(t *testing.T) {
	ctx := context.Background()

	for name, cache := range map[string]*BalanceCache{
		"nil cache":  nil,
		"nil client": NewBalanceCache(nil, time.Minute, zerolog.Nop()),
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := cache.Get(ctx, 1)
			assert.False(t, ok)
			assert.NotPanics(t, func() {
				cache.Set(ctx, 1, decimal.NewFromInt(1))
				cache.Invalidate(ctx, 1)
			})
		})
	}
}
