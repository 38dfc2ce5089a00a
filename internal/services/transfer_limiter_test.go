package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cashbook/backend/internal/config"
	"github.com/go-redis/redismock/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func limiterConfig(max int) *config.LedgerConfig {
	cfg := config.Default()
	cfg.TransferRateLimit = max
	cfg.TransferRateWindow = time.Minute
	return cfg
}

func TestTransferLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	key := "transfer:ratelimit:" + testOwner

	t.Run("under the limit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetVal("2")

		l := NewTransferLimiter(client, limiterConfig(3), zerolog.Nop())
		assert.NoError(t, l.Allow(ctx, testOwner))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first transfer of the window", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(key).RedisNil()

		l := NewTransferLimiter(client, limiterConfig(3), zerolog.Nop())
		assert.NoError(t, l.Allow(ctx, testOwner))
	})

	t.Run("limit reached", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetVal("3")

		l := NewTransferLimiter(client, limiterConfig(3), zerolog.Nop())
		err := l.Allow(ctx, testOwner)
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("redis failure fails open", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))

		l := NewTransferLimiter(client, limiterConfig(3), zerolog.Nop())
		assert.NoError(t, l.Allow(ctx, testOwner))
	})

	t.Run("disabled", func(t *testing.T) {
		client, mock := redismock.NewClientMock()

		assert.NoError(t, NewTransferLimiter(client, limiterConfig(0), zerolog.Nop()).Allow(ctx, testOwner))
		assert.NoError(t, NewTransferLimiter(nil, limiterConfig(3), zerolog.Nop()).Allow(ctx, testOwner))
		var nilLimiter *TransferLimiter
		assert.NoError(t, nilLimiter.Allow(ctx, testOwner))
		nilLimiter.Record(ctx, testOwner)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransferLimiter_Record(t *testing.T) {
	client, mock := redismock.NewClientMock()
	key := "transfer:ratelimit:" + testOwner
	mock.ExpectTxPipeline()
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	NewTransferLimiter(client, limiterConfig(3), zerolog.Nop()).Record(context.Background(), testOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}
