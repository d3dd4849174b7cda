package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/logger"
)

const lockTTL = 30 * time.Second

// RedisLocker serializes order mutations with a SETNX lock per order, so two
// concurrent reschedules of the same order cannot interleave.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

var _ domain.Locker = (*RedisLocker)(nil)

func (l *RedisLocker) AcquireOrder(
	ctx context.Context,
	orderID uint,
) (func(), error) {

	key := fmt.Sprintf("lock:order:%d", orderID)

	ok, err := l.client.SetNX(ctx, key, "1", lockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrConflict("order_locked")
	}

	release := func() {
		if err := l.client.Del(context.Background(), key).Err(); err != nil {
			logger.Warn("order lock release failed", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}
