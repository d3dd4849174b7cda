package lock

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
)

func newTestLocker(t *testing.T) *RedisLocker {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client)
}

func TestAcquireOrderIsExclusive(t *testing.T) {
	locker := newTestLocker(t)
	ctx := context.Background()

	release, err := locker.AcquireOrder(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, release)

	_, err = locker.AcquireOrder(ctx, 42)
	assert.True(t, httperr.IsBusiness(err, "order_locked"))
}

func TestAcquireOrderDifferentOrdersDoNotContend(t *testing.T) {
	locker := newTestLocker(t)
	ctx := context.Background()

	r1, err := locker.AcquireOrder(ctx, 1)
	require.NoError(t, err)
	defer r1()

	r2, err := locker.AcquireOrder(ctx, 2)
	require.NoError(t, err)
	defer r2()
}

func TestReleaseAllowsReacquire(t *testing.T) {
	locker := newTestLocker(t)
	ctx := context.Background()

	release, err := locker.AcquireOrder(ctx, 7)
	require.NoError(t, err)
	release()

	release2, err := locker.AcquireOrder(ctx, 7)
	require.NoError(t, err)
	release2()
}
