package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*ReadCache, *miniredis.Miniredis, *metrics.Recorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := ConnectRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	rec := metrics.New()
	return NewReadCache(store, ttl, logger.Discard(), rec), mr, rec
}

func TestRememberServesCachedPayloadUntilExpiry(t *testing.T) {
	rc, mr, rec := newRedisCache(t, time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (any, error) {
		calls++
		return []string{"v", string(rune('0' + calls))}, nil
	}

	first, err := rc.Remember(ctx, KeyProducts, load)
	require.NoError(t, err)
	assert.JSONEq(t, `["v","1"]`, string(first))

	// A write elsewhere does not invalidate; the stale payload is served verbatim.
	second, err := rc.Remember(ctx, KeyProducts, load)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	mr.FastForward(time.Minute + time.Second)

	third, err := rc.Remember(ctx, KeyProducts, load)
	require.NoError(t, err)
	assert.JSONEq(t, `["v","2"]`, string(third))
	assert.Equal(t, 2, calls)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.CacheLookups.WithLabelValues(KeyProducts, "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.CacheLookups.WithLabelValues(KeyProducts, "miss")))
}

func TestRememberStoresWithTTL(t *testing.T) {
	rc, mr, _ := newRedisCache(t, 30*time.Second)

	_, err := rc.Remember(context.Background(), KeyInventory, func(context.Context) (any, error) {
		return map[string]int{"n": 1}, nil
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists(KeyInventory))
	assert.Equal(t, 30*time.Second, mr.TTL(KeyInventory))
}

func TestRememberToleratesBrokenBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	rc := NewReadCache(NewRedisStore(rdb), time.Minute, logger.Discard(), nil)
	mr.Close()

	payload, err := rc.Remember(context.Background(), KeyProducts, func(context.Context) (any, error) {
		return []int{1, 2}, nil
	})

	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(payload))
}

func TestRememberPropagatesLoadError(t *testing.T) {
	rc := NewReadCache(NoopStore{}, time.Minute, logger.Discard(), nil)
	boom := errors.New("db down")

	_, err := rc.Remember(context.Background(), KeyProducts, func(context.Context) (any, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestNoopStoreAlwaysLoads(t *testing.T) {
	rc := NewReadCache(nil, time.Minute, logger.Discard(), nil)
	calls := 0
	for i := 0; i < 3; i++ {
		_, err := rc.Remember(context.Background(), KeyProducts, func(context.Context) (any, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
