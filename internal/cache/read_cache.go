package cache

import (
	"context"
	"encoding/json"
	"time"

	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	KeyProducts  = "products:all"
	KeyInventory = "warehouse:inventory:all"
)

// Backend calls are bounded so a stalled cache cannot hold up a request.
const opTimeout = 250 * time.Millisecond

// ReadCache fronts list endpoints with a fixed TTL. Entries expire on their own;
// writes never invalidate them, so a list may be stale for up to one TTL.
type ReadCache struct {
	store   Store
	ttl     time.Duration
	log     *logrus.Logger
	metrics *metrics.Recorder
}

func NewReadCache(store Store, ttl time.Duration, log *logrus.Logger, rec *metrics.Recorder) *ReadCache {
	if store == nil {
		store = NoopStore{}
	}
	return &ReadCache{store: store, ttl: ttl, log: log, metrics: rec}
}

// Remember returns the cached payload for key verbatim on a hit. On a miss it
// runs load, encodes the result as JSON, stores it and returns the fresh bytes.
// Cache failures are logged and treated as a miss; only load errors are returned.
func (c *ReadCache) Remember(ctx context.Context, key string, load func(ctx context.Context) (any, error)) ([]byte, error) {
	getCtx, cancel := context.WithTimeout(ctx, opTimeout)
	cached, ok, err := c.store.Get(getCtx, key)
	cancel()
	if err != nil {
		logger.LogWarn(c.log, "cache", "Remember", "get "+key, err)
	}
	if ok {
		c.metrics.CacheLookup(key, true)
		return cached, nil
	}
	c.metrics.CacheLookup(key, false)

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	setCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.store.Set(setCtx, key, payload, c.ttl); err != nil {
		logger.LogWarn(c.log, "cache", "Remember", "set "+key, err)
	}
	return payload, nil
}

func (c *ReadCache) Close() error {
	return c.store.Close()
}
