package providers

import "ddp/internal/structures"

// meteredCache counts result cache lookups so /metrics shows how often an
// upload was answered without re-extraction.
type meteredCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
	logger  Logger
}

func (c *meteredCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	c.logger.Debugf(TypeExtract, "Result cache hit: %s", key)
	return val, true
}

func (c *meteredCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider returns the result cache, metered when enabled.
// A disabled cache is never wrapped so it reports no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &meteredCache{inner: inner, metrics: metrics, logger: logger}
}
