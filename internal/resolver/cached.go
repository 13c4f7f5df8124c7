// Package resolver decorates entry point resolvers with caching and logging.
package resolver

import (
	"context"
	"time"

	"github.com/zjrosen/envreg/internal/cachemanager"
	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/log"
)

// DefaultTTL is how long a resolved constructor stays cached.
const DefaultTTL = cachemanager.DefaultExpiration

// Options configures a Cached resolver.
type Options struct {
	// TTL of a cached constructor. Zero means DefaultTTL.
	TTL time.Duration
	// CleanupInterval between purges of expired entries. Zero means
	// cachemanager.DefaultCleanupInterval.
	CleanupInterval time.Duration
	// Disabled bypasses the cache and resolves every call.
	Disabled bool
	// Sliding extends an entry's TTL each time it is read.
	Sliding bool
}

// Cached memoises successful resolutions of an inner Resolver. Failed
// resolutions are never cached so a later registration in the inner
// resolver is picked up on the next call.
type Cached struct {
	inner   registry.Resolver
	cache   *cachemanager.ReadThroughCache[string, registry.Constructor, string]
	ttl     time.Duration
	sliding bool
}

var _ registry.Resolver = (*Cached)(nil)

// NewCached wraps inner with a TTL cache.
func NewCached(inner registry.Resolver, opts Options) *Cached {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = cachemanager.DefaultCleanupInterval
	}

	store := cachemanager.NewInMemoryCacheManager[string, registry.Constructor]("entry-points", ttl, cleanup)
	c := &Cached{inner: inner, ttl: ttl, sliding: opts.Sliding}
	c.cache = cachemanager.NewReadThroughCache[string, registry.Constructor, string](store, c.resolve, opts.Disabled)
	return c
}

// Resolve returns the constructor for entryPoint, consulting the cache first.
func (c *Cached) Resolve(entryPoint string) (registry.Constructor, error) {
	if c.sliding {
		return c.cache.GetWithRefresh(context.Background(), entryPoint, entryPoint, c.ttl)
	}
	return c.cache.Get(context.Background(), entryPoint, entryPoint, c.ttl)
}

// Invalidate drops a cached resolution.
func (c *Cached) Invalidate(entryPoint string) {
	_ = c.cache.Invalidate(context.Background(), entryPoint)
}

func (c *Cached) resolve(_ context.Context, entryPoint string) (registry.Constructor, error) {
	ctor, err := c.inner.Resolve(entryPoint)
	if err != nil {
		log.ErrorErr(log.CatResolver, "entry point resolution failed", err, "entry_point", entryPoint)
		return nil, err
	}
	log.Debug(log.CatResolver, "resolved entry point", "entry_point", entryPoint)
	return ctor, nil
}
