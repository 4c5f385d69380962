package bundledeps

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver maps a reference to the targets that satisfy it.
// An empty result means the reference could not be resolved.
type Resolver interface {
	Resolve(ctx context.Context, ref Ref) ([]Target, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, ref Ref) ([]Target, error)

// Resolve calls f(ctx, ref).
func (f ResolverFunc) Resolve(ctx context.Context, ref Ref) ([]Target, error) {
	return f(ctx, ref)
}

// ResolutionCache memoizes reference resolution for the lifetime of a session.
//
// Each bundle or package reference is handed to the underlying resolver at
// most once; later lookups return the stored Resolution, including Missing.
// Project references are already resolved and bypass the cache. Failed
// resolutions are not stored, so a later call retries them.
//
// A ResolutionCache is safe for concurrent use. Concurrent misses for the
// same reference share a single underlying resolution.
type ResolutionCache struct {
	resolver Resolver
	logger   *slog.Logger

	mu      sync.RWMutex
	entries map[string]Resolution
	group   singleflight.Group
}

// NewResolutionCache creates an empty cache in front of resolver.
// A nil logger disables tracing.
func NewResolutionCache(resolver Resolver, logger *slog.Logger) *ResolutionCache {
	return &ResolutionCache{
		resolver: resolver,
		logger:   loggerOrDiscard(logger),
		entries:  make(map[string]Resolution),
	}
}

// Resolve returns the memoized resolution of ref, resolving it on first use.
func (c *ResolutionCache) Resolve(ctx context.Context, ref Ref) (Resolution, error) {
	switch ref.Kind() {
	case RefProject:
		return Resolved(ProjectTarget(ref.Project())), nil
	case RefBundle, RefPackage:
	default:
		return Missing, fmt.Errorf("%w: %v", ErrUnknownRef, ref.Kind())
	}

	key := ref.Key()
	if res, ok := c.lookup(key); ok {
		return res, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have stored the entry while we waited for the group.
		if res, ok := c.lookup(key); ok {
			return res, nil
		}
		targets, err := c.resolver.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		res := Resolved(targets...)
		c.logger.DebugContext(ctx, "resolved reference",
			"ref", ref.String(),
			"outcome", res.String())

		c.mu.Lock()
		c.entries[key] = res
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return Missing, fmt.Errorf("resolve %s: %w", ref, err)
	}
	return v.(Resolution), nil
}

// Lookup returns the stored resolution of ref without resolving it.
func (c *ResolutionCache) Lookup(ref Ref) (Resolution, bool) {
	return c.lookup(ref.Key())
}

// Len returns the number of stored resolutions.
func (c *ResolutionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResolutionCache) lookup(key string) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}
