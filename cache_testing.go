package bundledeps

import (
	"context"
	"errors"
	"sync"
)

// Compile-time interface compliance checks
var _ Resolver = StaticResolver(nil)
var _ Resolver = (*CountingResolver)(nil)
var _ Resolver = (*FailingResolver)(nil)

// StaticResolver answers from a fixed table keyed by Ref.Key.
// Unknown references resolve to nothing.
type StaticResolver map[string][]Target

// Resolve returns the table entry for ref.
func (s StaticResolver) Resolve(ctx context.Context, ref Ref) ([]Target, error) {
	return s[ref.Key()], nil
}

// CountingResolver wraps a resolver and records how often each reference is resolved.
type CountingResolver struct {
	next Resolver

	mu    sync.Mutex
	calls map[string]int
}

// NewCountingResolver wraps next.
func NewCountingResolver(next Resolver) *CountingResolver {
	return &CountingResolver{
		next:  next,
		calls: make(map[string]int),
	}
}

// Resolve records the call and delegates.
func (c *CountingResolver) Resolve(ctx context.Context, ref Ref) ([]Target, error) {
	c.mu.Lock()
	c.calls[ref.Key()]++
	c.mu.Unlock()
	return c.next.Resolve(ctx, ref)
}

// Calls returns how often ref was resolved.
func (c *CountingResolver) Calls(ref Ref) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[ref.Key()]
}

// Total returns the number of resolutions across all references.
func (c *CountingResolver) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.calls {
		total += n
	}
	return total
}

// FailingResolver always returns an error.
// Useful for testing error handling paths.
type FailingResolver struct {
	Err error
}

// NewFailingResolver creates a resolver that fails with err.
func NewFailingResolver(err error) *FailingResolver {
	if err == nil {
		err = errors.New("resolve failed")
	}
	return &FailingResolver{Err: err}
}

// Resolve always returns an error.
func (f *FailingResolver) Resolve(ctx context.Context, ref Ref) ([]Target, error) {
	return nil, f.Err
}
