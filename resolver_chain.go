package bundledeps

import (
	"context"
	"fmt"
)

// ChainResolver consults several resolvers in priority order.
//
// Key behaviors:
//  1. Bundle references take the answer of the first resolver that returns a
//     non-empty result; later resolvers are not consulted
//  2. Package references collect the answers of every resolver, keeping the
//     first occurrence of each target
//  3. Any resolver error aborts the lookup
//
// A typical chain puts the workspace Index first and a platform Index second,
// so workspace projects shadow platform bundles of the same name.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a chain over resolvers. Nil entries are skipped.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	c := &ChainResolver{}
	for _, r := range resolvers {
		if r != nil {
			c.resolvers = append(c.resolvers, r)
		}
	}
	return c
}

// Resolve implements Resolver.
func (c *ChainResolver) Resolve(ctx context.Context, ref Ref) ([]Target, error) {
	if ref.Kind() == RefPackage {
		return c.resolveAll(ctx, ref)
	}
	for i, r := range c.resolvers {
		targets, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("resolver %d: %w", i, err)
		}
		if len(targets) > 0 {
			return targets, nil
		}
	}
	return nil, nil
}

func (c *ChainResolver) resolveAll(ctx context.Context, ref Ref) ([]Target, error) {
	var out []Target
	seen := make(map[string]struct{})
	for i, r := range c.resolvers {
		targets, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("resolver %d: %w", i, err)
		}
		for _, t := range targets {
			if _, ok := seen[t.Key()]; ok {
				continue
			}
			seen[t.Key()] = struct{}{}
			out = append(out, t)
		}
	}
	return out, nil
}

// Len returns the number of resolvers in the chain.
func (c *ChainResolver) Len() int {
	return len(c.resolvers)
}
