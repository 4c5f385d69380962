// Package bundledeps computes the transitive closure of OSGi bundle
// dependencies for the projects of a workspace, and records the result in a
// dependencies document that later build steps consume.
//
// # Overview
//
// The package provides four main components:
//
//   - Parser: Parses BUNDLES.bazel workspace definitions into a Workspace
//   - Index: Resolves bundle and package references against a workspace
//   - ResolutionCache: Memoizes each reference's resolution for a session
//   - Collector: Walks a project's dependencies to a fixpoint
//
// The install subpackage publishes the collected bundles to a local or remote
// repository.
//
// # Quick Start
//
//	session, err := bundledeps.Open("BUNDLES.bazel")
//	if err != nil {
//	    return err
//	}
//	doc, err := session.Resolve(ctx)
//
// # Platform Bundles
//
// Extra resolvers are consulted after the workspace, so workspace projects
// shadow platform bundles with the same symbolic name:
//
//	platform, _ := bundledeps.ParseWorkspaceFile("platform/BUNDLES.bazel")
//	session, err := bundledeps.NewSession(ws,
//	    bundledeps.WithResolvers(bundledeps.NewIndex(platform)))
//
// # Thread Safety
//
// ResolutionCache, Index and ChainResolver are safe for concurrent use. A
// Collector may run several collections at once; each keeps its own visited state.
package bundledeps

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/go-bundledeps/document"
)

// Session is one resolution session over a workspace. All collections in a
// session share a single ResolutionCache.
type Session struct {
	Workspace *Workspace
	Cache     *ResolutionCache
	Collector *Collector
}

// NewSession wires an Index over ws, any WithResolvers extras, a fresh
// ResolutionCache and a Collector.
func NewSession(ws *Workspace, opts ...Option) (*Session, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	resolver := Resolver(NewIndex(ws))
	if len(cfg.resolvers) > 0 {
		resolver = NewChainResolver(append([]Resolver{resolver}, cfg.resolvers...)...)
	}
	cache := NewResolutionCache(resolver, cfg.logger)
	collector, err := NewCollector(cache, opts...)
	if err != nil {
		return nil, err
	}
	return &Session{Workspace: ws, Cache: cache, Collector: collector}, nil
}

// Open parses the workspace definition at path and starts a session.
func Open(path string, opts ...Option) (*Session, error) {
	ws, err := ParseWorkspaceFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	return NewSession(ws, opts...)
}

// Resolve collects every project and rewrites the dependencies document.
func (s *Session) Resolve(ctx context.Context) (*document.Document, error) {
	return ResolveWorkspace(ctx, s.Workspace, s.Collector)
}

// Clean rewrites the dependencies document with empty entries.
func (s *Session) Clean() error {
	return CleanWorkspace(s.Workspace)
}

// InstallSet returns the sorted union of external bundles of every project.
func (s *Session) InstallSet(ctx context.Context) ([]*Bundle, error) {
	return s.Workspace.InstallSet(ctx, s.Collector)
}

// Collect computes the closure of a single project by name.
func (s *Session) Collect(ctx context.Context, project string) (*Collection, error) {
	p := s.Workspace.Project(project)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, project)
	}
	return s.Collector.Collect(ctx, p)
}
