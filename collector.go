package bundledeps

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Strategy supplies the two functions a walk is parameterized by: how a
// reference is resolved, and which references a bundle leads to.
type Strategy interface {
	Resolve(ctx context.Context, ref Ref) (Resolution, error)
	Children(b *Bundle) []Ref
}

// CachedStrategy resolves through cache and follows a bundle's required
// bundles before its imported packages.
func CachedStrategy(cache *ResolutionCache) Strategy {
	return cachedStrategy{cache: cache}
}

type cachedStrategy struct {
	cache *ResolutionCache
}

func (s cachedStrategy) Resolve(ctx context.Context, ref Ref) (Resolution, error) {
	return s.cache.Resolve(ctx, ref)
}

func (s cachedStrategy) Children(b *Bundle) []Ref {
	refs := make([]Ref, 0, len(b.Requires)+len(b.Imports))
	for _, r := range b.Requires {
		refs = append(refs, RequireBundle(r))
	}
	for _, r := range b.Imports {
		refs = append(refs, ImportPackage(r))
	}
	return refs
}

// Edge is a dependency discovered during a walk. From and To are project
// names or bundle coordinate strings.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Collection is the transitive closure of a walk: external bundles plus the
// workspace projects reached, each in discovery order without duplicates.
type Collection struct {
	Bundles  []*Bundle  `json:"bundles"`
	Projects []*Project `json:"projects"`
	Edges    []Edge     `json:"edges"`

	bundleSeen  map[string]struct{}
	projectSeen map[string]struct{}
	edgeSeen    map[Edge]struct{}
}

func newCollection() *Collection {
	return &Collection{
		bundleSeen:  make(map[string]struct{}),
		projectSeen: make(map[string]struct{}),
		edgeSeen:    make(map[Edge]struct{}),
	}
}

// addBundle adds b and reports whether it was new.
func (c *Collection) addBundle(b *Bundle) bool {
	key := b.String()
	if _, ok := c.bundleSeen[key]; ok {
		return false
	}
	c.bundleSeen[key] = struct{}{}
	c.Bundles = append(c.Bundles, b)
	return true
}

// addProject adds p and reports whether it was new.
func (c *Collection) addProject(p *Project) bool {
	if _, ok := c.projectSeen[p.Name]; ok {
		return false
	}
	c.projectSeen[p.Name] = struct{}{}
	c.Projects = append(c.Projects, p)
	return true
}

func (c *Collection) addEdge(from, to string) {
	e := Edge{From: from, To: to}
	if _, ok := c.edgeSeen[e]; ok {
		return
	}
	c.edgeSeen[e] = struct{}{}
	c.Edges = append(c.Edges, e)
}

// HasBundle reports whether the collection contains b.
func (c *Collection) HasBundle(b *Bundle) bool {
	_, ok := c.bundleSeen[b.String()]
	return ok
}

// HasProject reports whether the collection contains a project with the given name.
func (c *Collection) HasProject(name string) bool {
	_, ok := c.projectSeen[name]
	return ok
}

// RemoveProject drops the named project from the project set.
// Edges pointing at it are kept.
func (c *Collection) RemoveProject(name string) {
	if _, ok := c.projectSeen[name]; !ok {
		return
	}
	delete(c.projectSeen, name)
	c.Projects = slices.DeleteFunc(c.Projects, func(p *Project) bool {
		return p.Name == name
	})
}

// Strings returns the coordinate strings of the bundles and the names of the
// projects, sorted and without duplicates.
func (c *Collection) Strings() []string {
	out := make([]string, 0, len(c.Bundles)+len(c.Projects))
	for _, b := range c.Bundles {
		out = append(out, b.String())
	}
	for _, p := range c.Projects {
		out = append(out, p.Name)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SortedBundles returns the bundles ordered by coordinate string.
func (c *Collection) SortedBundles() []*Bundle {
	out := slices.Clone(c.Bundles)
	slices.SortFunc(out, func(a, b *Bundle) int {
		return cmp.Compare(a.String(), b.String())
	})
	return out
}

// Collector computes the transitive closure of a project's dependencies.
//
// Each call to Collect starts from fresh visited state; only the resolution
// cache is shared between calls.
type Collector struct {
	strategy  Strategy
	manifests ManifestSource
	cfg       *config
	logger    *slog.Logger
}

// NewCollector creates a collector that resolves through cache.
// cache may be nil when WithStrategy supplies the resolution step.
func NewCollector(cache *ResolutionCache, opts ...Option) (*Collector, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	strategy := cfg.strategy
	if strategy == nil {
		if cache == nil {
			return nil, errors.New("collector requires a resolution cache or a strategy")
		}
		strategy = CachedStrategy(cache)
	}
	manifests := cfg.manifests
	if manifests == nil {
		manifests = ProjectManifests{}
	}

	return &Collector{
		strategy:  strategy,
		manifests: manifests,
		cfg:       cfg,
		logger:    cfg.log(),
	}, nil
}

// Collect returns every bundle and workspace project root transitively
// depends on. root itself is never part of the result, even when a cycle
// leads back to it.
func (c *Collector) Collect(ctx context.Context, root *Project) (*Collection, error) {
	if root == nil {
		return nil, ErrNilProject
	}
	refs, err := c.manifests.ManifestDependencies(ctx, root)
	if err != nil {
		return nil, err
	}

	coll, err := c.walk(ctx, root.Name, refs)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", root.Name, err)
	}
	coll.RemoveProject(root.Name)

	c.logger.DebugContext(ctx, "collected dependencies",
		"project", root.Name,
		"bundles", len(coll.Bundles),
		"projects", len(coll.Projects))
	return coll, nil
}

// CollectRefs walks refs as if they were the direct dependencies of a
// project named from.
func (c *Collector) CollectRefs(ctx context.Context, from string, refs []Ref) (*Collection, error) {
	return c.walk(ctx, from, refs)
}

func (c *Collector) walk(ctx context.Context, from string, refs []Ref) (*Collection, error) {
	w := &walker{
		strategy: c.strategy,
		logger:   c.logger,
		coll:     newCollection(),
	}
	for _, ref := range refs {
		if err := w.visit(ctx, from, ref); err != nil {
			return nil, err
		}
	}
	return w.coll, nil
}

// walker holds the visited state of a single walk.
type walker struct {
	strategy Strategy
	logger   *slog.Logger
	coll     *Collection
}

func (w *walker) visit(ctx context.Context, from string, ref Ref) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch ref.Kind() {
	case RefProject:
		w.project(from, ref.Project())
		return nil
	case RefBundle, RefPackage:
		res, err := w.strategy.Resolve(ctx, ref)
		if err != nil {
			return err
		}
		if res.IsMissing() {
			w.logger.DebugContext(ctx, "skipping unresolved reference",
				"from", from,
				"ref", ref.String())
			return nil
		}
		for _, t := range res.Targets() {
			if err := w.target(ctx, from, t); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownRef, ref.Kind())
	}
}

func (w *walker) target(ctx context.Context, from string, t Target) error {
	if p := t.Project(); p != nil {
		w.project(from, p)
		return nil
	}

	b := t.Bundle()
	w.coll.addEdge(from, b.String())
	if !w.coll.addBundle(b) {
		return nil
	}
	for _, f := range b.Fragments {
		w.coll.addEdge(b.String(), f.String())
		w.coll.addBundle(f)
	}
	if b.IsFragment() {
		return nil
	}

	for _, child := range w.strategy.Children(b) {
		if err := w.visit(ctx, b.String(), child); err != nil {
			return err
		}
	}
	return nil
}

// project records a workspace project as a leaf of the walk.
func (w *walker) project(from string, p *Project) {
	w.coll.addEdge(from, p.Name)
	w.coll.addProject(p)
}
