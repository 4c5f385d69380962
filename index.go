package bundledeps

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/go-bundledeps/label"
)

// Index resolves references against a workspace: its bundle projects and its
// external bundles.
//
// A bundle reference resolves to the first workspace project with that
// symbolic name whose version is in range. When no project matches, it
// resolves to the highest external bundle version in range.
//
// A package reference resolves to every exporter of the package, projects
// first, in declaration order. Version ranges on package imports are not
// checked against exports, which carry no versions in the model.
type Index struct {
	projects  map[string][]*Project
	bundles   map[string][]*Bundle
	exporters map[string][]Target
}

// NewIndex indexes ws. Changes to ws after the call are not seen.
func NewIndex(ws *Workspace) *Index {
	idx := &Index{
		projects:  make(map[string][]*Project),
		bundles:   make(map[string][]*Bundle),
		exporters: make(map[string][]Target),
	}
	for _, p := range ws.AllProjects() {
		if p.Bundle == nil {
			continue
		}
		name := p.Bundle.SymbolicName
		idx.projects[name] = append(idx.projects[name], p)
		for _, pkg := range p.Bundle.Exports {
			idx.exporters[pkg] = append(idx.exporters[pkg], ProjectTarget(p))
		}
	}
	for _, b := range ws.Bundles {
		idx.bundles[b.SymbolicName] = append(idx.bundles[b.SymbolicName], b)
		for _, pkg := range b.Exports {
			idx.exporters[pkg] = append(idx.exporters[pkg], BundleTarget(b))
		}
	}
	return idx
}

// Resolve implements Resolver.
func (i *Index) Resolve(ctx context.Context, ref Ref) ([]Target, error) {
	switch ref.Kind() {
	case RefProject:
		return []Target{ProjectTarget(ref.Project())}, nil
	case RefBundle:
		return i.resolveBundle(ref.BundleRef()), nil
	case RefPackage:
		return i.exporters[ref.PackageRef().Name], nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownRef, ref.Kind())
	}
}

func (i *Index) resolveBundle(r BundleRef) []Target {
	for _, p := range i.projects[r.Name] {
		if inRange(r.Range, p.Bundle.Version) {
			return []Target{ProjectTarget(p)}
		}
	}

	var best *Bundle
	var bestVersion label.Version
	for _, b := range i.bundles[r.Name] {
		v, err := label.NewVersion(b.Version)
		if err != nil || !r.Range.Contains(v) {
			continue
		}
		if best == nil || v.Compare(bestVersion) > 0 {
			best, bestVersion = b, v
		}
	}
	if best == nil {
		return nil
	}
	return []Target{BundleTarget(best)}
}

func inRange(r label.Range, version string) bool {
	if r.IsAny() || version == "" {
		return true
	}
	v, err := label.NewVersion(version)
	if err != nil {
		return false
	}
	return r.Contains(v)
}
