package bundledeps

import (
	"context"
	"fmt"
	"strings"
)

// HeaderRequiredExecutionEnvironment is the manifest header listing the
// execution environments a bundle runs on.
const HeaderRequiredExecutionEnvironment = "Bundle-RequiredExecutionEnvironment"

// ManifestSource yields the direct dependencies of a project.
type ManifestSource interface {
	ManifestDependencies(ctx context.Context, p *Project) ([]Ref, error)
}

// ManifestFunc adapts a function to the ManifestSource interface.
type ManifestFunc func(ctx context.Context, p *Project) ([]Ref, error)

// ManifestDependencies calls f(ctx, p).
func (f ManifestFunc) ManifestDependencies(ctx context.Context, p *Project) ([]Ref, error) {
	return f(ctx, p)
}

// ProjectManifests reads direct dependencies from the project model: used
// projects first, then required bundles, then imported packages.
type ProjectManifests struct{}

// ManifestDependencies implements ManifestSource.
func (ProjectManifests) ManifestDependencies(ctx context.Context, p *Project) ([]Ref, error) {
	if n := len(p.BundlePackagings()); n > 1 {
		return nil, fmt.Errorf("%w: project %s defines %d bundle packagings, cannot determine its manifest",
			ErrUnsupportedConfiguration, p.Name, n)
	}

	refs := make([]Ref, 0, len(p.Uses))
	for _, u := range p.Uses {
		refs = append(refs, ProjectRef(u))
	}
	if p.Bundle == nil {
		return refs, nil
	}
	for _, r := range p.Bundle.Requires {
		refs = append(refs, RequireBundle(r))
	}
	for _, r := range p.Bundle.Imports {
		refs = append(refs, ImportPackage(r))
	}
	return refs, nil
}

// ExecutionEnvironments maps the project's required execution environments
// through available, which associates environment names with their install
// locations. Unknown environments are skipped.
//
// A project with more than one bundle packaging has no single manifest, and
// ErrUnsupportedConfiguration is returned.
func (p *Project) ExecutionEnvironments(available map[string]string) ([]string, error) {
	packagings := p.BundlePackagings()
	if len(packagings) > 1 {
		return nil, fmt.Errorf("%w: project %s defines %d bundle packagings, cannot determine its execution environment",
			ErrUnsupportedConfiguration, p.Name, len(packagings))
	}

	header := p.Manifest[HeaderRequiredExecutionEnvironment]
	if len(packagings) == 1 {
		if v, ok := packagings[0].Manifest[HeaderRequiredExecutionEnvironment]; ok {
			header = v
		}
	}

	var out []string
	for _, ee := range strings.Split(header, ",") {
		ee = strings.TrimSpace(ee)
		if ee == "" {
			continue
		}
		if loc, ok := available[ee]; ok {
			out = append(out, loc)
		}
	}
	return out, nil
}
