package bundledeps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-bundledeps/label"
	"github.com/albertocavalcante/go-bundledeps/repository"
)

// DefaultGroup is the repository group used for bundles that do not declare one.
const DefaultGroup = "osgi"

// PackagingBundle is the packaging kind that produces an OSGi bundle.
const PackagingBundle = "plugin"

// Bundle is a packaged unit of code with a symbolic identity, its direct
// requirements, and the packages it exports.
//
// Bundles are built by the workspace model before collection starts and are
// treated as read-only by the collector and the installation pipeline.
type Bundle struct {
	// SymbolicName is the Bundle-SymbolicName.
	SymbolicName string `json:"symbolic_name"`

	// Version is the Bundle-Version.
	Version string `json:"version"`

	// Group is the repository group. Empty means DefaultGroup.
	Group string `json:"group,omitempty"`

	// File is the backing location: an archive or an exploded bundle directory.
	// Empty means the artifact must be looked up in a repository by coordinate.
	File string `json:"file,omitempty"`

	// Requires lists the Require-Bundle entries.
	Requires []BundleRef `json:"requires,omitempty"`

	// Imports lists the Import-Package entries.
	Imports []PackageRef `json:"imports,omitempty"`

	// Exports lists the exported package names.
	Exports []string `json:"exports,omitempty"`

	// Fragments are attached to this bundle and always travel with it.
	Fragments []*Bundle `json:"-"`

	// Host is the symbolic name of the host bundle. Only set on fragments.
	Host string `json:"host,omitempty"`
}

// IsFragment reports whether the bundle is a fragment of another bundle.
func (b *Bundle) IsFragment() bool {
	return b.Host != ""
}

// Coordinate returns the repository coordinate of the bundle.
func (b *Bundle) Coordinate() repository.Coordinate {
	group := b.Group
	if group == "" {
		group = DefaultGroup
	}
	return repository.Coordinate{
		Group:   group,
		ID:      b.SymbolicName,
		Type:    repository.DefaultType,
		Version: b.Version,
	}
}

// String returns the coordinate string, which is also the bundle identity.
func (b *Bundle) String() string {
	return b.Coordinate().String()
}

// ExportsPackage reports whether the bundle exports the named package.
func (b *Bundle) ExportsPackage(pkg string) bool {
	return slices.Contains(b.Exports, pkg)
}

// Packaging is one package definition of a project.
type Packaging struct {
	// Kind is the packaging type, e.g. "plugin" or "jar".
	Kind string `json:"kind"`

	// Manifest holds headers contributed by this packaging.
	Manifest map[string]string `json:"manifest,omitempty"`
}

// Project is a buildable unit of the workspace.
//
// During a bundle walk a project is a leaf: its own closure is computed by a
// separate collection call.
type Project struct {
	// Name is the unique project name within the workspace.
	Name string `json:"name"`

	// Dir is the project directory.
	Dir string `json:"dir,omitempty"`

	// Bundle is the project's own manifest view. Nil for projects that are not bundles.
	Bundle *Bundle `json:"bundle,omitempty"`

	// Uses lists workspace projects this project depends on directly.
	Uses []*Project `json:"-"`

	// Packagings lists the package definitions of the project.
	Packagings []Packaging `json:"packagings,omitempty"`

	// Manifest holds headers from the project's META-INF/MANIFEST.MF.
	Manifest map[string]string `json:"manifest,omitempty"`

	// Artifact is the packaged bundle produced by the project build.
	Artifact string `json:"artifact,omitempty"`
}

// String returns the project name.
func (p *Project) String() string {
	return p.Name
}

// BundlePackagings returns the packagings that produce a bundle.
func (p *Project) BundlePackagings() []Packaging {
	var out []Packaging
	for _, pkg := range p.Packagings {
		if pkg.Kind == PackagingBundle {
			out = append(out, pkg)
		}
	}
	return out
}

// BundleRef references a bundle by symbolic name and version range.
type BundleRef struct {
	Name     string      `json:"name"`
	Range    label.Range `json:"-"`
	Optional bool        `json:"optional,omitempty"`
}

// Key returns the identity used to memoize the reference's resolution.
func (r BundleRef) Key() string {
	return "bundle:" + r.Name + ";" + r.Range.String()
}

// String returns the require entry form.
func (r BundleRef) String() string {
	return requirementString(r.Name, r.Range)
}

// PackageRef references an exported package by name.
type PackageRef struct {
	Name     string      `json:"name"`
	Range    label.Range `json:"-"`
	Optional bool        `json:"optional,omitempty"`
}

// Key returns the identity used to memoize the reference's resolution.
func (r PackageRef) Key() string {
	return "package:" + r.Name + ";" + r.Range.String()
}

// String returns the import entry form.
func (r PackageRef) String() string {
	return requirementString(r.Name, r.Range)
}

func requirementString(name string, r label.Range) string {
	if r.IsAny() {
		return name
	}
	return name + ";version=" + r.String()
}

// RefKind tags the variant held by a Ref.
type RefKind uint8

const (
	// RefProject is a reference already resolved to a workspace project.
	RefProject RefKind = iota + 1
	// RefBundle is a Require-Bundle reference.
	RefBundle
	// RefPackage is an Import-Package reference.
	RefPackage
)

func (k RefKind) String() string {
	switch k {
	case RefProject:
		return "project"
	case RefBundle:
		return "bundle"
	case RefPackage:
		return "package"
	default:
		return fmt.Sprintf("RefKind(%d)", uint8(k))
	}
}

// Ref is a direct dependency handed to the collector. Exactly one variant is
// set; construct it with ProjectRef, RequireBundle or ImportPackage.
type Ref struct {
	kind    RefKind
	project *Project
	bundle  BundleRef
	pkg     PackageRef
}

// ProjectRef wraps an already resolved workspace project.
func ProjectRef(p *Project) Ref {
	return Ref{kind: RefProject, project: p}
}

// RequireBundle wraps a bundle reference.
func RequireBundle(r BundleRef) Ref {
	return Ref{kind: RefBundle, bundle: r}
}

// ImportPackage wraps a package reference.
func ImportPackage(r PackageRef) Ref {
	return Ref{kind: RefPackage, pkg: r}
}

// Kind returns the variant tag.
func (r Ref) Kind() RefKind {
	return r.kind
}

// Project returns the project of a RefProject reference.
func (r Ref) Project() *Project {
	return r.project
}

// BundleRef returns the bundle reference of a RefBundle reference.
func (r Ref) BundleRef() BundleRef {
	return r.bundle
}

// PackageRef returns the package reference of a RefPackage reference.
func (r Ref) PackageRef() PackageRef {
	return r.pkg
}

// Key returns the memoization identity of the reference.
func (r Ref) Key() string {
	switch r.kind {
	case RefProject:
		return "project:" + r.project.Name
	case RefBundle:
		return r.bundle.Key()
	case RefPackage:
		return r.pkg.Key()
	default:
		return ""
	}
}

func (r Ref) String() string {
	switch r.kind {
	case RefProject:
		return "project " + r.project.Name
	case RefBundle:
		return "bundle " + r.bundle.String()
	case RefPackage:
		return "package " + r.pkg.String()
	default:
		return r.kind.String()
	}
}

// Target is the outcome of resolving a reference: a workspace project or an
// external bundle, never both.
type Target struct {
	project *Project
	bundle  *Bundle
}

// ProjectTarget returns a target pointing at a workspace project.
func ProjectTarget(p *Project) Target {
	return Target{project: p}
}

// BundleTarget returns a target pointing at an external bundle.
func BundleTarget(b *Bundle) Target {
	return Target{bundle: b}
}

// Project returns the project, or nil for bundle targets.
func (t Target) Project() *Project {
	return t.project
}

// Bundle returns the bundle, or nil for project targets.
func (t Target) Bundle() *Bundle {
	return t.bundle
}

// IsZero reports whether the target points at nothing.
func (t Target) IsZero() bool {
	return t.project == nil && t.bundle == nil
}

// Key returns the identity of the target.
func (t Target) Key() string {
	switch {
	case t.project != nil:
		return "project:" + t.project.Name
	case t.bundle != nil:
		return "bundle:" + t.bundle.String()
	default:
		return ""
	}
}

func (t Target) String() string {
	switch {
	case t.project != nil:
		return t.project.Name
	case t.bundle != nil:
		return t.bundle.String()
	default:
		return "<none>"
	}
}

// Resolution is the memoized outcome of resolving a reference.
// The zero value is Missing.
type Resolution struct {
	targets []Target
}

// Missing marks a reference that resolved to nothing.
var Missing = Resolution{}

// Resolved builds a resolution from targets. Zero targets are dropped; a
// resolution without targets is Missing.
func Resolved(targets ...Target) Resolution {
	var kept []Target
	for _, t := range targets {
		if !t.IsZero() {
			kept = append(kept, t)
		}
	}
	return Resolution{targets: kept}
}

// IsMissing reports whether the resolution found nothing.
func (r Resolution) IsMissing() bool {
	return len(r.targets) == 0
}

// Targets returns the resolved targets in resolver order.
func (r Resolution) Targets() []Target {
	return slices.Clone(r.targets)
}

func (r Resolution) String() string {
	if r.IsMissing() {
		return "missing"
	}
	parts := make([]string, len(r.targets))
	for i, t := range r.targets {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Workspace is a set of projects plus the external bundles they may resolve to.
type Workspace struct {
	// Name is the workspace name.
	Name string `json:"name"`

	// Dir is the workspace root directory; the dependencies document lives here.
	Dir string `json:"dir"`

	// ReleaseTo is the release root used by the install-bundles task.
	ReleaseTo string `json:"release_to,omitempty"`

	// Root is the top-level project. May be nil.
	Root *Project `json:"root,omitempty"`

	// Projects are the sub-projects in declaration order.
	Projects []*Project `json:"projects"`

	// Bundles are the external bundles and fragments available for resolution.
	Bundles []*Bundle `json:"bundles"`
}

// AllProjects returns the sub-projects followed by the root project.
func (w *Workspace) AllProjects() []*Project {
	all := slices.Clone(w.Projects)
	if w.Root != nil {
		all = append(all, w.Root)
	}
	return all
}

// ProjectNames returns the names of AllProjects in the same order.
func (w *Workspace) ProjectNames() []string {
	all := w.AllProjects()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// Project returns the project with the given name, or nil.
func (w *Workspace) Project(name string) *Project {
	for _, p := range w.AllProjects() {
		if p.Name == name {
			return p
		}
	}
	return nil
}
