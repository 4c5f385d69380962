package bundledeps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-bundledeps/internal/buildutil"
	"github.com/albertocavalcante/go-bundledeps/label"
)

// WorkspaceFileName is the conventional name of a workspace definition.
const WorkspaceFileName = "BUNDLES.bazel"

// ParseError represents a workspace definition error with position information.
type ParseError struct {
	Filename string
	Line     int
	Column   int
	Message  string
	Wrapped  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// ParseWorkspaceFile reads and parses a workspace definition from disk.
// Relative paths inside the file are resolved against its directory.
func ParseWorkspaceFile(filename string) (*Workspace, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace file: %w", err)
	}
	return ParseWorkspaceContent(filename, data, filepath.Dir(abs))
}

// ParseWorkspaceContent parses a workspace definition.
//
// The file is a sequence of calls:
//
//	workspace(name = "...", release_to = "...")
//	project(name = "...", symbolic_name = "...", version = "...", requires = [...], imports = [...],
//	        exports = [...], uses = [...], packaging = [...], artifact = "...", manifest = {...}, root = True)
//	bundle(name = "...", version = "...", group = "...", file = "...", requires = [...], imports = [...], exports = [...])
//	fragment(name = "...", host = "...", version = "...", group = "...", file = "...")
//
// Other statements are ignored. Fragments are attached to every bundle whose
// symbolic name equals their host.
func ParseWorkspaceContent(filename string, content []byte, dir string) (*Workspace, error) {
	f, err := build.ParseDefault(filename, content)
	if err != nil {
		return nil, &ParseError{Filename: filename, Message: "invalid syntax", Wrapped: err}
	}

	p := &workspaceParser{
		filename: filename,
		dir:      dir,
		ws:       &Workspace{Dir: dir},
		byName:   make(map[string]*Project),
		uses:     make(map[*Project]pendingUses),
	}
	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		if err := p.statement(call); err != nil {
			return nil, err
		}
	}
	if err := p.link(); err != nil {
		return nil, err
	}
	if p.ws.Name == "" && p.ws.Root != nil {
		p.ws.Name = p.ws.Root.Name
	}
	return p.ws, nil
}

type pendingUses struct {
	names []string
	call  *build.CallExpr
}

type workspaceParser struct {
	filename  string
	dir       string
	ws        *Workspace
	byName    map[string]*Project
	uses      map[*Project]pendingUses
	order     []*Project
	fragments []*Bundle
}

func (p *workspaceParser) statement(call *build.CallExpr) error {
	switch buildutil.FuncName(call) {
	case "workspace":
		p.ws.Name = buildutil.String(call, "name")
		p.ws.ReleaseTo = p.path(buildutil.String(call, "release_to"))
		return nil
	case "project":
		return p.project(call)
	case "bundle":
		b, err := p.bundle(call)
		if err != nil {
			return err
		}
		p.ws.Bundles = append(p.ws.Bundles, b)
		return nil
	case "fragment":
		b, err := p.bundle(call)
		if err != nil {
			return err
		}
		b.Host = buildutil.String(call, "host")
		if b.Host == "" {
			return p.errorf(call, nil, "fragment %s: host is required", b.SymbolicName)
		}
		p.ws.Bundles = append(p.ws.Bundles, b)
		p.fragments = append(p.fragments, b)
		return nil
	default:
		return nil
	}
}

func (p *workspaceParser) project(call *build.CallExpr) error {
	name := buildutil.String(call, "name")
	if name == "" {
		return p.errorf(call, nil, "project: name is required")
	}
	if _, dup := p.byName[name]; dup {
		return p.errorf(call, nil, "project %s: defined more than once", name)
	}

	dir := buildutil.String(call, "dir")
	if dir == "" {
		dir = name
	}
	proj := &Project{
		Name:     name,
		Dir:      p.path(dir),
		Manifest: buildutil.StringDict(call, "manifest"),
		Artifact: p.path(buildutil.String(call, "artifact")),
	}

	if sym := buildutil.String(call, "symbolic_name"); sym != "" {
		b, err := p.bundleBody(call, sym)
		if err != nil {
			return err
		}
		b.File = proj.Artifact
		proj.Bundle = b
	}

	kinds := buildutil.StringList(call, "packaging")
	if !buildutil.Has(call, "packaging") && proj.Bundle != nil {
		kinds = []string{PackagingBundle}
	}
	packagingManifest := buildutil.StringDict(call, "packaging_manifest")
	for _, kind := range kinds {
		pkg := Packaging{Kind: kind}
		if kind == PackagingBundle {
			pkg.Manifest = packagingManifest
		}
		proj.Packagings = append(proj.Packagings, pkg)
	}

	if names := buildutil.StringList(call, "uses"); len(names) > 0 {
		p.uses[proj] = pendingUses{names: names, call: call}
	}

	p.byName[name] = proj
	p.order = append(p.order, proj)
	if buildutil.Bool(call, "root") {
		if p.ws.Root != nil {
			return p.errorf(call, nil, "project %s: root already set to %s", name, p.ws.Root.Name)
		}
		p.ws.Root = proj
		return nil
	}
	p.ws.Projects = append(p.ws.Projects, proj)
	return nil
}

func (p *workspaceParser) bundle(call *build.CallExpr) (*Bundle, error) {
	name := buildutil.String(call, "name")
	if name == "" {
		return nil, p.errorf(call, nil, "%s: name is required", buildutil.FuncName(call))
	}
	b, err := p.bundleBody(call, name)
	if err != nil {
		return nil, err
	}
	b.File = p.path(buildutil.String(call, "file"))
	return b, nil
}

// bundleBody reads the attributes shared by projects, bundles and fragments.
func (p *workspaceParser) bundleBody(call *build.CallExpr, symbolicName string) (*Bundle, error) {
	if _, err := label.NewSymbolicName(symbolicName); err != nil {
		return nil, p.errorf(call, err, "%v", err)
	}
	version := buildutil.String(call, "version")
	if _, err := label.NewVersion(version); err != nil {
		return nil, p.errorf(call, err, "%s: %v", symbolicName, err)
	}

	b := &Bundle{
		SymbolicName: symbolicName,
		Version:      version,
		Group:        buildutil.String(call, "group"),
		Exports:      buildutil.StringList(call, "exports"),
	}
	for _, entry := range buildutil.StringList(call, "requires") {
		req, err := label.ParseRequirement(entry)
		if err != nil {
			return nil, p.errorf(call, err, "%s: %v", symbolicName, err)
		}
		b.Requires = append(b.Requires, BundleRef{Name: req.Name.String(), Range: req.Range, Optional: req.Optional})
	}
	for _, entry := range buildutil.StringList(call, "imports") {
		req, err := label.ParseRequirement(entry)
		if err != nil {
			return nil, p.errorf(call, err, "%s: %v", symbolicName, err)
		}
		b.Imports = append(b.Imports, PackageRef{Name: req.Name.String(), Range: req.Range, Optional: req.Optional})
	}
	return b, nil
}

// link resolves project uses and attaches fragments to their hosts.
func (p *workspaceParser) link() error {
	for _, proj := range p.order {
		pending, ok := p.uses[proj]
		if !ok {
			continue
		}
		for _, name := range pending.names {
			used, ok := p.byName[name]
			if !ok {
				return p.errorf(pending.call, ErrProjectNotFound, "project %s: uses unknown project %s", proj.Name, name)
			}
			proj.Uses = append(proj.Uses, used)
		}
	}

	for _, f := range p.fragments {
		for _, host := range p.ws.Bundles {
			if host.SymbolicName == f.Host && !host.IsFragment() {
				host.Fragments = append(host.Fragments, f)
			}
		}
		for _, proj := range p.order {
			if proj.Bundle != nil && proj.Bundle.SymbolicName == f.Host {
				proj.Bundle.Fragments = append(proj.Bundle.Fragments, f)
			}
		}
	}
	return nil
}

func (p *workspaceParser) path(s string) string {
	if s == "" || filepath.IsAbs(s) {
		return s
	}
	return filepath.Join(p.dir, s)
}

func (p *workspaceParser) errorf(call *build.CallExpr, wrapped error, format string, args ...any) error {
	start, _ := call.Span()
	return &ParseError{
		Filename: p.filename,
		Line:     start.Line,
		Column:   start.LineRune,
		Message:  fmt.Sprintf(format, args...),
		Wrapped:  wrapped,
	}
}
