package bundledeps

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-bundledeps/document"
)

// ProjectResult is the outcome of collecting one workspace project.
type ProjectResult struct {
	Project    *Project
	Collection *Collection
	Err        error
}

// WorkspaceResult holds one ProjectResult per workspace project, sub-projects
// first and the root last.
type WorkspaceResult struct {
	Results []ProjectResult
}

// Failed returns the results whose collection failed.
func (r *WorkspaceResult) Failed() []ProjectResult {
	var out []ProjectResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err joins the per-project failures, or returns nil.
func (r *WorkspaceResult) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, &ProjectError{Project: res.Project.Name, Err: res.Err})
	}
	return errors.Join(errs...)
}

// Collection returns the collection of the named project, or nil.
func (r *WorkspaceResult) Collection(project string) *Collection {
	for _, res := range r.Results {
		if res.Project.Name == project {
			return res.Collection
		}
	}
	return nil
}

// Collect computes the closure of every workspace project.
//
// A project whose manifest cannot be determined is recorded as failed and the
// remaining projects are still collected. Any other error aborts the whole
// collection. A project never appears in its own project set.
func (w *Workspace) Collect(ctx context.Context, c *Collector) (*WorkspaceResult, error) {
	projects := w.AllProjects()
	results := make([]ProjectResult, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.concurrency, 1))

	for i, p := range projects {
		g.Go(func() error {
			c.cfg.progress(ProgressEvent{Stage: ProgressProjectStarted, Project: p.Name})
			coll, err := c.Collect(gctx, p)
			switch {
			case errors.Is(err, ErrUnsupportedConfiguration):
				c.logger.WarnContext(gctx, "skipping project", "project", p.Name, "error", err)
				c.cfg.progress(ProgressEvent{Stage: ProgressProjectFailed, Project: p.Name, Err: err})
				results[i] = ProjectResult{Project: p, Err: err}
				return nil
			case err != nil:
				return err
			}
			coll.RemoveProject(p.Name)
			c.cfg.progress(ProgressEvent{Stage: ProgressProjectDone, Project: p.Name, Bundles: len(coll.Bundles)})
			results[i] = ProjectResult{Project: p, Collection: coll}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &WorkspaceResult{Results: results}, nil
}

// DocumentPath returns the location of the workspace's dependencies document.
func (w *Workspace) DocumentPath() string {
	return document.DefaultPath(w.Dir)
}

// ResolveWorkspace collects every project and rewrites the dependencies
// document. Failed projects are left out of the document and reported in the
// returned error together with the written document.
func ResolveWorkspace(ctx context.Context, w *Workspace, c *Collector) (*document.Document, error) {
	res, err := w.Collect(ctx, c)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, r := range res.Results {
		if r.Err == nil {
			names = append(names, r.Project.Name)
		}
	}
	doc, err := document.Write(w.DocumentPath(), names, func(project string, e *document.Entry) {
		coll := res.Collection(project)
		for _, b := range coll.Bundles {
			e.Dependencies = append(e.Dependencies, b.String())
		}
		for _, p := range coll.Projects {
			e.Projects = append(e.Projects, p.Name)
		}
	})
	if err != nil {
		return nil, err
	}
	return doc, res.Err()
}

// CleanWorkspace rewrites the dependencies document with an empty entry for
// every workspace project.
func CleanWorkspace(w *Workspace) error {
	return document.Clean(w.DocumentPath(), w.ProjectNames())
}

// Dependencies returns the recorded dependencies of the named project from the
// dependencies document. A missing document yields an empty list.
func (w *Workspace) Dependencies(project string) ([]string, error) {
	if w.Project(project) == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, project)
	}
	doc, err := document.ReadOrEmpty(w.DocumentPath())
	if err != nil {
		return nil, err
	}
	return doc.Dependencies(project), nil
}

// InstallSet collects every project and returns the union of their external
// bundles, without duplicates and sorted by coordinate string. Any project
// failure aborts the install set.
func (w *Workspace) InstallSet(ctx context.Context, c *Collector) ([]*Bundle, error) {
	res, err := w.Collect(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []*Bundle
	for _, r := range res.Results {
		for _, b := range r.Collection.Bundles {
			if _, ok := seen[b.String()]; ok {
				continue
			}
			seen[b.String()] = struct{}{}
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b *Bundle) int {
		return cmp.Compare(a.String(), b.String())
	})
	return out, nil
}

// DeployableProjects returns the sub-projects that package a bundle, in
// declaration order. The install-bundles task copies their artifacts.
func (w *Workspace) DeployableProjects() []*Project {
	var out []*Project
	for _, p := range w.Projects {
		if len(p.BundlePackagings()) > 0 {
			out = append(out, p)
		}
	}
	return out
}
