package document

import (
	"slices"
	"sort"
)

// FileName is the name of the dependencies document at a workspace root.
const FileName = "dependencies.yml"

// Entry holds the persisted dependencies of one project.
type Entry struct {
	// Dependencies are coordinate strings of external bundles.
	Dependencies []string `yaml:"dependencies,omitempty"`

	// Projects are names of workspace projects.
	Projects []string `yaml:"projects,omitempty"`
}

// IsEmpty returns true if the entry lists nothing.
func (e Entry) IsEmpty() bool {
	return len(e.Dependencies) == 0 && len(e.Projects) == 0
}

// Document maps project names to their entries.
type Document struct {
	Projects map[string]Entry
}

// New creates an empty document.
func New() *Document {
	return &Document{Projects: make(map[string]Entry)}
}

// Names returns the project names in sorted order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Projects))
	for name := range d.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the document has an entry for the project.
func (d *Document) Has(project string) bool {
	_, ok := d.Projects[project]
	return ok
}

// Entry returns the entry for a project. Unknown projects yield an empty entry.
func (d *Document) Entry(project string) Entry {
	return d.Projects[project]
}

// Dependencies returns the sorted, deduplicated union of a project's persisted
// dependencies and projects. It reads the document only; nothing is resolved.
func (d *Document) Dependencies(project string) []string {
	e := d.Projects[project]
	all := make([]string, 0, len(e.Dependencies)+len(e.Projects))
	all = append(all, e.Dependencies...)
	all = append(all, e.Projects...)
	return normalize(all)
}

// normalize sorts and removes duplicates. The result is nil for empty input.
func normalize(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	sort.Strings(out)
	return slices.Compact(out)
}
