package document

import (
	"slices"
	"sort"
)

// ProjectDiff describes how one project's entry changed.
type ProjectDiff struct {
	// Project is the project name.
	Project string `json:"project"`

	// AddedDependencies are bundles present in new but not in old.
	AddedDependencies []string `json:"added_dependencies,omitempty"`

	// RemovedDependencies are bundles present in old but not in new.
	RemovedDependencies []string `json:"removed_dependencies,omitempty"`

	// AddedProjects are project references present in new but not in old.
	AddedProjects []string `json:"added_projects,omitempty"`

	// RemovedProjects are project references present in old but not in new.
	RemovedProjects []string `json:"removed_projects,omitempty"`
}

// IsEmpty returns true if nothing changed for the project.
func (p ProjectDiff) IsEmpty() bool {
	return len(p.AddedDependencies) == 0 &&
		len(p.RemovedDependencies) == 0 &&
		len(p.AddedProjects) == 0 &&
		len(p.RemovedProjects) == 0
}

// Diff describes the differences between two dependencies documents.
//
// Example usage:
//
//	old, _ := document.ReadOrEmpty(path)
//	updated, _ := document.Write(path, names, fill)
//	diff := document.Compare(old, updated)
//	for _, p := range diff.Changed {
//	    fmt.Printf("%s: +%d -%d\n", p.Project, len(p.AddedDependencies), len(p.RemovedDependencies))
//	}
type Diff struct {
	// AddedProjects are projects present only in new.
	AddedProjects []string `json:"added_projects,omitempty"`

	// RemovedProjects are projects present only in old.
	RemovedProjects []string `json:"removed_projects,omitempty"`

	// Changed lists projects present in both whose entries differ.
	Changed []ProjectDiff `json:"changed,omitempty"`
}

// IsEmpty returns true if there are no differences.
func (d *Diff) IsEmpty() bool {
	return len(d.AddedProjects) == 0 && len(d.RemovedProjects) == 0 && len(d.Changed) == 0
}

// Compare computes the difference between two documents. A nil document is
// treated as empty. Results are sorted by project name.
func Compare(old, new *Document) *Diff {
	if old == nil {
		old = New()
	}
	if new == nil {
		new = New()
	}

	diff := &Diff{}
	for name, newEntry := range new.Projects {
		oldEntry, existed := old.Projects[name]
		if !existed {
			diff.AddedProjects = append(diff.AddedProjects, name)
			continue
		}
		p := ProjectDiff{
			Project:             name,
			AddedDependencies:   missingFrom(oldEntry.Dependencies, newEntry.Dependencies),
			RemovedDependencies: missingFrom(newEntry.Dependencies, oldEntry.Dependencies),
			AddedProjects:       missingFrom(oldEntry.Projects, newEntry.Projects),
			RemovedProjects:     missingFrom(newEntry.Projects, oldEntry.Projects),
		}
		if !p.IsEmpty() {
			diff.Changed = append(diff.Changed, p)
		}
	}
	for name := range old.Projects {
		if _, exists := new.Projects[name]; !exists {
			diff.RemovedProjects = append(diff.RemovedProjects, name)
		}
	}

	sort.Strings(diff.AddedProjects)
	sort.Strings(diff.RemovedProjects)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].Project < diff.Changed[j].Project
	})
	return diff
}

// missingFrom returns the sorted values of candidates that are not in base.
func missingFrom(base, candidates []string) []string {
	var out []string
	for _, c := range candidates {
		if !slices.Contains(base, c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
