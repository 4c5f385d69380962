// Package document reads and writes the workspace dependencies document.
//
// The document records, for every project of a workspace, the external
// bundles and the workspace projects it depends on transitively. It is
// written by the resolve task and read at build time, so that building a
// project never walks the dependency graph again.
//
// # Document Structure
//
// The file is YAML, a mapping from project name to an entry with two
// optional lists:
//
//	com.acme.core:
//	  dependencies:
//	  - org.slf4j:org.slf4j.api:jar:1.5.8
//	  projects:
//	  - com.acme.util
//	com.acme.util: {}
//
// Both lists are sorted and deduplicated when written and omitted when empty.
// The file is always rewritten as a whole; entries are never merged.
//
// # Usage
//
// Write the document after collecting dependencies:
//
//	err := document.Write(document.DefaultPath(root), names, func(name string, e *document.Entry) {
//	    e.Dependencies = deps[name]
//	    e.Projects = projects[name]
//	})
//
// Read it back:
//
//	doc, err := document.Read(document.DefaultPath(root))
//	classpath := doc.Dependencies("com.acme.core")
package document
