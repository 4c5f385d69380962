package graph

import (
	"strings"
)

// Key identifies a node: a project name or a bundle coordinate string.
type Key string

func (k Key) String() string {
	return string(k)
}

// Graph represents the dependency graph of one project.
// It supports bidirectional traversal (dependencies and dependents).
type Graph struct {
	// Root is the project the graph was collected for.
	Root Key

	// Nodes contains all nodes in the graph, keyed by Key.
	Nodes map[Key]*Node
}

// Kind tells what a node stands for.
type Kind string

const (
	// KindProject is a workspace project.
	KindProject Kind = "project"

	// KindBundle is an external bundle.
	KindBundle Kind = "bundle"

	// KindFragment is a fragment attached to a host bundle.
	KindFragment Kind = "fragment"
)

// Node represents a project or bundle in the dependency graph.
type Node struct {
	// Key uniquely identifies this node.
	Key Key

	// Kind tells whether the node is a project, a bundle or a fragment.
	Kind Kind

	// Dependencies are the direct dependencies in discovery order.
	Dependencies []Key

	// Dependents are nodes that directly depend on this one (reverse edges).
	Dependents []Key

	// IsRoot is true if this is the root project.
	IsRoot bool
}

// DependencyChain represents a path of dependencies from root to a node.
type DependencyChain struct {
	// Path is the sequence of nodes from root to target.
	Path []Key
}

// String returns a human-readable representation of the chain.
func (c DependencyChain) String() string {
	parts := make([]string, len(c.Path))
	for i, k := range c.Path {
		parts[i] = k.String()
	}
	return strings.Join(parts, " -> ")
}

// Stats provides statistics about the graph.
type Stats struct {
	// TotalNodes is the total number of nodes in the graph, root included.
	TotalNodes int

	// DirectDependencies is the number of direct dependencies of the root.
	DirectDependencies int

	// TransitiveDependencies is the number of dependencies that are not direct.
	TransitiveDependencies int

	// MaxDepth is the maximum depth of the dependency tree.
	MaxDepth int

	// Projects is the number of workspace projects reached.
	Projects int

	// Fragments is the number of fragments pulled in with their hosts.
	Fragments int
}
