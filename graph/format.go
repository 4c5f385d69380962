package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

const separatorWidth = 60 // Width of separator lines in text output

// TreeNode is the nested JSON form of a graph node.
type TreeNode struct {
	Key          string     `json:"key"`
	Kind         Kind       `json:"kind,omitempty"`
	Root         bool       `json:"root,omitempty"`
	Dependencies []TreeNode `json:"dependencies,omitempty"`
	Cycle        bool       `json:"cycle,omitempty"`
	Unexpanded   bool       `json:"unexpanded,omitempty"`
}

// ToJSON outputs the graph as a nested dependency tree.
// Nodes already printed elsewhere are marked unexpanded; edges back onto
// the current path are marked as cycles.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g.Tree(), "", "  ")
}

// ToYAML outputs the same tree as ToJSON in YAML.
func (g *Graph) ToYAML() ([]byte, error) {
	return yaml.Marshal(g.Tree())
}

// Tree converts the graph to its nested form rooted at g.Root.
func (g *Graph) Tree() *TreeNode {
	rootNode := g.Nodes[g.Root]
	if rootNode == nil {
		return &TreeNode{}
	}

	expanded := map[Key]bool{g.Root: true}
	onPath := map[Key]bool{g.Root: true}
	return &TreeNode{
		Key:          g.Root.String(),
		Kind:         rootNode.Kind,
		Root:         true,
		Dependencies: g.buildTree(rootNode, expanded, onPath),
	}
}

func (g *Graph) buildTree(node *Node, expanded, onPath map[Key]bool) []TreeNode {
	deps := make([]TreeNode, 0, len(node.Dependencies))

	for _, depKey := range node.Dependencies {
		depNode := g.Nodes[depKey]
		entry := TreeNode{Key: depKey.String()}
		if depNode != nil {
			entry.Kind = depNode.Kind
		}

		switch {
		case onPath[depKey]:
			entry.Cycle = true
		case expanded[depKey]:
			entry.Unexpanded = true
		case depNode != nil:
			expanded[depKey] = true
			onPath[depKey] = true
			entry.Dependencies = g.buildTree(depNode, expanded, onPath)
			delete(onPath, depKey)
		}

		deps = append(deps, entry)
	}

	return deps
}

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	keys := g.Keys()
	for _, key := range keys {
		node := g.Nodes[key]
		attrs := fmt.Sprintf("label=%q", key.String())
		switch {
		case node.IsRoot:
			attrs += ", style=bold"
		case node.Kind == KindProject:
			attrs += ", shape=component"
		case node.Kind == KindFragment:
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", key.String(), attrs)
	}

	buf.WriteString("\n")

	for _, key := range keys {
		for _, dep := range uniqueKeys(g.Nodes[key].Dependencies) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", key.String(), dep.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Dependency Graph (root: %s)\n", g.Root)
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Total nodes: %d\n", stats.TotalNodes)
	fmt.Fprintf(&buf, "Direct dependencies: %d\n", stats.DirectDependencies)
	fmt.Fprintf(&buf, "Transitive dependencies: %d\n", stats.TransitiveDependencies)
	fmt.Fprintf(&buf, "Max depth: %d\n", stats.MaxDepth)
	if stats.Projects > 0 {
		fmt.Fprintf(&buf, "Projects: %d\n", stats.Projects)
	}
	if stats.Fragments > 0 {
		fmt.Fprintf(&buf, "Fragments: %d\n", stats.Fragments)
	}
	buf.WriteString("\n")

	buf.WriteString("Dependency Tree:\n")
	g.printTree(&buf, g.Root, "", true, make(map[Key]bool))

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, key Key, prefix string, isLast bool, visited map[Key]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" && key == g.Root {
		buf.WriteString(key.String())
	} else {
		buf.WriteString(prefix + connector + key.String())
	}

	node := g.Nodes[key]
	if node != nil && !node.IsRoot && node.Kind != KindBundle {
		fmt.Fprintf(buf, " (%s)", node.Kind)
	}

	if visited[key] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[key] = true
	defer func() { visited[key] = false }()

	if node == nil {
		return
	}

	deps := uniqueKeys(node.Dependencies)
	for i, dep := range deps {
		childPrefix := prefix
		if key != g.Root {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		g.printTree(buf, dep, childPrefix, i == len(deps)-1, visited)
	}
}

// ToExplainText outputs a human-readable explanation of why a node is in
// the graph.
func (g *Graph) ToExplainText(key Key) (string, error) {
	chains, err := g.WhyIncluded(key)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Explanation for: %s\n", key)
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n")

	if len(chains) == 0 {
		buf.WriteString("\nNot reachable from the root.\n")
		return buf.String(), nil
	}

	buf.WriteString("\nDependency Chains (paths from root):\n")
	for i, chain := range chains {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, chain)
	}

	return buf.String(), nil
}

// NodeInfo represents a node in the flat list output.
type NodeInfo struct {
	Key        string   `json:"key"`
	Kind       Kind     `json:"kind"`
	RequiredBy []string `json:"required_by,omitempty"`
}

// ToNodeList outputs a flat list of the nodes other than the root, sorted by key.
func (g *Graph) ToNodeList() []NodeInfo {
	nodes := make([]NodeInfo, 0, len(g.Nodes))

	for _, key := range g.Keys() {
		if key == g.Root {
			continue
		}
		node := g.Nodes[key]

		dependents := uniqueKeys(node.Dependents)
		requiredBy := make([]string, len(dependents))
		for i, dep := range dependents {
			requiredBy[i] = dep.String()
		}

		nodes = append(nodes, NodeInfo{
			Key:        key.String(),
			Kind:       node.Kind,
			RequiredBy: requiredBy,
		})
	}

	return nodes
}
