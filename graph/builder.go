package graph

import (
	bundledeps "github.com/albertocavalcante/go-bundledeps"
)

// FromCollection constructs a Graph from the edges recorded by a collection.
// root is the name of the project the collection was computed for.
func FromCollection(root string, coll *bundledeps.Collection) *Graph {
	kinds := make(map[Key]Kind, len(coll.Bundles)+len(coll.Projects)+1)
	kinds[Key(root)] = KindProject
	for _, p := range coll.Projects {
		kinds[Key(p.Name)] = KindProject
	}
	for _, b := range coll.Bundles {
		kind := KindBundle
		if b.IsFragment() {
			kind = KindFragment
		}
		kinds[Key(b.String())] = kind
	}

	edges := make([]Edge, len(coll.Edges))
	for i, e := range coll.Edges {
		edges[i] = Edge{From: Key(e.From), To: Key(e.To)}
	}
	return Build(Key(root), kinds, edges)
}

// Edge is a directed dependency between two nodes.
type Edge struct {
	From Key
	To   Key
}

// Build constructs a Graph from explicit edges. Nodes named only by edges
// default to KindBundle; the root defaults to KindProject.
func Build(root Key, kinds map[Key]Kind, edges []Edge) *Graph {
	g := &Graph{
		Root:  root,
		Nodes: make(map[Key]*Node),
	}

	node := func(k Key) *Node {
		if n, ok := g.Nodes[k]; ok {
			return n
		}
		kind, ok := kinds[k]
		if !ok {
			kind = KindBundle
			if k == root {
				kind = KindProject
			}
		}
		n := &Node{
			Key:          k,
			Kind:         kind,
			Dependencies: make([]Key, 0),
			Dependents:   make([]Key, 0),
			IsRoot:       k == root,
		}
		g.Nodes[k] = n
		return n
	}

	node(root)
	for k := range kinds {
		node(k)
	}
	for _, e := range edges {
		from, to := node(e.From), node(e.To)
		from.Dependencies = append(from.Dependencies, e.To)
		to.Dependents = append(to.Dependents, e.From)
	}
	return g
}
