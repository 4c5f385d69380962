package graph

import (
	"fmt"
	"slices"
)

// Get returns the node for a key, or nil if not found.
func (g *Graph) Get(key Key) *Node {
	return g.Nodes[key]
}

// Contains returns true if the graph contains the given node.
func (g *Graph) Contains(key Key) bool {
	_, ok := g.Nodes[key]
	return ok
}

// Keys returns all node keys in lexical order.
func (g *Graph) Keys() []Key {
	keys := make([]Key, 0, len(g.Nodes))
	for key := range g.Nodes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// DirectDeps returns the direct dependencies of a node.
func (g *Graph) DirectDeps(key Key) []Key {
	if node := g.Nodes[key]; node != nil {
		return node.Dependencies
	}
	return nil
}

// DirectDependents returns nodes that directly depend on the given node.
func (g *Graph) DirectDependents(key Key) []Key {
	if node := g.Nodes[key]; node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns all transitive dependencies of a node.
// The result is in breadth-first order.
func (g *Graph) TransitiveDeps(key Key) []Key {
	return g.walk(key, func(n *Node) []Key { return n.Dependencies })
}

// TransitiveDependents returns all nodes that transitively depend on the given node.
// The result is in breadth-first order (closest dependents first).
func (g *Graph) TransitiveDependents(key Key) []Key {
	return g.walk(key, func(n *Node) []Key { return n.Dependents })
}

func (g *Graph) walk(key Key, next func(*Node) []Key) []Key {
	result := make([]Key, 0)
	visited := map[Key]bool{key: true}

	queue := []Key{key}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}

		for _, dep := range next(node) {
			if !visited[dep] {
				visited[dep] = true
				result = append(result, dep)
				queue = append(queue, dep)
			}
		}
	}

	return result
}

// Path finds the shortest dependency path from one node to another.
// Returns nil if no path exists.
func (g *Graph) Path(from, to Key) []Key {
	if from == to {
		return []Key{from}
	}

	type queueItem struct {
		key  Key
		path []Key
	}

	visited := map[Key]bool{from: true}
	queue := []queueItem{{key: from, path: []Key{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current.key]
		if node == nil {
			continue
		}

		for _, dep := range node.Dependencies {
			if dep == to {
				return append(slices.Clone(current.path), dep)
			}
			if !visited[dep] {
				visited[dep] = true
				newPath := make([]Key, len(current.path)+1)
				copy(newPath, current.path)
				newPath[len(current.path)] = dep
				queue = append(queue, queueItem{key: dep, path: newPath})
			}
		}
	}

	return nil
}

// AllPaths finds all acyclic dependency paths from one node to another.
// This can be expensive for large graphs with many paths.
func (g *Graph) AllPaths(from, to Key) [][]Key {
	var result [][]Key
	g.findAllPaths(from, to, []Key{from}, make(map[Key]bool), &result)
	return result
}

func (g *Graph) findAllPaths(current, target Key, path []Key, visited map[Key]bool, result *[][]Key) {
	if current == target {
		*result = append(*result, slices.Clone(path))
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	node := g.Nodes[current]
	if node == nil {
		return
	}

	for _, dep := range node.Dependencies {
		if !visited[dep] {
			g.findAllPaths(dep, target, append(path, dep), visited, result)
		}
	}
}

// WhyIncluded returns all dependency chains from the root that cause a node
// to be included.
func (g *Graph) WhyIncluded(key Key) ([]DependencyChain, error) {
	if !g.Contains(key) {
		return nil, fmt.Errorf("%q not found in graph", key)
	}

	paths := g.AllPaths(g.Root, key)
	chains := make([]DependencyChain, len(paths))
	for i, path := range paths {
		chains[i] = DependencyChain{Path: path}
	}

	return chains, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{
		TotalNodes: len(g.Nodes),
	}

	if root := g.Nodes[g.Root]; root != nil {
		stats.DirectDependencies = len(uniqueKeys(root.Dependencies))
	}

	stats.TransitiveDependencies = max(stats.TotalNodes-stats.DirectDependencies-1, 0)

	for key, node := range g.Nodes {
		switch {
		case key == g.Root:
		case node.Kind == KindProject:
			stats.Projects++
		case node.Kind == KindFragment:
			stats.Fragments++
		}
	}

	stats.MaxDepth = g.calculateMaxDepth()

	return stats
}

func uniqueKeys(keys []Key) []Key {
	seen := make(map[Key]bool, len(keys))
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (g *Graph) calculateMaxDepth() int {
	depths := make(map[Key]int)
	onPath := make(map[Key]bool)
	var maxDepth int

	var dfs func(key Key, depth int)
	dfs = func(key Key, depth int) {
		// An edge back onto the current path closes a cycle.
		if onPath[key] {
			return
		}
		if existingDepth, ok := depths[key]; ok && existingDepth >= depth {
			return
		}
		depths[key] = depth
		maxDepth = max(maxDepth, depth)

		node := g.Nodes[key]
		if node == nil {
			return
		}

		onPath[key] = true
		for _, dep := range node.Dependencies {
			dfs(dep, depth+1)
		}
		delete(onPath, key)
	}

	dfs(g.Root, 0)
	return maxDepth
}

// Roots returns all nodes with no dependents, in lexical order.
func (g *Graph) Roots() []Key {
	var roots []Key
	for _, key := range g.Keys() {
		if len(g.Nodes[key].Dependents) == 0 {
			roots = append(roots, key)
		}
	}
	return roots
}

// Leaves returns all nodes with no dependencies, in lexical order.
func (g *Graph) Leaves() []Key {
	var leaves []Key
	for _, key := range g.Keys() {
		if len(g.Nodes[key].Dependencies) == 0 {
			leaves = append(leaves, key)
		}
	}
	return leaves
}

// HasCycles returns true if the graph contains cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns the cycles found by a depth-first search started from
// the root and then from every remaining node in lexical order.
func (g *Graph) FindCycles() [][]Key {
	var cycles [][]Key
	visited := make(map[Key]bool)
	recStack := make(map[Key]bool)
	path := make([]Key, 0)

	var findCycles func(key Key)
	findCycles = func(key Key) {
		visited[key] = true
		recStack[key] = true
		path = append(path, key)

		if node := g.Nodes[key]; node != nil {
			for _, dep := range node.Dependencies {
				if !visited[dep] {
					findCycles(dep)
				} else if recStack[dep] {
					if start := slices.Index(path, dep); start >= 0 {
						cycles = append(cycles, slices.Clone(path[start:]))
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[key] = false
	}

	if g.Contains(g.Root) {
		findCycles(g.Root)
	}
	for _, key := range g.Keys() {
		if !visited[key] {
			findCycles(key)
		}
	}

	return cycles
}
