// Package graph provides dependency graph representation and query
// capabilities for collected bundle dependencies.
//
// A graph is built from the edges a collection records while walking a
// project's dependencies, allowing users to:
//
//   - Visualize the dependency graph of a project
//   - Find why a bundle is part of a project's closure
//   - Find dependency paths between nodes
//   - Detect dependency cycles
//
// # Building a Graph
//
//	coll, _ := collector.Collect(ctx, project)
//	g := graph.FromCollection(project.Name, coll)
//
// # Querying the Graph
//
//	// Get direct dependencies
//	deps := g.DirectDeps(g.Root)
//
//	// Explain why a bundle is included
//	chains, _ := g.WhyIncluded("osgi:org.slf4j.api:jar:1.6.1")
//
//	// Find path between nodes
//	path := g.Path(from, to)
//
// # Output Formats
//
// The graph can be serialized to multiple formats:
//
//	// Nested JSON tree
//	jsonBytes, _ := g.ToJSON()
//
//	// Graphviz DOT format for visualization
//	dotString := g.ToDOT()
//
//	// Human-readable text
//	textString := g.ToText()
package graph
