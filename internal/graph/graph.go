// Package graph builds the bidirectional dependency graph over a corpus
// snapshot and answers cycle queries against it.
//
// The graph is a pure derivation: it is rebuilt from scratch for every
// batch operation and never written back to the corpus. Cycles and
// dangling edges are tolerated data states at this layer — callers decide
// what to report.
package graph

import "github.com/codervisor/leanspec/internal/spec"

// Node holds both edge directions for one identifier.
// Invariant: for all X, Y — Y appears in RequiredBy(X) exactly when X
// appears in DependsOn(Y).
type Node struct {
	DependsOn  []string `json:"dependsOn"`
	RequiredBy []string `json:"requiredBy"`
}

// Graph is the corpus-wide relationship mapping. Treat it as immutable
// after Build; rebuilding from the same records yields identical output,
// element order included.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// Build constructs the graph in two passes over the record set.
//
// Pass 1 stores each record's normalized dependsOn list as-is. Pass 2
// appends each record to the requiredBy bucket of every dependency that
// names a known record; dangling references stay visible in the declaring
// record's dependsOn but land in no bucket. Order within every list
// follows declaration and record order, so the result is deterministic.
func Build(records []spec.Record) *Graph {
	g := &Graph{nodes: make(map[string]*Node, len(records))}

	for _, rec := range records {
		deps := make([]string, len(rec.DependsOn))
		copy(deps, rec.DependsOn)
		g.nodes[rec.ID] = &Node{DependsOn: deps}
		g.order = append(g.order, rec.ID)
	}

	for _, rec := range records {
		for _, dep := range rec.DependsOn {
			if target, known := g.nodes[dep]; known {
				target.RequiredBy = append(target.RequiredBy, rec.ID)
			}
		}
	}

	return g
}

// Has reports whether the identifier names a known record.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// DependsOn returns the forward edges of id. Nil for unknown identifiers.
func (g *Graph) DependsOn(id string) []string {
	if n, ok := g.nodes[id]; ok {
		return n.DependsOn
	}
	return nil
}

// RequiredBy returns the reverse edges of id. Nil for unknown identifiers.
func (g *Graph) RequiredBy(id string) []string {
	if n, ok := g.nodes[id]; ok {
		return n.RequiredBy
	}
	return nil
}

// IDs returns every known identifier in record order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dangling returns the declared dependencies of id that name no known
// record, in declaration order.
func (g *Graph) Dangling(id string) []string {
	var out []string
	for _, dep := range g.DependsOn(id) {
		if !g.Has(dep) {
			out = append(out, dep)
		}
	}
	return out
}

// Nodes returns the full mapping for structural (JSON) rendering.
func (g *Graph) Nodes() map[string]Node {
	out := make(map[string]Node, len(g.nodes))
	for id, n := range g.nodes {
		out[id] = *n
	}
	return out
}
