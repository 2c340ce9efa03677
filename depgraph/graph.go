// Package depgraph tracks "defined in terms of" edges between entities.
//
// An edge runs from a parent (an entity referenced by a definition) to its
// dependent. The graph is kept acyclic at all times: [Graph.Add] rejects any
// parent set that would close a cycle and leaves the graph untouched.
//
// Recomputation after a change follows [Graph.TopologicalRecomputeOrder],
// which lists every transitive dependent exactly once and always after all
// of its parents.
package depgraph

import (
	"slices"

	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/errors"
)

var (
	// ErrGraphHasCycle is returned by [Graph.Validate] when a cycle is detected.
	// Add never lets one in, so seeing it means the graph was corrupted.
	ErrGraphHasCycle = errors.New(errors.ErrCodeInternal, "graph contains a cycle")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when the parent
	// and dependent adjacency lists disagree.
	ErrInvalidEdgeEndpoint = errors.New(errors.ErrCodeInternal, "invalid edge endpoint")
)

// Edge connects a parent to an entity defined in terms of it
type Edge struct {
	From core.Entity // parent
	To   core.Entity // dependent
}

// Graph is the dependency DAG
type Graph struct {
	parents    map[core.Entity][]core.Entity
	dependents map[core.Entity][]core.Entity
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		parents:    make(map[core.Entity][]core.Entity),
		dependents: make(map[core.Entity][]core.Entity),
	}
}

// Has reports whether e is a node
func (g *Graph) Has(e core.Entity) bool {
	_, ok := g.parents[e]
	return ok
}

// Len returns the node count
func (g *Graph) Len() int { return len(g.parents) }

// Nodes returns every node, sorted
func (g *Graph) Nodes() []core.Entity {
	out := make([]core.Entity, 0, len(g.parents))
	for e := range g.parents {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Parents returns the entities e is defined in terms of
func (g *Graph) Parents(e core.Entity) []core.Entity {
	return slices.Clone(g.parents[e])
}

// DependentsOf returns the direct dependents of e, sorted
func (g *Graph) DependentsOf(e core.Entity) []core.Entity {
	return slices.Clone(g.dependents[e])
}

// Edges returns every edge sorted by parent then dependent
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.Nodes() {
		for _, to := range g.dependents[from] {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// CanAdd checks Add without mutating the graph
func (g *Graph) CanAdd(e core.Entity, parents []core.Entity) error {
	if e.IsZero() {
		return errors.New(errors.ErrCodeMissingEntity, "null entity")
	}
	for _, p := range parents {
		if p == e {
			return errors.New(errors.ErrCodeCycle, "%v cannot depend on itself", e)
		}
		if !g.Has(p) {
			return errors.New(errors.ErrCodeMissingEntity, "parent %v of %v is not in the graph", p, e)
		}
	}
	if !g.Has(e) || len(g.dependents[e]) == 0 {
		return nil
	}
	// A parent reachable from e through dependents would close a cycle
	reach := g.reachable(e)
	for _, p := range parents {
		if _, ok := reach[p]; ok {
			return errors.New(errors.ErrCodeCycle, "%v already depends on %v", p, e)
		}
	}
	return nil
}

// Add inserts e with edges from each parent, replacing any previous parent set
// Duplicate parents collapse into one edge
func (g *Graph) Add(e core.Entity, parents []core.Entity) error {
	if err := g.CanAdd(e, parents); err != nil {
		return err
	}

	for _, p := range g.parents[e] {
		g.dependents[p] = remove(g.dependents[p], e)
	}

	set := make([]core.Entity, 0, len(parents))
	for _, p := range parents {
		if !slices.Contains(set, p) {
			set = append(set, p)
		}
	}
	g.parents[e] = set
	if _, ok := g.dependents[e]; !ok {
		g.dependents[e] = nil
	}
	for _, p := range set {
		g.dependents[p] = insertSorted(g.dependents[p], e)
	}
	return nil
}

// Remove deletes e and all its edges
// Returns the direct and transitive dependents e had, sorted
func (g *Graph) Remove(e core.Entity) []core.Entity {
	if !g.Has(e) {
		return nil
	}
	affected := g.TransitiveDependents(e)

	for _, p := range g.parents[e] {
		g.dependents[p] = remove(g.dependents[p], e)
	}
	for _, d := range g.dependents[e] {
		g.parents[d] = remove(g.parents[d], e)
	}
	delete(g.parents, e)
	delete(g.dependents, e)
	return affected
}

// Clear drops every node and edge
func (g *Graph) Clear() {
	clear(g.parents)
	clear(g.dependents)
}

// TransitiveDependents returns everything defined directly or indirectly in terms of e, sorted
func (g *Graph) TransitiveDependents(e core.Entity) []core.Entity {
	reach := g.reachable(e)
	out := make([]core.Entity, 0, len(reach))
	for d := range reach {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// reachable collects the dependents closure of e, excluding e
func (g *Graph) reachable(e core.Entity) map[core.Entity]struct{} {
	seen := make(map[core.Entity]struct{})
	stack := slices.Clone(g.dependents[e])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		stack = append(stack, g.dependents[n]...)
	}
	delete(seen, e)
	return seen
}

// TopologicalRecomputeOrder lists every transitive dependent of changed, each once,
// each after all of its parents. The changed entities themselves are excluded
// Reverse DFS postorder over dependents, memoized across roots
func (g *Graph) TopologicalRecomputeOrder(changed []core.Entity) []core.Entity {
	visited := make(map[core.Entity]bool)
	post := make([]core.Entity, 0)

	var visit func(n core.Entity)
	visit = func(n core.Entity) {
		visited[n] = true
		for _, d := range g.dependents[n] {
			if !visited[d] {
				visit(d)
			}
		}
		post = append(post, n)
	}

	for _, c := range changed {
		if g.Has(c) && !visited[c] {
			visit(c)
		}
	}

	slices.Reverse(post)
	excluded := make(map[core.Entity]struct{}, len(changed))
	for _, c := range changed {
		excluded[c] = struct{}{}
	}
	out := post[:0]
	for _, n := range post {
		if _, skip := excluded[n]; !skip {
			out = append(out, n)
		}
	}
	return out
}

// Sort orders entities so that every member's parents within the set come first
// Input order breaks ties; entities unknown to the graph keep their relative place
func (g *Graph) Sort(entities []core.Entity) []core.Entity {
	in := make(map[core.Entity]bool, len(entities))
	for _, e := range entities {
		in[e] = true
	}
	visited := make(map[core.Entity]bool, len(entities))
	out := make([]core.Entity, 0, len(entities))

	var visit func(n core.Entity)
	visit = func(n core.Entity) {
		visited[n] = true
		for _, p := range g.parents[n] {
			if in[p] && !visited[p] {
				visit(p)
			}
		}
		out = append(out, n)
	}
	for _, e := range entities {
		if !visited[e] {
			visit(e)
		}
	}
	return out
}

// Validate checks adjacency consistency and acyclicity
// Cycle detection is a white/gray/black DFS, O(N+E)
func (g *Graph) Validate() error {
	for e, ps := range g.parents {
		for _, p := range ps {
			if !slices.Contains(g.dependents[p], e) {
				return ErrInvalidEdgeEndpoint
			}
		}
	}
	return g.detectCycles()
}

func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[core.Entity]int, len(g.parents))
	var hasCycle bool

	var dfs func(n core.Entity)
	dfs = func(n core.Entity) {
		color[n] = gray
		for _, d := range g.dependents[n] {
			switch color[d] {
			case white:
				dfs(d)
			case gray:
				hasCycle = true
				return
			}
		}
		color[n] = black
	}

	for _, n := range g.Nodes() {
		if color[n] == white {
			dfs(n)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

func remove(s []core.Entity, e core.Entity) []core.Entity {
	if i := slices.Index(s, e); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

func insertSorted(s []core.Entity, e core.Entity) []core.Entity {
	i, found := slices.BinarySearch(s, e)
	if found {
		return s
	}
	return slices.Insert(s, i, e)
}
