// Package dag builds the dependency graph between the decisions of a model.
//
// An edge A -> B means B depends on A: a rule or the visibility of B mentions
// A, or a rule owned by A changes B. Rules may legitimately form cycles, so
// the graph reports them instead of rejecting them.
package dag

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// EdgeKind tells which part of the model produced an edge.
type EdgeKind uint8

// Edge kinds. An edge may carry both.
const (
	EdgeRule EdgeKind = 1 << iota
	EdgeVisibility
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeRule:
		return "rule"
	case EdgeVisibility:
		return "visibility"
	case EdgeRule | EdgeVisibility:
		return "rule+visibility"
	default:
		return "none"
	}
}

// Node is one decision in the graph.
type Node struct {
	ID       string
	Decision *core.Decision
	index    int // insertion order
}

// Graph is a directed graph over decision ids. Every listing follows node
// insertion order, which for FromModel is the model's row order.
type Graph struct {
	nodes   map[string]*Node
	order   []string
	edges   map[string][]string // dependency -> dependents
	parents map[string][]string // dependent -> dependencies
	kinds   map[[2]string]EdgeKind
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
		kinds:   make(map[[2]string]EdgeKind),
	}
}

// FromModel builds the graph of m. An edge whose end is not a decision of m
// is left out and reported in the joined error; the graph holds every other
// edge. A deserialized model resolves all references, so the error is nil.
func FromModel(m *core.DecisionModel) (*Graph, error) {
	g := NewGraph()
	for _, d := range m.All() {
		g.AddNode(d.ID(), d)
	}

	var errs []error
	add := func(from, to string, kind EdgeKind) {
		if err := g.AddEdge(from, to, kind); err != nil {
			errs = append(errs, fmt.Errorf("%s edge %s -> %s: %w", kind, from, to, err))
		}
	}
	for id, d := range m.All() {
		for _, rule := range d.Rules() {
			for _, ref := range core.References(rule.Condition) {
				add(ref, id, EdgeRule)
			}
			for _, a := range rule.Actions {
				add(id, a.Target(), EdgeRule)
			}
		}
		for _, ref := range core.References(d.Visibility()) {
			add(ref, id, EdgeVisibility)
		}
	}
	return g, errors.Join(errs...)
}

// AddNode adds a node, or replaces the decision of an existing one.
func (g *Graph) AddNode(id string, d *core.Decision) {
	if n, exists := g.nodes[id]; exists {
		n.Decision = d
		return
	}
	g.nodes[id] = &Node{ID: id, Decision: d, index: len(g.order)}
	g.order = append(g.order, id)
}

// AddEdge records that to depends on from. Self references are ignored:
// a decision's rules routinely act on the decision itself.
func (g *Graph) AddEdge(from, to string, kind EdgeKind) error {
	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("node %q does not exist", from)
	}
	if _, exists := g.nodes[to]; !exists {
		return fmt.Errorf("node %q does not exist", to)
	}
	if from == to {
		return nil
	}

	key := [2]string{from, to}
	if _, exists := g.kinds[key]; !exists {
		g.edges[from] = g.insertSorted(g.edges[from], to)
		g.parents[to] = g.insertSorted(g.parents[to], from)
	}
	g.kinds[key] |= kind
	return nil
}

// insertSorted adds id to ids keeping insertion order of the nodes.
func (g *Graph) insertSorted(ids []string, id string) []string {
	i, _ := slices.BinarySearchFunc(ids, id, func(a, b string) int {
		return g.nodes[a].index - g.nodes[b].index
	})
	return slices.Insert(ids, i, id)
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// EdgeKind returns the kind of the edge from -> to, zero when absent.
func (g *Graph) EdgeKind(from, to string) EdgeKind {
	return g.kinds[[2]string{from, to}]
}

// GetDependencies returns the decisions id depends on.
func (g *Graph) GetDependencies(id string) []string {
	return slices.Clone(g.parents[id])
}

// GetDependents returns the decisions depending on id.
func (g *Graph) GetDependents(id string) []string {
	return slices.Clone(g.edges[id])
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.kinds)
}

// HasCycle returns true if the graph contains a cycle, along with one cycle
// path that starts and ends on the same node.
func (g *Graph) HasCycle() (bool, []string) {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = onStack
		stack = append(stack, id)

		for _, child := range g.edges[id] {
			switch state[child] {
			case unvisited:
				if dfs(child) {
					return true
				}
			case onStack:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	for _, id := range g.order {
		if state[id] == unvisited && dfs(id) {
			return true, cycle
		}
	}
	return false, nil
}

// TopologicalSort returns ids with every dependency before its dependents.
// Returns an error if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	visited := make(map[string]bool, len(g.nodes))
	result := make([]string, 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, parent := range g.parents[id] {
			visit(parent)
		}
		result = append(result, id)
	}

	for _, id := range g.order {
		visit(id)
	}
	return result, nil
}

// GetResolutionLevels groups ids by depth. Level 0 holds decisions that
// depend on nothing; a decision at level N only depends on lower levels, so
// a questionnaire can ask the levels in order.
func (g *Graph) GetResolutionLevels() ([][]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	level := make(map[string]int, len(g.nodes))
	var depth func(id string) int
	depth = func(id string) int {
		if l, ok := level[id]; ok {
			return l
		}
		l := 0
		for _, parent := range g.parents[id] {
			l = max(l, depth(parent)+1)
		}
		level[id] = l
		return l
	}

	var levels [][]string
	for _, id := range g.order {
		l := depth(id)
		for len(levels) <= l {
			levels = append(levels, []string{})
		}
		levels[l] = append(levels[l], id)
	}
	return levels, nil
}

// GetAffectedNodes returns the given ids and everything downstream of them.
func (g *Graph) GetAffectedNodes(changedIDs []string) []string {
	affected := make(map[string]bool)

	var mark func(id string)
	mark = func(id string) {
		if affected[id] {
			return
		}
		affected[id] = true
		for _, child := range g.edges[id] {
			mark(child)
		}
	}

	for _, id := range changedIDs {
		if _, exists := g.nodes[id]; exists {
			mark(id)
		}
	}
	return g.ordered(affected)
}

// GetUpstreamNodes returns every transitive dependency of id.
func (g *Graph) GetUpstreamNodes(id string) []string {
	upstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, parent := range g.parents[nodeID] {
			if !upstream[parent] {
				upstream[parent] = true
				mark(parent)
			}
		}
	}

	mark(id)
	delete(upstream, id) // only present when id sits on a cycle
	return g.ordered(upstream)
}

// GetRoots returns decisions with no dependencies.
func (g *Graph) GetRoots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// GetLeaves returns decisions nothing depends on.
func (g *Graph) GetLeaves() []string {
	var leaves []string
	for _, id := range g.order {
		if len(g.edges[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// Subgraph returns a new graph containing only the given nodes and the edges
// between them.
func (g *Graph) Subgraph(nodeIDs []string) *Graph {
	sub := NewGraph()
	keep := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		keep[id] = true
	}

	for _, id := range g.order {
		if keep[id] {
			sub.AddNode(id, g.nodes[id].Decision)
		}
	}
	for key, kind := range g.kinds {
		if keep[key[0]] && keep[key[1]] {
			_ = sub.AddEdge(key[0], key[1], kind)
		}
	}
	return sub
}

// ordered returns the members of set in insertion order.
func (g *Graph) ordered(set map[string]bool) []string {
	result := make([]string, 0, len(set))
	for _, id := range g.order {
		if set[id] {
			result = append(result, id)
		}
	}
	return result
}
