// Package dataflow provides the control-flow graph container and the
// analysis-agnostic worklist fixed-point solver. The solver knows nothing
// about blocks or instructions: analyses plug in through three capability
// contracts — the lattice algebra, per-node fact storage, and the per-node
// transfer function.
package dataflow

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a directed graph of analysis nodes with one graph-level
// payload. Node identity is the node's logical id.
//
// simple.DirectedGraph rejects self-edges, but a CFG may contain a block
// that branches to itself, so self-loops are tracked in a side table and
// folded back into Preds and Succs.
type Graph[N graph.Node, W any] struct {
	Weight W

	directed  *simple.DirectedGraph
	nodes     map[int64]N
	order     []N
	selfLoops map[int64]bool
}

// NewGraph creates an empty graph carrying weight.
func NewGraph[N graph.Node, W any](weight W) *Graph[N, W] {
	return &Graph[N, W]{
		Weight:    weight,
		directed:  simple.NewDirectedGraph(),
		nodes:     make(map[int64]N),
		selfLoops: make(map[int64]bool),
	}
}

// AddNode inserts n; inserting the same id twice is a no-op.
func (g *Graph[N, W]) AddNode(n N) {
	if _, ok := g.nodes[n.ID()]; ok {
		return
	}
	g.directed.AddNode(n)
	g.nodes[n.ID()] = n
	g.order = append(g.order, n)
}

// AddEdge inserts a directed edge from one node to another. Both nodes
// must already be present.
func (g *Graph[N, W]) AddEdge(from, to N) {
	if from.ID() == to.ID() {
		g.selfLoops[from.ID()] = true
		return
	}
	g.directed.SetEdge(g.directed.NewEdge(from, to))
}

// Node resolves an id to its node.
func (g *Graph[N, W]) Node(id int64) (N, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph[N, W]) Nodes() []N {
	return g.order
}

// Len reports the number of nodes.
func (g *Graph[N, W]) Len() int {
	return len(g.order)
}

// Preds returns the predecessors of n, including n itself when it
// self-loops.
func (g *Graph[N, W]) Preds(n N) []N {
	return g.neighbors(n, g.directed.To(n.ID()))
}

// Succs returns the successors of n, including n itself when it
// self-loops.
func (g *Graph[N, W]) Succs(n N) []N {
	return g.neighbors(n, g.directed.From(n.ID()))
}

func (g *Graph[N, W]) neighbors(n N, it graph.Nodes) []N {
	var result []N
	for it.Next() {
		result = append(result, g.nodes[it.Node().ID()])
	}
	if g.selfLoops[n.ID()] {
		result = append(result, n)
	}
	return result
}

// ReversePostorder returns the nodes in reverse postorder of a depth-first
// walk from entry. Nodes unreachable from entry are appended afterwards in
// insertion order so the solver still initializes them.
func (g *Graph[N, W]) ReversePostorder(entry N) []N {
	visited := make(map[int64]bool, len(g.order))
	var postorder []N

	var walk func(n N)
	walk = func(n N) {
		visited[n.ID()] = true
		for _, succ := range g.Succs(n) {
			if !visited[succ.ID()] {
				walk(succ)
			}
		}
		postorder = append(postorder, n)
	}
	if _, ok := g.nodes[entry.ID()]; ok {
		walk(entry)
	}

	result := make([]N, 0, len(g.order))
	for i := len(postorder) - 1; i >= 0; i-- {
		result = append(result, postorder[i])
	}
	for _, n := range g.order {
		if !visited[n.ID()] {
			result = append(result, n)
		}
	}
	return result
}
