package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	id int64
}

func (n *node) ID() int64 { return n.id }

func buildGraph(edges [][2]int64, count int64) (*Graph[*node, struct{}], map[int64]*node) {
	g := NewGraph[*node](struct{}{})
	nodes := make(map[int64]*node)
	for i := int64(0); i < count; i++ {
		n := &node{id: i}
		nodes[i] = n
		g.AddNode(n)
	}
	for _, e := range edges {
		g.AddEdge(nodes[e[0]], nodes[e[1]])
	}
	return g, nodes
}

func ids(ns []*node) []int64 {
	result := make([]int64, len(ns))
	for i, n := range ns {
		result[i] = n.id
	}
	return result
}

func TestGraphAddNodeIsIdempotent(t *testing.T) {
	g := NewGraph[*node](struct{}{})
	n := &node{id: 1}
	g.AddNode(n)
	g.AddNode(n)
	assert.Equal(t, 1, g.Len())
}

func TestGraphPredsAndSuccs(t *testing.T) {
	g, nodes := buildGraph([][2]int64{{0, 1}, {0, 2}, {1, 2}}, 3)

	assert.ElementsMatch(t, []int64{1, 2}, ids(g.Succs(nodes[0])))
	assert.Empty(t, g.Preds(nodes[0]))
	assert.ElementsMatch(t, []int64{0, 1}, ids(g.Preds(nodes[2])))
	assert.Empty(t, g.Succs(nodes[2]))
}

func TestGraphSelfLoop(t *testing.T) {
	g, nodes := buildGraph([][2]int64{{0, 1}, {1, 1}}, 2)

	assert.ElementsMatch(t, []int64{0, 1}, ids(g.Preds(nodes[1])),
		"A self-looping node is its own predecessor")
	assert.ElementsMatch(t, []int64{1}, ids(g.Succs(nodes[1])))
}

func TestReversePostorderLinearChain(t *testing.T) {
	g, nodes := buildGraph([][2]int64{{0, 1}, {1, 2}}, 3)
	assert.Equal(t, []int64{0, 1, 2}, ids(g.ReversePostorder(nodes[0])))
}

func TestReversePostorderDiamond(t *testing.T) {
	g, nodes := buildGraph([][2]int64{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, 4)

	order := ids(g.ReversePostorder(nodes[0]))
	assert.Len(t, order, 4)
	assert.Equal(t, int64(0), order[0], "The entry comes first")
	assert.Equal(t, int64(3), order[3], "The join comes after both arms")
}

func TestReversePostorderHandlesCycles(t *testing.T) {
	g, nodes := buildGraph([][2]int64{{0, 1}, {1, 2}, {2, 1}}, 3)

	order := ids(g.ReversePostorder(nodes[0]))
	assert.Len(t, order, 3)
	assert.Equal(t, int64(0), order[0])
}

func TestReversePostorderIncludesUnreachable(t *testing.T) {
	g, nodes := buildGraph([][2]int64{{0, 1}}, 3)

	order := ids(g.ReversePostorder(nodes[0]))
	assert.Len(t, order, 3, "Unreachable nodes still appear, after the reachable ones")
	assert.Equal(t, []int64{0, 1}, order[:2])
	assert.Equal(t, int64(2), order[2])
}
