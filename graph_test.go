package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphToposortOrdersDependenciesFirst(t *testing.T) {
	g := NewGraph[int]()
	g.AddEdge(2, 3)
	g.AddEdge(1, 3)
	g.AddEdge(1, 2)

	order, cycle := g.Toposort()
	require.Nil(t, cycle)
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestGraphToposortDetectsCycle(t *testing.T) {
	g := NewGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")

	order, cycle := g.Toposort()
	require.Nil(t, order)
	require.NotNil(t, cycle)
	assert.Contains(t, cycle.Nodes, "a")
	assert.Contains(t, cycle.Nodes, "b")
	assert.Contains(t, cycle.Nodes, "c")
}

func TestGraphAcyclicGraphHasNoCycle(t *testing.T) {
	g := NewGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	assert.Nil(t, g.Cycle())
}
