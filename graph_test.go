package berth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vertex returns a distinct identity per name for graph tests.
func vertex(name string) ID {
	return NamedID[struct{}](name)
}

func TestDependencyGraph_AddNode_Idempotent(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(vertex("a"))
	g.AddNode(vertex("a"))

	assert.True(t, g.HasNode(vertex("a")))
	assert.Equal(t, []ID{vertex("a")}, g.Nodes())
}

func TestDependencyGraph_AddEdge(t *testing.T) {
	g := NewDependencyGraph()

	assert.True(t, g.AddEdge(vertex("b"), vertex("a")))
	assert.True(t, g.AddEdge(vertex("b"), vertex("c")))

	// Both endpoints become nodes
	assert.True(t, g.HasNode(vertex("a")))
	assert.True(t, g.HasNode(vertex("c")))
	assert.Equal(t, []ID{vertex("a"), vertex("c")}, g.Children(vertex("b")))
	assert.Empty(t, g.Children(vertex("a")))
}

func TestDependencyGraph_AddEdge_Duplicate(t *testing.T) {
	g := NewDependencyGraph()

	assert.True(t, g.AddEdge(vertex("b"), vertex("a")))
	assert.True(t, g.AddEdge(vertex("b"), vertex("a")))
	assert.Equal(t, []ID{vertex("a")}, g.Children(vertex("b")))
}

func TestDependencyGraph_AddEdge_RejectsTwoNodeCycle(t *testing.T) {
	g := NewDependencyGraph()

	require.True(t, g.AddEdge(vertex("a"), vertex("b")))
	assert.False(t, g.AddEdge(vertex("b"), vertex("a")))

	// Graph is left unchanged
	assert.Empty(t, g.Children(vertex("b")))
	assert.Len(t, g.Edges(), 1)
}

func TestDependencyGraph_AddEdge_RejectsSelfLoop(t *testing.T) {
	g := NewDependencyGraph()

	assert.False(t, g.AddEdge(vertex("a"), vertex("a")))
	assert.True(t, g.HasNode(vertex("a")))
	assert.Empty(t, g.Edges())
}

func TestDependencyGraph_AddEdge_RejectsThreeNodeCycle(t *testing.T) {
	g := NewDependencyGraph()

	require.True(t, g.AddEdge(vertex("c"), vertex("a")))
	require.True(t, g.AddEdge(vertex("a"), vertex("b")))
	assert.False(t, g.AddEdge(vertex("b"), vertex("c")))

	_, err := g.TopologicalSort()
	assert.NoError(t, err)
}

func TestDependencyGraph_CanReach(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("c"), vertex("b"))
	g.AddEdge(vertex("b"), vertex("a"))
	g.AddNode(vertex("x"))

	assert.True(t, g.CanReach(vertex("c"), vertex("a")))
	assert.True(t, g.CanReach(vertex("c"), vertex("c")))
	assert.False(t, g.CanReach(vertex("a"), vertex("c")))
	assert.False(t, g.CanReach(vertex("x"), vertex("a")))
	assert.False(t, g.CanReach(vertex("missing"), vertex("a")))
}

func TestDependencyGraph_Path(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("d"), vertex("c"))
	g.AddEdge(vertex("c"), vertex("b"))
	g.AddEdge(vertex("b"), vertex("a"))
	g.AddEdge(vertex("d"), vertex("a"))

	// Breadth first: the direct edge wins
	assert.Equal(t, []ID{vertex("d"), vertex("a")}, g.Path(vertex("d"), vertex("a")))
	assert.Equal(t, []ID{vertex("c"), vertex("b"), vertex("a")}, g.Path(vertex("c"), vertex("a")))
	assert.Equal(t, []ID{vertex("a")}, g.Path(vertex("a"), vertex("a")))
	assert.Nil(t, g.Path(vertex("a"), vertex("d")))
}

func TestDependencyGraph_Closure_Diamond(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("b"), vertex("a"))
	g.AddEdge(vertex("c"), vertex("a"))
	g.AddEdge(vertex("d"), vertex("b"))
	g.AddEdge(vertex("d"), vertex("c"))

	closure := g.Closure(vertex("d"))
	assert.Equal(t, []ID{vertex("d"), vertex("b"), vertex("c"), vertex("a")}, closure)

	assert.Equal(t, []ID{vertex("b"), vertex("a")}, g.Closure(vertex("b")))
	assert.Equal(t, []ID{vertex("unknown")}, g.Closure(vertex("unknown")))
}

func TestDependencyGraph_TopologicalOrder_Linear(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("b"), vertex("a"))
	g.AddEdge(vertex("c"), vertex("b"))

	order, err := g.TopologicalOrder(g.Closure(vertex("c")))
	require.NoError(t, err)

	// Leaf dependencies come first
	assert.Equal(t, []ID{vertex("a"), vertex("b"), vertex("c")}, order)
}

func TestDependencyGraph_TopologicalOrder_Diamond(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("b"), vertex("a"))
	g.AddEdge(vertex("c"), vertex("a"))
	g.AddEdge(vertex("d"), vertex("b"))
	g.AddEdge(vertex("d"), vertex("c"))

	order, err := g.TopologicalOrder(g.Closure(vertex("d")))
	require.NoError(t, err)
	require.Len(t, order, 4)

	aIdx := indexOf(order, vertex("a"))
	bIdx := indexOf(order, vertex("b"))
	cIdx := indexOf(order, vertex("c"))
	dIdx := indexOf(order, vertex("d"))

	assert.Less(t, aIdx, bIdx)
	assert.Less(t, aIdx, cIdx)
	assert.Less(t, bIdx, dIdx)
	assert.Less(t, cIdx, dIdx)
}

func TestDependencyGraph_TopologicalOrder_SubsetAndDuplicates(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("b"), vertex("a"))
	g.AddEdge(vertex("c"), vertex("b"))

	// Edges leaving the subset are ignored
	order, err := g.TopologicalOrder([]ID{vertex("c"), vertex("b"), vertex("c")})
	require.NoError(t, err)
	assert.Equal(t, []ID{vertex("b"), vertex("c")}, order)
}

func TestDependencyGraph_TopologicalSort_Empty(t *testing.T) {
	g := NewDependencyGraph()

	result, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDependencyGraph_TopologicalSort_KeepsInsertionOrderForLeaves(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(vertex("x"))
	g.AddNode(vertex("y"))
	g.AddNode(vertex("z"))

	result, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []ID{vertex("x"), vertex("y"), vertex("z")}, result)
}

func TestDependencyGraph_RemoveEdges(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("a"), vertex("b"))
	require.False(t, g.AddEdge(vertex("b"), vertex("a")))

	g.removeEdges(vertex("a"))

	assert.True(t, g.AddEdge(vertex("b"), vertex("a")))
	assert.True(t, g.HasNode(vertex("a")))
}

func TestDependencyGraph_Clone(t *testing.T) {
	g := NewDependencyGraph()
	g.AddEdge(vertex("b"), vertex("a"))

	clone := g.Clone()
	clone.AddEdge(vertex("c"), vertex("b"))

	assert.Equal(t, g.Edges(), []Edge{{From: vertex("b"), To: vertex("a")}})
	assert.Len(t, clone.Edges(), 2)
	assert.False(t, g.HasNode(vertex("c")))
}

func indexOf(slice []ID, item ID) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}

	return -1
}
