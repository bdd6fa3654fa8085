package berth

// DependencyGraph is a directed acyclic graph over service identities.
// An edge from A to B means "A depends on B". The graph is not safe for
// concurrent use; the container guards it with its own lock.
type DependencyGraph struct {
	nodes map[ID]*node
	order []ID // Preserve insertion order
}

type node struct {
	id       ID
	children []ID
	edges    map[ID]struct{}
}

// Edge is a single "From depends on To" relation.
type Edge struct {
	From ID
	To   ID
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[ID]*node),
		order: make([]ID, 0),
	}
}

// AddNode ensures id exists as a node. It is a no-op if the node is present.
func (g *DependencyGraph) AddNode(id ID) {
	g.ensure(id)
}

func (g *DependencyGraph) ensure(id ID) *node {
	if n, ok := g.nodes[id]; ok {
		return n
	}

	n := &node{id: id, edges: make(map[ID]struct{})}
	g.nodes[id] = n
	g.order = append(g.order, id)

	return n
}

// AddEdge records that from depends on to. Both nodes are created if needed.
// The edge is rejected, and the graph left unchanged, when to can already
// reach from; that includes the self loop from == to.
func (g *DependencyGraph) AddEdge(from, to ID) bool {
	src := g.ensure(from)
	g.ensure(to)

	if g.CanReach(to, from) {
		return false
	}

	if _, exists := src.edges[to]; exists {
		return true
	}

	src.edges[to] = struct{}{}
	src.children = append(src.children, to)

	return true
}

// removeEdges drops every outgoing edge of id. Removing edges never
// introduces a cycle.
func (g *DependencyGraph) removeEdges(id ID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}

	n.children = nil
	n.edges = make(map[ID]struct{})
}

// HasNode checks if a node exists in the graph.
func (g *DependencyGraph) HasNode(id ID) bool {
	_, ok := g.nodes[id]

	return ok
}

// Children returns the direct dependencies of id in insertion order.
func (g *DependencyGraph) Children(id ID) []ID {
	n, ok := g.nodes[id]
	if !ok || len(n.children) == 0 {
		return nil
	}

	children := make([]ID, len(n.children))
	copy(children, n.children)

	return children
}

// Nodes returns every node in insertion order.
func (g *DependencyGraph) Nodes() []ID {
	nodes := make([]ID, len(g.order))
	copy(nodes, g.order)

	return nodes
}

// Edges returns every edge, grouped by source in insertion order.
func (g *DependencyGraph) Edges() []Edge {
	var edges []Edge

	for _, id := range g.order {
		for _, child := range g.nodes[id].children {
			edges = append(edges, Edge{From: id, To: child})
		}
	}

	return edges
}

// CanReach reports whether a directed path leads from from to to.
// Every node reaches itself.
func (g *DependencyGraph) CanReach(from, to ID) bool {
	return g.Path(from, to) != nil
}

// Path returns the nodes of one directed path from from to to, both ends
// included, or nil if there is none. The search is breadth first, so the
// returned path is a shortest one.
func (g *DependencyGraph) Path(from, to ID) []ID {
	if from == to {
		return []ID{from}
	}

	if _, ok := g.nodes[from]; !ok {
		return nil
	}

	parent := map[ID]ID{from: from}
	queue := []ID{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range g.nodes[current].children {
			if _, seen := parent[child]; seen {
				continue
			}

			parent[child] = current

			if child == to {
				return walkBack(parent, from, to)
			}

			queue = append(queue, child)
		}
	}

	return nil
}

func walkBack(parent map[ID]ID, from, to ID) []ID {
	path := []ID{to}
	for current := to; current != from; {
		current = parent[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// Closure returns id followed by every node reachable from it, deduplicated,
// in breadth-first discovery order.
func (g *DependencyGraph) Closure(id ID) []ID {
	return g.closureUntil(id, nil)
}

// closureUntil is Closure where nodes matching stop are included but their
// dependencies are not followed.
func (g *DependencyGraph) closureUntil(id ID, stop func(ID) bool) []ID {
	closure := []ID{id}
	seen := map[ID]struct{}{id: {}}

	for i := 0; i < len(closure); i++ {
		if stop != nil && stop(closure[i]) {
			continue
		}

		n, ok := g.nodes[closure[i]]
		if !ok {
			continue
		}

		for _, child := range n.children {
			if _, dup := seen[child]; dup {
				continue
			}

			seen[child] = struct{}{}
			closure = append(closure, child)
		}
	}

	return closure
}

// TopologicalOrder sorts the subgraph induced by nodes so that every node
// comes after all of its dependencies, using Kahn's algorithm.
//
// The pending count of a node is the number of its dependencies inside the
// subgraph. Leaves start at zero and are emitted first; emitting a node
// decrements the count of every member that depends on it. The emission
// order is therefore already dependencies-first. Ties keep the input order.
func (g *DependencyGraph) TopologicalOrder(nodes []ID) ([]ID, error) {
	members := make([]ID, 0, len(nodes))
	inSet := make(map[ID]struct{}, len(nodes))

	for _, id := range nodes {
		if _, dup := inSet[id]; dup {
			continue
		}

		inSet[id] = struct{}{}
		members = append(members, id)
	}

	pending := make(map[ID]int, len(members))
	dependents := make(map[ID][]ID, len(members))

	for _, id := range members {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}

		for _, child := range n.children {
			if _, in := inSet[child]; !in {
				continue
			}

			pending[id]++
			dependents[child] = append(dependents[child], id)
		}
	}

	queue := make([]ID, 0, len(members))

	for _, id := range members {
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]ID, 0, len(members))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range dependents[current] {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(members) {
		var stuck []ID

		for _, id := range members {
			if pending[id] > 0 {
				stuck = append(stuck, id)
			}
		}

		return nil, ErrCircularDependency(stuck)
	}

	return result, nil
}

// TopologicalSort returns every node in dependency order.
func (g *DependencyGraph) TopologicalSort() ([]ID, error) {
	return g.TopologicalOrder(g.order)
}

// Clone returns a deep copy of the graph.
func (g *DependencyGraph) Clone() *DependencyGraph {
	clone := NewDependencyGraph()

	for _, id := range g.order {
		n := clone.ensure(id)
		for _, child := range g.nodes[id].children {
			n.edges[child] = struct{}{}
			n.children = append(n.children, child)
		}
	}

	return clone
}
