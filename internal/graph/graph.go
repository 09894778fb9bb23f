// Package graph implements the random constraint graph at the core of the
// CHM construction.
//
// Each key contributes one undirected edge between the two vertices chosen
// by the candidate hash functions, carrying the key's ordinal as its edge
// value. If the resulting multigraph is acyclic, vertex values can be
// assigned so that every edge (u, v) with value e satisfies
//
//	(value[u] + value[v]) mod n == e
//
// which is exactly the lookup table the generated code ships.
package graph

// unassigned marks a vertex that no traversal has reached yet.
const unassigned = -1

// halfEdge is one direction of an undirected edge. Vertex ids and edge
// values both stay well under 2^31: table sizes are capped by the search
// ceiling and edge values are key ordinals.
type halfEdge struct {
	to    int32
	value int32
}

// Graph is an undirected multigraph on n vertices. Parallel edges and
// self-loops are representable; both make the graph cyclic, which the
// assignment pass reports rather than treating as an error.
type Graph struct {
	n      int
	adj    [][]halfEdge
	values []int32
}

// New returns an empty graph on n vertices.
func New(n int) *Graph {
	return &Graph{
		n:   n,
		adj: make([][]halfEdge, n),
	}
}

// Connect adds an undirected edge between v1 and v2 carrying edgeValue.
// Both adjacency lists are updated so the assignment pass can walk the
// edge from either side.
func (g *Graph) Connect(v1, v2, edgeValue int) {
	g.adj[v1] = append(g.adj[v1], halfEdge{to: int32(v2), value: int32(edgeValue)})
	g.adj[v2] = append(g.adj[v2], halfEdge{to: int32(v1), value: int32(edgeValue)})
}

// frame is one pending traversal step: the vertex to expand and the vertex
// it was reached from (-1 for component roots).
type frame struct {
	parent int32
	vertex int32
}

// AssignVertexValues tries to assign a value to every vertex such that each
// edge (u, v, e) satisfies (values[u] + values[v]) mod n == e. The
// assignment exists exactly when the graph is acyclic. It reports false as
// soon as a cycle is found; the partially filled table is discarded by the
// caller along with the graph.
func (g *Graph) AssignVertexValues() bool {
	g.values = make([]int32, g.n)
	for i := range g.values {
		g.values[i] = unassigned
	}
	visited := make([]bool, g.n)

	// Explicit stack instead of recursion: component depth is bounded only
	// by the vertex count, and real key sets produce long path components.
	stack := make([]frame, 0, 64)

	for root := range g.n {
		if visited[root] {
			continue
		}
		// Root of a fresh component. Isolated vertices keep this zero.
		g.values[root] = 0
		stack = append(stack[:0], frame{parent: -1, vertex: int32(root)})

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			visited[f.vertex] = true

			// The edge we arrived over is skipped exactly once. A second
			// edge back to the parent is a parallel edge, hence a cycle.
			skip := f.parent != -1
			for _, e := range g.adj[f.vertex] {
				if skip && e.to == f.parent {
					skip = false
					continue
				}
				if visited[e.to] {
					return false
				}
				// Fix the neighbor so this edge's constraint holds. Floor
				// modulus keeps the value in [0, n) even when the edge
				// value is smaller than the vertex value.
				v := (int(e.value) - int(g.values[f.vertex])) % g.n
				if v < 0 {
					v += g.n
				}
				g.values[e.to] = int32(v)
				stack = append(stack, frame{parent: f.vertex, vertex: e.to})
			}
		}
	}

	// Every vertex is either a component root or was assigned on push, so
	// an unassigned slot here would be a traversal defect.
	for _, v := range g.values {
		if v == unassigned {
			return false
		}
	}
	return true
}

// Values returns the vertex value table filled by the last successful
// AssignVertexValues call. The slice aliases graph state; callers that
// outlive the graph must copy it.
func (g *Graph) Values() []int32 {
	return g.values
}
