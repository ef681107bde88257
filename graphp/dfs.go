// Adapted from github.com/katalvlaran/lvlath's dfs package: the same
// pre-order hook, post-order finish list, and depth/parent bookkeeping, trimmed
// of mixed-edge direction handling, context cancellation, and neighbor
// filtering (none of which apply to the simple undirected graphs this
// package builds) and retargeted to int vertex indices.
package graphp

// DFSResult holds the outcome of a depth-first traversal.
type DFSResult struct {
	Order   []int       // vertices in post-order finish order
	Depth   []int       // Depth[v] = recursion depth (-1 if unvisited)
	Parent  []int       // Parent[v] = predecessor (-1 if root or unvisited)
	Visited []bool
}

// DFSOptions configures an optional pre-order hook.
type DFSOptions struct {
	// OnVisit(v, depth) is called when v is first visited. A non-nil
	// error aborts the traversal.
	OnVisit func(v, depth int) error
}

// DFS performs depth-first search over g starting at start. If opts is
// nil, no hook is invoked.
func DFS(g *Graph, start int, opts *DFSOptions) (*DFSResult, error) {
	if !g.HasVertex(start) {
		return nil, ErrVertexNotFound
	}
	n := g.N()
	res := &DFSResult{
		Order:   make([]int, 0, n),
		Depth:   make([]int, n),
		Parent:  make([]int, n),
		Visited: make([]bool, n),
	}
	for i := range res.Depth {
		res.Depth[i] = -1
		res.Parent[i] = -1
	}

	var hook func(v, depth int) error
	if opts != nil {
		hook = opts.OnVisit
	}

	var walk func(v, depth int) error
	walk = func(v, depth int) error {
		res.Visited[v] = true
		res.Depth[v] = depth
		if hook != nil {
			if err := hook(v, depth); err != nil {
				return err
			}
		}
		neighbors, err := g.Neighbors(v)
		if err != nil {
			return err
		}
		for _, e := range neighbors {
			if !res.Visited[e.To] {
				res.Parent[e.To] = v
				if err := walk(e.To, depth+1); err != nil {
					return err
				}
			}
		}
		res.Order = append(res.Order, v)

		return nil
	}

	if err := walk(start, 0); err != nil {
		return res, err
	}

	return res, nil
}

// Components returns a dense component labeling over all n vertices of g
// via repeated DFS from each unvisited vertex (spec.md §2: "DFS, union-find
// components").
//
// Complexity: O(V+E).
func Components(g *Graph) []int {
	n := g.N()
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	label := 0
	for v := 0; v < n; v++ {
		if comp[v] != -1 {
			continue
		}
		res, _ := DFS(g, v, nil)
		for _, u := range res.Order {
			comp[u] = label
		}
		label++
	}

	return comp
}
