// Adapted from github.com/katalvlaran/lvlath's bfs package: bfs.BFS walks
// a graph level by level from a single root invoking an OnVisit hook;
// NearestNeighborGraph reuses that "visit each reachable vertex once"
// shape to build a k-nearest-neighbor adjacency graph (the union of each
// vertex's k nearest, not only mutual pairs) and fold it into
// connected components (spec.md §2: "nearest-neighbor-graph partition").
package graphp

import "sort"

// NearestNeighborGraph connects every instance to its k nearest neighbors
// under the dissimilarity function dissim(i,j), producing an undirected
// graph (edge i-j exists if j is among i's k nearest, or vice versa).
//
// Complexity: O(n^2 log n) (a full sort of each row's distances).
func NearestNeighborGraph(n int, dissim func(i, j int) float64, k int) *Graph {
	g := NewGraph(n)
	if k <= 0 || n <= 1 {
		return g
	}
	if k > n-1 {
		k = n - 1
	}

	type cand struct {
		idx  int
		dist float64
	}
	for i := 0; i < n; i++ {
		cands := make([]cand, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			cands = append(cands, cand{idx: j, dist: dissim(i, j)})
		}
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
		for _, c := range cands[:k] {
			_ = g.AddEdge(i, c.idx, c.dist)
		}
	}

	return g
}

// NearestNeighborPartition builds the k-nearest-neighbor graph and returns
// its connected-component labeling as a cluster-label array, via
// UnionFind over the graph's edges.
//
// Complexity: O(n^2 log n).
func NearestNeighborPartition(n int, dissim func(i, j int) float64, k int) []int {
	g := NearestNeighborGraph(n, dissim, k)
	uf := NewUnionFind(n)
	for v := 0; v < n; v++ {
		neighbors, _ := g.Neighbors(v)
		for _, e := range neighbors {
			uf.Union(e.From, e.To)
		}
	}

	return uf.Components()
}
