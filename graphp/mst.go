// Adapted from github.com/katalvlaran/lvlath's prim_kruskal.Prim: same
// min-heap-growing-outward algorithm and step-numbered doc-comment style,
// retargeted from *core.Graph (string-keyed vertices) to graphp.Graph
// (int-indexed instances).
package graphp

import "container/heap"

// Prim computes the Minimum Spanning Tree of an undirected weighted graph
// g, growing outward from root using a min-heap (spec.md §2: "graph
// construction ... MST via Prim").
//
// Steps:
//  1. Validate root is a vertex of g.
//  2. Mark root visited; push all edges incident to root.
//  3. Repeatedly pop the minimum-weight edge whose far endpoint is
//     unvisited; add it to the MST; push its far endpoint's incident edges.
//  4. Stop when the MST has n-1 edges or the heap empties.
//  5. If fewer than n-1 edges were collected, g is disconnected.
//
// Complexity: O(E log V) time, O(V+E) memory.
func Prim(g *Graph, root int) ([]Edge, float64, error) {
	if !g.HasVertex(root) {
		return nil, 0, ErrVertexNotFound
	}
	n := g.N()
	if n == 1 {
		return []Edge{}, 0, nil
	}

	visited := make([]bool, n)
	mst := make([]Edge, 0, n-1)
	var total float64

	pq := &edgePQ{}
	heap.Init(pq)

	visited[root] = true
	neighbors, err := g.Neighbors(root)
	if err != nil {
		return nil, 0, err
	}
	for _, e := range neighbors {
		if !visited[e.To] {
			heap.Push(pq, e)
		}
	}

	for pq.Len() > 0 && len(mst) < n-1 {
		e := heap.Pop(pq).(Edge)
		if visited[e.To] {
			continue
		}
		visited[e.To] = true
		mst = append(mst, e)
		total += e.Weight

		nextNeighbors, err := g.Neighbors(e.To)
		if err != nil {
			return nil, 0, err
		}
		for _, ne := range nextNeighbors {
			if !visited[ne.To] {
				heap.Push(pq, ne)
			}
		}
	}

	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}

// edgePQ implements heap.Interface for a min-heap of Edge ordered by Weight.
type edgePQ []Edge

func (pq edgePQ) Len() int            { return len(pq) }
func (pq edgePQ) Less(i, j int) bool  { return pq[i].Weight < pq[j].Weight }
func (pq edgePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(Edge)) }
func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]

	return e
}
