package partition

import "github.com/katalvlaran/leac/graphp"

// DisjointSets is the union-find-backed representation: clusters are the
// connected components of a union-find structure over 0..n-1, with tree
// roots enumerating clusters (spec.md §3).
type DisjointSets struct {
	uf   *graphp.UnionFind
	n    int
	comp []int // cached dense component labeling; rebuilt by Refresh
}

// NewDisjointSets wraps uf (over n elements) as a DisjointSets view.
func NewDisjointSets(uf *graphp.UnionFind, n int) *DisjointSets {
	ds := &DisjointSets{uf: uf, n: n}
	ds.Refresh()

	return ds
}

// Refresh recomputes the dense component labeling after new Union calls.
func (ds *DisjointSets) Refresh() { ds.comp = ds.uf.Components() }

func (ds *DisjointSets) NumInstances() int { return ds.n }
func (ds *DisjointSets) NumClusters() int  { return ds.uf.NumComponents() }
func (ds *DisjointSets) ClusterOf(i int) int {
	return ds.comp[i]
}
func (ds *DisjointSets) Iterate(fn func(i, cluster int)) {
	for i, c := range ds.comp {
		fn(i, c)
	}
}

// UnionFind exposes the backing structure so callers can Union more pairs
// before the next Refresh.
func (ds *DisjointSets) UnionFind() *graphp.UnionFind { return ds.uf }

// DecodeLabels materializes the equivalent Label view.
func (ds *DisjointSets) DecodeLabels() *Label {
	return NewLabel(ds.comp, ds.NumClusters())
}
