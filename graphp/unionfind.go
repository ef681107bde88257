package graphp

// UnionFind is a disjoint-set-union structure over integer elements
// 0..n-1, with path compression and union by rank. Extracted from the
// find/union closures github.com/katalvlaran/lvlath's
// prim_kruskal.Kruskal builds inline for MST cycle detection; exported
// here as a standalone type because spec.md §2/§3 names union-find as
// its own graph primitive and partition.DisjointSets needs the same
// machinery independent of any MST computation.
type UnionFind struct {
	parent []int
	rank   []int
}

// NewUnionFind creates a UnionFind over n singleton sets {0}, {1}, ..., {n-1}.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}

	return uf
}

// Find returns the representative (root) of the set containing x, applying
// iterative path compression to avoid deep recursion.
//
// Complexity: O(α(n)) amortized.
func (uf *UnionFind) Find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}

	return x
}

// Union merges the sets containing u and v. Returns false if they were
// already in the same set (no merge performed).
//
// Complexity: O(α(n)) amortized.
func (uf *UnionFind) Union(u, v int) bool {
	ru, rv := uf.Find(u), uf.Find(v)
	if ru == rv {
		return false
	}
	if uf.rank[ru] < uf.rank[rv] {
		uf.parent[ru] = rv
	} else {
		uf.parent[rv] = ru
		if uf.rank[ru] == uf.rank[rv] {
			uf.rank[ru]++
		}
	}

	return true
}

// Components returns a dense labeling comp where comp[i] is the 0-based
// component index containing i, with component indices assigned in order
// of first appearance when scanning i = 0..n-1 (deterministic given a
// fixed sequence of prior Union calls).
//
// Complexity: O(n α(n)).
func (uf *UnionFind) Components() []int {
	n := len(uf.parent)
	comp := make([]int, n)
	rootLabel := make(map[int]int, n)
	next := 0
	for i := 0; i < n; i++ {
		r := uf.Find(i)
		lbl, ok := rootLabel[r]
		if !ok {
			lbl = next
			rootLabel[r] = lbl
			next++
		}
		comp[i] = lbl
	}

	return comp
}

// NumComponents returns the number of distinct components.
func (uf *UnionFind) NumComponents() int {
	roots := make(map[int]struct{})
	for i := range uf.parent {
		roots[uf.Find(i)] = struct{}{}
	}

	return len(roots)
}
