// Package partition provides the four interchangeable representations of
// a clustering named in spec.md §3: Label, Crisp, Centroids, and
// DisjointSets, unified behind a single View trait so every fitness
// function and operator can take any of them.
//
// Modeled on spec.md §9's design note: "Model as a tagged variant
// Partition = Label | CrispMatrix | Centroids | DisjointSets with a
// common trait {numClusters, clusterOf, iter}" — Go has no sum types, so
// each representation is its own concrete type implementing the View
// interface, the same way github.com/katalvlaran/lvlath keeps
// core.Graph, matrix.Dense etc. as distinct concrete types behind small
// focused interfaces rather than one polymorphic base.
package partition

import "errors"

// ErrInvalidCluster indicates a cluster index outside [0, k).
var ErrInvalidCluster = errors.New("partition: invalid cluster index")

// ErrEmptyCluster indicates a cluster with zero members where the caller
// required at least one (spec.md §3, invariant (c)).
var ErrEmptyCluster = errors.New("partition: empty cluster")

// ErrDegenerate indicates every centroid is sentinel-null at assignment
// time (spec.md §4.11: "instance without group", fatal).
var ErrDegenerate = errors.New("partition: all centroids null")

// View is the common read interface every partition representation
// exposes (spec.md §3).
type View interface {
	// NumInstances returns n, the number of partitioned instances.
	NumInstances() int
	// NumClusters returns k, the number of clusters.
	NumClusters() int
	// ClusterOf returns the cluster index of instance i.
	ClusterOf(i int) int
	// Iterate calls fn(i, clusterOf(i)) for every instance 0..n, in order.
	Iterate(fn func(i, cluster int))
}

// CountLabels returns, for a Label-encoded view, the number of members of
// each cluster 0..k. Ported from original_source/leac/count_label.hpp.
//
// Complexity: O(n).
func CountLabels(v View) []int {
	counts := make([]int, v.NumClusters())
	v.Iterate(func(_, c int) {
		counts[c]++
	})

	return counts
}

// Validate checks invariants (a)-(c) from spec.md §3: k >= 1, every
// instance maps to exactly one cluster in [0,k) (guaranteed by View's
// shape), and (unless relax is true) every cluster has >= 1 member.
func Validate(v View, relaxEmptyClusters bool) error {
	if v.NumClusters() < 1 {
		return ErrInvalidCluster
	}
	if relaxEmptyClusters {
		return nil
	}
	counts := CountLabels(v)
	for _, c := range counts {
		if c == 0 {
			return ErrEmptyCluster
		}
	}

	return nil
}
