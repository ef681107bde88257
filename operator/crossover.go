package operator

import (
	"errors"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/partition"
	"github.com/katalvlaran/leac/rng"
)

// ErrLengthMismatch indicates two parents of a fixed-length crossover have
// different gene-string lengths.
var ErrLengthMismatch = errors.New("operator: parent length mismatch")

// ErrNoValidCut indicates one-point-indivisible crossover could not find a
// centroid-boundary cut respecting [2, kMax] for both children.
var ErrNoValidCut = errors.New("operator: no valid indivisible cut")

// OnePoint performs fixed-length one-point crossover (spec.md §4.7): picks
// a cut c in [1, L-1] and swaps tails between two equal-length IntString
// parents, producing two children with fitness reset to the unevaluated
// sentinel.
//
// Complexity: O(L).
func OnePoint(a, b *chromosome.IntString, s *rng.Stream) (child1, child2 *chromosome.IntString, err error) {
	l := len(a.Genes)
	if len(b.Genes) != l {
		return nil, nil, ErrLengthMismatch
	}
	if l < 2 {
		return nil, nil, ErrLengthMismatch
	}
	cut := 1 + s.Intn(l-1)

	g1 := append(append([]int(nil), a.Genes[:cut]...), b.Genes[cut:]...)
	g2 := append(append([]int(nil), b.Genes[:cut]...), a.Genes[cut:]...)

	child1 = chromosome.NewIntString(g1, a.K)
	child2 = chromosome.NewIntString(g2, b.K)
	child1.SetFitness(chromosome.Unevaluated)
	child2.SetFitness(chromosome.Unevaluated)

	return child1, child2, nil
}

// chooseIndivisibleCut picks c2 in a range that keeps both resulting
// children within [2, kMax] centroids, given a fixed c1. Returns ok=false
// if no value of c2 in [0,k2] satisfies both bounds.
func chooseIndivisibleCut(c1, k1, k2, kMax int, s *rng.Stream) (c2 int, ok bool) {
	lo := c1 + k2 - kMax
	if v := 2 - k1 + c1; v > lo {
		lo = v
	}
	if lo < 0 {
		lo = 0
	}
	hi := c1 + k2 - 2
	if v := kMax - k1 + c1; v < hi {
		hi = v
	}
	if hi > k2 {
		hi = k2
	}
	if lo > hi {
		return 0, false
	}

	return lo + s.Intn(hi-lo+1), true
}

// OnePointIndivisible performs variable-length one-point crossover over
// two RealString (centroid-matrix) parents, splicing whole centroid rows
// at a boundary rather than individual scalars (spec.md §4.7): the cut is
// chosen so each child ends up with between 2 and kMax centroids.
//
// Complexity: O((k1+k2)*d).
func OnePointIndivisible(a, b *chromosome.RealString, kMax int, s *rng.Stream) (child1, child2 *chromosome.RealString, err error) {
	k1, k2 := a.Mat.Rows(), b.Mat.Rows()
	dim := a.Mat.Cols()
	if b.Mat.Cols() != dim {
		return nil, nil, ErrLengthMismatch
	}
	if k1 < 2 || k2 < 2 {
		return nil, nil, ErrNoValidCut
	}

	c1 := 1 + s.Intn(k1-1)
	c2, ok := chooseIndivisibleCut(c1, k1, k2, kMax, s)
	if !ok {
		return nil, nil, ErrNoValidCut
	}

	mat1, err := spliceRows(a.Mat, 0, c1, b.Mat, c2, k2)
	if err != nil {
		return nil, nil, err
	}
	mat2, err := spliceRows(b.Mat, 0, c2, a.Mat, c1, k1)
	if err != nil {
		return nil, nil, err
	}

	child1 = chromosome.NewRealString(mat1, a.DS(), a.D())
	child2 = chromosome.NewRealString(mat2, b.DS(), b.D())
	child1.SetFitness(chromosome.Unevaluated)
	child2.SetFitness(chromosome.Unevaluated)

	return child1, child2, nil
}

// spliceRows builds a new matrix from matA's rows [aFrom,aTo) followed by
// matB's rows [bFrom,bTo).
func spliceRows(matA *geom.Matrix, aFrom, aTo int, matB *geom.Matrix, bFrom, bTo int) (*geom.Matrix, error) {
	dim := matA.Cols()
	total := (aTo - aFrom) + (bTo - bFrom)
	out, err := geom.NewMatrix(total, dim)
	if err != nil {
		return nil, err
	}
	row := 0
	for i := aFrom; i < aTo; i++ {
		r, err := matA.Row(i)
		if err != nil {
			return nil, err
		}
		if err := out.SetRow(row, r); err != nil {
			return nil, err
		}
		row++
	}
	for i := bFrom; i < bTo; i++ {
		r, err := matB.Row(i)
		if err != nil {
			return nil, err
		}
		if err := out.SetRow(row, r); err != nil {
			return nil, err
		}
		row++
	}

	return out, nil
}

// MergeCrossoverGGA implements the GGA merge-crossover (spec.md §4.7):
// picks a contiguous cluster-index range from each label-encoded parent,
// copies instances belonging to those ranges verbatim, and folds every
// remaining instance into a single extra "remainder" cluster before
// compacting. The resulting k after Compact() is at most
// (b1-a1)+(b2-a2)+1; spec.md's "+2" figure is the paper's upper bound
// before compaction drops any range that happened to be empty of actual
// members — not a guarantee this implementation re-derives independently.
//
// Complexity: O(n).
func MergeCrossoverGGA(a, b *chromosome.IntString, s *rng.Stream) (*chromosome.IntString, error) {
	n := len(a.Genes)
	if len(b.Genes) != n {
		return nil, ErrLengthMismatch
	}
	a1, b1 := randomRange(a.K, s)
	a2, b2 := randomRange(b.K, s)

	offsetB := b1 - a1
	remainder := offsetB + (b2 - a2)

	child := make([]int, n)
	for i := 0; i < n; i++ {
		switch {
		case a.Genes[i] >= a1 && a.Genes[i] < b1:
			child[i] = a.Genes[i] - a1
		case b.Genes[i] >= a2 && b.Genes[i] < b2:
			child[i] = offsetB + (b.Genes[i] - a2)
		default:
			child[i] = remainder
		}
	}

	lbl := partition.NewLabel(child, remainder+1)
	_, newK := lbl.Compact()

	out := chromosome.NewIntString(lbl.Labels(), newK)
	out.SetFitness(chromosome.Unevaluated)

	return out, nil
}

// randomRange picks a contiguous sub-range [lo,hi) of [0,k) with hi>lo.
func randomRange(k int, s *rng.Stream) (lo, hi int) {
	if k < 1 {
		return 0, 0
	}
	lo = s.Intn(k)
	hi = lo + 1 + s.Intn(k-lo)

	return lo, hi
}

// CGACrossover implements the CGA label+trailing-k-gene crossover (spec.md
// §4.7), matching original_source/include/ga_clustering_operator.hpp's
// crossoverCGA: (1) the child starts as a copy of b; (2) c distinct labels
// are drawn from a ("chosen"); (3) "affected" is every *child* (b-derived)
// label value that appears at any position a assigns to a chosen cluster;
// (4) every position whose current child value is in affected is
// sentineled; (5) positions whose a-label is chosen are then overwritten
// with a's label; (6) the surviving (non-sentinel) labels are compacted
// contiguously; (7) centroids are recomputed from the surviving positions
// only; (8) every instance is reassigned to its nearest centroid
// (clustering.SetUpCluster), fully overwriting the label array by
// geometry — a non-chosen, non-affected instance can still change cluster
// here if the merged centroid geometry puts it closer to a different one.
//
// Complexity: O(n*k*d) (the final nearest-centroid reassignment).
func CGACrossover(a, b *chromosome.IntString, ds *dataset.Dataset, d geom.Distance, s *rng.Stream) (*chromosome.FEAC, error) {
	n := len(a.Genes)
	if len(b.Genes) != n {
		return nil, ErrLengthMismatch
	}
	c := 1 + s.Intn(a.K)
	chosen := s.ChooseDistinct(a.K, c)
	chosenSet := make(map[int]bool, c)
	for _, v := range chosen {
		chosenSet[v] = true
	}

	// Step 1: child starts as a copy of b.
	child := make([]int, n)
	copy(child, b.Genes)

	// Steps 2-3: affected is every child (b-derived) label value appearing
	// at any position a assigns to a chosen cluster.
	affected := make(map[int]bool)
	for i := 0; i < n; i++ {
		if chosenSet[a.Genes[i]] {
			affected[child[i]] = true
		}
	}

	const sentinel = -1

	// Step 4: sentinel every position whose current child value is affected.
	for i := 0; i < n; i++ {
		if affected[child[i]] {
			child[i] = sentinel
		}
	}

	// Step 5: overwrite positions where a's label is chosen with a's label.
	for i := 0; i < n; i++ {
		if chosenSet[a.Genes[i]] {
			child[i] = a.Genes[i]
		}
	}

	// Step 6: compact the surviving (non-sentinel) labels contiguously.
	maxK := a.K
	if b.K > maxK {
		maxK = b.K
	}
	survivorLabels := make([]int, 0, n)
	survivorIdx := make([]int, 0, n)
	for i, v := range child {
		if v != sentinel {
			survivorLabels = append(survivorLabels, v)
			survivorIdx = append(survivorIdx, i)
		}
	}
	lbl := partition.NewLabel(survivorLabels, maxK)
	_, newK := lbl.Compact()
	compacted := lbl.Labels()

	full := make([]int, n)
	for i := range full {
		full[i] = sentinel
	}
	for idx, origIdx := range survivorIdx {
		full[origIdx] = compacted[idx]
	}

	// Step 7: recompute centroids from the surviving positions only.
	mat, live, err := recomputeCentroidsSubset(full, ds, newK, sentinel)
	if err != nil {
		return nil, err
	}

	// Step 8: reassign every instance to its nearest centroid, fully
	// overwriting the label array by geometry.
	finalLabels, err := clustering.SetUpCluster(ds, mat, live, d)
	if err != nil {
		return nil, err
	}

	out, err := chromosome.NewFEAC(finalLabels, newK, ds)
	if err != nil {
		return nil, err
	}
	out.SetFitness(chromosome.Unevaluated)

	return out, nil
}

// recomputeCentroidsSubset is clustering.RecomputeCentroids restricted to
// the positions of labels not equal to sentinel, used by CGACrossover to
// seed centroids from the surviving (non-sentineled) instances only before
// the final geometry-driven reassignment pass.
//
// Complexity: O(n*d + k*d).
func recomputeCentroidsSubset(labels []int, ds *dataset.Dataset, k, sentinel int) (*geom.Matrix, []bool, error) {
	dim := ds.Dim()
	mat, err := geom.NewMatrix(k, dim)
	if err != nil {
		return nil, nil, err
	}
	sums, err := geom.NewMatrix(k, dim)
	if err != nil {
		return nil, nil, err
	}
	counts := make([]int, k)
	for i, cl := range labels {
		if cl == sentinel {
			continue
		}
		in, ierr := ds.At(i)
		if ierr != nil {
			return nil, nil, ierr
		}
		w := float64(in.Weight())
		counts[cl] += in.Weight()
		row, _ := sums.Row(cl)
		for j, f := range in.Features {
			row[j] += w * f
		}
	}
	live := make([]bool, k)
	for cl := 0; cl < k; cl++ {
		if counts[cl] == 0 {
			continue
		}
		live[cl] = true
		sumRow, _ := sums.Row(cl)
		inv := 1.0 / float64(counts[cl])
		meanRow := make([]float64, dim)
		for j, sv := range sumRow {
			meanRow[j] = sv * inv
		}
		_ = mat.SetRow(cl, meanRow)
	}

	return mat, live, nil
}

// PNNNew implements PNN-new codebook-merge crossover (spec.md §4.7):
// concatenates two k-centroid codebooks to 2k entries, reassigns every
// instance to its nearest of the 2k, recomputes centroids/counts, then
// iteratively merges the pair of live centroids with minimum PNN merge
// cost (weighted squared distance, spec.md §4 supplement) until
// targetK centroids remain.
//
// Complexity: O(n*k*d + k^3) (the merge search is the dominant term for
// moderate k: O(k^2) pairs scanned per merge, O(k) merges).
func PNNNew(a, b *chromosome.RealString, ds *dataset.Dataset, d geom.Distance, targetK int) (*chromosome.RealString, error) {
	k1, k2 := a.Mat.Rows(), b.Mat.Rows()
	combined, err := spliceRows(a.Mat, 0, k1, b.Mat, 0, k2)
	if err != nil {
		return nil, err
	}
	total := k1 + k2
	liveAll := make([]bool, total)
	for i := range liveAll {
		liveAll[i] = true
	}
	labels, err := clustering.SetUpCluster(ds, combined, liveAll, d)
	if err != nil {
		return nil, err
	}
	mat, _, counts, live, err := clustering.RecomputeCentroids(labels, ds, total)
	if err != nil {
		return nil, err
	}

	active := make([]int, 0, total)
	for i, l := range live {
		if l {
			active = append(active, i)
		}
	}

	for len(active) > targetK {
		bestI, bestJ := -1, -1
		bestCost := 0.0
		for ii := 0; ii < len(active); ii++ {
			for jj := ii + 1; jj < len(active); jj++ {
				cost, err := clustering.PNNMergeCost(mat, counts, active[ii], active[jj])
				if err != nil {
					return nil, err
				}
				if bestI == -1 || cost < bestCost {
					bestI, bestJ = ii, jj
					bestCost = cost
				}
			}
		}
		i, j := active[bestI], active[bestJ]
		merged, err := clustering.WeightedMergeCentroid(mat, counts, i, j)
		if err != nil {
			return nil, err
		}
		if err := mat.SetRow(i, merged); err != nil {
			return nil, err
		}
		counts[i] += counts[j]
		active = append(active[:bestJ], active[bestJ+1:]...)
	}

	out, err := geom.NewMatrix(len(active), mat.Cols())
	if err != nil {
		return nil, err
	}
	for row, idx := range active {
		r, err := mat.Row(idx)
		if err != nil {
			return nil, err
		}
		if err := out.SetRow(row, r); err != nil {
			return nil, err
		}
	}

	child := chromosome.NewRealString(out, ds, d)
	child.SetFitness(chromosome.Unevaluated)

	return child, nil
}

// DMX implements D-MX medoid-index-string crossover (spec.md §4.7):
// appends the two medoid-index parents, shuffles, optionally (with
// probability pm) replaces the first k elements with random dataset
// indices, shuffles again, then builds child1 left-to-right and child2
// right-to-left, each skipping duplicates already placed.
//
// Complexity: O(k).
func DMX(parentA, parentB []int, n int, pm float64, s *rng.Stream) (child1, child2 []int) {
	k := len(parentA)
	combined := append(append([]int(nil), parentA...), parentB...)
	s.ShuffleInts(combined)

	if s.Float64() < pm {
		for i := 0; i < k && i < len(combined); i++ {
			combined[i] = s.Choice(n)
		}
	}
	s.ShuffleInts(combined)

	child1 = buildDistinct(combined, k, false)
	child2 = buildDistinct(combined, k, true)

	return child1, child2
}

// buildDistinct scans combined (left-to-right, or right-to-left when
// reverse is true) collecting the first k distinct values encountered.
func buildDistinct(combined []int, k int, reverse bool) []int {
	out := make([]int, 0, k)
	seen := make(map[int]bool, k)
	n := len(combined)
	for step := 0; step < n && len(out) < k; step++ {
		idx := step
		if reverse {
			idx = n - 1 - step
		}
		v := combined[idx]
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return out
}
