package clustering

import (
	"math"

	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/kernels"
)

// KMeansState is the mutable working state k-means local search updates
// in place: a label array, a live centroid matrix, the per-cluster
// feature-vector sums backing it, and per-cluster instance counts. It
// mirrors the three parallel arrays spec.md §4.1 says an FEAC chromosome
// carries (centroid matrix / count vector / partial fitness), minus
// partial fitness (that belongs to the chromosome layer, recomputed after
// compaction by the fitness package).
type KMeansState struct {
	Labels  []int
	Mat     *geom.Matrix
	Sums    *geom.Matrix
	Counts  []int
	Live    []bool
}

// KMeansLocalSearch runs up to maxIter iterations of the loop spec.md
// §4.4 describes:
//  1. reassign every instance to its nearest live centroid;
//  2. when an instance's label changes a->b, update counts/sums
//     incrementally via the kernels-style per-row accumulator;
//  3. recompute every centroid with a nonzero count (which covers those
//     whose count changed), marking a centroid null if its count is 0;
//  4. stop early when the maximum per-centroid L2 displacement is <= eps.
//
// Compaction (dropping null clusters and relabeling contiguously) is left
// to the caller (chromosome package), since it must also shrink
// chromosome-specific per-cluster metadata (spec.md §4.4: "After the
// loop, compact the chromosome...").
//
// Complexity: O(maxIter * n * k * d).
func KMeansLocalSearch(st *KMeansState, ds *dataset.Dataset, d geom.Distance, maxIter int, eps float64) error {
	k := st.Mat.Rows()
	dim := st.Mat.Cols()

	for iter := 0; iter < maxIter; iter++ {
		var anyChange bool
		// Snapshot old centroids to measure displacement at the end of this pass.
		oldMat := st.Mat.Clone()

		for i := 0; i < ds.N(); i++ {
			point := ds.Features(i)
			newLabel, _, err := NearestCentroid(point, st.Mat, st.Live, d)
			if err != nil {
				return err
			}
			oldLabel := st.Labels[i]
			if newLabel == oldLabel {
				continue
			}
			anyChange = true
			st.Labels[i] = newLabel

			in, ierr := ds.At(i)
			if ierr != nil {
				return ierr
			}
			w := float64(in.Weight())

			st.Counts[oldLabel] -= in.Weight()
			st.Counts[newLabel] += in.Weight()

			_ = kernels.Aysxpy(st.Sums.Data(), oldLabel, dim, -w, point)
			_ = kernels.Aysxpy(st.Sums.Data(), newLabel, dim, w, point)
		}

		if !anyChange && iter > 0 {
			break
		}

		// Recompute centroids whose count changed this pass (here: any
		// live cluster, since a changed count implies a changed mean;
		// recomputing every live row keeps the loop simple and is still
		// O(k*d), dominated by the O(n*k*d) assignment pass above).
		for c := 0; c < k; c++ {
			if st.Counts[c] == 0 {
				st.Live[c] = false

				continue
			}
			st.Live[c] = true
			sumRow, _ := st.Sums.Row(c)
			meanRow := make([]float64, dim)
			inv := 1.0 / float64(st.Counts[c])
			for j, s := range sumRow {
				meanRow[j] = s * inv
			}
			_ = st.Mat.SetRow(c, meanRow)
		}

		if !anyChange {
			break
		}

		// Early stop: max per-centroid L2 displacement <= eps.
		maxDisp := 0.0
		for c := 0; c < k; c++ {
			if !st.Live[c] {
				continue
			}
			oldRow, _ := oldMat.Row(c)
			newRow, _ := st.Mat.Row(c)
			var sq float64
			for j := 0; j < dim; j++ {
				diff := newRow[j] - oldRow[j]
				sq += diff * diff
			}
			disp := math.Sqrt(sq)
			if disp > maxDisp {
				maxDisp = disp
			}
		}
		if maxDisp <= eps {
			break
		}
	}

	return nil
}
