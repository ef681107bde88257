package clustering

import "github.com/katalvlaran/leac/geom"

// PNNMergeCost returns the pairwise-nearest-neighbor merge cost of
// combining clusters i and j, using the Ward-linkage-style weighted
// squared-distance form confirmed by
// original_source/leac/graph_utils.hpp's codebook reduction:
//
//	cost(i,j) = (n_i*n_j)/(n_i+n_j) * ||c_i - c_j||^2
//
// Complexity: O(d).
func PNNMergeCost(mat *geom.Matrix, counts []int, i, j int) (float64, error) {
	ci, err := mat.Row(i)
	if err != nil {
		return 0, err
	}
	cj, err := mat.Row(j)
	if err != nil {
		return 0, err
	}
	sq, err := geom.SquaredEuclidean(ci, cj)
	if err != nil {
		return 0, err
	}
	ni, nj := float64(counts[i]), float64(counts[j])

	return (ni * nj / (ni + nj)) * sq, nil
}

// WeightedMergeCentroid returns the count-weighted average of centroid
// rows i and j: (n_i*c_i + n_j*c_j)/(n_i+n_j). Used by MO1 cluster-merge
// mutation (spec.md §4.8) and PNN-new crossover.
//
// Complexity: O(d).
func WeightedMergeCentroid(mat *geom.Matrix, counts []int, i, j int) ([]float64, error) {
	ci, err := mat.Row(i)
	if err != nil {
		return nil, err
	}
	cj, err := mat.Row(j)
	if err != nil {
		return nil, err
	}
	ni, nj := float64(counts[i]), float64(counts[j])
	total := ni + nj
	out := make([]float64, len(ci))
	for d := range out {
		out[d] = (ni*ci[d] + nj*cj[d]) / total
	}

	return out, nil
}
