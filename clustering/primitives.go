// Package clustering implements the primitives the genetic operators and
// evolutionary driver rest on (spec.md §4.3-§4.4): nearest-centroid/medoid
// assignment, centroid recomputation, PAM-style swap cost, PNN merge cost,
// and k-means local search.
//
// Modeled on github.com/katalvlaran/lvlath's tsp.matching.go (a
// deterministic greedy nearest-match linear scan with explicit tie-break
// by lower index) for the nearest-centroid/medoid scans, and on
// tsp.two_opt.go's Δ-cost-accept local-search shape for k-means.
package clustering

import (
	"errors"

	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/partition"
	"github.com/katalvlaran/leac/rng"
)

// ErrDegenerate indicates every centroid is sentinel-null (spec.md §4.11).
var ErrDegenerate = partition.ErrDegenerate

// ErrDimensionMismatch indicates incompatible vector dimensions (fatal
// per spec.md §4.11); RandomInitialize also returns it when k exceeds the
// number of instances.
var ErrDimensionMismatch = errors.New("clustering: dimension mismatch")

// NearestCentroid performs a linear scan over centroids and returns the
// index of, and distance to, the nearest one to point. Ties are resolved
// by lower index (first-found-minimum, strict "<"): original_source's
// ga_iterator.hpp/clustering_operator_medoids.hpp confirm this is the
// intended tie-break, not "last wins". Returns ErrDegenerate if every row
// is null.
//
// Complexity: O(k*d).
func NearestCentroid(point []float64, mat *geom.Matrix, live []bool, d geom.Distance) (int, float64, error) {
	return partition.NearestLiveCentroid(point, mat, live, d)
}

// MedoidsNN finds the nearest medoid to instance pointIdx among
// medoidIdxs, using the precomputed triangular dissimilarity matrix D
// rather than recomputing distances (spec.md §4.3). Ties resolved in
// favour of the earlier entry of medoidIdxs.
//
// Complexity: O(|medoidIdxs|).
func MedoidsNN(pointIdx int, medoidIdxs []int, tri *geom.Triangular) (int, float64) {
	best := -1
	bestDist := 0.0
	for _, m := range medoidIdxs {
		dist := tri.At(pointIdx, m)
		if best == -1 || dist < bestDist {
			best = m
			bestDist = dist
		}
	}

	return best, bestDist
}

// FarthestInstanceFromS1 returns the index (from indices) of the instance
// farthest from s1 under distance d — used by MO2 split mutation to seed
// the second new centroid (spec.md §4.3, §4.8).
//
// Complexity: O(|indices|*dim).
func FarthestInstanceFromS1(s1 []float64, indices []int, ds *dataset.Dataset, d geom.Distance) (int, error) {
	best := -1
	bestDist := -1.0
	for _, idx := range indices {
		dist, err := d(s1, ds.Features(idx))
		if err != nil {
			return -1, err
		}
		if dist > bestDist {
			bestDist = dist
			best = idx
		}
	}

	return best, nil
}

// RecomputeCentroids sums member feature vectors per cluster then divides
// by count (spec.md §4.3). Empty clusters get a zeroed centroid row
// (tracked live=false) and a count of 0. The returned sums hold the
// unscaled per-cluster feature sums (the "sumMatrix" spec.md §4.4's
// k-means loop maintains incrementally).
//
// Complexity: O(n*d + k*d).
func RecomputeCentroids(labels []int, ds *dataset.Dataset, k int) (mat *geom.Matrix, sums *geom.Matrix, counts []int, live []bool, err error) {
	d := ds.Dim()
	mat, err = geom.NewMatrix(k, d)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	sums, err = geom.NewMatrix(k, d)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	counts = make([]int, k)
	live = make([]bool, k)

	for i, c := range labels {
		in, ierr := ds.At(i)
		if ierr != nil {
			return nil, nil, nil, nil, ierr
		}
		w := float64(in.Weight())
		counts[c] += in.Weight()
		row, _ := sums.Row(c)
		for j, f := range in.Features {
			row[j] += w * f
		}
	}
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			live[c] = false

			continue
		}
		live[c] = true
		sumRow, _ := sums.Row(c)
		meanRow := make([]float64, d)
		inv := 1.0 / float64(counts[c])
		for j, s := range sumRow {
			meanRow[j] = s * inv
		}
		_ = mat.SetRow(c, meanRow)
	}

	return mat, sums, counts, live, nil
}

// RandomInitialize picks k instances uniformly without replacement as
// initial centroids (spec.md §4.3).
//
// Complexity: O(n) for the draw, O(k*d) for materializing the matrix.
func RandomInitialize(ds *dataset.Dataset, k int, s *rng.Stream) (*geom.Matrix, error) {
	if k > ds.N() {
		return nil, ErrDimensionMismatch
	}
	idxs := s.ChooseDistinct(ds.N(), k)
	mat, err := geom.NewMatrix(k, ds.Dim())
	if err != nil {
		return nil, err
	}
	for row, idx := range idxs {
		if err := mat.SetRow(row, append([]float64(nil), ds.Features(idx)...)); err != nil {
			return nil, err
		}
	}

	return mat, nil
}

// SetUpCluster assigns every instance to its nearest live centroid and
// writes the resulting label array (spec.md §4.3). Fatal
// (ErrDegenerate) if every centroid is null.
//
// Complexity: O(n*k*d).
func SetUpCluster(ds *dataset.Dataset, mat *geom.Matrix, live []bool, d geom.Distance) ([]int, error) {
	labels := make([]int, ds.N())
	for i := 0; i < ds.N(); i++ {
		k, _, err := NearestCentroid(ds.Features(i), mat, live, d)
		if err != nil {
			return nil, err
		}
		labels[i] = k
	}

	return labels, nil
}

// PAMSwapCost computes the total-dissimilarity delta of replacing medoid
// oldMedoid with candidate newMedoid, given the current medoid set and the
// nearest-medoid assignment of every instance, using the triangular
// dissimilarity matrix (spec.md §2: "PAM-style swap cost").
//
// For every instance i currently assigned to oldMedoid, the cost delta is
// min(dist to newMedoid, dist to its second-nearest surviving medoid)
// minus its current distance; for instances assigned elsewhere, the delta
// is min(0, dist(i,newMedoid)-dist(i,currentMedoid)).
//
// Complexity: O(n*|medoids|).
func PAMSwapCost(tri *geom.Triangular, medoids []int, oldMedoid, newMedoid int, assign []int) float64 {
	var delta float64
	for i := 0; i < tri.N(); i++ {
		cur := assign[i]
		if cur == oldMedoid {
			// Find best distance among surviving medoids (excluding oldMedoid) and newMedoid.
			best := tri.At(i, newMedoid)
			for _, m := range medoids {
				if m == oldMedoid {
					continue
				}
				if dist := tri.At(i, m); dist < best {
					best = dist
				}
			}
			delta += best - tri.At(i, oldMedoid)
		} else {
			distNew := tri.At(i, newMedoid)
			distCur := tri.At(i, cur)
			if distNew < distCur {
				delta += distNew - distCur
			}
		}
	}

	return delta
}
