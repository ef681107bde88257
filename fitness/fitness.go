// Package fitness implements the clustering-quality objective functions
// and score-normalization routines spec.md §4.5 names: SSE/J1,
// simplified silhouette, partial rand index, linear ranking, and
// roulette-wheel distribution construction.
//
// Modeled on github.com/katalvlaran/lvlath's tsp.cost.go (a small,
// dependency-free scoring pass over a tour) for the shape of a pure
// function from decoded state to a scalar score, with per-element partial
// results returned alongside the aggregate so callers can reuse them
// (spec.md §4.5: "every fitness returns per-cluster partial scores").
package fitness

import (
	"errors"
	"math"

	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
)

// ErrEmptyPopulation indicates linear ranking or roulette-distribution
// construction was asked to operate on a zero-length score slice.
var ErrEmptyPopulation = errors.New("fitness: empty population")

// SSE computes the within-cluster sum of squared distances to the
// assigned centroid (spec.md §4.5, "SSE/J1", minimize). Returns the total
// and a per-cluster partial sum. A non-finite running sum is reported via
// ok=false (spec.md §7: NumericalNonFinite — caller assigns worst
// fitness rather than treating the value as meaningful).
//
// Complexity: O(n*d).
func SSE(ds *dataset.Dataset, mat *geom.Matrix, live []bool, labels []int, d geom.Distance) (total float64, perCluster []float64, ok bool) {
	k := mat.Rows()
	perCluster = make([]float64, k)
	for i := 0; i < ds.N(); i++ {
		c := labels[i]
		if !live[c] {
			continue
		}
		row, err := mat.Row(c)
		if err != nil {
			return 0, perCluster, false
		}
		dist, err := d(ds.Features(i), row)
		if err != nil {
			return 0, perCluster, false
		}
		sq := dist * dist
		perCluster[c] += sq
		total += sq
		if math.IsNaN(total) || math.IsInf(total, 0) {
			return 0, perCluster, false
		}
	}

	return total, perCluster, true
}

// FitnessFromSSE converts an SSE objective (lower is better) into a
// maximize-oriented fitness via fitness = 1/(1+SSE) (spec.md §4.5: "fitness
// is -SSE or 1/(1+SSE) per variant" — this package picks the bounded
// [0,1] form so roulette-wheel weighting never needs negative-fitness
// clamping for this variant).
func FitnessFromSSE(sse float64) float64 {
	return 1.0 / (1.0 + sse)
}

// SimplifiedSilhouette computes spec.md §4.5's simplified silhouette: for
// instance i, a_i = distance to its own centroid, b_i = distance to the
// nearest other live centroid; s_i = (b_i-a_i)/max(a_i,b_i), 0 for a
// singleton cluster (never NaN, spec.md §8 boundary behavior). The
// chromosome objective is the mean of per-cluster partials fc, themselves
// the mean of member s_i.
//
// Complexity: O(n*k*d).
func SimplifiedSilhouette(ds *dataset.Dataset, mat *geom.Matrix, live []bool, labels []int, counts []int, d geom.Distance) (objective float64, fc []float64, err error) {
	k := mat.Rows()
	fc = make([]float64, k)
	for i := 0; i < ds.N(); i++ {
		own := labels[i]
		if counts[own] <= 1 {
			continue // singleton contributes s_i = 0 (spec.md §8)
		}
		point := ds.Features(i)
		ownRow, rerr := mat.Row(own)
		if rerr != nil {
			return 0, fc, rerr
		}
		a, derr := d(point, ownRow)
		if derr != nil {
			return 0, fc, derr
		}

		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || !live[c] {
				continue
			}
			row, rerr := mat.Row(c)
			if rerr != nil {
				return 0, fc, rerr
			}
			dist, derr := d(point, row)
			if derr != nil {
				return 0, fc, derr
			}
			if dist < b {
				b = dist
			}
		}
		if math.IsInf(b, 1) {
			continue // no other live cluster to compare against
		}

		denom := a
		if b > denom {
			denom = b
		}
		s := 0.0
		if denom > 0 {
			s = (b - a) / denom
		}
		fc[own] += s
	}

	liveCount := 0
	for c := 0; c < k; c++ {
		if !live[c] || counts[c] == 0 {
			continue
		}
		fc[c] /= float64(counts[c])
		objective += fc[c]
		liveCount++
	}
	if liveCount > 0 {
		objective /= float64(liveCount)
	}

	return objective, fc, nil
}

// PartialRandIndex computes the partial rand index between a decoded
// cluster-label array and known class-label indices (spec.md §4.5, "when
// class labels exist"), built from the class-by-cluster confusion matrix
// in adjusted form: (agree - expected) / (max - expected), where agree
// counts pairs sharing both cluster and class, expected is
// clusterPairs*classPairs/totalPairs, and max is the mean of clusterPairs
// and classPairs. Returns 0 for fewer than two instances and 1 when max
// equals expected.
//
// Complexity: O(n + numClasses*numClusters).
func PartialRandIndex(labels []int, classIdx []int, numClusters, numClasses int) float64 {
	n := len(labels)
	if n < 2 {
		return 0
	}
	confusion := make([][]int, numClusters)
	for i := range confusion {
		confusion[i] = make([]int, numClasses)
	}
	clusterTotals := make([]int, numClusters)
	classTotals := make([]int, numClasses)
	for i := 0; i < n; i++ {
		c, cl := labels[i], classIdx[i]
		confusion[c][cl]++
		clusterTotals[c]++
		classTotals[cl]++
	}

	var agree, clusterPairs, classPairs float64
	for _, row := range confusion {
		for _, v := range row {
			agree += pairs(v)
		}
	}
	for _, t := range clusterTotals {
		clusterPairs += pairs(t)
	}
	for _, t := range classTotals {
		classPairs += pairs(t)
	}
	totalPairs := pairs(n)
	if totalPairs == 0 {
		return 0
	}
	expected := clusterPairs * classPairs / totalPairs
	maxIndex := 0.5 * (clusterPairs + classPairs)
	denom := maxIndex - expected
	if denom == 0 {
		return 1
	}

	return (agree - expected) / denom
}

func pairs(n int) float64 {
	f := float64(n)

	return f * (f - 1) / 2
}

// LinearRanking normalizes scores (higher score = better) into
// rank-proportional weights in [1, 2] (the classic linear-ranking form:
// worst individual gets weight 1, best gets weight 2, ties share the
// average rank weight), used wherever a variant says "linear-ranked"
// rather than raw-fitness-proportional selection (spec.md §4.10: "apply
// fitness scaling (linear-ranking for F-EAC family...)").
//
// Complexity: O(n^2) (an insertion sort by score).
func LinearRanking(scores []float64) ([]float64, error) {
	n := len(scores)
	if n == 0 {
		return nil, ErrEmptyPopulation
	}
	if n == 1 {
		return []float64{2}, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable ascending sort by score via simple insertion sort (n is the
	// population size, not a hot inner loop — O(n^2) is fine and keeps
	// this dependency-free).
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && scores[order[j-1]] > scores[order[j]] {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}

	weights := make([]float64, n)
	// Each run of tied scores shares the mean weight of its positions.
	for start := 0; start < n; {
		end := start + 1
		for end < n && scores[order[end]] == scores[order[start]] {
			end++
		}
		w := 1 + (float64(start+end-1)/2)/float64(n-1)
		for _, idx := range order[start:end] {
			weights[idx] = w
		}
		start = end
	}

	return weights, nil
}

// RouletteDistribution builds a cumulative fitness distribution the way
// original_source/leac/probability_selection.hpp does: negative
// per-chromosome fitness is clamped to 0 before summing (spec.md §4
// supplement), rather than rejecting the whole distribution on a single
// negative entry. Returns the cumulative sums (cumulative[i] is the
// upper bound for index i) and the total; when total <= 0 the caller is
// expected to fall back to uniform selection (spec.md §8).
//
// Complexity: O(n).
func RouletteDistribution(scores []float64) (cumulative []float64, total float64) {
	cumulative = make([]float64, len(scores))
	for i, f := range scores {
		if f < 0 {
			f = 0
		}
		total += f
		cumulative[i] = total
	}

	return cumulative, total
}
