// Package operator implements the genetic operator suite spec.md §4.6-§4.9
// rests the evolutionary driver on: selection, crossover, mutation, and
// the rearranged-cluster (GAGR) matching pass.
//
// Every operator that draws randomness takes an explicit *rng.Stream
// (spec.md §5/§9: "forbid hidden global access"), modeled on
// github.com/katalvlaran/lvlath's tsp package, whose matching/local-search
// passes are deterministic, side-effect-free functions of their inputs
// plus an explicit tie-break rule — the same shape this package follows
// for every selection/crossover/mutation routine.
package operator

import (
	"errors"

	"github.com/katalvlaran/leac/rng"
)

// ErrEmptyPopulation indicates a selection routine was asked to draw from
// a zero-length fitness slice.
var ErrEmptyPopulation = errors.New("operator: empty population")

// RouletteWheel builds a cumulative distribution over fitness[begin:] by
// dividing each fitness by the sum (spec.md §4.6). When the sum is <= 0,
// selection falls back to uniform (spec.md §8 boundary behavior);
// original_source/leac/probability_selection.hpp additionally clamps any
// negative per-chromosome fitness to 0 before summing rather than
// rejecting the whole distribution (spec.md §4 supplement) — adopted here.
//
// Returns an absolute index in [begin, len(fitness)).
//
// Complexity: O(n).
func RouletteWheel(fitness []float64, begin int, s *rng.Stream) (int, error) {
	n := len(fitness)
	if begin >= n {
		return 0, ErrEmptyPopulation
	}

	sum := 0.0
	for i := begin; i < n; i++ {
		f := fitness[i]
		if f < 0 {
			f = 0
		}
		sum += f
	}
	if sum <= 0 {
		return begin + s.Intn(n-begin), nil
	}

	u := s.Float64() * sum
	acc := 0.0
	for i := begin; i < n; i++ {
		f := fitness[i]
		if f < 0 {
			f = 0
		}
		acc += f
		if u < acc {
			return i, nil
		}
	}

	// Floating-point rounding may leave u just short of sum; last index wins.
	return n - 1, nil
}

// Tournament draws t chromosomes uniformly with replacement from
// fitness[begin:] and returns the absolute index of the best (spec.md
// §4.6). t <= 0 is clamped to 1.
//
// Complexity: O(t).
func Tournament(fitness []float64, begin, t int, s *rng.Stream) (int, error) {
	n := len(fitness)
	if begin >= n {
		return 0, ErrEmptyPopulation
	}
	if t < 1 {
		t = 1
	}

	span := n - begin
	best := begin + s.Intn(span)
	for i := 1; i < t; i++ {
		cand := begin + s.Intn(span)
		if fitness[cand] > fitness[best] {
			best = cand
		}
	}

	return best, nil
}

// ElitistPairs deterministically enumerates all pairs (i, i+1), (i, i+2), …
// over [0, n), skipping the reserved elitist slot (spec.md §4.6: "for
// GA-CBGA crossover pairing"). Pairs are returned in ascending (i, j) order.
//
// Complexity: O(n^2) to enumerate, O(n^2) space.
func ElitistPairs(n, elitistSlot int) [][2]int {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		if i == elitistSlot {
			continue
		}
		for j := i + 1; j < n; j++ {
			if j == elitistSlot {
				continue
			}
			pairs = append(pairs, [2]int{i, j})
		}
	}

	return pairs
}
