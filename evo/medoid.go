package evo

import (
	"time"

	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/fitness"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/katalvlaran/leac/rng"
)

// runMedoidFamily implements the GCA/HKA medoid-index-string variant
// (spec.md §4.10): genes are instance indices naming medoids; D-MX
// crossover, D-PM mutation; HKA additionally runs a PAM-style swap-update
// local search every generation (runPAM true), GCA does not.
//
// The medoid-index string is not one of spec.md §4.1's four named
// chromosome encodings (those cover label/real/crisp/FEAC payloads); it
// appears only as the input shape D-MX/D-PM operate on (spec.md §4.7-§4.8),
// so this driver works directly on []int rather than introducing a fifth
// exported chromosome.Chromosome implementer for a shape nothing else needs.
func runMedoidFamily(ds *dataset.Dataset, d geom.Distance, opts Options, runPAM bool) (Result, error) {
	if err := opts.validate(ds.N()); err != nil {
		return Result{}, err
	}
	start := time.Now()
	s := rng.New(opts.RandomSeed)
	k := opts.KMin
	n := ds.N()

	tri, err := geom.NewTriangular(n, ds.Points(), d)
	if err != nil {
		return Result{}, err
	}

	pop := make([][]int, opts.SizePopulation)
	for i := range pop {
		sub := s.Derive(uint64(i))
		pop[i] = sub.ChooseDistinct(n, k)
	}

	var result Result
	var bestSoFar []int
	bestCost := 0.0
	deadline := start.Add(opts.MaxExecutionTime)
	hasDeadline := opts.MaxExecutionTime > 0

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		costs := make([]float64, len(pop))
		for i, medoids := range pop {
			if runPAM {
				pamImprove(medoids, tri, s)
			}
			cost, _ := medoidCost(medoids, tri)
			costs[i] = cost
		}

		bestIdx := 0
		for i, c := range costs {
			if c < costs[bestIdx] {
				bestIdx = i
			}
		}
		if bestSoFar == nil || costs[bestIdx] < bestCost {
			bestSoFar = append([]int(nil), pop[bestIdx]...)
			bestCost = costs[bestIdx]
			result.IterationGetsBest = gen
			result.RunTimeGetsBest = time.Since(start)
		}
		result.Log.Append(computeStatistics(costs, gen, -bestCost))
		result.NumTotalGenerations = gen + 1

		if -bestCost > opts.DesirableObjective {
			break
		}

		fitnessVals := make([]float64, len(pop))
		for i, c := range costs {
			fitnessVals[i] = fitness.FitnessFromSSE(c)
		}

		next := make([][]int, opts.SizePopulation)
		next[0] = append([]int(nil), bestSoFar...)
		for i := 1; i < opts.SizePopulation; i += 2 {
			pa, err := operator.RouletteWheel(fitnessVals, 0, s)
			if err != nil {
				return Result{}, err
			}
			pb, err := operator.RouletteWheel(fitnessVals, 0, s)
			if err != nil {
				return Result{}, err
			}
			var child1, child2 []int
			if s.Float64() < opts.Pc {
				child1, child2 = operator.DMX(pop[pa], pop[pb], n, opts.Pm, s)
			} else {
				child1 = append([]int(nil), pop[pa]...)
				child2 = append([]int(nil), pop[pb]...)
			}
			child1 = operator.PointMutationMedoid(child1, n, opts.Pm, s)
			child2 = operator.PointMutationMedoid(child2, n, opts.Pm, s)
			next[i] = child1
			if i+1 < opts.SizePopulation {
				next[i+1] = child2
			}
		}
		pop = next
	}

	result.AlgorithmRunTime = time.Since(start)
	if bestSoFar != nil {
		result.NumClusterK = len(bestSoFar)
		result.MetricFuncRun = bestCost
		result.Fitness = fitness.FitnessFromSSE(bestCost)
	}

	return result, nil
}

// medoidCost assigns every instance to its nearest medoid under the
// precomputed triangular dissimilarity matrix and returns the total
// dissimilarity and the assignment.
func medoidCost(medoids []int, tri *geom.Triangular) (float64, []int) {
	n := tri.N()
	assign := make([]int, n)
	var total float64
	for i := 0; i < n; i++ {
		best, bestDist := medoids[0], tri.At(i, medoids[0])
		for _, m := range medoids[1:] {
			if dist := tri.At(i, m); dist < bestDist {
				best, bestDist = m, dist
			}
		}
		assign[i] = best
		total += bestDist
	}

	return total, assign
}

// pamImprove runs one PAM-style swap-update local-search pass (HKA's
// local search, spec.md §4.10): for each medoid, tries swapping it with a
// random non-medoid instance and accepts the swap if it strictly improves
// total dissimilarity.
func pamImprove(medoids []int, tri *geom.Triangular, s *rng.Stream) {
	n := tri.N()
	_, assign := medoidCost(medoids, tri)
	isMedoid := make(map[int]bool, len(medoids))
	for _, m := range medoids {
		isMedoid[m] = true
	}

	for idx, old := range medoids {
		cand := s.Choice(n)
		if isMedoid[cand] {
			continue
		}
		delta := clustering.PAMSwapCost(tri, medoids, old, cand, assign)
		if delta < 0 {
			delete(isMedoid, old)
			isMedoid[cand] = true
			medoids[idx] = cand
			_, assign = medoidCost(medoids, tri)
		}
	}
}
