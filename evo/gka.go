package evo

import (
	"math"
	"time"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/fitness"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/katalvlaran/leac/rng"
)

// runGKA implements the GKA variant (spec.md §4.10): no crossover, GKA
// mutation only (operator.GKAMutation, nearest-centroid-weighted gene
// reassignment), elitism preserved every generation.
func runGKA(ds *dataset.Dataset, d geom.Distance, opts Options) (Result, error) {
	if err := opts.validate(ds.N()); err != nil {
		return Result{}, err
	}
	start := time.Now()
	s := rng.New(opts.RandomSeed)
	k := opts.KMin

	pop := make([]*chromosome.IntString, opts.SizePopulation)
	for i := range pop {
		sub := s.Derive(uint64(i))
		c, err := initIntString(ds, d, k, sub)
		if err != nil {
			return Result{}, err
		}
		pop[i] = c
	}

	var result Result
	var bestSoFar *chromosome.IntString
	bestObj := math.MaxFloat64
	deadline := start.Add(opts.MaxExecutionTime)
	hasDeadline := opts.MaxExecutionTime > 0

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		objectives := make([]float64, len(pop))
		mats := make([]*geom.Matrix, len(pop))
		lives := make([][]bool, len(pop))
		for i, c := range pop {
			labels := c.DecodeLabels()
			mat, _, _, live, err := clustering.RecomputeCentroids(labels, ds, k)
			if err != nil {
				return Result{}, err
			}
			total, _, ok := fitness.SSE(ds, mat, live, labels, d)
			if !ok {
				total = math.MaxFloat64
			}
			mats[i] = mat
			lives[i] = live
			c.SetObjective(total)
			c.SetFitness(fitness.FitnessFromSSE(total))
			objectives[i] = total

			if total < bestObj {
				bestSoFar = c.Clone().(*chromosome.IntString)
				bestObj = total
				result.IterationGetsBest = gen
				result.RunTimeGetsBest = time.Since(start)
			}
		}
		result.Log.Append(computeStatistics(objectives, gen, -bestObj))
		result.NumTotalGenerations = gen + 1

		if -bestObj > opts.DesirableObjective {
			break
		}

		fitnessVals := make([]float64, len(pop))
		for i, c := range pop {
			fitnessVals[i] = c.Fitness()
		}

		next := make([]*chromosome.IntString, opts.SizePopulation)
		next[0] = bestSoFar.Clone().(*chromosome.IntString)
		for i := 1; i < opts.SizePopulation; i++ {
			idx, err := operator.RouletteWheel(fitnessVals, 0, s)
			if err != nil {
				return Result{}, err
			}
			child := pop[idx].Clone().(*chromosome.IntString)
			sub := s.Derive(uint64(gen*opts.SizePopulation + i))
			if err := operator.GKAMutation(child, mats[idx], lives[idx], ds, d, opts.Pm, sub); err != nil {
				return Result{}, err
			}
			next[i] = child
		}
		pop = next
	}

	result.AlgorithmRunTime = time.Since(start)
	if bestSoFar != nil {
		result.Best = bestSoFar
		result.NumClusterK = bestSoFar.NumClusters()
		result.MetricFuncRun = bestObj
		result.Fitness = fitness.FitnessFromSSE(bestObj)
	}

	return result, nil
}
