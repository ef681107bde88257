package evo

import (
	"math"
	"time"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/fitness"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/katalvlaran/leac/rng"
)

// runCGA implements the CGA variant (spec.md §4.10): CGA-crossover
// (operator.CGACrossover, label+trailing-k-gene) followed by cluster
// split/merge mutation — the same MO1/MO2 cluster-elimination/split
// operators the F-EAC family uses, reused here since CGA's "cluster
// split/merge mutation" acts on the identical FEAC-shaped chromosome
// CGACrossover produces.
func runCGA(ds *dataset.Dataset, d geom.Distance, opts Options) (Result, error) {
	if err := opts.validate(ds.N()); err != nil {
		return Result{}, err
	}
	start := time.Now()
	s := rng.New(opts.RandomSeed)

	pop := make([]*chromosome.FEAC, opts.SizePopulation)
	for i := range pop {
		sub := s.Derive(uint64(i))
		k := opts.KMin
		if opts.KMax > opts.KMin {
			k = opts.KMin + sub.Intn(opts.KMax-opts.KMin+1)
		}
		c, err := initFEAC(ds, d, k, sub)
		if err != nil {
			return Result{}, err
		}
		pop[i] = c
	}

	var result Result
	var bestSoFar *chromosome.FEAC
	bestObj := math.MaxFloat64
	deadline := start.Add(opts.MaxExecutionTime)
	hasDeadline := opts.MaxExecutionTime > 0

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		objectives := make([]float64, len(pop))
		for i, c := range pop {
			obj, err := scoreIntString(ds, d, chromosome.NewIntString(c.Labels, c.NumClusters()))
			if err != nil {
				return Result{}, err
			}
			c.SetObjective(obj)
			c.SetFitness(fitness.FitnessFromSSE(obj))
			objectives[i] = obj

			if obj < bestObj {
				bestSoFar = c.Clone().(*chromosome.FEAC)
				bestObj = obj
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

		next := make([]*chromosome.FEAC, opts.SizePopulation)
		next[0] = bestSoFar.Clone().(*chromosome.FEAC)
		for i := 1; i < opts.SizePopulation; i++ {
			pa, err := operator.RouletteWheel(fitnessVals, 0, s)
			if err != nil {
				return Result{}, err
			}
			var child *chromosome.FEAC
			if s.Float64() < opts.Pc {
				pb, err := operator.RouletteWheel(fitnessVals, 0, s)
				if err != nil {
					return Result{}, err
				}
				a := chromosome.NewIntString(pop[pa].Labels, pop[pa].NumClusters())
				b := chromosome.NewIntString(pop[pb].Labels, pop[pb].NumClusters())
				child, err = operator.CGACrossover(a, b, ds, d, s)
				if err != nil {
					return Result{}, err
				}
			} else {
				child = pop[pa].Clone().(*chromosome.FEAC)
			}

			if s.Float64() < opts.Pm {
				k := child.NumClusters()
				sub := s.Derive(uint64(gen*opts.SizePopulation + i))
				if sub.Float64() < 0.5 && k >= 3 {
					_ = operator.MO1(child, ds, d, operator.WeightUniform, sub)
				} else if k < opts.KMax {
					_ = operator.MO2(child, ds, d, opts.KMax, operator.WeightUniform, sub)
				}
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
