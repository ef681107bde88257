package evo

import (
	"time"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/fitness"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/katalvlaran/leac/rng"
)

// runGGA implements the GGA island-model variant (spec.md §4.10):
// opts.NumIslands independent sub-populations, each running
// merge-crossover + split/merge mutation with Pc/Pm/Pb linearly
// interpolated across generations (opts.pcAt/pmAt/pbAt), migrating its
// best individual to the next island in a ring every opts.MigrationPeriod
// generations, gated by opts.Pe.
func runGGA(ds *dataset.Dataset, d geom.Distance, opts Options) (Result, error) {
	if err := opts.validate(ds.N()); err != nil {
		return Result{}, err
	}
	start := time.Now()
	s := rng.New(opts.RandomSeed)

	numIslands := opts.NumIslands
	if numIslands < 1 {
		numIslands = 1
	}
	perIsland := opts.SizePopulation / numIslands
	if perIsland < 2 {
		perIsland = 2
	}

	islands := make([][]*chromosome.IntString, numIslands)
	for isl := range islands {
		pop := make([]*chromosome.IntString, perIsland)
		for i := range pop {
			sub := s.Derive(uint64(isl*perIsland + i))
			k := opts.KMin
			if opts.KMax > opts.KMin {
				k = opts.KMin + sub.Intn(opts.KMax-opts.KMin+1)
			}
			c, err := initIntString(ds, d, k, sub)
			if err != nil {
				return Result{}, err
			}
			pop[i] = c
		}
		islands[isl] = pop
	}

	var result Result
	var bestSoFar *chromosome.IntString
	bestObj := 0.0
	deadline := start.Add(opts.MaxExecutionTime)
	hasDeadline := opts.MaxExecutionTime > 0

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		pc := opts.pcAt(gen, opts.MaxGenerations)
		pm := opts.pmAt(gen, opts.MaxGenerations)
		pb := opts.pbAt(gen, opts.MaxGenerations)

		allObjectives := make([]float64, 0, opts.SizePopulation)
		for isl, pop := range islands {
			objectives := make([]float64, len(pop))
			for i, c := range pop {
				obj, err := scoreIntString(ds, d, c)
				if err != nil {
					return Result{}, err
				}
				c.SetObjective(obj)
				c.SetFitness(fitness.FitnessFromSSE(obj))
				objectives[i] = obj
				allObjectives = append(allObjectives, obj)

				if bestSoFar == nil || obj < bestObj {
					bestSoFar = c.Clone().(*chromosome.IntString)
					bestObj = obj
					result.IterationGetsBest = gen
					result.RunTimeGetsBest = time.Since(start)
				}
			}

			fitnessVals := make([]float64, len(pop))
			for i, c := range pop {
				fitnessVals[i] = c.Fitness()
			}

			next := make([]*chromosome.IntString, len(pop))
			bestIdx := 0
			for i, o := range objectives {
				if o < objectives[bestIdx] {
					bestIdx = i
				}
			}
			next[0] = pop[bestIdx].Clone().(*chromosome.IntString)

			for i := 1; i < len(pop); i++ {
				pa, err := operator.RouletteWheel(fitnessVals, 0, s)
				if err != nil {
					return Result{}, err
				}
				pb2, err := operator.RouletteWheel(fitnessVals, 0, s)
				if err != nil {
					return Result{}, err
				}

				var child *chromosome.IntString
				if s.Float64() < pc {
					merged, err := operator.MergeCrossoverGGA(pop[pa], pop[pb2], s)
					if err != nil {
						return Result{}, err
					}
					child = merged
				} else {
					child = pop[pa].Clone().(*chromosome.IntString)
				}

				if s.Float64() < pm {
					if s.Float64() < pb && child.K >= 2 && child.K < opts.KMax {
						operator.SplitGGA(child, s)
					} else if child.K >= 3 {
						_ = operator.MergeGGA(child, s)
					}
				}
				next[i] = child
			}
			islands[isl] = next
		}

		result.Log.Append(computeStatistics(allObjectives, gen, -bestObj))
		result.NumTotalGenerations = gen + 1

		if -bestObj > opts.DesirableObjective {
			break
		}

		if opts.MigrationPeriod > 0 && gen > 0 && gen%opts.MigrationPeriod == 0 && numIslands > 1 {
			// Offspring still carry a parent's objective or the unevaluated
			// sentinel: rescore them so migrateRing compares current SSE.
			for _, pop := range islands {
				for _, c := range pop {
					obj, err := scoreIntString(ds, d, c)
					if err != nil {
						return Result{}, err
					}
					c.SetObjective(obj)
				}
			}
			migrateRing(islands, s, opts.Pe)
		}
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

// migrateRing sends each island's best individual to the next island in a
// ring, replacing that island's worst individual, gated per-island by pe
// (spec.md §4.10: "island model with periodic migration").
func migrateRing(islands [][]*chromosome.IntString, s *rng.Stream, pe float64) {
	n := len(islands)
	bests := make([]*chromosome.IntString, n)
	for i, pop := range islands {
		best := pop[0]
		for _, c := range pop[1:] {
			if c.Objective() < best.Objective() {
				best = c
			}
		}
		bests[i] = best.Clone().(*chromosome.IntString)
	}

	for i := 0; i < n; i++ {
		if s.Float64() >= pe {
			continue
		}
		dst := (i + 1) % n
		pop := islands[dst]
		worst := 0
		for j, c := range pop {
			if c.Objective() > pop[worst].Objective() {
				worst = j
			}
		}
		pop[worst] = bests[i]
	}
}

// initIntString builds an IntString chromosome from k distinct random
// instances used as centroids, assigning each instance to its nearest one.
func initIntString(ds *dataset.Dataset, d geom.Distance, k int, s *rng.Stream) (*chromosome.IntString, error) {
	mat, err := clustering.RandomInitialize(ds, k, s)
	if err != nil {
		return nil, err
	}
	live := make([]bool, k)
	for i := range live {
		live[i] = true
	}
	labels, err := clustering.SetUpCluster(ds, mat, live, d)
	if err != nil {
		return nil, err
	}

	return chromosome.NewIntString(labels, k), nil
}

// scoreIntString decodes labels, recomputes centroids, and returns the SSE
// objective (spec.md §7: "objective is recomputed from scratch after any
// operator that changes cluster membership").
func scoreIntString(ds *dataset.Dataset, d geom.Distance, c *chromosome.IntString) (float64, error) {
	labels := c.DecodeLabels()
	k := c.NumClusters()
	mat, _, _, live, err := clustering.RecomputeCentroids(labels, ds, k)
	if err != nil {
		return 0, err
	}
	total, _, ok := fitness.SSE(ds, mat, live, labels, d)
	if !ok {
		return 1e300, nil
	}

	return total, nil
}
