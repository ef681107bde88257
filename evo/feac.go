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

// runFEACFamily implements the shared EAC/F-EAC generation loop (spec.md
// §4.10's common skeleton, with the family's variant overrides: k-means
// local search every generation, simplified-silhouette fitness, and
// MO1/MO2 mutation chosen by p_MO). adaptive selects F-EAC's ΔAF-driven
// p_MO (spec.md §4.8) versus EAC's fixed 0.5 split; rankFitness selects
// F-EAC's linear-ranking fitness scaling versus EAC's raw+1 (spec.md
// §4.10: "linear-ranking for F-EAC family; raw+1 for EAC baseline").
// weightMode selects MO1/MO2's cluster-weighting rule (spec.md §4.8):
// WeightUniform for plain EAC, WeightLinearRankFc for F-EAC,
// WeightInverseFc for EAC-I/III's 1-fc(C_i) weighting.
func runFEACFamily(ds *dataset.Dataset, d geom.Distance, opts Options, adaptive, rankFitness bool, weightMode operator.WeightMode) (Result, error) {
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

	var (
		bestSoFar         *chromosome.FEAC
		result            Result
		deltaMO1, deltaMO2 []float64
		invalidOffspring  int
	)
	deadline := start.Add(opts.MaxExecutionTime)
	hasDeadline := opts.MaxExecutionTime > 0

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		deltaMO1 = deltaMO1[:0]
		deltaMO2 = deltaMO2[:0]

		objectives := make([]float64, len(pop))
		for i, c := range pop {
			if err := c.RunKMeans(ds, d, opts.KMeansMaxIter, opts.KMeansEps); err != nil {
				return Result{}, err
			}
			if c.NonViable {
				invalidOffspring++
				objectives[i] = chromosome.WorstFitness
				c.SetObjective(chromosome.WorstFitness)

				continue
			}
			obj, fc, err := fitness.SimplifiedSilhouette(ds, c.Mat, c.Live, c.Labels, c.Counts, d)
			if err != nil || math.IsNaN(obj) || math.IsInf(obj, 0) {
				c.NonViable = true
				c.SetFitness(chromosome.WorstFitness)
				c.SetObjective(chromosome.WorstFitness)
				objectives[i] = chromosome.WorstFitness
				invalidOffspring++

				continue
			}
			c.Partial = fc
			c.SetObjective(obj)
			objectives[i] = obj

			if c.AppliedOperator != chromosome.OpNone && c.LastObjective != chromosome.Unevaluated {
				delta := obj - c.LastObjective
				if c.AppliedOperator == chromosome.OpMO1 {
					deltaMO1 = append(deltaMO1, delta)
				} else {
					deltaMO2 = append(deltaMO2, delta)
				}
			}
		}

		// Fitness scaling (spec.md §4.10).
		fitnessVals := make([]float64, len(pop))
		if rankFitness {
			ranked, err := fitness.LinearRanking(objectives)
			if err != nil {
				return Result{}, err
			}
			fitnessVals = ranked
		} else {
			for i, o := range objectives {
				fitnessVals[i] = o + 1
			}
		}
		for i, c := range pop {
			c.SetFitness(fitnessVals[i])
		}

		bestIdx := argmaxViable(pop)
		if bestIdx >= 0 {
			best := pop[bestIdx]
			if bestSoFar == nil || best.Objective() > bestSoFar.Objective() {
				bestSoFar = best.Clone().(*chromosome.FEAC)
				result.IterationGetsBest = gen
				result.RunTimeGetsBest = time.Since(start)
			}
		}

		bestObjective := chromosome.WorstFitness
		if bestSoFar != nil {
			bestObjective = bestSoFar.Objective()
		}
		result.Log.Append(computeStatistics(objectives, gen, bestObjective))
		result.NumTotalGenerations = gen + 1

		if bestSoFar != nil && bestSoFar.Objective() > opts.DesirableObjective {
			break
		}

		// Build the next generation: roulette-wheel selection + elitism,
		// then MO1/MO2 mutation (no crossover: spec.md §4.10 names none
		// for this family).
		pMO := 0.5
		if adaptive {
			pMO = operator.ComputePMO(mean(deltaMO1), mean(deltaMO2))
		}

		next := make([]*chromosome.FEAC, opts.SizePopulation)
		if bestSoFar != nil {
			next[0] = bestSoFar.Clone().(*chromosome.FEAC)
		} else {
			next[0] = pop[0].Clone().(*chromosome.FEAC)
		}
		for i := 1; i < opts.SizePopulation; i++ {
			idx, err := operator.RouletteWheel(fitnessVals, 0, s)
			if err != nil {
				return Result{}, err
			}
			child := pop[idx].Clone().(*chromosome.FEAC)
			child.LastObjective = child.Objective()

			k := len(child.Counts)
			sub := s.Derive(uint64(gen*opts.SizePopulation + i))
			applyMO1 := sub.Float64() < pMO
			switch {
			case applyMO1 && k >= 3:
				_ = operator.MO1(child, ds, d, weightMode, sub)
			case !applyMO1 && k < opts.KMax:
				_ = operator.MO2(child, ds, d, opts.KMax, weightMode, sub)
			default:
				child.AppliedOperator = chromosome.OpNone
			}
			next[i] = child
		}
		pop = next
	}

	result.TotalInvalidOffspring = invalidOffspring
	result.AlgorithmRunTime = time.Since(start)
	if bestSoFar != nil {
		result.Best = bestSoFar
		result.NumClusterK = bestSoFar.NumClusters()
		result.MetricFuncRun = bestSoFar.Objective()
		result.Fitness = bestSoFar.Fitness()
	}

	return result, nil
}

func initFEAC(ds *dataset.Dataset, d geom.Distance, k int, s *rng.Stream) (*chromosome.FEAC, error) {
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

	return chromosome.NewFEAC(labels, k, ds)
}

func argmaxViable(pop []*chromosome.FEAC) int {
	best := -1
	for i, c := range pop {
		if c.NonViable {
			continue
		}
		if best == -1 || c.Objective() > pop[best].Objective() {
			best = i
		}
	}

	return best
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}
