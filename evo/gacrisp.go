package evo

import (
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/fitness"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/katalvlaran/leac/partition"
	"github.com/katalvlaran/leac/rng"
)

// runGACrispMatrix implements the GA-crisp-matrix variant (spec.md
// §4.10): fixed k = opts.KMin (the crisp bitmatrix encoding carries no
// variable-k machinery, unlike the real-string/FEAC encodings); sorts the
// population by J1 ascending, selects the lowest SizeMatingPool parents,
// recombines with two-point column-swap crossover, bit-flip mutates, and
// replaces by merging sorted parents+offspring keeping the P lowest J1.
func runGACrispMatrix(ds *dataset.Dataset, d geom.Distance, opts Options) (Result, error) {
	if err := opts.validate(ds.N()); err != nil {
		return Result{}, err
	}
	start := time.Now()
	s := rng.New(opts.RandomSeed)
	k := opts.KMin

	type scored struct {
		c   *chromosome.Crisp
		j1  float64
	}

	pop := make([]scored, opts.SizePopulation)
	for i := range pop {
		sub := s.Derive(uint64(i))
		c, j1, err := initAndScoreCrisp(ds, d, k, sub)
		if err != nil {
			return Result{}, err
		}
		pop[i] = scored{c: c, j1: j1}
	}

	var result Result
	var bestSoFar *chromosome.Crisp
	bestJ1 := 0.0
	deadline := start.Add(opts.MaxExecutionTime)
	hasDeadline := opts.MaxExecutionTime > 0

	for gen := 0; gen < opts.MaxGenerations; gen++ {
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		sort.Slice(pop, func(i, j int) bool { return pop[i].j1 < pop[j].j1 })

		objectives := make([]float64, len(pop))
		for i, p := range pop {
			objectives[i] = p.j1
		}
		if bestSoFar == nil || pop[0].j1 < bestJ1 {
			bestSoFar = pop[0].c.Clone().(*chromosome.Crisp)
			bestJ1 = pop[0].j1
			result.IterationGetsBest = gen
			result.RunTimeGetsBest = time.Since(start)
		}
		result.Log.Append(computeStatistics(objectives, gen, -bestJ1))
		result.NumTotalGenerations = gen + 1

		if -bestJ1 > opts.DesirableObjective {
			break
		}

		parents := pop[:opts.SizeMatingPool]
		offspring := make([]scored, 0, len(parents))
		for i := 0; i+1 < len(parents); i += 2 {
			if s.Float64() >= opts.Pc {
				continue
			}
			child1, child2 := twoPointColumnSwap(parents[i].c.BM, parents[i+1].c.BM, s)
			c1 := chromosome.NewCrisp(child1)
			c2 := chromosome.NewCrisp(child2)
			operator.BitMutation(c1, opts.Pm, s)
			operator.BitMutation(c2, opts.Pm, s)

			j1a, err := scoreCrisp(ds, d, c1)
			if err != nil {
				return Result{}, err
			}
			j1b, err := scoreCrisp(ds, d, c2)
			if err != nil {
				return Result{}, err
			}
			offspring = append(offspring, scored{c: c1, j1: j1a}, scored{c: c2, j1: j1b})
		}

		merged := append(append([]scored(nil), pop...), offspring...)
		sort.Slice(merged, func(i, j int) bool { return merged[i].j1 < merged[j].j1 })
		if len(merged) > opts.SizePopulation {
			merged = merged[:opts.SizePopulation]
		}
		pop = merged
	}

	result.AlgorithmRunTime = time.Since(start)
	if bestSoFar != nil {
		result.Best = bestSoFar
		result.NumClusterK = bestSoFar.NumClusters()
		result.MetricFuncRun = bestJ1
		result.Fitness = fitness.FitnessFromSSE(bestJ1)
	}

	return result, nil
}

func initAndScoreCrisp(ds *dataset.Dataset, d geom.Distance, k int, s *rng.Stream) (*chromosome.Crisp, float64, error) {
	mat, err := clustering.RandomInitialize(ds, k, s)
	if err != nil {
		return nil, 0, err
	}
	live := make([]bool, k)
	for i := range live {
		live[i] = true
	}
	labels, err := clustering.SetUpCluster(ds, mat, live, d)
	if err != nil {
		return nil, 0, err
	}
	c := chromosome.NewCrisp(partition.NewCrispFromLabels(labels, k).Matrix())
	j1, err := scoreCrisp(ds, d, c)

	return c, j1, err
}

func scoreCrisp(ds *dataset.Dataset, d geom.Distance, c *chromosome.Crisp) (float64, error) {
	labels := c.DecodeLabels()
	k := c.NumClusters()
	mat, _, _, live, err := clustering.RecomputeCentroids(labels, ds, k)
	if err != nil {
		return 0, err
	}
	total, _, ok := fitness.SSE(ds, mat, live, labels, d)
	if !ok {
		return math.MaxFloat64, nil // numerical non-finite: worst possible J1 (spec.md §7)
	}

	return total, nil
}

// twoPointColumnSwap swaps columns [c1,c2) between copies of a and b,
// producing two children (the GA-crisp-matrix variant's two-point
// crossover, spec.md §4.10).
func twoPointColumnSwap(a, b *geom.BitMatrix, s *rng.Stream) (*geom.BitMatrix, *geom.BitMatrix) {
	n := a.N()
	k := a.K()
	c1 := s.Intn(n)
	c2 := c1 + s.Intn(n-c1)

	child1 := geom.NewBitMatrix(k, n)
	child2 := geom.NewBitMatrix(k, n)
	for col := 0; col < n; col++ {
		srcA, srcB := a.ColumnCluster(col), b.ColumnCluster(col)
		if col >= c1 && col < c2 {
			child1.SetColumnCluster(col, srcB)
			child2.SetColumnCluster(col, srcA)
		} else {
			child1.SetColumnCluster(col, srcA)
			child2.SetColumnCluster(col, srcB)
		}
	}

	return child1, child2
}
