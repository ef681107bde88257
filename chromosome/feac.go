package chromosome

import (
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
)

// FEAC is the F-EAC hybrid encoding (spec.md §4.1): a label string of
// length n, a k×d centroid matrix (rows may be null when a cluster
// collapses), per-cluster instance counts, and per-cluster partial
// fitness values. Invariant: Labels has length n; Mat/Live/Counts/Partial
// all have length == current K.
type FEAC struct {
	Labels  []int
	Mat     *geom.Matrix
	Live    []bool
	Counts  []int
	Partial []float64 // per-cluster partial fitness (fc(C_j), spec.md §4.5)

	AppliedOperator AppliedOperator
	LastObjective   float64
	NonViable       bool // set when compaction leaves k' < 2 (spec.md §4.4)

	fitness   float64
	objective float64
}

// NewFEAC builds an FEAC chromosome from a label array and dataset,
// recomputing centroids/counts/liveness from scratch. Partial fitness
// starts zeroed; the fitness package populates it on first evaluation.
func NewFEAC(labels []int, k int, ds *dataset.Dataset) (*FEAC, error) {
	mat, _, counts, live, err := clustering.RecomputeCentroids(labels, ds, k)
	if err != nil {
		return nil, err
	}

	return &FEAC{
		Labels:        append([]int(nil), labels...),
		Mat:           mat,
		Live:          live,
		Counts:        counts,
		Partial:       make([]float64, k),
		fitness:       Unevaluated,
		objective:     Unevaluated,
		LastObjective: Unevaluated,
	}, nil
}

func (c *FEAC) Fitness() float64       { return c.fitness }
func (c *FEAC) SetFitness(f float64)   { c.fitness = f }
func (c *FEAC) Objective() float64     { return c.objective }
func (c *FEAC) SetObjective(o float64) { c.objective = o }
func (c *FEAC) NumClusters() int       { return len(c.Counts) }

func (c *FEAC) DecodeLabels() []int {
	out := make([]int, len(c.Labels))
	copy(out, c.Labels)

	return out
}

func (c *FEAC) Clone() Chromosome {
	return &FEAC{
		Labels:          append([]int(nil), c.Labels...),
		Mat:             c.Mat.Clone(),
		Live:            append([]bool(nil), c.Live...),
		Counts:          append([]int(nil), c.Counts...),
		Partial:         append([]float64(nil), c.Partial...),
		AppliedOperator: c.AppliedOperator,
		LastObjective:   c.LastObjective,
		NonViable:       c.NonViable,
		fitness:         c.fitness,
		objective:       c.objective,
	}
}

// RunKMeans performs k-means local search (spec.md §4.4) then compacts:
// drops sentinel-null clusters, relabels remaining clusters contiguously
// 0..k', and shrinks Counts/Partial to match. If k' < 2 after compaction,
// the chromosome is kept but marked NonViable with WorstFitness
// (spec.md §4.4: "kept but marked non-viable").
func (c *FEAC) RunKMeans(ds *dataset.Dataset, d geom.Distance, maxIter int, eps float64) error {
	_, sums, _, _, err := clustering.RecomputeCentroids(c.Labels, ds, len(c.Counts))
	if err != nil {
		return err
	}
	st := &clustering.KMeansState{
		Labels: c.Labels,
		Mat:    c.Mat,
		Sums:   sums,
		Counts: c.Counts,
		Live:   c.Live,
	}
	if err := clustering.KMeansLocalSearch(st, ds, d, maxIter, eps); err != nil {
		return err
	}
	c.compact()

	return nil
}

// compact drops null clusters and relabels remaining clusters
// contiguously, shrinking Mat/Counts/Live/Partial to match.
func (c *FEAC) compact() {
	oldK := len(c.Counts)
	mapping := make([]int, oldK)
	next := 0
	for old := 0; old < oldK; old++ {
		if !c.Live[old] || c.Counts[old] == 0 {
			mapping[old] = -1

			continue
		}
		mapping[old] = next
		next++
	}
	if next == 0 {
		// Total collapse: every cluster died. Fold every instance into a
		// single fallback cluster so Labels stays in [0,k) — the
		// chromosome is marked NonViable below and replaced next
		// generation, but must not carry out-of-range labels meanwhile.
		for i := range mapping {
			mapping[i] = 0
		}
		next = 1
	}

	newMat, _ := geom.NewMatrix(maxInt(next, 1), c.Mat.Cols())
	newCounts := make([]int, next)
	newLive := make([]bool, next)
	newPartial := make([]float64, next)
	for old := 0; old < oldK; old++ {
		nw := mapping[old]
		if nw == -1 {
			continue
		}
		row, _ := c.Mat.Row(old)
		_ = newMat.SetRow(nw, row)
		newCounts[nw] += c.Counts[old]
		newLive[nw] = true
		if old < len(c.Partial) {
			newPartial[nw] += c.Partial[old]
		}
	}
	for i, oldLabel := range c.Labels {
		c.Labels[i] = mapping[oldLabel]
	}

	if next < 2 {
		c.NonViable = true
		c.fitness = WorstFitness
		// Mat/Counts/Live/Partial still resized for structural consistency,
		// even though the chromosome will be replaced next generation.
		if next == 0 {
			newMat, _ = geom.NewMatrix(1, c.Mat.Cols())
			newCounts = []int{0}
			newLive = []bool{false}
			newPartial = []float64{0}
		}
	}

	c.Mat = newMat
	c.Counts = newCounts
	c.Live = newLive
	c.Partial = newPartial
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
