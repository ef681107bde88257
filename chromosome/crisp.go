package chromosome

import "github.com/katalvlaran/leac/geom"

// Crisp is the crisp-partition-bitmatrix encoding (spec.md §4.1): shape
// k×n, column sums equal 1, row sums >= 1.
type Crisp struct {
	BM        *geom.BitMatrix
	fitness   float64
	objective float64
}

// NewCrisp wraps bm as a Crisp chromosome.
func NewCrisp(bm *geom.BitMatrix) *Crisp {
	return &Crisp{BM: bm, fitness: Unevaluated, objective: Unevaluated}
}

func (c *Crisp) Fitness() float64       { return c.fitness }
func (c *Crisp) SetFitness(f float64)   { c.fitness = f }
func (c *Crisp) Objective() float64     { return c.objective }
func (c *Crisp) SetObjective(o float64) { c.objective = o }
func (c *Crisp) NumClusters() int       { return c.BM.K() }

func (c *Crisp) DecodeLabels() []int {
	labels := make([]int, c.BM.N())
	for i := 0; i < c.BM.N(); i++ {
		labels[i] = c.BM.ColumnCluster(i)
	}

	return labels
}

func (c *Crisp) Clone() Chromosome {
	bm := geom.NewBitMatrix(c.BM.K(), c.BM.N())
	for j := 0; j < c.BM.K(); j++ {
		for i := 0; i < c.BM.N(); i++ {
			if c.BM.Row(j).Get(i) {
				bm.Row(j).Set(i)
			}
		}
	}

	return &Crisp{BM: bm, fitness: c.fitness, objective: c.objective}
}
