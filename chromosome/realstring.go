package chromosome

import (
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
)

// RealString is the variable-length real-string encoding: length k*d,
// reshaped as a k×d centroid matrix (spec.md §4.1). k may grow or shrink
// between generations within a configured [KMin, KMax].
type RealString struct {
	Mat       *geom.Matrix
	fitness   float64
	objective float64

	// cached decode inputs, set by NewRealString so DecodeLabels
	// can be called without re-threading dataset/distance at every site.
	ds *dataset.Dataset
	d  geom.Distance
}

// NewRealString wraps mat (k×d) as a RealString, remembering the dataset
// and distance functor used to decode it to labels on demand.
func NewRealString(mat *geom.Matrix, ds *dataset.Dataset, d geom.Distance) *RealString {
	return &RealString{Mat: mat, fitness: Unevaluated, objective: Unevaluated, ds: ds, d: d}
}

// DS returns the dataset this chromosome decodes against.
func (c *RealString) DS() *dataset.Dataset { return c.ds }

// D returns the distance functor this chromosome decodes with.
func (c *RealString) D() geom.Distance { return c.d }

func (c *RealString) Fitness() float64       { return c.fitness }
func (c *RealString) SetFitness(f float64)   { c.fitness = f }
func (c *RealString) Objective() float64     { return c.objective }
func (c *RealString) SetObjective(o float64) { c.objective = o }
func (c *RealString) NumClusters() int       { return c.Mat.Rows() }

// DecodeLabels assigns every dataset instance to its nearest centroid row
// (all rows treated live: a RealString has no null-row concept, unlike
// FEAC) and returns the resulting label array.
func (c *RealString) DecodeLabels() []int {
	live := make([]bool, c.Mat.Rows())
	for i := range live {
		live[i] = true
	}
	labels := make([]int, c.ds.N())
	for i := 0; i < c.ds.N(); i++ {
		k, _, err := clustering.NearestCentroid(c.ds.Features(i), c.Mat, live, c.d)
		if err != nil {
			labels[i] = 0

			continue
		}
		labels[i] = k
	}

	return labels
}

func (c *RealString) Clone() Chromosome {
	return &RealString{
		Mat:       c.Mat.Clone(),
		fitness:   c.fitness,
		objective: c.objective,
		ds:        c.ds,
		d:         c.d,
	}
}
