package partition

import "github.com/katalvlaran/leac/geom"

// Crisp is the crisp-matrix representation: a k×n bit matrix with exactly
// one set bit per column (spec.md §3).
type Crisp struct {
	bm *geom.BitMatrix
}

// NewCrisp wraps bm as a Crisp view.
func NewCrisp(bm *geom.BitMatrix) *Crisp { return &Crisp{bm: bm} }

// NewCrispFromLabels builds a Crisp matrix from a label array and cluster count.
func NewCrispFromLabels(labels []int, k int) *Crisp {
	bm := geom.NewBitMatrix(k, len(labels))
	for i, c := range labels {
		bm.SetColumnCluster(i, c)
	}

	return NewCrisp(bm)
}

func (c *Crisp) NumInstances() int { return c.bm.N() }
func (c *Crisp) NumClusters() int  { return c.bm.K() }
func (c *Crisp) ClusterOf(i int) int {
	return c.bm.ColumnCluster(i)
}
func (c *Crisp) Iterate(fn func(i, cluster int)) {
	for i := 0; i < c.bm.N(); i++ {
		fn(i, c.bm.ColumnCluster(i))
	}
}

// Matrix exposes the backing BitMatrix.
func (c *Crisp) Matrix() *geom.BitMatrix { return c.bm }

// DecodeLabels materializes the equivalent Label view.
func (c *Crisp) DecodeLabels() *Label {
	labels := make([]int, c.bm.N())
	for i := 0; i < c.bm.N(); i++ {
		labels[i] = c.bm.ColumnCluster(i)
	}

	return NewLabel(labels, c.bm.K())
}

// Validate checks spec.md §8 invariant 3: every column sums to exactly 1
// (ColumnCluster returns -1 otherwise); every row sums to >= 1.
func (c *Crisp) Validate() error {
	for i := 0; i < c.bm.N(); i++ {
		if c.bm.ColumnCluster(i) == -1 {
			return ErrInvalidCluster
		}
	}
	for j := 0; j < c.bm.K(); j++ {
		if c.bm.Row(j).PopCount() == 0 {
			return ErrEmptyCluster
		}
	}

	return nil
}
