package operator_test

import (
	"testing"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/katalvlaran/leac/rng"
	"github.com/stretchr/testify/require"
)

func TestBitMutation_KeepsColumnSumsAtOne(t *testing.T) {
	t.Parallel()
	bm := geom.NewBitMatrix(3, 5)
	for i := 0; i < 5; i++ {
		bm.SetColumnCluster(i, i%3)
	}
	c := chromosome.NewCrisp(bm)
	s := rng.New(1)

	operator.BitMutation(c, 1.0, s)
	for i := 0; i < 5; i++ {
		require.GreaterOrEqual(t, c.BM.ColumnCluster(i), 0)
		require.Less(t, c.BM.ColumnCluster(i), 3)
	}
	require.Equal(t, chromosome.Unevaluated, c.Fitness())
}

func TestBitMutation_NoOpBelowTwoClusters(t *testing.T) {
	t.Parallel()
	bm := geom.NewBitMatrix(1, 2)
	bm.SetColumnCluster(0, 0)
	bm.SetColumnCluster(1, 0)
	c := chromosome.NewCrisp(bm)
	s := rng.New(2)

	operator.BitMutation(c, 1.0, s)
	require.Equal(t, 0, c.BM.ColumnCluster(0))
}

func TestRandomDeltaCentroid_MutatesLiveRowsOnly(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{1, 1}))
	require.NoError(t, mat.SetRow(1, []float64{2, 2}))

	rs := chromosome.NewRealString(mat, nil, geom.Euclidean)
	s := rng.New(3)
	operator.RandomDeltaCentroid(rs, []bool{true, false}, s)

	row1, _ := rs.Mat.Row(1)
	require.Equal(t, []float64{2, 2}, row1)
}

func TestSplitGGA_GrowsKByOne(t *testing.T) {
	t.Parallel()
	c := chromosome.NewIntString([]int{0, 0, 0, 1, 1}, 2)
	s := rng.New(4)

	ok := operator.SplitGGA(c, s)
	require.True(t, ok)
	require.Equal(t, 3, c.K)
}

func TestSplitGGA_FailsWhenNoClusterHasTwoMembers(t *testing.T) {
	t.Parallel()
	c := chromosome.NewIntString([]int{0, 1, 2}, 3)
	s := rng.New(5)

	ok := operator.SplitGGA(c, s)
	require.False(t, ok)
	require.Equal(t, 3, c.K)
}

func TestMergeGGA_ShrinksKByOne(t *testing.T) {
	t.Parallel()
	c := chromosome.NewIntString([]int{0, 1, 2, 2}, 3)
	s := rng.New(6)

	require.NoError(t, operator.MergeGGA(c, s))
	require.Equal(t, 2, c.K)
	for _, g := range c.Genes {
		require.Less(t, g, 2)
	}
}

func TestMergeGGA_RejectsBelowThreeClusters(t *testing.T) {
	t.Parallel()
	c := chromosome.NewIntString([]int{0, 1}, 2)
	s := rng.New(7)

	require.ErrorIs(t, operator.MergeGGA(c, s), operator.ErrKTooSmall)
}

func TestMO1_RejectsKBelowThree(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {1, 1}})
	c, err := chromosome.NewFEAC([]int{0, 1}, 2, ds)
	require.NoError(t, err)
	s := rng.New(8)

	err = operator.MO1(c, ds, geom.Euclidean, operator.WeightUniform, s)
	require.ErrorIs(t, err, operator.ErrKTooSmall)
}

func TestMO1_ReducesClusterCount(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {1, 0}, {5, 5}, {6, 5}, {10, 10}, {11, 10}})
	c, err := chromosome.NewFEAC([]int{0, 0, 1, 1, 2, 2}, 3, ds)
	require.NoError(t, err)
	c.Partial = make([]float64, 3)
	s := rng.New(9)

	require.NoError(t, operator.MO1(c, ds, geom.Euclidean, operator.WeightUniform, s))
	require.Equal(t, chromosome.OpMO1, c.AppliedOperator)
	require.Equal(t, chromosome.Unevaluated, c.Fitness())
	require.Less(t, c.NumClusters(), 3)
}

func TestMO2_RejectsKAtMax(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {1, 1}, {5, 5}})
	c, err := chromosome.NewFEAC([]int{0, 0, 1}, 2, ds)
	require.NoError(t, err)
	s := rng.New(10)

	err = operator.MO2(c, ds, geom.Euclidean, 2, operator.WeightUniform, s)
	require.ErrorIs(t, err, operator.ErrKAtMax)
}

func TestMO2_TagsOperatorAndResetsFitness(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {20, 20}})
	c, err := chromosome.NewFEAC([]int{0, 0, 0, 0, 1}, 2, ds)
	require.NoError(t, err)
	c.Partial = make([]float64, 2)
	s := rng.New(11)

	require.NoError(t, operator.MO2(c, ds, geom.Euclidean, 4, operator.WeightUniform, s))
	require.Equal(t, chromosome.OpMO2, c.AppliedOperator)
	require.Equal(t, chromosome.Unevaluated, c.Fitness())
}

func TestGKAMutation_ReassignsWithinBounds(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {1, 1}, {10, 10}})
	mat, err := geom.NewMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0, 0}))
	require.NoError(t, mat.SetRow(1, []float64{10, 10}))
	c := chromosome.NewIntString([]int{0, 0, 1}, 2)
	s := rng.New(12)

	require.NoError(t, operator.GKAMutation(c, mat, []bool{true, true}, ds, geom.Euclidean, 1.0, s))
	for _, g := range c.Genes {
		require.GreaterOrEqual(t, g, 0)
		require.Less(t, g, 2)
	}
	require.Equal(t, chromosome.Unevaluated, c.Fitness())
}

func TestPointMutationMedoid_NeverDuplicatesWithinString(t *testing.T) {
	t.Parallel()
	s := rng.New(13)
	medoids := []int{0, 2, 4}

	for i := 0; i < 10; i++ {
		out := operator.PointMutationMedoid(medoids, 6, 1.0, s)
		seen := make(map[int]bool, len(out))
		for _, v := range out {
			require.False(t, seen[v])
			seen[v] = true
		}
	}
}
