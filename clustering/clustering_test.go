package clustering_test

import (
	"testing"

	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/rng"
	"github.com/stretchr/testify/require"
)

func buildDS(t *testing.T, points [][]float64) *dataset.Dataset {
	t.Helper()
	instances := make([]dataset.Instance, len(points))
	for i, p := range points {
		instances[i] = dataset.Instance{Features: p}
	}
	ds, err := dataset.NewDataset(instances)
	require.NoError(t, err)

	return ds
}

func TestNearestCentroid_TieBreaksToLowerIndex(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(2, 1)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0}))
	require.NoError(t, mat.SetRow(1, []float64{2}))
	live := []bool{true, true}

	idx, dist, err := clustering.NearestCentroid([]float64{1}, mat, live, geom.Euclidean)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, 1.0, dist)
}

func TestNearestCentroid_DegenerateWhenAllDead(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(1, 1)
	require.NoError(t, err)
	_, _, err = clustering.NearestCentroid([]float64{0}, mat, []bool{false}, geom.Euclidean)
	require.ErrorIs(t, err, clustering.ErrDegenerate)
}

func TestMedoidsNN_PicksNearestMedoidByTriangular(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0}, {5}, {10}})
	tri, err := geom.NewTriangular(ds.N(), ds.Points(), geom.Euclidean)
	require.NoError(t, err)

	best, dist := clustering.MedoidsNN(1, []int{0, 2}, tri)
	require.Equal(t, 0, best)
	require.Equal(t, 5.0, dist)
}

func TestFarthestInstanceFromS1(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {1, 0}, {9, 0}})
	idx, err := clustering.FarthestInstanceFromS1([]float64{0, 0}, []int{0, 1, 2}, ds, geom.Euclidean)
	require.NoError(t, err)
	require.Equal(t, 2, idx)
}

func TestRecomputeCentroids_EmptyClusterIsDeadZeroCount(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {2, 0}})
	mat, sums, counts, live, err := clustering.RecomputeCentroids([]int{0, 0}, ds, 2)
	require.NoError(t, err)

	row, err := mat.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, row)
	require.Equal(t, 2, counts[0])
	require.Equal(t, 0, counts[1])
	require.True(t, live[0])
	require.False(t, live[1])

	sumRow, err := sums.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0}, sumRow)
}

func TestRandomInitialize_RejectsKLargerThanN(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0}, {1}})
	_, err := clustering.RandomInitialize(ds, 3, rng.New(1))
	require.ErrorIs(t, err, clustering.ErrDimensionMismatch)
}

func TestRandomInitialize_PicksDistinctRows(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0}, {1}, {2}, {3}})
	mat, err := clustering.RandomInitialize(ds, 3, rng.New(3))
	require.NoError(t, err)
	require.Equal(t, 3, mat.Rows())
}

func TestSetUpCluster_AssignsEveryInstance(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0}, {0.5}, {10}, {10.5}})
	mat, err := geom.NewMatrix(2, 1)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0}))
	require.NoError(t, mat.SetRow(1, []float64{10}))
	live := []bool{true, true}

	labels, err := clustering.SetUpCluster(ds, mat, live, geom.Euclidean)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 1, 1}, labels)
}

func TestPAMSwapCost_ImprovingSwapIsNegative(t *testing.T) {
	t.Parallel()
	// Four points: a cluster near 0 and a far outlier; current medoid set
	// {0,3} (values 0 and 10) assigns 1 and 2 to medoid 0. Swapping medoid 0 for point 1
	// (closer to the cluster center) should strictly reduce total cost.
	ds := buildDS(t, [][]float64{{0}, {1}, {2}, {10}})
	tri, err := geom.NewTriangular(ds.N(), ds.Points(), geom.Euclidean)
	require.NoError(t, err)

	medoids := []int{0, 3}
	assign := []int{0, 0, 0, 3}

	delta := clustering.PAMSwapCost(tri, medoids, 0, 1, assign)
	require.Less(t, delta, 0.0)
}

func TestPAMSwapCost_NoOpSwapIsZero(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0}, {5}})
	tri, err := geom.NewTriangular(ds.N(), ds.Points(), geom.Euclidean)
	require.NoError(t, err)

	medoids := []int{0, 1}
	assign := []int{0, 1}
	delta := clustering.PAMSwapCost(tri, medoids, 0, 0, assign)
	require.Equal(t, 0.0, delta)
}

func TestPNNMergeCost_ZeroWhenCentroidsCoincide(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(2, 1)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{5}))
	require.NoError(t, mat.SetRow(1, []float64{5}))

	cost, err := clustering.PNNMergeCost(mat, []int{3, 4}, 0, 1)
	require.NoError(t, err)
	require.Zero(t, cost)
}

func TestPNNMergeCost_PositiveWhenSeparated(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(2, 1)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0}))
	require.NoError(t, mat.SetRow(1, []float64{4}))

	cost, err := clustering.PNNMergeCost(mat, []int{2, 2}, 0, 1)
	require.NoError(t, err)
	require.Equal(t, (2.0*2.0/4.0)*16.0, cost)
}

func TestWeightedMergeCentroid_IsCountWeightedAverage(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(2, 1)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0}))
	require.NoError(t, mat.SetRow(1, []float64{10}))

	out, err := clustering.WeightedMergeCentroid(mat, []int{1, 3}, 0, 1)
	require.NoError(t, err)
	require.InDelta(t, 7.5, out[0], 1e-9)
}

func TestKMeansLocalSearch_SeparatesMisSplitClusters(t *testing.T) {
	t.Parallel()
	ds := buildDS(t, [][]float64{{0, 0}, {0.1, 0}, {10, 0}, {10.1, 0}})
	labels := []int{1, 0, 1, 0} // deliberately mis-split to exercise reassignment
	mat, sums, counts, live, err := clustering.RecomputeCentroids(labels, ds, 2)
	require.NoError(t, err)

	st := &clustering.KMeansState{
		Labels: labels,
		Mat:    mat,
		Sums:   sums,
		Counts: counts,
		Live:   live,
	}
	err = clustering.KMeansLocalSearch(st, ds, geom.Euclidean, 20, 1e-9)
	require.NoError(t, err)

	require.Equal(t, st.Labels[0], st.Labels[1])
	require.Equal(t, st.Labels[2], st.Labels[3])
	require.NotEqual(t, st.Labels[0], st.Labels[2])
}
