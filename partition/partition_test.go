package partition_test

import (
	"testing"

	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/graphp"
	"github.com/katalvlaran/leac/partition"
	"github.com/stretchr/testify/require"
)

func TestLabel_CompactDropsEmptyClusters(t *testing.T) {
	t.Parallel()
	lbl := partition.NewLabel([]int{0, 0, 2, 2}, 3) // cluster 1 has no members

	mapping, newK := lbl.Compact()
	require.Equal(t, 2, newK)
	require.Equal(t, -1, mapping[1])
	require.Equal(t, []int{0, 0, 1, 1}, lbl.Labels())
}

func TestLabel_ClusterOfAndIterate(t *testing.T) {
	t.Parallel()
	lbl := partition.NewLabel([]int{0, 1, 0}, 2)
	require.Equal(t, 1, lbl.ClusterOf(1))

	var visited []int
	lbl.Iterate(func(i, c int) { visited = append(visited, c) })
	require.Equal(t, []int{0, 1, 0}, visited)
}

func TestMaxLabel(t *testing.T) {
	t.Parallel()
	require.Equal(t, 2, partition.MaxLabel([]int{0, 2, 1}))
	require.Equal(t, -1, partition.MaxLabel(nil))
}

func TestCrisp_ValidateRejectsEmptyCluster(t *testing.T) {
	t.Parallel()
	c := partition.NewCrispFromLabels([]int{0, 0, 0}, 2) // cluster 1 empty
	require.ErrorIs(t, c.Validate(), partition.ErrEmptyCluster)
}

func TestCrisp_DecodeLabelsRoundTrip(t *testing.T) {
	t.Parallel()
	c := partition.NewCrispFromLabels([]int{1, 0, 1}, 2)
	require.NoError(t, c.Validate())

	lbl := c.DecodeLabels()
	require.Equal(t, []int{1, 0, 1}, lbl.Labels())
}

func TestCentroids_AssignsNearestLiveRow(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0, 0}))
	require.NoError(t, mat.SetRow(1, []float64{10, 10}))

	points := [][]float64{{0, 1}, {9, 9}}
	c, err := partition.NewCentroids(mat, points, geom.Euclidean)
	require.NoError(t, err)

	require.Equal(t, 0, c.ClusterOf(0))
	require.Equal(t, 1, c.ClusterOf(1))
}

func TestCentroids_AllNullIsDegenerate(t *testing.T) {
	t.Parallel()
	mat, err := geom.NewMatrix(1, 2)
	require.NoError(t, err)
	require.NoError(t, mat.SetRow(0, []float64{0, 0}))

	c, err := partition.NewCentroids(mat, [][]float64{{1, 1}}, geom.Euclidean)
	require.NoError(t, err)
	c.SetLive(0, false)

	err = c.Reassign()
	require.ErrorIs(t, err, partition.ErrDegenerate)
}

func TestDisjointSets_ClusterOfMatchesUnionFindComponents(t *testing.T) {
	t.Parallel()
	uf := graphp.NewUnionFind(4)
	uf.Union(0, 1)
	uf.Union(2, 3)

	ds := partition.NewDisjointSets(uf, 4)
	require.Equal(t, 2, ds.NumClusters())
	require.Equal(t, ds.ClusterOf(0), ds.ClusterOf(1))
	require.NotEqual(t, ds.ClusterOf(0), ds.ClusterOf(2))
}

func TestValidate_RejectsEmptyClusterUnlessRelaxed(t *testing.T) {
	t.Parallel()
	lbl := partition.NewLabel([]int{0, 0}, 2)

	require.ErrorIs(t, partition.Validate(lbl, false), partition.ErrEmptyCluster)
	require.NoError(t, partition.Validate(lbl, true))
}

func TestCountLabels(t *testing.T) {
	t.Parallel()
	lbl := partition.NewLabel([]int{0, 1, 1, 0, 0}, 2)
	require.Equal(t, []int{3, 2}, partition.CountLabels(lbl))
}
