package operator_test

import (
	"testing"

	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/operator"
	"github.com/stretchr/testify/require"
)

func TestRearrangedCluster_SwapsToNearestMatch(t *testing.T) {
	t.Parallel()
	// x is the reference ordering; y holds the same three centroids permuted.
	x, err := matrixOfRows([][]float64{{0, 0}, {10, 10}, {20, 20}})
	require.NoError(t, err)
	y, err := matrixOfRows([][]float64{{20, 20}, {0, 0}, {10, 10}})
	require.NoError(t, err)

	changed, err := operator.RearrangedCluster(y, x, geom.Euclidean)
	require.NoError(t, err)
	require.True(t, changed)

	for i := 0; i < 3; i++ {
		xi, err := x.Row(i)
		require.NoError(t, err)
		yi, err := y.Row(i)
		require.NoError(t, err)
		require.Equal(t, xi, yi)
	}
}

func TestRearrangedCluster_NoOpWhenAlreadyAligned(t *testing.T) {
	t.Parallel()
	x, err := matrixOfRows([][]float64{{0, 0}, {10, 10}})
	require.NoError(t, err)
	y, err := matrixOfRows([][]float64{{0, 0}, {10, 10}})
	require.NoError(t, err)

	changed, err := operator.RearrangedCluster(y, x, geom.Euclidean)
	require.NoError(t, err)
	require.False(t, changed)
}
