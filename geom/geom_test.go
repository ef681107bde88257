package geom_test

import (
	"testing"

	"github.com/katalvlaran/leac/geom"
	"github.com/stretchr/testify/require"
)

func TestMatrix_SetAtRoundTrip(t *testing.T) {
	t.Parallel()
	m, err := geom.NewMatrix(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 1, 4.5))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)

	_, err = m.At(5, 0)
	require.ErrorIs(t, err, geom.ErrIndexOutOfBounds)
}

func TestMatrix_RowSetRow(t *testing.T) {
	t.Parallel()
	m, err := geom.NewMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.SetRow(1, []float64{1, 2}))

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, row)

	require.ErrorIs(t, m.SetRow(0, []float64{1}), geom.ErrDimensionMismatch)
}

func TestMatrix_Clone_IsIndependent(t *testing.T) {
	t.Parallel()
	m, err := geom.NewMatrix(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))

	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 99))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestEuclidean_ZeroIffEqual(t *testing.T) {
	t.Parallel()
	dist, err := geom.Euclidean([]float64{1, 2}, []float64{1, 2})
	require.NoError(t, err)
	require.Zero(t, dist)

	dist, err = geom.Euclidean([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	require.InDelta(t, 5.0, dist, 1e-9)

	_, err = geom.Euclidean([]float64{0}, []float64{0, 0})
	require.ErrorIs(t, err, geom.ErrDimMismatch)
}

func TestSquaredEuclidean_IsSquareOfEuclidean(t *testing.T) {
	t.Parallel()
	x, y := []float64{1, 5}, []float64{4, 1}
	sq, err := geom.SquaredEuclidean(x, y)
	require.NoError(t, err)

	d, err := geom.Euclidean(x, y)
	require.NoError(t, err)
	require.InDelta(t, d*d, sq, 1e-9)
}

func TestTriangular_SymmetricZeroDiagonal(t *testing.T) {
	t.Parallel()
	pts := [][]float64{{0, 0}, {3, 4}, {6, 8}}
	tri, err := geom.NewTriangular(3, pts, geom.Euclidean)
	require.NoError(t, err)

	require.Zero(t, tri.At(1, 1))
	require.InDelta(t, tri.At(0, 1), tri.At(1, 0), 1e-9)
	require.InDelta(t, 5.0, tri.At(0, 1), 1e-9)
}

func TestBitMatrix_ColumnClusterRoundTrip(t *testing.T) {
	t.Parallel()
	bm := geom.NewBitMatrix(3, 4)
	bm.SetColumnCluster(0, 2)
	bm.SetColumnCluster(1, 0)

	require.Equal(t, 2, bm.ColumnCluster(0))
	require.Equal(t, 0, bm.ColumnCluster(1))
	require.Equal(t, 3, bm.K())
	require.Equal(t, 4, bm.N())
}

func TestIntRange_ClampContains(t *testing.T) {
	t.Parallel()
	r := geom.NewIntRange(2, 5) // half-open [2,5): 2,3,4

	require.True(t, r.Contains(2))
	require.True(t, r.Contains(4))
	require.False(t, r.Contains(5))
	require.Equal(t, 3, r.Len())
	require.Equal(t, 2, r.Clamp(0))
	require.Equal(t, 4, r.Clamp(9))
	require.Equal(t, 3, r.Clamp(3))

	empty := geom.NewIntRange(5, 5)
	require.False(t, empty.Contains(5))
	require.Zero(t, empty.Len())
}
