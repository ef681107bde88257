package graphp_test

import (
	"testing"

	"github.com/katalvlaran/leac/graphp"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddEdgeIsUndirectedAndIgnoresSelfLoops(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 2.5))
	require.NoError(t, g.AddEdge(0, 0, 9))

	n01, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Len(t, n01, 1)
	require.Equal(t, 1, n01[0].To)
	require.Equal(t, 2.5, n01[0].Weight)

	n1, err := g.Neighbors(1)
	require.NoError(t, err)
	require.Len(t, n1, 1)
	require.Equal(t, 0, n1[0].To)

	_, err = g.Neighbors(9)
	require.ErrorIs(t, err, graphp.ErrVertexNotFound)
}

func TestGraph_NeighborsAreSortedByIndex(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(4)
	require.NoError(t, g.AddEdge(0, 3, 1))
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(0, 2, 1))

	neighbors, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, []int{neighbors[0].To, neighbors[1].To, neighbors[2].To})
}

func TestEpsilonGraph_ConnectsOnlyWithinThreshold(t *testing.T) {
	t.Parallel()
	points := [][]float64{{0}, {1}, {10}}
	dissim := func(i, j int) float64 {
		d := points[i][0] - points[j][0]
		if d < 0 {
			d = -d
		}
		return d
	}
	g := graphp.EpsilonGraph(3, dissim, 2)

	n0, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Len(t, n0, 1)
	require.Equal(t, 1, n0[0].To)

	n2, err := g.Neighbors(2)
	require.NoError(t, err)
	require.Empty(t, n2)
}

func TestDFS_VisitsEveryReachableVertex(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	// vertex 3 stays isolated.

	res, err := graphp.DFS(g, 0, nil)
	require.NoError(t, err)
	require.True(t, res.Visited[0])
	require.True(t, res.Visited[1])
	require.True(t, res.Visited[2])
	require.False(t, res.Visited[3])
	require.Equal(t, 0, res.Depth[0])
	require.Equal(t, 2, res.Depth[2])

	_, err = graphp.DFS(g, 9, nil)
	require.ErrorIs(t, err, graphp.ErrVertexNotFound)
}

func TestDFS_OnVisitHookAbortsOnError(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 1))

	visitCount := 0
	_, err := graphp.DFS(g, 0, &graphp.DFSOptions{
		OnVisit: func(v, depth int) error {
			visitCount++
			return errVisitStop
		},
	})
	require.ErrorIs(t, err, errVisitStop)
	require.Equal(t, 1, visitCount)
}

var errVisitStop = graphErr("stop")

type graphErr string

func (e graphErr) Error() string { return string(e) }

func TestComponents_LabelsDisjointSubgraphs(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(5)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))
	// vertex 4 isolated.

	comp := graphp.Components(g)
	require.Equal(t, comp[0], comp[1])
	require.Equal(t, comp[2], comp[3])
	require.NotEqual(t, comp[0], comp[2])
	require.NotEqual(t, comp[0], comp[4])
	require.NotEqual(t, comp[2], comp[4])
}

func TestPrim_BuildsMinimumSpanningTree(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 2))
	require.NoError(t, g.AddEdge(0, 2, 10))

	mst, total, err := graphp.Prim(g, 0)
	require.NoError(t, err)
	require.Len(t, mst, 2)
	require.Equal(t, 3.0, total)
}

func TestPrim_DisconnectedGraphErrors(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 1))
	// vertex 2 isolated: graph is disconnected.

	_, _, err := graphp.Prim(g, 0)
	require.ErrorIs(t, err, graphp.ErrDisconnected)
}

func TestPrim_SingleVertexHasEmptyMST(t *testing.T) {
	t.Parallel()
	g := graphp.NewGraph(1)
	mst, total, err := graphp.Prim(g, 0)
	require.NoError(t, err)
	require.Empty(t, mst)
	require.Zero(t, total)
}

func TestNearestNeighborGraph_ConnectsKClosest(t *testing.T) {
	t.Parallel()
	points := []float64{0, 1, 2, 100}
	dissim := func(i, j int) float64 {
		d := points[i] - points[j]
		if d < 0 {
			d = -d
		}
		return d
	}
	g := graphp.NearestNeighborGraph(4, dissim, 1)

	n0, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Equal(t, 1, n0[0].To)

	n3, err := g.Neighbors(3)
	require.NoError(t, err)
	require.Equal(t, 2, n3[0].To)
}

func TestNearestNeighborPartition_GroupsMutualNeighbors(t *testing.T) {
	t.Parallel()
	points := []float64{0, 0.1, 50, 50.1}
	dissim := func(i, j int) float64 {
		d := points[i] - points[j]
		if d < 0 {
			d = -d
		}
		return d
	}
	labels := graphp.NearestNeighborPartition(4, dissim, 1)
	require.Equal(t, labels[0], labels[1])
	require.Equal(t, labels[2], labels[3])
	require.NotEqual(t, labels[0], labels[2])
}

func TestUnionFind_UnionFindAndComponents(t *testing.T) {
	t.Parallel()
	uf := graphp.NewUnionFind(5)
	require.True(t, uf.Union(0, 1))
	require.False(t, uf.Union(0, 1)) // already merged
	require.True(t, uf.Union(2, 3))

	require.Equal(t, uf.Find(0), uf.Find(1))
	require.NotEqual(t, uf.Find(0), uf.Find(2))
	require.Equal(t, 3, uf.NumComponents())

	comp := uf.Components()
	require.Equal(t, comp[0], comp[1])
	require.Equal(t, comp[2], comp[3])
	require.NotEqual(t, comp[0], comp[4])
}
