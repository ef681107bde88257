package geom

// Triangular is a read-only, symmetric n×n dissimilarity matrix stored in
// lower-triangular form (only entries with row > col are materialized;
// the diagonal is implicitly zero and the upper half is derived by
// symmetry). Modeled on original_source/leac/dist_matrix_dissimilarity.hpp,
// which stores exactly this half to avoid doubling memory for the
// instance-to-instance distance table medoid operators and graph
// primitives share.
//
// Construction is O(n^2); Triangular is immutable afterward and safe to
// share by reference across goroutines (spec.md §5).
type Triangular struct {
	n    int
	data []float64 // packed lower-triangular, row>col entries only
}

// triIndex returns the packed offset for (row, col), row != col.
func triIndex(row, col int) int {
	if row < col {
		row, col = col, row
	}
	// Row r (r>=1) contributes r entries (columns 0..r-1) before it.
	return row*(row-1)/2 + col
}

// NewTriangular builds a Triangular dissimilarity matrix over n instances
// using distance functor d (see Distance).
//
// Complexity: O(n^2) time and memory.
func NewTriangular(n int, points [][]float64, d Distance) (*Triangular, error) {
	if n < 0 || len(points) != n {
		return nil, ErrDimensionMismatch
	}
	t := &Triangular{n: n, data: make([]float64, n*(n-1)/2)}
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			dist, err := d(points[i], points[j])
			if err != nil {
				return nil, err
			}
			t.data[triIndex(i, j)] = dist
		}
	}

	return t, nil
}

// N returns the number of instances the matrix spans.
func (t *Triangular) N() int { return t.n }

// At returns the dissimilarity between instance i and instance j.
// At(i,i) is always 0 without a lookup.
//
// Complexity: O(1).
func (t *Triangular) At(i, j int) float64 {
	if i == j {
		return 0
	}

	return t.data[triIndex(i, j)]
}
