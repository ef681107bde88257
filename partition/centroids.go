package partition

import "github.com/katalvlaran/leac/geom"

// Centroids is the centroid-based representation: a k×d matrix plus a
// nearest-centroid assignment rule under a distance functor. A row may be
// "live" or sentinel-null; null rows are tracked by a separate bitmap
// rather than an infinity sentinel value (spec.md §9 design note: "Prefer
// an explicit Option<Row> or a separate bitmap of 'live' rows to avoid
// NaN/∞ arithmetic traps").
type Centroids struct {
	mat    *geom.Matrix
	live   []bool
	d      geom.Distance
	assign []int // cached nearest-centroid assignment per instance, or nil
	points [][]float64
}

// NewCentroids builds a Centroids view over mat (k×d), all rows live,
// assigning each of the given points to its nearest centroid under d.
func NewCentroids(mat *geom.Matrix, points [][]float64, d geom.Distance) (*Centroids, error) {
	c := &Centroids{mat: mat, d: d, points: points}
	c.live = make([]bool, mat.Rows())
	for i := range c.live {
		c.live[i] = true
	}

	return c, c.Reassign()
}

// Reassign recomputes the nearest-centroid label for every point.
func (c *Centroids) Reassign() error {
	assign := make([]int, len(c.points))
	for i, p := range c.points {
		k, _, err := NearestLiveCentroid(p, c.mat, c.live, c.d)
		if err != nil {
			return err
		}
		assign[i] = k
	}
	c.assign = assign

	return nil
}

// NearestLiveCentroid scans the live rows of mat and returns the index
// (and distance) of the row nearest to point under d, resolving ties by
// lower index. Returns (-1, 0, ErrDegenerate) if every row is null.
//
// Complexity: O(k*d).
func NearestLiveCentroid(point []float64, mat *geom.Matrix, live []bool, d geom.Distance) (int, float64, error) {
	best := -1
	bestDist := 0.0
	for k := 0; k < mat.Rows(); k++ {
		if !live[k] {
			continue
		}
		row, err := mat.Row(k)
		if err != nil {
			return -1, 0, err
		}
		dist, err := d(point, row)
		if err != nil {
			return -1, 0, err
		}
		if best == -1 || dist < bestDist {
			best = k
			bestDist = dist
		}
	}
	if best == -1 {
		return -1, 0, ErrDegenerate
	}

	return best, bestDist, nil
}

func (c *Centroids) NumInstances() int { return len(c.points) }
func (c *Centroids) NumClusters() int  { return c.mat.Rows() }
func (c *Centroids) ClusterOf(i int) int {
	return c.assign[i]
}
func (c *Centroids) Iterate(fn func(i, cluster int)) {
	for i, cl := range c.assign {
		fn(i, cl)
	}
}

// Matrix exposes the backing centroid matrix.
func (c *Centroids) Matrix() *geom.Matrix { return c.mat }

// Live reports whether row k is a live (non-null) centroid.
func (c *Centroids) Live(k int) bool { return c.live[k] }

// SetLive marks row k live or null.
func (c *Centroids) SetLive(k int, live bool) { c.live[k] = live }

// DecodeLabels materializes the equivalent Label view.
func (c *Centroids) DecodeLabels() *Label {
	return NewLabel(c.assign, c.mat.Rows())
}
