package dataset

import (
	"math"

	"github.com/katalvlaran/leac/rng"
)

// TwoGaussians builds a synthetic Dataset of 2*perCluster 2-D instances
// drawn from two well-separated Gaussian blobs, used by the end-to-end
// scenarios spec.md §8 describes ("20 instances arranged as two
// Gaussians"). Modeled on github.com/katalvlaran/lvlath's builder
// package pattern of a small, seeded, option-free deterministic generator
// (the shape of impl_random_sparse.go's seeded sampling), rewritten here
// to emit dataset.Instance values instead of a *core.Graph.
//
// Complexity: O(perCluster).
func TwoGaussians(perCluster int, centerA, centerB [2]float64, stddev float64, seed int64) (*Dataset, error) {
	s := rng.New(seed)
	instances := make([]Instance, 0, perCluster*2)
	for _, center := range [][2]float64{centerA, centerB} {
		for i := 0; i < perCluster; i++ {
			x := center[0] + gaussian(s)*stddev
			y := center[1] + gaussian(s)*stddev
			instances = append(instances, Instance{Features: []float64{x, y}, Frequency: 1})
		}
	}

	return NewDataset(instances)
}

// gaussian draws a standard-normal sample via the Box-Muller transform
// using only rng.Stream's uniform Float64, keeping every draw on the
// shared deterministic stream (spec.md §5).
func gaussian(s *rng.Stream) float64 {
	u1 := s.Float64()
	if u1 <= 1e-12 {
		u1 = 1e-12
	}
	u2 := s.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
