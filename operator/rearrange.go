package operator

import "github.com/katalvlaran/leac/geom"

// RearrangedCluster implements GAGR rearranged-cluster matching (spec.md
// §4.9): given a reference centroid matrix x and a candidate y, greedily
// matches each unmatched row of x to its nearest unmatched row of y and
// swaps that row into position, restarting the scan after every swap —
// the same deterministic, restart-on-change shape
// github.com/katalvlaran/lvlath's tsp.two_opt.go uses for its Δ-cost
// local search. Mutates y in place; returns whether any rearrangement
// was necessary.
//
// Complexity: O(k^2): k positions finalized, one O(k) candidate scan each.
func RearrangedCluster(y, x *geom.Matrix, d geom.Distance) (bool, error) {
	k := x.Rows()
	matched := make([]bool, k) // matched[i]: position i of x has its final y row
	any := false

	for {
		progressed := false
		for i := 0; i < k; i++ {
			if matched[i] {
				continue
			}
			xi, err := x.Row(i)
			if err != nil {
				return false, err
			}

			best := -1
			bestDist := 0.0
			for j := 0; j < k; j++ {
				if matched[j] && j != i {
					continue
				}
				yj, err := y.Row(j)
				if err != nil {
					return false, err
				}
				dist, err := d(xi, yj)
				if err != nil {
					return false, err
				}
				if best == -1 || dist < bestDist {
					best = j
					bestDist = dist
				}
			}
			matched[i] = true
			if best != i {
				if err := swapRows(y, i, best); err != nil {
					return false, err
				}
				any = true
			}
			progressed = true

			break // restart the scan on any matched decision, per spec.md §4.9
		}
		if !progressed {
			break
		}
	}

	return any, nil
}

func swapRows(m *geom.Matrix, i, j int) error {
	ri, err := m.Row(i)
	if err != nil {
		return err
	}
	rj, err := m.Row(j)
	if err != nil {
		return err
	}
	tmp := append([]float64(nil), ri...)
	if err := m.SetRow(i, rj); err != nil {
		return err
	}

	return m.SetRow(j, tmp)
}
