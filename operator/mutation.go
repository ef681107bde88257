package operator

import (
	"errors"

	"github.com/katalvlaran/leac/chromosome"
	"github.com/katalvlaran/leac/clustering"
	"github.com/katalvlaran/leac/dataset"
	"github.com/katalvlaran/leac/fitness"
	"github.com/katalvlaran/leac/geom"
	"github.com/katalvlaran/leac/partition"
	"github.com/katalvlaran/leac/rng"
)

// ErrKTooSmall indicates a mutation that shrinks k (MO1, merge mutation)
// was asked to run on a chromosome already at the k=2 floor (spec.md §8:
// "k=2 (minimum): MO1 and merge-mutation are disabled").
var ErrKTooSmall = errors.New("operator: k already at minimum")

// ErrKAtMax indicates a mutation that grows k (MO2, split mutation) was
// asked to run on a chromosome already at kMax (spec.md §8: "k=kMax: MO2
// and split-mutation are disabled").
var ErrKAtMax = errors.New("operator: k already at maximum")

// BitMutation flips the crisp partition matrix's set bit, per column,
// with probability pm: the bit moves to a uniformly chosen other row
// (spec.md §4.8).
//
// Complexity: O(n).
func BitMutation(c *chromosome.Crisp, pm float64, s *rng.Stream) {
	k := c.BM.K()
	if k < 2 {
		return
	}
	for i := 0; i < c.BM.N(); i++ {
		if s.Float64() >= pm {
			continue
		}
		cur := c.BM.ColumnCluster(i)
		next := s.Intn(k - 1)
		if next >= cur {
			next++
		}
		c.BM.SetColumnCluster(i, next)
	}
	c.SetFitness(chromosome.Unevaluated)
}

// RandomDeltaCentroid mutates every element of every live centroid row:
// draw sign ∈ {+1,-1} and δ ∈ [0,1] once per call, then for each element
// multiply by 1+2·sign·δ, or set to ±2δ if the element was exactly 0
// (spec.md §4.8).
//
// Complexity: O(k*d).
func RandomDeltaCentroid(rs *chromosome.RealString, live []bool, s *rng.Stream) {
	sign := s.Sign()
	delta := s.Float64()
	mat := rs.Mat
	for row := 0; row < mat.Rows(); row++ {
		if live != nil && !live[row] {
			continue
		}
		r, _ := mat.Row(row)
		for j, g := range r {
			if g == 0 {
				r[j] = 2 * sign * delta
			} else {
				r[j] = g * (1 + 2*sign*delta)
			}
		}
	}
	rs.SetFitness(chromosome.Unevaluated)
}

// BidirectionalHrushka mutates every element g of every live centroid row
// toward its dimension's max (when the draw is non-negative) or its min
// (when negative), scaled by an annealed range R = (m-mMin)/(mMax-mMin)
// (or 1 if that range collapses to zero) — spec.md §4.8's "Bidirectional
// Hrushka" operator. colMin/colMax give the per-dimension feature bounds
// the mutation is not allowed to overshoot.
//
// Complexity: O(k*d).
func BidirectionalHrushka(rs *chromosome.RealString, live []bool, colMin, colMax []float64, m, mMin, mMax float64, s *rng.Stream) {
	r := 1.0
	if mMax != mMin {
		r = (m - mMin) / (mMax - mMin)
	}
	bidirectionalMutate(rs, live, colMin, colMax, r, s)
}

// BidirectionalTGCA is the TGCA sibling of BidirectionalHrushka: the same
// move-toward/away-from-bound update, but Δ is always drawn from the
// fixed range [-1,1] rather than an annealed R (spec.md §4.8).
//
// Complexity: O(k*d).
func BidirectionalTGCA(rs *chromosome.RealString, live []bool, colMin, colMax []float64, s *rng.Stream) {
	bidirectionalMutate(rs, live, colMin, colMax, 1, s)
}

func bidirectionalMutate(rs *chromosome.RealString, live []bool, colMin, colMax []float64, r float64, s *rng.Stream) {
	mat := rs.Mat
	for row := 0; row < mat.Rows(); row++ {
		if live != nil && !live[row] {
			continue
		}
		vals, _ := mat.Row(row)
		for j, g := range vals {
			delta := r * (2*s.Float64() - 1) // uniform in [-r, r]
			if delta >= 0 {
				vals[j] = g + delta*(colMax[j]-g)
			} else {
				vals[j] = g + delta*(g-colMin[j])
			}
		}
	}
	rs.SetFitness(chromosome.Unevaluated)
}

// SplitGGA performs GGA split mutation (spec.md §4.8): picks a cluster
// weighted by member count (restricted to clusters with >= 2 members, so
// an unsplittable draw never happens), flips a random half of its members
// to a brand-new cluster index, and grows k by one. Returns false if no
// cluster in the chromosome has >= 2 members.
//
// Complexity: O(n).
func SplitGGA(c *chromosome.IntString, s *rng.Stream) bool {
	lbl := partition.NewLabel(c.Genes, c.K)
	counts := partition.CountLabels(lbl)

	weights := make([]float64, c.K)
	any := false
	for i, cnt := range counts {
		if cnt >= 2 {
			weights[i] = float64(cnt)
			any = true
		}
	}
	if !any {
		return false
	}
	target := weightedChoice(weights, s)

	members := make([]int, 0, counts[target])
	for i, g := range c.Genes {
		if g == target {
			members = append(members, i)
		}
	}
	s.ShuffleInts(members)
	half := len(members) / 2
	newCluster := c.K
	for _, idx := range members[:half] {
		c.Genes[idx] = newCluster
	}
	c.K++
	c.SetFitness(chromosome.Unevaluated)

	return true
}

// MergeGGA performs GGA merge mutation (spec.md §4.8): picks two clusters
// weighted by inverse size, relabels every instance in the higher index
// to the lower, contracts labels >= the removed index, and shrinks k by
// one. Requires k >= 3 (spec.md §4.8: "requires k >= 3"); returns
// ErrKTooSmall otherwise.
//
// Complexity: O(n).
func MergeGGA(c *chromosome.IntString, s *rng.Stream) error {
	if c.K < 3 {
		return ErrKTooSmall
	}
	lbl := partition.NewLabel(c.Genes, c.K)
	counts := partition.CountLabels(lbl)

	weights := make([]float64, c.K)
	for i, cnt := range counts {
		if cnt > 0 {
			weights[i] = 1.0 / float64(cnt)
		}
	}
	pair := weightedChooseDistinct(weights, 2, s)
	lo, hi := pair[0], pair[1]
	if lo > hi {
		lo, hi = hi, lo
	}

	for i, g := range c.Genes {
		switch {
		case g == hi:
			c.Genes[i] = lo
		case g > hi:
			c.Genes[i] = g - 1
		}
	}
	c.K--
	c.SetFitness(chromosome.Unevaluated)

	return nil
}

// WeightMode selects how MO1/MO2 weight candidate clusters for elimination
// or split (spec.md §4.8: "weighted by 1-fc(C_i) (EAC-I/III), by
// linear-ranked fc (EAC-II/F-EAC), or uniformly (EAC)").
type WeightMode int

const (
	// WeightUniform assigns every live cluster equal weight (EAC baseline).
	WeightUniform WeightMode = iota
	// WeightInverseFc weights by 1-fc(C_i): low-quality clusters are more
	// likely to be chosen (EAC-I/III).
	WeightInverseFc
	// WeightLinearRankFc weights by the linear rank of fc(C_i), ascending
	// (EAC-II/F-EAC).
	WeightLinearRankFc
)

func clusterWeights(fc []float64, live []bool, mode WeightMode) ([]float64, error) {
	k := len(fc)
	weights := make([]float64, k)
	switch mode {
	case WeightUniform:
		for i := range weights {
			if live == nil || live[i] {
				weights[i] = 1
			}
		}
	case WeightInverseFc:
		for i, v := range fc {
			if live == nil || live[i] {
				weights[i] = 1 - v
			}
		}
	case WeightLinearRankFc:
		ranked, err := fitness.LinearRanking(fc)
		if err != nil {
			return nil, err
		}
		for i, w := range ranked {
			if live == nil || live[i] {
				weights[i] = w
			}
		}
	}

	return weights, nil
}

// MO1 implements cluster-elimination mutation (spec.md §4.8): chooses
// n ∈ [1, k-2] clusters by the given weighting rule, and for each merges
// it into its nearest surviving cluster using a count-weighted centroid
// average, then compacts labels. k must be >= 3 (k=2 disables MO1,
// spec.md §8); returns ErrKTooSmall otherwise.
//
// Complexity: O(n_chosen * k * d).
func MO1(c *chromosome.FEAC, ds *dataset.Dataset, d geom.Distance, mode WeightMode, s *rng.Stream) error {
	k := len(c.Counts)
	if k < 3 {
		return ErrKTooSmall
	}
	maxN := k - 2
	chosenCount := 1 + s.Intn(maxN)

	weights, err := clusterWeights(c.Partial, c.Live, mode)
	if err != nil {
		return err
	}
	chosen := weightedChooseDistinct(weights, chosenCount, s)

	for _, cs := range chosen {
		if !c.Live[cs] {
			continue // already folded by an earlier merge this call
		}
		live := append([]bool(nil), c.Live...)
		live[cs] = false
		row, err := c.Mat.Row(cs)
		if err != nil {
			return err
		}
		target, _, err := clustering.NearestCentroid(row, c.Mat, live, d)
		if err != nil {
			continue // no surviving cluster to merge into; skip
		}
		merged, err := clustering.WeightedMergeCentroid(c.Mat, c.Counts, cs, target)
		if err != nil {
			return err
		}
		if err := c.Mat.SetRow(target, merged); err != nil {
			return err
		}
		c.Counts[target] += c.Counts[cs]
		c.Counts[cs] = 0
		c.Live[cs] = false
		for i, g := range c.Labels {
			if g == cs {
				c.Labels[i] = target
			}
		}
	}
	c.AppliedOperator = chromosome.OpMO1
	c.SetFitness(chromosome.Unevaluated)
	// maxIter=0: RunKMeans's local-search loop does not execute, but its
	// trailing compact() still drops the now-dead cs rows and relabels
	// contiguously.
	if err := c.RunKMeans(ds, d, 0, 0); err != nil {
		return err
	}

	return nil
}

// MO2 implements cluster-split mutation (spec.md §4.8): chooses n ∈ [1,k]
// clusters by the given weighting rule; for each with > 2 members, seeds
// two new centroids at a random member and the farthest member from it,
// reassigns the cluster's members to the nearer seed, and grows k by one
// per split performed. k must be < kMax (spec.md §8); returns ErrKAtMax
// otherwise.
//
// Complexity: O(n_chosen * clusterSize * d).
func MO2(c *chromosome.FEAC, ds *dataset.Dataset, d geom.Distance, kMax int, mode WeightMode, s *rng.Stream) error {
	k := len(c.Counts)
	if k >= kMax {
		return ErrKAtMax
	}

	weights, err := clusterWeights(c.Partial, c.Live, mode)
	if err != nil {
		return err
	}
	chosenCount := 1 + s.Intn(k)
	chosen := weightedChooseDistinct(weights, chosenCount, s)

	for _, cs := range chosen {
		if k >= kMax {
			break
		}
		members := make([]int, 0, c.Counts[cs])
		for i, g := range c.Labels {
			if g == cs {
				members = append(members, i)
			}
		}
		if len(members) <= 2 {
			continue
		}
		s1 := members[s.Intn(len(members))]
		s2, err := clustering.FarthestInstanceFromS1(ds.Features(s1), members, ds, d)
		if err != nil {
			return err
		}

		newCluster := k
		seed1, seed2 := ds.Features(s1), ds.Features(s2)
		for _, idx := range members {
			p := ds.Features(idx)
			d1, err := d(p, seed1)
			if err != nil {
				return err
			}
			d2, err := d(p, seed2)
			if err != nil {
				return err
			}
			if d2 < d1 {
				c.Labels[idx] = newCluster
			}
		}
		k++
	}
	if k != len(c.Counts) {
		rebuilt, err := chromosome.NewFEAC(c.Labels, k, ds)
		if err != nil {
			return err
		}
		last := c.LastObjective // NewFEAC resets it; the F-EAC driver needs it to measure MO2's effect
		*c = *rebuilt
		c.LastObjective = last
	}
	c.SetFitness(chromosome.Unevaluated)
	c.AppliedOperator = chromosome.OpMO2

	return nil
}

// GKAMutation implements GKA mutation (spec.md §4.8): per gene, with
// probability pm, computes the nearest-centroid-weighted distribution
// (C_m-d_i)/Σ(C_m-d_i) (C_m >= 1.01*max(d_i)) and reassigns the gene via
// roulette wheel over it.
//
// Complexity: O(n*k*d) worst case (every gene mutates).
func GKAMutation(c *chromosome.IntString, mat *geom.Matrix, live []bool, ds *dataset.Dataset, d geom.Distance, pm float64, s *rng.Stream) error {
	k := mat.Rows()
	for i := range c.Genes {
		if s.Float64() >= pm {
			continue
		}
		point := ds.Features(i)
		dists := make([]float64, k)
		maxD := 0.0
		for j := 0; j < k; j++ {
			if !live[j] {
				continue
			}
			row, err := mat.Row(j)
			if err != nil {
				return err
			}
			dist, err := d(point, row)
			if err != nil {
				return err
			}
			dists[j] = dist
			if dist > maxD {
				maxD = dist
			}
		}
		cm := 1.01 * maxD
		weights := make([]float64, k)
		for j := 0; j < k; j++ {
			if live[j] {
				weights[j] = cm - dists[j]
			}
		}
		c.Genes[i] = weightedChoice(weights, s)
	}
	c.SetFitness(chromosome.Unevaluated)

	return nil
}

// PointMutationMedoid implements D-PM (spec.md §4.8): with probability pm,
// replaces one element of medoids with a uniformly random dataset index
// not already present, returning a mutated copy.
//
// Complexity: O(k) expected.
func PointMutationMedoid(medoids []int, n int, pm float64, s *rng.Stream) []int {
	out := append([]int(nil), medoids...)
	if s.Float64() >= pm {
		return out
	}
	present := make(map[int]bool, len(out))
	for _, m := range out {
		present[m] = true
	}
	for {
		cand := s.Choice(n)
		if !present[cand] {
			pos := s.Intn(len(out))
			out[pos] = cand

			return out
		}
	}
}

// weightedChoice performs a single roulette-wheel draw over weights,
// falling back to uniform when the sum is <= 0 (spec.md §4.6/§8).
func weightedChoice(weights []float64, s *rng.Stream) int {
	cumulative, total := fitness.RouletteDistribution(weights)
	if total <= 0 {
		return s.Intn(len(weights))
	}
	u := s.Float64() * total
	for i, c := range cumulative {
		if u < c {
			return i
		}
	}

	return len(weights) - 1
}

// weightedChooseDistinct draws count distinct indices from weights without
// replacement: repeated roulette draws, zeroing the chosen weight each
// round so it cannot be drawn again.
func weightedChooseDistinct(weights []float64, count int, s *rng.Stream) []int {
	work := append([]float64(nil), weights...)
	out := make([]int, 0, count)
	taken := make([]bool, len(work))
	for len(out) < count && len(out) < len(work) {
		idx := weightedChoice(work, s)
		if taken[idx] {
			// The uniform fallback (all remaining weights <= 0) can land on
			// an index already drawn: pick uniformly among the rest instead.
			free := make([]int, 0, len(work)-len(out))
			for i := range work {
				if !taken[i] {
					free = append(free, i)
				}
			}
			idx = free[s.Intn(len(free))]
		}
		taken[idx] = true
		out = append(out, idx)
		work[idx] = -1 // excluded from future draws (clamped to 0 by RouletteDistribution)
	}

	return out
}
