// Package evo implements the evolutionary driver spec.md §4.10 names: the
// common generation-loop skeleton (initialize, local-search, evaluate,
// rank, elitism, select, recombine, mutate, replace) shared by every
// algorithm variant, plus the variant-specific overrides of §4.10's
// table (EAC/F-EAC, GA-crisp-matrix, GCA/HKA, GGA, CGA, GKA).
//
// Modeled on github.com/katalvlaran/lvlath's tsp.solve.go: a single
// validate-then-dispatch entry point (Run) routing on an Options.Variant
// field to per-variant generation loops, the same shape tsp.SolveWithMatrix
// uses to dispatch among its exact/approx/branch-and-bound solvers.
package evo

import (
	"errors"
	"time"
)

// ErrInvalidConfig reports a configuration rejected before any generation
// runs (spec.md §7, ConfigurationInvalid): population <= mating pool,
// k > n, or a contradictory [kMin,kMax] range.
var ErrInvalidConfig = errors.New("evo: invalid configuration")

// Variant selects which evolutionary-algorithm family Run dispatches to
// (spec.md §2: "EAC, EAC-I/II/III, F-EAC, and siblings such as the
// crisp-matrix GA, GCA, HKA, CLUSTERING, CGA, GKA, GGA").
type Variant int

const (
	// VariantFEAC is the F-EAC family: k-means local search per
	// generation, simplified-silhouette fitness, MO1/MO2 adaptive mix.
	VariantFEAC Variant = iota
	// VariantEAC is the EAC baseline: same family as F-EAC but with
	// uniform (rather than adaptive) MO1/MO2 selection and no linear
	// ranking.
	VariantEAC
	// VariantEACInverseFc is EAC-I/III (spec.md §4.8): the EAC baseline's
	// fixed 0.5 p_MO and raw+1 fitness scaling, but MO1/MO2 weight
	// candidate clusters by 1-fc(C_i) (operator.WeightInverseFc) rather
	// than uniformly.
	VariantEACInverseFc
	// VariantGACrispMatrix encodes candidates as k×n crisp bitmatrices,
	// selecting by ascending J1 and mutating by bit-flip (spec.md §4.10).
	VariantGACrispMatrix
	// VariantGCA is the medoid-index family without PAM local search.
	VariantGCA
	// VariantHKA is VariantGCA plus a PAM-style swap-cost local search
	// pass every generation.
	VariantHKA
	// VariantGGA is the island-model family: merge-crossover, split/merge
	// mutation, linearly interpolated Pc/Pm across generations.
	VariantGGA
	// VariantCGA uses CGA-crossover plus cluster split/merge mutation.
	VariantCGA
	// VariantGKA uses GKA mutation only; no crossover.
	VariantGKA
)

// Options is the flat, validated configuration every variant reads from,
// in the shape of tsp.Options (spec.md §1: "match the closer analogue" —
// functional options suit core.Graph's builder-style construction; a
// per-run driver config is instead a plain struct, same as tsp.Options).
type Options struct {
	Variant Variant

	SizePopulation int
	SizeMatingPool int
	KMin           int
	KMax           int

	Pc float64 // crossover probability (fixed-probability variants)
	Pm float64 // mutation probability (fixed-probability variants)

	// Pci/Pcf, Pmi/Pmf, Pbi/Pbf linearly interpolate across generations
	// for GGA (spec.md §4.10: "Pc and Pm linearly interpolated between
	// initial and final values"). Pe is GGA's island migration rate.
	Pci, Pcf float64
	Pmi, Pmf float64
	Pbi, Pbf float64
	Pe       float64

	MaxGenerations     int
	MaxExecutionTime   time.Duration
	RandomSeed         int64
	KMeansMaxIter      int
	KMeansEps          float64
	DesirableObjective float64

	// TournamentSize is not read by any variant: setting it does not change
	// selection, and no variant calls operator.Tournament.
	TournamentSize int

	// NumIslands/MigrationPeriod configure VariantGGA's island model
	// (spec.md §4.10: "island model with periodic migration").
	NumIslands      int
	MigrationPeriod int
}

// validate rejects a configuration before any generation runs (spec.md
// §7: ConfigurationInvalid), modeled on tsp.types.go's pre-dispatch
// validation.
//
// Complexity: O(1).
func (o Options) validate(n int) error {
	if o.SizePopulation <= 0 || o.SizeMatingPool <= 0 {
		return ErrInvalidConfig
	}
	if o.SizePopulation <= o.SizeMatingPool {
		return ErrInvalidConfig
	}
	if o.KMin < 1 || o.KMax < o.KMin {
		return ErrInvalidConfig
	}
	if o.KMax > n {
		return ErrInvalidConfig
	}
	if o.MaxGenerations <= 0 {
		return ErrInvalidConfig
	}
	if o.KMeansMaxIter < 0 || o.KMeansEps < 0 {
		return ErrInvalidConfig
	}

	return nil
}

// pcAt/pmAt/pbAt linearly interpolate GGA's probabilities across
// generations (spec.md §4.10).
func (o Options) pcAt(gen, maxGen int) float64 { return lerp(o.Pci, o.Pcf, gen, maxGen) }
func (o Options) pmAt(gen, maxGen int) float64 { return lerp(o.Pmi, o.Pmf, gen, maxGen) }
func (o Options) pbAt(gen, maxGen int) float64 { return lerp(o.Pbi, o.Pbf, gen, maxGen) }

func lerp(start, end float64, gen, maxGen int) float64 {
	if maxGen <= 1 {
		return end
	}
	t := float64(gen) / float64(maxGen-1)

	return start + t*(end-start)
}
