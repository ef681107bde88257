// Package chromosome implements the four candidate-clustering encodings
// spec.md §4.1 names: a fixed-length integer string, a variable-length
// real (centroid) string, a crisp-partition bitmatrix, and the FEAC
// hybrid (label string + centroid matrix + per-cluster counts + partial
// fitness).
//
// Each encoding is its own concrete type implementing Chromosome, per
// spec.md §9's design note ("Model each encoding as its own concrete type
// ... Do not attempt a single polymorphic base class") — the same
// decision github.com/katalvlaran/lvlath makes for core.Graph vs.
// matrix.Dense vs. tsp's tour representation: distinct concrete types
// behind small interfaces, not one inheritance hierarchy.
package chromosome

import "math"

// Unevaluated is the fitness sentinel for a chromosome that has not yet
// been scored this generation (spec.md §3: "-∞ sentinel when unevaluated").
//
// math.Inf(-1) is a function call, not a constant expression, so this is
// a package-level var rather than the usual const sentinel pattern.
var Unevaluated = math.Inf(-1)

// WorstFitness is assigned to chromosomes culled by per-chromosome
// failure absorption (spec.md §4.11, §7): degenerate cluster, numerical
// non-finite objective. Using the real minimum rather than -Inf keeps
// arithmetic (e.g. roulette-wheel sums) finite.
const WorstFitness = -math.MaxFloat64

// AppliedOperator records which F-EAC mutation operator produced a
// chromosome, used by the adaptive operator-mix estimator (spec.md §4.8).
type AppliedOperator int

const (
	// OpNone marks a chromosome that has not undergone mutation this
	// generation (or whose encoding does not track this metadata).
	OpNone AppliedOperator = iota
	// OpMO1 marks cluster-elimination (merge) mutation.
	OpMO1
	// OpMO2 marks cluster-split mutation.
	OpMO2
)

// Chromosome is the common trait every encoding implements: fitness and
// objective accessors, clone, and decode-to-labels (spec.md §4.1).
type Chromosome interface {
	Fitness() float64
	SetFitness(f float64)
	Objective() float64
	SetObjective(o float64)
	Clone() Chromosome
	DecodeLabels() []int
	NumClusters() int
}
