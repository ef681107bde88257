package chromosome

// IntString is the fixed-length integer string encoding: gene i carries
// the cluster index of instance i, length L (spec.md §4.1). Some variants
// append a trailing gene recording the active k (CGA's pattern); K
// holds that value when UseTrailingGene is true, kept separate from Genes
// so len(Genes) always equals the instance count L, never L+1.
type IntString struct {
	Genes           []int
	K               int
	UseTrailingGene bool
	fitness         float64
	objective       float64
}

// NewIntString creates an IntString over genes with cluster count k.
func NewIntString(genes []int, k int) *IntString {
	cp := make([]int, len(genes))
	copy(cp, genes)

	return &IntString{Genes: cp, K: k, fitness: Unevaluated, objective: Unevaluated}
}

func (c *IntString) Fitness() float64       { return c.fitness }
func (c *IntString) SetFitness(f float64)   { c.fitness = f }
func (c *IntString) Objective() float64     { return c.objective }
func (c *IntString) SetObjective(o float64) { c.objective = o }
func (c *IntString) NumClusters() int       { return c.K }

func (c *IntString) DecodeLabels() []int {
	out := make([]int, len(c.Genes))
	copy(out, c.Genes)

	return out
}

// Clone returns a deep copy that keeps the parent's fitness/objective —
// crossover/mutation callers reset these explicitly per
// spec.md §4.7 ("All crossovers reset children's fitness to the
// unevaluated sentinel"); Clone itself preserves the parent's scores so
// elitism copies (spec.md §4.10: "copy bestSoFar into matingPool[0]")
// retain a valid fitness without recomputation.
func (c *IntString) Clone() Chromosome {
	return &IntString{
		Genes:           append([]int(nil), c.Genes...),
		K:               c.K,
		UseTrailingGene: c.UseTrailingGene,
		fitness:         c.fitness,
		objective:       c.objective,
	}
}
