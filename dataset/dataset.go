// Package dataset defines the Instance/Dataset data model and the
// class-label interner (spec.md §3).
//
// Unlike github.com/katalvlaran/lvlath's core.Graph — a dynamically
// mutable structure guarded by dual sync.RWMutex locks because vertices
// and edges are added/removed throughout a program's lifetime — a Dataset
// is built once per run and is immutable afterward (spec.md §3: "the
// dataset ... are created once per run"). Transplanting core's full
// mutable API (AddVertex/RemoveVertex/multi-edge/loop flags) would add
// machinery the spec never calls for; what is reused is the one piece of
// core's design that genuinely recurs here — a concurrency-safe
// string-to-dense-index interner, modeled on core.Graph's guarded
// vertices map.
package dataset

import (
	"errors"
	"sync"
)

// ErrEmptyDataset indicates an operation required at least one instance.
var ErrEmptyDataset = errors.New("dataset: empty dataset")

// ErrDimensionMismatch indicates an instance's feature vector length does
// not match the dataset's established dimension d (spec.md §3: "Dimension
// d is ... a process-wide invariant for the run").
var ErrDimensionMismatch = errors.New("dataset: dimension mismatch")

// ErrIndexOutOfRange indicates an instance index outside [0, n).
var ErrIndexOutOfRange = errors.New("dataset: index out of range")

// Instance is an immutable feature vector of fixed dimension d, optionally
// carrying an id, a class-label index, and an integer frequency
// (multiplicity). Features is never mutated after construction; callers
// that need a working copy should copy it explicitly.
type Instance struct {
	Features  []float64
	ID        string
	ClassIdx  int // -1 when the instance carries no class label
	Frequency int // multiplicity; 0 is treated as 1 by consumers
}

// Dim returns the dimension of the instance's feature vector.
func (in Instance) Dim() int { return len(in.Features) }

// Weight returns the instance's multiplicity, defaulting to 1 when
// Frequency is unset (zero value).
func (in Instance) Weight() int {
	if in.Frequency <= 0 {
		return 1
	}

	return in.Frequency
}

// Dataset is an ordered, immutable sequence of instances sharing a common
// feature dimension. Partition indices refer to positions 0..N().
type Dataset struct {
	instances []Instance
	dim       int
}

// NewDataset validates and wraps instances into a Dataset. All instances
// must share the same feature dimension (the first instance's dimension
// is authoritative); a mismatch is ErrDimensionMismatch. An empty slice is
// ErrEmptyDataset.
//
// Complexity: O(n*d).
func NewDataset(instances []Instance) (*Dataset, error) {
	if len(instances) == 0 {
		return nil, ErrEmptyDataset
	}
	dim := instances[0].Dim()
	for _, in := range instances {
		if in.Dim() != dim {
			return nil, ErrDimensionMismatch
		}
	}
	cp := make([]Instance, len(instances))
	copy(cp, instances)

	return &Dataset{instances: cp, dim: dim}, nil
}

// N returns the number of instances.
func (d *Dataset) N() int { return len(d.instances) }

// Dim returns the shared feature dimension.
func (d *Dataset) Dim() int { return d.dim }

// At returns instance i.
func (d *Dataset) At(i int) (Instance, error) {
	if i < 0 || i >= len(d.instances) {
		return Instance{}, ErrIndexOutOfRange
	}

	return d.instances[i], nil
}

// Features returns the feature vector of instance i without a bounds-check
// allocation in hot paths (panics like a slice index would on an
// out-of-range i; callers in tight loops are expected to iterate 0..N()).
func (d *Dataset) Features(i int) []float64 { return d.instances[i].Features }

// Points returns every instance's feature vector as a [][]float64 view
// (not copies), convenient for geom.NewTriangular and similar bulk
// constructors.
func (d *Dataset) Points() [][]float64 {
	pts := make([][]float64, len(d.instances))
	for i, in := range d.instances {
		pts[i] = in.Features
	}

	return pts
}

// ClassLabelInterner maps string class labels to dense, stable indices.
// Safe for concurrent use: guarded by a single sync.RWMutex, mirroring the
// read/write split core.Graph uses for its vertices map.
type ClassLabelInterner struct {
	mu     sync.RWMutex
	byName map[string]int
	names  []string
}

// NewClassLabelInterner returns an empty interner.
func NewClassLabelInterner() *ClassLabelInterner {
	return &ClassLabelInterner{byName: make(map[string]int)}
}

// Intern returns the dense index for label, assigning a new one (len(names))
// the first time label is seen.
//
// Complexity: O(1) amortized.
func (c *ClassLabelInterner) Intern(label string) int {
	c.mu.RLock()
	idx, ok := c.byName[label]
	c.mu.RUnlock()
	if ok {
		return idx
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check under write lock: another goroutine may have interned it.
	if idx, ok = c.byName[label]; ok {
		return idx
	}
	idx = len(c.names)
	c.byName[label] = idx
	c.names = append(c.names, label)

	return idx
}

// NumClasses returns the number of distinct labels interned so far.
func (c *ClassLabelInterner) NumClasses() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.names)
}

// Name returns the label originally interned at index idx.
func (c *ClassLabelInterner) Name(idx int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx < 0 || idx >= len(c.names) {
		return "", ErrIndexOutOfRange
	}

	return c.names[idx], nil
}
