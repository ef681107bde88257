package geom

// BitArray is a fixed-length vector of bits backed by a []uint64 word
// array, modeled on the compact adjacency-set bookkeeping
// github.com/katalvlaran/lvlath's core.Graph keeps per vertex
// (map[string]struct{} there; a dense bitset here since crisp-partition
// columns are small, fixed-size, and hot in the mutation/crossover loops).
type BitArray struct {
	n     int
	words []uint64
}

// NewBitArray creates a zeroed BitArray of length n.
func NewBitArray(n int) *BitArray {
	return &BitArray{n: n, words: make([]uint64, (n+63)/64)}
}

// Len returns the number of bits.
func (b *BitArray) Len() int { return b.n }

// Get reports whether bit i is set.
func (b *BitArray) Get(i int) bool {
	return b.words[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

// Set sets bit i to 1.
func (b *BitArray) Set(i int) {
	b.words[i/64] |= uint64(1) << (uint(i) % 64)
}

// Clear sets bit i to 0.
func (b *BitArray) Clear(i int) {
	b.words[i/64] &^= uint64(1) << (uint(i) % 64)
}

// PopCount returns the number of set bits.
func (b *BitArray) PopCount() int {
	count := 0
	for _, w := range b.words {
		for w != 0 {
			w &= w - 1
			count++
		}
	}

	return count
}

// OnlySet returns the index of the single set bit, or -1 if zero or more
// than one bit is set. Used to validate crisp-matrix columns (spec.md §3:
// "exactly one set bit per column").
func (b *BitArray) OnlySet() int {
	found := -1
	for i := 0; i < b.n; i++ {
		if b.Get(i) {
			if found != -1 {
				return -1
			}
			found = i
		}
	}

	return found
}

// BitMatrix is a k×n matrix of bits, one BitArray per row, used to store a
// crisp partition: row j is cluster j's membership indicator over the n
// instances.
type BitMatrix struct {
	rows []*BitArray
	n    int
}

// NewBitMatrix creates a k×n BitMatrix with all bits clear.
func NewBitMatrix(k, n int) *BitMatrix {
	m := &BitMatrix{rows: make([]*BitArray, k), n: n}
	for i := range m.rows {
		m.rows[i] = NewBitArray(n)
	}

	return m
}

// K returns the number of rows (clusters).
func (m *BitMatrix) K() int { return len(m.rows) }

// N returns the number of columns (instances).
func (m *BitMatrix) N() int { return m.n }

// Row returns the BitArray for row j.
func (m *BitMatrix) Row(j int) *BitArray { return m.rows[j] }

// ColumnCluster returns the row index whose bit is set in column i, or -1
// if no row (or more than one row) has it set.
//
// Complexity: O(k).
func (m *BitMatrix) ColumnCluster(i int) int {
	found := -1
	for j, row := range m.rows {
		if row.Get(i) {
			if found != -1 {
				return -1
			}
			found = j
		}
	}

	return found
}

// SetColumnCluster clears column i in every row, then sets it in row j
// (enforces the "exactly one set bit per column" invariant by construction).
func (m *BitMatrix) SetColumnCluster(i, j int) {
	for _, row := range m.rows {
		row.Clear(i)
	}
	m.rows[j].Set(i)
}

// AddRow appends a new all-clear row, growing K by one. Used by split
// mutation (spec.md §4.8, GGA split: "k ← k+1").
func (m *BitMatrix) AddRow() {
	m.rows = append(m.rows, NewBitArray(m.n))
}

// RemoveRow deletes row j (merge mutation / compaction), shifting later
// rows down by one index.
func (m *BitMatrix) RemoveRow(j int) {
	m.rows = append(m.rows[:j], m.rows[j+1:]...)
}
