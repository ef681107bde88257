// Package geom provides the geometry primitives the clustering core is
// built on: a row-major dense matrix, a variable-row matrix (for ragged
// per-cluster payloads), a read-only triangular dissimilarity matrix, a
// bit-matrix/bit-array pair (crisp partition storage), and a stateless
// distance functor.
//
// Adapted from github.com/katalvlaran/lvlath's matrix.Dense: same flat,
// row-major backing-slice design and the same Stage-numbered doc-comment
// style, trimmed to the operations the clustering core actually needs
// (no LU/QR/eigen decomposition — those serve PCA, an explicit Non-goal).
package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("geom: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("geom: index out of bounds")

// ErrDimensionMismatch indicates two operands have incompatible shapes.
var ErrDimensionMismatch = errors.New("geom: dimension mismatch")

func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is a row-major matrix of float64 values, r rows by c columns,
// backed by a single flat slice of length r*c (row-major order).
type Matrix struct {
	r, c int
	data []float64
}

// NewMatrix allocates an r×c Matrix initialized to zero.
//
// Complexity: O(r*c).
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Matrix{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.c }

// Data exposes the flat row-major backing slice for kernels-package
// operations (callers must not change its length).
func (m *Matrix) Data() []float64 { return m.data }

func (m *Matrix) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, matrixErrorf("At", row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set writes value into (row, col).
func (m *Matrix) Set(row, col int, value float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = value

	return nil
}

// Row returns a slice view (not a copy) of row i's rowLen=Cols() contiguous
// elements. Mutating the returned slice mutates the matrix.
func (m *Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, matrixErrorf("Row", i, 0, ErrIndexOutOfBounds)
	}
	off := i * m.c

	return m.data[off : off+m.c], nil
}

// SetRow overwrites row i with the contents of values (len(values) must equal Cols()).
func (m *Matrix) SetRow(i int, values []float64) error {
	if i < 0 || i >= m.r {
		return matrixErrorf("SetRow", i, 0, ErrIndexOutOfBounds)
	}
	if len(values) != m.c {
		return ErrDimensionMismatch
	}
	off := i * m.c
	copy(m.data[off:off+m.c], values)

	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)

	return out
}

// VarMatrix is a variable-row matrix: each row may have a different length,
// used for ragged per-cluster payloads (e.g. per-cluster member index lists).
type VarMatrix struct {
	rows [][]float64
}

// NewVarMatrix creates a VarMatrix with the given number of empty rows.
func NewVarMatrix(numRows int) *VarMatrix {
	return &VarMatrix{rows: make([][]float64, numRows)}
}

// NumRows returns the number of rows.
func (v *VarMatrix) NumRows() int { return len(v.rows) }

// Row returns row i (not a copy).
func (v *VarMatrix) Row(i int) []float64 { return v.rows[i] }

// SetRow replaces row i.
func (v *VarMatrix) SetRow(i int, row []float64) { v.rows[i] = row }

// AppendRow appends a new row, growing NumRows by one, and returns its index.
func (v *VarMatrix) AppendRow(row []float64) int {
	v.rows = append(v.rows, row)

	return len(v.rows) - 1
}

// RemoveRow deletes row i, shifting later rows down by one.
func (v *VarMatrix) RemoveRow(i int) error {
	if i < 0 || i >= len(v.rows) {
		return ErrIndexOutOfBounds
	}
	v.rows = append(v.rows[:i], v.rows[i+1:]...)

	return nil
}
