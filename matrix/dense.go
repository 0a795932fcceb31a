// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Offer two surfaces: checked (NewDense, At) returning sentinels, and the
//     unchecked numeric surface (Alloc, Get, Set) where invalid input is fatal.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// AI-Hints:
//   - Build with -tags boundcheck while developing: Get/Set then terminate on
//     out-of-range indices instead of silently touching a neighbouring cell.
//   - Prefer the flat data slice (DataRaw / DataSet) in hot loops.
//
// Complexity quicksheet:
//   - Alloc: O(r*c); Get/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvlinalg/internal/fault"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxGet   = "Get"   // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxAlloc = "Alloc" // ctor tag
	ctxRow   = "Row"   // row-addressed helpers
	ctxCol   = "Col"   // column-addressed helpers
	ctxBlock = "Block" // block-addressed helpers
	ctxData  = "Data"  // flat buffer helpers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - parallel enables goroutine-split elementwise loops (see ops_elementwise.go).
type Dense struct {
	r, c        int       // row and column counts
	data        []float64 // contiguous row-major storage (len == r*c)
	parallel    bool      // per-instance loop-level parallelism
	workers     int       // goroutine budget when parallel
	minParallel int       // serial below this many elements
	eps         float64   // symmetry tolerance for checked helpers
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// checkShape validates rows, cols > 0 and that rows*cols fits an int.
func checkShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return ErrBadShape
	}
	if rows > math.MaxInt/cols {
		return ErrBadShape
	}

	return nil
}

// newDense builds the struct without validation; callers validated the shape.
func newDense(rows, cols int, o Options) *Dense {
	return &Dense{
		r:           rows,
		c:           cols,
		data:        make([]float64, rows*cols),
		parallel:    o.parallel,
		workers:     o.workers,
		minParallel: o.minParallel,
		eps:         o.eps,
	}
}

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0 (and no int overflow); else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer and apply options.
//
// Behavior highlights:
//   - No panics or process exit on user errors; returns sentinel errors.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Use Alloc in numeric code where an invalid shape is a bug, not input.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if err := checkShape(rows, cols); err != nil {
		return nil, denseErrorf(ctxAlloc, rows, cols, err)
	}

	return newDense(rows, cols, gatherOptions(opts...)), nil
}

// NewDenseFromRows copies a rectangular [][]float64 into a new Dense.
//
// Errors:
//   - ErrBadShape for empty input, ErrDimensionMismatch for ragged rows.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 {
		return nil, denseErrorf(ctxAlloc, 0, 0, ErrBadShape)
	}
	m, err := NewDense(len(rows), len(rows[0]), opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, denseErrorf(ctxAlloc, i, len(row), ErrDimensionMismatch)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// NewIdentity returns the n×n identity.
//
// Errors:
//   - ErrBadShape when n <= 0.
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	m, err := NewDense(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Alloc allocates a rows×cols matrix; an invalid shape is fatal.
//
// Implementation:
//   - Stage 1: validate shape; report AllocationFailure through fault on error.
//   - Stage 2: allocate storage.
//
// Behavior highlights:
//   - Callers never re-check the result.
//   - Go hands out zeroed memory, so zero=false costs the same as zero=true;
//     the flag matters for Reshape, which reuses storage.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Alloc(rows, cols int, zero bool, opts ...Option) *Dense {
	if err := checkShape(rows, cols); err != nil {
		fault.Fatal("matrix.Alloc", fault.StatusGeneric, denseErrorf(ctxAlloc, rows, cols, err))
		return nil
	}
	_ = zero // fresh Go memory is always zeroed

	return newDense(rows, cols, gatherOptions(opts...))
}

// AllocAs allocates a matrix with the shape and parallel policy of m.
func AllocAs(m *Dense, zero bool) *Dense {
	out := Alloc(m.r, m.c, zero)
	out.parallel, out.workers, out.minParallel, out.eps = m.parallel, m.workers, m.minParallel, m.eps

	return out
}

// Release drops the storage. The handle must not be used afterwards.
func (m *Dense) Release() {
	m.data = nil
	m.r, m.c = 0, 0
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// At returns m[i,j] or ErrOutOfRange. Never fatal.
func (m *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Get returns m[p,q]. With -tags boundcheck an out-of-range index is fatal.
func (m *Dense) Get(p, q int) float64 {
	m.checkIndex(ctxGet, p, q)

	return m.data[p*m.c+q]
}

// Set writes x into m[p,q]. With -tags boundcheck an out-of-range index is fatal.
func (m *Dense) Set(p, q int, x float64) {
	m.checkIndex(ctxSet, p, q)
	m.data[p*m.c+q] = x
}

// checkIndex is compiled to nothing unless the boundcheck tag is set.
func (m *Dense) checkIndex(op string, p, q int) {
	if !boundCheck {
		return
	}
	if p < 0 || p >= m.r || q < 0 || q >= m.c {
		fault.Fatal("matrix."+op, fault.StatusGeneric, denseErrorf(op, p, q, ErrOutOfRange))
	}
}

func (m *Dense) checkRow(op string, p int) {
	if boundCheck && (p < 0 || p >= m.r) {
		fault.Fatal("matrix."+op, fault.StatusGeneric, denseErrorf(op, p, -1, ErrOutOfRange))
	}
}

func (m *Dense) checkCol(op string, q int) {
	if boundCheck && (q < 0 || q >= m.c) {
		fault.Fatal("matrix."+op, fault.StatusGeneric, denseErrorf(op, -1, q, ErrOutOfRange))
	}
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	out := AllocAs(m, false)
	copy(out.data, m.data)

	return out
}

// String renders the matrix row by row. Intended for debugging small matrices.
func (m *Dense) String() string {
	if m == nil {
		return "<nil>"
	}
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
