// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"

	"github.com/katalvlaran/lvlinalg/group"
	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/matrix"
)

const (
	opNewMatrix = "dist.NewMatrix"
	opSet       = "dist.Matrix.Set"
	opGet       = "dist.Matrix.Get"
	opMulVec    = "dist.Matrix.MulVec"
	opGather    = "dist.Matrix.Gather"
	opEigen     = "dist.Matrix.SparseEigen"
	opEigenpair = "dist.Matrix.Eigenpair"
)

// NonZeros estimates the entries per owned row that fall inside (Diag) and
// outside (Off) the owned column block. Only the partitioned store uses it,
// to presize its rows.
type NonZeros struct {
	Diag, Off int
}

type state int

const (
	unbuilt state = iota
	staged
	built
)

func (s state) String() string {
	switch s {
	case unbuilt:
		return "unbuilt"
	case staged:
		return "staged"
	}

	return "built"
}

// store is the storage behind a Matrix: rows [first, last) of the logical
// matrix, addressed with global indices.
type store interface {
	set(p, q int, x float64)
	build()
	get(p, q int) float64
	mulLocal(x, y []float64)
	localDense() []float64
	nnz() int
}

// Matrix is a row-partitioned matrix. Every rank owns the contiguous rows
// [first, last); the whole group must call NewMatrix, Build and
// SparseEigen together.
type Matrix struct {
	g           *group.Group
	rows, cols  int
	first, last int
	st          state
	store       store
	eig         *eigenResult
}

// eigenResult holds converged pairs; vectors are the rank's local parts.
type eigenResult struct {
	values  []float64
	vectors [][]float64
}

// NewMatrix allocates a rows×cols matrix over g. Non-positive dimensions
// are fatal.
func NewMatrix(g *group.Group, rows, cols int, nz NonZeros) *Matrix {
	if rows <= 0 || cols <= 0 {
		fault.Fatal(opNewMatrix, fault.StatusGeneric, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols))
		return nil
	}
	first, last := ownedRange(g, rows)
	m := &Matrix{
		g:     g,
		rows:  rows,
		cols:  cols,
		first: first,
		last:  last,
		store: newStore(rows, cols, first, last, nz),
	}
	if s, ok := g.State(extAlgebra).(*algebraStats); ok {
		s.matrices.Add(1)
	}

	return m
}

// Rows returns the global row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the global column count.
func (m *Matrix) Cols() int { return m.cols }

// OwnershipRange returns the rows [first, last) held by this rank.
func (m *Matrix) OwnershipRange() (first, last int) { return m.first, m.last }

// Set stores x at (p, q) when row p is owned by this rank and silently
// ignores it otherwise, so every rank may issue the same global sequence of
// Set calls. A column outside the matrix is fatal.
func (m *Matrix) Set(p, q int, x float64) {
	if p < m.first || p >= m.last {
		return
	}
	if q < 0 || q >= m.cols {
		fault.Fatal(opSet, fault.StatusGeneric, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, p, q, m.rows, m.cols))
		return
	}
	m.store.set(p, q, x)
	m.st = staged
	m.eig = nil
}

// Build finishes assembly. It is collective: every rank must call it after
// its last Set and before any read or solve.
func (m *Matrix) Build() {
	m.store.build()
	m.g.Barrier()
	m.st = built
}

func (m *Matrix) requireBuilt(op string) {
	if m.st != built {
		fault.Fatal(op, fault.StatusGeneric, fmt.Errorf("%w: state %s", ErrNotBuilt, m.st))
	}
}

// Get returns the element at (p, q) and true when row p is owned here;
// (0, false) otherwise.
func (m *Matrix) Get(p, q int) (float64, bool) {
	m.requireBuilt(opGet)
	if p < m.first || p >= m.last {
		return 0, false
	}
	if q < 0 || q >= m.cols {
		fault.Fatal(opGet, fault.StatusGeneric, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, p, q, m.rows, m.cols))
		return 0, false
	}

	return m.store.get(p, q), true
}

// MulVec computes y = A·x. Collective. x must have Cols() elements and y
// Rows() elements.
func (m *Matrix) MulVec(x, y *Vector) {
	m.requireBuilt(opMulVec)
	x.requireBuilt(opMulVec)
	if x.n != m.cols || y.n != m.rows {
		fault.Fatal(opMulVec, fault.StatusGeneric,
			fmt.Errorf("%w: %dx%d times %d into %d", ErrDimensionMismatch, m.rows, m.cols, x.n, y.n))
		return
	}
	m.store.mulLocal(x.full(), y.local)
	y.st = built
}

// Gather assembles the whole matrix on root. Other ranks get nil.
// Collective.
func (m *Matrix) Gather(root int) *matrix.Dense {
	m.requireBuilt(opGather)
	flat := gatherRows(m.g, root, m.store.localDense())
	if flat == nil {
		return nil
	}
	out := matrix.Alloc(m.rows, m.cols, false)
	for n, v := range flat {
		out.DataSet(n, v)
	}

	return out
}

// SparseEigen computes count extreme eigenpairs of the symmetric matrix:
// the largest when upper is true, the smallest otherwise. It returns the
// number of converged pairs available through Eigenpair: fewer than count
// when maxIter restarts were not enough, possibly more when extra pairs
// converged along the way. A count below 1 is fatal. Collective.
//
// The partitioned backend runs a thick-restart Lanczos (Krylov-Schur for
// symmetric problems) with a subspace of min(2*count+10, Rows()) vectors.
// The replicated backend diagonalizes the dense replica and returns Rows().
func (m *Matrix) SparseEigen(count, maxIter int, tol float64, upper bool) int {
	m.requireBuilt(opEigen)
	if m.rows != m.cols {
		fault.Fatal(opEigen, fault.StatusGeneric, fmt.Errorf("%w: %dx%d is not square", ErrDimensionMismatch, m.rows, m.cols))
		return 0
	}
	if count < 1 {
		fault.Fatal(opEigen, fault.StatusGeneric, fmt.Errorf("%w: count %d", ErrOutOfRange, count))
		return 0
	}
	m.eig = m.solve(count, maxIter, tol, upper)
	if s, ok := m.g.State(extEigensolver).(*solverStats); ok {
		s.solves.Add(1)
	}
	m.g.Logger().Debug("eigensolve done", "requested", count, "converged", len(m.eig.values), "upper", upper)

	return len(m.eig.values)
}

// Eigenpair returns the i-th pair of the last SparseEigen: largest first
// for an upper solve, smallest first otherwise. The vector is laid out like
// the matrix rows.
func (m *Matrix) Eigenpair(i int) (float64, *Vector) {
	if m.eig == nil || i < 0 || i >= len(m.eig.values) {
		fault.Fatal(opEigenpair, fault.StatusGeneric, fmt.Errorf("%w: index %d", ErrNoSolution, i))
		return 0, nil
	}
	v := &Vector{g: m.g, n: m.rows, first: m.first, last: m.last, st: built}
	v.local = append([]float64(nil), m.eig.vectors[i]...)

	return m.eig.values[i], v
}
