// SPDX-License-Identifier: MIT

// Package matrix - backend-dispatched algebra.
//
// Two surfaces over the same linked Backend:
//   - numeric (Multiply, SymmEigen, Invert): in place, shapes are the caller's
//     contract, any backend failure is fatal with the routine name and status.
//   - checked (Mul, Eigen, Inverse): validate inputs, allocate results and
//     return wrapped sentinels; nothing terminates the process.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/lvlinalg/internal/fault"
)

// Operation tags for error wrapping and fatal reports.
const (
	opMultiply = "matrix.Multiply"
	opEigen    = "matrix.SymmEigen"
	opInvert   = "matrix.Invert"
	opMul      = "Mul"
	opEigenChk = "Eigen"
	opInverse  = "Inverse"
)

// matrixErrorf wraps err with a stable operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Multiply computes c = alpha*a*b + beta*c through the linked backend's GEMM.
//
// Implementation:
//   - Stage 1: read m=a.Rows, k=a.Cols, n=b.Cols.
//   - Stage 2: Backend.Gemm on the flat buffers; failure is fatal.
//
// Behavior highlights:
//   - No shape validation (use ValidateGemm when shapes are untrusted).
//
// Complexity:
//   - Time O(m*n*k) for the reference backend.
func Multiply(alpha float64, a, b *Dense, beta float64, c *Dense) {
	err := activeBackend.Gemm(a.r, b.c, a.c, alpha, a.data, b.data, beta, c.data)
	fault.Check(opMultiply, err)
}

// SymmEigen returns the ascending eigenvalues of the symmetric m.
//
// Implementation:
//   - Stage 1: allocate the eigenvalue slice (len = m.Rows()).
//   - Stage 2: Backend.Syev in place; failure is fatal.
//
// Behavior highlights:
//   - job == JobVectors overwrites m with eigenvectors, as columns, or as rows
//     when EigenvectorsInRows() is true. Read them with Eigenvector.
//   - job == JobValues leaves m in an unspecified state.
//
// Complexity:
//   - Time O(n^3), Space O(n) plus backend workspace.
func SymmEigen(m *Dense, job Job) []float64 {
	w := make([]float64, m.r)
	fault.Check(opEigen, activeBackend.Syev(job, m.r, m.data, w))

	return w
}

// Eigenvector returns eigenvector k from the matrix produced by
// SymmEigen(m, JobVectors), applying the backend's transpose-on-read flag.
func Eigenvector(vectors *Dense, k int) []float64 {
	if activeBackend.EigenvectorsInRows() {
		return vectors.RawRow(k)
	}

	return vectors.RawCol(k)
}

// Invert replaces m with its inverse; a backend failure is fatal.
//
// Complexity:
//   - Time O(n^3), Space O(n^2) backend workspace.
func Invert(m *Dense) {
	fault.Check(opInvert, activeBackend.Invert(m.r, m.data))
}

// Mul returns a*b as a new matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (validation).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out := newDense(a.r, b.c, Options{workers: a.workers, minParallel: a.minParallel, eps: a.eps})
	if err := activeBackend.Gemm(a.r, b.c, a.c, 1, a.data, b.data, 0, out.data); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return out, nil
}

// Eigen returns the ascending eigenvalues and an eigenvector matrix of the
// symmetric m without modifying m. Eigenvectors are always returned as
// columns, whatever the backend's native orientation.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry (validation, eps from options).
//   - ErrEigenFailed (backend).
func Eigen(m *Dense) ([]float64, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigenChk, err)
	}
	if err := ValidateSymmetric(m, m.eps); err != nil {
		return nil, nil, matrixErrorf(opEigenChk, err)
	}
	v := m.Clone()
	w := make([]float64, m.r)
	if err := activeBackend.Syev(JobVectors, v.r, v.data, w); err != nil {
		return nil, nil, matrixErrorf(opEigenChk, err)
	}
	if activeBackend.EigenvectorsInRows() {
		transposeSquare(v)
	}

	return w, v, nil
}

// Inverse returns m⁻¹ as a new matrix; m is untouched.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (validation).
//   - ErrSingular (backend).
func Inverse(m *Dense) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv := m.Clone()
	if err := activeBackend.Invert(inv.r, inv.data); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return inv, nil
}

// Transpose returns mᵀ as a new matrix.
func Transpose(m *Dense) *Dense {
	out := Alloc(m.c, m.r, false)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// transposeSquare transposes a square matrix in place.
func transposeSquare(m *Dense) {
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.data[i*n+j], m.data[j*n+i] = m.data[j*n+i], m.data[i*n+j]
		}
	}
}
