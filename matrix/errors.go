// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Checked entry points (NewDense, At, validators) return them; the
// unchecked surface (Alloc, Get/Set under boundcheck, Invert, Load) hands them
// to the fatal handler in internal/fault, which reports and terminates.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with matrixErrorf(op, ErrX) at the boundary;
// callers still match with errors.Is.

var (
	// ErrBadShape is returned when requested shape is invalid (r<=0 or c<=0,
	// or r*c overflowing int).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Multiply where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where a finite one is required
	// (tolerances, persisted headers).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrEigenFailed indicates that the symmetric eigensolver did not converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrSingular is returned when a zero pivot is met during factorization.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrShortRead marks a persisted matrix whose payload ended early.
	ErrShortRead = errors.New("matrix: short read")

	// ErrBadHeader marks a persisted header that cannot describe a matrix.
	ErrBadHeader = errors.New("matrix: malformed header")

	// ErrReshapeUnsupported is raised by backends that pin host memory.
	ErrReshapeUnsupported = errors.New("matrix: reshape not supported by backend")
)

// statusError carries a backend status code (LAPACK-style info) so the fatal
// handler can report it. It satisfies fault.Statuser.
type statusError struct {
	op   string
	code int
	err  error
}

func (e *statusError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (e *statusError) Unwrap() error { return e.err }

// Status returns the backend status code.
func (e *statusError) Status() int { return e.code }

// backendStatus wraps err with the backend routine name and its status code.
func backendStatus(op string, code int, err error) error {
	return &statusError{op: op, code: code, err: err}
}
