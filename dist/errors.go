// SPDX-License-Identifier: MIT

package dist

import "errors"

var (
	// ErrBadShape is raised for non-positive dimensions.
	ErrBadShape = errors.New("dist: invalid shape")

	// ErrOutOfRange marks a column (or owned row) index outside the matrix.
	ErrOutOfRange = errors.New("dist: index out of range")

	// ErrNotBuilt is raised when a matrix or vector is read before Build.
	ErrNotBuilt = errors.New("dist: not built")

	// ErrNoSolution is raised by Eigenpair before a solve or past its count.
	ErrNoSolution = errors.New("dist: no such eigenpair")

	// ErrDimensionMismatch marks operands of incompatible length.
	ErrDimensionMismatch = errors.New("dist: dimension mismatch")

	// ErrSolverFailed is raised when the projected eigenproblem cannot be
	// diagonalized.
	ErrSolverFailed = errors.New("dist: projected eigenproblem failed")
)
