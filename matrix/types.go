// SPDX-License-Identifier: MIT

// Package matrix: public types shared by the dense surface and the backends.
// Errors and options live in dedicated files (errors.go, options.go).
package matrix

// Matrix is the read-only checked view used by validators and by callers
// that want error returns instead of fatal termination.
//
// Complexity notes: all methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)
}

// Job selects what SymmEigen computes.
type Job byte

const (
	// JobValues computes eigenvalues only; the input keeps backend scratch.
	JobValues Job = 'n'

	// JobVectors computes eigenvalues and overwrites the input with eigenvectors.
	JobVectors Job = 'v'
)

// String returns the single-letter LAPACK job code.
func (j Job) String() string { return string(rune(j)) }
