// SPDX-License-Identifier: MIT

// Package matrix - backend dispatch.
//
// Exactly one Backend is compiled in, selected by build tag:
//
//	(no tag)   reference: pure-Go kernels            backend_reference.go
//	-tags gonum  vendor:  gonum BLAS/LAPACK          backend_gonum.go
//	-tags gpu    gpu:     device-layout staging      backend_gpu.go
//
// All three share one contract: IEEE double precision on row-major buffers.
// A backend whose native layout is column-major translates on the way in and
// out; the one place that leaks is eigenvector orientation, reported by
// EigenvectorsInRows and consumed only by Eigenvector.

package matrix

import "log/slog"

// Backend is the capability set every linked numerical library provides.
type Backend interface {
	// Name identifies the linked library for diagnostics.
	Name() string

	// Gemm computes c = alpha*a*b + beta*c for row-major a (m×k), b (k×n), c (m×n).
	Gemm(m, n, k int, alpha float64, a, b []float64, beta float64, c []float64) error

	// Syev writes ascending eigenvalues of the symmetric n×n a into w. With
	// JobVectors, a is overwritten with the eigenvectors.
	Syev(job Job, n int, a, w []float64) error

	// Invert replaces the n×n a with its inverse.
	Invert(n int, a []float64) error

	// EigenvectorsInRows reports that Syev leaves eigenvector k in row k
	// instead of column k.
	EigenvectorsInRows() bool

	// Reshapable reports whether host storage may be reallocated.
	Reshapable() bool
}

// CurrentBackend returns the backend linked into this build.
func CurrentBackend() Backend { return activeBackend }

// EigenvectorsInRows reports the transpose-on-read convention of the linked
// backend. Prefer Eigenvector, which applies it.
func EigenvectorsInRows() bool { return activeBackend.EigenvectorsInRows() }

// backendLogger is the logger backends use for recoverable numerical issues.
func backendLogger() *slog.Logger {
	return slog.Default().With("component", "matrix", "backend", activeBackend.Name())
}
