// SPDX-License-Identifier: MIT

// Package matrix provides an opaque row-major dense matrix whose algebra is
// dispatched to exactly one numerical backend chosen at build time.
//
// The package offers:
//
//   - Dense: flat row-major storage (offset = row*cols + col) with O(1)
//     Get/Set, addressed helpers (rows, columns, blocks, diagonal) and
//     whole-buffer kernels that can split across goroutines per instance.
//   - Multiply (C = αAB + βC), SymmEigen (ascending eigenvalues, optional
//     in-place eigenvectors) and Invert (in place), routed to the Backend.
//   - Save/Load in a headered binary format and ReadText/WriteText for
//     whitespace-separated text tables.
//
// Backends (build tags):
//
//	(none)   reference: pure Go (Jacobi, pivoted LU, i-k-j GEMM)
//	gonum    vendor: gonum.org/v1/gonum blas64 + lapack64
//	gpu      column-major device staging; eigenvectors come back as rows
//
// Failure model: the numeric surface never returns errors. Invalid shapes,
// backend failures, short reads of persisted data and (with -tags boundcheck)
// out-of-range indices are reported through internal/fault and terminate the
// process. NewDense, At, Mul, Eigen, Inverse and ReadBinary are the checked
// counterparts that return sentinel errors instead.
//
// Binary operations between matrices of different lengths (Add, Sub, Copy)
// work over the shorter length without complaint.
package matrix
