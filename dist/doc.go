// SPDX-License-Identifier: MIT

// Package dist provides a row-partitioned matrix and vector over a
// group.Group, a symmetric eigensolver for a few extreme eigenpairs and a
// collective binary writer for vector ranges.
//
// Each rank owns a contiguous block of rows: with n rows over size ranks,
// the first n%size ranks hold one row more. Set with a global index is
// accepted anywhere and ignored on ranks that do not own the row, so all
// ranks can run the same assembly loop:
//
//	a := dist.NewMatrix(g, n, n, dist.NonZeros{Diag: 3})
//	for i := range n {
//		a.Set(i, i, 2)
//		if i > 0 {
//			a.Set(i, i-1, -1)
//		}
//		if i < n-1 {
//			a.Set(i, i+1, -1)
//		}
//	}
//	a.Build()
//	nconv := a.SparseEigen(4, 0, 0, true)
//
// Backends (build tags):
//
//	(none)      sparse: CSR rows per rank, thick-restart Lanczos solver
//	replicated  every rank keeps a full matrix.Dense; the solver is the
//	            dense matrix.SymmEigen and returns all eigenpairs
//
// NewMatrix, NewVector, Build, MulVec, Gather, SparseEigen and Write are
// collective: every rank must call them in the same order. Reading before
// Build, out-of-range columns and bad shapes are fatal through
// internal/fault.
//
// The sparse backend registers two group extensions, "algebra" (which opens
// and later closes the transport) and "eigensolver"; they only count
// objects and solves for the debug log.
package dist
