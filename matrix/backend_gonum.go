// SPDX-License-Identifier: MIT

//go:build gonum && !gpu

// Package matrix - vendor backend on gonum's BLAS and LAPACK.
//
// gonum's lapack64/blas64 work on row-major General/Symmetric views, so the
// Dense buffer is handed over without translation. Every non-ok status is
// returned as a statusError and becomes fatal at the call site.

package matrix

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
)

const (
	vendorName    = "vendor (gonum blas64/lapack64)"
	vendorOpSyev  = "dsyev"
	vendorOpGetrf = "dgetrf"
	vendorOpGetri = "dgetri"
	workQuery     = -1
)

type gonumBackend struct{}

var activeBackend Backend = gonumBackend{}

func (gonumBackend) Name() string             { return vendorName }
func (gonumBackend) EigenvectorsInRows() bool { return false }
func (gonumBackend) Reshapable() bool         { return true }

func general(rows, cols int, data []float64) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}

// Gemm delegates to blas64.Gemm (no transposes).
func (gonumBackend) Gemm(m, n, k int, alpha float64, a, b []float64, beta float64, c []float64) error {
	blas64.Gemm(blas.NoTrans, blas.NoTrans, alpha, general(m, k, a), general(k, n, b), beta, general(m, n, c))

	return nil
}

// Syev runs a workspace query, then lapack64.Syev on the lower triangle.
func (gonumBackend) Syev(job Job, n int, a, w []float64) error {
	jobz := lapack.EVNone
	if job == JobVectors {
		jobz = lapack.EVCompute
	}
	sym := blas64.Symmetric{Uplo: blas.Lower, N: n, Stride: n, Data: a}

	query := make([]float64, 1)
	lapack64.Syev(jobz, sym, w, query, workQuery)
	work := make([]float64, max(1, 3*n-1, int(query[0])))
	if ok := lapack64.Syev(jobz, sym, w, work, len(work)); !ok {
		return backendStatus(vendorOpSyev, 1, ErrEigenFailed)
	}

	return nil
}

// Invert runs lapack64.Getrf then lapack64.Getri.
func (gonumBackend) Invert(n int, a []float64) error {
	g := general(n, n, a)
	ipiv := make([]int, n)
	if ok := lapack64.Getrf(g, ipiv); !ok {
		return backendStatus(vendorOpGetrf, 1, ErrSingular)
	}

	query := make([]float64, 1)
	lapack64.Getri(g, ipiv, query, workQuery)
	work := make([]float64, max(n, int(query[0])))
	if ok := lapack64.Getri(g, ipiv, work, len(work)); !ok {
		return backendStatus(vendorOpGetri, 1, ErrSingular)
	}

	return nil
}
