// SPDX-License-Identifier: MIT

//go:build gpu

// Package matrix - GPU-layout backend.
//
// Purpose:
//   - Reproduce the data movement contract of a column-major accelerator
//     library: host row-major buffers are staged into column-major device
//     buffers, kernels run on the device layout, results are copied back.
//   - Gemm and Invert translate back to row-major on download.
//   - Syev downloads the eigenvector buffer raw, so eigenvector k lands in
//     host row k (EigenvectorsInRows == true).
//
// The kernels are gonum's LAPACK/BLAS run on a transposed row-major view of
// the column-major buffer (a col-major M is the row-major Mᵀ).
//
// Host memory is treated as pinned: Reshape is refused.

package matrix

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
)

const (
	gpuName    = "gpu (column-major device staging, gonum kernels)"
	gpuOpSyev  = "dsyevd_gpu"
	gpuOpGetrf = "dgetrf_gpu"
	gpuOpGetri = "dgetri_gpu"
	gpuQuery   = -1
)

// deviceBuffer is a column-major rows×cols buffer.
type deviceBuffer struct {
	rows, cols int
	data       []float64
}

// upload stages a row-major host buffer into column-major device memory.
func upload(rows, cols int, host []float64) deviceBuffer {
	d := deviceBuffer{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d.data[j*rows+i] = host[i*cols+j]
		}
	}

	return d
}

// download copies back translating to row-major.
func (d deviceBuffer) download(host []float64) {
	for i := 0; i < d.rows; i++ {
		for j := 0; j < d.cols; j++ {
			host[i*d.cols+j] = d.data[j*d.rows+i]
		}
	}
}

// downloadRaw copies the column-major bytes verbatim.
func (d deviceBuffer) downloadRaw(host []float64) { copy(host, d.data) }

// transposedView is the row-major view of the stored matrix's transpose.
func (d deviceBuffer) transposedView() blas64.General {
	return blas64.General{Rows: d.cols, Cols: d.rows, Stride: d.rows, Data: d.data}
}

type gpuBackend struct{}

var activeBackend Backend = gpuBackend{}

func (gpuBackend) Name() string             { return gpuName }
func (gpuBackend) EigenvectorsInRows() bool { return true }
func (gpuBackend) Reshapable() bool         { return false }

// Gemm: on the device, Cᵀ = alpha*Bᵀ*Aᵀ + beta*Cᵀ is the row-major view of
// the column-major C = alpha*A*B + beta*C.
func (gpuBackend) Gemm(m, n, k int, alpha float64, a, b []float64, beta float64, c []float64) error {
	da, db, dc := upload(m, k, a), upload(k, n, b), upload(m, n, c)
	blas64.Gemm(blas.NoTrans, blas.NoTrans, alpha, db.transposedView(), da.transposedView(), beta, dc.transposedView())
	dc.download(c)

	return nil
}

// Syev diagonalizes on the device and downloads eigenvectors raw (rows on host).
func (gpuBackend) Syev(job Job, n int, a, w []float64) error {
	da := upload(n, n, a)
	view := da.transposedView()
	sym := blas64.Symmetric{Uplo: blas.Upper, N: n, Stride: n, Data: view.Data}
	jobz := lapack.EVNone
	if job == JobVectors {
		jobz = lapack.EVCompute
	}

	query := make([]float64, 1)
	lapack64.Syev(jobz, sym, w, query, gpuQuery)
	work := make([]float64, max(1, 3*n-1, int(query[0])))
	if ok := lapack64.Syev(jobz, sym, w, work, len(work)); !ok {
		return backendStatus(gpuOpSyev, 1, ErrEigenFailed)
	}
	if job != JobVectors {
		return nil
	}
	// kernel output is row-major V in the view; store V column-major on the device
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			da.data[i*n+j], da.data[j*n+i] = da.data[j*n+i], da.data[i*n+j]
		}
	}
	da.downloadRaw(a)

	return nil
}

// Invert: inverting the transposed view yields (A⁻¹)ᵀ row-major, which is
// A⁻¹ column-major; download translates back.
func (gpuBackend) Invert(n int, a []float64) error {
	da := upload(n, n, a)
	view := da.transposedView()
	ipiv := make([]int, n)
	if ok := lapack64.Getrf(view, ipiv); !ok {
		return backendStatus(gpuOpGetrf, 1, ErrSingular)
	}

	query := make([]float64, 1)
	lapack64.Getri(view, ipiv, query, gpuQuery)
	work := make([]float64, max(n, int(query[0])))
	if ok := lapack64.Getri(view, ipiv, work, len(work)); !ok {
		return backendStatus(gpuOpGetri, 1, ErrSingular)
	}
	da.download(a)

	return nil
}
