// SPDX-License-Identifier: MIT

//go:build !gonum && !gpu

// Package matrix - reference backend (pure Go, no external numeric library).
//
// Purpose:
//   - Serve as the default backend and the behavioral baseline for the others.
//   - Gemm: i-k-j loop order over row-major buffers.
//   - Syev: cyclic Jacobi rotations with eigenvector accumulation, then an
//     ascending sort of the eigenpairs.
//   - Invert: LU with partial pivoting, then n triangular solves.
//
// Failure policy:
//   - Non-convergence of Jacobi is logged and the current approximation is
//     returned; the caller continues.
//   - A zero pivot cannot be worked around and is reported with the LAPACK-style
//     status (1-based pivot index).

package matrix

import (
	"math"
	"sort"
)

// Jacobi sweep controls.
const (
	jacobiMaxSweeps = 100
	jacobiRelTol    = 1e-14
)

// Op names mirror the LAPACK routines the vendor backend calls.
const (
	refOpGemm   = "dgemm"
	refOpSyev   = "dsyev"
	refOpGetrf  = "dgetrf"
	refBackName = "reference (pure Go)"
)

type referenceBackend struct{}

var activeBackend Backend = referenceBackend{}

func (referenceBackend) Name() string             { return refBackName }
func (referenceBackend) EigenvectorsInRows() bool { return false }
func (referenceBackend) Reshapable() bool         { return true }

// Gemm computes c = alpha*a*b + beta*c.
//
// Implementation:
//   - Stage 1: scale c by beta (beta == 0 clears c so NaNs in c do not leak).
//   - Stage 2: accumulate alpha*a[i,p]*b[p,:] into c[i,:] (i-k-j order).
//
// Complexity:
//   - Time O(m*n*k), Space O(1).
func (referenceBackend) Gemm(m, n, k int, alpha float64, a, b []float64, beta float64, c []float64) error {
	var i, j, p int
	switch beta {
	case 0:
		clear(c[:m*n])
	case 1:
	default:
		for i = 0; i < m*n; i++ {
			c[i] *= beta
		}
	}
	if alpha == 0 {
		return nil
	}

	var aip float64
	for i = 0; i < m; i++ {
		ci := c[i*n : (i+1)*n]
		for p = 0; p < k; p++ {
			aip = alpha * a[i*k+p]
			if aip == 0 {
				continue
			}
			bp := b[p*n : (p+1)*n]
			for j = 0; j < n; j++ {
				ci[j] += aip * bp[j]
			}
		}
	}

	return nil
}

// Syev diagonalizes the symmetric a with cyclic Jacobi rotations.
//
// Implementation:
//   - Stage 1: q = I; sweep all (p,q) pairs of the upper triangle, rotating
//     away a[p,q] (rotation parameters as in the classic Jacobi method).
//   - Stage 2: stop when the off-diagonal Frobenius norm drops below
//     jacobiRelTol times the full norm, or after jacobiMaxSweeps (logged).
//   - Stage 3: sort eigenvalues ascending, permute the columns of q to match,
//     and copy q into a when vectors were requested.
//
// Complexity:
//   - Time O(n^3) per sweep, Space O(n^2) for q.
func (referenceBackend) Syev(job Job, n int, a, w []float64) error {
	qm := make([]float64, n*n)
	for i := 0; i < n; i++ {
		qm[i*n+i] = 1
	}

	var (
		i, p, q, sweep     int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
		off, total         float64
	)
	for sweep = 0; sweep < jacobiMaxSweeps; sweep++ {
		off, total = 0, 0
		for i = 0; i < n*n; i++ {
			total += a[i] * a[i]
		}
		for p = 0; p < n; p++ {
			for q = p + 1; q < n; q++ {
				off += 2 * a[p*n+q] * a[p*n+q]
			}
		}
		if off <= jacobiRelTol*jacobiRelTol*total {
			break
		}

		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = a[p*n+q]
				if apq == 0 {
					continue
				}
				app, aqq = a[p*n+p], a[q*n+q]
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == q {
						continue
					}
					aip, aiq = a[i*n+p], a[i*n+q]
					a[i*n+p], a[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
					a[i*n+q], a[q*n+i] = s*aip+c*aiq, s*aip+c*aiq
				}
				a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
				a[p*n+q], a[q*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip, qiq = qm[i*n+p], qm[i*n+q]
					qm[i*n+p] = c*qip - s*qiq
					qm[i*n+q] = s*qip + c*qiq
				}
			}
		}
	}
	if sweep == jacobiMaxSweeps {
		backendLogger().Warn("jacobi did not converge, continuing with current approximation",
			"op", refOpSyev, "n", n, "sweeps", sweep, "offdiag", math.Sqrt(off))
	}

	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = i
		w[i] = a[i*n+i]
	}
	sort.SliceStable(order, func(x, y int) bool { return w[order[x]] < w[order[y]] })
	vals := make([]float64, n)
	for i = 0; i < n; i++ {
		vals[i] = w[order[i]]
	}
	copy(w, vals)

	if job == JobVectors {
		for i = 0; i < n; i++ {
			for p = 0; p < n; p++ {
				a[i*n+p] = qm[i*n+order[p]]
			}
		}
	}

	return nil
}

// Invert replaces a with its inverse using LU with partial pivoting.
//
// Implementation:
//   - Stage 1: in-place Doolittle LU with row swaps recorded in piv.
//   - Stage 2: for each unit column e_col (permuted), forward solve L*y = P*e_col
//     then backward solve U*x = y, writing x into column col of the result.
//
// Errors:
//   - ErrSingular with status = 1-based index of the zero pivot.
//
// Complexity:
//   - Time O(n^3), Space O(n^2) for the factor copy.
func (referenceBackend) Invert(n int, a []float64) error {
	lu := make([]float64, n*n)
	copy(lu, a)
	piv := make([]int, n)

	var (
		i, j, k, col int
		pivot, sum   float64
	)
	for k = 0; k < n; k++ {
		// choose the largest |lu[i,k]| for i >= k
		piv[k] = k
		best := math.Abs(lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(lu[i*n+k]); v > best {
				best, piv[k] = v, i
			}
		}
		if best == 0 {
			return backendStatus(refOpGetrf, k+1, ErrSingular)
		}
		if piv[k] != k {
			rk, rp := lu[k*n:(k+1)*n], lu[piv[k]*n:(piv[k]+1)*n]
			for j = 0; j < n; j++ {
				rk[j], rp[j] = rp[j], rk[j]
			}
		}
		pivot = lu[k*n+k]
		for i = k + 1; i < n; i++ {
			lu[i*n+k] /= pivot
			l := lu[i*n+k]
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				lu[i*n+j] -= l * lu[k*n+j]
			}
		}
	}

	// perm[i] is the original row that ended up at position i
	perm := make([]int, n)
	for i = 0; i < n; i++ {
		perm[i] = i
	}
	for k = 0; k < n; k++ {
		perm[k], perm[piv[k]] = perm[piv[k]], perm[k]
	}

	y := make([]float64, n)
	x := make([]float64, n)
	for col = 0; col < n; col++ {
		for i = 0; i < n; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += lu[i*n+k] * y[k]
			}
			if perm[i] == col {
				y[i] = 1 - sum
			} else {
				y[i] = -sum
			}
		}
		for i = n - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < n; k++ {
				sum += lu[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / lu[i*n+i]
		}
		for i = 0; i < n; i++ {
			a[i*n+col] = x[i]
		}
	}

	return nil
}
