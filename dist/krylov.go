// SPDX-License-Identifier: MIT

//go:build !replicated

package dist

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlinalg/group"
	"github.com/katalvlaran/lvlinalg/internal/fault"
)

const (
	defaultTol     = 1e-8
	defaultMinIter = 100

	// breakdownTol bounds ‖w‖/‖A·v‖ below which the Krylov space is taken
	// to be invariant.
	breakdownTol = 1e-10

	golden = 0x9e3779b97f4a7c15
)

// lanczos is a thick-restart Lanczos iteration over the rows a rank owns.
//
// Invariant after expand: A·V[0:m] = V[0:m]·T + beta·V[m]·e_mᵀ, with
// V orthonormal (global inner products) and T symmetric. After a restart
// the leading block of T is diagonal (kept Ritz values) and the row/column
// of the first new vector carries the couplings, which expand recomputes.
type lanczos struct {
	g     *group.Group
	a     store
	first int
	m     int
	basis [][]float64 // m+1 local parts
	t     []float64   // m×m, row-major
	beta  float64
}

func newLanczos(g *group.Group, a store, first, last, m int) *lanczos {
	l := &lanczos{g: g, a: a, first: first, m: m, t: make([]float64, m*m)}
	l.basis = make([][]float64, m+1)
	for i := range l.basis {
		l.basis[i] = make([]float64, last-first)
	}

	return l
}

// noise is a splitmix64 value in [-0.5, 0.5) keyed by the global index,
// so a vector built from it does not depend on the rank layout.
func noise(i int, salt uint64) float64 {
	z := uint64(i) + salt
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31

	return float64(z>>11)/(1<<53) - 0.5
}

func (l *lanczos) norm(x []float64) float64 {
	s := []float64{floats.Dot(x, x)}
	l.g.AllReduceSum(s)

	return math.Sqrt(s[0])
}

// apply computes the local rows of A·x.
func (l *lanczos) apply(x, y []float64) {
	l.a.mulLocal(l.g.AllGatherFloat64(x), y)
}

// orthogonalize removes from w its components along basis[0:k], using two
// passes of classical Gram-Schmidt. It returns the accumulated
// coefficients, the norm of w on entry and the norm of the result.
func (l *lanczos) orthogonalize(w []float64, k int) (h []float64, before, after float64) {
	h = make([]float64, k)
	for pass := range 2 {
		c := make([]float64, k+1)
		for i := range k {
			c[i] = floats.Dot(l.basis[i], w)
		}
		if pass == 0 {
			c[k] = floats.Dot(w, w)
		}
		l.g.AllReduceSum(c)
		if pass == 0 {
			before = math.Sqrt(c[k])
		}
		for i := range k {
			floats.AddScaled(w, -c[i], l.basis[i])
			h[i] += c[i]
		}
	}

	return h, before, l.norm(w)
}

// fill sets x to a unit vector orthogonal to basis[0:k].
func (l *lanczos) fill(x []float64, k int) {
	salt := uint64(k+1) * golden
	for i := range x {
		x[i] = noise(l.first+i, salt)
	}
	_, _, nrm := l.orthogonalize(x, k)
	if nrm > 0 {
		floats.Scale(1/nrm, x)
	}
}

// expand extends the basis from column from to m.
func (l *lanczos) expand(from int) {
	m := l.m
	for j := from; j < m; j++ {
		w := l.basis[j+1]
		l.apply(l.basis[j], w)
		h, before, beta := l.orthogonalize(w, j+1)
		for i, hi := range h {
			l.t[i*m+j] = hi
			l.t[j*m+i] = hi
		}
		if beta > breakdownTol*before {
			floats.Scale(1/beta, w)
			l.beta = beta
			continue
		}
		// Invariant subspace: the coupling is zero and the basis continues
		// from a fresh direction.
		l.beta = 0
		if j+1 < m {
			l.fill(w, j+1)
		} else {
			clear(w)
		}
	}
}

// ritz diagonalizes T. Values are ascending; column i of y is the
// eigenvector of values[i].
func (l *lanczos) ritz() ([]float64, *mat.Dense) {
	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(l.m, slices.Clone(l.t)), true) {
		fault.Fatal(opEigen, fault.StatusGeneric, fmt.Errorf("%w: order %d", ErrSolverFailed, l.m))
		return nil, nil
	}
	var y mat.Dense
	es.VectorsTo(&y)

	return es.Values(nil), &y
}

// converged counts the leading pairs of order whose residual
// |beta·y[m-1,i]| is within tol relative to |theta|.
func (l *lanczos) converged(theta []float64, y *mat.Dense, order []int, tol float64) int {
	n := 0
	for _, i := range order {
		scale := math.Abs(theta[i])
		if scale == 0 {
			scale = 1
		}
		if math.Abs(l.beta*y.At(l.m-1, i)) > tol*scale {
			break
		}
		n++
	}

	return n
}

// combine returns the local part of V[0:m]·y[:, i].
func (l *lanczos) combine(y *mat.Dense, i int) []float64 {
	out := make([]float64, len(l.basis[0]))
	for j := range l.m {
		floats.AddScaled(out, y.At(j, i), l.basis[j])
	}

	return out
}

// restart keeps the Ritz vectors of sel and the residual direction.
func (l *lanczos) restart(theta []float64, y *mat.Dense, sel []int) {
	k := len(sel)
	kept := make([][]float64, k)
	for c, i := range sel {
		kept[c] = l.combine(y, i)
	}
	resid := l.basis[l.m]
	copy(l.basis, kept)
	l.basis[k] = resid
	for j := k + 1; j <= l.m; j++ {
		l.basis[j] = make([]float64, len(resid))
	}
	clear(l.t)
	for c, i := range sel {
		l.t[c*l.m+c] = theta[i]
	}
}

// wanted lists Ritz indices from the wanted end of the spectrum.
func wanted(m int, upper bool) []int {
	order := make([]int, m)
	for k := range order {
		order[k] = k
		if upper {
			order[k] = m - 1 - k
		}
	}

	return order
}

// solve runs thick-restart Lanczos for count eigenpairs. It stops when count
// pairs from the wanted end have converged or after maxIter restarts, and
// returns every consecutive converged pair from that end.
func (m *Matrix) solve(count, maxIter int, tol float64, upper bool) *eigenResult {
	n := m.rows
	nev := min(count, n)
	ncv := min(2*nev+10, n)
	if tol <= 0 {
		tol = defaultTol
	}
	if maxIter <= 0 {
		maxIter = max(defaultMinIter, 2*n/ncv)
	}

	l := newLanczos(m.g, m.store, m.first, m.last, ncv)
	l.fill(l.basis[0], 0)

	var (
		theta []float64
		y     *mat.Dense
		order []int
		nconv int
	)
	for iter, from := 1, 0; ; iter++ {
		l.expand(from)
		theta, y = l.ritz()
		order = wanted(ncv, upper)
		nconv = l.converged(theta, y, order, tol)
		if nconv >= nev || iter >= maxIter {
			break
		}
		from = nev + (ncv-nev)/2
		l.restart(theta, y, order[:from])
		if s, ok := m.g.State(extEigensolver).(*solverStats); ok {
			s.restarts.Add(1)
		}
	}

	res := &eigenResult{values: make([]float64, nconv), vectors: make([][]float64, nconv)}
	for k, i := range order[:nconv] {
		res.values[k] = theta[i]
		res.vectors[k] = l.combine(y, i)
	}

	return res
}
