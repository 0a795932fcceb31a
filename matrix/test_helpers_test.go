// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Turn fatal reports into recoverable panics so fatal paths are testable.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/matrix"
)

// tol is the default absolute tolerance for floating comparisons.
const tol = 1e-9

// MustDense builds a *Dense from rows or fails the test.
func MustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// fillDenseRand fills m deterministically from seed.
func fillDenseRand(m *matrix.Dense, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for n := 0; n < m.DataLen(); n++ {
		m.DataSet(n, rng.Float64()*2-1)
	}
}

// randomSPD returns a well-conditioned symmetric positive-definite n×n matrix
// (B·Bᵀ + n·I).
func randomSPD(n int, seed int64) *matrix.Dense {
	b := matrix.Alloc(n, n, true)
	fillDenseRand(b, seed)
	out := matrix.Alloc(n, n, true)
	matrix.Multiply(1, b, matrix.Transpose(b), 0, out)
	for i := 0; i < n; i++ {
		out.Incr(i, i, float64(n))
	}

	return out
}

// requireAllClose compares two matrices elementwise within atol.
func requireAllClose(t *testing.T, want, got *matrix.Dense, atol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			require.InDelta(t, want.Get(i, j), got.Get(i, j), atol, "(%d,%d)", i, j)
		}
	}
}

// expectFatal runs fn with a panicking fault handler and asserts a fatal
// report wrapping target (any report when target is nil).
func expectFatal(t *testing.T, target error, fn func()) {
	t.Helper()
	restore := fault.SetHandler(fault.PanicHandler)
	defer restore()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a fatal report")
		fe, ok := r.(*fault.Error)
		require.True(t, ok, "panic value %T is not *fault.Error", r)
		if target != nil {
			require.ErrorIs(t, fe, target)
		}
	}()
	fn()
}

// norm2 is the Euclidean norm.
func norm2(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}

	return math.Sqrt(s)
}

// dot is the inner product.
func dot(x, y []float64) float64 {
	var s float64
	for i := range x {
		s += x[i] * y[i]
	}

	return s
}
