// SPDX-License-Identifier: MIT
package dist_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/dist"
	"github.com/katalvlaran/lvlinalg/group"
	"github.com/katalvlaran/lvlinalg/internal/fault"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// runRanks runs fn on size in-process ranks and fails the test on the first
// rank error. Results should be stored per rank and checked afterwards.
func runRanks(t *testing.T, size int, fn func(g *group.Group) error) {
	t.Helper()
	require.NoError(t, group.RunLocal(size, fn, group.WithLogger(quietLogger())), "size=%d", size)
}

// single returns a one-rank group finalized with the test.
func single(t *testing.T) *group.Group {
	t.Helper()
	g := group.Init(nil, group.WithLogger(quietLogger()))
	t.Cleanup(func() { _ = g.Finalize() })

	return g
}

// expectFatal runs fn with a panicking fault handler and asserts a fatal
// report wrapping target.
func expectFatal(t *testing.T, target error, fn func()) {
	t.Helper()
	restore := fault.SetHandler(fault.PanicHandler)
	defer restore()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a fatal report")
		fe, ok := r.(*fault.Error)
		require.True(t, ok, "panic value %T is not *fault.Error", r)
		require.ErrorIs(t, fe, target)
	}()
	fn()
}

// laplacian assembles the n×n 1-D Laplacian tridiag(-1, 2, -1). Every rank
// issues every Set.
func laplacian(g *group.Group, n int) *dist.Matrix {
	a := dist.NewMatrix(g, n, n, dist.NonZeros{Diag: 3, Off: 2})
	for i := range n {
		a.Set(i, i, 2)
		if i > 0 {
			a.Set(i, i-1, -1)
		}
		if i < n-1 {
			a.Set(i, i+1, -1)
		}
	}
	a.Build()

	return a
}

// ramp builds the vector v[i] = i.
func ramp(g *group.Group, n int) *dist.Vector {
	v := dist.NewVector(g, n)
	for i := range n {
		v.Set(i, float64(i))
	}
	v.Build()

	return v
}
