// SPDX-License-Identifier: MIT
package group_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/group"
	"github.com/katalvlaran/lvlinalg/internal/fault"
)

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

// panicking installs the panicking fault handler for the whole test.
func panicking(t *testing.T) {
	t.Cleanup(fault.SetHandler(fault.PanicHandler))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestInit_SingleProcess(t *testing.T) {
	g := group.Init(nil, group.WithLogger(quietLogger()))
	require.Equal(t, 0, g.Rank())
	require.Equal(t, 1, g.Size())
	require.Equal(t, group.ThreadSerialized, g.ThreadLevel())
	g.Barrier() // no-op for one rank
	require.NoError(t, g.Finalize())
}

func TestInit_ConsumesLaunchFlags(t *testing.T) {
	g := group.Init([]string{"-group-transport=local", "input.dat", "-v", "-group-log-level", "debug"})
	defer g.Finalize()
	require.Equal(t, []string{"input.dat", "-v"}, g.Args())
}

func TestInit_BadConfigIsFatal(t *testing.T) {
	expectFatal(t, group.ErrBadConfig, func() {
		group.Init([]string{"-group-transport=pigeon"})
	})
}

func TestFinalize_GuardsUseAfterTeardown(t *testing.T) {
	g := group.Init(nil, group.WithLogger(quietLogger()))
	require.NoError(t, g.Finalize())

	expectFatal(t, group.ErrFinalized, func() { g.Finalize() })
	expectFatal(t, group.ErrFinalized, func() { g.Rank() })
	expectFatal(t, group.ErrFinalized, func() { g.Barrier() })
	expectFatal(t, group.ErrFinalized, func() { g.Send(0, group.Float64, []float64{1}) })
}

func TestAbout(t *testing.T) {
	g := group.Init(nil, group.WithLogger(quietLogger()))
	defer g.Finalize()
	var buf bytes.Buffer
	g.About(&buf)
	require.Contains(t, buf.String(), "# processes    = 1")
	require.Contains(t, buf.String(), "# thread level = serialized")
	require.Contains(t, buf.String(), "# transport    = local")
}

func TestRunLocal_RanksAndBarrier(t *testing.T) {
	const size = 4
	seen := make([]int, size)
	err := group.RunLocal(size, func(g *group.Group) error {
		require.Equal(t, size, g.Size())
		seen[g.Rank()]++
		g.Barrier()
		g.Barrier()
		return nil
	}, group.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Equal(t, []int{1, 1, 1, 1}, seen)
}

func TestRunLocal_ErrorCancelsBlockedRanks(t *testing.T) {
	panicking(t)
	boom := errors.New("boom")
	err := group.RunLocal(3, func(g *group.Group) error {
		if g.Rank() == 1 {
			return boom
		}
		g.Barrier() // never completes: rank 1 is gone
		return nil
	}, group.WithLogger(quietLogger()))
	require.Error(t, err)
}
