// SPDX-License-Identifier: MIT

//go:build replicated

package dist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/group"
)

func TestReplicated_FullSpectrum(t *testing.T) {
	const n = 6
	values := make([][]float64, 2)
	runRanks(t, 2, func(g *group.Group) error {
		a := laplacian(g, n)
		nconv := a.SparseEigen(1, 0, 0, false)
		for i := range nconv {
			lambda, _ := a.Eigenpair(i)
			values[g.Rank()] = append(values[g.Rank()], lambda)
		}
		first, last := a.OwnershipRange()
		if first != 0 || last != n {
			t.Errorf("rank %d owns [%d,%d)", g.Rank(), first, last)
		}
		return nil
	})
	require.Len(t, values[0], n)
	for k := range n {
		require.InDelta(t, laplacianEigen(n, k+1), values[0][k], 1e-10)
	}
	require.Equal(t, values[0], values[1])
}
