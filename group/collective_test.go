// SPDX-License-Identifier: MIT
package group_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/group"
)

func TestCollectives_ThreeRanks(t *testing.T) {
	err := group.RunLocal(3, func(g *group.Group) error {
		r := float64(g.Rank())

		x := []float64{r, 10 * r, 1}
		g.AllReduceSum(x)
		require.Equal(t, []float64{3, 30, 3}, x)

		// Uneven contributions: rank r sends r+1 values.
		local := make([]float64, g.Rank()+1)
		for i := range local {
			local[i] = r
		}
		all := g.AllGatherFloat64(local)
		require.Equal(t, []float64{0, 1, 1, 2, 2, 2}, all)

		got := g.GatherFloat64(2, local)
		if g.Rank() == 2 {
			require.Equal(t, []float64{0, 1, 1, 2, 2, 2}, got)
		} else {
			require.Nil(t, got)
		}

		buf := []float64{r, r}
		g.BroadcastFloat64(1, buf)
		require.Equal(t, []float64{1, 1}, buf)
		return nil
	}, group.WithLogger(quietLogger()))
	require.NoError(t, err)
}

func TestCollectives_SingleRankIsLocal(t *testing.T) {
	g := group.Init(nil, group.WithLogger(quietLogger()))
	defer g.Finalize()

	x := []float64{1, 2}
	g.AllReduceSum(x)
	require.Equal(t, []float64{1, 2}, x)
	require.Equal(t, []float64{5}, g.GatherFloat64(0, []float64{5}))
	require.Equal(t, []float64{5}, g.AllGatherFloat64([]float64{5}))
}
