// SPDX-License-Identifier: MIT
package partition_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/partition"
)

type fixed struct{ rank, size int }

func (f fixed) Rank() int { return f.rank }
func (f fixed) Size() int { return f.size }

func TestTasks_TenOverThree(t *testing.T) {
	want := []struct {
		first, last int
		extra       int
		hasExtra    bool
	}{
		{0, 2, 9, true},
		{3, 5, 0, false},
		{6, 8, 0, false},
	}
	for r, w := range want {
		p := partition.New(fixed{r, 3}, 10)
		require.Equal(t, 3, p.Chunk())
		require.Equal(t, w.first, p.First(), "rank %d", r)
		require.Equal(t, w.last, p.Last(), "rank %d", r)
		idx, ok := p.Extra()
		require.Equal(t, w.hasExtra, ok, "rank %d", r)
		require.Equal(t, w.extra, idx, "rank %d", r)
	}
}

func TestTasks_EvenSplitHasNoExtra(t *testing.T) {
	for r := 0; r < 4; r++ {
		p := partition.New(fixed{r, 4}, 12)
		_, ok := p.Extra()
		require.False(t, ok)
		require.Equal(t, 3, p.Count())
	}
}

func TestTasks_FewerTasksThanRanks(t *testing.T) {
	// chunk == 0: every regular block is empty, leftovers go to ranks 0..total-1.
	for r := 0; r < 5; r++ {
		p := partition.New(fixed{r, 5}, 3)
		require.Less(t, p.Last(), p.First())
		idx, ok := p.Extra()
		require.Equal(t, r < 3, ok, "rank %d", r)
		if ok {
			require.Equal(t, r, idx)
		}
	}

	// The legacy sentinel cannot tell "task 0" from "no task".
	require.Equal(t, 0, partition.New(fixed{0, 5}, 3).ExtraOrZero())
	require.Equal(t, 0, partition.New(fixed{4, 5}, 3).ExtraOrZero())
}

// Property: over all ranks, Each covers every task exactly once.
func TestTasks_EachCoversAllExactlyOnce(t *testing.T) {
	for size := 1; size <= 7; size++ {
		for total := 1; total <= 30; total++ {
			var seen []int
			count := 0
			for r := 0; r < size; r++ {
				p := partition.New(fixed{r, size}, total)
				p.Each(func(k int) { seen = append(seen, k) })
				count += p.Count()
			}
			sort.Ints(seen)
			require.Len(t, seen, total, "size=%d total=%d", size, total)
			require.Equal(t, total, count)
			for k, v := range seen {
				require.Equal(t, k, v, "size=%d total=%d", size, total)
			}
		}
	}
}

func TestNew_NonPositiveIsFatal(t *testing.T) {
	defer fault.SetHandler(fault.PanicHandler)()
	require.PanicsWithError(t, "partition.New: failed with status 1: partition: total must be > 0: got 0", func() {
		partition.New(fixed{0, 1}, 0)
	})
}
