// SPDX-License-Identifier: MIT

// Package partition maps N independent tasks onto the ranks of a group.
//
// With chunk = N / size, rank r owns the regular block
// [r*chunk, r*chunk+chunk-1]. The N mod size leftover tasks, which sit
// right after the regular grid, go one per rank starting at rank 0.
//
//	N = 10, size = 3:  rank 0 → 0..2 + 9,  rank 1 → 3..5,  rank 2 → 6..8
//
// Every rank computes the same mapping independently; no messages are
// exchanged.
package partition

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlinalg/internal/fault"
)

// ErrNoTasks is fatal: a partition needs at least one task.
var ErrNoTasks = errors.New("partition: total must be > 0")

// RankSizer is the part of a process group the partitioner needs.
type RankSizer interface {
	Rank() int
	Size() int
}

// Tasks is the partition of total tasks as seen from one rank.
type Tasks struct {
	rank, size    int
	total         int
	chunk         int
	lastRankIndex int // last regular task of the last rank
	extra         int // leftover tasks after the regular grid
}

// New partitions total tasks over g. total <= 0 is fatal.
//
// Complexity: O(1).
func New(g RankSizer, total int) *Tasks {
	if total <= 0 {
		fault.Fatal("partition.New", fault.StatusGeneric, fmt.Errorf("%w: got %d", ErrNoTasks, total))
		return nil
	}
	size := g.Size()
	chunk := total / size
	last := (size-1)*chunk + (chunk - 1)

	return &Tasks{
		rank:          g.Rank(),
		size:          size,
		total:         total,
		chunk:         chunk,
		lastRankIndex: last,
		extra:         (total - 1) - last,
	}
}

// Total returns the number of tasks partitioned.
func (t *Tasks) Total() int { return t.total }

// Chunk returns total / size, the length of every regular block.
func (t *Tasks) Chunk() int { return t.chunk }

// First returns the first task of this rank's regular block.
func (t *Tasks) First() int { return t.rank * t.chunk }

// Last returns the last task of this rank's regular block. When
// total < size the block is empty and Last() == First()-1.
func (t *Tasks) Last() int { return t.rank*t.chunk + t.chunk - 1 }

// Extra returns this rank's leftover task, if it has one.
func (t *Tasks) Extra() (int, bool) {
	if t.extra <= 0 {
		return 0, false
	}
	idx := t.lastRankIndex + t.rank + 1
	if idx >= t.total {
		return 0, false
	}

	return idx, true
}

// ExtraOrZero returns the leftover task index or 0 when there is none.
// 0 is also a valid task index (total < size on rank 0); prefer Extra.
func (t *Tasks) ExtraOrZero() int {
	idx, _ := t.Extra()

	return idx
}

// Count returns how many tasks this rank owns, the extra one included.
func (t *Tasks) Count() int {
	n := t.chunk
	if _, ok := t.Extra(); ok {
		n++
	}

	return n
}

// Each calls fn for every task this rank owns: the regular block in
// ascending order, then the extra task.
func (t *Tasks) Each(fn func(task int)) {
	for k := t.First(); k <= t.Last(); k++ {
		fn(k)
	}
	if idx, ok := t.Extra(); ok {
		fn(idx)
	}
}
