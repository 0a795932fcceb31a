// SPDX-License-Identifier: MIT

//go:build !replicated

package dist

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/katalvlaran/lvlinalg/group"
)

// Backend names the storage backend compiled into this build.
const Backend = "sparse"

func init() {
	group.Register(algebraExtension{})
	group.Register(eigensolverExtension{})
}

// ownedRange splits n rows into contiguous blocks; the first n%size ranks
// get one extra row.
func ownedRange(g *group.Group, n int) (first, last int) {
	rank, size := g.Rank(), g.Size()
	base, rem := n/size, n%size
	first = rank*base + min(rank, rem)
	last = first + base
	if rank < rem {
		last++
	}

	return first, last
}

func newStore(_, cols, first, last int, nz NonZeros) store {
	return newCSRStore(cols, first, last, nz)
}

func gatherRows(g *group.Group, root int, local []float64) []float64 {
	return g.GatherFloat64(root, local)
}

func allRows(g *group.Group, local []float64) []float64 {
	return g.AllGatherFloat64(local)
}

// writeRange streams [start, end) to w on rank 0. Rank 0 writes its own
// overlap, then drains ranks 1..size-1 in order. Every other rank sends its
// overlap one element per message and ends with an empty message, so rank 0
// knows when to move on.
func writeRange(v *Vector, start, end int, w io.Writer) error {
	g := v.g
	lo, hi := max(start, v.first), min(end, v.last)
	if g.Rank() != 0 {
		for i := lo; i < hi; i++ {
			k := i - v.first
			g.Send(0, group.Float64, v.local[k:k+1])
		}
		g.Send(0, group.Float64, []float64{})
		return nil
	}

	var errs []error
	if lo < hi {
		errs = append(errs, binary.Write(w, binary.NativeEndian, v.local[lo-v.first:hi-v.first]))
	}
	var x [1]float64
	for r := 1; r < g.Size(); r++ {
		// Keep draining after a write error so no message is left queued.
		for g.Receive(r, group.Float64, x[:]) > 0 {
			errs = append(errs, binary.Write(w, binary.NativeEndian, x[:]))
		}
	}

	return errors.Join(errs...)
}
