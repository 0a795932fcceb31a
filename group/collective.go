// SPDX-License-Identifier: MIT

package group

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/internal/transport"
)

const (
	opAllReduce = "group.AllReduceSum"
	opGather    = "group.GatherFloat64"
	opAllGather = "group.AllGatherFloat64"
	opBroadcast = "group.BroadcastFloat64"
)

// Collectives run on their own tag, rooted at a single rank, and must be
// called by every rank in the same order. Results are assembled in rank
// order, so every rank sees bit-identical sums.

func encodeFloats(x []float64) []byte {
	b := make([]byte, 8*len(x))
	for i, v := range x {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(v))
	}

	return b
}

func decodeFloats(b []byte) []float64 {
	x := make([]float64, len(b)/8)
	for i := range x {
		x[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}

	return x
}

// gatherTo collects every rank's slice on root, indexed by rank. Other ranks
// get nil.
func (g *Group) gatherTo(root int, local []float64) ([][]float64, error) {
	if g.rank != root {
		return nil, g.tr.Send(root, transport.TagCollective, encodeFloats(local))
	}
	parts := make([][]float64, g.size)
	parts[root] = append([]float64(nil), local...)
	for r := 0; r < g.size; r++ {
		if r == root {
			continue
		}
		b, err := g.tr.Recv(r, transport.TagCollective)
		if err != nil {
			return nil, err
		}
		parts[r] = decodeFloats(b)
	}

	return parts, nil
}

// broadcastFrom sends buf from root to every rank; receivers get the
// root's slice.
func (g *Group) broadcastFrom(root int, buf []float64) ([]float64, error) {
	if g.rank == root {
		b := encodeFloats(buf)
		for r := 0; r < g.size; r++ {
			if r == root {
				continue
			}
			if err := g.tr.Send(r, transport.TagCollective, b); err != nil {
				return nil, err
			}
		}
		return buf, nil
	}
	b, err := g.tr.Recv(root, transport.TagCollective)
	if err != nil {
		return nil, err
	}

	return decodeFloats(b), nil
}

// AllReduceSum replaces x on every rank with the elementwise sum of x over
// all ranks. Every rank must pass the same length.
func (g *Group) AllReduceSum(x []float64) {
	g.live(opAllReduce)
	if g.size <= 1 {
		return
	}
	g.collMu.Lock()
	defer g.collMu.Unlock()

	parts, err := g.gatherTo(0, x)
	if err != nil {
		fault.Fatal(opAllReduce, fault.StatusGeneric, err)
		return
	}
	var sum []float64
	if g.rank == 0 {
		sum = make([]float64, len(x))
		for r, p := range parts {
			if len(p) != len(x) {
				fault.Fatal(opAllReduce, fault.StatusGeneric,
					fmt.Errorf("%w: rank %d sent %d values, want %d", ErrProtocol, r, len(p), len(x)))
				return
			}
			for i, v := range p {
				sum[i] += v
			}
		}
	}
	if sum, err = g.broadcastFrom(0, sum); err != nil {
		fault.Fatal(opAllReduce, fault.StatusGeneric, err)
		return
	}
	copy(x, sum)
}

// GatherFloat64 concatenates every rank's local slice in rank order on
// root. Other ranks get nil. Slices may differ in length.
func (g *Group) GatherFloat64(root int, local []float64) []float64 {
	g.live(opGather)
	if g.size <= 1 {
		return append([]float64(nil), local...)
	}
	g.collMu.Lock()
	defer g.collMu.Unlock()

	parts, err := g.gatherTo(root, local)
	if err != nil {
		fault.Fatal(opGather, fault.StatusGeneric, err)
		return nil
	}
	if g.rank != root {
		return nil
	}

	return concat(parts)
}

// AllGatherFloat64 concatenates every rank's local slice in rank order on
// every rank.
func (g *Group) AllGatherFloat64(local []float64) []float64 {
	g.live(opAllGather)
	if g.size <= 1 {
		return append([]float64(nil), local...)
	}
	g.collMu.Lock()
	defer g.collMu.Unlock()

	parts, err := g.gatherTo(0, local)
	if err != nil {
		fault.Fatal(opAllGather, fault.StatusGeneric, err)
		return nil
	}
	out, err := g.broadcastFrom(0, concat(parts))
	if err != nil {
		fault.Fatal(opAllGather, fault.StatusGeneric, err)
		return nil
	}

	return out
}

// BroadcastFloat64 copies root's buf into buf on every rank. Lengths must
// agree.
func (g *Group) BroadcastFloat64(root int, buf []float64) {
	g.live(opBroadcast)
	if g.size <= 1 {
		return
	}
	g.collMu.Lock()
	defer g.collMu.Unlock()

	got, err := g.broadcastFrom(root, buf)
	if err == nil && len(got) != len(buf) {
		err = fmt.Errorf("%w: broadcast of %d values into %d", ErrProtocol, len(got), len(buf))
	}
	if err != nil {
		fault.Fatal(opBroadcast, fault.StatusGeneric, err)
		return
	}
	copy(buf, got)
}

func concat(parts [][]float64) []float64 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}
