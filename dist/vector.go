// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlinalg/group"
	"github.com/katalvlaran/lvlinalg/internal/fault"
)

const (
	opNewVector    = "dist.NewVector"
	opVectorGet    = "dist.Vector.Get"
	opVectorGather = "dist.Vector.Gather"
)

// Vector is a distributed vector partitioned like the rows of a Matrix of
// the same length.
type Vector struct {
	g           *group.Group
	n           int
	first, last int
	st          state
	local       []float64
}

// NewVector allocates a zero vector of length n over g.
func NewVector(g *group.Group, n int) *Vector {
	if n <= 0 {
		fault.Fatal(opNewVector, fault.StatusGeneric, fmt.Errorf("%w: length %d", ErrBadShape, n))
		return nil
	}
	first, last := ownedRange(g, n)
	if s, ok := g.State(extAlgebra).(*algebraStats); ok {
		s.vectors.Add(1)
	}

	return &Vector{g: g, n: n, first: first, last: last, local: make([]float64, last-first)}
}

// Len returns the global length.
func (v *Vector) Len() int { return v.n }

// OwnershipRange returns the entries [first, last) held by this rank.
func (v *Vector) OwnershipRange() (first, last int) { return v.first, v.last }

// Set stores x at i when i is owned here; other indices are ignored.
func (v *Vector) Set(i int, x float64) {
	if i < v.first || i >= v.last {
		return
	}
	v.local[i-v.first] = x
	v.st = staged
}

// Build finishes assembly. Collective.
func (v *Vector) Build() {
	v.g.Barrier()
	v.st = built
}

func (v *Vector) requireBuilt(op string) {
	if v.st != built {
		fault.Fatal(op, fault.StatusGeneric, fmt.Errorf("%w: state %s", ErrNotBuilt, v.st))
	}
}

// Get returns entry i and true when it is owned here.
func (v *Vector) Get(i int) (float64, bool) {
	v.requireBuilt(opVectorGet)
	if i < v.first || i >= v.last {
		return 0, false
	}

	return v.local[i-v.first], true
}

// Local returns a copy of the owned entries.
func (v *Vector) Local() []float64 { return slices.Clone(v.local) }

// Gather returns the whole vector on root and nil elsewhere. Collective.
func (v *Vector) Gather(root int) []float64 {
	v.requireBuilt(opVectorGather)

	return gatherRows(v.g, root, v.local)
}

// full returns the whole vector on every rank. Collective.
func (v *Vector) full() []float64 { return allRows(v.g, v.local) }
