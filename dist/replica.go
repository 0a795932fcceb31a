// SPDX-License-Identifier: MIT

//go:build replicated

package dist

import (
	"github.com/katalvlaran/lvlinalg/matrix"
)

// replicaStore keeps the whole matrix as a local matrix.Dense. Every rank
// holds an identical copy; nothing is partitioned.
type replicaStore struct {
	a *matrix.Dense
}

func newReplicaStore(rows, cols int) *replicaStore {
	return &replicaStore{a: matrix.Alloc(rows, cols, true)}
}

func (s *replicaStore) set(p, q int, x float64) { s.a.Set(p, q, x) }
func (s *replicaStore) build()                  {}
func (s *replicaStore) get(p, q int) float64    { return s.a.Get(p, q) }

func (s *replicaStore) mulLocal(x, y []float64) {
	xc := matrix.Alloc(len(x), 1, false)
	for i, v := range x {
		xc.DataSet(i, v)
	}
	yc := matrix.Alloc(len(y), 1, true)
	matrix.Multiply(1, s.a, xc, 0, yc)
	copy(y, yc.DataRaw())
}

func (s *replicaStore) localDense() []float64 { return s.a.DataRaw() }

func (s *replicaStore) nnz() int { return s.a.DataLen() }
