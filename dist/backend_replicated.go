// SPDX-License-Identifier: MIT

//go:build replicated

package dist

import (
	"encoding/binary"
	"io"
	"slices"

	"github.com/katalvlaran/lvlinalg/group"
	"github.com/katalvlaran/lvlinalg/matrix"
)

// Backend names the storage backend compiled into this build.
const Backend = "replicated"

// ownedRange: every rank holds every row.
func ownedRange(_ *group.Group, n int) (first, last int) { return 0, n }

func newStore(rows, cols, _, _ int, _ NonZeros) store {
	return newReplicaStore(rows, cols)
}

func gatherRows(g *group.Group, root int, local []float64) []float64 {
	if g.Rank() != root {
		return nil
	}

	return slices.Clone(local)
}

func allRows(_ *group.Group, local []float64) []float64 { return slices.Clone(local) }

// solve diagonalizes a copy of the replica. All eigenpairs are returned,
// reordered largest first when upper is set.
func (m *Matrix) solve(_, _ int, _ float64, upper bool) *eigenResult {
	a := m.store.(*replicaStore).a.Clone()
	w := matrix.SymmEigen(a, matrix.JobVectors)
	n := len(w)
	res := &eigenResult{values: make([]float64, n), vectors: make([][]float64, n)}
	for k := range n {
		i := k
		if upper {
			i = n - 1 - k
		}
		res.values[k] = w[i]
		res.vectors[k] = matrix.Eigenvector(a, i)
	}

	return res
}

// writeRange: the replica on rank 0 already holds the whole range.
func writeRange(v *Vector, start, end int, w io.Writer) error {
	if v.g.Rank() != 0 {
		return nil
	}

	return binary.Write(w, binary.NativeEndian, v.local[start:end])
}
