// SPDX-License-Identifier: MIT

//go:build !replicated

package dist

import (
	"slices"
	"sort"
)

// csrStore holds the rows [first, last) of a partitioned matrix.
//
// Set calls land in per-row maps; build compresses them into CSR (row
// pointers, sorted column indices, values). A Set after build re-expands
// the rows so assembly can be repeated.
type csrStore struct {
	cols        int
	first, last int
	rowHint     int

	staged []map[int]float64 // nil once compressed

	rowPtr []int
	colIdx []int
	vals   []float64
}

func newCSRStore(cols, first, last int, nz NonZeros) *csrStore {
	s := &csrStore{cols: cols, first: first, last: last, rowHint: max(nz.Diag+nz.Off, 1)}
	s.expand()

	return s
}

func (s *csrStore) expand() {
	s.staged = make([]map[int]float64, s.last-s.first)
	for i := range s.staged {
		s.staged[i] = make(map[int]float64, s.rowHint)
		if s.rowPtr != nil {
			for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
				s.staged[i][s.colIdx[k]] = s.vals[k]
			}
		}
	}
}

func (s *csrStore) set(p, q int, x float64) {
	if s.staged == nil {
		s.expand()
	}
	s.staged[p-s.first][q] = x
}

func (s *csrStore) build() {
	if s.staged == nil {
		return
	}
	nnz := 0
	for _, row := range s.staged {
		nnz += len(row)
	}
	s.rowPtr = make([]int, 0, len(s.staged)+1)
	s.colIdx = make([]int, 0, nnz)
	s.vals = make([]float64, 0, nnz)
	s.rowPtr = append(s.rowPtr, 0)
	for _, row := range s.staged {
		start := len(s.colIdx)
		for q := range row {
			s.colIdx = append(s.colIdx, q)
		}
		slices.Sort(s.colIdx[start:])
		for _, q := range s.colIdx[start:] {
			s.vals = append(s.vals, row[q])
		}
		s.rowPtr = append(s.rowPtr, len(s.colIdx))
	}
	s.staged = nil
}

func (s *csrStore) get(p, q int) float64 {
	i := p - s.first
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], q)
	if k < hi && s.colIdx[k] == q {
		return s.vals[k]
	}

	return 0
}

// mulLocal computes y = A[first:last, :] · x for a full-length x.
func (s *csrStore) mulLocal(x, y []float64) {
	for i := range y {
		var sum float64
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			sum += s.vals[k] * x[s.colIdx[k]]
		}
		y[i] = sum
	}
}

// localDense expands the owned rows to row-major dense form.
func (s *csrStore) localDense() []float64 {
	out := make([]float64, (s.last-s.first)*s.cols)
	for i := 0; i < s.last-s.first; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			out[i*s.cols+s.colIdx[k]] = s.vals[k]
		}
	}

	return out
}

// nnz returns the number of stored entries after build.
func (s *csrStore) nnz() int { return len(s.vals) }
