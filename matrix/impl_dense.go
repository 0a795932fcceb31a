// SPDX-License-Identifier: MIT

// Package matrix - element, row, column and block helpers on *Dense.
//
// Purpose:
//   - Cover the addressed mutators (Set*/Incr/Decr/Scale*) and the copying
//     getters (Row, Col, Diag, Block, RawRow, RawCol).
//   - Provide reductions (Trace, SumRow, SumCol, Min, Max) and predicates.
//   - Expose the flat buffer (DataSet/DataGet/DataRaw/DataLen) for kernels
//     that treat a matrix as a vector.
//
// Indices follow the numeric surface contract: bounds are asserted only
// under -tags boundcheck. Block bounds are inclusive on both ends.

package matrix

import (
	"math"

	"github.com/katalvlaran/lvlinalg/internal/fault"
)

// sizeWord is the byte width of the bookkeeping words reported by SizeOf.
const sizeWord = 8

// SetDiag writes x into m[p,p].
func (m *Dense) SetDiag(p int, x float64) { m.Set(p, p, x) }

// SetSymm writes x into both m[p,q] and m[q,p].
func (m *Dense) SetSymm(p, q int, x float64) {
	m.Set(p, q, x)
	m.Set(q, p, x)
}

// SetRow writes x into every element of row p.
func (m *Dense) SetRow(p int, x float64) {
	m.checkRow(ctxRow, p)
	row := m.data[p*m.c : (p+1)*m.c]
	m.forRange(m.c, func(lo, hi int) {
		for q := lo; q < hi; q++ {
			row[q] = x
		}
	})
}

// SetCol writes x into every element of column q.
func (m *Dense) SetCol(q int, x float64) {
	m.checkCol(ctxCol, q)
	m.forRange(m.r, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			m.data[p*m.c+q] = x
		}
	})
}

// checkBlock asserts rowMin<=rowMax, colMin<=colMax and the upper corners in range.
func (m *Dense) checkBlock(rowMin, rowMax, colMin, colMax int) {
	if !boundCheck {
		return
	}
	if rowMax < rowMin || colMax < colMin || rowMin < 0 || colMin < 0 {
		fault.Fatal("matrix."+ctxBlock, fault.StatusGeneric, denseErrorf(ctxBlock, rowMin, colMin, ErrOutOfRange))
	}
	m.checkRow(ctxBlock, rowMax)
	m.checkCol(ctxBlock, colMax)
}

// SetBlock writes x into rows [rowMin,rowMax] × cols [colMin,colMax] (inclusive).
func (m *Dense) SetBlock(rowMin, rowMax, colMin, colMax int, x float64) {
	m.checkBlock(rowMin, rowMax, colMin, colMax)
	for p := rowMin; p <= rowMax; p++ {
		base := p * m.c
		for q := colMin; q <= colMax; q++ {
			m.data[base+q] = x
		}
	}
}

// Row returns row p as a new 1×cols matrix.
func (m *Dense) Row(p int) *Dense {
	out := Alloc(1, m.c, false)
	copy(out.data, m.RawRow(p))

	return out
}

// Col returns column q as a new rows×1 matrix.
func (m *Dense) Col(q int) *Dense {
	out := Alloc(m.r, 1, false)
	copy(out.data, m.RawCol(q))

	return out
}

// Diag returns the diagonal as a new rows×1 matrix (m assumed square).
func (m *Dense) Diag() *Dense {
	out := Alloc(m.r, 1, false)
	for p := 0; p < m.r; p++ {
		out.data[p] = m.data[p*m.c+p]
	}

	return out
}

// Block copies rows [rowMin,rowMax] × cols [colMin,colMax] (inclusive).
func (m *Dense) Block(rowMin, rowMax, colMin, colMax int) *Dense {
	m.checkBlock(rowMin, rowMax, colMin, colMax)
	h, w := rowMax-rowMin+1, colMax-colMin+1
	out := Alloc(h, w, false)
	for i := 0; i < h; i++ {
		src := (rowMin+i)*m.c + colMin
		copy(out.data[i*w:(i+1)*w], m.data[src:src+w])
	}

	return out
}

// RawRow returns a fresh copy of row p.
func (m *Dense) RawRow(p int) []float64 {
	m.checkRow(ctxRow, p)
	row := make([]float64, m.c)
	copy(row, m.data[p*m.c:(p+1)*m.c])

	return row
}

// RawCol returns a fresh copy of column q.
func (m *Dense) RawCol(q int) []float64 {
	m.checkCol(ctxCol, q)
	col := make([]float64, m.r)
	m.forRange(m.r, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			col[p] = m.data[p*m.c+q]
		}
	})

	return col
}

// Incr adds x to m[p,q].
func (m *Dense) Incr(p, q int, x float64) {
	m.checkIndex("Incr", p, q)
	m.data[p*m.c+q] += x
}

// Decr subtracts x from m[p,q].
func (m *Dense) Decr(p, q int, x float64) {
	m.checkIndex("Decr", p, q)
	m.data[p*m.c+q] -= x
}

// Scale multiplies m[p,q] by x.
func (m *Dense) Scale(p, q int, x float64) {
	m.checkIndex("Scale", p, q)
	m.data[p*m.c+q] *= x
}

// ScaleRow multiplies row p by x.
func (m *Dense) ScaleRow(p int, x float64) {
	m.checkRow(ctxRow, p)
	row := m.data[p*m.c : (p+1)*m.c]
	m.forRange(m.c, func(lo, hi int) {
		for q := lo; q < hi; q++ {
			row[q] *= x
		}
	})
}

// ScaleCol multiplies column q by x.
func (m *Dense) ScaleCol(q int, x float64) {
	m.checkCol(ctxCol, q)
	m.forRange(m.r, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			m.data[p*m.c+q] *= x
		}
	})
}

// CopyElement sets a[p,q] = b[l,k].
func CopyElement(a *Dense, p, q int, b *Dense, l, k int) {
	a.Set(p, q, b.Get(l, k))
}

// Trace returns the sum of the diagonal (m assumed square).
func (m *Dense) Trace() float64 {
	var s float64
	for n := 0; n < m.r; n++ {
		s += m.data[n*m.c+n]
	}

	return s
}

// SumRow returns the sum of row p.
func (m *Dense) SumRow(p int) float64 {
	m.checkRow(ctxRow, p)
	var s float64
	for _, v := range m.data[p*m.c : (p+1)*m.c] {
		s += v
	}

	return s
}

// SumCol returns the sum of column q.
func (m *Dense) SumCol(q int) float64 {
	m.checkCol(ctxCol, q)
	var s float64
	for p := 0; p < m.r; p++ {
		s += m.data[p*m.c+q]
	}

	return s
}

// Min returns the smallest element (+Inf for an empty matrix).
func (m *Dense) Min() float64 {
	lo := math.Inf(1)
	for _, v := range m.data {
		if v < lo {
			lo = v
		}
	}

	return lo
}

// Max returns the largest element (-Inf for an empty matrix).
func (m *Dense) Max() float64 {
	hi := math.Inf(-1)
	for _, v := range m.data {
		if v > hi {
			hi = v
		}
	}

	return hi
}

// IsNull reports whether every element is exactly zero.
func (m *Dense) IsNull() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}

	return true
}

// IsPositive reports whether no element is negative (zero counts as positive).
func (m *Dense) IsPositive() bool {
	for _, v := range m.data {
		if v < 0 {
			return false
		}
	}

	return true
}

// IsNegative reports whether every element is strictly negative.
func (m *Dense) IsNegative() bool {
	for _, v := range m.data {
		if v >= 0 {
			return false
		}
	}

	return true
}

// IsSquare reports rows == cols.
func (m *Dense) IsSquare() bool { return m.r == m.c }

// HasNaN reports whether any element is NaN.
func (m *Dense) HasNaN() bool {
	for _, v := range m.data {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}

// SizeOf returns the bytes held by m: three bookkeeping words plus the payload.
func (m *Dense) SizeOf() int {
	return 3*sizeWord + len(m.data)*sizeWord
}

// Reshape changes the shape to rows×cols, reusing storage when it is large
// enough. Elements beyond the old length are zero; with zero=true the whole
// buffer is cleared. Backends that pin host memory refuse (fatal).
func (m *Dense) Reshape(rows, cols int, zero bool) {
	if !activeBackend.Reshapable() {
		fault.Fatal("matrix.Reshape", fault.StatusGeneric, ErrReshapeUnsupported)
		return
	}
	if err := checkShape(rows, cols); err != nil {
		fault.Fatal("matrix.Reshape", fault.StatusGeneric, denseErrorf("Reshape", rows, cols, err))
		return
	}
	n := rows * cols
	if n <= cap(m.data) {
		old := len(m.data)
		m.data = m.data[:n]
		if n > old {
			clear(m.data[old:])
		}
	} else {
		grown := make([]float64, n)
		copy(grown, m.data)
		m.data = grown
	}
	if zero {
		clear(m.data)
	}
	m.r, m.c = rows, cols
}

// DataSet writes x at flat offset n.
func (m *Dense) DataSet(n int, x float64) {
	if boundCheck && (n < 0 || n >= len(m.data)) {
		fault.Fatal("matrix."+ctxData, fault.StatusGeneric, denseErrorf(ctxData, n, -1, ErrOutOfRange))
	}
	m.data[n] = x
}

// DataGet reads the element at flat offset n.
func (m *Dense) DataGet(n int) float64 {
	if boundCheck && (n < 0 || n >= len(m.data)) {
		fault.Fatal("matrix."+ctxData, fault.StatusGeneric, denseErrorf(ctxData, n, -1, ErrOutOfRange))
	}

	return m.data[n]
}

// DataRaw returns a fresh copy of the flat row-major buffer.
func (m *Dense) DataRaw() []float64 {
	out := make([]float64, len(m.data))
	m.forRange(len(m.data), func(lo, hi int) {
		copy(out[lo:hi], m.data[lo:hi])
	})

	return out
}

// DataLen returns rows*cols.
func (m *Dense) DataLen() int { return len(m.data) }
