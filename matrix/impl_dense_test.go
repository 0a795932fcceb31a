// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

func TestNewDense_Shape(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, 6, m.DataLen()) // storage length == rows*cols
	require.True(t, m.IsNull())
}

func TestNewDenseFromRows_Ragged(t *testing.T) {
	_, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewDenseFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestAlloc_BadShapeIsFatal(t *testing.T) {
	expectFatal(t, matrix.ErrBadShape, func() { matrix.Alloc(0, 4, true) })
	expectFatal(t, matrix.ErrBadShape, func() { matrix.Alloc(math.MaxInt, 2, false) })
}

func TestAllocAs_CopiesShapeAndPolicy(t *testing.T) {
	m := matrix.Alloc(3, 4, true, matrix.WithParallel())
	n := matrix.AllocAs(m, true)
	require.Equal(t, 3, n.Rows())
	require.Equal(t, 4, n.Cols())
	require.True(t, n.Parallel())
}

func TestGetSet_RowMajorOffset(t *testing.T) {
	m := matrix.Alloc(2, 3, true)
	m.Set(1, 2, 7.5)
	require.Equal(t, 7.5, m.Get(1, 2))
	require.Equal(t, 7.5, m.DataGet(1*3+2)) // offset = row*cols + col

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)
	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSetters(t *testing.T) {
	m := matrix.Alloc(3, 3, true)
	m.SetAll(1)
	require.Equal(t, 9.0, m.Sum())

	m.SetDiag(1, 5)
	require.Equal(t, 5.0, m.Get(1, 1))

	m.SetSymm(0, 2, -2)
	require.Equal(t, -2.0, m.Get(0, 2))
	require.Equal(t, -2.0, m.Get(2, 0))

	m.SetRow(2, 3)
	require.Equal(t, []float64{3, 3, 3}, m.RawRow(2))

	m.SetCol(0, 4)
	require.Equal(t, []float64{4, 4, 4}, m.RawCol(0))

	m.SetBlock(0, 1, 1, 2, 9)
	require.Equal(t, []float64{4, 9, 9}, m.RawRow(0))
	require.Equal(t, []float64{4, 9, 9}, m.RawRow(1))

	m.SetZero()
	require.True(t, m.IsNull())
}

func TestSetRandom_InUnitInterval(t *testing.T) {
	m := matrix.Alloc(20, 20, true)
	m.SetRandom()
	require.GreaterOrEqual(t, m.Min(), 0.0)
	require.Less(t, m.Max(), 1.0)
}

func TestGetters_CopyNotAlias(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})

	row := m.Row(1)
	require.Equal(t, 1, row.Rows())
	require.Equal(t, []float64{4, 5, 6}, row.DataRaw())
	row.Set(0, 0, 100)
	require.Equal(t, 4.0, m.Get(1, 0)) // independent copy

	col := m.Col(2)
	require.Equal(t, 3, col.Rows())
	require.Equal(t, []float64{3, 6, 9}, col.DataRaw())

	require.Equal(t, []float64{1, 5, 9}, m.Diag().DataRaw())

	blk := m.Block(1, 2, 0, 1)
	require.Equal(t, 2, blk.Rows())
	require.Equal(t, 2, blk.Cols())
	require.Equal(t, []float64{4, 5, 7, 8}, blk.DataRaw())
}

func TestElementUpdates(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	m.Incr(0, 0, 1)
	m.Decr(0, 1, 1)
	m.Scale(1, 1, 10)
	require.Equal(t, []float64{2, 1, 3, 40}, m.DataRaw())

	m.IncrAll(1)
	m.DecrAll(2)
	require.Equal(t, []float64{1, 0, 2, 39}, m.DataRaw())

	m.ScaleRow(0, 2)
	m.ScaleCol(1, -1)
	require.Equal(t, []float64{2, -0, 2, -39}, m.DataRaw())

	m.ScaleAll(0.5)
	require.Equal(t, 1.0, m.Get(0, 0))
}

func TestCopyElement(t *testing.T) {
	a := matrix.Alloc(2, 2, true)
	b := MustDense(t, [][]float64{{0, 0}, {0, 8}})
	matrix.CopyElement(a, 0, 1, b, 1, 1)
	require.Equal(t, 8.0, a.Get(0, 1))
}

func TestReductions(t *testing.T) {
	m := MustDense(t, [][]float64{{1, -2}, {3, 4}})
	require.Equal(t, 5.0, m.Trace())
	require.Equal(t, 6.0, m.Sum())
	require.Equal(t, -1.0, m.SumRow(0))
	require.Equal(t, 2.0, m.SumCol(1))
	require.Equal(t, -2.0, m.Min())
	require.Equal(t, 4.0, m.Max())
}

func TestPredicates(t *testing.T) {
	pos := MustDense(t, [][]float64{{0, 1}})
	require.True(t, pos.IsPositive()) // zero counts as positive
	require.False(t, pos.IsNegative())
	require.False(t, pos.IsNull())
	require.False(t, pos.IsSquare())

	neg := MustDense(t, [][]float64{{-1, -0.5}, {-3, -4}})
	require.True(t, neg.IsNegative())
	require.True(t, neg.IsSquare())
	require.False(t, neg.HasNaN())

	neg.Set(1, 1, math.NaN())
	require.True(t, neg.HasNaN())
}

func TestSwap(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 2, 3}})
	b := MustDense(t, [][]float64{{4}, {5}})
	matrix.Swap(a, b)
	require.Equal(t, 2, a.Rows())
	require.Equal(t, 1, a.Cols())
	require.Equal(t, []float64{4, 5}, a.DataRaw())
	require.Equal(t, []float64{1, 2, 3}, b.DataRaw())
}

func TestReshape(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	if !matrix.CurrentBackend().Reshapable() {
		expectFatal(t, matrix.ErrReshapeUnsupported, func() { m.Reshape(1, 4, false) })
		return
	}

	m.Reshape(1, 4, false)
	require.Equal(t, 1, m.Rows())
	require.Equal(t, []float64{1, 2, 3, 4}, m.DataRaw())

	m.Reshape(2, 3, false)
	require.Equal(t, []float64{1, 2, 3, 4, 0, 0}, m.DataRaw())

	m.Reshape(1, 2, false)
	m.Reshape(2, 2, false)
	require.Equal(t, []float64{1, 2, 0, 0}, m.DataRaw()) // regrown tail is cleared

	m.Reshape(3, 3, true)
	require.True(t, m.IsNull())
}

func TestSizeOf(t *testing.T) {
	m := matrix.Alloc(3, 5, true)
	require.Equal(t, 3*8+15*8, m.SizeOf())
}

func TestString(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
