// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

func dense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

func TestValidateNotNil(t *testing.T) {
	var typedNil *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(dense(t, 1, 1)))
}

// TestValidateSameShape covers matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"equal 2x3", dense(t, 2, 3), dense(t, 2, 3), nil},
		{"row mismatch", dense(t, 2, 3), dense(t, 3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", dense(t, 2, 3), dense(t, 2, 4), matrix.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateSquare(t *testing.T) {
	require.NoError(t, matrix.ValidateSquare(dense(t, 3, 3)))
	require.ErrorIs(t, matrix.ValidateSquare(dense(t, 3, 2)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSquareNonNil(nil), matrix.ErrNilMatrix)
}

func TestValidateVecLen(t *testing.T) {
	require.NoError(t, matrix.ValidateVecLen(make([]float64, 4), 4))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 4), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen(make([]float64, 3), 4), matrix.ErrDimensionMismatch)
}

func TestValidateSymmetric(t *testing.T) {
	sym := MustDense(t, [][]float64{{1, 2}, {2, 1}})
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	off := MustDense(t, [][]float64{{1, 2}, {2.1, 1}})
	require.ErrorIs(t, matrix.ValidateSymmetric(off, 1e-3), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(off, -0.2)) // sign of tol ignored
	require.ErrorIs(t, matrix.ValidateSymmetric(off, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(dense(t, 2, 3), 0), matrix.ErrDimensionMismatch)
}

func TestValidateGemm(t *testing.T) {
	a, b := dense(t, 2, 3), dense(t, 3, 4)
	require.NoError(t, matrix.ValidateMulCompatible(a, b))
	require.ErrorIs(t, matrix.ValidateMulCompatible(b, a), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateGemm(a, b, dense(t, 2, 4)))
	require.ErrorIs(t, matrix.ValidateGemm(a, b, dense(t, 4, 2)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateGemm(a, b, nil), matrix.ErrNilMatrix)
}
