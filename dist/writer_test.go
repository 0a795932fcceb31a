// SPDX-License-Identifier: MIT
package dist_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/dist"
	"github.com/katalvlaran/lvlinalg/group"
)

func decode(t *testing.T, b []byte) []float64 {
	t.Helper()
	require.Zero(t, len(b)%8)
	out := make([]float64, len(b)/8)
	require.NoError(t, binary.Read(bytes.NewReader(b), binary.NativeEndian, out))

	return out
}

func TestWrite_TwoRanksTenDoubles(t *testing.T) {
	bufs := make([]bytes.Buffer, 2)
	runRanks(t, 2, func(g *group.Group) error {
		return dist.Write(ramp(g, 10), 0, 10, &bufs[g.Rank()])
	})
	require.Equal(t, 80, bufs[0].Len())
	require.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, decode(t, bufs[0].Bytes()))
	require.Zero(t, bufs[1].Len())
}

func TestWrite_SubRangeAnyRankCount(t *testing.T) {
	for size := 1; size <= 4; size++ {
		var out bytes.Buffer
		runRanks(t, size, func(g *group.Group) error {
			var w *bytes.Buffer
			if g.Rank() == 0 {
				w = &out
			}
			return dist.Write(ramp(g, 11), 3, 8, w)
		})
		require.Equal(t, []float64{3, 4, 5, 6, 7}, decode(t, out.Bytes()), "size=%d", size)
	}
}

func TestWrite_EmptyRange(t *testing.T) {
	var out bytes.Buffer
	runRanks(t, 3, func(g *group.Group) error {
		return dist.Write(ramp(g, 6), 4, 4, &out)
	})
	require.Zero(t, out.Len())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// A failed write must still drain every sender, so the next Write sees
// only its own messages.
func TestWrite_ErrorDrainsSenders(t *testing.T) {
	errs := make([]error, 3)
	var out bytes.Buffer
	runRanks(t, 3, func(g *group.Group) error {
		v := ramp(g, 9)
		errs[g.Rank()] = dist.Write(v, 0, 9, failWriter{})
		return dist.Write(v, 2, 5, &out)
	})
	require.ErrorContains(t, errs[0], "disk full")
	require.NoError(t, errs[1])
	require.NoError(t, errs[2])
	require.Equal(t, []float64{2, 3, 4}, decode(t, out.Bytes()))
}

func TestWrite_BadRangeIsFatal(t *testing.T) {
	g := single(t)
	v := ramp(g, 4)
	expectFatal(t, dist.ErrOutOfRange, func() { _ = dist.Write(v, 2, 5, &bytes.Buffer{}) })
	expectFatal(t, dist.ErrOutOfRange, func() { _ = dist.Write(v, 3, 2, &bytes.Buffer{}) })

	u := dist.NewVector(g, 4)
	expectFatal(t, dist.ErrNotBuilt, func() { _ = dist.Write(u, 0, 1, &bytes.Buffer{}) })
}
