// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlinalg/internal/fault"
)

const opWrite = "dist.Write"

// Write streams entries [start, end) of v to w as raw native-endian
// float64 values, in index order. Only rank 0 touches w; other ranks may
// pass nil. Collective.
//
// A range outside the vector is fatal. The returned error reports a failed
// write on rank 0.
func Write(v *Vector, start, end int, w io.Writer) error {
	v.requireBuilt(opWrite)
	if start < 0 || end > v.n || start > end {
		fault.Fatal(opWrite, fault.StatusGeneric, fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfRange, start, end, v.n))
		return nil
	}
	if err := writeRange(v, start, end, w); err != nil {
		return fmt.Errorf("%s: %w", opWrite, err)
	}

	return nil
}
