// SPDX-License-Identifier: MIT
package matrix_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/matrix"
)

func TestAbout_ListsBackend(t *testing.T) {
	var buf bytes.Buffer
	matrix.About(&buf)
	out := buf.String()
	require.Contains(t, out, "# data layout  = row-major scheme")
	require.Contains(t, out, "# lin. algebra = "+matrix.CurrentBackend().Name())
}
