// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlinalg/group"
)

// About prints the distributed layout of g: the storage backend and the
// rows this rank owns for an n-row matrix. Diagnostic output only.
func About(g *group.Group, n int, w io.Writer) {
	first, last := ownedRange(g, n)
	fmt.Fprintf(w, "# dist backend = %s\n", Backend)
	fmt.Fprintf(w, "# processes    = %d\n", g.Size())
	fmt.Fprintf(w, "# rank         = %d\n", g.Rank())
	fmt.Fprintf(w, "# owned rows   = [%d, %d) of %d\n", first, last, n)
}
