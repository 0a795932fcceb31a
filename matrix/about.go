// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// About prints how the package was built: toolchain, module, layout and the
// linked backend. Diagnostic output only.
func About(w io.Writer) {
	module, vcsTime := "(unknown)", "(unknown)"
	if bi, ok := debug.ReadBuildInfo(); ok {
		module = bi.Main.Path
		for _, s := range bi.Settings {
			if s.Key == "vcs.time" {
				vcsTime = s.Value
			}
		}
	}
	fmt.Fprintf(w, "# build date   = %s\n", vcsTime)
	fmt.Fprintf(w, "# toolchain    = %s\n", runtime.Version())
	fmt.Fprintf(w, "# source code  = %s\n", module)
	fmt.Fprintf(w, "# data layout  = %s\n", "row-major scheme")
	fmt.Fprintf(w, "# lin. algebra = %s\n", activeBackend.Name())
}
