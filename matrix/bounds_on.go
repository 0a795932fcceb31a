// SPDX-License-Identifier: MIT

//go:build boundcheck

package matrix

// boundCheck enables index assertions in Get/Set and the row/column helpers.
const boundCheck = true
