// SPDX-License-Identifier: MIT

//go:build !boundcheck

package matrix

const boundCheck = false
