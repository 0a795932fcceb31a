// SPDX-License-Identifier: MIT

// Package group is the process-group runtime: lifecycle, typed
// point-to-point messaging and the few collectives the distributed algebra
// needs.
//
// A Group is an explicit context. Init creates it once per process,
// Finalize destroys it, and every distributed call takes it as an argument.
//
//	g := group.Init(os.Args[1:])
//	defer g.Finalize()
//	if g.Rank() == 0 { ... }
//
// Launch configuration comes from functional options, then from flags in
// the argument list (which Init removes; see Args):
//
//	-group-config  file.toml | file.yaml
//	-group-rank    N
//	-group-peers   host:port,host:port,...   (implies -group-transport ws)
//	-group-transport local | ws
//	-group-log-level debug | info | warn | error
//
// Extensions (see Register) are initialized before the messaging layer and
// finalized after it. Messaging misuse (unknown element kind, buffer of the
// wrong type), transport failures and use after Finalize are fatal and go
// through internal/fault.
//
// RunLocal runs several ranks as goroutines of one process; it is how the
// tests exercise multi-rank behavior without a network.
package group
