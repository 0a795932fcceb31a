// SPDX-License-Identifier: MIT

// Package transport moves tagged byte payloads between the ranks of a
// process group.
//
// Two implementations exist:
//
//   - Hub: in-process endpoints sharing memory, one per rank. Used by
//     single-process runs and by tests that simulate several ranks.
//   - Net: one websocket connection per peer pair, frames encoded with
//     msgpack. Used when ranks live in separate processes.
//
// Ordering is FIFO per (sender, tag) pair only. Send never blocks on the
// receiver; Recv blocks until a matching payload arrives or the transport
// (or that peer's link) is closed; Probe never blocks.
package transport

import (
	"errors"
	"fmt"
)

// Tag separates independent message streams between the same two ranks.
type Tag int32

// Reserved tags. Application messaging uses TagHeader/TagPayload; the rest
// belong to the runtime.
const (
	TagHeader     Tag = 666 // element count of the following payload
	TagPayload    Tag = 667 // raw element bytes
	TagBarrier    Tag = 900 // barrier arrival / release
	TagCollective Tag = 901 // reductions, gathers, broadcasts
	tagHello      Tag = -1  // connection handshake (Net only)
)

// Transport is the point-to-point layer a process group runs on.
type Transport interface {
	// Rank is this endpoint's zero-based id.
	Rank() int
	// Size is the number of ranks.
	Size() int
	// Send queues a copy of payload for rank to under tag.
	Send(to int, tag Tag, payload []byte) error
	// Recv blocks until a payload from rank from under tag is available.
	Recv(from int, tag Tag) ([]byte, error)
	// Probe reports whether Recv(from, tag) would return without blocking.
	Probe(from int, tag Tag) bool
	// Close releases the endpoint; pending and later Recv calls fail once
	// their queue is empty.
	Close() error
}

var (
	// ErrClosed is returned by operations on a closed endpoint.
	ErrClosed = errors.New("transport: closed")

	// ErrBadRank marks a rank outside [0, size).
	ErrBadRank = errors.New("transport: rank out of range")

	// ErrPeerLost marks a peer whose link dropped before its queue was drained.
	ErrPeerLost = errors.New("transport: peer connection lost")

	// ErrHandshake marks a connection that did not introduce itself correctly.
	ErrHandshake = errors.New("transport: bad handshake")
)

func checkRank(op string, r, size int) error {
	if r < 0 || r >= size {
		return fmt.Errorf("%s: rank %d of %d: %w", op, r, size, ErrBadRank)
	}

	return nil
}
