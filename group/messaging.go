// SPDX-License-Identifier: MIT

package group

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/internal/transport"
)

const (
	opSend    = "group.Send"
	opReceive = "group.Receive"
	opProbe   = "group.Probe"

	headerLen = 8
)

// Kind is the element type of a typed message.
type Kind int

const (
	Int32 Kind = iota
	Int8
	Float32
	Float64
)

// Size returns the encoded width of one element, 0 for unknown kinds.
func (k Kind) Size() int {
	switch k {
	case Int32, Float32:
		return 4
	case Int8:
		return 1
	case Float64:
		return 8
	}

	return 0
}

func (k Kind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Int8:
		return "int8"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// checkBuffer returns len(buf) when buf is the slice type of kind.
func checkBuffer(kind Kind, buf any) (int, error) {
	var n int
	var ok bool
	switch kind {
	case Int32:
		var b []int32
		b, ok = buf.([]int32)
		n = len(b)
	case Int8:
		var b []int8
		b, ok = buf.([]int8)
		n = len(b)
	case Float32:
		var b []float32
		b, ok = buf.([]float32)
		n = len(b)
	case Float64:
		var b []float64
		b, ok = buf.([]float64)
		n = len(b)
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s with %T", ErrKindMismatch, kind, buf)
	}

	return n, nil
}

// Probe reports whether a message from rank from is waiting. Never blocks.
func (g *Group) Probe(from int) bool {
	g.live(opProbe)

	return g.tr.Probe(from, transport.TagHeader)
}

// Send sends all of buf to rank to: a length header, then the payload.
// buf must be []int32, []int8, []float32 or []float64 matching kind.
// Concurrent Sends are serialized. Any failure is fatal.
func (g *Group) Send(to int, kind Kind, buf any) {
	g.live(opSend)
	n, err := checkBuffer(kind, buf)
	if err != nil {
		fault.Fatal(opSend, fault.StatusGeneric, err)
		return
	}
	payload, err := binary.Append(make([]byte, 0, n*kind.Size()), binary.LittleEndian, buf)
	if err != nil {
		fault.Fatal(opSend, fault.StatusGeneric, err)
		return
	}
	hdr := binary.LittleEndian.AppendUint64(make([]byte, 0, headerLen), uint64(n))

	g.sendMu.Lock()
	defer g.sendMu.Unlock()
	if err = g.tr.Send(to, transport.TagHeader, hdr); err == nil {
		err = g.tr.Send(to, transport.TagPayload, payload)
	}
	fault.Check(opSend, err)
}

// Receive blocks for the next message from rank from and copies
// min(sent, len(buf)) elements into buf, returning that count. Elements
// beyond len(buf) are discarded. Any failure is fatal.
func (g *Group) Receive(from int, kind Kind, buf any) int {
	g.live(opReceive)
	limit, err := checkBuffer(kind, buf)
	if err != nil {
		fault.Fatal(opReceive, fault.StatusGeneric, err)
		return 0
	}

	g.recvMu.Lock()
	defer g.recvMu.Unlock()
	hdr, err := g.tr.Recv(from, transport.TagHeader)
	if err != nil {
		fault.Fatal(opReceive, fault.StatusGeneric, err)
		return 0
	}
	if len(hdr) != headerLen {
		fault.Fatal(opReceive, fault.StatusGeneric, fmt.Errorf("%w: header of %d bytes", ErrProtocol, len(hdr)))
		return 0
	}
	sent := int(binary.LittleEndian.Uint64(hdr))
	payload, err := g.tr.Recv(from, transport.TagPayload)
	if err != nil {
		fault.Fatal(opReceive, fault.StatusGeneric, err)
		return 0
	}
	if len(payload) != sent*kind.Size() {
		fault.Fatal(opReceive, fault.StatusGeneric,
			fmt.Errorf("%w: %d %s announced, %d bytes received", ErrProtocol, sent, kind, len(payload)))
		return 0
	}

	n := min(sent, limit)
	if n == 0 {
		return 0
	}
	if _, err = binary.Decode(payload[:n*kind.Size()], binary.LittleEndian, prefix(kind, buf, n)); err != nil {
		fault.Fatal(opReceive, fault.StatusGeneric, err)
		return 0
	}

	return n
}

// prefix returns buf[:n] keeping its concrete slice type.
func prefix(kind Kind, buf any, n int) any {
	switch kind {
	case Int32:
		return buf.([]int32)[:n]
	case Int8:
		return buf.([]int8)[:n]
	case Float32:
		return buf.([]float32)[:n]
	}

	return buf.([]float64)[:n]
}
