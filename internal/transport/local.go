// SPDX-License-Identifier: MIT

package transport

import (
	"sync"
)

// Hub connects size in-process endpoints. Payloads are copied on Send, so
// endpoints never share buffers.
type Hub struct {
	boxes     []*mailbox
	endpoints []*Endpoint
	once      sync.Once
}

// NewHub returns a hub with size endpoints. size must be positive.
func NewHub(size int) *Hub {
	if size <= 0 {
		panic("transport: NewHub: size must be > 0")
	}
	h := &Hub{
		boxes:     make([]*mailbox, size),
		endpoints: make([]*Endpoint, size),
	}
	for r := range h.boxes {
		h.boxes[r] = newMailbox()
		h.endpoints[r] = &Endpoint{hub: h, rank: r}
	}

	return h
}

// Self returns the only endpoint of a one-rank hub.
func Self() *Endpoint { return NewHub(1).Endpoint(0) }

// Size returns the number of endpoints.
func (h *Hub) Size() int { return len(h.boxes) }

// Endpoint returns the endpoint of rank r.
func (h *Hub) Endpoint(r int) *Endpoint { return h.endpoints[r] }

// Close closes every endpoint, waking all blocked receivers.
func (h *Hub) Close() {
	h.once.Do(func() {
		for _, e := range h.endpoints {
			_ = e.Close()
		}
	})
}

// Endpoint is one rank's view of a Hub. It implements Transport.
type Endpoint struct {
	hub    *Hub
	rank   int
	mu     sync.Mutex
	closed bool
}

var _ Transport = (*Endpoint)(nil)

func (e *Endpoint) Rank() int { return e.rank }
func (e *Endpoint) Size() int { return len(e.hub.boxes) }

func (e *Endpoint) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.closed
}

func (e *Endpoint) Send(to int, tag Tag, payload []byte) error {
	if e.isClosed() {
		return ErrClosed
	}
	if err := checkRank("transport.Send", to, e.Size()); err != nil {
		return err
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	e.hub.boxes[to].put(e.rank, tag, cp)

	return nil
}

func (e *Endpoint) Recv(from int, tag Tag) ([]byte, error) {
	if err := checkRank("transport.Recv", from, e.Size()); err != nil {
		return nil, err
	}

	return e.hub.boxes[e.rank].take(from, tag)
}

func (e *Endpoint) Probe(from int, tag Tag) bool {
	if from < 0 || from >= e.Size() {
		return false
	}

	return e.hub.boxes[e.rank].pending(from, tag)
}

// Close closes this endpoint and tells the others it is gone.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.hub.boxes[e.rank].close()
	for r, box := range e.hub.boxes {
		if r != e.rank {
			box.drop(e.rank, ErrClosed)
		}
	}

	return nil
}
