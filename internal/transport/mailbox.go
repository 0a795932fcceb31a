// SPDX-License-Identifier: MIT

package transport

import (
	"fmt"
	"sync"
)

type mailKey struct {
	from int
	tag  Tag
}

// mailbox holds received payloads per (sender, tag) in arrival order.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queues map[mailKey][][]byte
	lost   map[int]error // per-sender link failures
	closed bool
}

func newMailbox() *mailbox {
	m := &mailbox{
		queues: make(map[mailKey][][]byte),
		lost:   make(map[int]error),
	}
	m.cond = sync.NewCond(&m.mu)

	return m
}

// put appends p (not copied) to the (from, tag) queue.
func (m *mailbox) put(from int, tag Tag, p []byte) {
	m.mu.Lock()
	if !m.closed {
		k := mailKey{from, tag}
		m.queues[k] = append(m.queues[k], p)
	}
	m.mu.Unlock()
	m.cond.Broadcast()
}

// take pops the oldest payload of (from, tag), blocking while the queue is
// empty and neither the mailbox nor the sender's link has failed.
func (m *mailbox) take(from int, tag Tag) ([]byte, error) {
	k := mailKey{from, tag}
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		if q := m.queues[k]; len(q) > 0 {
			p := q[0]
			q[0] = nil
			if len(q) == 1 {
				delete(m.queues, k)
			} else {
				m.queues[k] = q[1:]
			}
			return p, nil
		}
		if m.closed {
			return nil, ErrClosed
		}
		if err, ok := m.lost[from]; ok {
			return nil, fmt.Errorf("rank %d: %w: %v", from, ErrPeerLost, err)
		}
		m.cond.Wait()
	}
}

// pending reports whether (from, tag) has a queued payload.
func (m *mailbox) pending(from int, tag Tag) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queues[mailKey{from, tag}]) > 0
}

// drop marks from's link as failed; queued payloads stay readable.
func (m *mailbox) drop(from int, err error) {
	m.mu.Lock()
	if _, ok := m.lost[from]; !ok {
		m.lost[from] = err
	}
	m.mu.Unlock()
	m.cond.Broadcast()
}

// close fails every blocked and future take once its queue is empty.
func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
}
