// SPDX-License-Identifier: MIT
package transport_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/internal/transport"
)

func TestHub_FIFOPerSenderAndTag(t *testing.T) {
	h := transport.NewHub(3)
	defer h.Close()
	a, b, c := h.Endpoint(0), h.Endpoint(1), h.Endpoint(2)

	require.NoError(t, a.Send(2, transport.TagPayload, []byte{1}))
	require.NoError(t, a.Send(2, transport.TagPayload, []byte{2}))
	require.NoError(t, b.Send(2, transport.TagPayload, []byte{9}))
	require.NoError(t, a.Send(2, transport.TagHeader, []byte{7}))

	// Tags and senders are independent streams.
	p, err := c.Recv(0, transport.TagHeader)
	require.NoError(t, err)
	require.Equal(t, []byte{7}, p)

	p, err = c.Recv(1, transport.TagPayload)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, p)

	for _, want := range []byte{1, 2} {
		p, err = c.Recv(0, transport.TagPayload)
		require.NoError(t, err)
		require.Equal(t, []byte{want}, p)
	}
}

func TestHub_SendCopiesPayload(t *testing.T) {
	h := transport.NewHub(2)
	defer h.Close()
	buf := []byte{1, 2, 3}
	require.NoError(t, h.Endpoint(0).Send(1, transport.TagPayload, buf))
	buf[0] = 42

	p, err := h.Endpoint(1).Recv(0, transport.TagPayload)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, p)
}

func TestHub_ProbeNeverBlocks(t *testing.T) {
	h := transport.NewHub(2)
	defer h.Close()
	e0, e1 := h.Endpoint(0), h.Endpoint(1)

	require.False(t, e1.Probe(0, transport.TagHeader))
	require.False(t, e1.Probe(7, transport.TagHeader)) // bad rank is just "nothing"
	require.NoError(t, e0.Send(1, transport.TagHeader, nil))
	require.True(t, e1.Probe(0, transport.TagHeader))
	require.False(t, e1.Probe(0, transport.TagPayload))
}

func TestHub_RecvBlocksUntilSend(t *testing.T) {
	h := transport.NewHub(2)
	defer h.Close()

	got := make(chan []byte, 1)
	go func() {
		p, err := h.Endpoint(1).Recv(0, transport.TagBarrier)
		if err == nil {
			got <- p
		}
	}()

	select {
	case <-got:
		t.Fatal("Recv returned before any Send")
	case <-time.After(20 * time.Millisecond):
	}
	require.NoError(t, h.Endpoint(0).Send(1, transport.TagBarrier, []byte("go")))
	require.Equal(t, []byte("go"), <-got)
}

func TestHub_CloseWakesReceivers(t *testing.T) {
	h := transport.NewHub(2)
	errc := make(chan error, 1)
	go func() {
		_, err := h.Endpoint(1).Recv(0, transport.TagPayload)
		errc <- err
	}()
	time.Sleep(10 * time.Millisecond)
	h.Close()

	require.Error(t, <-errc)
	require.ErrorIs(t, h.Endpoint(0).Send(1, transport.TagPayload, nil), transport.ErrClosed)
}

func TestEndpoint_PeerCloseKeepsQueuedData(t *testing.T) {
	h := transport.NewHub(2)
	defer h.Close()
	e0, e1 := h.Endpoint(0), h.Endpoint(1)

	require.NoError(t, e0.Send(1, transport.TagPayload, []byte{5}))
	require.NoError(t, e0.Close())

	p, err := e1.Recv(0, transport.TagPayload)
	require.NoError(t, err)
	require.Equal(t, []byte{5}, p)

	_, err = e1.Recv(0, transport.TagPayload)
	require.ErrorIs(t, err, transport.ErrPeerLost)
}

func TestHub_BadRank(t *testing.T) {
	e := transport.Self()
	require.Equal(t, 0, e.Rank())
	require.Equal(t, 1, e.Size())
	require.ErrorIs(t, e.Send(1, transport.TagPayload, nil), transport.ErrBadRank)
	_, err := e.Recv(-1, transport.TagPayload)
	require.ErrorIs(t, err, transport.ErrBadRank)

	// Self-send is allowed.
	require.NoError(t, e.Send(0, transport.TagPayload, []byte{1}))
	p, err := e.Recv(0, transport.TagPayload)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, p)
}
