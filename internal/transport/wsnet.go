// SPDX-License-Identifier: MIT

package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultPath is the HTTP path every rank serves its websocket endpoint on.
const DefaultPath = "/lvlinalg"

// DefaultDialTimeout bounds the whole connect phase of Dial.
const DefaultDialTimeout = 30 * time.Second

const dialRetry = 50 * time.Millisecond

// NetConfig describes one rank of a websocket-connected group.
type NetConfig struct {
	Rank        int
	Peers       []string      // host:port of every rank, indexed by rank
	Path        string        // DefaultPath when empty
	DialTimeout time.Duration // DefaultDialTimeout when zero
	Listener    net.Listener  // optional pre-bound listener for Peers[Rank]
	Logger      *slog.Logger
}

// frame is the msgpack envelope of one message.
type frame struct {
	From    int    `msgpack:"f"`
	Tag     Tag    `msgpack:"t"`
	Payload []byte `msgpack:"p"`
}

// peer is one websocket link. Writes are serialized; reads happen on the
// link's own goroutine.
type peer struct {
	rank int
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (p *peer) write(f frame) error {
	b, err := msgpack.Marshal(&f)
	if err != nil {
		return err
	}
	p.wmu.Lock()
	defer p.wmu.Unlock()

	return p.conn.WriteMessage(websocket.BinaryMessage, b)
}

// Net is a Transport over websockets. Rank r dials every lower rank and
// accepts connections from every higher rank, so each pair shares exactly
// one link.
type Net struct {
	rank, size int
	box        *mailbox
	log        *slog.Logger

	mu      sync.Mutex
	peers   []*peer
	joined  chan struct{}
	waiting int
	closed  bool

	srv *http.Server
	wg  sync.WaitGroup
}

var _ Transport = (*Net)(nil)

// Dial brings up rank cfg.Rank and returns once a link to every other rank
// is established, or fails when ctx ends or cfg.DialTimeout passes.
func Dial(ctx context.Context, cfg NetConfig) (*Net, error) {
	size := len(cfg.Peers)
	if size == 0 {
		return nil, fmt.Errorf("transport.Dial: no peers: %w", ErrBadRank)
	}
	if err := checkRank("transport.Dial", cfg.Rank, size); err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	n := &Net{
		rank:    cfg.Rank,
		size:    size,
		box:     newMailbox(),
		log:     cfg.Logger.With("component", "transport", "rank", cfg.Rank),
		peers:   make([]*peer, size),
		joined:  make(chan struct{}),
		waiting: size - 1,
	}
	if n.waiting == 0 {
		close(n.joined)
	}

	ln := cfg.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", cfg.Peers[cfg.Rank]); err != nil {
			return nil, fmt.Errorf("transport.Dial: listen: %w", err)
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, n.accept)
	n.srv = &http.Server{Handler: mux, ReadHeaderTimeout: cfg.DialTimeout}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			n.log.Error("listener stopped", "err", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	for r := 0; r < cfg.Rank; r++ {
		u := url.URL{Scheme: "ws", Host: cfg.Peers[r], Path: cfg.Path}
		conn, err := dialRetrying(ctx, u.String())
		if err != nil {
			_ = n.Close()
			return nil, fmt.Errorf("transport.Dial: rank %d at %s: %w", r, cfg.Peers[r], err)
		}
		p := &peer{rank: r, conn: conn}
		if err = p.write(frame{From: n.rank, Tag: tagHello}); err != nil {
			_ = conn.Close()
			_ = n.Close()
			return nil, fmt.Errorf("transport.Dial: hello to rank %d: %w", r, err)
		}
		n.attach(p)
	}

	select {
	case <-n.joined:
	case <-ctx.Done():
		_ = n.Close()
		return nil, fmt.Errorf("transport.Dial: waiting for peers: %w", ctx.Err())
	}
	n.log.Debug("group connected", "size", size)

	return n, nil
}

func dialRetrying(ctx context.Context, u string) (*websocket.Conn, error) {
	d := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	for {
		conn, _, err := d.DialContext(ctx, u, nil)
		if err == nil {
			return conn, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-time.After(dialRetry):
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 16,
	WriteBufferSize: 1 << 16,
}

// accept upgrades an incoming link from a higher rank and reads its hello.
func (n *Net) accept(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		n.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	_, b, err := conn.ReadMessage()
	var hello frame
	if err == nil {
		err = msgpack.Unmarshal(b, &hello)
	}
	if err == nil && (hello.Tag != tagHello || hello.From <= n.rank || hello.From >= n.size) {
		err = fmt.Errorf("%w: from=%d tag=%d", ErrHandshake, hello.From, hello.Tag)
	}
	if err != nil {
		n.log.Warn("rejected connection", "remote", r.RemoteAddr, "err", err)
		_ = conn.Close()
		return
	}
	n.attach(&peer{rank: hello.From, conn: conn})
}

// attach registers p and starts its reader.
func (n *Net) attach(p *peer) {
	n.mu.Lock()
	if n.closed || n.peers[p.rank] != nil {
		n.mu.Unlock()
		_ = p.conn.Close()
		return
	}
	n.peers[p.rank] = p
	n.waiting--
	if n.waiting == 0 {
		close(n.joined)
	}
	n.wg.Add(1)
	n.mu.Unlock()

	go n.read(p)
}

func (n *Net) read(p *peer) {
	defer n.wg.Done()
	for {
		_, b, err := p.conn.ReadMessage()
		if err != nil {
			n.box.drop(p.rank, err)
			if !n.isClosed() && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				n.log.Warn("link lost", "peer", p.rank, "err", err)
			}
			return
		}
		var f frame
		if err = msgpack.Unmarshal(b, &f); err != nil {
			n.log.Error("undecodable frame", "peer", p.rank, "err", err)
			continue
		}
		n.box.put(p.rank, f.Tag, f.Payload)
	}
}

func (n *Net) isClosed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.closed
}

func (n *Net) Rank() int { return n.rank }
func (n *Net) Size() int { return n.size }

func (n *Net) Send(to int, tag Tag, payload []byte) error {
	if err := checkRank("transport.Send", to, n.size); err != nil {
		return err
	}
	if n.isClosed() {
		return ErrClosed
	}
	if to == n.rank {
		cp := make([]byte, len(payload))
		copy(cp, payload)
		n.box.put(n.rank, tag, cp)
		return nil
	}
	n.mu.Lock()
	p := n.peers[to]
	n.mu.Unlock()
	if p == nil {
		return fmt.Errorf("transport.Send: rank %d: %w", to, ErrPeerLost)
	}

	return p.write(frame{From: n.rank, Tag: tag, Payload: payload})
}

func (n *Net) Recv(from int, tag Tag) ([]byte, error) {
	if err := checkRank("transport.Recv", from, n.size); err != nil {
		return nil, err
	}

	return n.box.take(from, tag)
}

func (n *Net) Probe(from int, tag Tag) bool {
	if from < 0 || from >= n.size {
		return false
	}

	return n.box.pending(from, tag)
}

// Close sends a normal close to every peer, stops the listener and waits for
// the reader goroutines to exit.
func (n *Net) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	peers := append([]*peer(nil), n.peers...)
	n.mu.Unlock()

	var errs []error
	for _, p := range peers {
		if p == nil {
			continue
		}
		p.wmu.Lock()
		_ = p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		p.wmu.Unlock()
		if err := p.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := n.srv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	n.box.close()
	n.wg.Wait()

	return errors.Join(errs...)
}
