// SPDX-License-Identifier: MIT

package group

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/internal/transport"
)

const (
	opInit     = "group.Init"
	opFinalize = "group.Finalize"
	opBarrier  = "group.Barrier"

	stageMessaging = "messaging"
)

// ThreadLevel is the degree of concurrent messaging a group supports.
type ThreadLevel int

const (
	ThreadSingle     ThreadLevel = iota // one goroutine only
	ThreadFunneled                      // any goroutine, one at a time, main only
	ThreadSerialized                    // any goroutine, calls serialized
	ThreadMultiple                      // fully concurrent
)

func (l ThreadLevel) String() string {
	switch l {
	case ThreadSingle:
		return "single"
	case ThreadFunneled:
		return "funneled"
	case ThreadSerialized:
		return "serialized"
	case ThreadMultiple:
		return "multiple"
	}

	return fmt.Sprintf("ThreadLevel(%d)", int(l))
}

// Group is the context every distributed operation runs in: this process's
// rank, the group size, the transport and the linked extensions.
//
// A Group is created by Init and is usable until Finalize. Any operation on
// a finalized group is fatal.
type Group struct {
	rank, size int
	level      ThreadLevel
	cfg        Config
	args       []string

	base *slog.Logger
	log  *slog.Logger

	tr       transport.Transport
	external bool   // supplied through WithTransport; never closed here
	openedBy string // stage that opened tr
	stage    string // stage currently initializing or finalizing

	exts []Extension

	sendMu sync.Mutex // header+payload pairs stay adjacent
	recvMu sync.Mutex
	collMu sync.Mutex // one collective or barrier at a time

	mu        sync.Mutex
	state     map[string]any
	finalized atomic.Bool
}

// Init brings up the group for this process.
//
// Implementation:
//   - Stage 1: resolve configuration (options, then -group-* flags in args).
//   - Stage 2: initialize every linked extension in registration order; an
//     extension may open the transport itself (OpenTransport).
//   - Stage 3: attach the messaging layer, opening the transport if no
//     extension did, and read rank, size and thread level.
//
// Any failure is fatal. Arguments that are not launch flags are kept and
// returned by Args.
func Init(args []string, opts ...Option) *Group {
	o := gatherOptions(opts...)
	launch, rest := splitArgs(args)
	cfg, err := applyFlags(o.cfg, launch)
	if err != nil && o.transport == nil {
		fault.Fatal(opInit, fault.StatusGeneric, err)
		return nil
	}

	base := o.logger
	if base == nil {
		base = newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	}
	g := &Group{
		cfg:      cfg,
		args:     rest,
		base:     base,
		log:      base,
		tr:       o.transport,
		external: o.transport != nil,
		state:    make(map[string]any),
	}

	for _, e := range linked() {
		g.stage = e.Name()
		if err = e.Init(g); err != nil {
			fault.Fatal(opInit, fault.StatusOf(err), fmt.Errorf("extension %s: %w", e.Name(), err))
			return nil
		}
		g.exts = append(g.exts, e)
	}

	g.stage = stageMessaging
	if err = g.OpenTransport(); err != nil {
		fault.Fatal(opInit, fault.StatusOf(err), fmt.Errorf("%s: %w", stageMessaging, err))
		return nil
	}
	g.stage = ""
	g.log.Debug("group initialized", "size", g.size, "thread_level", g.level, "extensions", g.extNames())

	return g
}

// OpenTransport connects the group if it is not connected yet. Extensions
// that need the network during their own Init call it; the stage that opens
// the transport is the one whose ReleaseTransport closes it.
func (g *Group) OpenTransport() error {
	if g.size > 0 {
		return nil
	}
	if g.tr == nil {
		t, err := dialConfigured(g.cfg, g.base)
		if err != nil {
			return err
		}
		g.tr = t
		g.openedBy = g.stage
	}
	g.rank, g.size = g.tr.Rank(), g.tr.Size()
	g.level = ThreadSerialized
	g.log = g.base.With("rank", g.rank)

	return nil
}

// ReleaseTransport closes the transport when the calling stage opened it.
func (g *Group) ReleaseTransport() error {
	if g.tr == nil || g.external || g.openedBy == "" || g.openedBy != g.stage {
		return nil
	}
	g.openedBy = ""

	return g.tr.Close()
}

func dialConfigured(cfg Config, log *slog.Logger) (transport.Transport, error) {
	switch cfg.Transport {
	case TransportLocal:
		return transport.Self(), nil
	case TransportWS:
		d, err := cfg.dialTimeout()
		if err != nil {
			return nil, err
		}
		return transport.Dial(context.Background(), transport.NetConfig{
			Rank:        cfg.Rank,
			Peers:       cfg.Peers,
			Path:        cfg.Path,
			DialTimeout: d,
			Logger:      log,
		})
	}

	return nil, fmt.Errorf("%w: transport %q", ErrBadConfig, cfg.Transport)
}

// Finalize tears the group down in reverse order of Init: the messaging
// layer (final barrier, transport release) first, then each extension. A
// failing step is logged and the remaining steps still run; the joined
// failures are returned. A second Finalize is fatal.
func (g *Group) Finalize() error {
	g.live(opFinalize)

	var errs []error
	report := func(stage string, err error) {
		if err != nil {
			g.log.Error("finalize step failed", "stage", stage, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", stage, err))
		}
	}

	g.stage = stageMessaging
	report(stageMessaging, g.barrier())
	report(stageMessaging, g.ReleaseTransport())
	for i := len(g.exts) - 1; i >= 0; i-- {
		e := g.exts[i]
		g.stage = e.Name()
		report(e.Name(), e.Finalize(g))
	}
	g.stage = ""
	g.finalized.Store(true)
	g.log.Debug("group finalized")

	return errors.Join(errs...)
}

// live makes any use of a finalized group fatal.
func (g *Group) live(op string) {
	if g.finalized.Load() {
		fault.Fatal(op, fault.StatusGeneric, ErrFinalized)
	}
}

// Rank returns this process's zero-based rank.
func (g *Group) Rank() int {
	g.live("group.Rank")
	return g.rank
}

// Size returns the number of processes in the group.
func (g *Group) Size() int {
	g.live("group.Size")
	return g.size
}

// ThreadLevel reports how the messaging layer may be called concurrently.
func (g *Group) ThreadLevel() ThreadLevel {
	g.live("group.ThreadLevel")
	return g.level
}

// Logger returns the group logger, tagged with the rank.
func (g *Group) Logger() *slog.Logger { return g.log }

// Args returns the arguments Init did not consume.
func (g *Group) Args() []string { return append([]string(nil), g.args...) }

// Barrier blocks until every rank has called it. A no-op for one rank.
func (g *Group) Barrier() {
	g.live(opBarrier)
	fault.Check(opBarrier, g.barrier())
}

// barrier gathers an arrival token on rank 0, then releases everyone.
func (g *Group) barrier() error {
	if g.size <= 1 || g.tr == nil {
		return nil
	}
	g.collMu.Lock()
	defer g.collMu.Unlock()

	if g.rank != 0 {
		if err := g.tr.Send(0, transport.TagBarrier, nil); err != nil {
			return err
		}
		_, err := g.tr.Recv(0, transport.TagBarrier)
		return err
	}
	for r := 1; r < g.size; r++ {
		if _, err := g.tr.Recv(r, transport.TagBarrier); err != nil {
			return err
		}
	}
	for r := 1; r < g.size; r++ {
		if err := g.tr.Send(r, transport.TagBarrier, nil); err != nil {
			return err
		}
	}

	return nil
}

func (g *Group) extNames() []string {
	names := make([]string, len(g.exts))
	for i, e := range g.exts {
		names[i] = e.Name()
	}

	return names
}

// About prints the group layout. Diagnostic output only.
func (g *Group) About(w io.Writer) {
	kind := g.cfg.Transport
	if g.external {
		kind = "external"
	}
	exts := strings.Join(g.extNames(), ", ")
	if exts == "" {
		exts = "(none)"
	}
	fmt.Fprintf(w, "# processes    = %d\n", g.size)
	fmt.Fprintf(w, "# rank         = %d\n", g.rank)
	fmt.Fprintf(w, "# thread level = %s\n", g.level)
	fmt.Fprintf(w, "# transport    = %s\n", kind)
	fmt.Fprintf(w, "# extensions   = %s\n", exts)
}
