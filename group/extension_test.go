// SPDX-License-Identifier: MIT
package group

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/internal/transport"
)

const eventsKey = "test-events"

// recorder logs its lifecycle into the group's state. The first one opens
// the transport during its own Init, like a distributed-algebra layer that
// owns the network.
type recorder struct {
	name  string
	opens bool
}

func (r recorder) Name() string { return r.name }

func (r recorder) Init(g *Group) error {
	attached := g.size > 0
	if r.opens {
		if err := g.OpenTransport(); err != nil {
			return err
		}
	}
	record(g, fmt.Sprintf("init:%s attached=%v", r.name, attached))

	return nil
}

func (r recorder) Finalize(g *Group) error {
	if r.opens {
		if err := g.ReleaseTransport(); err != nil {
			return err
		}
	}
	record(g, "fin:"+r.name)

	return nil
}

func record(g *Group, ev string) {
	evs, _ := g.State(eventsKey).([]string)
	g.SetState(eventsKey, append(evs, ev))
}

type failing struct{}

func (failing) Name() string          { return "failing" }
func (failing) Init(*Group) error     { return nil }
func (failing) Finalize(*Group) error { return errors.New("teardown refused") }

func init() {
	Register(recorder{name: "test-first", opens: true})
	Register(recorder{name: "test-second"})
}

func TestExtensions_InitOrderAndReverseFinalize(t *testing.T) {
	g := Init(nil)
	require.Equal(t, []string{
		"init:test-first attached=false",
		"init:test-second attached=true",
	}, g.State(eventsKey))
	require.Equal(t, "test-first", g.openedBy)

	require.NoError(t, g.Finalize())
	require.Equal(t, []string{
		"init:test-first attached=false",
		"init:test-second attached=true",
		"fin:test-second",
		"fin:test-first",
	}, g.State(eventsKey))

	// The extension that opened the transport closed it.
	require.ErrorIs(t, g.tr.Send(0, transport.TagPayload, nil), transport.ErrClosed)
}

func TestExtensions_ExternalTransportIsNeverClosed(t *testing.T) {
	ep := transport.Self()
	g := Init(nil, WithTransport(ep))
	require.Empty(t, g.openedBy)
	require.NoError(t, g.Finalize())
	require.NoError(t, ep.Send(0, transport.TagPayload, nil))
}

func TestFinalize_FailingStepDoesNotStopTeardown(t *testing.T) {
	g := Init(nil)
	g.exts = append(g.exts[:1], append([]Extension{failing{}}, g.exts[1:]...)...)

	err := g.Finalize()
	require.ErrorContains(t, err, "teardown refused")
	evs := g.State(eventsKey).([]string)
	require.Contains(t, evs, "fin:test-second")
	require.Contains(t, evs, "fin:test-first") // ran after the failure
}

func TestRegister_Duplicate(t *testing.T) {
	require.Panics(t, func() { Register(recorder{name: "test-first"}) })
	require.Equal(t, []string{"test-first", "test-second"}, Registered())
}
