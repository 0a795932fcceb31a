// SPDX-License-Identifier: MIT

package group

import (
	"fmt"
	"sync"
)

// Extension is a component that must be brought up before the messaging
// layer and torn down after it. Packages link an extension by calling
// Register from their init function; Init then runs every linked extension
// in registration order and Finalize runs them in reverse.
type Extension interface {
	Name() string
	Init(g *Group) error
	Finalize(g *Group) error
}

var registry struct {
	mu   sync.Mutex
	exts []Extension
}

// Register links e into every group created afterwards. Registering two
// extensions with the same name panics.
func Register(e Extension) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, have := range registry.exts {
		if have.Name() == e.Name() {
			panic(fmt.Errorf("%w: %q", ErrDuplicateExtension, e.Name()))
		}
	}
	registry.exts = append(registry.exts, e)
}

// Registered lists the linked extensions in initialization order.
func Registered() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	names := make([]string, len(registry.exts))
	for i, e := range registry.exts {
		names[i] = e.Name()
	}

	return names
}

func linked() []Extension {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return append([]Extension(nil), registry.exts...)
}

// State returns the value an extension stored under name on g, or nil.
func (g *Group) State(name string) any {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state[name]
}

// SetState stores per-group extension state under name.
func (g *Group) SetState(name string, v any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state[name] = v
}
