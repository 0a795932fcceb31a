// SPDX-License-Identifier: MIT

package group

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlinalg/internal/fault"
	"github.com/katalvlaran/lvlinalg/internal/transport"
)

// RunLocal runs fn on size ranks inside this process, one goroutine per
// rank, each with its own Group over a shared in-process hub. Every rank is
// finalized after fn returns nil.
//
// The first error (or fatal report turned into a panic by a test handler)
// cancels the run: the hub is closed so ranks blocked in messaging wake up
// instead of hanging. RunLocal returns that first error.
func RunLocal(size int, fn func(g *Group) error, opts ...Option) error {
	hub := transport.NewHub(size)
	eg, ctx := errgroup.WithContext(context.Background())
	go func() {
		<-ctx.Done()
		hub.Close()
	}()

	for r := 0; r < size; r++ {
		eg.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					if fe, ok := p.(*fault.Error); ok {
						err = fe
						return
					}
					err = fmt.Errorf("rank %d: panic: %v", r, p)
				}
			}()

			g := Init(nil, append(opts, WithTransport(hub.Endpoint(r)))...)
			if err = fn(g); err != nil {
				return fmt.Errorf("rank %d: %w", r, err)
			}

			return g.Finalize()
		})
	}

	return eg.Wait()
}
