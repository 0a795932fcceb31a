// SPDX-License-Identifier: MIT

package dist

import (
	"sync/atomic"

	"github.com/katalvlaran/lvlinalg/group"
)

const (
	extAlgebra     = "algebra"
	extEigensolver = "eigensolver"
)

type algebraStats struct {
	matrices, vectors atomic.Int64
}

type solverStats struct {
	solves, restarts atomic.Int64
}

// algebraExtension brings up the transport itself, so it also tears it
// down after the messaging layer has detached.
type algebraExtension struct{}

func (algebraExtension) Name() string { return extAlgebra }

func (algebraExtension) Init(g *group.Group) error {
	if err := g.OpenTransport(); err != nil {
		return err
	}
	g.SetState(extAlgebra, &algebraStats{})

	return nil
}

func (algebraExtension) Finalize(g *group.Group) error {
	if s, ok := g.State(extAlgebra).(*algebraStats); ok {
		g.Logger().Debug("algebra finalized", "matrices", s.matrices.Load(), "vectors", s.vectors.Load())
	}

	return g.ReleaseTransport()
}

type eigensolverExtension struct{}

func (eigensolverExtension) Name() string { return extEigensolver }

func (eigensolverExtension) Init(g *group.Group) error {
	g.SetState(extEigensolver, &solverStats{})
	return nil
}

func (eigensolverExtension) Finalize(g *group.Group) error {
	if s, ok := g.State(extEigensolver).(*solverStats); ok {
		g.Logger().Debug("eigensolver finalized", "solves", s.solves.Load(), "restarts", s.restarts.Load())
	}

	return nil
}
