// SPDX-License-Identifier: MIT

package group

import (
	"log/slog"

	"github.com/katalvlaran/lvlinalg/internal/transport"
)

// Option adjusts Init. Options are applied before launch flags are parsed.
type Option func(*options)

type options struct {
	cfg       Config
	transport transport.Transport
	logger    *slog.Logger
}

// WithConfig replaces DefaultConfig as the starting configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithTransport attaches an already connected transport. The group uses it
// as is and never closes it; the caller owns its lifetime.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sends the group's logs to l instead of a logger built from the
// configuration.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
