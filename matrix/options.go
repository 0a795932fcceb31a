// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for dense allocation.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Parallelism is a per-instance flag (UseParallel toggles it later).
//   - Even a parallel matrix runs serially below minParallel elements;
//     goroutine fan-out costs more than the loop for small buffers.
package matrix

import "runtime"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the symmetry tolerance used by ValidateSymmetric.
	DefaultEpsilon = 1e-9

	// DefaultParallel is the initial per-instance parallel flag.
	DefaultParallel = false

	// DefaultMinParallel is the smallest element count worth splitting.
	DefaultMinParallel = 1 << 14
)

// DefaultWorkers is the goroutine budget of a parallel elementwise loop.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid     = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicWorkersInvalid     = "matrix: WithWorkers: workers must be > 0"
	panicMinParallelInvalid = "matrix: WithMinParallel: threshold must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Public entry points accept `...Option` and resolve them via gatherOptions.
type Options struct {
	eps         float64 // >= 0; DefaultEpsilon
	parallel    bool    // DefaultParallel
	workers     int     // > 0; DefaultWorkers
	minParallel int     // > 0; DefaultMinParallel
}

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the tolerance used by symmetry checks.
//
// Errors:
//   - Panics with a stable message when eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithParallel turns on goroutine-split elementwise loops for the new matrix.
func WithParallel() Option {
	return func(o *Options) { o.parallel = true }
}

// WithWorkers caps the number of goroutines a parallel loop may use.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithMinParallel sets the element count below which loops stay serial.
func WithMinParallel(n int) Option {
	if n <= 0 {
		panic(panicMinParallelInvalid)
	}

	return func(o *Options) { o.minParallel = n }
}

// defaultOptions returns the zero-configuration baseline.
func defaultOptions() Options {
	return Options{
		eps:         DefaultEpsilon,
		parallel:    DefaultParallel,
		workers:     DefaultWorkers,
		minParallel: DefaultMinParallel,
	}
}

// gatherOptions applies opts over defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers < 1 {
		o.workers = 1
	}

	return o
}
