// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Whole-buffer elementwise kernels (fill, shift, scale, copy, add, sub, sum).
//   - Optional loop-level parallelism per matrix instance (UseParallel).
//
// Design:
//   - Binary kernels (Add/Sub/Copy) walk min(len(a), len(b)) elements and never
//     check shapes: operands of different lengths silently use the shorter one.
//   - The destination's parallel flag decides whether a loop is split.
//
// Determinism & Performance:
//   - Chunks are contiguous and fixed for a given (n, workers); writes never
//     overlap, so results are identical to the serial loop. Parallel reductions
//     combine per-chunk partials in chunk order.
//
// AI-Hints:
//   - Parallelism pays off only for large buffers; tune WithMinParallel.

package matrix

import (
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// UseParallel toggles loop-level parallelism for elementwise operations on m.
func (m *Dense) UseParallel(on bool) { m.parallel = on }

// Parallel reports the current per-instance flag.
func (m *Dense) Parallel() bool { return m.parallel }

// forRange runs fn over [0,n) split into contiguous chunks.
//
// Implementation:
//   - Stage 1: stay serial unless m is parallel and n reaches minParallel.
//   - Stage 2: one goroutine per chunk via errgroup; wait for all.
//
// Complexity:
//   - Time O(n / workers) wall-clock, Space O(workers).
func (m *Dense) forRange(n int, fn func(lo, hi int)) {
	if !m.parallel || n < m.minParallel || m.workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + m.workers - 1) / m.workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // kernels never fail
}

// reduceRange sums fn over [0,n) with the same chunking as forRange.
func (m *Dense) reduceRange(n int, fn func(lo, hi int) float64) float64 {
	if !m.parallel || n < m.minParallel || m.workers <= 1 {
		return fn(0, n)
	}
	chunk := (n + m.workers - 1) / m.workers
	parts := make([]float64, (n+chunk-1)/chunk)
	var g errgroup.Group
	for k := range parts {
		k := k
		g.Go(func() error {
			lo := k * chunk
			parts[k] = fn(lo, min(lo+chunk, n))
			return nil
		})
	}
	_ = g.Wait()

	var total float64
	for _, p := range parts {
		total += p
	}

	return total
}

// SetAll writes x into every element.
func (m *Dense) SetAll(x float64) {
	m.forRange(len(m.data), func(lo, hi int) {
		for n := lo; n < hi; n++ {
			m.data[n] = x
		}
	})
}

// SetZero clears every element.
func (m *Dense) SetZero() {
	m.forRange(len(m.data), func(lo, hi int) {
		clear(m.data[lo:hi])
	})
}

// SetRandom fills m with uniform values in [0, 1).
func (m *Dense) SetRandom() {
	m.forRange(len(m.data), func(lo, hi int) {
		for n := lo; n < hi; n++ {
			m.data[n] = rand.Float64()
		}
	})
}

// IncrAll adds x to every element.
func (m *Dense) IncrAll(x float64) {
	m.forRange(len(m.data), func(lo, hi int) {
		for n := lo; n < hi; n++ {
			m.data[n] += x
		}
	})
}

// DecrAll subtracts x from every element.
func (m *Dense) DecrAll(x float64) { m.IncrAll(-x) }

// ScaleAll multiplies every element by x.
func (m *Dense) ScaleAll(x float64) {
	m.forRange(len(m.data), func(lo, hi int) {
		for n := lo; n < hi; n++ {
			m.data[n] *= x
		}
	})
}

// Sum returns the sum of all elements.
func (m *Dense) Sum() float64 {
	return m.reduceRange(len(m.data), func(lo, hi int) float64 {
		var s float64
		for n := lo; n < hi; n++ {
			s += m.data[n]
		}
		return s
	})
}

// Copy computes a = b*alpha + beta over min(len(a), len(b)) elements.
//
// Behavior highlights:
//   - No shape check; extra elements of the longer operand are untouched.
//
// Complexity:
//   - Time O(min(|a|,|b|)), Space O(1).
func Copy(a, b *Dense, alpha, beta float64) {
	n := min(len(a.data), len(b.data))
	a.forRange(n, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			a.data[k] = b.data[k]*alpha + beta
		}
	})
}

// Add computes c = a*alpha + b*beta over min(len(a), len(b)) elements.
//
// Behavior highlights:
//   - c must hold at least min(len(a), len(b)) elements.
//
// Complexity:
//   - Time O(min(|a|,|b|)), Space O(1).
func Add(alpha float64, a *Dense, beta float64, b, c *Dense) {
	n := min(len(a.data), len(b.data))
	c.forRange(n, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			c.data[k] = a.data[k]*alpha + b.data[k]*beta
		}
	})
}

// Sub computes c = alpha*a - beta*b over min(len(a), len(b)) elements.
func Sub(alpha float64, a *Dense, beta float64, b, c *Dense) {
	n := min(len(a.data), len(b.data))
	c.forRange(n, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			c.data[k] = a.data[k]*alpha - b.data[k]*beta
		}
	})
}

// Swap exchanges the shape and storage of a and b in O(1).
func Swap(a, b *Dense) {
	a.r, b.r = b.r, a.r
	a.c, b.c = b.c, a.c
	a.data, b.data = b.data, a.data
}
