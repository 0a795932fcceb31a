// SPDX-License-Identifier: MIT

// Package fault is the single exit point for unrecoverable conditions.
//
// Purpose:
//   - Give every layer one way to report an AllocationFailure, BackendFailure,
//     BoundsViolation, MalformedPersistedData or MessagingProtocolError.
//   - Log the operation name and status code through log/slog, then terminate.
//
// Internal packages return ordinary errors; only the public surface that
// documents a condition as fatal calls Fatal or Check. Tests replace the
// terminating handler with SetHandler so fatal paths become panics.
package fault

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// StatusOK is the status reported when the cause carries no backend code.
const (
	StatusOK      = 0
	StatusGeneric = 1
)

// Error is the payload handed to the fatal handler.
type Error struct {
	Op     string // operation tag, e.g. "matrix.Invert" or "dgetrf"
	Status int    // backend or protocol status code
	Err    error  // underlying cause (may wrap a sentinel)
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: failed with status %d: %v", e.Op, e.Status, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Statuser is implemented by errors that carry a numeric status
// (LAPACK info, transport close codes, ...).
type Statuser interface {
	Status() int
}

// Handler receives a fatal condition. It must not return normally in
// production; test handlers usually panic.
type Handler func(e *Error)

var (
	mu      sync.RWMutex
	handler Handler = exitHandler
	logger  *slog.Logger
)

// exitHandler logs and terminates the process with exit code 1.
func exitHandler(e *Error) {
	log().Error("fatal", "op", e.Op, "status", e.Status, "err", e.Err)
	os.Exit(1)
}

func log() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// SetLogger routes fatal reports to l. A nil l restores slog.Default().
func SetLogger(l *slog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetHandler installs h and returns a function that restores the previous one.
func SetHandler(h Handler) (restore func()) {
	mu.Lock()
	prev := handler
	handler = h
	mu.Unlock()

	return func() {
		mu.Lock()
		handler = prev
		mu.Unlock()
	}
}

// Fatal reports an unrecoverable condition for op and never returns
// (unless a test handler was installed and chose to return).
func Fatal(op string, status int, err error) {
	mu.RLock()
	h := handler
	mu.RUnlock()
	h(&Error{Op: op, Status: status, Err: err})
}

// Check is a no-op for a nil err; otherwise it calls Fatal with the status
// carried by err (StatusGeneric when none).
func Check(op string, err error) {
	if err == nil {
		return
	}
	Fatal(op, StatusOf(err), err)
}

// StatusOf extracts a status code from err's chain.
func StatusOf(err error) int {
	var s Statuser
	if errors.As(err, &s) {
		return s.Status()
	}
	if err == nil {
		return StatusOK
	}
	return StatusGeneric
}

// PanicHandler is a Handler that panics with the *Error. Meant for tests.
func PanicHandler(e *Error) { panic(e) }
