// SPDX-License-Identifier: MIT

package group

import (
	"errors"
	"fmt"
)

// Sentinel errors. Fatal reports wrap them, so tests match with errors.Is.
var (
	// ErrFinalized is raised when a group is used after Finalize.
	ErrFinalized = errors.New("group: already finalized")

	// ErrUnknownKind is raised for an element kind outside Int32..Float64.
	ErrUnknownKind = errors.New("group: unknown element kind")

	// ErrKindMismatch is raised when a buffer's Go type does not match its kind.
	ErrKindMismatch = errors.New("group: buffer does not match element kind")

	// ErrProtocol marks a header/payload pair that disagrees in length.
	ErrProtocol = errors.New("group: malformed message")

	// ErrBadConfig marks an unusable launch configuration.
	ErrBadConfig = errors.New("group: invalid configuration")

	// ErrDuplicateExtension is raised by Register for a name already taken.
	ErrDuplicateExtension = errors.New("group: extension already registered")
)

func groupErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
