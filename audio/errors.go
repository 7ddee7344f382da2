// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

const (
	defaultBufSize  = 4096
	maxStalledReads = 64
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidBuffer is returned when a Buffer or Source violates the
	// shape invariants (channels, frames, sample rate).
	ErrInvalidBuffer = errors.New("invalid audio buffer")

	// ErrUnknownFormat is returned by Registry.Decode when no decoder is
	// registered under the requested key.
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
