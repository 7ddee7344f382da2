// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding, only integer PCM is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrTooLarge is returned when the signal does not fit the 32-bit size
	// fields of a RIFF header.
	ErrTooLarge = errors.New("signal too large for a WAV file")
)
