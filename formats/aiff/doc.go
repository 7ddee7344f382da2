// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio through github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 and 32 bits are normalized to float32 in [-1, 1].
// The underlying decoder needs an io.ReadSeeker; other readers are buffered
// in memory first.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
package aiff
