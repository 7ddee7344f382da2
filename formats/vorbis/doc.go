// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio through
// github.com/jfreymuth/oggvorbis.
//
// Any channel count is supported. Samples come out of the Vorbis decoder as
// float32 already and are passed through unchanged.
package vorbis
