// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio through github.com/hajimehoshi/go-mp3.
//
// The underlying decoder always emits stereo 16-bit PCM, so every Source
// returned by Decoder reports two channels, including for mono files.
// Samples are normalized to float32 in [-1, 1].
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
package mp3
