// SPDX-License-Identifier: EPL-2.0

// Package wav encodes audio buffers as 16-bit PCM WAV and decodes integer
// PCM WAV files.
//
// # Encoding
//
// EncodeWAV always produces the canonical 44-byte RIFF/WAVE header followed
// by interleaved little-endian int16 samples, so the output length is
// frames*channels*2 + 44:
//
//	data, err := wav.EncodeWAV(buf)
//
// WriteWAV streams the same bytes to an io.Writer without holding the whole
// file in memory.
//
// Quantization clamps every sample to [-1, 1], then scales negative values
// by 32768 and the rest by 32767, truncating toward zero.
//
// # Decoding
//
// Decoder reads 8, 16, 24 and 32-bit integer PCM with any number of channels
// through github.com/go-audio/wav. Inputs that are not seekable are read
// into memory first.
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// Floating point and compressed WAV encodings are rejected with
// ErrUnsupportedEncoding.
package wav
