// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory PCM model and low-level streaming
// primitives shared by the codecs and effects.
//
// # Buffers
//
// A Buffer holds a fully decoded signal as planar float32 channels:
//
//	buf := audio.NewBuffer(2, 44100, 44100) // 1 second of stereo silence
//	left := buf.Channel(0)
//	left[0] = 0.5
//
//	work := buf.Clone() // independent copy, safe to mutate
//
// Every effect in this module takes a Buffer and returns a Buffer of the same
// shape (channels, frames, sample rate).
//
// # Sources
//
// Decoders produce a streaming Source of interleaved samples. ReadAll drains
// a Source into a Buffer, and Buffer.Reader goes the other way:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// # Resampling and mixing
//
// Resampler converts the rate of any Source with cubic interpolation and
// MonoMixer averages channels down to one:
//
//	res := audio.NewResampler(buf.Reader(), 16000)
//	mono := audio.NewMonoMixer(res)
//
// # Format Registry
//
// The registry maps format names, extensions and MIME types to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, ".wav", "audio/wav")
//	buf, err := registry.Decode("audio/wav", file)
//
// # Sample Format
//
// Samples are float32, nominally in [-1.0, 1.0]. Buffers never clamp; the
// WAV encoder clamps when quantizing to 16 bits.
package audio
