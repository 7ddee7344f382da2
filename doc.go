// SPDX-License-Identifier: EPL-2.0

// Package audfx transposes songs and strips their vocals offline.
//
// A run decodes a WAV, MP3, Ogg Vorbis or AIFF file into memory, optionally
// shifts its pitch by whole semitones without changing its duration,
// optionally attenuates center-panned content (karaoke mode), and encodes
// the result as a 16-bit PCM WAV file.
//
// # Quick Start
//
//	artifact, err := audfx.ProcessFile("song.mp3", audfx.Config{}, pipeline.Options{
//		Semitones:    -2,
//		RemoveVocals: true,
//	})
//	if err != nil {
//		log.Fatal(pipeline.UserMessage(err))
//	}
//
//	out, _ := os.Create(artifact.FileName(""))
//	defer out.Close()
//	artifact.WriteTo(out)
//
// # Building Blocks
//
// The root package only wires the subpackages together:
//   - audio: planar Buffer, streaming Source, decoder Registry, resampler
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders, and
//     the WAV encoder
//   - effects: vocal removal and the pitch-shift engines
//   - pipeline: the single-flight processing run, Artifact and Session
//
// NewRegistry returns a registry that knows every bundled decoder under its
// format name, file extensions and MIME types. NewSession builds a
// pipeline.Session on top of it.
package audfx
