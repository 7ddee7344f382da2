// SPDX-License-Identifier: EPL-2.0

// Package effects holds the buffer transforms applied by the processing
// pipeline: mid/side vocal attenuation and semitone pitch shifting.
//
// Every transform keeps the channel count, frame count and sample rate of
// its input and returns a new buffer.
//
// Pitch shifting is split between PitchShifter, which owns the failure
// policy, and an Engine that renders the audio. Two engines are provided:
//
//   - WSOLA stretches the signal in time by the pitch ratio with a
//     waveform-similarity overlap-add, then resamples it back to the input
//     length through a Fitter (CubicFitter or PolyphaseFitter).
//   - Granular sweeps two crossfaded taps across a 100 ms delay line.
//
// Basic usage:
//
//	engine, err := effects.EngineByName("wsola", "polyphase")
//	if err != nil {
//		return err
//	}
//	shifter := effects.NewPitchShifter(engine, logger)
//	shifted := shifter.Shift(buf, -3)
//	karaoke := effects.RemoveVocals(shifted)
package effects
