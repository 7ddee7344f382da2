// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds signal fixtures and measurements shared by tests.
package audiotest

import (
	"math"

	"github.com/ik5/audfx/audio"
)

// NewBuffer renders waveform into a planar buffer.
func NewBuffer(sampleRate, channels, frames int, waveform Waveform) *audio.Buffer {
	buf := audio.NewBuffer(channels, frames, sampleRate)
	for c := range channels {
		data := buf.Channel(c)
		for i := range data {
			data[i] = waveform(i, c)
		}
	}
	return buf
}

// SineBuffer is a sine tone on every channel.
func SineBuffer(sampleRate, channels, frames int, frequency, amplitude float64) *audio.Buffer {
	return NewBuffer(sampleRate, channels, frames, Sine(sampleRate, frequency, amplitude))
}

// StereoBuffer renders separate left and right waveforms.
func StereoBuffer(sampleRate, frames int, left, right Waveform) *audio.Buffer {
	return NewBuffer(sampleRate, 2, frames, func(frame, channel int) float32 {
		if channel == 0 {
			return left(frame, 0)
		}
		return right(frame, 1)
	})
}

// RMS of samples.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Peak returns the largest absolute sample.
func Peak(samples []float32) float64 {
	var peak float64
	for _, s := range samples {
		peak = max(peak, math.Abs(float64(s)))
	}
	return peak
}

// MaxAbsDiff returns the largest absolute difference between a and b over
// their common length.
func MaxAbsDiff(a, b []float32) float64 {
	var diff float64
	for i := range min(len(a), len(b)) {
		diff = max(diff, math.Abs(float64(a[i]-b[i])))
	}
	return diff
}

// ZeroCrossings counts sign changes, a cheap pitch estimate for pure tones.
func ZeroCrossings(samples []float32) int {
	count := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			count++
		}
	}
	return count
}
