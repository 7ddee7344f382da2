package audio

import (
	"errors"
	"io"
	"math"
)

// mockSource generates frames from a waveform function.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame, channel int) float32
	closed     bool
}

func newMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newConstantSource(sampleRate, channels, frames, 0)
}

func newSineSource(sampleRate, channels, frames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func newConstantSource(sampleRate, channels, frames int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// newStereoSource emits left on channel 0 and right on channel 1.
func newStereoSource(sampleRate, frames int, left, right float32) *mockSource {
	return newMockSource(sampleRate, 2, frames, func(_, channel int) float32 {
		if channel == 0 {
			return left
		}
		return right
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range count {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += count

	if m.generated >= m.frames {
		return count * m.channels, io.EOF
	}

	return count * m.channels, nil
}

// chunkedSource hands out interleaved data at most step samples per call,
// ignoring frame boundaries.
type chunkedSource struct {
	data     []float32
	channels int
	step     int
}

func (s *chunkedSource) SampleRate() int { return 8000 }
func (s *chunkedSource) Channels() int   { return s.channels }
func (s *chunkedSource) BufSize() int    { return 64 }
func (s *chunkedSource) Close() error    { return nil }

func (s *chunkedSource) ReadSamples(dst []float32) (int, error) {
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	n := copy(dst[:min(len(dst), s.step)], s.data)
	s.data = s.data[n:]
	return n, nil
}

// stalledSource never produces data and never finishes.
type stalledSource struct{}

func (stalledSource) SampleRate() int                    { return 8000 }
func (stalledSource) Channels() int                      { return 1 }
func (stalledSource) BufSize() int                       { return 16 }
func (stalledSource) Close() error                       { return nil }
func (stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

var errBrokenSource = errors.New("broken source")

// brokenSource fails on the first read.
type brokenSource struct{ stalledSource }

func (brokenSource) ReadSamples([]float32) (int, error) { return 0, errBrokenSource }
