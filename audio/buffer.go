// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded, in-memory PCM signal.
//
// Samples are stored planar (one slice per channel) as float32, nominally in
// [-1.0, 1.0]. Values outside that range are kept as-is; clamping happens only
// when encoding.
type Buffer struct {
	sampleRate int
	channels   [][]float32
}

// NewBuffer allocates a silent buffer with the given shape.
func NewBuffer(channelCount, frameCount, sampleRate int) *Buffer {
	channels := make([][]float32, channelCount)
	for c := range channels {
		channels[c] = make([]float32, frameCount)
	}

	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// NewBufferFromChannels wraps existing channel slices without copying them.
// All slices are expected to have the same length; use Validate to check.
func NewBufferFromChannels(sampleRate int, channels ...[]float32) *Buffer {
	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.channels) }

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Channel returns the backing slice of channel c. Writes through the
// returned slice modify the buffer.
func (b *Buffer) Channel(c int) []float32 {
	return b.channels[c]
}

// Duration of the signal at its sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.sampleRate)
}

// Clone returns a deep copy that shares no storage with b.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		sampleRate: b.sampleRate,
		channels:   make([][]float32, len(b.channels)),
	}
	for c, data := range b.channels {
		out.channels[c] = make([]float32, len(data))
		copy(out.channels[c], data)
	}

	return out
}

// SameShape reports whether o has the same channel count, frame count and
// sample rate as b.
func (b *Buffer) SameShape(o *Buffer) bool {
	if b == nil || o == nil {
		return false
	}
	return b.sampleRate == o.sampleRate &&
		b.Channels() == o.Channels() &&
		b.Frames() == o.Frames()
}

// Validate checks the structural invariants of the buffer.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if len(b.channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}
	if b.sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.sampleRate)
	}

	frames := len(b.channels[0])
	for c, data := range b.channels {
		if len(data) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d",
				ErrInvalidBuffer, c, len(data), frames)
		}
	}

	return nil
}

// Reader exposes the buffer as an interleaved Source. The buffer must not be
// modified while the reader is in use.
func (b *Buffer) Reader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int // next frame
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return defaultBufSize }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = s.buf.channels[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

// ReadAll drains src into a planar Buffer. The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrInvalidBuffer, channels)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: source reports sample rate %d", ErrInvalidBuffer, src.SampleRate())
	}

	size := src.BufSize()
	if size < channels {
		size = defaultBufSize
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	planar := make([][]float32, channels)
	buf := make([]float32, size)
	// Leftover samples of a frame split across two reads.
	var partial []float32
	// Sources may return (0, nil) transiently.
	stalled := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data := buf[:n]
			if len(partial) > 0 {
				data = append(partial, data...)
				partial = nil
			}

			frames := len(data) / channels
			for f := range frames {
				base := f * channels
				for c := range channels {
					planar[c] = append(planar[c], data[base+c])
				}
			}

			if rest := len(data) % channels; rest > 0 {
				partial = append([]float32(nil), data[len(data)-rest:]...)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		if n == 0 {
			stalled++
			if stalled >= maxStalledReads {
				return nil, fmt.Errorf("reading source: %w", io.ErrNoProgress)
			}
			continue
		}
		stalled = 0
	}

	// Every channel must exist even for an empty stream.
	for c := range planar {
		if planar[c] == nil {
			planar[c] = []float32{}
		}
	}

	return NewBufferFromChannels(src.SampleRate(), planar...), nil
}
