// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"strings"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/ik5/audfx/audio"
)

// Fitter resamples a time-stretched buffer to an exact frame count, which
// turns the stretch into a pitch change at the original duration.
type Fitter interface {
	Name() string
	Fit(buf *audio.Buffer, frames int) (*audio.Buffer, error)
}

// FitterByName maps "cubic" (the default) and "polyphase" to fitters.
func FitterByName(name string) (Fitter, error) {
	switch strings.ToLower(name) {
	case "", ResamplerCubic:
		return CubicFitter{}, nil
	case ResamplerPolyphase:
		return PolyphaseFitter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResampler, name)
	}
}

// CubicFitter streams the buffer through audio.Resampler. The buffer length
// and the target length stand in for the source and destination rates.
type CubicFitter struct{}

func (CubicFitter) Name() string { return ResamplerCubic }

func (CubicFitter) Fit(buf *audio.Buffer, frames int) (*audio.Buffer, error) {
	if buf.Frames() == frames {
		return buf.Clone(), nil
	}
	if buf.Frames() == 0 || frames <= 0 {
		return audio.NewBuffer(buf.Channels(), max(frames, 0), buf.SampleRate()), nil
	}

	channels := make([][]float32, buf.Channels())
	for c := range channels {
		channels[c] = buf.Channel(c)
	}
	pseudo := audio.NewBufferFromChannels(buf.Frames(), channels...)

	res := audio.NewResampler(pseudo.Reader(), frames)
	defer res.Close()

	out, err := audio.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("cubic resampling: %w", err)
	}

	return fitLength(out, frames, buf.SampleRate()), nil
}

// PolyphaseFitter uses the soxr-derived polyphase resampler from
// github.com/tphakala/go-audio-resampling.
type PolyphaseFitter struct{}

func (PolyphaseFitter) Name() string { return ResamplerPolyphase }

func (PolyphaseFitter) Fit(buf *audio.Buffer, frames int) (*audio.Buffer, error) {
	if buf.Frames() == frames {
		return buf.Clone(), nil
	}
	if buf.Frames() == 0 || frames <= 0 {
		return audio.NewBuffer(buf.Channels(), max(frames, 0), buf.SampleRate()), nil
	}

	resampled := make([][]float64, buf.Channels())
	for c := range resampled {
		out, err := polyphaseChannel(buf.Channel(c), buf.Frames(), frames)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		resampled[c] = out
	}

	got := len(resampled[0])
	for _, ch := range resampled[1:] {
		got = min(got, len(ch))
	}
	out := audio.NewBuffer(buf.Channels(), got, buf.SampleRate())
	for c, ch := range resampled {
		dst := out.Channel(c)
		for i := range dst {
			dst[i] = float32(ch[i])
		}
	}

	return fitLength(out, frames, buf.SampleRate()), nil
}

// polyphaseChannel runs one channel through its own mono resampler. The
// library filters Process and Flush input as a single stream.
func polyphaseChannel(samples []float32, from, to int) ([]float64, error) {
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("creating polyphase resampler: %w", err)
	}

	in := make([]float64, len(samples))
	for i, s := range samples {
		in[i] = float64(s)
	}

	out, err := r.Process(in)
	if err != nil {
		return nil, fmt.Errorf("polyphase resampling: %w", err)
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("flushing polyphase resampler: %w", err)
	}
	return append(out, tail...), nil
}

// fitLength truncates or extends buf to exactly frames, holding the last
// sample when extending, and stamps sampleRate on the result.
func fitLength(buf *audio.Buffer, frames, sampleRate int) *audio.Buffer {
	out := audio.NewBuffer(buf.Channels(), frames, sampleRate)
	for c := range buf.Channels() {
		src, dst := buf.Channel(c), out.Channel(c)
		n := copy(dst, src)
		if n == 0 {
			continue
		}
		last := src[n-1]
		for i := n; i < frames; i++ {
			dst[i] = last
		}
	}
	return out
}
