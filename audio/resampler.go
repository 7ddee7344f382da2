// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfx/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom cubic
// interpolation. Works on interleaved samples and preserves channel count.
// When downsampling, source frames go through a one-pole low-pass whose
// cutoff tracks the destination Nyquist frequency.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// Window of four frames around the read position:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2.
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Fractional position between frames[1] and frames[2].
	pos float64

	srcBuf []float32
	eof    bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, max(channels, 1)),
		filterState: make([]float32, max(channels, 0)),
	}

	if ratio > 1.0 && !math.IsInf(ratio, 0) {
		// y[n] = a*x[n] + (1-a)*y[n-1], cutoff at dstRate/2.
		r.useFilter = true
		r.filterAlpha = float32(1 - math.Exp(-math.Pi/ratio))
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, max(channels, 0))
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Ratio returns the number of source frames consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.ratio }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame reads exactly one frame into dst. It returns false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	got := 0
	stalled := 0
	for got < r.channels && !r.eof {
		n, err := r.src.ReadSamples(r.srcBuf[got:r.channels])
		got += n
		if err == io.EOF {
			r.eof = true
			break
		}
		if err != nil {
			return false, fmt.Errorf("resampler source: %w", err)
		}
		if n == 0 {
			stalled++
			if stalled >= maxStalledReads {
				return false, fmt.Errorf("resampler source: %w", io.ErrNoProgress)
			}
		}
	}

	if got < r.channels {
		// A truncated trailing frame is dropped.
		return false, nil
	}

	copy(dst, r.srcBuf[:r.channels])
	if r.useFilter {
		for c := range r.channels {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	if r.useFilter {
		// Restart the filter from the first frame to avoid a fade-in.
		copy(r.filterState, r.srcBuf[:r.channels])
		copy(r.frames[1], r.srcBuf[:r.channels])
	}

	copy(r.frames[0], r.frames[1])
	r.hasFrame[0] = true
	r.hasFrame[1] = true

	for i := 2; i < len(r.frames); i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	r.primed = true
	return nil
}

// fill loads slot i from the source, duplicating the previous frame at the
// end of the stream so the interpolator always has four points.
func (r *Resampler) fill(i int) error {
	ok, err := r.readFrame(r.frames[i])
	if err != nil {
		return err
	}
	r.hasFrame[i] = ok
	if !ok {
		copy(r.frames[i], r.frames[i-1])
	}
	return nil
}

func (r *Resampler) advance() error {
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.hasFrame[:], r.hasFrame[1:])
	r.frames[3] = first

	return r.fill(3)
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 || r.dstRate <= 0 || r.ratio <= 0 || math.IsInf(r.ratio, 0) {
		return 0, fmt.Errorf("%w: resampling %d Hz to %d Hz",
			ErrInvalidBuffer, r.src.SampleRate(), r.dstRate)
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[2] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
