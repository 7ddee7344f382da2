// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// DefaultGrainWindow is the delay-line span swept by each tap.
const DefaultGrainWindow = 100 * time.Millisecond

// Granular shifts pitch with two taps on a delay line whose delay sweeps
// linearly through Window at a rate set by the pitch ratio. The taps are
// half a window apart and crossfaded with triangular weights that sum to
// one, so each tap is silent when it wraps.
//
// It keeps the input length exactly and needs no duration correction, at
// the cost of a faint comb coloration at 1/Window Hz.
type Granular struct {
	Window time.Duration
}

// NewGranular returns a Granular engine with a 100 ms window.
func NewGranular() *Granular {
	return &Granular{Window: DefaultGrainWindow}
}

func (g *Granular) Name() string { return EngineGranular }

func (g *Granular) Render(buf *audio.Buffer, semitones int) (*audio.Buffer, error) {
	window := int(math.Round(g.Window.Seconds() * float64(buf.SampleRate())))
	if window < 4 {
		return nil, fmt.Errorf("%w: granular window of %d frames", ErrInputTooShort, window)
	}

	ratio := Ratio(semitones)
	w := float64(window)
	slope := (1 - ratio) / w

	out := audio.NewBuffer(buf.Channels(), buf.Frames(), buf.SampleRate())
	for n := range buf.Frames() {
		phaseA := wrap(float64(n) * slope)
		phaseB := wrap(phaseA + 0.5)

		posA := float64(n) - phaseA*w
		posB := float64(n) - phaseB*w
		gainA, gainB := triangle(phaseA), triangle(phaseB)

		for c := range buf.Channels() {
			src := buf.Channel(c)
			a := tap(src, posA)
			b := tap(src, posB)
			out.Channel(c)[n] = float32(gainA)*a + float32(gainB)*b
		}
	}

	return out, nil
}

// tap reads src at a fractional position. The position is rebased near its
// integer part first so long inputs keep sub-sample precision in float32.
func tap(src []float32, pos float64) float32 {
	base := max(int(pos)-2, 0)
	return utils.SampleAt(src[base:], float32(pos-float64(base)))
}

// wrap maps x into [0, 1).
func wrap(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		return 0
	}
	return x
}

// triangle is zero at phase 0 and 1 and peaks at 0.5.
func triangle(phase float64) float64 {
	return 1 - math.Abs(2*phase-1)
}
