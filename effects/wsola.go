// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/audfx/audio"
)

const (
	// SoundTouch's music preset.
	DefaultSequence = 82 * time.Millisecond
	DefaultOverlap  = 10 * time.Millisecond
	DefaultSearch   = 28 * time.Millisecond

	MinRatio = 0.25
	MaxRatio = 4.0

	// Candidate offsets are first scanned at this stride, then refined
	// around the best coarse match.
	coarseStride = 4

	tiny = 1e-12
)

// WSOLA shifts pitch in two steps: a waveform-similarity overlap-add time
// stretch by the pitch ratio, then a Fitter that resamples the stretched
// signal back to the input length.
//
// Segment boundaries are chosen once on the mono mix of all channels and
// applied to every channel, so inter-channel phase is kept.
type WSOLA struct {
	Sequence time.Duration
	Overlap  time.Duration
	Search   time.Duration
	Fitter   Fitter
}

// NewWSOLA returns a WSOLA engine with the default windows. A nil fitter
// means CubicFitter.
func NewWSOLA(fitter Fitter) *WSOLA {
	if fitter == nil {
		fitter = CubicFitter{}
	}

	return &WSOLA{
		Sequence: DefaultSequence,
		Overlap:  DefaultOverlap,
		Search:   DefaultSearch,
		Fitter:   fitter,
	}
}

func (w *WSOLA) Name() string {
	return EngineWSOLA + "+" + w.Fitter.Name()
}

// wsolaPlan holds window lengths in frames for one sample rate.
type wsolaPlan struct {
	sequence int
	overlap  int
	search   int
	stepOut  int
	fadeIn   []float64
}

func (w *WSOLA) plan(sampleRate int) (wsolaPlan, error) {
	frames := func(d time.Duration) int {
		return int(math.Round(d.Seconds() * float64(sampleRate)))
	}

	p := wsolaPlan{
		sequence: max(frames(w.Sequence), 32),
		overlap:  max(frames(w.Overlap), 8),
		search:   max(frames(w.Search), 1),
	}
	if p.overlap >= p.sequence {
		return p, fmt.Errorf("wsola overlap %d must be shorter than sequence %d", p.overlap, p.sequence)
	}
	p.stepOut = p.sequence - p.overlap

	// Raised cosine; the fade-out is 1-fadeIn.
	p.fadeIn = make([]float64, p.overlap)
	for i := range p.fadeIn {
		t := float64(i) / float64(p.overlap-1)
		p.fadeIn[i] = 0.5 - 0.5*math.Cos(math.Pi*t)
	}

	return p, nil
}

func (w *WSOLA) Render(buf *audio.Buffer, semitones int) (*audio.Buffer, error) {
	ratio := Ratio(semitones)
	if ratio < MinRatio || ratio > MaxRatio {
		return nil, fmt.Errorf("%w: %.3f not in [%g, %g]", ErrRatioOutOfRange, ratio, MinRatio, MaxRatio)
	}
	if w.Fitter == nil {
		return nil, fmt.Errorf("wsola: %w", ErrUnknownResampler)
	}

	p, err := w.plan(buf.SampleRate())
	if err != nil {
		return nil, err
	}
	if buf.Frames() < p.sequence+p.search {
		return nil, fmt.Errorf("%w: %d frames, need %d", ErrInputTooShort, buf.Frames(), p.sequence+p.search)
	}

	guide, err := audio.ReadAll(audio.NewMonoMixer(buf.Reader()))
	if err != nil {
		return nil, fmt.Errorf("mixing guide signal: %w", err)
	}

	starts, length := p.segments(guide.Channel(0), ratio)
	stretched := p.stretch(buf, starts, length)

	out, err := w.Fitter.Fit(stretched, buf.Frames())
	if err != nil {
		return nil, fmt.Errorf("wsola %s stage: %w", w.Fitter.Name(), err)
	}

	return out, nil
}

// segments picks the input start of every output segment and returns them
// with the stretched length.
func (p wsolaPlan) segments(guide []float32, ratio float64) ([]int, int) {
	target := max(int(math.Round(float64(len(guide))*ratio)), 1)
	nominalStep := max(float64(p.stepOut)/ratio, 1)

	starts := []int{0}
	outLen := p.sequence
	prev := 0
	next := nominalStep
	ref := make([]float64, p.overlap)

	for outLen < target+p.sequence {
		// The natural continuation of the previous segment.
		refStart := prev + p.stepOut
		for i := range ref {
			ref[i] = float64(sampleZero(guide, refStart+i))
		}

		cand := p.bestOverlap(ref, guide, int(math.Round(next)))
		starts = append(starts, cand)

		outLen += p.stepOut
		prev = cand
		next += nominalStep

		if prev > len(guide)+p.sequence && outLen >= target {
			break
		}
	}

	return starts, target
}

// bestOverlap returns the offset near predicted whose first overlap samples
// best match ref by normalized cross-correlation.
func (p wsolaPlan) bestOverlap(ref []float64, guide []float32, predicted int) int {
	refEnergy := tiny
	for _, v := range ref {
		refEnergy += v * v
	}

	score := func(cand int) float64 {
		dot, energy := 0.0, tiny
		for i, rv := range ref {
			cv := float64(sampleZero(guide, cand+i))
			dot += rv * cv
			energy += cv * cv
		}
		return dot / math.Sqrt(refEnergy*energy)
	}

	lo, hi := predicted-p.search, predicted+p.search

	best, bestScore := predicted, math.Inf(-1)
	for cand := lo; cand <= hi; cand += coarseStride {
		if s := score(cand); s > bestScore {
			best, bestScore = cand, s
		}
	}

	coarse := best
	for cand := max(coarse-coarseStride+1, lo); cand <= min(coarse+coarseStride-1, hi); cand++ {
		if s := score(cand); s > bestScore {
			best, bestScore = cand, s
		}
	}

	return best
}

// stretch overlap-adds the chosen segments of every channel into a buffer of
// length frames.
func (p wsolaPlan) stretch(buf *audio.Buffer, starts []int, frames int) *audio.Buffer {
	capacity := p.sequence + (len(starts)-1)*p.stepOut
	out := audio.NewBuffer(buf.Channels(), frames, buf.SampleRate())

	acc := make([]float32, capacity)
	for c := range buf.Channels() {
		src := buf.Channel(c)
		clear(acc)

		for i := range p.sequence {
			acc[i] = sampleZero(src, starts[0]+i)
		}

		outLen := p.sequence
		for _, start := range starts[1:] {
			base := outLen - p.overlap
			for i, in := range p.fadeIn {
				old := float64(acc[base+i])
				acc[base+i] = float32(old*(1-in) + float64(sampleZero(src, start+i))*in)
			}
			for i := p.overlap; i < p.sequence; i++ {
				acc[base+i] = sampleZero(src, start+i)
			}
			outLen = base + p.sequence
		}

		copy(out.Channel(c), acc)
	}

	return out
}

func sampleZero(x []float32, i int) float32 {
	if i < 0 || i >= len(x) {
		return 0
	}
	return x[i]
}
