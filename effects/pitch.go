// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/ik5/audfx/audio"
)

const (
	EngineWSOLA    = "wsola"
	EngineGranular = "granular"

	ResamplerCubic     = "cubic"
	ResamplerPolyphase = "polyphase"
)

// Engine renders a pitch-shifted copy of a buffer. Implementations must keep
// the channel count, frame count and sample rate of the input and must not
// modify it.
type Engine interface {
	Name() string
	Render(buf *audio.Buffer, semitones int) (*audio.Buffer, error)
}

// Ratio converts a semitone offset to a frequency ratio, 2^(semitones/12).
func Ratio(semitones int) float64 {
	return math.Pow(2, float64(semitones)/12)
}

// EngineByName builds an engine from its configuration name. The resampler
// name selects the duration-correction stage of the WSOLA engine and is
// ignored by the others.
func EngineByName(name, resampler string) (Engine, error) {
	switch strings.ToLower(name) {
	case "", EngineWSOLA:
		fitter, err := FitterByName(resampler)
		if err != nil {
			return nil, err
		}
		return NewWSOLA(fitter), nil
	case EngineGranular:
		return NewGranular(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// PitchShifter transposes buffers by whole semitones without changing their
// duration.
//
// Shift never fails. When the engine errors, panics or returns a buffer of
// the wrong shape, the failure is logged, passed to OnError, and the input
// is returned as is.
type PitchShifter struct {
	engine Engine
	logger *slog.Logger

	// OnError, when set, receives every absorbed failure.
	OnError func(*SynthesisError)
}

// NewPitchShifter wraps engine. A nil logger means slog.Default().
func NewPitchShifter(engine Engine, logger *slog.Logger) *PitchShifter {
	if logger == nil {
		logger = slog.Default()
	}

	return &PitchShifter{
		engine: engine,
		logger: logger,
	}
}

// Engine returns the configured synthesis engine.
func (p *PitchShifter) Engine() Engine { return p.engine }

// Shift returns buf transposed by semitones. A zero offset returns buf
// itself.
func (p *PitchShifter) Shift(buf *audio.Buffer, semitones int) *audio.Buffer {
	if semitones == 0 {
		return buf
	}

	out, err := p.render(buf, semitones)
	if err != nil {
		p.fail(err, semitones)
		return buf
	}

	return out
}

func (p *PitchShifter) engineName() string {
	if p.engine == nil {
		return "none"
	}
	return p.engine.Name()
}

func (p *PitchShifter) render(buf *audio.Buffer, semitones int) (out *audio.Buffer, err error) {
	if p.engine == nil {
		return nil, ErrNoEngine
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrEnginePanicked, r)
		}
	}()

	out, err = p.engine.Render(buf, semitones)
	if err != nil {
		return nil, err
	}
	if !buf.SameShape(out) || out.Validate() != nil {
		return nil, ErrShapeMismatch
	}

	return out, nil
}

func (p *PitchShifter) fail(err error, semitones int) {
	serr := &SynthesisError{
		Engine:    p.engineName(),
		Semitones: semitones,
		Err:       err,
	}

	p.logger.Warn("pitch shift failed, keeping original signal",
		"engine", serr.Engine,
		"semitones", semitones,
		"error", err,
	)

	if p.OnError != nil {
		p.OnError(serr)
	}
}
