// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/formats/wav"
)

// State of a Pipeline.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Progress milestones reported during a run, in order.
const (
	ProgressStart      = 10
	ProgressPitch      = 30
	ProgressRender     = 40
	ProgressPitchDone  = 50
	ProgressVocals     = 60
	ProgressFinalizing = 90
	ProgressComplete   = 100
)

// Progress is one milestone of a run.
type Progress struct {
	Percent int
	Message string
}

// Options select the transforms of one run.
type Options struct {
	// Semitones to transpose by; zero skips pitch shifting.
	Semitones int
	// RemoveVocals attenuates center-panned content.
	RemoveVocals bool
	// Progress, when set, is called synchronously at every milestone.
	Progress func(Progress)
	// OnSynthesisError, when set, receives a pitch-shift failure. The run
	// continues with the unshifted signal.
	OnSynthesisError func(*effects.SynthesisError)
}

func (o Options) report(percent int, msg string) {
	if o.Progress != nil {
		o.Progress(Progress{Percent: percent, Message: msg})
	}
}

// Pipeline runs clone, pitch shift, vocal removal and WAV encoding over a
// decoded buffer. Only one run may be active at a time; a concurrent call
// returns ErrRunInProgress without side effects.
type Pipeline struct {
	engine effects.Engine
	logger *slog.Logger

	run sync.Mutex // held for the whole run

	mu    sync.Mutex
	state State
	last  *Artifact
}

// New returns an idle pipeline that shifts pitch with engine. A nil logger
// means slog.Default().
func New(engine effects.Engine, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		engine: engine,
		logger: logger,
	}
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Last returns the artifact of the most recent successful run, or nil.
func (p *Pipeline) Last() *Artifact {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Pipeline) setState(s State, a *Artifact) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = s
	if a != nil {
		p.last = a
	}
}

// Process transforms src according to opts and encodes the result. src is
// never modified. On failure no artifact is returned and the error is one of
// *InvalidInputError or *EncodeError.
func (p *Pipeline) Process(src *audio.Buffer, opts Options) (*Artifact, error) {
	if !p.run.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.run.Unlock()

	p.setState(Running, nil)
	started := time.Now()

	artifact, err := p.process(src, opts)
	if err != nil {
		p.setState(Failed, nil)
		p.logger.Error("processing failed",
			"semitones", opts.Semitones,
			"remove_vocals", opts.RemoveVocals,
			"error", err,
		)
		return nil, err
	}

	p.setState(Succeeded, artifact)
	p.logger.Info("processing finished",
		"id", artifact.ID,
		"frames", artifact.Frames,
		"bytes", artifact.Size,
		"elapsed", time.Since(started),
	)

	return artifact, nil
}

func (p *Pipeline) process(src *audio.Buffer, opts Options) (artifact *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact = nil
			err = &EncodeError{Err: fmt.Errorf("%w: %v", ErrStagePanicked, r)}
		}
	}()

	if err := src.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: "the audio data is malformed", Err: err}
	}

	p.logger.Debug("processing started",
		"channels", src.Channels(),
		"frames", src.Frames(),
		"sample_rate", src.SampleRate(),
		"semitones", opts.Semitones,
		"remove_vocals", opts.RemoveVocals,
	)

	opts.report(ProgressStart, "starting")
	buf := src.Clone()

	if opts.Semitones != 0 {
		opts.report(ProgressPitch, "shifting pitch")
		buf = p.shift(buf, opts)
	}

	if opts.RemoveVocals {
		opts.report(ProgressVocals, "removing vocals")
		buf = effects.RemoveVocals(buf)
	}

	opts.report(ProgressFinalizing, "finalizing")
	data, err := wav.EncodeWAV(buf)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	artifact = newArtifact(buf, data, time.Now())
	opts.report(ProgressComplete, "complete")

	return artifact, nil
}

func (p *Pipeline) shift(buf *audio.Buffer, opts Options) *audio.Buffer {
	var failed bool

	shifter := effects.NewPitchShifter(p.engine, p.logger)
	shifter.OnError = func(err *effects.SynthesisError) {
		failed = true
		if opts.OnSynthesisError != nil {
			opts.OnSynthesisError(err)
		}
	}

	opts.report(ProgressRender, "rendering")
	out := shifter.Shift(buf, opts.Semitones)
	if !failed {
		opts.report(ProgressPitchDone, "pitch shifted")
	}

	return out
}
