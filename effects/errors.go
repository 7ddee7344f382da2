// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"fmt"
)

var (
	ErrNoEngine         = errors.New("no synthesis engine configured")
	ErrShapeMismatch    = errors.New("engine output shape differs from input")
	ErrRatioOutOfRange  = errors.New("pitch ratio out of range")
	ErrInputTooShort    = errors.New("input too short for synthesis window")
	ErrUnknownEngine    = errors.New("unknown pitch engine")
	ErrUnknownResampler = errors.New("unknown duration resampler")
	ErrEnginePanicked   = errors.New("synthesis engine panicked")
)

// SynthesisError reports a failed pitch-shift render. PitchShifter absorbs it
// and keeps the unshifted signal.
type SynthesisError struct {
	Engine    string
	Semitones int
	Err       error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("pitch shift by %+d semitones with %s: %v", e.Semitones, e.Engine, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
