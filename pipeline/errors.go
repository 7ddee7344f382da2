// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrRunInProgress is returned by Process while another run holds the
	// pipeline. Callers are expected to drop the request.
	ErrRunInProgress = errors.New("processing already in progress")

	ErrNoInput       = errors.New("no audio loaded")
	ErrNoArtifact    = errors.New("no processed audio available")
	ErrStagePanicked = errors.New("processing stage panicked")
)

// InvalidInputError rejects a file or buffer before any processing starts.
// Reason is a sentence fit for the end user.
type InvalidInputError struct {
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Reason, e.Err)
	}
	return "invalid input: " + e.Reason
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// DecodeError reports corrupt or unsupported input data.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %q: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is a fatal failure while producing the output artifact.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encoding output: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }

// UserMessage turns any error returned by this package into one sentence
// suitable for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		invalid *InvalidInputError
		decode  *DecodeError
		encode  *EncodeError
	)

	switch {
	case errors.Is(err, ErrRunInProgress):
		return "A file is already being processed."
	case errors.As(err, &invalid):
		return upperFirst(invalid.Reason) + "."
	case errors.As(err, &decode):
		return "Could not load the audio file. Check that it is not corrupted."
	case errors.Is(err, ErrNoInput):
		return "Load an audio file first."
	case errors.Is(err, ErrNoArtifact):
		return "There is no processed audio to download."
	case errors.As(err, &encode):
		return "Audio processing failed. Try a different file."
	default:
		return "Audio processing failed. Try a different file."
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
