// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/ik5/audfx/audio"
)

// Session keeps one loaded file and its latest processed artifact.
type Session struct {
	registry *audio.Registry
	pipeline *Pipeline

	// MaxSize overrides MaxFileSize when positive.
	MaxSize int64

	mu       sync.Mutex
	info     FileInfo
	original *audio.Buffer
	artifact *Artifact
}

func NewSession(registry *audio.Registry, p *Pipeline) *Session {
	return &Session{
		registry: registry,
		pipeline: p,
	}
}

// Load validates info, decodes r and replaces the session contents. The
// previous artifact is dropped.
func (s *Session) Load(info FileInfo, r io.Reader) error {
	if err := info.Check(s.MaxSize); err != nil {
		return err
	}

	format, ok := s.format(info)
	if !ok {
		return &DecodeError{
			Format: info.MIMEType,
			Err:    fmt.Errorf("%w: %s", audio.ErrUnknownFormat, info.Name),
		}
	}

	buf, err := s.registry.Decode(format, r)
	if err != nil {
		return &DecodeError{Format: format, Err: err}
	}
	if err := buf.Validate(); err != nil {
		return &DecodeError{Format: format, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.info = info
	s.original = buf
	s.artifact = nil

	return nil
}

// format picks the registry key for info, MIME type first, then the file
// extension.
func (s *Session) format(info FileInfo) (string, bool) {
	for _, key := range []string{info.MIMEType, filepath.Ext(info.Name)} {
		if key == "" {
			continue
		}
		if _, ok := s.registry.Get(key); ok {
			return key, true
		}
	}
	return "", false
}

// Process runs the pipeline on the loaded buffer and keeps the result as
// the current artifact.
func (s *Session) Process(opts Options) (*Artifact, error) {
	s.mu.Lock()
	original := s.original
	s.mu.Unlock()

	if original == nil {
		return nil, ErrNoInput
	}

	artifact, err := s.pipeline.Process(original, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reset or Load may have replaced the input meanwhile.
	if s.original == original {
		s.artifact = artifact
	}

	return artifact, nil
}

// Artifact returns the current processed file or ErrNoArtifact.
func (s *Session) Artifact() (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact == nil {
		return nil, ErrNoArtifact
	}
	return s.artifact, nil
}

// Original returns the loaded buffer and its file info. The buffer is nil
// when nothing is loaded. Callers must not modify it.
func (s *Session) Original() (*audio.Buffer, FileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original, s.info
}

// Reset drops the loaded buffer and the artifact.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.info = FileInfo{}
	s.original = nil
	s.artifact = nil
}
