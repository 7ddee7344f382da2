// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/pipeline"
)

// sniffLen is the prefix read by DetectMIME.
const sniffLen = 512

// Config selects the pitch engine and input limits of a session.
type Config struct {
	// Engine is "wsola" (default) or "granular".
	Engine string
	// Resampler is the WSOLA duration stage, "cubic" (default) or
	// "polyphase".
	Resampler string
	// MaxFileSize overrides pipeline.MaxFileSize when positive.
	MaxFileSize int64
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewSession builds a session over NewRegistry and the configured engine.
func NewSession(cfg Config) (*pipeline.Session, error) {
	engine, err := effects.EngineByName(cfg.Engine, cfg.Resampler)
	if err != nil {
		return nil, err
	}

	s := pipeline.NewSession(NewRegistry(), pipeline.New(engine, cfg.Logger))
	s.MaxSize = cfg.MaxFileSize

	return s, nil
}

// StatFile describes the file at path the way an upload form would: base
// name, sniffed MIME type and size.
func StatFile(path string) (pipeline.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.FileInfo{}, err
	}
	defer f.Close()

	return statOpen(path, f)
}

func statOpen(path string, f *os.File) (pipeline.FileInfo, error) {
	st, err := f.Stat()
	if err != nil {
		return pipeline.FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return pipeline.FileInfo{}, fmt.Errorf("%s is a directory", path)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return pipeline.FileInfo{}, fmt.Errorf("reading %s: %w", path, err)
	}

	name := filepath.Base(path)
	return pipeline.FileInfo{
		Name:     name,
		MIMEType: DetectMIME(name, head[:n]),
		Size:     st.Size(),
	}, nil
}

// LoadFile opens path and loads it into s.
func LoadFile(s *pipeline.Session, path string) (pipeline.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.FileInfo{}, err
	}
	defer f.Close()

	info, err := statOpen(path, f)
	if err != nil {
		return info, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("rewinding %s: %w", path, err)
	}

	return info, s.Load(info, f)
}

// ProcessFile runs one pipeline pass over the file at path.
func ProcessFile(path string, cfg Config, opts pipeline.Options) (*pipeline.Artifact, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := LoadFile(s, path); err != nil {
		return nil, err
	}

	return s.Process(opts)
}
