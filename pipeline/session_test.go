package pipeline_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/pipeline"
)

func newSession() *pipeline.Session {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, ".wav", "audio/wav", "audio/x-wav", "audio/wave")

	return pipeline.NewSession(reg, pipeline.New(gainEngine{gain: 0.5}, quietLogger()))
}

func wavFile(t *testing.T, buf *audio.Buffer) []byte {
	t.Helper()

	data, err := wav.EncodeWAV(buf)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	return data
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	s := newSession()
	src := audiotest.SineBuffer(8000, 2, 400, 300, 0.5)
	data := wavFile(t, src)
	info := pipeline.FileInfo{Name: "song.wav", MIMEType: "audio/wav", Size: int64(len(data))}

	if _, err := s.Process(pipeline.Options{}); !errors.Is(err, pipeline.ErrNoInput) {
		t.Fatalf("Process before Load: %v", err)
	}

	if err := s.Load(info, bytes.NewReader(data)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	original, gotInfo := s.Original()
	if gotInfo != info {
		t.Errorf("info = %+v", gotInfo)
	}
	assertClose(t, original, src, pcmTolerance)

	if _, err := s.Artifact(); !errors.Is(err, pipeline.ErrNoArtifact) {
		t.Fatalf("Artifact before Process: %v", err)
	}

	first, err := s.Process(pipeline.Options{Semitones: 2})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	second, err := s.Process(pipeline.Options{RemoveVocals: true})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if first.ID == second.ID {
		t.Error("second run reused the first artifact")
	}

	current, err := s.Artifact()
	if err != nil || current != second {
		t.Fatalf("Artifact() = %v, %v; want the latest run", current, err)
	}

	// Each run starts again from the loaded file.
	again, _ := s.Original()
	assertClose(t, again, original, 0)

	s.Reset()
	if buf, _ := s.Original(); buf != nil {
		t.Error("Reset kept the buffer")
	}
	if _, err := s.Artifact(); !errors.Is(err, pipeline.ErrNoArtifact) {
		t.Errorf("Artifact after Reset: %v", err)
	}
}

func TestSessionLoadReplacesArtifact(t *testing.T) {
	t.Parallel()

	s := newSession()
	data := wavFile(t, audiotest.SineBuffer(8000, 1, 100, 300, 0.5))
	info := pipeline.FileInfo{Name: "a.wav", MIMEType: "audio/wav", Size: int64(len(data))}

	if err := s.Load(info, bytes.NewReader(data)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Process(pipeline.Options{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(info, bytes.NewReader(data)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Artifact(); !errors.Is(err, pipeline.ErrNoArtifact) {
		t.Errorf("artifact survived a new Load: %v", err)
	}
}

func TestSessionLoadErrors(t *testing.T) {
	t.Parallel()

	valid := wavFile(t, audiotest.SineBuffer(8000, 1, 100, 300, 0.5))

	tests := []struct {
		name       string
		info       pipeline.FileInfo
		data       []byte
		wantInput  bool
		wantDecode error
	}{
		{
			name:      "not audio",
			info:      pipeline.FileInfo{Name: "a.png", MIMEType: "image/png", Size: 10},
			data:      []byte("png"),
			wantInput: true,
		},
		{
			name:      "too large",
			info:      pipeline.FileInfo{Name: "a.wav", MIMEType: "audio/wav", Size: pipeline.MaxFileSize + 1},
			data:      valid,
			wantInput: true,
		},
		{
			name:       "unregistered format",
			info:       pipeline.FileInfo{Name: "a.flac", MIMEType: "audio/flac", Size: 10},
			data:       []byte("fLaC"),
			wantDecode: audio.ErrUnknownFormat,
		},
		{
			name:       "corrupt wav",
			info:       pipeline.FileInfo{Name: "a.wav", MIMEType: "audio/wav", Size: 12},
			data:       []byte("RIFFjunkjunk"),
			wantDecode: wav.ErrNotWavFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSession()
			err := s.Load(tt.info, bytes.NewReader(tt.data))

			var invalid *pipeline.InvalidInputError
			var decode *pipeline.DecodeError
			switch {
			case tt.wantInput:
				if !errors.As(err, &invalid) {
					t.Fatalf("err = %v, want *InvalidInputError", err)
				}
			default:
				if !errors.As(err, &decode) {
					t.Fatalf("err = %v, want *DecodeError", err)
				}
				if !errors.Is(err, tt.wantDecode) {
					t.Errorf("err = %v, want %v inside", err, tt.wantDecode)
				}
			}

			if buf, _ := s.Original(); buf != nil {
				t.Error("failed Load kept a buffer")
			}
		})
	}
}

func TestSessionExtensionFallback(t *testing.T) {
	t.Parallel()

	s := newSession()
	data := wavFile(t, audiotest.SineBuffer(8000, 1, 100, 300, 0.5))

	// Browsers and file(1) report odd WAV MIME types.
	info := pipeline.FileInfo{Name: "take1.WAV", MIMEType: "audio/vnd.wave", Size: int64(len(data))}
	if err := s.Load(info, bytes.NewReader(data)); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestSessionMaxSize(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.MaxSize = 64

	data := wavFile(t, audiotest.SineBuffer(8000, 1, 100, 300, 0.5))
	err := s.Load(pipeline.FileInfo{Name: "a.wav", MIMEType: "audio/wav", Size: int64(len(data))}, bytes.NewReader(data))

	if err == nil || !strings.Contains(pipeline.UserMessage(err), "too large") {
		t.Errorf("err = %v, want a size rejection", err)
	}
}
