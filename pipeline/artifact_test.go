package pipeline_test

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"

	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/pipeline"
)

func newArtifact(t *testing.T) *pipeline.Artifact {
	t.Helper()

	a, err := pipeline.New(nil, quietLogger()).
		Process(audiotest.SineBuffer(8000, 1, 160, 440, 0.5), pipeline.Options{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return a
}

func TestArtifactFileName(t *testing.T) {
	t.Parallel()

	a := newArtifact(t)
	millis := a.CreatedAt.UnixMilli()

	if got, want := a.FileName(""), fmt.Sprintf("audfx_processed_%d.wav", millis); got != want {
		t.Errorf("FileName(\"\") = %q, want %q", got, want)
	}
	if got, want := a.FileName("karaoke"), fmt.Sprintf("karaoke_%d.wav", millis); got != want {
		t.Errorf("FileName(karaoke) = %q, want %q", got, want)
	}

	pattern := regexp.MustCompile(`^audfx_processed_\d{13}\.wav$`)
	if !pattern.MatchString(a.FileName("")) {
		t.Errorf("%q does not match %v", a.FileName(""), pattern)
	}
}

func TestArtifactIdentity(t *testing.T) {
	t.Parallel()

	a, b := newArtifact(t), newArtifact(t)

	if a.ID == uuid.Nil {
		t.Error("artifact has no ID")
	}
	if a.ID == b.ID {
		t.Error("two artifacts share an ID")
	}
	if a.ID.Version() != 4 {
		t.Errorf("ID version %d, want 4", a.ID.Version())
	}
}

func TestArtifactBytesAreImmutable(t *testing.T) {
	t.Parallel()

	a := newArtifact(t)

	first := a.Bytes()
	if int64(len(first)) != a.Size {
		t.Fatalf("len = %d, Size = %d", len(first), a.Size)
	}
	if string(first[:4]) != "RIFF" {
		t.Fatalf("header starts with %q", first[:4])
	}

	clear(first)
	if second := a.Bytes(); string(second[:4]) != "RIFF" {
		t.Error("modifying Bytes() result changed the artifact")
	}
}

func TestArtifactWriteTo(t *testing.T) {
	t.Parallel()

	a := newArtifact(t)

	var out bytes.Buffer
	n, err := a.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != a.Size || !bytes.Equal(out.Bytes(), a.Bytes()) {
		t.Errorf("wrote %d bytes, want %d identical bytes", n, a.Size)
	}

	if _, err := a.WriteTo(failingWriter{}); !errors.Is(err, errWrite) {
		t.Errorf("err = %v, want errWrite", err)
	}
}

var errWrite = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }
