// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
)

// DefaultPrefix is used by FileName when no prefix is given.
const DefaultPrefix = "audfx_processed"

// Artifact is the encoded result of one successful run. Its bytes never
// change after creation.
type Artifact struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Channels   int
	SampleRate int
	Frames     int
	Duration   time.Duration
	Size       int64

	data []byte
}

func newArtifact(buf *audio.Buffer, data []byte, now time.Time) *Artifact {
	return &Artifact{
		ID:         uuid.New(),
		CreatedAt:  now,
		Channels:   buf.Channels(),
		SampleRate: buf.SampleRate(),
		Frames:     buf.Frames(),
		Duration:   buf.Duration(),
		Size:       int64(len(data)),
		data:       data,
	}
}

func (a *Artifact) ContentType() string { return wav.ContentType }

// FileName returns "<prefix>_<unix millis>.wav".
func (a *Artifact) FileName(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%d.wav", prefix, a.CreatedAt.UnixMilli())
}

// Bytes returns a copy of the encoded WAV file.
func (a *Artifact) Bytes() []byte {
	return bytes.Clone(a.data)
}

// Reader reads the encoded WAV file from the start.
func (a *Artifact) Reader() *bytes.Reader {
	return bytes.NewReader(a.data)
}

func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.data)
	if err != nil {
		return int64(n), fmt.Errorf("writing artifact %s: %w", a.ID, err)
	}
	return int64(n), nil
}
