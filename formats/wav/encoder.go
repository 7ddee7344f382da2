// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE header.
	HeaderSize = 44

	// ContentType of encoded output.
	ContentType = "audio/wav"

	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8

	// Frames converted per Write call in WriteWAV.
	chunkFrames = 4096
)

type header struct {
	channels   int
	sampleRate int
	dataSize   uint32
}

func newHeader(buf *audio.Buffer) (header, error) {
	if err := buf.Validate(); err != nil {
		return header{}, fmt.Errorf("encoding wav: %w", err)
	}

	channels := buf.Channels()
	dataSize := uint64(buf.Frames()) * uint64(channels) * bytesPerSample
	byteRate := uint64(buf.SampleRate()) * uint64(channels) * bytesPerSample

	switch {
	case channels > math.MaxUint16:
		return header{}, fmt.Errorf("%w: %d channels", ErrTooLarge, channels)
	case byteRate > math.MaxUint32:
		return header{}, fmt.Errorf("%w: byte rate %d", ErrTooLarge, byteRate)
	case dataSize+HeaderSize-8 > math.MaxUint32:
		return header{}, fmt.Errorf("%w: %d bytes of samples", ErrTooLarge, dataSize)
	}

	return header{
		channels:   channels,
		sampleRate: buf.SampleRate(),
		dataSize:   uint32(dataSize),
	}, nil
}

func (h header) put(dst []byte) {
	blockAlign := h.channels * bytesPerSample
	byteRate := h.sampleRate * blockAlign

	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+h.dataSize)
	copy(dst[8:12], "WAVE")

	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(dst[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(dst[22:24], uint16(h.channels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(h.sampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(dst[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(dst[34:36], bitsPerSample)

	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], h.dataSize)
}

// putFrames interleaves frames [from, to) of buf into dst as 16-bit PCM.
func putFrames(dst []byte, buf *audio.Buffer, from, to int) {
	channels := buf.Channels()
	for f := from; f < to; f++ {
		base := (f - from) * channels * bytesPerSample
		for c := range channels {
			off := base + c*bytesPerSample
			v := utils.Float32ToPCM16(buf.Channel(c)[f])
			binary.LittleEndian.PutUint16(dst[off:off+bytesPerSample], uint16(v))
		}
	}
}

// EncodedSize returns the byte length EncodeWAV produces for buf.
func EncodedSize(buf *audio.Buffer) int {
	return HeaderSize + buf.Frames()*buf.Channels()*bytesPerSample
}

// EncodeWAV serializes buf as a canonical 16-bit PCM WAV file.
//
// Samples are clamped to [-1, 1] and scaled by 32768 when negative and by
// 32767 otherwise, truncating toward zero. Frames are interleaved in channel
// order.
func EncodeWAV(buf *audio.Buffer) ([]byte, error) {
	h, err := newHeader(buf)
	if err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+int(h.dataSize))
	h.put(out[:HeaderSize])
	putFrames(out[HeaderSize:], buf, 0, buf.Frames())

	return out, nil
}

// WriteWAV streams the same bytes EncodeWAV returns to w, converting a block
// of frames at a time.
func WriteWAV(w io.Writer, buf *audio.Buffer) error {
	h, err := newHeader(buf)
	if err != nil {
		return err
	}

	var hdr [HeaderSize]byte
	h.put(hdr[:])
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	frames := buf.Frames()
	if frames == 0 {
		return nil
	}

	frameBytes := buf.Channels() * bytesPerSample
	chunk := make([]byte, min(frames, chunkFrames)*frameBytes)

	for from := 0; from < frames; from += chunkFrames {
		to := min(from+chunkFrames, frames)
		data := chunk[:(to-from)*frameBytes]
		putFrames(data, buf, from, to)

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}
