package audfx

import (
	"testing"

	"github.com/ik5/audfx/formats/aiff"
	"github.com/ik5/audfx/formats/mp3"
	"github.com/ik5/audfx/formats/vorbis"
	"github.com/ik5/audfx/formats/wav"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	tests := []struct {
		key  string
		want any
	}{
		{"wav", wav.Decoder{}},
		{".WAV", wav.Decoder{}},
		{"audio/wave", wav.Decoder{}},
		{"audio/x-wav; codecs=1", wav.Decoder{}},
		{"mp3", mp3.Decoder{}},
		{"audio/mpeg", mp3.Decoder{}},
		{"ogg", vorbis.Decoder{}},
		{".oga", vorbis.Decoder{}},
		{"audio/ogg", vorbis.Decoder{}},
		{"aiff", aiff.Decoder{}},
		{".aif", aiff.Decoder{}},
		{"audio/x-aiff", aiff.Decoder{}},
	}

	for _, tt := range tests {
		d, ok := reg.Get(tt.key)
		if !ok {
			t.Errorf("no decoder for %q", tt.key)
			continue
		}
		if d != tt.want {
			t.Errorf("decoder for %q is %T, want %T", tt.key, d, tt.want)
		}
	}

	if _, ok := reg.Get("audio/flac"); ok {
		t.Error("flac should not be registered")
	}
}

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	riff := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
	form := []byte("FORM\x00\x00\x00\x00AIFFCOMM")

	tests := []struct {
		name string
		file string
		head []byte
		want string
	}{
		{"wav content", "x.bin", riff, "audio/wave"},
		{"aiff content", "x.bin", form, "audio/aiff"},
		{"id3 tag", "x", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), "audio/mpeg"},
		{"ogg page", "x", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00"), "audio/ogg"},
		{"mp3 by extension", "song.MP3", []byte{0xff, 0xfb, 0x90, 0x64}, "audio/mpeg"},
		{"wav by extension", "song.wav", nil, "audio/wav"},
		{"aiff by extension", "song.aif", nil, "audio/aiff"},
		{"text", "notes", []byte("hello"), "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectMIME(tt.file, tt.head); got != tt.want {
				t.Errorf("DetectMIME(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
