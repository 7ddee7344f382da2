// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/aiff"
	"github.com/ik5/audfx/formats/mp3"
	"github.com/ik5/audfx/formats/vorbis"
	"github.com/ik5/audfx/formats/wav"
)

// Format keys of the bundled decoders.
const (
	FormatWAV    = "wav"
	FormatMP3    = "mp3"
	FormatVorbis = "vorbis"
	FormatAIFF   = "aiff"
)

type codec struct {
	format  string
	decoder audio.Decoder
	aliases []string
}

var codecs = []codec{
	{FormatWAV, wav.Decoder{}, []string{".wav", ".wave", "audio/wav", "audio/wave", "audio/x-wav", "audio/vnd.wave"}},
	{FormatMP3, mp3.Decoder{}, []string{".mp3", "audio/mpeg", "audio/mp3", "audio/mpeg3", "audio/x-mpeg"}},
	{FormatVorbis, vorbis.Decoder{}, []string{"ogg", ".ogg", ".oga", "audio/ogg", "audio/vorbis", "audio/x-vorbis+ogg"}},
	{FormatAIFF, aiff.Decoder{}, []string{".aif", ".aiff", "audio/aiff", "audio/x-aiff"}},
}

// NewRegistry returns a decoder registry holding every bundled format.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	for _, c := range codecs {
		reg.Register(c.format, c.decoder, c.aliases...)
	}
	return reg
}

// DetectMIME guesses the MIME type of a file from its first bytes, falling
// back to its extension. Unknown content yields "application/octet-stream".
func DetectMIME(name string, head []byte) string {
	sniffed := http.DetectContentType(head)
	switch {
	case strings.HasPrefix(sniffed, "audio/"):
		return sniffed
	case sniffed == "application/ogg":
		return "audio/ogg"
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, c := range codecs {
		for _, alias := range c.aliases {
			if alias != ext {
				continue
			}
			// The first MIME alias is the canonical type.
			for _, m := range c.aliases {
				if strings.HasPrefix(m, "audio/") {
					return m
				}
			}
		}
	}

	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt
	}

	return sniffed
}
