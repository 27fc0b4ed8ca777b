package ffmpeg

import (
	"fmt"

	"audio-converter/domain/conversion"
)

// Codec describes how ffmpeg encodes one output format
type Codec struct {
	Name     string // ffmpeg encoder passed to -c:a
	Lossless bool   // lossless encoders ignore the bitrate
}

var codecs = map[conversion.Format]Codec{
	conversion.FormatMP3: {Name: "libmp3lame"},
	conversion.FormatWAV: {Name: "pcm_s16le", Lossless: true},
	conversion.FormatAAC: {Name: "aac"},
	conversion.FormatOGG: {Name: "libvorbis"},
}

// CodecFor returns the encoder used for format
func CodecFor(format conversion.Format) (Codec, error) {
	c, ok := codecs[format]
	if !ok {
		return Codec{}, fmt.Errorf("no encoder for format %q", format)
	}
	return c, nil
}
