package ffmpeg

import (
	"context"

	"audio-converter/domain/inspect"
)

// Describe implements inspect.StreamProber on top of ffprobe
func (l *Library) Describe(ctx context.Context, path string) (*inspect.MediaReport, error) {
	info, err := l.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	report := &inspect.MediaReport{
		Path:      path,
		Container: info.FormatName,
		Duration:  info.Duration,
	}
	for _, s := range info.Streams {
		if s.CodecType == "audio" {
			report.Audio = append(report.Audio, inspect.AudioTrack{
				Index:      s.Index,
				Codec:      s.CodecName,
				SampleRate: s.SampleRate,
				Channels:   s.Channels,
			})
		}
	}
	if v, ok := info.FirstVideo(); ok {
		report.Video = &inspect.VideoTrack{Codec: v.CodecName, Width: v.Width, Height: v.Height}
	}
	return report, nil
}

var _ inspect.StreamProber = (*Library)(nil)
