package ffmpeg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ProbeInfo is the subset of ffprobe output the converter uses
type ProbeInfo struct {
	FormatName string
	Duration   time.Duration
	Streams    []StreamInfo
}

// StreamInfo describes one stream of a container
type StreamInfo struct {
	Index      int
	CodecType  string // "audio", "video", "subtitle", ...
	CodecName  string
	SampleRate int
	Channels   int
	Width      int
	Height     int
}

// FirstAudio returns the first audio stream
func (p *ProbeInfo) FirstAudio() (StreamInfo, bool) {
	for _, s := range p.Streams {
		if s.CodecType == "audio" {
			return s, true
		}
	}
	return StreamInfo{}, false
}

// FirstVideo returns the first video stream
func (p *ProbeInfo) FirstVideo() (StreamInfo, bool) {
	for _, s := range p.Streams {
		if s.CodecType == "video" {
			return s, true
		}
	}
	return StreamInfo{}, false
}

type probeOutput struct {
	Streams []struct {
		Index      int    `json:"index"`
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

// parseProbeOutput parses `ffprobe -print_format json -show_streams -show_format`
func parseProbeOutput(data []byte) (*ProbeInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &ProbeInfo{FormatName: out.Format.FormatName}
	if out.Format.Duration != "" {
		secs, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err == nil {
			info.Duration = time.Duration(secs * float64(time.Second))
		}
	}

	for _, s := range out.Streams {
		rate, _ := strconv.Atoi(s.SampleRate)
		info.Streams = append(info.Streams, StreamInfo{
			Index:      s.Index,
			CodecType:  s.CodecType,
			CodecName:  s.CodecName,
			SampleRate: rate,
			Channels:   s.Channels,
			Width:      s.Width,
			Height:     s.Height,
		})
	}

	return info, nil
}
